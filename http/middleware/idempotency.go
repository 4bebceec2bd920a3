package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/gob"
	"hash"
	"io"
	"net/http"
)

// IdempotencyHeader names the request header carrying an idempotency key.
const IdempotencyHeader = "Idempotency-Key"

var _ http.ResponseWriter = idemReqWriter{}

// Idempotent returns an Adapter that makes retries of a POST endpoint safe.
//
// Idempotent pulls a key (e.g., a UUID v4 string) from the Idempotency-Key header.
// Requests without one pass through untouched.
//
// If a previous request has not used that key,
// Idempotent pairs all of the following values to the key:
//   - the hash of the body of the request
//   - the body of the resulting response
//   - the status code of the resulting response
//
// If that key has been used before (and has not expired),
// Idempotent falls into one of these scenarios:
//
//   - if a status code has not been set for that key,
//     Idempotent responds with 409 since the original request is still processing
//
//   - if the newly requested resource (the URI) does not match the original,
//     Idempotent responds with 422
//
//   - if the new request's body does not match the body of the original request's,
//     Idempotent responds with 422
//
//   - otherwise, Idempotent replays the status code and body set for the key
//
// cache and newHash can be nil;
// Idempotent uses an in-memory cache and sha256, accordingly.
//
// Idempotent follows the draft Idempotency-Key HTTP Header Field:
// https://tools.ietf.org/id/draft-idempotency-header-01.html
func Idempotent(cache IdempotencyCacher, newHash func() hash.Hash) Adapter {
	if cache == nil {
		cache = NewIdemResMap()
	}

	if newHash == nil {
		newHash = sha256.New
	}

	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}

			key := r.Header.Get(IdempotencyHeader)
			if key == "" {
				handler.ServeHTTP(w, r)
				return
			}

			sum, err := digest(newHash(), r)
			if err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}

			if ir, ok := cache.Get(r.Context(), key); ok {
				replay(w, r, ir, sum)
				return
			}

			ir := NewIdemRes(r.URL.RequestURI(), sum)
			cache.Set(r.Context(), key, ir)

			irw := idemReqWriter{
				ctx: r.Context(),
				c:   cache,
				i:   &ir,
				k:   key,
				w:   w,
			}
			handler.ServeHTTP(irw, r)
		})
	}
}

// digest hashes the body of r, replacing it so later handlers can still read it.
func digest(h hash.Hash, r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return h.Sum(nil), nil
	}

	body := bytes.NewBuffer(nil)
	if _, err := io.Copy(h, io.TeeReader(r.Body, body)); err != nil {
		return nil, err
	}

	r.Body = io.NopCloser(body)
	return h.Sum(nil), nil
}

func replay(w http.ResponseWriter, r *http.Request, ir IdemRes, sum []byte) {
	if ir.Status == 0 {
		w.WriteHeader(http.StatusConflict)
		return
	}

	if ir.URI != r.URL.RequestURI() || !bytes.Equal(ir.Req, sum) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		return
	}

	if ir.ContentType != "" {
		w.Header().Set("Content-Type", ir.ContentType)
	}

	w.WriteHeader(ir.Status)
	w.Write(ir.Body.Bytes())
}

// An IdemRes is data from an HTTP response
// that can be reused when another request
// matches the same idempotency key.
type IdemRes struct {
	Body        *bytes.Buffer
	ContentType string
	Req         []byte
	Status      int
	URI         string
}

// An idemResGob is the gob representation of an IdemRes;
// gob cannot encode a *bytes.Buffer directly.
type idemResGob struct {
	B []byte
	C string
	R []byte
	S int
	U string
}

// NewIdemRes constructs a new IdemRes.
func NewIdemRes(uri string, hashedBody []byte) IdemRes {
	return IdemRes{Body: bytes.NewBuffer(nil), URI: uri, Req: hashedBody}
}

// GobDecode implements gob.GobDecoder.
func (i *IdemRes) GobDecode(b []byte) error {
	g := new(idemResGob)
	if err := gob.NewDecoder(bytes.NewReader(b)).Decode(g); err != nil {
		return err
	}

	i.Body = bytes.NewBuffer(g.B)
	i.ContentType, i.Req, i.Status, i.URI = g.C, g.R, g.S, g.U
	return nil
}

// GobEncode implements gob.GobEncoder.
func (i IdemRes) GobEncode() ([]byte, error) {
	var body []byte
	if i.Body != nil {
		body = i.Body.Bytes()
	}

	buf := bytes.NewBuffer(nil)
	g := idemResGob{body, i.ContentType, i.Req, i.Status, i.URI}
	if err := gob.NewEncoder(buf).Encode(g); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// An idemReqWriter pairs an IdemRes with an http.ResponseWriter
// so both are written to by an HTTP handler.
// Changes to the IdemRes are saved in the cache as they happen.
type idemReqWriter struct {
	ctx context.Context
	c   IdempotencyCacher
	i   *IdemRes
	k   string
	w   http.ResponseWriter
}

// Header returns the http.Header of the underlying http.ResponseWriter.
func (irw idemReqWriter) Header() http.Header { return irw.w.Header() }

// Write writes b to the client and appends it to the cached response body.
func (irw idemReqWriter) Write(b []byte) (int, error) {
	if irw.i.Status == 0 {
		irw.WriteHeader(http.StatusOK)
	}

	n, err := irw.w.Write(b)
	if err != nil {
		return n, err
	}

	if _, err = irw.i.Body.Write(b); err != nil {
		return n, err
	}

	irw.save()
	return n, nil
}

// WriteHeader records the status code for later reuse before writing it.
func (irw idemReqWriter) WriteHeader(s int) {
	irw.i.Status = s
	irw.i.ContentType = irw.w.Header().Get("Content-Type")
	irw.w.WriteHeader(s)
	irw.save()
}

// save persists the response so far unless the request has gone away.
func (irw idemReqWriter) save() {
	select {
	case <-irw.ctx.Done():
	default:
		irw.c.Set(irw.ctx, irw.k, *irw.i)
	}
}
