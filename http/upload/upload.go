package upload

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xy-planning-network/meadowlark/http/resp"
	"github.com/xy-planning-network/meadowlark/http/session"
)

const (
	// FormField names the multipart field files arrive in.
	FormField = "files[]"

	// DirName is the directory under the public directory uploads are written to.
	DirName = "uploads"

	defaultMaxMemory   = 32 << 20
	maxNameTries       = 100
	mimeDetectionBytes = 512
	octetStream        = "application/octet-stream"

	errBadUpload = "Unable to read upload."
	errSave      = "Unable to save upload."
)

var (
	ErrEmptyFile = errors.New("empty file")
	ErrBadName   = errors.New("bad file name")
)

// A File describes one file saved from an upload.
type File struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
	Type string `json:"type"`
	URL  string `json:"url"`
}

// A Handler saves the files of a multipart upload beneath the public directory,
// grouping each upload in a directory named for the Unix milliseconds it arrived at:
//
//	<public>/uploads/1700000000000/photo.jpg => /uploads/1700000000000/photo.jpg
type Handler struct {
	clock     func() time.Time
	d         *resp.Responder
	maxMemory int64
	public    string
}

// New constructs a *Handler writing beneath public and responding with d.
func New(public string, d *resp.Responder, opts ...Opt) *Handler {
	h := &Handler{
		clock:     time.Now,
		d:         d,
		maxMemory: defaultMaxMemory,
		public:    public,
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// ServeHTTP saves each file in the upload, responding with JSON listing them:
//
//	{"files":[{"name":"photo.jpg","size":1024,"type":"image/jpeg","url":"/uploads/1700000000000/photo.jpg"}]}
//
// Files sharing a name are suffixed so none overwrites another: photo.jpg, photo-1.jpg.
// When the request has a session, the outcome is also flashed for the next page the visitor views.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		h.d.Json(w, r, resp.Code(http.StatusMethodNotAllowed), resp.Data(errBody(http.StatusText(http.StatusMethodNotAllowed))))
		return
	}

	if err := r.ParseMultipartForm(h.maxMemory); err != nil {
		h.fail(w, r, http.StatusBadRequest, errBadUpload, err)
		return
	}
	defer r.MultipartForm.RemoveAll()

	headers := r.MultipartForm.File[FormField]
	if len(headers) == 0 {
		h.fail(w, r, http.StatusBadRequest, errBadUpload, nil)
		return
	}

	stamp := strconv.FormatInt(h.clock().UnixMilli(), 10)
	files := make([]File, 0, len(headers))
	for _, fh := range headers {
		f, err := h.save(stamp, fh)
		if errors.Is(err, ErrEmptyFile) || errors.Is(err, ErrBadName) {
			h.fail(w, r, http.StatusBadRequest, errBadUpload, err)
			return
		}

		if err != nil {
			h.fail(w, r, http.StatusInternalServerError, errSave, err)
			return
		}

		files = append(files, f)
	}

	h.d.Json(w, r, h.flash(r, []resp.Fn{resp.Data(map[string][]File{"files": files})}, session.Success(session.UploadOkMsg))...)
}

// fail responds with code and msg, flashing why the upload went wrong.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, code int, msg string, err error) {
	fns := []resp.Fn{resp.Code(code), resp.Data(errBody(msg))}
	if err != nil {
		fns = append([]resp.Fn{resp.Err(err)}, fns...)
	}

	f := session.Danger(session.UploadErrMsg)
	if code < http.StatusInternalServerError {
		f = session.Warning(session.BadInputMsg)
	}

	h.d.Json(w, r, h.flash(r, fns, f)...)
}

// flash adds f to fns if r has a session to hold it.
func (h *Handler) flash(r *http.Request, fns []resp.Fn, f session.Flash) []resp.Fn {
	if _, err := h.d.Session(r.Context()); err != nil {
		return fns
	}

	return append(fns, resp.Flash(f))
}

// save writes fh into the upload directory for stamp.
func (h *Handler) save(stamp string, fh *multipart.FileHeader) (File, error) {
	name, err := cleanName(fh.Filename)
	if err != nil {
		return File{}, err
	}

	if fh.Size == 0 {
		return File{}, fmt.Errorf("%w: %s", ErrEmptyFile, name)
	}

	src, err := fh.Open()
	if err != nil {
		return File{}, err
	}
	defer src.Close()

	head := make([]byte, mimeDetectionBytes)
	n, err := io.ReadFull(src, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return File{}, err
	}

	dir := filepath.Join(h.public, DirName, stamp)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return File{}, err
	}

	name, size, err := write(dir, name, io.MultiReader(bytes.NewReader(head[:n]), src))
	if err != nil {
		return File{}, err
	}

	return File{
		Name: name,
		Size: size,
		Type: detectType(fh, head[:n]),
		URL:  path.Join("/", DirName, stamp, name),
	}, nil
}

// write copies src into a new file in dir, returning the name it was given and its size.
// A file left incomplete is removed.
func write(dir, name string, src io.Reader) (string, int64, error) {
	dst, name, err := create(dir, name)
	if err != nil {
		return "", 0, err
	}

	size, err := io.Copy(dst, src)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}

	if err != nil {
		os.Remove(dst.Name())
		return "", 0, err
	}

	return name, size, nil
}

// create opens a file for name in dir that did not exist before,
// suffixing name until it finds one free:
//
//	photo.jpg, photo-1.jpg, photo-2.jpg
func create(dir, name string) (*os.File, string, error) {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	for i := 0; i < maxNameTries; i++ {
		try := name
		if i > 0 {
			try = fmt.Sprintf("%s-%d%s", base, i, ext)
		}

		f, err := os.OpenFile(filepath.Join(dir, try), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}

		return f, try, err
	}

	return nil, "", fmt.Errorf("%w: no free name like %q", ErrBadName, name)
}

// cleanName strips any directories from name, refusing names that cannot be a file.
func cleanName(name string) (string, error) {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	switch name {
	case "", ".", "..", "/":
		return "", fmt.Errorf("%w: %q", ErrBadName, name)
	}

	return name, nil
}

// detectType prefers the type the client declared, sniffing the content otherwise.
func detectType(fh *multipart.FileHeader, head []byte) string {
	if ct := fh.Header.Get("Content-Type"); ct != "" && ct != octetStream {
		return ct
	}

	if len(head) == 0 {
		return octetStream
	}

	return http.DetectContentType(head)
}

func errBody(msg string) map[string]string { return map[string]string{"error": msg} }

// An Opt configures a *Handler.
type Opt func(*Handler)

// WithClock sets what time an upload is considered to arrive at.
func WithClock(clock func() time.Time) Opt {
	return func(h *Handler) {
		if clock != nil {
			h.clock = clock
		}
	}
}

// WithMaxMemory sets how many bytes of an upload are held in memory before spilling to disk.
func WithMaxMemory(n int64) Opt {
	return func(h *Handler) {
		if n > 0 {
			h.maxMemory = n
		}
	}
}
