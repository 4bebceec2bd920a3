package req

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// defaultMaxMemory bounds the part of a multipart form held in memory.
const defaultMaxMemory = 32 << 20

// A Parser decodes request payloads into structs and validates them.
type Parser struct {
	formDecoder
	validator
}

// NewParser constructs a *Parser.
func NewParser() *Parser {
	return &Parser{
		formDecoder: newFormDecoder(),
		validator:   newValidator(),
	}
}

// ParseBody decodes into a pointer to a struct the JSON data in body.
// If successful, ParseBody runs validation against the contents,
// returning an ErrNotValid if the data fails validation rules.
//
// ParseBody reads all of body.
// Use a [io.TeeReader] if it needs to be read again.
func (p *Parser) ParseBody(body io.Reader, structPtr any) error {
	var ourFault *json.InvalidUnmarshalError
	err := json.NewDecoder(body).Decode(structPtr)
	if errors.As(err, &ourFault) {
		return fmt.Errorf("http/req: %w: ParseBody called with non-pointer: %s", ErrBadAny, err)
	}

	if err != nil {
		return fmt.Errorf("http/req: %w: failed decoding request body: %s", ErrBadFormat, err)
	}

	if err := p.validate(structPtr); err != nil {
		return fmt.Errorf("http/req: %T failed validation: %w", structPtr, err)
	}

	return nil
}

// ParseForm decodes into a pointer to a struct the form data of r,
// whether url-encoded or multipart, using "schema" struct tags.
// If successful, ParseForm runs validation against the contents,
// returning an ErrNotValid if the data fails validation rules.
//
// Values in the query string are not considered.
func (p *Parser) ParseForm(r *http.Request, structPtr any) error {
	if err := r.ParseMultipartForm(defaultMaxMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return fmt.Errorf("http/req: %w: failed parsing form: %s", ErrBadFormat, err)
	}

	return p.parseValues("form", r.PostForm, structPtr)
}

// ParseQueryParams decodes into a pointer to a struct the query param data in params.
// If successful, ParseQueryParams runs validation against the contents,
// returning an ErrNotValid if the data fails validation rules.
func (p *Parser) ParseQueryParams(params url.Values, structPtr any) error {
	return p.parseValues("query params", params, structPtr)
}

func (p *Parser) parseValues(kind string, vals url.Values, structPtr any) error {
	if err := p.decode(structPtr, vals); err != nil {
		return fmt.Errorf("http/req: failed decoding request %s: %w", kind, err)
	}

	if err := p.validate(structPtr); err != nil {
		return fmt.Errorf("http/req: %T failed validation: %w", structPtr, err)
	}

	return nil
}
