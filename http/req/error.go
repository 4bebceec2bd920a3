package req

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xy-planning-network/meadowlark"
)

var (
	ErrBadAny         = errors.New("bad value passed as any")
	ErrBadFormat      = errors.New("bad format")
	ErrNotImplemented = errors.New("not implemented")
)

// A ValidationError is an issue with a concrete value not matching the rule set on its field.
type ValidationError struct {
	Field string `json:"field"`
	Got   any    `json:"got"`
	Rule  string `json:"rule,omitempty"`
}

// ValidationErrors is a set of ValidationError.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msg := fmt.Sprintf("field=%q rule=%q got=%q", err.Field, err.Rule, fmt.Sprint(err.Got))
		msgs = append(msgs, msg)
	}

	return strings.Join(msgs, "\n")
}

func (v ValidationErrors) MarshalJSON() ([]byte, error) {
	var errs struct {
		E []ValidationError `json:"validationErrors,omitempty"`
	}

	errs.E = append(errs.E, v...)
	return json.Marshal(errs)
}

// Fields lists the fields failing validation.
func (v ValidationErrors) Fields() []string {
	fields := make([]string, 0, len(v))
	for _, err := range v {
		fields = append(fields, err.Field)
	}

	return fields
}

func (ValidationErrors) Unwrap() error { return meadowlark.ErrNotValid }
