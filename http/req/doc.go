/*
Package req decodes and validates the payload of an HTTP request.

A Parser reads JSON bodies, form bodies and query parameters into a pointer to a struct.
Struct tags do two jobs: "json" or "schema" tags match payload keys to fields,
and "validate" tags (go-playground/validator) set the rules those fields must meet.
A "validate" tag of "enum" checks a field, or slice, of meadowlark.Enumerable values.

Whatever the encoding, failures translate to the same errors:
ErrBadAny for a programming error, ErrBadFormat for an unreadable payload,
and ValidationErrors, which unwrap to meadowlark.ErrNotValid, for data breaking the rules.
*/
package req
