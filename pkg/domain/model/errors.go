package model

import "github.com/m-mizutani/goerr/v2"

// Validation errors
var (
	ErrMissingRequired = goerr.New("required field is missing")
	ErrOutOfRange      = goerr.New("value is out of range")
	ErrInvalidValue    = goerr.New("invalid value")
)

// Context keys for error values
const (
	FieldKey = "field"
	ValueKey = "value"
)

func goerrMissing(field string) error {
	return goerr.Wrap(ErrMissingRequired, "required field is missing", goerr.V(FieldKey, field))
}

func goerrInvalid(field string, value any) error {
	return goerr.Wrap(ErrInvalidValue, "invalid value", goerr.V(FieldKey, field), goerr.V(ValueKey, value))
}
