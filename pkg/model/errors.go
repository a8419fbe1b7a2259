package model

import (
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrNilCatalog      = errors.New("catalog is nil")
	ErrDuplicateCourse = errors.New("duplicate course in catalog")
	ErrEmptyInput      = errors.New("input is empty")
)

// FieldError is used to indicate an error with a specific input field
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// InputError reports a malformed catalog or transcript. Course is empty when the error is not tied to a single catalog entry
type InputError struct {
	Course string
	Err    error
	Fields []FieldError
}

func (err *InputError) Error() string {
	var builder strings.Builder
	builder.WriteString("invalid input")
	if err.Course != "" {
		builder.WriteString(" for course ")
		builder.WriteString(`"` + err.Course + `"`)
	}
	if err.Err != nil {
		builder.WriteString(": ")
		builder.WriteString(err.Err.Error())
	}
	for _, field := range err.Fields {
		builder.WriteString("; ")
		builder.WriteString(field.Field)
		builder.WriteString(": ")
		builder.WriteString(field.Error)
	}
	return builder.String()
}

func (err *InputError) Unwrap() error { return err.Err }

// IsInputError reports whether err, or any error it wraps, is an *InputError
func IsInputError(err error) bool {
	var inputErr *InputError
	return errors.As(err, &inputErr)
}
