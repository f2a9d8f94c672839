package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Gobusters/ectoerror/httperror"
)

var (
	// ErrNotFound is returned when a document lacks the anchor object a parser needs.
	ErrNotFound = errors.New("record not found")
	// ErrMissingKey is returned by builders when a fragment lacks a required key.
	ErrMissingKey = errors.New("missing required key")
	// ErrInvalidInput marks caller mistakes such as a malformed identifier or
	// an unsupported document type.
	ErrInvalidInput = errors.New("invalid input")
)

// ParseError describes a failure assembling one record. Field names the
// output field at fault, using its serialized name.
type ParseError struct {
	Entity  string
	Field   string
	Plugin  string
	Message string
	cause   error
}

func NewParseError(msg string) *ParseError {
	return &ParseError{
		Message: msg,
	}
}

func WrapParseError(e error) *ParseError {
	if e == nil {
		return nil
	}

	var parseError *ParseError
	if errors.As(e, &parseError) {
		return parseError
	}

	return &ParseError{
		Message: e.Error(),
		cause:   e,
	}
}

// NewParseErrorf creates a new ParseError with a formatted message. A %w
// argument is kept as the cause.
func NewParseErrorf(format string, args ...any) *ParseError {
	err := fmt.Errorf(format, args...)
	return &ParseError{
		Message: err.Error(),
		cause:   errors.Unwrap(err),
	}
}

func (e *ParseError) Error() string {
	path := []string{}
	if e.Entity != "" {
		path = append(path, fmt.Sprintf("entity '%s'", e.Entity))
	}
	if e.Field != "" {
		path = append(path, fmt.Sprintf("field '%s'", e.Field))
	}
	if e.Plugin != "" {
		path = append(path, fmt.Sprintf("plugin '%s'", e.Plugin))
	}

	if len(path) == 0 {
		return e.Message
	}

	return strings.Join(path, " -> ") + ": " + e.Message
}

func (e *ParseError) Unwrap() error {
	return e.cause
}

func (e *ParseError) AddEntity(entity string) *ParseError {
	e.Entity = entity
	return e
}

func (e *ParseError) AddField(field string) *ParseError {
	e.Field = field
	return e
}

func (e *ParseError) AddPlugin(plugin string) *ParseError {
	e.Plugin = plugin
	return e
}

func (e *ParseError) ToHTTPError() *httperror.HTTPError {
	return httperror.NewHTTPError(http.StatusUnprocessableEntity, e.Error()).AddMetaValue("entity", e.Entity).AddMetaValue("field", e.Field).AddMetaValue("plugin", e.Plugin)
}

func IsParseError(err error) bool {
	var parseError *ParseError
	return errors.As(err, &parseError)
}

// FieldOf returns the field named by a ParseError anywhere in err's chain.
func FieldOf(err error) string {
	var parseError *ParseError
	if errors.As(err, &parseError) {
		return parseError.Field
	}
	return ""
}

// MissingKey wraps ErrMissingKey with the key path that was absent.
func MissingKey(path string) error {
	return fmt.Errorf("%w: %s", ErrMissingKey, path)
}

// ToHTTPError maps any error produced by the parsing stack to an HTTP error.
func ToHTTPError(err error) *httperror.HTTPError {
	if err == nil {
		return nil
	}

	if httperror.IsHTTPError(err) {
		return httperror.ToHTTPError(err)
	}

	var parseError *ParseError
	switch {
	case errors.As(err, &parseError):
		return parseError.ToHTTPError()
	case errors.Is(err, ErrNotFound):
		return httperror.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidInput):
		return httperror.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return httperror.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

// Is, As and Unwrap mirror the standard library so callers only need one
// errors import.
func Is(err, target error) bool { return errors.Is(err, target) }

func As(err error, target any) bool { return errors.As(err, target) }

func Unwrap(err error) error { return errors.Unwrap(err) }

func New(text string) error { return errors.New(text) }
