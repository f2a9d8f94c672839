package models

import (
	"reflect"
	"strings"
	"sync"

	"github.com/Ramsey-B/fern/pkg/errors"
	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// Validate checks a record against its validate tags. A failure is returned
// as a *errors.ParseError naming the first offending field by its JSON name.
func Validate(entity string, record any) error {
	err := validatorInstance().Struct(record)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return errors.WrapParseError(err).AddEntity(entity)
	}

	first := validationErrors[0]
	return errors.NewParseErrorf("failed '%s' validation", first.Tag()).
		AddEntity(entity).
		AddField(first.Field())
}
