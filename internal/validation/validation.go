// Package validation wraps a shared validator instance that reports every
// failing field at once instead of stopping at the first.
package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// Report fields by their configuration key when they have one.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("yaml"), ",")
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// Missing validates the named struct fields of v and returns the reported
// name of every field that failed, in declaration order. With no fields
// given, the whole struct is validated.
func Missing(v any, fields ...string) ([]string, error) {
	var err error
	if len(fields) == 0 {
		err = instance().Struct(v)
	} else {
		err = instance().StructPartial(v, fields...)
	}
	if err == nil {
		return nil, nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, err
	}

	missing := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		missing = append(missing, fe.Field())
	}
	return missing, nil
}
