package utils

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/hashicorp/go-multierror"
)

var (
	validate   = validator.New(validator.WithRequiredStructEnabled())
	translator ut.Translator
)

func init() {
	english := en.New()
	translator, _ = ut.New(english, english).GetTranslator("en")
	if err := entranslations.RegisterDefaultTranslations(validate, translator); err != nil {
		panic(err)
	}

	// report fields by their json names
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Validate checks the `validate` tags of a struct and returns translated messages
func Validate(object any) error {
	err := validate.Struct(object)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	var multErr *multierror.Error
	for _, fieldErr := range fieldErrs {
		multErr = multierror.Append(multErr, errors.New(fieldErr.Translate(translator)))
	}

	return flatten(multErr)
}
