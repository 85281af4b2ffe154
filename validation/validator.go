// Package validation turns struct validation failures into the field-level
// errors returned in the response envelope.
package validation

import (
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"gopkg.in/go-playground/validator.v9"
	entranslations "gopkg.in/go-playground/validator.v9/translations/en"

	"github.com/zahid-akhtar7979/wildlife-api/models"
)

// Normalizer is implemented by request bodies that trim their inputs
// before validation.
type Normalizer interface {
	Normalize()
}

type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

func New() (*Validator, error) {
	locale := en.New()
	uni := ut.New(locale, locale)
	translator, _ := uni.GetTranslator("en")

	validate := validator.New()
	validate.RegisterTagNameFunc(jsonFieldName)

	if err := entranslations.RegisterDefaultTranslations(validate, translator); err != nil {
		return nil, err
	}
	if err := registerImageQuality(validate, translator); err != nil {
		return nil, err
	}

	return &Validator{validate: validate, translator: translator}, nil
}

// MustNew is New for wiring code that cannot continue without a validator.
func MustNew() *Validator {
	v, err := New()
	if err != nil {
		panic(err)
	}
	return v
}

// Struct normalizes s when it supports it, validates it and reports every
// violation as a models.ErrorValidation.
func (v *Validator) Struct(s interface{}) error {
	if n, ok := s.(Normalizer); ok {
		n.Normalize()
	}

	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	fields := make([]models.FieldError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, models.FieldError{
			Field:   fe.Field(),
			Message: fe.Translate(v.translator),
		})
	}
	return models.ErrorValidation{Fields: fields}
}

// DecodeError converts a JSON binding failure into a validation error that
// names the offending field when the decoder knows it.
func DecodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return models.NewValidationError(typeErr.Field, typeErr.Field+" must be a valid "+typeErr.Type.String())
	}
	if errors.Is(err, io.EOF) {
		return models.NewValidationError("body", "request body is required")
	}
	return models.NewValidationError("body", "request body must be valid JSON")
}

func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	switch name {
	case "-":
		return ""
	case "":
		return field.Name
	}
	return name
}

// imageQualities are the automatic quality levels the media host accepts.
var imageQualities = map[string]bool{
	"auto":      true,
	"auto:good": true,
	"auto:best": true,
	"auto:eco":  true,
	"auto:low":  true,
}

// registerImageQuality adds the image_quality tag: an automatic level or an
// integer percentage from 1 to 100.
func registerImageQuality(validate *validator.Validate, translator ut.Translator) error {
	err := validate.RegisterValidation("image_quality", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if imageQualities[value] {
			return true
		}
		n, err := strconv.Atoi(value)
		return err == nil && strconv.Itoa(n) == value && n >= 1 && n <= 100
	})
	if err != nil {
		return err
	}

	return validate.RegisterTranslation("image_quality", translator,
		func(ut ut.Translator) error {
			return ut.Add("image_quality", "{0} must be auto, auto:good, auto:best, auto:eco, auto:low or 1-100", true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			msg, _ := ut.T("image_quality", fe.Field())
			return msg
		},
	)
}
