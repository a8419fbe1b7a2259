package model

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	validate   *validator.Validate
	translator ut.Translator

	// custom validation tags & texts
	courseIdTag   = "courseid"
	courseIdText  = "{0} must be a non-blank course identifier without whitespace"
	courseIdRegex = regexp.MustCompile(`^\S+$`)
)

// Instantiate the validator for use.
func init() {
	validate = validator.New()

	// Register the english error messages for validation errors.
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation(courseIdTag, courseIdValidation)
	registerCustomTranslation(courseIdTag, courseIdText)
}

func registerCustomTranslation(tag, text string) {
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, false) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// courseIdValidation only allows non-blank identifiers without whitespace
func courseIdValidation(fl validator.FieldLevel) bool {
	return courseIdRegex.MatchString(fl.Field().String())
}

// validateStruct runs the struct validation and maps validator errors to field errors
func validateStruct(value any, course string) error {
	err := validate.Struct(value)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	fields := make([]FieldError, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		fields = append(fields, FieldError{Field: fieldError.Field(), Error: fieldError.Translate(translator)})
	}
	return &InputError{Course: course, Fields: fields}
}
