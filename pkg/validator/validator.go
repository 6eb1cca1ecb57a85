package validator

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/shopspring/decimal"
)

// FieldError is one failed constraint, already rendered for humans.
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Value   string `json:"value,omitempty"`
	Message string `json:"message"`
}

var (
	validate = validator.New(validator.WithRequiredStructEnabled())
	trans    ut.Translator

	usernamePattern   = regexp.MustCompile(`^[a-zA-Z0-9\s_.-]+$`)
	personNamePattern = regexp.MustCompile(`^[a-zA-ZÀ-ÿ\s]+$`)
)

func init() {
	locale := en.New()
	trans, _ = ut.New(locale, locale).GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		panic(err)
	}

	// Report JSON names instead of Go field names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		switch name {
		case "-":
			return ""
		case "":
			return fld.Name
		}
		return name
	})

	validate.RegisterCustomTypeFunc(func(v reflect.Value) interface{} {
		if d, ok := v.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})

	registerPattern("username", usernamePattern,
		"{0} can only contain letters, numbers, spaces, dots, hyphens and underscores")
	registerPattern("person_name", personNamePattern,
		"{0} can only contain letters and spaces")
}

func registerPattern(tag string, re *regexp.Regexp, message string) {
	validate.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	})
	validate.RegisterTranslation(tag, trans, func(u ut.Translator) error {
		return u.Add(tag, message, true)
	}, func(u ut.Translator, fe validator.FieldError) string {
		msg, _ := u.T(tag, fe.Field())
		return msg
	})
}

// RegisterType lets callers teach the validator how to unwrap their own
// wrapper types (the function returns the value tags should apply to, or nil).
func RegisterType(fn func(reflect.Value) interface{}, types ...interface{}) {
	validate.RegisterCustomTypeFunc(fn, types...)
}

// ValidateStruct checks every field and returns all failures in declaration order.
func ValidateStruct(data interface{}) []*FieldError {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []*FieldError{{Message: err.Error()}}
	}

	errors := make([]*FieldError, 0, len(validationErrors))
	for _, fe := range validationErrors {
		errors = append(errors, &FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Value:   fe.Param(),
			Message: fe.Translate(trans),
		})
	}
	return errors
}

// Messages flattens field errors into their rendered messages.
func Messages(errs []*FieldError) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Message
	}
	return out
}

// FirstError returns only the first failure, for short forms that report one
// problem at a time.
func FirstError(data interface{}) *FieldError {
	if errs := ValidateStruct(data); len(errs) > 0 {
		return errs[0]
	}
	return nil
}
