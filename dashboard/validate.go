package dashboard

import (
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	// custom validation texts
	requiredText = "{0} is required"
	dateText     = "{0} must be a date"
)

// Validator checks intent forms and renders their errors in English.
type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

func NewValidator() *Validator {
	validate := validator.New()

	// Register the english error messages for validation errors.
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Use form field names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v := &Validator{validate: validate, translator: translator}
	v.registerTranslation("required", requiredText)
	v.registerTranslation("required_if", requiredText)
	v.registerTranslation("required_with", requiredText)
	v.registerTranslation("datetime", dateText)
	return v
}

func (v *Validator) registerTranslation(tag, text string) {
	_ = v.validate.RegisterTranslation(
		tag, v.translator,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// Struct validates a form. Failures are validator.ValidationErrors.
func (v *Validator) Struct(form interface{}) error {
	return v.validate.Struct(form)
}

// Messages translates validation errors, sorted for stable output.
func (v *Validator) Messages(errs validator.ValidationErrors) []string {
	msgs := make([]string, 0, len(errs))
	for _, fe := range errs {
		msgs = append(msgs, fe.Translate(v.translator))
	}
	sort.Strings(msgs)
	return msgs
}
