package httpapi

import (
	"reflect"
	"strings"

	"github.com/ashlinalex1/mindstride/internal/activity"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

const (
	clockDurationTag  = "clockduration"
	clockDurationText = "{0} must be a duration in HH:MM:SS or MM:SS form"
	requiredText      = "{0} is required"
)

// requestValidator implements echo.Validator.
type requestValidator struct {
	validate   *validator.Validate
	translator ut.Translator
}

func newRequestValidator() *requestValidator {
	enLocale := en.New()
	translator, _ := ut.New(enLocale, enLocale).GetTranslator("en")
	v := validator.New()
	_ = en_translations.RegisterDefaultTranslations(v, translator)

	// Report JSON names instead of Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation(clockDurationTag, func(fl validator.FieldLevel) bool {
		_, err := activity.ParseClockDuration(fl.Field().String())
		return err == nil
	})
	registerTranslation(v, translator, clockDurationTag, clockDurationText, false)
	registerTranslation(v, translator, "required", requiredText, true)

	return &requestValidator{validate: v, translator: translator}
}

func registerTranslation(v *validator.Validate, trans ut.Translator, tag, text string, override bool) {
	_ = v.RegisterTranslation(
		tag, trans,
		func(t ut.Translator) error { return t.Add(tag, text, override) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

func (v *requestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// fieldErrors maps each failing field to its translated message.
func (v *requestValidator) fieldErrors(errs validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(errs))
	for _, fe := range errs {
		ns := fe.Namespace()
		if i := strings.IndexByte(ns, '.'); i >= 0 {
			ns = ns[i+1:]
		}
		out[ns] = fe.Translate(v.translator)
	}
	return out
}
