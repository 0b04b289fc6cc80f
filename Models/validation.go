package Models

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/locales/pt_BR"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	pt_translations "github.com/go-playground/validator/v10/translations/pt_BR"
)

var phonePattern = regexp.MustCompile(`^\(\d{2}\) \d{4,5}-\d{4}$`)

var (
	validatorOnce sync.Once
	validate      *validator.Validate
	translator    ut.Translator
)

func setupValidator() {
	locale := pt_BR.New()
	uni := ut.New(locale, locale)
	translator, _ = uni.GetTranslator(locale.Locale())

	validate = validator.New()
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = pt_translations.RegisterDefaultTranslations(validate, translator)

	_ = validate.RegisterValidation("option", func(fl validator.FieldLevel) bool {
		g, ok := LookupGroup(fl.Param())
		return ok && g.Has(fl.Field().String())
	})
	_ = validate.RegisterValidation("phone_br", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	_ = registerMessage("option", "{0} contém uma opção desconhecida")
	_ = registerMessage("phone_br", "{0} deve seguir o formato (00) 00000-0000")
}

func registerMessage(tag, text string) error {
	return validate.RegisterTranslation(tag, translator,
		func(t ut.Translator) error {
			return t.Add(tag, text, true)
		},
		func(t ut.Translator, fe validator.FieldError) string {
			msg, err := t.T(tag, fe.Field())
			if err != nil {
				return fe.Error()
			}
			return msg
		})
}

// Validate checks a record against the form schema. The checklist type is
// not required here because drafts may be saved before it is chosen.
func Validate(r *ChecklistRecord) error {
	validatorOnce.Do(setupValidator)

	err := validate.Struct(r)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	ve := &ValidationError{Fields: make(map[string]string, len(fieldErrs))}
	for _, fe := range fieldErrs {
		ns := fe.Namespace()
		if i := strings.Index(ns, "."); i >= 0 {
			ns = ns[i+1:]
		}
		ve.Fields[ns] = fe.Translate(translator)
	}
	return ve
}
