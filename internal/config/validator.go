package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

func newValidator() (*validator.Validate, ut.Translator, error) {
	validate := validator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, nil, fmt.Errorf("failed to register default translations: %w", err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := validate.RegisterTranslation("dir", trans, func(ut ut.Translator) error {
		return ut.Add("dir", "{0} must be an existing directory", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("dir", strings.TrimPrefix(fe.Namespace(), "Config."))
		return t
	}); err != nil {
		return nil, nil, fmt.Errorf("failed to register dir translation: %w", err)
	}
	// The default url translation names the bare field; report the full
	// config key instead, like the dir translation does.
	if err := validate.RegisterTranslation("url", trans, func(ut ut.Translator) error {
		return ut.Add("url", "{0} must be a valid URL", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("url", strings.TrimPrefix(fe.Namespace(), "Config."))
		return t
	}); err != nil {
		return nil, nil, fmt.Errorf("failed to register url translation: %w", err)
	}

	return validate, trans, nil
}
