// Package serrors holds coded errors that carry a translation key.
package serrors

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/iota-uz/go-i18n/v2/i18n"
)

type BaseError interface {
	error
	ErrorCode() string
	Localize(l *i18n.Localizer) string
}

type Base struct {
	Code      string
	Message   string
	LocaleKey string
}

func NewError(code, message, localeKey string) *Base {
	return &Base{Code: code, Message: message, LocaleKey: localeKey}
}

func (b *Base) Error() string {
	return b.Message
}

func (b *Base) ErrorCode() string {
	return b.Code
}

// Is matches any *Base with the same code.
func (b *Base) Is(target error) bool {
	var t *Base
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == b.Code
}

func (b *Base) Localize(l *i18n.Localizer) string {
	if l == nil || b.LocaleKey == "" {
		return b.Message
	}
	msg, err := l.Localize(&i18n.LocalizeConfig{MessageID: b.LocaleKey})
	if err != nil {
		return b.Message
	}
	return msg
}

// Code returns the code of the first BaseError in err's chain.
func Code(err error) (string, bool) {
	var be BaseError
	if errors.As(err, &be) {
		return be.ErrorCode(), true
	}
	return "", false
}

// ValidationErrors maps a field name to its error.
type ValidationErrors map[string]BaseError

func NewFieldRequiredError(field, localeKey string) BaseError {
	return NewError("FIELD_REQUIRED", field+" is required", localeKey)
}

// ProcessValidatorErrors converts validator errors into coded field errors.
// fieldLocaleKey maps a struct field name to its translation key.
func ProcessValidatorErrors(errs validator.ValidationErrors, fieldLocaleKey func(field string) string) ValidationErrors {
	out := make(ValidationErrors, len(errs))
	for _, fe := range errs {
		key := fieldLocaleKey(fe.Field())
		switch fe.Tag() {
		case "required":
			out[fe.Field()] = NewFieldRequiredError(fe.Field(), key)
		default:
			out[fe.Field()] = NewError("FIELD_INVALID", fe.Error(), "Errors.Validation."+fe.Tag())
		}
	}
	return out
}

func LocalizeValidationErrors(errs ValidationErrors, l *i18n.Localizer) map[string]string {
	out := make(map[string]string, len(errs))
	for field, err := range errs {
		out[field] = err.Localize(l)
	}
	return out
}
