package dtos

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/iota-uz/iam-console/pkg/constants"
	"github.com/iota-uz/iam-console/pkg/intl"
	"github.com/iota-uz/iam-console/pkg/serrors"
)

// StatusDTO is the body of a status change, posted as a form or sent as JSON.
type StatusDTO struct {
	Status string `form:"status" json:"status" validate:"required,lowercase,max=32"`
	// Return is the list URL to render after a change made from the list page.
	Return string `form:"return" json:"-" validate:"max=2048"`
}

func (d *StatusDTO) Ok(ctx context.Context) (map[string]string, bool) {
	err := constants.Validate.Struct(d)
	if err == nil {
		return map[string]string{}, true
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"Status": err.Error()}, false
	}
	l, _ := intl.UseLocalizer(ctx)
	errs := serrors.ProcessValidatorErrors(verrs, func(field string) string {
		return "Resources.Fields." + field
	})
	return serrors.LocalizeValidationErrors(errs, l), false
}
