package validator

import (
	"errors"
	"reflect"

	"github.com/go-playground/validator/v10"

	apperrors "nailbook/pkg/errors"
	"nailbook/pkg/model"
)

// BookingValidator checks a submission for required fields. The first
// missing field is reported as a "Missing: <field>" validation error using
// the payload's wire name from the `field` struct tag.
type BookingValidator struct {
	validate *validator.Validate
}

func NewBookingValidator() *BookingValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("field"); name != "" {
			return name
		}
		return fld.Name
	})
	return &BookingValidator{validate: v}
}

func (v *BookingValidator) Validate(req *model.BookingRequest) error {
	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		return apperrors.MissingField(validationErrs[0].Field())
	}
	return apperrors.Validation(err.Error())
}
