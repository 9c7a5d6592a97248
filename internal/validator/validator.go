package validator

import (
	"fmt"
	"reflect"
	"strings"

	ierr "github.com/flexprice/invoice-dashboard/internal/errors"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate *validator.Validate

func NewValidator() *validator.Validate {
	validate = validator.New()
	validate.RegisterTagNameFunc(formFieldName)
	_ = validate.RegisterValidation("decimal", isDecimal)
	return validate
}

// ValidateRequest validates req against its struct tags and returns a
// validation error carrying one message per failing field
func ValidateRequest(req interface{}) error {
	if validate == nil {
		return ierr.NewError("validator not initialized").
			WithHint("Validator must be initialized before using it").
			Mark(ierr.ErrSystem)
	}

	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		var validateErrs validator.ValidationErrors
		if ierr.As(err, &validateErrs) {
			for _, fe := range validateErrs {
				fields[fieldName(fe)] = fieldMessage(fe)
			}
		}
		return ierr.WithError(err).
			WithHint("Invalid fields. Failed to submit the form.").
			WithFieldErrors(fields).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// isDecimal accepts strings that parse as a finite decimal number
func isDecimal(fl validator.FieldLevel) bool {
	s := strings.TrimSpace(fl.Field().String())
	if s == "" {
		return false
	}
	_, err := decimal.NewFromString(s)
	return err == nil
}

// formFieldName reports fields by their submitted form name
func formFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

func fieldName(fe validator.FieldError) string {
	name := fe.Field()
	if name == "" {
		return fe.StructField()
	}
	return name
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "decimal":
		return "must be a number"
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	default:
		return fmt.Sprintf("failed on the %q rule", fe.Tag())
	}
}
