package settings

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/salonfin/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// NewValidator returns a validator that understands decimal.Decimal fields
// and reports JSON field names.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validationError turns the first validator failure into a domain error
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		msg := fmt.Sprintf("%s failed on '%s'", fe.Namespace(), fe.Tag())
		if fe.Param() != "" {
			msg = fmt.Sprintf("%s failed on '%s=%s'", fe.Namespace(), fe.Tag(), fe.Param())
		}
		return shared.WrapDomainError("INVALID_INPUT", msg, err)
	}
	return shared.WrapDomainError("INVALID_INPUT", err.Error(), err)
}
