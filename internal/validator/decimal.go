package validator

import (
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var decimalType = reflect.TypeOf(decimal.Decimal{})

func decimalField(fl validator.FieldLevel) (decimal.Decimal, bool) {
	field := fl.Field()
	if field.Kind() == reflect.Ptr {
		if field.IsNil() {
			return decimal.Zero, false
		}
		field = field.Elem()
	}
	if field.Type() != decimalType {
		return decimal.Zero, false
	}
	return field.Interface().(decimal.Decimal), true
}

func validateDecimalPositive(fl validator.FieldLevel) bool {
	d, ok := decimalField(fl)
	return ok && d.IsPositive()
}

func validateDecimalNonNegative(fl validator.FieldLevel) bool {
	d, ok := decimalField(fl)
	return ok && !d.IsNegative()
}
