// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"tokenvest/internal/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"golang.org/x/text/currency"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterOn(v)
	}
}

// RegisterOn installs the custom tags on v.
func RegisterOn(v *validator.Validate) {
	_ = v.RegisterValidation("iso4217", validateISO4217)
	_ = v.RegisterValidation("investment_type", validateInvestmentType)
	_ = v.RegisterValidation("investment_category", validateInvestmentCategory)
	_ = v.RegisterValidation("decimal_positive", validateDecimalPositive)
	_ = v.RegisterValidation("decimal_nonnegative", validateDecimalNonNegative)
}

func validateISO4217(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len(s) != 3 {
		return false
	}
	unit, err := currency.ParseISO(s)
	return err == nil && unit.String() == s
}

func validateInvestmentType(fl validator.FieldLevel) bool {
	return models.ValidInvestmentType(fl.Field().String())
}

func validateInvestmentCategory(fl validator.FieldLevel) bool {
	return models.ValidCategory(fl.Field().String())
}
