package dto

import (
	"github.com/go-playground/validator/v10"

	"teachove/backend/internal/timefmt"
)

// RegisterValidators 注册接口格式校验标签：apidate (DD-MM-YYYY)、apitime (h:mm AM/PM)
func RegisterValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("apidate", func(fl validator.FieldLevel) bool {
		_, err := timefmt.ParseAPIDate(fl.Field().String())
		return err == nil
	}); err != nil {
		return err
	}
	return v.RegisterValidation("apitime", func(fl validator.FieldLevel) bool {
		_, _, err := timefmt.ParseAPITime(fl.Field().String())
		return err == nil
	})
}
