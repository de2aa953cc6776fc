package server

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"clubhouse/internal/facility"
)

// registerValidators adds the custom binding tags the request structs use.
// Safe to call more than once; registration is idempotent.
func registerValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	v.RegisterValidation("timeofday", func(fl validator.FieldLevel) bool {
		return facility.ValidTimeOfDay(fl.Field().String())
	})
}
