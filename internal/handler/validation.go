package handler

import (
	"fmt"

	"github.com/eventease/manager/pkg/model"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func fieldType(fl validator.FieldLevel) bool {
	return model.FieldType(fl.Field().String()).Valid()
}

// RegisterValidation registers the custom binding validators with Gin's validation engine.
func RegisterValidation() error {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		return v.RegisterValidation("fieldType", fieldType)
	}
	return fmt.Errorf("error getting validation engine")
}
