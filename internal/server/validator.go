package server

import "github.com/go-playground/validator/v10"

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate runs struct tag validation for bound request bodies.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
