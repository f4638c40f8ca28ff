// Package validator adapts go-playground/validator to Echo's Validator interface.
package validator

import (
	domainerrors "ratehub/internal/domain/errors"

	playground "github.com/go-playground/validator/v10"
)

// CustomValidator wraps a validator instance for use as echo.Validator.
type CustomValidator struct {
	validate *playground.Validate
}

// New creates a validator with struct tag validation enabled.
func New() *CustomValidator {
	return &CustomValidator{validate: playground.New(playground.WithRequiredStructEnabled())}
}

// Validate checks the bound request struct against its validate tags.
// Failures surface as a 400 through the application error handler.
func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validate.Struct(i); err != nil {
		return domainerrors.ErrInvalidInput.WithDetails(err.Error())
	}

	return nil
}
