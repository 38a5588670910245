package serverutils

import (
	"askn7-backend/internal/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest runs struct-tag validation on a request DTO and converts
// failures into a validation-kind error before anything is persisted.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		return apperror.NewValidation("invalid request body", err)
	}
	return nil
}
