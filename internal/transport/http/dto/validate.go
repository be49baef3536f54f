package dto

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/endurancehub/endurance-hub/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// checkStruct runs tag validation and converts the first failure into a
// field-level domain error.
func checkStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		if fe.Tag() == "required" {
			return domain.ErrMissingField(fieldName(fe))
		}
		return domain.ErrInvalidField(fieldName(fe), "failed "+fe.Tag()+" validation")
	}
	return domain.ErrValidationFailed(err.Error())
}

func fieldName(fe validator.FieldError) string {
	if name := fe.Field(); name != "" {
		return name
	}
	return fe.StructField()
}
