package utils

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct runs the `validate` tags of an input struct and folds
// failures into the Validation error kind. Ledger services call this so the
// rules hold for non-HTTP callers too (maintenance commands, tests).
func ValidateStruct(input any) error {
	if err := validate.Struct(input); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			first := verrs[0]
			return ValidationError(fmt.Sprintf("field %s failed rule %s", first.Field(), first.Tag()))
		}
		return ValidationError(err.Error())
	}
	return nil
}
