package service

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// checkInput validates in and converts the first failing rule into a
// ValidationError using messages, keyed by "Field.tag". Fields are checked in
// declaration order, so the first message is the one a user sees.
func checkInput(in interface{}, messages map[string]string) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	fe := fieldErrs[0]
	key, ok := messages[fe.StructField()+"."+fe.Tag()]
	if !ok {
		key = "errors.generic"
	}
	return invalid(strings.ToLower(fe.StructField()), key)
}
