// Package validator decodes JSON request bodies and checks them against
// go-playground struct tags. Failures come back as 400 failures.
package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"regexp"

	"seatq/shared/failure"

	val "github.com/go-playground/validator/v10"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 \-]{5,18}[0-9]$`)

// rules are tags added on top of the go-playground builtins.
var rules = map[string]val.Func{
	"phone": func(fl val.FieldLevel) bool {
		phone, ok := fl.Field().Interface().(string)

		return ok && phonePattern.MatchString(phone)
	},
}

var validate = newValidate()

func newValidate() *val.Validate {
	v := val.New(val.WithRequiredStructEnabled())

	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("validator: register %q: %v", tag, err))
		}
	}

	return v
}

// Validate decodes r into data and validates the result.
func Validate[T any](r io.Reader, data *T) error {
	if err := json.NewDecoder(r).Decode(data); err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	return asFailure(validate.Struct(data))
}

func ValidateVar(field any, tag string) error {
	return asFailure(validate.Var(field, tag))
}

func asFailure(err error) error {
	if err == nil {
		return nil
	}

	return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
}
