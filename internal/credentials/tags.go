package credentials

import (
	"reflect"

	"github.com/go-playground/validator/v10"
)

// Validator tag names backed by the credential rules.
const (
	TagEmail    = "email_format"
	TagPassword = "password_policy"
	TagAge      = "age_range"
)

// RegisterFunc matches validator.Validate.RegisterValidation and pkg/validator.RegisterValidation.
type RegisterFunc func(tag string, fn validator.Func) error

// RegisterValidators exposes the credential rules as struct tags through register.
func RegisterValidators(register RegisterFunc) error {
	rules := map[string]validator.Func{
		TagEmail: func(fl validator.FieldLevel) bool {
			if fl.Field().Kind() != reflect.String {
				return false
			}
			_, outcome := ValidateEmail(fl.Field().String())
			return outcome.OK
		},
		TagPassword: func(fl validator.FieldLevel) bool {
			if fl.Field().Kind() != reflect.String {
				return false
			}
			return ValidatePassword(fl.Field().String()).OK
		},
		TagAge: func(fl validator.FieldLevel) bool {
			switch fl.Field().Kind() {
			case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
				return ValidateAge(int(fl.Field().Int())).OK
			default:
				return false
			}
		},
	}

	for tag, fn := range rules {
		if err := register(tag, fn); err != nil {
			return err
		}
	}
	return nil
}
