package validator

import (
	"fmt"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
)

type testPayload struct {
	FirstName string `json:"firstName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Age       int    `json:"age" validate:"gte=1,lte=120"`
}

func TestValidateStructSuccess(t *testing.T) {
	payload := testPayload{FirstName: "John", Email: "john@example.com", Age: 21}
	require.NoError(t, ValidateStruct(payload))
}

func TestValidateStructFailures(t *testing.T) {
	err := ValidateStruct(&testPayload{Email: "invalid", Age: 1000})
	require.Error(t, err)

	vErrs, ok := AsValidationErrors(err)
	require.True(t, ok)
	require.Equal(t, []string{"firstName", "email", "age"}, vErrs.Fields())
	require.Equal(t, "lte", vErrs[2].Tag)
	require.Equal(t, "120", vErrs[2].Param)
	require.Equal(t, 1000, vErrs[2].Value)
	require.Equal(t, "firstName failed on required; email failed on email; age failed on lte=120", vErrs.Error())
}

func TestValidateStructNestedFieldPath(t *testing.T) {
	type set struct {
		Reps int `json:"reps" validate:"gte=1"`
	}
	type session struct {
		Sets []set `json:"sets" validate:"dive"`
	}

	vErrs, ok := AsValidationErrors(ValidateStruct(session{Sets: []set{{Reps: 3}, {Reps: 0}}}))
	require.True(t, ok)
	require.Equal(t, []string{"sets[1].reps"}, vErrs.Fields())
}

func TestAsValidationErrorsUnwraps(t *testing.T) {
	wrapped := fmt.Errorf("bind: %w", ValidationErrors{{Field: "title", Tag: "notblank"}})
	vErrs, ok := AsValidationErrors(wrapped)
	require.True(t, ok)
	require.Len(t, vErrs, 1)

	_, ok = AsValidationErrors(fmt.Errorf("other"))
	require.False(t, ok)
}

func TestRegisterValidation(t *testing.T) {
	require.NoError(t, RegisterValidation("workout", func(fl validator.FieldLevel) bool {
		return fl.Field().String() == "workout"
	}))

	type custom struct {
		Value string `validate:"workout"`
	}

	require.NoError(t, ValidateStruct(custom{Value: "workout"}))
	require.Error(t, ValidateStruct(custom{Value: "other"}))
}

func TestNotBlankRejectsWhitespace(t *testing.T) {
	type titled struct {
		Title string `json:"title" validate:"notblank"`
	}

	vErrs, ok := AsValidationErrors(ValidateStruct(titled{Title: "   "}))
	require.True(t, ok)
	require.Len(t, vErrs, 1)
	require.Equal(t, "title", vErrs[0].Field)
	require.Equal(t, "notblank", vErrs[0].Tag)

	require.NoError(t, ValidateStruct(titled{Title: "Morning running"}))
}
