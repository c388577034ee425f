package handlers

import (
	"fmt"
	"sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/workoutdiary/workoutdiary/internal/credentials"
	appErrors "github.com/workoutdiary/workoutdiary/pkg/errors"
	"github.com/workoutdiary/workoutdiary/pkg/logger"
	"github.com/workoutdiary/workoutdiary/pkg/response"
	appValidator "github.com/workoutdiary/workoutdiary/pkg/validator"
)

var registerRules sync.Once

// registerCredentialRules exposes the credential policy as struct tags on request DTOs.
func registerCredentialRules() {
	registerRules.Do(func() {
		if err := credentials.RegisterValidators(appValidator.RegisterValidation); err != nil {
			logger.WithModule("api").Error("failed to register credential validators", zap.Error(err))
		}
	})
}

// bindAndValidate binds the JSON payload into dest and runs struct validation rules.
// When validation fails, an error response is automatically written and false is returned.
func bindAndValidate[T any](c *gin.Context, dest *T) bool {
	registerCredentialRules()

	if err := c.ShouldBindJSON(dest); err != nil {
		response.Error(c, appErrors.NewBadRequest("invalid JSON payload"))
		return false
	}

	if err := appValidator.ValidateStruct(dest); err != nil {
		response.Error(c, appErrors.NewValidationFailed("", formatValidationError(err)))
		return false
	}

	return true
}

func formatValidationError(err error) credentials.Violations {
	ve, ok := appValidator.AsValidationErrors(err)
	if !ok || len(ve) == 0 {
		return credentials.Violations{{Field: "body", Reason: "invalid request payload"}}
	}

	violations := make(credentials.Violations, 0, len(ve))
	for _, failure := range ve {
		violations = append(violations, credentials.FieldViolation{
			Field:  failure.Field,
			Reason: violationReason(failure),
		})
	}
	return violations
}

func violationReason(failure appValidator.ValidationError) string {
	value, _ := failure.Value.(string)

	switch failure.Tag {
	case "required", "notblank":
		return fmt.Sprintf("%s is required", failure.Field)
	case credentials.TagEmail:
		_, outcome := credentials.ValidateEmail(value)
		return outcome.Reason
	case credentials.TagPassword:
		return credentials.ValidatePassword(value).Reason
	case credentials.TagAge:
		age, _ := failure.Value.(int)
		return credentials.ValidateAge(age).Reason
	case "datetime":
		return fmt.Sprintf("%s must use the %s format", failure.Field, "YYYY-MM-DD")
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", failure.Field, failure.Param)
	default:
		if failure.Param != "" {
			return fmt.Sprintf("%s failed validation: %s=%s", failure.Field, failure.Tag, failure.Param)
		}
		return fmt.Sprintf("%s failed validation: %s", failure.Field, failure.Tag)
	}
}
