package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/workoutdiary/workoutdiary/internal/services"
	appErrors "github.com/workoutdiary/workoutdiary/pkg/errors"
	"github.com/workoutdiary/workoutdiary/pkg/logger"
	"github.com/workoutdiary/workoutdiary/pkg/response"
)

// respondError renders a service error using the API error catalogue.
func respondError(c *gin.Context, err error) {
	response.Error(c, translateError(c, err))
}

func translateError(c *gin.Context, err error) *appErrors.AppError {
	var validation *services.ValidationError
	switch {
	case errors.As(err, &validation):
		return appErrors.NewValidationFailed("", validation.Violations)
	case errors.Is(err, services.ErrValidationFailed):
		return appErrors.ErrValidationFailed
	case errors.Is(err, services.ErrEmailAlreadyRegistered):
		return appErrors.ErrEmailAlreadyRegistered
	case errors.Is(err, services.ErrInvalidOrExpiredCode):
		return appErrors.ErrInvalidOrExpiredCode
	case errors.Is(err, services.ErrAccountNotFound):
		return appErrors.ErrAccountNotFound
	case errors.Is(err, services.ErrWorkoutNotFound):
		return appErrors.ErrWorkoutNotFound
	}

	path := ""
	if c != nil && c.Request != nil {
		path = c.Request.URL.Path
	}
	logger.WithModule("api").Error("request failed", zap.String("path", path), zap.Error(err))
	return appErrors.ErrInternalServer.WithInternal(err)
}
