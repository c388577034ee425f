package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appErrors "github.com/workoutdiary/workoutdiary/pkg/errors"
	"github.com/workoutdiary/workoutdiary/pkg/logger"
	"github.com/workoutdiary/workoutdiary/pkg/response"
)

// Recovery turns a handler panic into a 500 envelope. The panic value and stack are logged, never returned.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			logger.WithModule("http").Error("handler panic",
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetString(requestIDKey)),
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()),
			)
			response.Abort(c, appErrors.ErrInternalServer)
		}()
		c.Next()
	}
}

// NotFoundHandler renders unknown routes with the standard NOT_FOUND envelope.
func NotFoundHandler(c *gin.Context) {
	response.Error(c, &appErrors.AppError{
		Code:       appErrors.ErrNotFound.Code,
		Message:    fmt.Sprintf("route %s %s not found", c.Request.Method, c.Request.URL.Path),
		StatusCode: http.StatusNotFound,
	})
}
