package handlers

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
)

// requestContext returns the inbound request context, or Background when the handler runs without one.
func requestContext(c *gin.Context) context.Context {
	if c == nil || c.Request == nil {
		return context.Background()
	}
	return c.Request.Context()
}

// pathIDs holds the identifiers addressed by a workout route.
type pathIDs struct {
	userID    string
	workoutID string
}

func workoutPath(c *gin.Context) pathIDs {
	return pathIDs{
		userID:    strings.TrimSpace(c.Param("userId")),
		workoutID: strings.TrimSpace(c.Param("workoutId")),
	}
}
