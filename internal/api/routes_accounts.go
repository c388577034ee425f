package api

import (
	"github.com/gin-gonic/gin"

	"github.com/workoutdiary/workoutdiary/internal/handlers"
)

func registerAccountRoutes(r gin.IRouter, handler *handlers.AccountHandler) {
	r.POST("/signup", handler.Signup)
	r.POST("/confirm", handler.Confirm)
	r.POST("/reset-password", handler.ResetPassword)
	r.POST("/setup-password", handler.SetupPassword)
}
