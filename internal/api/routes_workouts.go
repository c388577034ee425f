package api

import (
	"github.com/gin-gonic/gin"

	"github.com/workoutdiary/workoutdiary/internal/handlers"
)

func registerWorkoutRoutes(r gin.IRouter, handler *handlers.WorkoutHandler) {
	workouts := r.Group("/users/:userId/workouts")
	{
		workouts.GET("", handler.List)
		workouts.POST("", handler.Create)
		workouts.GET("/:workoutId", handler.Get)
		workouts.PUT("/:workoutId", handler.Update)
		workouts.DELETE("/:workoutId", handler.Delete)
	}
}
