package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/workoutdiary/workoutdiary/internal/services"
	"github.com/workoutdiary/workoutdiary/pkg/response"
)

// WorkoutHandler serves per-user workout records.
type WorkoutHandler struct {
	workouts *services.WorkoutService
}

type workoutRequest struct {
	Date        string `json:"date" validate:"notblank,datetime=2006-01-02"`
	Title       string `json:"title" validate:"notblank,max=255"`
	Description string `json:"description" validate:"notblank"`
}

func (r workoutRequest) input() services.WorkoutInput {
	return services.WorkoutInput{Date: r.Date, Title: r.Title, Description: r.Description}
}

// NewWorkoutHandler constructs the handler around an already wired workout service.
func NewWorkoutHandler(workouts *services.WorkoutService) (*WorkoutHandler, error) {
	if workouts == nil {
		return nil, errors.New("workout handler: workout service is required")
	}
	return &WorkoutHandler{workouts: workouts}, nil
}

// POST /users/:userId/workouts
func (h *WorkoutHandler) Create(c *gin.Context) {
	var body workoutRequest
	if !bindAndValidate(c, &body) {
		return
	}

	workout, err := h.workouts.Create(requestContext(c), workoutPath(c).userID, body.input())
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, newWorkoutView(workout))
}

// GET /users/:userId/workouts
func (h *WorkoutHandler) List(c *gin.Context) {
	workouts, err := h.workouts.List(requestContext(c), workoutPath(c).userID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.List(c, newWorkoutViews(workouts))
}

// GET /users/:userId/workouts/:workoutId
func (h *WorkoutHandler) Get(c *gin.Context) {
	ids := workoutPath(c)
	workout, err := h.workouts.Get(requestContext(c), ids.userID, ids.workoutID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, newWorkoutView(workout))
}

// PUT /users/:userId/workouts/:workoutId
func (h *WorkoutHandler) Update(c *gin.Context) {
	var body workoutRequest
	if !bindAndValidate(c, &body) {
		return
	}

	ids := workoutPath(c)
	workout, err := h.workouts.Update(requestContext(c), ids.userID, ids.workoutID, body.input())
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, newWorkoutView(workout))
}

// DELETE /users/:userId/workouts/:workoutId
func (h *WorkoutHandler) Delete(c *gin.Context) {
	ids := workoutPath(c)
	if err := h.workouts.Delete(requestContext(c), ids.userID, ids.workoutID); err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
