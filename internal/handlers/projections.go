package handlers

import (
	"github.com/workoutdiary/workoutdiary/internal/models"
	"github.com/workoutdiary/workoutdiary/internal/services"
)

// accountView is the public projection of an account. Password hashes and codes never leave the service.
type accountView struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Age       int    `json:"age"`
	Status    string `json:"status"`
}

type workoutView struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func newAccountView(account *models.User) accountView {
	if account == nil {
		return accountView{}
	}
	return accountView{
		ID:        account.ID,
		FirstName: account.FirstName,
		LastName:  account.LastName,
		Email:     models.NormalizeEmail(account.Email),
		Age:       account.Age,
		Status:    string(account.Status),
	}
}

func newWorkoutView(workout *models.Workout) workoutView {
	if workout == nil {
		return workoutView{}
	}
	return workoutView{
		ID:          workout.ID,
		Date:        services.FormatDate(workout.Date),
		Title:       workout.Title,
		Description: workout.Description,
	}
}

func newWorkoutViews(workouts []models.Workout) []workoutView {
	views := make([]workoutView, 0, len(workouts))
	for i := range workouts {
		views = append(views, newWorkoutView(&workouts[i]))
	}
	return views
}
