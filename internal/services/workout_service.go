package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/workoutdiary/workoutdiary/internal/credentials"
	"github.com/workoutdiary/workoutdiary/internal/models"
)

// DateLayout is the calendar date format accepted and rendered for workouts.
const DateLayout = "2006-01-02"

// WorkoutInput captures the editable fields of a workout.
type WorkoutInput struct {
	Date        string
	Title       string
	Description string
}

// WorkoutService stores diary entries scoped by their owning user.
type WorkoutService struct {
	db *gorm.DB
}

// NewWorkoutService constructs a WorkoutService using the provided database handle.
func NewWorkoutService(db *gorm.DB) (*WorkoutService, error) {
	if db == nil {
		return nil, errors.New("workout service: db is required")
	}
	return &WorkoutService{db: db}, nil
}

// Create adds a workout for the user.
func (s *WorkoutService) Create(ctx context.Context, userID string, input WorkoutInput) (*models.Workout, error) {
	date, err := validateWorkout(input)
	if err != nil {
		return nil, err
	}

	userID = strings.TrimSpace(userID)
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}

	workout := &models.Workout{
		UserID:      userID,
		Date:        date,
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
	}
	if err := s.db.WithContext(ctx).Create(workout).Error; err != nil {
		return nil, storageError("workout service: create", err)
	}
	return workout, nil
}

// Get returns a single workout owned by the user.
func (s *WorkoutService) Get(ctx context.Context, userID, workoutID string) (*models.Workout, error) {
	var workout models.Workout
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", strings.TrimSpace(workoutID), strings.TrimSpace(userID)).
		First(&workout).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, storageError("workout service: get", err)
	}
	return &workout, nil
}

// List returns the user's workouts, newest first.
func (s *WorkoutService) List(ctx context.Context, userID string) ([]models.Workout, error) {
	workouts := make([]models.Workout, 0)
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", strings.TrimSpace(userID)).
		Order("date DESC").
		Order("created_at DESC").
		Find(&workouts).Error; err != nil {
		return nil, storageError("workout service: list", err)
	}
	return workouts, nil
}

// Update replaces the editable fields of a workout.
func (s *WorkoutService) Update(ctx context.Context, userID, workoutID string, input WorkoutInput) (*models.Workout, error) {
	date, err := validateWorkout(input)
	if err != nil {
		return nil, err
	}

	workout, err := s.Get(ctx, userID, workoutID)
	if err != nil {
		return nil, err
	}

	workout.Date = date
	workout.Title = strings.TrimSpace(input.Title)
	workout.Description = strings.TrimSpace(input.Description)

	if err := s.db.WithContext(ctx).Save(workout).Error; err != nil {
		return nil, storageError("workout service: update", err)
	}
	return workout, nil
}

// Delete removes a workout owned by the user.
func (s *WorkoutService) Delete(ctx context.Context, userID, workoutID string) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", strings.TrimSpace(workoutID), strings.TrimSpace(userID)).
		Delete(&models.Workout{})
	if result.Error != nil {
		return storageError("workout service: delete", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrWorkoutNotFound
	}
	return nil
}

func (s *WorkoutService) ensureUser(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrAccountNotFound
	}

	var count int64
	if err := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Count(&count).Error; err != nil {
		return storageError("workout service: find user", err)
	}
	if count == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func validateWorkout(input WorkoutInput) (datatypes.Date, error) {
	var violations credentials.Violations

	var date datatypes.Date
	raw := strings.TrimSpace(input.Date)
	switch parsed, err := time.Parse(DateLayout, raw); {
	case raw == "":
		violations = append(violations, credentials.FieldViolation{Field: "date", Reason: "date is required"})
	case err != nil:
		violations = append(violations, credentials.FieldViolation{Field: "date", Reason: "date must use the YYYY-MM-DD format"})
	default:
		date = datatypes.Date(parsed)
	}

	if strings.TrimSpace(input.Title) == "" {
		violations = append(violations, credentials.FieldViolation{Field: "title", Reason: "title is required"})
	}
	if strings.TrimSpace(input.Description) == "" {
		violations = append(violations, credentials.FieldViolation{Field: "description", Reason: "description is required"})
	}

	if !violations.Empty() {
		return date, validationError(violations)
	}
	return date, nil
}

// FormatDate renders a workout date in DateLayout.
func FormatDate(date datatypes.Date) string {
	return time.Time(date).Format(DateLayout)
}
