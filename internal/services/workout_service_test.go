package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/workoutdiary/workoutdiary/internal/database/testutil"
	"github.com/workoutdiary/workoutdiary/internal/models"
)

func newWorkoutFixture(t *testing.T) (*WorkoutService, *models.User) {
	t.Helper()

	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	user := &models.User{Email: "ann@example.com", Password: "hash", FirstName: "Ann", LastName: "Lee", Age: 30}
	require.NoError(t, db.Create(user).Error)

	svc, err := NewWorkoutService(db)
	require.NoError(t, err)
	return svc, user
}

func TestNewWorkoutServiceRequiresDB(t *testing.T) {
	_, err := NewWorkoutService(nil)
	require.Error(t, err)
}

func TestWorkoutCRUD(t *testing.T) {
	svc, user := newWorkoutFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, user.ID, WorkoutInput{Date: "2024-05-01", Title: " Morning run ", Description: "5k easy"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, "Morning run", created.Title)
	require.Equal(t, "2024-05-01", FormatDate(created.Date))

	fetched, err := svc.Get(ctx, user.ID, created.ID)
	require.NoError(t, err)
	require.Equal(t, "2024-05-01", FormatDate(fetched.Date))
	require.Equal(t, "5k easy", fetched.Description)

	updated, err := svc.Update(ctx, user.ID, created.ID, WorkoutInput{Date: "2024-05-02", Title: "Long run", Description: "15k"})
	require.NoError(t, err)
	require.Equal(t, "Long run", updated.Title)

	fetched, err = svc.Get(ctx, user.ID, created.ID)
	require.NoError(t, err)
	require.Equal(t, "2024-05-02", FormatDate(fetched.Date))
	require.Equal(t, "15k", fetched.Description)

	require.NoError(t, svc.Delete(ctx, user.ID, created.ID))
	_, err = svc.Get(ctx, user.ID, created.ID)
	require.ErrorIs(t, err, ErrWorkoutNotFound)
	require.ErrorIs(t, svc.Delete(ctx, user.ID, created.ID), ErrWorkoutNotFound)
}

func TestWorkoutListOrdersNewestFirst(t *testing.T) {
	svc, user := newWorkoutFixture(t)
	ctx := context.Background()

	for _, date := range []string{"2024-01-10", "2024-03-05", "2024-02-20"} {
		_, err := svc.Create(ctx, user.ID, WorkoutInput{Date: date, Title: "Session", Description: "Notes"})
		require.NoError(t, err)
	}

	workouts, err := svc.List(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, workouts, 3)
	require.Equal(t, "2024-03-05", FormatDate(workouts[0].Date))
	require.Equal(t, "2024-02-20", FormatDate(workouts[1].Date))
	require.Equal(t, "2024-01-10", FormatDate(workouts[2].Date))

	empty, err := svc.List(ctx, "someone-else")
	require.NoError(t, err)
	require.NotNil(t, empty)
	require.Empty(t, empty)
}

func TestWorkoutValidation(t *testing.T) {
	svc, user := newWorkoutFixture(t)
	ctx := context.Background()

	cases := map[string]WorkoutInput{
		"date":        {Date: "", Title: "Run", Description: "Notes"},
		"title":       {Date: "2024-05-01", Title: "  ", Description: "Notes"},
		"description": {Date: "2024-05-01", Title: "Run", Description: ""},
	}
	for field, input := range cases {
		_, err := svc.Create(ctx, user.ID, input)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr, field)
		require.Equal(t, []string{field}, vErr.Violations.Fields())
	}

	_, err := svc.Create(ctx, user.ID, WorkoutInput{Date: "01/05/2024", Title: "Run", Description: "Notes"})
	require.ErrorIs(t, err, ErrValidationFailed)

	workouts, err := svc.List(ctx, user.ID)
	require.NoError(t, err)
	require.Empty(t, workouts)
}

func TestWorkoutScopedByOwner(t *testing.T) {
	svc, user := newWorkoutFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "missing-user", WorkoutInput{Date: "2024-05-01", Title: "Run", Description: "Notes"})
	require.ErrorIs(t, err, ErrAccountNotFound)

	created, err := svc.Create(ctx, user.ID, WorkoutInput{Date: "2024-05-01", Title: "Run", Description: "Notes"})
	require.NoError(t, err)

	_, err = svc.Get(ctx, "other-user", created.ID)
	require.ErrorIs(t, err, ErrWorkoutNotFound)
	_, err = svc.Update(ctx, "other-user", created.ID, WorkoutInput{Date: "2024-05-01", Title: "Run", Description: "Notes"})
	require.ErrorIs(t, err, ErrWorkoutNotFound)
	require.ErrorIs(t, svc.Delete(ctx, "other-user", created.ID), ErrWorkoutNotFound)
}
