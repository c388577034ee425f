package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/workoutdiary/workoutdiary/internal/database/testutil"
	"github.com/workoutdiary/workoutdiary/internal/models"
)

func newStoreForTest(t *testing.T) *GormAccountStore {
	t.Helper()
	store, err := NewGormAccountStore(testutil.MustOpenTestDB(t, testutil.WithAutoMigrate()))
	require.NoError(t, err)
	return store
}

func pendingAccount(email string) *models.User {
	return &models.User{Email: email, Password: "hash", FirstName: "Ann", LastName: "Lee", Age: 30}
}

func TestNewGormAccountStoreRequiresDB(t *testing.T) {
	_, err := NewGormAccountStore(nil)
	require.Error(t, err)
}

func TestCreatePendingMapsUniqueViolation(t *testing.T) {
	store := newStoreForTest(t)
	ctx := context.Background()
	expires := time.Now().UTC().Add(time.Hour)

	require.NoError(t, store.CreatePending(ctx, pendingAccount("ann@example.com"), &models.OneTimeCode{
		Purpose: models.PurposeRegistrationConfirmation, CodeHash: "h1", ExpiresAt: expires,
	}))

	err := store.CreatePending(ctx, pendingAccount("Ann@Example.com"), &models.OneTimeCode{
		Purpose: models.PurposeRegistrationConfirmation, CodeHash: "h2", ExpiresAt: expires,
	})
	require.ErrorIs(t, err, ErrEmailAlreadyRegistered)

	var codes int64
	require.NoError(t, store.db.Model(&models.OneTimeCode{}).Count(&codes).Error)
	require.EqualValues(t, 1, codes)
}

func TestEmailTakenAndFindByEmail(t *testing.T) {
	store := newStoreForTest(t)
	ctx := context.Background()

	taken, err := store.EmailTaken(ctx, "ann@example.com")
	require.NoError(t, err)
	require.False(t, taken)

	_, err = store.FindByEmail(ctx, "ann@example.com")
	require.ErrorIs(t, err, ErrAccountNotFound)

	account := pendingAccount("ann@example.com")
	require.NoError(t, store.CreatePending(ctx, account, &models.OneTimeCode{
		Purpose: models.PurposeRegistrationConfirmation, CodeHash: "h1", ExpiresAt: time.Now().UTC().Add(time.Hour),
	}))

	taken, err = store.EmailTaken(ctx, " ANN@example.com")
	require.NoError(t, err)
	require.True(t, taken)

	found, err := store.FindByEmail(ctx, "Ann@Example.com")
	require.NoError(t, err)
	require.Equal(t, account.ID, found.ID)
}

func TestPurgeExpiredCodes(t *testing.T) {
	store := newStoreForTest(t)
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	stale := pendingAccount("stale@example.com")
	require.NoError(t, store.CreatePending(ctx, stale, &models.OneTimeCode{
		Purpose: models.PurposeRegistrationConfirmation, CodeHash: "stale", ExpiresAt: now.Add(-time.Minute),
	}))
	fresh := pendingAccount("fresh@example.com")
	require.NoError(t, store.CreatePending(ctx, fresh, &models.OneTimeCode{
		Purpose: models.PurposeRegistrationConfirmation, CodeHash: "fresh", ExpiresAt: now.Add(time.Hour),
	}))

	purged, err := store.PurgeExpiredCodes(ctx, now)
	require.NoError(t, err)
	require.EqualValues(t, 1, purged)

	var remaining []models.OneTimeCode
	require.NoError(t, store.db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	require.Equal(t, fresh.ID, remaining[0].UserID)
}

func TestReplaceCodeRequiresUser(t *testing.T) {
	store := newStoreForTest(t)
	require.Error(t, store.ReplaceCode(context.Background(), &models.OneTimeCode{Purpose: models.PurposePasswordReset}))
}

func TestStoreWrapsInfrastructureFailures(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	store, err := NewGormAccountStore(db)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = store.EmailTaken(context.Background(), "ann@example.com")
	require.ErrorIs(t, err, ErrStorageUnavailable)

	_, err = store.ConsumeConfirmation(context.Background(), "hash", time.Now())
	require.ErrorIs(t, err, ErrStorageUnavailable)
}
