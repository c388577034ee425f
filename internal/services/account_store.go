package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/workoutdiary/workoutdiary/internal/models"
)

// AccountStore persists accounts and their outstanding one-time codes.
type AccountStore interface {
	// EmailTaken reports whether an account already uses the normalised email.
	EmailTaken(ctx context.Context, email string) (bool, error)
	// CreatePending stores a new account together with its confirmation code atomically.
	CreatePending(ctx context.Context, account *models.User, code *models.OneTimeCode) error
	// FindByEmail returns the account owning the normalised email.
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	// ReplaceCode supersedes any outstanding code of the same user and purpose.
	ReplaceCode(ctx context.Context, code *models.OneTimeCode) error
	// ConsumeConfirmation deletes a live confirmation code and confirms its account in one unit.
	ConsumeConfirmation(ctx context.Context, codeHash string, now time.Time) (*models.User, error)
	// ConsumePasswordReset deletes a live reset code and stores the new password hash in one unit.
	ConsumePasswordReset(ctx context.Context, codeHash, passwordHash string, now time.Time) (*models.User, error)
	// PurgeExpiredCodes removes codes that expired at or before now.
	PurgeExpiredCodes(ctx context.Context, now time.Time) (int64, error)
}

// GormAccountStore implements AccountStore on top of gorm.
type GormAccountStore struct {
	db *gorm.DB
}

var _ AccountStore = (*GormAccountStore)(nil)

// NewGormAccountStore constructs a store using the provided database handle.
func NewGormAccountStore(db *gorm.DB) (*GormAccountStore, error) {
	if db == nil {
		return nil, errors.New("account store: db is required")
	}
	return &GormAccountStore{db: db}, nil
}

// EmailTaken implements AccountStore.
func (s *GormAccountStore) EmailTaken(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("email = ?", models.NormalizeEmail(email)).
		Count(&count).Error; err != nil {
		return false, storageError("account store: check email", err)
	}
	return count > 0, nil
}

// CreatePending implements AccountStore.
func (s *GormAccountStore) CreatePending(ctx context.Context, account *models.User, code *models.OneTimeCode) error {
	if account == nil || code == nil {
		return errors.New("account store: account and code are required")
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(account).Error; err != nil {
			if isUniqueConstraintError(err) {
				return ErrEmailAlreadyRegistered
			}
			return err
		}

		code.UserID = account.ID
		return tx.Create(code).Error
	})
	if err != nil {
		if isDomainError(err) {
			return err
		}
		return storageError("account store: create pending account", err)
	}
	return nil
}

// FindByEmail implements AccountStore.
func (s *GormAccountStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var account models.User
	if err := s.db.WithContext(ctx).
		Where("email = ?", models.NormalizeEmail(email)).
		First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, storageError("account store: find by email", err)
	}
	return &account, nil
}

// ReplaceCode implements AccountStore.
func (s *GormAccountStore) ReplaceCode(ctx context.Context, code *models.OneTimeCode) error {
	if code == nil || code.UserID == "" {
		return errors.New("account store: code with user id is required")
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("user_id = ? AND purpose = ?", code.UserID, code.Purpose).
			Delete(&models.OneTimeCode{}).Error; err != nil {
			return err
		}
		return tx.Create(code).Error
	})
	if err != nil {
		return storageError("account store: replace code", err)
	}
	return nil
}

// ConsumeConfirmation implements AccountStore.
func (s *GormAccountStore) ConsumeConfirmation(ctx context.Context, codeHash string, now time.Time) (*models.User, error) {
	return s.consume(ctx, models.PurposeRegistrationConfirmation, codeHash, now, map[string]any{
		"status":       models.AccountConfirmed,
		"confirmed_at": now,
	})
}

// ConsumePasswordReset implements AccountStore.
func (s *GormAccountStore) ConsumePasswordReset(ctx context.Context, codeHash, passwordHash string, now time.Time) (*models.User, error) {
	if passwordHash == "" {
		return nil, errors.New("account store: password hash is required")
	}
	return s.consume(ctx, models.PurposePasswordReset, codeHash, now, map[string]any{
		"password": passwordHash,
	})
}

// consume deletes the code row and applies changes to its account within one transaction.
// Only the caller whose delete affects the row proceeds; everyone else sees ErrInvalidOrExpiredCode.
func (s *GormAccountStore) consume(ctx context.Context, purpose models.CodePurpose, codeHash string, now time.Time, changes map[string]any) (*models.User, error) {
	var account models.User

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var code models.OneTimeCode
		if err := tx.
			Where("code_hash = ? AND purpose = ?", codeHash, purpose).
			First(&code).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidOrExpiredCode
			}
			return err
		}
		if code.Expired(now) {
			return ErrInvalidOrExpiredCode
		}

		result := tx.Where("id = ?", code.ID).Delete(&models.OneTimeCode{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected != 1 {
			return ErrInvalidOrExpiredCode
		}

		changes["updated_at"] = now
		update := tx.Model(&models.User{}).Where("id = ?", code.UserID).UpdateColumns(changes)
		if update.Error != nil {
			return update.Error
		}
		if update.RowsAffected == 0 {
			return ErrAccountNotFound
		}

		return tx.Where("id = ?", code.UserID).First(&account).Error
	})
	if err != nil {
		if isDomainError(err) {
			return nil, err
		}
		return nil, storageError("account store: consume code", err)
	}
	return &account, nil
}

// PurgeExpiredCodes implements AccountStore.
func (s *GormAccountStore) PurgeExpiredCodes(ctx context.Context, now time.Time) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("expires_at <= ?", now.UTC()).
		Delete(&models.OneTimeCode{})
	if result.Error != nil {
		return 0, storageError("account store: purge expired codes", result.Error)
	}
	return result.RowsAffected, nil
}
