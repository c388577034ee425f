package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/workoutdiary/workoutdiary/internal/codes"
	"github.com/workoutdiary/workoutdiary/internal/credentials"
	"github.com/workoutdiary/workoutdiary/internal/models"
	"github.com/workoutdiary/workoutdiary/pkg/crypto"
	"github.com/workoutdiary/workoutdiary/pkg/logger"
	"github.com/workoutdiary/workoutdiary/pkg/metrics"
)

const (
	defaultConfirmationCodeTTL = 24 * time.Hour
	defaultResetCodeTTL        = time.Hour
)

// Operation names used for metrics and logs.
const (
	OperationRegister      = "register"
	OperationConfirm       = "confirm"
	OperationResetPassword = "reset_password"
	OperationSetupPassword = "setup_password"
)

// CodeIssuer produces one-time codes.
type CodeIssuer interface {
	Issue(purpose models.CodePurpose) (codes.Code, error)
}

// RegisterInput captures the candidate account submitted at signup.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Age       int
}

// AccountOption customises the AccountService.
type AccountOption func(*AccountService)

// WithAccountClock injects a custom time source.
func WithAccountClock(clock func() time.Time) AccountOption {
	return func(s *AccountService) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithConfirmationCodeTTL overrides how long confirmation codes stay valid.
func WithConfirmationCodeTTL(d time.Duration) AccountOption {
	return func(s *AccountService) {
		if d > 0 {
			s.confirmationTTL = d
		}
	}
}

// WithResetCodeTTL overrides how long password reset codes stay valid.
func WithResetCodeTTL(d time.Duration) AccountOption {
	return func(s *AccountService) {
		if d > 0 {
			s.resetTTL = d
		}
	}
}

// WithCodeIssuer replaces the default code generator.
func WithCodeIssuer(issuer CodeIssuer) AccountOption {
	return func(s *AccountService) {
		if issuer != nil {
			s.codes = issuer
		}
	}
}

// WithPasswordHasher replaces the bcrypt hasher.
func WithPasswordHasher(hash func(string) (string, error)) AccountOption {
	return func(s *AccountService) {
		if hash != nil {
			s.hash = hash
		}
	}
}

// WithBcryptCost sets the bcrypt work factor used for password hashes.
func WithBcryptCost(cost int) AccountOption {
	return func(s *AccountService) {
		if cost > 0 {
			s.hash = func(password string) (string, error) {
				return crypto.HashPasswordWithCost(password, cost)
			}
		}
	}
}

// AccountService drives registration, confirmation and password recovery.
type AccountService struct {
	store           AccountStore
	notifier        Notifier
	codes           CodeIssuer
	policy          credentials.Policy
	hash            func(string) (string, error)
	now             func() time.Time
	confirmationTTL time.Duration
	resetTTL        time.Duration
	log             *zap.Logger
}

// NewAccountService constructs the lifecycle service with its collaborators.
func NewAccountService(store AccountStore, notifier Notifier, opts ...AccountOption) (*AccountService, error) {
	if store == nil {
		return nil, errors.New("account service: store is required")
	}
	if notifier == nil {
		return nil, errors.New("account service: notifier is required")
	}

	service := &AccountService{
		store:           store,
		notifier:        notifier,
		codes:           codes.NewGenerator(),
		policy:          credentials.NewPolicy(),
		hash:            crypto.HashPassword,
		now:             time.Now,
		confirmationTTL: defaultConfirmationCodeTTL,
		resetTTL:        defaultResetCodeTTL,
		log:             logger.WithModule("accounts"),
	}

	for _, opt := range opts {
		opt(service)
	}

	return service, nil
}

// Register creates a pending account with a confirmation code and notifies its owner.
func (s *AccountService) Register(ctx context.Context, input RegisterInput) (account *models.User, err error) {
	defer func() { s.record(OperationRegister, err) }()

	email, violations := s.policy.CheckRegistration(credentials.Registration{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Password:  input.Password,
		Age:       input.Age,
	})
	if !violations.Empty() {
		return nil, validationError(violations)
	}

	taken, err := s.store.EmailTaken(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailAlreadyRegistered
	}

	hashed, err := s.hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("account service: hash password: %w", err)
	}

	code, err := s.codes.Issue(models.PurposeRegistrationConfirmation)
	if err != nil {
		return nil, fmt.Errorf("account service: issue confirmation code: %w", err)
	}

	now := s.clock()
	account = &models.User{
		Email:     email,
		Password:  hashed,
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		Age:       input.Age,
		Status:    models.AccountPending,
	}
	record := &models.OneTimeCode{
		Purpose:   code.Purpose,
		CodeHash:  code.Hash,
		ExpiresAt: now.Add(s.confirmationTTL),
	}

	if err := s.store.CreatePending(ctx, account, record); err != nil {
		return nil, err
	}

	s.dispatch(account, code.Purpose, func() error {
		return s.notifier.SendConfirmation(ctx, account, code.Value)
	})

	return account, nil
}

// Confirm consumes a confirmation code and marks its account confirmed.
func (s *AccountService) Confirm(ctx context.Context, code string) (account *models.User, err error) {
	defer func() { s.record(OperationConfirm, err) }()

	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrInvalidOrExpiredCode
	}

	return s.store.ConsumeConfirmation(ctx, codes.HashValue(code), s.clock())
}

// ResetPassword issues a password reset code for the account owning email. Unknown
// addresses succeed without issuing anything so callers cannot probe for accounts.
func (s *AccountService) ResetPassword(ctx context.Context, email string) (err error) {
	defer func() { s.record(OperationResetPassword, err) }()

	normalized, violations := s.policy.CheckEmail(email)
	if !violations.Empty() {
		return validationError(violations)
	}

	account, err := s.store.FindByEmail(ctx, normalized)
	if errors.Is(err, ErrAccountNotFound) {
		s.log.Debug("password reset requested for unknown email")
		return nil
	}
	if err != nil {
		return err
	}

	code, err := s.codes.Issue(models.PurposePasswordReset)
	if err != nil {
		return fmt.Errorf("account service: issue reset code: %w", err)
	}

	record := &models.OneTimeCode{
		UserID:    account.ID,
		Purpose:   code.Purpose,
		CodeHash:  code.Hash,
		ExpiresAt: s.clock().Add(s.resetTTL),
	}
	if err := s.store.ReplaceCode(ctx, record); err != nil {
		return err
	}

	s.dispatch(account, code.Purpose, func() error {
		return s.notifier.SendPasswordReset(ctx, account, code.Value)
	})

	return nil
}

// SetupPassword consumes a reset code and stores the new password on its account.
func (s *AccountService) SetupPassword(ctx context.Context, code, newPassword string) (account *models.User, err error) {
	defer func() { s.record(OperationSetupPassword, err) }()

	if violations := s.policy.CheckPassword(newPassword); !violations.Empty() {
		return nil, validationError(violations)
	}

	code = strings.TrimSpace(code)
	if code == "" {
		return nil, fieldRequired("code")
	}

	hashed, err := s.hash(newPassword)
	if err != nil {
		return nil, fmt.Errorf("account service: hash password: %w", err)
	}

	return s.store.ConsumePasswordReset(ctx, codes.HashValue(code), hashed, s.clock())
}

// dispatch delivers a code after its state change committed. Delivery failures are logged
// and counted but never undo or fail the operation.
func (s *AccountService) dispatch(account *models.User, purpose models.CodePurpose, send func() error) {
	if err := send(); err != nil {
		metrics.NotificationFailures.WithLabelValues(string(purpose)).Inc()
		s.log.Error("notification delivery failed",
			zap.String("purpose", string(purpose)),
			zap.String("user_id", account.ID),
			zap.Error(err),
		)
	}
}

func (s *AccountService) record(operation string, err error) {
	result := "success"
	switch {
	case err == nil:
	case errors.Is(err, ErrValidationFailed),
		errors.Is(err, ErrEmailAlreadyRegistered),
		errors.Is(err, ErrInvalidOrExpiredCode):
		result = "rejected"
	default:
		result = "error"
		s.log.Error("account operation failed", zap.String("operation", operation), zap.Error(err))
	}
	metrics.AccountOperations.WithLabelValues(operation, result).Inc()
}

func (s *AccountService) clock() time.Time {
	return s.now().UTC()
}
