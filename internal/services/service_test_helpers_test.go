package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/workoutdiary/workoutdiary/internal/database/testutil"
	"github.com/workoutdiary/workoutdiary/internal/models"
)

type sentCode struct {
	Purpose models.CodePurpose
	Email   string
	Code    string
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentCode
	err  error
}

func (n *recordingNotifier) SendConfirmation(_ context.Context, account *models.User, code string) error {
	return n.capture(models.PurposeRegistrationConfirmation, account, code)
}

func (n *recordingNotifier) SendPasswordReset(_ context.Context, account *models.User, code string) error {
	return n.capture(models.PurposePasswordReset, account, code)
}

func (n *recordingNotifier) capture(purpose models.CodePurpose, account *models.User, code string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentCode{Purpose: purpose, Email: account.Email, Code: code})
	return n.err
}

func (n *recordingNotifier) Sent() []sentCode {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]sentCode(nil), n.sent...)
}

func (n *recordingNotifier) Last(t *testing.T) sentCode {
	t.Helper()
	sent := n.Sent()
	require.NotEmpty(t, sent, "expected a notification")
	return sent[len(sent)-1]
}

type accountFixture struct {
	db       *gorm.DB
	store    *GormAccountStore
	notifier *recordingNotifier
	svc      *AccountService
	now      time.Time
}

func newAccountFixture(t *testing.T, opts ...AccountOption) *accountFixture {
	t.Helper()

	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	store, err := NewGormAccountStore(db)
	require.NoError(t, err)

	fx := &accountFixture{
		db:       db,
		store:    store,
		notifier: &recordingNotifier{},
		now:      time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	base := []AccountOption{
		WithBcryptCost(bcrypt.MinCost),
		WithAccountClock(func() time.Time { return fx.now }),
	}
	fx.svc, err = NewAccountService(store, fx.notifier, append(base, opts...)...)
	require.NoError(t, err)

	return fx
}

func (fx *accountFixture) register(t *testing.T, email string) *models.User {
	t.Helper()
	account, err := fx.svc.Register(context.Background(), RegisterInput{
		FirstName: "John",
		LastName:  "Doe",
		Email:     email,
		Password:  "Password1!",
		Age:       21,
	})
	require.NoError(t, err)
	return account
}

func (fx *accountFixture) count(t *testing.T, model any, query string, args ...any) int64 {
	t.Helper()
	var total int64
	tx := fx.db.Model(model)
	if query != "" {
		tx = tx.Where(query, args...)
	}
	require.NoError(t, tx.Count(&total).Error)
	return total
}

// failingStore reports a storage failure from every method it overrides. Methods that are not
// overridden panic through the nil embedded interface, which keeps tests honest about call paths.
type failingStore struct {
	AccountStore
	err error
}

func (s failingStore) EmailTaken(context.Context, string) (bool, error) {
	return false, s.err
}

func (s failingStore) FindByEmail(context.Context, string) (*models.User, error) {
	return nil, s.err
}

var errBackendDown = errors.New("backend down")
