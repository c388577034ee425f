package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/workoutdiary/workoutdiary/internal/api"
	"github.com/workoutdiary/workoutdiary/internal/app"
	sharedtestutil "github.com/workoutdiary/workoutdiary/internal/database/testutil"
	"github.com/workoutdiary/workoutdiary/internal/models"
	"github.com/workoutdiary/workoutdiary/internal/monitoring"
	"github.com/workoutdiary/workoutdiary/internal/monitoring/checks"
	"github.com/workoutdiary/workoutdiary/internal/services"
	"github.com/workoutdiary/workoutdiary/pkg/response"
)

// Env encapsulates a fully-wired API instance backed by an in-memory database for handler tests.
type Env struct {
	T        *testing.T
	DB       *gorm.DB
	Router   *gin.Engine
	Outbox   *Outbox
	Accounts *services.AccountService
}

// NewEnv provisions a fresh handler test environment with migrations applied.
func NewEnv(t *testing.T) *Env {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db := sharedtestutil.MustOpenTestDB(t, sharedtestutil.WithAutoMigrate())

	store, err := services.NewGormAccountStore(db)
	require.NoError(t, err)

	outbox := &Outbox{}
	accounts, err := services.NewAccountService(store, outbox, services.WithBcryptCost(bcrypt.MinCost))
	require.NoError(t, err)

	workouts, err := services.NewWorkoutService(db)
	require.NoError(t, err)

	mon := monitoring.NewModule()
	mon.Health().RegisterReadiness(checks.Database(db, 0))

	cfg := &app.Config{
		Monitoring: app.MonitoringConfig{
			Prometheus: app.PrometheusConfig{Enabled: true, Endpoint: "/metrics"},
			Health:     app.HealthConfig{Enabled: true},
		},
	}

	router, err := api.NewRouter(cfg, api.Services{
		Accounts:   accounts,
		Workouts:   workouts,
		Monitoring: mon,
	})
	require.NoError(t, err)

	return &Env{
		T:        t,
		DB:       db,
		Router:   router,
		Outbox:   outbox,
		Accounts: accounts,
	}
}

// AccountPayload mirrors the account projection returned by the account endpoints.
type AccountPayload struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Age       int    `json:"age"`
	Status    string `json:"status"`
}

// WorkoutPayload mirrors the workout projection.
type WorkoutPayload struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Signup registers an account through the API and returns its projection.
func (e *Env) Signup(email, password string) AccountPayload {
	e.T.Helper()

	body := map[string]any{
		"firstName": "John",
		"lastName":  "Doe",
		"email":     email,
		"password":  password,
		"age":       21,
	}

	w := e.Request(http.MethodPost, "/signup", body)
	require.Equal(e.T, http.StatusOK, w.Code, w.Body.String())

	resp := DecodeResponse(e.T, w)
	require.True(e.T, resp.Success, w.Body.String())

	var account AccountPayload
	DecodeInto(e.T, resp.Data, &account)
	require.NotEmpty(e.T, account.ID)
	return account
}

// ConfirmedAccount signs up an account and confirms it with the delivered code.
func (e *Env) ConfirmedAccount(email, password string) AccountPayload {
	e.T.Helper()

	account := e.Signup(email, password)
	code := e.Outbox.LastCode(e.T, models.PurposeRegistrationConfirmation)

	w := e.Request(http.MethodPost, "/confirm", map[string]string{"code": code})
	require.Equal(e.T, http.StatusOK, w.Code, w.Body.String())

	DecodeInto(e.T, DecodeResponse(e.T, w).Data, &account)
	return account
}

// APIResponse represents the canonical API envelope returned by handlers.
type APIResponse struct {
	Success bool                `json:"success"`
	Data    json.RawMessage     `json:"data"`
	Error   *response.ErrorInfo `json:"error"`
	Meta    *response.Meta      `json:"meta"`
}

// DecodeResponse parses the standard API response object from a recorder.
func DecodeResponse(t *testing.T, w *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

// DecodeInto unmarshals the data payload into the provided destination.
func DecodeInto[T any](t *testing.T, raw json.RawMessage, dest *T) {
	t.Helper()
	if dest == nil {
		t.Fatal("destination must not be nil")
	}
	require.NoError(t, json.Unmarshal(raw, dest))
}

// ErrorFields returns the field names listed in a validation error's details.
func ErrorFields(t *testing.T, resp APIResponse) []string {
	t.Helper()
	require.NotNil(t, resp.Error)

	raw, err := json.Marshal(resp.Error.Details)
	require.NoError(t, err)

	var details []struct {
		Field  string `json:"field"`
		Reason string `json:"reason"`
	}
	require.NoError(t, json.Unmarshal(raw, &details))

	fields := make([]string, 0, len(details))
	for _, d := range details {
		fields = append(fields, d.Field)
	}
	return fields
}

// Request executes an HTTP request against the test router, applying JSON encoding automatically.
func (e *Env) Request(method, path string, body any) *httptest.ResponseRecorder {
	e.T.Helper()

	var buf *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(e.T, err)
		buf = bytes.NewBuffer(data)
	} else {
		buf = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, path, buf)
	require.NoError(e.T, err)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	e.Router.ServeHTTP(w, req)
	return w
}

// SentCode is a one-time code captured by the Outbox.
type SentCode struct {
	Purpose models.CodePurpose
	Email   string
	Code    string
}

// Outbox is an in-memory notifier that records every delivered code.
type Outbox struct {
	mu   sync.Mutex
	sent []SentCode
}

// SendConfirmation records a registration confirmation code.
func (o *Outbox) SendConfirmation(_ context.Context, account *models.User, code string) error {
	o.add(models.PurposeRegistrationConfirmation, account, code)
	return nil
}

// SendPasswordReset records a password reset code.
func (o *Outbox) SendPasswordReset(_ context.Context, account *models.User, code string) error {
	o.add(models.PurposePasswordReset, account, code)
	return nil
}

func (o *Outbox) add(purpose models.CodePurpose, account *models.User, code string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	entry := SentCode{Purpose: purpose, Code: code}
	if account != nil {
		entry.Email = account.Email
	}
	o.sent = append(o.sent, entry)
}

// Sent returns a copy of every recorded delivery.
func (o *Outbox) Sent() []SentCode {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]SentCode(nil), o.sent...)
}

// LastCode returns the most recent code delivered for the purpose.
func (o *Outbox) LastCode(t *testing.T, purpose models.CodePurpose) string {
	t.Helper()

	sent := o.Sent()
	for i := len(sent) - 1; i >= 0; i-- {
		if sent[i].Purpose == purpose {
			return sent[i].Code
		}
	}
	t.Fatalf("no %s code delivered", purpose)
	return ""
}
