package api_test

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/workoutdiary/workoutdiary/internal/api"
	"github.com/workoutdiary/workoutdiary/internal/app"
	"github.com/workoutdiary/workoutdiary/internal/handlers/testutil"
)

func TestNewRouterRequiresCollaborators(t *testing.T) {
	_, err := api.NewRouter(nil, api.Services{})
	require.Error(t, err)

	_, err = api.NewRouter(&app.Config{}, api.Services{})
	require.Error(t, err)
}

func TestRouter_HealthEndpoints(t *testing.T) {
	env := testutil.NewEnv(t)

	for _, path := range []string{"/health", "/health/live", "/health/ready"} {
		resp := env.Request(http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, resp.Code, path+": "+resp.Body.String())

		var payload map[string]any
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &payload))
		require.Equal(t, true, payload["success"], path)
		require.Equal(t, "up", payload["status"], path)
	}

	jobs := env.Request(http.MethodGet, "/health/jobs", nil)
	require.Equal(t, http.StatusOK, jobs.Code)
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	env := testutil.NewEnv(t)

	env.Signup("metrics@example.com", "Password1!")

	resp := env.Request(http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, resp.Code)

	body := resp.Body.String()
	require.True(t, strings.Contains(body, "workoutdiary_account_operations_total"), "expected account metrics to be exported")
	require.Contains(t, body, "workoutdiary_api_latency_seconds")
}

func TestRouter_UnknownRoute(t *testing.T) {
	env := testutil.NewEnv(t)

	resp := env.Request(http.MethodGet, "/does-not-exist", nil)
	require.Equal(t, http.StatusNotFound, resp.Code)
	require.Equal(t, "NOT_FOUND", testutil.DecodeResponse(t, resp).Error.Code)
	require.NotEmpty(t, resp.Header().Get("X-Request-ID"))
}

func TestRouter_SecurityAndCORSHeaders(t *testing.T) {
	env := testutil.NewEnv(t)

	resp := env.Request(http.MethodOptions, "/signup", nil)
	require.Equal(t, http.StatusNoContent, resp.Code)
	require.Equal(t, "*", resp.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, "nosniff", resp.Header().Get("X-Content-Type-Options"))
}
