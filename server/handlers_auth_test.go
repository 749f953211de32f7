package server_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/projectpulse/pulseauth/auth"
	"github.com/projectpulse/pulseauth/internal/config"
	"github.com/projectpulse/pulseauth/server"
	fakeuserrepo "github.com/projectpulse/pulseauth/users/repofake"
)

type testConfig struct {
	config.Cors
	keysDir string
}

var _ config.Config = testConfig{}

func (testConfig) GetPort() string              { return ":0" }
func (testConfig) GetAppName() string           { return "PulseAuth" }
func (testConfig) GetEnv() string               { return "TEST" }
func (testConfig) GetDatabaseURL() string       { return "" }
func (testConfig) GetSeedAdminEmail() string    { return "admin@projectpulse.local" }
func (testConfig) GetSeedAdminPassword() string { return "AdminPass123" }
func (testConfig) GetIssuer() string            { return "ProjectPulse" }
func (testConfig) GetAudience() string          { return "ProjectPulse" }
func (testConfig) GetTokenTTL() time.Duration   { return time.Hour }
func (c testConfig) GetKeysDirectory() string   { return c.keysDir }

func setupServer(t *testing.T) *server.Server {
	t.Helper()
	s, err := server.New(testConfig{keysDir: t.TempDir()}, fakeuserrepo.NewFakeUserRepo())
	require.NoError(t, err)
	return s
}

func doJSON(t *testing.T, s *server.Server, method, path string, body any, bearer string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decodeResult(t *testing.T, rec *httptest.ResponseRecorder) auth.AuthResult {
	t.Helper()
	var result auth.AuthResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	return result
}

func registerUser(t *testing.T, s *server.Server) auth.AuthResult {
	t.Helper()
	rec := doJSON(t, s, http.MethodPost, server.RouteAuthRegister, map[string]string{
		"first_name": "Jane",
		"last_name":  "Doe",
		"email":      "jane@example.com",
		"password":   "Password123",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	result := decodeResult(t, rec)
	require.True(t, result.Success)
	require.NotEmpty(t, result.Token)
	return result
}

func TestRegisterThenMe(t *testing.T) {
	s := setupServer(t)
	registered := registerUser(t, s)

	rec := doJSON(t, s, http.MethodGet, server.RouteAuthMe, nil, registered.Token)
	require.Equal(t, http.StatusOK, rec.Code)

	var summary struct {
		Email string `json:"email"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&summary))
	require.Equal(t, "jane@example.com", summary.Email)
}

func TestLoginEndpoint(t *testing.T) {
	s := setupServer(t)
	registerUser(t, s)

	rec := doJSON(t, s, http.MethodPost, server.RouteAuthLogin, map[string]string{
		"email":    "jane@example.com",
		"password": "Password123",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, decodeResult(t, rec).Success)

	// Wrong password: 401 with the same generic message, no token.
	rec = doJSON(t, s, http.MethodPost, server.RouteAuthLogin, map[string]string{
		"email":    "jane@example.com",
		"password": "WrongPassword1",
	}, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	result := decodeResult(t, rec)
	require.False(t, result.Success)
	require.Equal(t, auth.MsgInvalidCredentials, result.Message)
	require.Empty(t, result.Token)
}

func TestSeededAdminCanLogin(t *testing.T) {
	s := setupServer(t)

	rec := doJSON(t, s, http.MethodPost, server.RouteAuthLogin, map[string]string{
		"email":    "admin@projectpulse.local",
		"password": "AdminPass123",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	result := decodeResult(t, rec)
	require.True(t, result.Success)
	require.Equal(t, "Admin", string(result.User.Role))
}

func TestMeRequiresBearerToken(t *testing.T) {
	s := setupServer(t)

	rec := doJSON(t, s, http.MethodGet, server.RouteAuthMe, nil, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// Malformed header scheme is treated as unauthenticated, not a 500.
	req := httptest.NewRequest(http.MethodGet, server.RouteAuthMe, nil)
	req.Header.Set("Authorization", "Token abcdef")
	recorder := httptest.NewRecorder()
	s.ServeHTTP(recorder, req)
	require.Equal(t, http.StatusUnauthorized, recorder.Code)

	rec = doJSON(t, s, http.MethodGet, server.RouteAuthMe, nil, "not-a-jwt")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRefreshEndpoint(t *testing.T) {
	s := setupServer(t)
	registered := registerUser(t, s)

	rec := doJSON(t, s, http.MethodPost, server.RouteAuthRefresh, nil, registered.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	result := decodeResult(t, rec)
	require.True(t, result.Success)
	require.NotEmpty(t, result.Token)

	rec = doJSON(t, s, http.MethodPost, server.RouteAuthRefresh, nil, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutEndpointIsNoOp(t *testing.T) {
	s := setupServer(t)
	registered := registerUser(t, s)

	rec := doJSON(t, s, http.MethodPost, server.RouteAuthLogout, nil, registered.Token)
	require.Equal(t, http.StatusOK, rec.Code)

	// Stateless design: the token still works after logout.
	rec = doJSON(t, s, http.MethodGet, server.RouteAuthMe, nil, registered.Token)
	require.Equal(t, http.StatusOK, rec.Code)
}
