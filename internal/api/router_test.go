package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"flexnas/internal/api"
	"flexnas/internal/api/handlers"
	"flexnas/internal/config"
	"flexnas/internal/models"
	"flexnas/internal/repository"
	"flexnas/internal/services"
	"flexnas/internal/services/auth"
	"flexnas/internal/services/mocks"
	"flexnas/internal/storage"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type nopRenamer struct{}

func (nopRenamer) SetHostname(context.Context, string) error { return nil }

// setupRouter wires the real services over a fresh database.
func setupRouter(t *testing.T, protectProtocols bool) *mux.Router {
	t.Helper()

	cfg := &config.Config{
		Server:    config.ServerConfig{ProtectProtocolStatus: protectProtocols},
		Database:  config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "router.db")},
		JWT:       config.JWTConfig{AccessDurationMin: 60},
		JWTSecret: "router-test-secret",

		AdminPassword: "adminpass",
	}
	repo, err := repository.NewRepository(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	require.NoError(t, repo.EnsureSchemaBootstrapped())

	activity := services.NewActivityService(repo, nil)
	users := services.NewUserService(repo, activity)
	require.NoError(t, users.InitializeAdminUser(context.Background(), cfg))
	tokens := auth.NewTokenService(cfg, users)

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/media", 0755))

	probe := new(mocks.MockHostProbe)
	probe.On("Status", mock.Anything).Return(&models.SystemStatus{SystemStatus: models.SystemHealthy}, nil)
	probe.On("Volumes", mock.Anything).Return([]models.Volume{}, nil)

	h := &handlers.Handlers{
		Info:     services.NewInfoService("test", time.Now()),
		Session:  auth.NewSessionService(repo, users, tokens, auth.NewThrottle(3, time.Minute), activity),
		User:     users,
		Share:    services.NewShareService(repo, activity),
		Backup:   services.NewBackupService(repo, activity),
		Quota:    services.NewQuotaService(repo, activity),
		Settings: services.NewSettingsService(repo, activity, nopRenamer{}, time.Second),
		Protocol: services.NewProtocolService(repo, activity),
		Services: services.NewServiceManager(repo, activity),
		Activity: activity,
		Probe:    probe,
		Files:    storage.NewBrowserFs(fs),
	}
	return api.SetupRouter(h, auth.NewMiddleware(tokens), cfg)
}

func do(t *testing.T, r http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.RemoteAddr = "198.51.100.7:40000"
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func login(t *testing.T, r http.Handler, username, password string) string {
	t.Helper()
	rr := do(t, r, http.MethodPost, "/api/login", "", models.LoginRequest{Username: username, Password: password})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var resp models.LoginResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestPublicEndpoints(t *testing.T) {
	r := setupRouter(t, false)

	rr := do(t, r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, rr.Header().Get(api.RequestIDHeader), 26)

	rr = do(t, r, http.MethodGet, "/api/info", "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = do(t, r, http.MethodGet, "/api/protocols", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var protocols []models.ProtocolView
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &protocols))
	assert.Len(t, protocols, 4)

	rr = do(t, r, http.MethodGet, "/api/protocols/smb", "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = do(t, r, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "flexnas_http_requests_total")
}

func TestProtectedProtocolStatus(t *testing.T) {
	r := setupRouter(t, true)

	rr := do(t, r, http.MethodGet, "/api/protocols", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	token := login(t, r, "admin", "adminpass")
	rr = do(t, r, http.MethodGet, "/api/protocols", token, nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestAuthentication(t *testing.T) {
	r := setupRouter(t, false)

	assert.Equal(t, http.StatusUnauthorized, do(t, r, http.MethodGet, "/api/shares", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, do(t, r, http.MethodGet, "/api/shares", "garbage", nil).Code)

	rr := do(t, r, http.MethodPost, "/api/login", "", models.LoginRequest{Username: "admin", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	token := login(t, r, "admin", "adminpass")
	rr = do(t, r, http.MethodGet, "/api/me", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"username":"admin"`)
	assert.NotContains(t, rr.Body.String(), "password")

	assert.Equal(t, http.StatusOK, do(t, r, http.MethodPost, "/api/logout", token, nil).Code)
	// Logout is advisory; the token keeps working until it expires.
	assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/api/me", token, nil).Code)
}

func TestLoginThrottle(t *testing.T) {
	r := setupRouter(t, false)
	bad := models.LoginRequest{Username: "admin", Password: "nope"}

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusUnauthorized, do(t, r, http.MethodPost, "/api/login", "", bad).Code)
	}
	assert.Equal(t, http.StatusTooManyRequests, do(t, r, http.MethodPost, "/api/login", "", bad).Code)

	good := models.LoginRequest{Username: "admin", Password: "adminpass"}
	assert.Equal(t, http.StatusTooManyRequests, do(t, r, http.MethodPost, "/api/login", "", good).Code)
}

func TestPermissionGates(t *testing.T) {
	r := setupRouter(t, false)
	admin := login(t, r, "admin", "adminpass")

	rr := do(t, r, http.MethodPost, "/api/users", admin, models.UserCreatePayload{
		Username:    "bob",
		Email:       "bob@nas.local",
		Password:    "password123",
		Permissions: []string{"read_files"},
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = do(t, r, http.MethodPost, "/api/users", admin, models.UserCreatePayload{
		Username: "bob",
		Email:    "bob2@nas.local",
		Password: "password123",
	})
	assert.Equal(t, http.StatusConflict, rr.Code)

	bob := login(t, r, "bob", "password123")

	// No manage_shares: rejected, nothing stored.
	rr = do(t, r, http.MethodPost, "/api/shares", bob, models.SharePayload{Name: "x", Path: "/srv/x"})
	assert.Equal(t, http.StatusForbidden, rr.Code)
	rr = do(t, r, http.MethodGet, "/api/shares", admin, nil)
	assert.JSONEq(t, `[]`, rr.Body.String())

	// Admin-only and view_logs routes.
	assert.Equal(t, http.StatusForbidden, do(t, r, http.MethodGet, "/api/users", bob, nil).Code)
	assert.Equal(t, http.StatusForbidden, do(t, r, http.MethodGet, "/api/activity-log", bob, nil).Code)
	assert.Equal(t, http.StatusForbidden, do(t, r, http.MethodPut, "/api/protocols/smb", bob, map[string]interface{}{"isEnabled": true}).Code)
	assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/api/users", admin, nil).Code)

	// Private share not listed for bob.
	rr = do(t, r, http.MethodPost, "/api/shares", admin, models.SharePayload{Name: "private", Path: "/srv/private", AllowedUsers: []string{"bobby"}})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	rr = do(t, r, http.MethodGet, "/api/shares", bob, nil)
	assert.JSONEq(t, `[]`, rr.Body.String())

	// Granting the capability applies on the next request with the same token.
	rr = do(t, r, http.MethodPut, "/api/users/bob", admin, map[string]interface{}{"permissions": []string{"read_files", "view_logs"}})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/api/activity-log", bob, nil).Code)
}

func TestSettingsRoundTrip(t *testing.T) {
	r := setupRouter(t, false)
	admin := login(t, r, "admin", "adminpass")

	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/api/settings/network", admin, nil).Code)

	network := models.NetworkSettings{
		Hostname:   "nas-01",
		Domain:     "example.com",
		IPAddress:  "192.168.1.10",
		SubnetMask: "255.255.255.0",
		Gateway:    "192.168.1.1",
		DNSServers: []string{"1.1.1.1", "9.9.9.9"},
	}
	rr := do(t, r, http.MethodPut, "/api/settings/network", admin, network)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = do(t, r, http.MethodGet, "/api/settings/network", admin, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var got models.NetworkSettings
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	got.UpdatedAt = nil
	assert.Equal(t, network, got)

	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/api/settings/power", admin, nil).Code)
}

func TestProtocolAndServiceRoutes(t *testing.T) {
	r := setupRouter(t, false)
	admin := login(t, r, "admin", "adminpass")

	rr := do(t, r, http.MethodPost, "/api/protocols/nfs/start", admin, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Body.String(), `"status":"running"`)

	rr = do(t, r, http.MethodPost, "/api/protocols/nfs/reload", admin, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, r, http.MethodGet, "/api/services", admin, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var list []models.ServiceView
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	require.Len(t, list, 4)

	rr = do(t, r, http.MethodGet, "/api/protocols/nfs/shares", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestSystemRoutes(t *testing.T) {
	r := setupRouter(t, false)
	admin := login(t, r, "admin", "adminpass")

	assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/api/system-status", admin, nil).Code)
	assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/api/volumes", admin, nil).Code)

	rr := do(t, r, http.MethodGet, "/api/files?path=/", admin, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.Contains(rr.Body.String(), `"name":"media"`))

	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodGet, "/api/files?path=../../etc", admin, nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/api/files?path=/missing", admin, nil).Code)

	rr = do(t, r, http.MethodGet, "/api/activity-log?limit=2", admin, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var entries []models.ActivityEntry
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &entries))
	require.NotEmpty(t, entries)
	assert.Equal(t, "login", entries[0].Action)
}
