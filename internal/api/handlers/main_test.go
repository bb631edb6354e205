// filepath: internal/api/handlers/main_test.go
package handlers

import (
	"encoding/json"
	"flexnas/internal/models"
	"flexnas/internal/services"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

var (
	testAdmin = &models.User{ID: 1, Username: "admin", Role: models.RoleAdmin, Status: models.StatusActive}
	testUser  = &models.User{
		ID:          2,
		Username:    "alice",
		Role:        models.RoleUser,
		Status:      models.StatusActive,
		Permissions: models.NewPermissionSet(models.PermReadFiles),
	}
)

// newRequest builds a request carrying user (if any) and route vars.
func newRequest(method, target, body string, user *models.User, vars map[string]string) *http.Request {
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rdr)
	if user != nil {
		req = req.WithContext(services.WithUser(req.Context(), user))
	}
	if vars != nil {
		req = mux.SetURLVars(req, vars)
	}
	return req
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Error
}
