// filepath: internal/api/handlers/user_handler_test.go
package handlers

import (
	"encoding/json"
	"flexnas/internal/models"
	"flexnas/internal/services"
	"flexnas/internal/services/mocks"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetUserMe(t *testing.T) {
	h := &Handlers{}
	user := &models.User{
		ID:           1,
		Username:     "testuser",
		PasswordHash: "$2a$10$secret",
		Role:         models.RoleUser,
		Permissions:  models.NewPermissionSet(models.PermReadFiles, models.PermViewLogs),
	}

	rr := httptest.NewRecorder()
	h.GetUserMe(rr, newRequest(http.MethodGet, "/api/me", "", user, nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotContains(t, rr.Body.String(), "secret")

	var returned map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &returned))
	assert.Equal(t, "testuser", returned["username"])
	assert.Equal(t, []interface{}{"read_files", "view_logs"}, returned["permissions"])
}

func TestGetUserMe_NoUserInContext(t *testing.T) {
	h := &Handlers{}
	rr := httptest.NewRecorder()
	h.GetUserMe(rr, newRequest(http.MethodGet, "/api/me", "", nil, nil))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "No user found in context", decodeError(t, rr))
}

func TestUpdateUserMe(t *testing.T) {
	userSvc := new(mocks.MockUserService)
	h := &Handlers{User: userSvc}
	userSvc.On("UpdateOwnPassword", mock.Anything, testUser, "newpassword").Return(nil)

	rr := httptest.NewRecorder()
	h.UpdateUserMe(rr, newRequest(http.MethodPatch, "/api/me", `{"password":"newpassword"}`, testUser, nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	userSvc.AssertExpectations(t)

	var resp MessageResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "Password updated successfully.", resp.Message)
}

func TestUpdateUserMe_EmptyPassword(t *testing.T) {
	userSvc := new(mocks.MockUserService)
	h := &Handlers{User: userSvc}

	rr := httptest.NewRecorder()
	h.UpdateUserMe(rr, newRequest(http.MethodPatch, "/api/me", `{"password":""}`, testUser, nil))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	userSvc.AssertNotCalled(t, "UpdateOwnPassword", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateUser(t *testing.T) {
	body := `{"username":"bob","email":"bob@example.com","password":"password1","permissions":["read_files"]}`
	want := models.UserCreatePayload{
		Username:    "bob",
		Email:       "bob@example.com",
		Password:    "password1",
		Permissions: []string{"read_files"},
	}

	t.Run("created", func(t *testing.T) {
		userSvc := new(mocks.MockUserService)
		h := &Handlers{User: userSvc}
		userSvc.On("CreateUser", mock.Anything, testAdmin, want).
			Return(&models.User{ID: 3, Username: "bob"}, nil)

		rr := httptest.NewRecorder()
		h.CreateUser(rr, newRequest(http.MethodPost, "/api/users", body, testAdmin, nil))

		assert.Equal(t, http.StatusCreated, rr.Code)
		userSvc.AssertExpectations(t)
	})

	t.Run("duplicate", func(t *testing.T) {
		userSvc := new(mocks.MockUserService)
		h := &Handlers{User: userSvc}
		userSvc.On("CreateUser", mock.Anything, testAdmin, want).
			Return(nil, services.ErrConflict)

		rr := httptest.NewRecorder()
		h.CreateUser(rr, newRequest(http.MethodPost, "/api/users", body, testAdmin, nil))

		assert.Equal(t, http.StatusConflict, rr.Code)
	})
}

func TestUpdateUser(t *testing.T) {
	userSvc := new(mocks.MockUserService)
	h := &Handlers{User: userSvc}
	disabled := models.StatusDisabled
	userSvc.On("UpdateUser", mock.Anything, testAdmin, "alice", models.UserUpdatePayload{Status: &disabled}).
		Return(&models.User{ID: 2, Username: "alice", Status: disabled}, nil)

	rr := httptest.NewRecorder()
	req := newRequest(http.MethodPut, "/api/users/alice", `{"status":"disabled"}`, testAdmin, map[string]string{"username": "alice"})
	h.UpdateUser(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.Contains(rr.Body.String(), `"status":"disabled"`))
	userSvc.AssertExpectations(t)
}

func TestGetUserQuota(t *testing.T) {
	quotaSvc := new(mocks.MockQuotaService)
	h := &Handlers{Quota: quotaSvc}
	quotaSvc.On("GetUserQuotas", mock.Anything, testUser, "bob").Return(nil, services.ErrForbidden)

	rr := httptest.NewRecorder()
	h.GetUserQuota(rr, newRequest(http.MethodGet, "/api/users/bob/quota", "", testUser, map[string]string{"username": "bob"}))

	assert.Equal(t, http.StatusForbidden, rr.Code)
}
