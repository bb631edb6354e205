package handlers

import (
	"encoding/json"
	"flexnas/internal/models"
	"flexnas/internal/services"
	"flexnas/internal/services/mocks"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetServices(t *testing.T) {
	svcMgr := new(mocks.MockServiceManager)
	h := &Handlers{Services: svcMgr}
	svcMgr.On("ListServices", mock.Anything).Return([]models.ServiceView{{ID: 1, Name: "smb"}}, nil)

	rr := httptest.NewRecorder()
	h.GetServices(rr, newRequest(http.MethodGet, "/api/services", "", testUser, nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var list []models.ServiceView
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	assert.Len(t, list, 1)
}

func TestUpdateService(t *testing.T) {
	svcMgr := new(mocks.MockServiceManager)
	h := &Handlers{Services: svcMgr}
	svcMgr.On("UpdateService", mock.Anything, testAdmin, int64(2), mock.MatchedBy(func(p models.ServiceUpdatePayload) bool {
		return p.IsEnabled != nil && !*p.IsEnabled
	})).Return(&models.ServiceView{ID: 2, Name: "nfs"}, nil)

	rr := httptest.NewRecorder()
	h.UpdateService(rr, newRequest(http.MethodPut, "/api/services/2", `{"isEnabled":false}`, testAdmin, map[string]string{"id": "2"}))
	assert.Equal(t, http.StatusOK, rr.Code)
	svcMgr.AssertExpectations(t)
}

func TestControlService_Forbidden(t *testing.T) {
	svcMgr := new(mocks.MockServiceManager)
	h := &Handlers{Services: svcMgr}
	svcMgr.On("ControlService", mock.Anything, testUser, int64(2), "restart").Return(nil, services.ErrForbidden)

	rr := httptest.NewRecorder()
	h.ControlService(rr, newRequest(http.MethodPost, "/api/services/2/restart", "", testUser,
		map[string]string{"id": "2", "action": "restart"}))
	assert.Equal(t, http.StatusForbidden, rr.Code)
}
