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

func TestGetShares(t *testing.T) {
	shareSvc := new(mocks.MockShareService)
	h := &Handlers{Share: shareSvc}
	shareSvc.On("ListShares", mock.Anything, testUser).Return([]models.Share{
		{ID: 1, Name: "public", Path: "/srv/public", IsPublic: true, AllowedUsers: []string{}},
	}, nil)

	rr := httptest.NewRecorder()
	h.GetShares(rr, newRequest(http.MethodGet, "/api/shares", "", testUser, nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var shares []models.Share
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &shares))
	require.Len(t, shares, 1)
	assert.Equal(t, "public", shares[0].Name)
}

func TestGetShare_InvalidID(t *testing.T) {
	shareSvc := new(mocks.MockShareService)
	h := &Handlers{Share: shareSvc}

	for _, id := range []string{"abc", "0", "-4"} {
		rr := httptest.NewRecorder()
		h.GetShare(rr, newRequest(http.MethodGet, "/api/shares/"+id, "", testUser, map[string]string{"id": id}))
		assert.Equal(t, http.StatusBadRequest, rr.Code, id)
	}
	shareSvc.AssertNotCalled(t, "GetShare", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetShare_NotVisible(t *testing.T) {
	shareSvc := new(mocks.MockShareService)
	h := &Handlers{Share: shareSvc}
	shareSvc.On("GetShare", mock.Anything, testUser, int64(5)).Return(nil, services.ErrNotFound)

	rr := httptest.NewRecorder()
	h.GetShare(rr, newRequest(http.MethodGet, "/api/shares/5", "", testUser, map[string]string{"id": "5"}))

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCreateShare(t *testing.T) {
	shareSvc := new(mocks.MockShareService)
	h := &Handlers{Share: shareSvc}
	payload := models.SharePayload{
		Name:         "media",
		Path:         "/srv/media",
		AllowedUsers: []string{"alice"},
		ReadOnly:     true,
	}
	shareSvc.On("CreateShare", mock.Anything, testAdmin, payload).
		Return(&models.Share{ID: 4, Name: "media", Path: "/srv/media", AllowedUsers: []string{"alice"}, ReadOnly: true}, nil)

	body := `{"name":"media","path":"/srv/media","allowedUsers":["alice"],"readOnly":true}`
	rr := httptest.NewRecorder()
	h.CreateShare(rr, newRequest(http.MethodPost, "/api/shares", body, testAdmin, nil))

	assert.Equal(t, http.StatusCreated, rr.Code)
	shareSvc.AssertExpectations(t)
}

func TestCreateShare_Forbidden(t *testing.T) {
	shareSvc := new(mocks.MockShareService)
	h := &Handlers{Share: shareSvc}
	shareSvc.On("CreateShare", mock.Anything, testUser, mock.Anything).Return(nil, services.ErrForbidden)

	rr := httptest.NewRecorder()
	h.CreateShare(rr, newRequest(http.MethodPost, "/api/shares", `{"name":"x","path":"/x"}`, testUser, nil))

	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestDeleteShare(t *testing.T) {
	shareSvc := new(mocks.MockShareService)
	h := &Handlers{Share: shareSvc}
	shareSvc.On("DeleteShare", mock.Anything, testAdmin, int64(4)).Return(nil)
	shareSvc.On("DeleteShare", mock.Anything, testAdmin, int64(99)).Return(services.ErrNotFound)

	rr := httptest.NewRecorder()
	h.DeleteShare(rr, newRequest(http.MethodDelete, "/api/shares/4", "", testAdmin, map[string]string{"id": "4"}))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	h.DeleteShare(rr, newRequest(http.MethodDelete, "/api/shares/99", "", testAdmin, map[string]string{"id": "99"}))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
