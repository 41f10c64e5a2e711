package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anya-ship-it/cybermentor-platform/internal/models"
	"github.com/anya-ship-it/cybermentor-platform/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newMentorRouter(service *mockMentorService) *gin.Engine {
	handler := NewMentorHandler(service)
	router := gin.New()
	router.GET("/mentors", handler.GetMentors)
	router.GET("/mentors/:id", handler.GetMentorByID)
	return router
}

func TestGetMentors_ReturnsPublicProfiles(t *testing.T) {
	service := new(mockMentorService)
	router := newMentorRouter(service)

	service.On("GetApprovedMentors", mock.Anything).Return([]*models.Mentor{
		{ID: 1, Name: "Layla Hassan", Email: "layla@example.com", Status: models.MentorStatusApproved},
	}, nil).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/mentors", http.NoBody)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Layla Hassan")
	// Contact details never leave the directory endpoint
	assert.NotContains(t, w.Body.String(), "layla@example.com")
}

func TestGetMentorByID_Found(t *testing.T) {
	service := new(mockMentorService)
	router := newMentorRouter(service)

	service.On("GetApprovedByID", mock.Anything, int64(5)).Return(&models.Mentor{
		ID:     5,
		Name:   "Layla Hassan",
		Email:  "layla@example.com",
		Status: models.MentorStatusApproved,
	}, nil).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/mentors/5", http.NoBody)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Layla Hassan")
	assert.NotContains(t, w.Body.String(), "layla@example.com")
}

func TestGetMentorByID_NotFound(t *testing.T) {
	service := new(mockMentorService)
	router := newMentorRouter(service)

	service.On("GetApprovedByID", mock.Anything, int64(999)).Return(nil, services.ErrMentorNotFound).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/mentors/999", http.NoBody)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Mentor not found")
}

func TestGetMentorByID_InvalidID(t *testing.T) {
	service := new(mockMentorService)
	router := newMentorRouter(service)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/mentors/not-a-number", http.NoBody)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	service.AssertNotCalled(t, "GetApprovedByID")
}
