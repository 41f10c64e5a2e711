package handlers

import (
	"net/http"
	"strconv"

	"github.com/anya-ship-it/cybermentor-platform/internal/models"
	"github.com/anya-ship-it/cybermentor-platform/internal/services"
	"github.com/gin-gonic/gin"
)

// MentorHandler serves the public directory of approved mentors
type MentorHandler struct {
	service services.MentorServiceInterface
}

func NewMentorHandler(service services.MentorServiceInterface) *MentorHandler {
	return &MentorHandler{service: service}
}

// GetMentors handles GET /api/v1/mentors
func (h *MentorHandler) GetMentors(c *gin.Context) {
	mentors, err := h.service.GetApprovedMentors(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to load mentors", err)
		return
	}

	response := make([]models.PublicMentorResponse, 0, len(mentors))
	for _, mentor := range mentors {
		response = append(response, mentor.ToPublicResponse())
	}

	c.JSON(http.StatusOK, gin.H{"mentors": response})
}

// GetMentorByID handles GET /api/v1/mentors/:id
func (h *MentorHandler) GetMentorByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid mentor ID", err)
		return
	}

	mentor, err := h.service.GetApprovedByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, http.StatusNotFound, "Mentor not found", err)
		return
	}

	c.JSON(http.StatusOK, mentor.ToPublicResponse())
}
