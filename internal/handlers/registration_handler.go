package handlers

import (
	"net/http"

	"github.com/anya-ship-it/cybermentor-platform/internal/models"
	"github.com/anya-ship-it/cybermentor-platform/internal/services"
	"github.com/gin-gonic/gin"
)

// RegistrationHandler handles mentor applications and mentee signups
type RegistrationHandler struct {
	service services.RegistrationServiceInterface
}

func NewRegistrationHandler(service services.RegistrationServiceInterface) *RegistrationHandler {
	return &RegistrationHandler{service: service}
}

// RegisterMentor handles POST /api/v1/register-mentor
func (h *RegistrationHandler) RegisterMentor(c *gin.Context) {
	var req models.MentorRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Validation failed", ParseValidationErrors(err), err)
		return
	}

	resp, err := h.service.RegisterMentor(c.Request.Context(), &req)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	if !resp.Success {
		c.JSON(http.StatusBadRequest, resp)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// RegisterMentee handles POST /api/v1/register-mentee
func (h *RegistrationHandler) RegisterMentee(c *gin.Context) {
	var req models.MenteeRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Validation failed", ParseValidationErrors(err), err)
		return
	}

	resp, err := h.service.RegisterMentee(c.Request.Context(), &req)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	if !resp.Success {
		c.JSON(http.StatusBadRequest, resp)
		return
	}

	c.JSON(http.StatusOK, resp)
}
