package handlers

import (
	"net/http"

	"github.com/anya-ship-it/cybermentor-platform/internal/models"
	"github.com/anya-ship-it/cybermentor-platform/internal/services"
	"github.com/gin-gonic/gin"
)

// ContactHandler handles connection request submissions
type ContactHandler struct {
	service services.ContactServiceInterface
}

func NewContactHandler(service services.ContactServiceInterface) *ContactHandler {
	return &ContactHandler{service: service}
}

// SubmitConnectionRequest handles POST /api/v1/connection-requests
func (h *ContactHandler) SubmitConnectionRequest(c *gin.Context) {
	var req models.ConnectionRequestInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Validation failed", ParseValidationErrors(err), err)
		return
	}

	resp, err := h.service.SubmitConnectionRequest(c.Request.Context(), &req)
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
