package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/anya-ship-it/cybermentor-platform/internal/middleware"
	"github.com/anya-ship-it/cybermentor-platform/internal/models"
	"github.com/anya-ship-it/cybermentor-platform/internal/repository"
	"github.com/anya-ship-it/cybermentor-platform/internal/services"
	"github.com/gin-gonic/gin"
)

// AdminBlocklistHandler handles blocklist management endpoints
type AdminBlocklistHandler struct {
	service services.ModerationServiceInterface
}

func NewAdminBlocklistHandler(service services.ModerationServiceInterface) *AdminBlocklistHandler {
	return &AdminBlocklistHandler{service: service}
}

// ListBlockedEmails handles GET /api/v1/admin/blocklist
func (h *AdminBlocklistHandler) ListBlockedEmails(c *gin.Context) {
	entries, err := h.service.ListBlockedEmails(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to load blocklist", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"blocked": entries})
}

// BlockEmail handles POST /api/v1/admin/blocklist
func (h *AdminBlocklistHandler) BlockEmail(c *gin.Context) {
	session, err := middleware.GetAdminSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Not authenticated", err)
		return
	}

	var req models.BlockEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Validation failed", ParseValidationErrors(err), err)
		return
	}

	entry, err := h.service.BlockEmail(c.Request.Context(), session, &req)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to block email", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "entry": entry})
}

// UnblockEmail handles DELETE /api/v1/admin/blocklist/:id
func (h *AdminBlocklistHandler) UnblockEmail(c *gin.Context) {
	session, err := middleware.GetAdminSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Not authenticated", err)
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid blocklist entry ID", err)
		return
	}

	if err := h.service.UnblockEmail(c.Request.Context(), session, id); err != nil {
		if errors.Is(err, repository.ErrBlocklistEntryNotFound) {
			respondError(c, http.StatusNotFound, "Blocklist entry not found", err)
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to unblock email", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
