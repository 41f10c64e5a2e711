package handlers

import (
	"net/http"
	"strconv"

	"github.com/anya-ship-it/cybermentor-platform/internal/services"
	"github.com/gin-gonic/gin"
)

// AdminRequestsHandler gives moderators visibility into connection requests
type AdminRequestsHandler struct {
	service services.ModerationServiceInterface
}

func NewAdminRequestsHandler(service services.ModerationServiceInterface) *AdminRequestsHandler {
	return &AdminRequestsHandler{service: service}
}

// ListConnectionRequests handles GET /api/v1/admin/requests?limit=
func (h *AdminRequestsHandler) ListConnectionRequests(c *gin.Context) {
	limit := 100
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 1000 {
			respondError(c, http.StatusBadRequest, "Invalid limit", err)
			return
		}
		limit = parsed
	}

	requests, err := h.service.ListConnectionRequests(c.Request.Context(), limit)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to load connection requests", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": requests})
}
