package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/anya-ship-it/cybermentor-platform/internal/middleware"
	"github.com/anya-ship-it/cybermentor-platform/internal/repository"
	"github.com/anya-ship-it/cybermentor-platform/internal/services"
	"github.com/gin-gonic/gin"
)

// AdminSubscribersHandler handles newsletter-list management endpoints
type AdminSubscribersHandler struct {
	service services.ModerationServiceInterface
}

func NewAdminSubscribersHandler(service services.ModerationServiceInterface) *AdminSubscribersHandler {
	return &AdminSubscribersHandler{service: service}
}

// ListSubscribers handles GET /api/v1/admin/subscribers
func (h *AdminSubscribersHandler) ListSubscribers(c *gin.Context) {
	subscribers, err := h.service.ListSubscribers(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to load subscribers", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"subscribers": subscribers})
}

// DeleteSubscriber handles DELETE /api/v1/admin/subscribers/:id
func (h *AdminSubscribersHandler) DeleteSubscriber(c *gin.Context) {
	session, err := middleware.GetAdminSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Not authenticated", err)
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid subscriber ID", err)
		return
	}

	if err := h.service.DeleteSubscriber(c.Request.Context(), session, id); err != nil {
		if errors.Is(err, repository.ErrSubscriberNotFound) {
			respondError(c, http.StatusNotFound, "Subscriber not found", err)
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to delete subscriber", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
