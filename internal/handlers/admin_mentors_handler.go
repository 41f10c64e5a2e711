package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/anya-ship-it/cybermentor-platform/internal/middleware"
	"github.com/anya-ship-it/cybermentor-platform/internal/models"
	"github.com/anya-ship-it/cybermentor-platform/internal/services"
	"github.com/gin-gonic/gin"
)

// AdminMentorsHandler handles mentor moderation endpoints
type AdminMentorsHandler struct {
	service services.AdminMentorsServiceInterface
}

func NewAdminMentorsHandler(service services.AdminMentorsServiceInterface) *AdminMentorsHandler {
	return &AdminMentorsHandler{service: service}
}

// ListMentors handles GET /api/v1/admin/mentors?status=pending|approved
func (h *AdminMentorsHandler) ListMentors(c *gin.Context) {
	status := models.MentorStatus(c.DefaultQuery("status", string(models.MentorStatusPending)))
	if status != models.MentorStatusPending && status != models.MentorStatusApproved {
		respondError(c, http.StatusBadRequest, "Unknown status filter", nil)
		return
	}

	mentors, err := h.service.ListMentors(c.Request.Context(), status)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to load mentors", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"mentors": mentors})
}

// ApproveMentor handles POST /api/v1/admin/mentors/:id/approve
func (h *AdminMentorsHandler) ApproveMentor(c *gin.Context) {
	h.decide(c, h.service.ApproveMentor)
}

// RejectMentor handles POST /api/v1/admin/mentors/:id/reject
func (h *AdminMentorsHandler) RejectMentor(c *gin.Context) {
	h.decide(c, h.service.RejectMentor)
}

type moderationDecision func(ctx context.Context, session *models.AdminSession, mentorID int64) (*models.ModerationDecisionResponse, error)

func (h *AdminMentorsHandler) decide(c *gin.Context, decision moderationDecision) {
	session, err := middleware.GetAdminSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Not authenticated", err)
		return
	}

	mentorID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid mentor ID", err)
		return
	}

	resp, err := decision(c.Request.Context(), session, mentorID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	if !resp.Success {
		c.JSON(http.StatusNotFound, resp)
		return
	}

	c.JSON(http.StatusOK, resp)
}
