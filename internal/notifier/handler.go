package notifier

import (
	"fmt"
	"net/http"

	"github.com/anya-ship-it/cybermentor-platform/pkg/jwt"
	"github.com/anya-ship-it/cybermentor-platform/pkg/logger"
	"github.com/anya-ship-it/cybermentor-platform/pkg/mailer"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// authTokenHeader is the shared-secret header the API sets on dispatch calls
const authTokenHeader = "X-Notifier-Auth-Token"

// sendRequest is the dispatch contract for mentor notifications
type sendRequest struct {
	MentorEmail        string `json:"mentorEmail" binding:"required,email"`
	MentorName         string `json:"mentorName" binding:"required"`
	MenteeName         string `json:"menteeName" binding:"required"`
	MenteeEmail        string `json:"menteeEmail" binding:"required,email"`
	MenteeAvailability string `json:"menteeAvailability" binding:"required"`
	Message            string `json:"message" binding:"required"`
}

// sendLoginLinkRequest is the dispatch contract for moderator login links
type sendLoginLinkRequest struct {
	ModeratorEmail string `json:"moderatorEmail" binding:"required,email"`
	ModeratorName  string `json:"moderatorName" binding:"required"`
	LoginURL       string `json:"loginUrl" binding:"required,url"`
}

// Handler serves the notification dispatch endpoints
type Handler struct {
	sender mailer.Sender
	from   string
}

// NewHandler creates a notifier handler sending through the given mailer
func NewHandler(sender mailer.Sender, from string) *Handler {
	return &Handler{
		sender: sender,
		from:   from,
	}
}

// AuthMiddleware gates dispatch endpoints behind the shared secret. An empty
// configured token disables the gate (local development).
func AuthMiddleware(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			c.Next()
			return
		}

		if !jwt.TimingSafeCompare(c.GetHeader(authTokenHeader), token) {
			_ = c.Error(fmt.Errorf("invalid notifier auth token")) //nolint:errcheck
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// Send handles POST /send
func (h *Handler) Send(c *gin.Context) {
	var req sendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err) //nolint:errcheck
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid payload"})
		return
	}

	result, err := h.sender.Send(c.Request.Context(), mailer.SendRequest{
		From:    h.from,
		To:      []string{req.MentorEmail},
		ReplyTo: req.MenteeEmail,
		Subject: fmt.Sprintf("New Mentorship Request from %s", req.MenteeName),
		HTML: mentorRequestHTML(
			req.MentorName,
			req.MenteeName,
			req.MenteeEmail,
			req.MenteeAvailability,
			req.Message,
		),
	})
	if err != nil {
		_ = c.Error(err) //nolint:errcheck
		logger.Error("Failed to send mentor notification",
			zap.String("mentor_email", req.MentorEmail),
			zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"message": "Failed to send email",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Email sent successfully",
		"message_id": result.MessageID,
	})
}

// SendLoginLink handles POST /send-login-link
func (h *Handler) SendLoginLink(c *gin.Context) {
	var req sendLoginLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err) //nolint:errcheck
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid payload"})
		return
	}

	result, err := h.sender.Send(c.Request.Context(), mailer.SendRequest{
		From:    h.from,
		To:      []string{req.ModeratorEmail},
		Subject: "Your moderator login link",
		HTML:    loginLinkHTML(req.ModeratorName, req.LoginURL),
	})
	if err != nil {
		_ = c.Error(err) //nolint:errcheck
		logger.Error("Failed to send login link",
			zap.String("moderator_email", req.ModeratorEmail),
			zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"message": "Failed to send email",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Email sent successfully",
		"message_id": result.MessageID,
	})
}
