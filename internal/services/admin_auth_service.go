package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/anya-ship-it/cybermentor-platform/config"
	"github.com/anya-ship-it/cybermentor-platform/internal/models"
	"github.com/anya-ship-it/cybermentor-platform/internal/repository"
	"github.com/anya-ship-it/cybermentor-platform/pkg/jwt"
	"github.com/anya-ship-it/cybermentor-platform/pkg/logger"
	"github.com/anya-ship-it/cybermentor-platform/pkg/notify"
	"go.uber.org/zap"
)

var (
	ErrModeratorNotEligible   = errors.New("moderator not eligible for login")
	ErrAdminInvalidLoginToken = errors.New("invalid or expired admin login token")
	ErrAdminJWTSecretNotSet   = errors.New("JWT secret not configured")
	ErrAdminTokenGeneration   = errors.New("failed to generate admin login token")
)

// loginRequestedMessage is returned for known and unknown emails alike
const loginRequestedMessage = "If that email belongs to a moderator, a login link has been sent."

// AdminAuthService handles the moderator one-time login flow.
type AdminAuthService struct {
	moderatorRepo repository.ModeratorStore
	config        *config.Config
	tokenManager  *jwt.TokenManager
	loginSender   notify.LoginDispatcher
}

func NewAdminAuthService(
	moderatorRepo repository.ModeratorStore,
	cfg *config.Config,
	loginSender notify.LoginDispatcher,
) *AdminAuthService {
	var tokenManager *jwt.TokenManager
	if cfg.AdminSession.JWTSecret != "" {
		tokenManager = jwt.NewTokenManager(
			cfg.AdminSession.JWTSecret,
			cfg.AdminSession.JWTIssuer,
			cfg.AdminSession.SessionTTLHours,
		)
	}

	return &AdminAuthService{
		moderatorRepo: moderatorRepo,
		config:        cfg,
		tokenManager:  tokenManager,
		loginSender:   loginSender,
	}
}

// RequestLogin stores a one-time token and sends a login link. The response
// never reveals whether the email belongs to a moderator.
func (s *AdminAuthService) RequestLogin(ctx context.Context, email string) (*models.AdminRequestLoginResponse, error) {
	accepted := &models.AdminRequestLoginResponse{
		Success: true,
		Message: loginRequestedMessage,
	}

	moderator, err := s.moderatorRepo.GetByEmail(ctx, models.NormalizeEmail(email))
	if err != nil {
		logger.Warn("Admin login request for unknown email", zap.String("email", email))
		return accepted, nil
	}
	if !moderator.Role.IsValid() {
		logger.Warn("Admin login request with invalid role",
			zap.Int64("moderator_id", moderator.ID),
			zap.String("role", string(moderator.Role)))
		return accepted, nil
	}

	token, err := generateAdminLoginToken()
	if err != nil {
		logger.Error("Failed to generate admin login token", zap.Error(err))
		return nil, ErrAdminTokenGeneration
	}

	expiration := time.Now().Add(time.Duration(s.config.AdminSession.LoginTokenTTLMinutes) * time.Minute)
	if err := s.moderatorRepo.SetLoginToken(ctx, moderator.ID, token, expiration); err != nil {
		return nil, fmt.Errorf("failed to store admin login token: %w", err)
	}

	loginURL := fmt.Sprintf("%s/admin/auth/callback?token=%s", s.config.Server.BaseURL, token)
	payload := &notify.LoginLinkPayload{
		ModeratorEmail: moderator.Email,
		ModeratorName:  moderator.Name,
		LoginURL:       loginURL,
	}
	if err := s.loginSender.DispatchLoginLink(ctx, payload); err != nil {
		logger.Error("Failed to dispatch admin login link",
			zap.Int64("moderator_id", moderator.ID),
			zap.Error(err))
	}
	if s.config.IsDevelopment() {
		logger.Info("=== DEVELOPMENT ADMIN LOGIN URL ===",
			zap.String("moderator_email", moderator.Email),
			zap.String("login_url", loginURL))
	}

	return accepted, nil
}

// VerifyLogin exchanges a one-time token for a session and a signed JWT.
// The token is single-use: it is cleared before the session is issued.
func (s *AdminAuthService) VerifyLogin(ctx context.Context, token string) (*models.AdminSession, string, error) {
	if s.tokenManager == nil {
		return nil, "", ErrAdminJWTSecretNotSet
	}

	moderator, tokenExp, err := s.moderatorRepo.GetByLoginToken(ctx, token)
	if err != nil {
		return nil, "", ErrAdminInvalidLoginToken
	}
	if time.Now().After(tokenExp) {
		return nil, "", ErrAdminInvalidLoginToken
	}
	if !moderator.Role.IsValid() {
		return nil, "", ErrModeratorNotEligible
	}

	if err := s.moderatorRepo.ClearLoginToken(ctx, moderator.ID); err != nil {
		logger.Error("Failed to clear admin login token",
			zap.Int64("moderator_id", moderator.ID),
			zap.Error(err))
	}

	moderatorID := strconv.FormatInt(moderator.ID, 10)
	jwtToken, err := s.tokenManager.GenerateToken(
		moderatorID,
		moderator.Email,
		moderator.Name,
		string(moderator.Role),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate admin session token: %w", err)
	}

	now := time.Now()
	session := &models.AdminSession{
		ModeratorID: moderatorID,
		Email:       moderator.Email,
		Name:        moderator.Name,
		Role:        moderator.Role,
		ExpiresAt:   now.Add(s.tokenManager.GetExpirationTime()).Unix(),
		IssuedAt:    now.Unix(),
	}

	return session, jwtToken, nil
}

func (s *AdminAuthService) GetSessionTTL() int {
	return s.config.AdminSession.SessionTTLHours * 3600
}

func (s *AdminAuthService) GetCookieDomain() string {
	return s.config.AdminSession.CookieDomain
}

func (s *AdminAuthService) GetCookieSecure() bool {
	return s.config.AdminSession.CookieSecure
}

func (s *AdminAuthService) GetTokenManager() *jwt.TokenManager {
	return s.tokenManager
}

func generateAdminLoginToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	timestamp := time.Now().Unix()
	return fmt.Sprintf("atk_%s_%d", hex.EncodeToString(bytes), timestamp), nil
}
