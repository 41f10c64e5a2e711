package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anya-ship-it/cybermentor-platform/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrModeratorNotFound = errors.New("moderator not found")

// ModeratorRepository handles moderator data access for the admin login flow
type ModeratorRepository struct {
	pool *pgxpool.Pool
}

// NewModeratorRepository creates a new moderator repository
func NewModeratorRepository(pool *pgxpool.Pool) *ModeratorRepository {
	return &ModeratorRepository{pool: pool}
}

func (r *ModeratorRepository) GetByEmail(ctx context.Context, email string) (*models.Moderator, error) {
	query := `
		SELECT id, email, name, role, created_at
		FROM moderators
		WHERE email = $1
		LIMIT 1
	`

	var moderator models.Moderator
	var role string
	if err := r.pool.QueryRow(ctx, query, email).Scan(
		&moderator.ID,
		&moderator.Email,
		&moderator.Name,
		&role,
		&moderator.CreatedAt,
	); err != nil {
		return nil, ErrModeratorNotFound
	}

	moderator.Role = models.ModeratorRole(role)
	return &moderator, nil
}

func (r *ModeratorRepository) GetByLoginToken(ctx context.Context, token string) (*models.Moderator, time.Time, error) {
	query := `
		SELECT id, email, name, role, login_token_expires_at, created_at
		FROM moderators
		WHERE login_token = $1
		LIMIT 1
	`

	var moderator models.Moderator
	var role string
	var expiresAt *time.Time
	if err := r.pool.QueryRow(ctx, query, token).Scan(
		&moderator.ID,
		&moderator.Email,
		&moderator.Name,
		&role,
		&expiresAt,
		&moderator.CreatedAt,
	); err != nil {
		return nil, time.Time{}, ErrModeratorNotFound
	}

	if expiresAt == nil {
		return nil, time.Time{}, fmt.Errorf("login token has no expiry")
	}

	moderator.Role = models.ModeratorRole(role)
	return &moderator, *expiresAt, nil
}

func (r *ModeratorRepository) SetLoginToken(ctx context.Context, moderatorID int64, token string, exp time.Time) error {
	query := `
		UPDATE moderators
		SET login_token = $1, login_token_expires_at = $2
		WHERE id = $3
	`
	_, err := r.pool.Exec(ctx, query, token, exp, moderatorID)
	return err
}

func (r *ModeratorRepository) ClearLoginToken(ctx context.Context, moderatorID int64) error {
	query := `
		UPDATE moderators
		SET login_token = NULL, login_token_expires_at = NULL
		WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query, moderatorID)
	return err
}

// Ensure ModeratorRepository implements ModeratorStore
var _ ModeratorStore = (*ModeratorRepository)(nil)
