package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anya-ship-it/cybermentor-platform/internal/models"
	"github.com/anya-ship-it/cybermentor-platform/pkg/logger"
	"github.com/anya-ship-it/cybermentor-platform/pkg/metrics"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var ErrBlocklistEntryNotFound = errors.New("blocklist entry not found")

// BlocklistRepository handles blocked-email data access
type BlocklistRepository struct {
	pool *pgxpool.Pool
}

// NewBlocklistRepository creates a new blocklist repository
func NewBlocklistRepository(pool *pgxpool.Pool) *BlocklistRepository {
	return &BlocklistRepository{pool: pool}
}

// IsBlocked checks the blocklist for an exact match on a normalized email
func (r *BlocklistRepository) IsBlocked(ctx context.Context, email string) (bool, error) {
	start := time.Now()
	operation := "isEmailBlocked"

	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM blocked_emails WHERE email = $1)`, email,
	).Scan(&exists)

	duration := metrics.MeasureDuration(start)

	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return false, fmt.Errorf("failed to check blocklist: %w", err)
	}

	recordMetrics(operation, "success", duration)
	return exists, nil
}

// Block adds an email to the blocklist. Re-blocking an existing email
// refreshes the reason instead of failing on the unique constraint.
func (r *BlocklistRepository) Block(ctx context.Context, email, reason string) (*models.BlockedEmail, error) {
	start := time.Now()
	operation := "blockEmail"

	query := `
		INSERT INTO blocked_emails (email, reason)
		VALUES ($1, NULLIF($2, ''))
		ON CONFLICT (email) DO UPDATE SET reason = EXCLUDED.reason
		RETURNING id, email, COALESCE(reason, ''), created_at
	`

	var entry models.BlockedEmail
	err := r.pool.QueryRow(ctx, query, email, reason).Scan(
		&entry.ID,
		&entry.Email,
		&entry.Reason,
		&entry.CreatedAt,
	)

	duration := metrics.MeasureDuration(start)

	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to block email: %w", err)
	}

	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration, zap.Int64("entry_id", entry.ID))
	return &entry, nil
}

// Unblock removes a blocklist entry by ID
func (r *BlocklistRepository) Unblock(ctx context.Context, id int64) error {
	start := time.Now()
	operation := "unblockEmail"

	result, err := r.pool.Exec(ctx, `DELETE FROM blocked_emails WHERE id = $1`, id)

	duration := metrics.MeasureDuration(start)

	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return fmt.Errorf("failed to unblock email: %w", err)
	}

	if result.RowsAffected() == 0 {
		recordMetrics(operation, "not_found", duration)
		return ErrBlocklistEntryNotFound
	}

	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration, zap.Int64("entry_id", id))
	return nil
}

// List returns all blocklist entries, newest first
func (r *BlocklistRepository) List(ctx context.Context) ([]*models.BlockedEmail, error) {
	start := time.Now()
	operation := "listBlockedEmails"

	query := `
		SELECT id, email, COALESCE(reason, ''), created_at
		FROM blocked_emails
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to query blocklist: %w", err)
	}
	defer rows.Close()

	entries := []*models.BlockedEmail{}
	for rows.Next() {
		var entry models.BlockedEmail
		if err := rows.Scan(&entry.ID, &entry.Email, &entry.Reason, &entry.CreatedAt); err != nil {
			duration := metrics.MeasureDuration(start)
			recordMetrics(operation, "error", duration)
			return nil, fmt.Errorf("failed to scan blocklist entry: %w", err)
		}
		entries = append(entries, &entry)
	}

	duration := metrics.MeasureDuration(start)
	if err := rows.Err(); err != nil {
		recordMetrics(operation, "error", duration)
		return nil, fmt.Errorf("failed to iterate blocklist: %w", err)
	}

	recordMetrics(operation, "success", duration)
	return entries, nil
}

// Ensure BlocklistRepository implements BlocklistStore
var _ BlocklistStore = (*BlocklistRepository)(nil)
