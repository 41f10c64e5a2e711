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

var ErrSubscriberNotFound = errors.New("subscriber not found")

// SubscriberRepository handles newsletter-list data access
type SubscriberRepository struct {
	pool *pgxpool.Pool
}

// NewSubscriberRepository creates a new subscriber repository
func NewSubscriberRepository(pool *pgxpool.Pool) *SubscriberRepository {
	return &SubscriberRepository{pool: pool}
}

// Upsert inserts a subscriber or refreshes the name of an existing one.
// Email is the unique key and must already be normalized by the caller.
func (r *SubscriberRepository) Upsert(ctx context.Context, name, email, country string) error {
	start := time.Now()
	operation := "upsertSubscriber"

	query := `
		INSERT INTO subscribers (name, email, country)
		VALUES ($1, $2, NULLIF($3, ''))
		ON CONFLICT (email) DO UPDATE
		SET name = EXCLUDED.name,
		    country = COALESCE(EXCLUDED.country, subscribers.country),
		    updated_at = NOW()
	`

	_, err := r.pool.Exec(ctx, query, name, email, country)

	duration := metrics.MeasureDuration(start)

	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return fmt.Errorf("failed to upsert subscriber: %w", err)
	}

	recordMetrics(operation, "success", duration)
	return nil
}

// List returns all subscribers, newest first
func (r *SubscriberRepository) List(ctx context.Context) ([]*models.Subscriber, error) {
	start := time.Now()
	operation := "listSubscribers"

	query := `
		SELECT id, name, email, COALESCE(country, ''), created_at, updated_at
		FROM subscribers
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to query subscribers: %w", err)
	}
	defer rows.Close()

	subscribers := []*models.Subscriber{}
	for rows.Next() {
		var s models.Subscriber
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.Country, &s.CreatedAt, &s.UpdatedAt); err != nil {
			duration := metrics.MeasureDuration(start)
			recordMetrics(operation, "error", duration)
			return nil, fmt.Errorf("failed to scan subscriber: %w", err)
		}
		subscribers = append(subscribers, &s)
	}

	duration := metrics.MeasureDuration(start)
	if err := rows.Err(); err != nil {
		recordMetrics(operation, "error", duration)
		return nil, fmt.Errorf("failed to iterate subscribers: %w", err)
	}

	recordMetrics(operation, "success", duration)
	return subscribers, nil
}

// Delete removes a subscriber by ID
func (r *SubscriberRepository) Delete(ctx context.Context, id int64) error {
	start := time.Now()
	operation := "deleteSubscriber"

	result, err := r.pool.Exec(ctx, `DELETE FROM subscribers WHERE id = $1`, id)

	duration := metrics.MeasureDuration(start)

	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return fmt.Errorf("failed to delete subscriber: %w", err)
	}

	if result.RowsAffected() == 0 {
		recordMetrics(operation, "not_found", duration)
		return ErrSubscriberNotFound
	}

	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration, zap.Int64("subscriber_id", id))
	return nil
}

// Ensure SubscriberRepository implements SubscriberStore
var _ SubscriberStore = (*SubscriberRepository)(nil)
