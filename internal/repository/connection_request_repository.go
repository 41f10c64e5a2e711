package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/anya-ship-it/cybermentor-platform/internal/models"
	"github.com/anya-ship-it/cybermentor-platform/pkg/logger"
	"github.com/anya-ship-it/cybermentor-platform/pkg/metrics"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// ConnectionRequestRepository handles connection request data access
type ConnectionRequestRepository struct {
	pool *pgxpool.Pool
}

// NewConnectionRequestRepository creates a new connection request repository
func NewConnectionRequestRepository(pool *pgxpool.Pool) *ConnectionRequestRepository {
	return &ConnectionRequestRepository{pool: pool}
}

// Create inserts a new connection request and returns its ID
func (r *ConnectionRequestRepository) Create(ctx context.Context, req *models.ConnectionRequest) (int64, error) {
	start := time.Now()
	operation := "createConnectionRequest"

	query := `
		INSERT INTO connection_requests (reference, mentor_id, mentee_name, mentee_email,
		                                 mentee_availability, message)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	var id int64
	err := r.pool.QueryRow(ctx, query,
		req.Reference,
		req.MentorID,
		req.MenteeName,
		req.MenteeEmail,
		req.Availability,
		req.Message,
	).Scan(&id)

	duration := metrics.MeasureDuration(start)

	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return 0, fmt.Errorf("failed to create connection request: %w", err)
	}

	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration,
		zap.Int64("request_id", id),
		zap.Int64("mentor_id", req.MentorID))
	return id, nil
}

// CountSince counts requests from a mentee (normalized email) with
// created_at >= since. The lower bound is inclusive.
func (r *ConnectionRequestRepository) CountSince(ctx context.Context, menteeEmail string, since time.Time) (int, error) {
	start := time.Now()
	operation := "countConnectionRequestsSince"

	query := `
		SELECT COUNT(*)
		FROM connection_requests
		WHERE mentee_email = $1 AND created_at >= $2
	`

	var count int
	err := r.pool.QueryRow(ctx, query, menteeEmail, since).Scan(&count)

	duration := metrics.MeasureDuration(start)

	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return 0, fmt.Errorf("failed to count connection requests: %w", err)
	}

	recordMetrics(operation, "success", duration)
	return count, nil
}

// List returns the most recent connection requests for the admin console
func (r *ConnectionRequestRepository) List(ctx context.Context, limit int) ([]*models.ConnectionRequest, error) {
	start := time.Now()
	operation := "listConnectionRequests"

	if limit <= 0 {
		limit = 100
	}

	query := `
		SELECT id, reference, mentor_id, mentee_name, mentee_email,
		       mentee_availability, message, created_at
		FROM connection_requests
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to query connection requests: %w", err)
	}
	defer rows.Close()

	requests := []*models.ConnectionRequest{}
	for rows.Next() {
		var req models.ConnectionRequest
		if err := rows.Scan(
			&req.ID,
			&req.Reference,
			&req.MentorID,
			&req.MenteeName,
			&req.MenteeEmail,
			&req.Availability,
			&req.Message,
			&req.CreatedAt,
		); err != nil {
			duration := metrics.MeasureDuration(start)
			recordMetrics(operation, "error", duration)
			return nil, fmt.Errorf("failed to scan connection request: %w", err)
		}
		requests = append(requests, &req)
	}

	duration := metrics.MeasureDuration(start)
	if err := rows.Err(); err != nil {
		recordMetrics(operation, "error", duration)
		return nil, fmt.Errorf("failed to iterate connection requests: %w", err)
	}

	recordMetrics(operation, "success", duration)
	return requests, nil
}

// Ensure ConnectionRequestRepository implements ConnectionRequestStore
var _ ConnectionRequestStore = (*ConnectionRequestRepository)(nil)
