package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anya-ship-it/cybermentor-platform/internal/models"
	"github.com/anya-ship-it/cybermentor-platform/pkg/logger"
	"github.com/anya-ship-it/cybermentor-platform/pkg/metrics"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var ErrMentorNotFound = errors.New("mentor not found")

// MentorRepository handles mentor profile data access
type MentorRepository struct {
	pool *pgxpool.Pool
}

// NewMentorRepository creates a new mentor repository
func NewMentorRepository(pool *pgxpool.Pool) *MentorRepository {
	return &MentorRepository{pool: pool}
}

const mentorColumns = `
	id, name, email, profile_url, country, languages, skills,
	availability, COALESCE(certifications, ''), experience, status,
	created_at, updated_at
`

func scanMentor(row pgx.Row) (*models.Mentor, error) {
	var m models.Mentor
	var status string
	if err := row.Scan(
		&m.ID,
		&m.Name,
		&m.Email,
		&m.ProfileURL,
		&m.Country,
		&m.Languages,
		&m.Skills,
		&m.Availability,
		&m.Certifications,
		&m.Experience,
		&status,
		&m.CreatedAt,
		&m.UpdatedAt,
	); err != nil {
		return nil, err
	}
	m.Status = models.MentorStatus(status)
	return &m, nil
}

// Create inserts a new mentor profile and returns its ID
func (r *MentorRepository) Create(ctx context.Context, mentor *models.Mentor) (int64, error) {
	start := time.Now()
	operation := "createMentor"

	query := `
		INSERT INTO mentors (name, email, profile_url, country, languages, skills,
		                     availability, certifications, experience, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9, $10)
		RETURNING id
	`

	var id int64
	err := r.pool.QueryRow(ctx, query,
		mentor.Name,
		mentor.Email,
		mentor.ProfileURL,
		mentor.Country,
		mentor.Languages,
		mentor.Skills,
		mentor.Availability,
		mentor.Certifications,
		mentor.Experience,
		string(mentor.Status),
	).Scan(&id)

	duration := metrics.MeasureDuration(start)

	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return 0, fmt.Errorf("failed to create mentor: %w", err)
	}

	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration, zap.Int64("mentor_id", id))
	return id, nil
}

// GetByID fetches a single mentor by ID regardless of status
func (r *MentorRepository) GetByID(ctx context.Context, id int64) (*models.Mentor, error) {
	start := time.Now()
	operation := "getMentorByID"

	query := `SELECT ` + mentorColumns + ` FROM mentors WHERE id = $1`

	mentor, err := scanMentor(r.pool.QueryRow(ctx, query, id))

	duration := metrics.MeasureDuration(start)

	if errors.Is(err, pgx.ErrNoRows) {
		recordMetrics(operation, "not_found", duration)
		return nil, ErrMentorNotFound
	}
	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to query mentor: %w", err)
	}

	recordMetrics(operation, "success", duration)
	return mentor, nil
}

// ListByStatus fetches mentors in a given moderation state, newest first
func (r *MentorRepository) ListByStatus(ctx context.Context, status models.MentorStatus) ([]*models.Mentor, error) {
	start := time.Now()
	operation := "listMentorsByStatus"

	query := `SELECT ` + mentorColumns + ` FROM mentors WHERE status = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, string(status))
	if err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to query mentors: %w", err)
	}
	defer rows.Close()

	mentors := []*models.Mentor{}
	for rows.Next() {
		mentor, err := scanMentor(rows)
		if err != nil {
			duration := metrics.MeasureDuration(start)
			recordMetrics(operation, "error", duration)
			return nil, fmt.Errorf("failed to scan mentor: %w", err)
		}
		mentors = append(mentors, mentor)
	}

	duration := metrics.MeasureDuration(start)
	if err := rows.Err(); err != nil {
		recordMetrics(operation, "error", duration)
		return nil, fmt.Errorf("failed to iterate mentors: %w", err)
	}

	recordMetrics(operation, "success", duration)
	return mentors, nil
}

// Approve transitions a pending mentor to approved. The status guard makes
// the transition idempotent-safe: approving twice affects zero rows.
func (r *MentorRepository) Approve(ctx context.Context, id int64) error {
	start := time.Now()
	operation := "approveMentor"

	query := `
		UPDATE mentors
		SET status = 'approved', updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`

	result, err := r.pool.Exec(ctx, query, id)

	duration := metrics.MeasureDuration(start)

	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return fmt.Errorf("failed to approve mentor: %w", err)
	}

	if result.RowsAffected() == 0 {
		recordMetrics(operation, "not_found", duration)
		return ErrMentorNotFound
	}

	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration, zap.Int64("mentor_id", id))
	return nil
}

// DeletePending removes a pending mentor. Approved mentors are never deleted
// through this path.
func (r *MentorRepository) DeletePending(ctx context.Context, id int64) error {
	start := time.Now()
	operation := "deletePendingMentor"

	query := `DELETE FROM mentors WHERE id = $1 AND status = 'pending'`

	result, err := r.pool.Exec(ctx, query, id)

	duration := metrics.MeasureDuration(start)

	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return fmt.Errorf("failed to delete mentor: %w", err)
	}

	if result.RowsAffected() == 0 {
		recordMetrics(operation, "not_found", duration)
		return ErrMentorNotFound
	}

	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration, zap.Int64("mentor_id", id))
	return nil
}

// Ensure MentorRepository implements MentorStore
var _ MentorStore = (*MentorRepository)(nil)
