package repository

import (
	"context"
	"time"

	"github.com/anya-ship-it/cybermentor-platform/internal/models"
)

// MentorStore defines mentor profile persistence
type MentorStore interface {
	Create(ctx context.Context, mentor *models.Mentor) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Mentor, error)
	ListByStatus(ctx context.Context, status models.MentorStatus) ([]*models.Mentor, error)
	Approve(ctx context.Context, id int64) error
	DeletePending(ctx context.Context, id int64) error
}

// ConnectionRequestStore defines connection request persistence
type ConnectionRequestStore interface {
	Create(ctx context.Context, req *models.ConnectionRequest) (int64, error)
	CountSince(ctx context.Context, menteeEmail string, since time.Time) (int, error)
	List(ctx context.Context, limit int) ([]*models.ConnectionRequest, error)
}

// SubscriberStore defines newsletter-list persistence
type SubscriberStore interface {
	Upsert(ctx context.Context, name, email, country string) error
	List(ctx context.Context) ([]*models.Subscriber, error)
	Delete(ctx context.Context, id int64) error
}

// BlocklistStore defines blocklist persistence
type BlocklistStore interface {
	IsBlocked(ctx context.Context, email string) (bool, error)
	Block(ctx context.Context, email, reason string) (*models.BlockedEmail, error)
	Unblock(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*models.BlockedEmail, error)
}

// ModeratorStore defines moderator lookups for the admin login flow
type ModeratorStore interface {
	GetByEmail(ctx context.Context, email string) (*models.Moderator, error)
	GetByLoginToken(ctx context.Context, token string) (*models.Moderator, time.Time, error)
	SetLoginToken(ctx context.Context, moderatorID int64, token string, exp time.Time) error
	ClearLoginToken(ctx context.Context, moderatorID int64) error
}
