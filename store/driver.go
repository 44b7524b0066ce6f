package store

import (
	"context"
	"database/sql"
)

// Driver is an interface for store driver.
// It contains all methods that store database driver should implement.
type Driver interface {
	GetDB() *sql.DB
	Close() error

	IsInitialized(ctx context.Context) (bool, error)
	Migrate(ctx context.Context) error

	// Member model related methods.
	CreateMember(ctx context.Context, create *Member) (*Member, error)
	ListMembers(ctx context.Context, find *FindMember) ([]*Member, error)
	UpdateMember(ctx context.Context, update *UpdateMember) error
	DeleteMember(ctx context.Context, delete *DeleteMember) error

	// Card model related methods.
	CreateCard(ctx context.Context, create *Card) (*Card, error)
	ListCards(ctx context.Context, find *FindCard) ([]*Card, error)
	UpdateCard(ctx context.Context, update *UpdateCard) error
	DeleteCard(ctx context.Context, delete *DeleteCard) error

	// ReviewRecord model related methods.
	// UpsertReviewRecord must perform the version-checked write atomically
	// and return ErrVersionConflict on an optimistic-lock mismatch.
	UpsertReviewRecord(ctx context.Context, upsert *UpsertReviewRecord) (*ReviewRecord, error)
	ListReviewRecords(ctx context.Context, find *FindReviewRecord) ([]*ReviewRecord, error)
	DeleteReviewRecord(ctx context.Context, delete *DeleteReviewRecord) error

	// ReviewActivity model related methods.
	CreateReviewActivity(ctx context.Context, create *ReviewActivity) (*ReviewActivity, error)
	ListReviewActivities(ctx context.Context, find *FindReviewActivity) ([]*ReviewActivity, error)
	CountReviewActivities(ctx context.Context, find *FindReviewActivity) (int32, error)
}
