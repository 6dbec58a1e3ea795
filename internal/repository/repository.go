package repository

import (
	"aifitness/planner/internal/domain"
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for repository layer
var (
	ErrNotFound  = RepositoryError("not found")
	ErrDuplicate = RepositoryError("duplicate key")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository stores accounts. Create assigns ID and timestamps and returns
// ErrDuplicate when the email is taken.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

// PlanRepository stores generated plans per user. The latest plan of a user is
// the one with the newest CreatedAt.
type PlanRepository interface {
	Create(ctx context.Context, plan *domain.PlanRecord) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.PlanRecord, error)
	GetLatestByUser(ctx context.Context, userID primitive.ObjectID) (*domain.PlanRecord, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.PlanRecord, error) // newest first
	Delete(ctx context.Context, id, userID primitive.ObjectID) error
}

// ChatRepository stores follow-up questions asked about a plan.
type ChatRepository interface {
	Create(ctx context.Context, chat *domain.ChatRecord) (primitive.ObjectID, error)
	ListByPlan(ctx context.Context, planID primitive.ObjectID) ([]domain.ChatRecord, error) // oldest first
	DeleteByPlan(ctx context.Context, planID primitive.ObjectID) error
}
