// Package memory keeps users, plans and chats in process memory. Nothing
// survives a restart; it backs demos and tests.
package memory

import (
	"aifitness/planner/internal/domain"
	"aifitness/planner/internal/repository"
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRepository struct {
	mu      sync.RWMutex
	byID    map[primitive.ObjectID]domain.User
	byEmail map[string]primitive.ObjectID
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:    make(map[primitive.ObjectID]domain.User),
		byEmail: make(map[string]primitive.ObjectID),
	}
}

var _ repository.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	if user.Email == "" || user.PasswordHash == "" {
		return primitive.NilObjectID, errors.New("user email and password hash are required")
	}
	email := strings.ToLower(user.Email)

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[email]; ok {
		return primitive.NilObjectID, repository.ErrDuplicate
	}

	user.ID = primitive.NewObjectID()
	user.Email = email
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	r.byID[user.ID] = *user
	r.byEmail[email] = user.ID
	return user.ID, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	user := r.byID[id]
	return &user, nil
}

func (r *UserRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}

type PlanRepository struct {
	mu    sync.RWMutex
	plans map[primitive.ObjectID]domain.PlanRecord
}

func NewPlanRepository() *PlanRepository {
	return &PlanRepository{plans: make(map[primitive.ObjectID]domain.PlanRecord)}
}

var _ repository.PlanRepository = (*PlanRepository)(nil)

func (r *PlanRepository) Create(_ context.Context, plan *domain.PlanRecord) (primitive.ObjectID, error) {
	if plan.UserID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("plan requires userId")
	}
	plan.ID = primitive.NewObjectID()
	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = time.Now().UTC()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.plans[plan.ID] = *plan
	return plan.ID, nil
}

func (r *PlanRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.PlanRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	plan, ok := r.plans[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &plan, nil
}

func (r *PlanRepository) GetLatestByUser(ctx context.Context, userID primitive.ObjectID) (*domain.PlanRecord, error) {
	plans, _ := r.ListByUser(ctx, userID)
	if len(plans) == 0 {
		return nil, repository.ErrNotFound
	}
	return &plans[0], nil
}

func (r *PlanRepository) ListByUser(_ context.Context, userID primitive.ObjectID) ([]domain.PlanRecord, error) {
	r.mu.RLock()
	plans := []domain.PlanRecord{}
	for _, p := range r.plans {
		if p.UserID == userID {
			plans = append(plans, p)
		}
	}
	r.mu.RUnlock()

	// Newest first; ObjectIDs break ties between plans created in the same instant.
	sort.Slice(plans, func(i, j int) bool {
		if !plans[i].CreatedAt.Equal(plans[j].CreatedAt) {
			return plans[i].CreatedAt.After(plans[j].CreatedAt)
		}
		return plans[i].ID.Hex() > plans[j].ID.Hex()
	})
	return plans, nil
}

func (r *PlanRepository) Delete(_ context.Context, id, userID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	plan, ok := r.plans[id]
	if !ok || plan.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.plans, id)
	return nil
}

type ChatRepository struct {
	mu    sync.RWMutex
	chats []domain.ChatRecord
}

func NewChatRepository() *ChatRepository {
	return &ChatRepository{}
}

var _ repository.ChatRepository = (*ChatRepository)(nil)

func (r *ChatRepository) Create(_ context.Context, chat *domain.ChatRecord) (primitive.ObjectID, error) {
	if chat.PlanID == primitive.NilObjectID || chat.UserID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("chat requires planId and userId")
	}
	chat.ID = primitive.NewObjectID()
	chat.CreatedAt = time.Now().UTC()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.chats = append(r.chats, *chat)
	return chat.ID, nil
}

// ListByPlan returns chats in insertion order.
func (r *ChatRepository) ListByPlan(_ context.Context, planID primitive.ObjectID) ([]domain.ChatRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	chats := []domain.ChatRecord{}
	for _, c := range r.chats {
		if c.PlanID == planID {
			chats = append(chats, c)
		}
	}
	return chats, nil
}

func (r *ChatRepository) DeleteByPlan(_ context.Context, planID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.chats[:0]
	for _, c := range r.chats {
		if c.PlanID != planID {
			kept = append(kept, c)
		}
	}
	r.chats = kept
	return nil
}
