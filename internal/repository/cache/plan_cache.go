// Package cache puts an in-process LRU in front of plan lookups.
package cache

import (
	"aifitness/planner/internal/domain"
	"aifitness/planner/internal/repository"
	"context"
	"errors"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const defaultSize = 256

// PlanRepository caches plans by ID and the latest plan per user. Writes go
// through this decorator, so it stays consistent as long as nothing else
// writes to the underlying store.
//
// Every write bumps gen. A lookup that missed only fills the cache if gen is
// unchanged since it started reading the store, so a read that raced a write
// cannot put the pre-write value back.
type PlanRepository struct {
	next   repository.PlanRepository
	byID   *lru.Cache[primitive.ObjectID, domain.PlanRecord]
	latest *lru.Cache[primitive.ObjectID, primitive.ObjectID] // userID -> planID

	mu  sync.Mutex
	gen uint64
}

var _ repository.PlanRepository = (*PlanRepository)(nil)

func NewPlanRepository(next repository.PlanRepository, size int) (*PlanRepository, error) {
	if size <= 0 {
		size = defaultSize
	}
	byID, err := lru.New[primitive.ObjectID, domain.PlanRecord](size)
	if err != nil {
		return nil, err
	}
	latest, err := lru.New[primitive.ObjectID, primitive.ObjectID](size)
	if err != nil {
		return nil, err
	}
	return &PlanRepository{next: next, byID: byID, latest: latest}, nil
}

func (c *PlanRepository) generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen
}

// fill runs add only if no write happened since gen was read.
func (c *PlanRepository) fill(gen uint64, add func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen == gen {
		add()
	}
}

func (c *PlanRepository) Create(ctx context.Context, plan *domain.PlanRecord) (primitive.ObjectID, error) {
	id, err := c.next.Create(ctx, plan)
	if err != nil {
		return id, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.byID.Add(id, *plan)

	// Only a known latest can be compared against; otherwise the next lookup decides.
	if latestID, ok := c.latest.Peek(plan.UserID); ok {
		current, ok := c.byID.Peek(latestID)
		switch {
		case !ok:
			c.latest.Remove(plan.UserID)
		case !plan.CreatedAt.Before(current.CreatedAt):
			c.latest.Add(plan.UserID, id)
		}
	}
	return id, nil
}

func (c *PlanRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.PlanRecord, error) {
	if plan, ok := c.byID.Get(id); ok {
		return &plan, nil
	}
	gen := c.generation()
	plan, err := c.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.fill(gen, func() { c.byID.Add(id, *plan) })
	return plan, nil
}

func (c *PlanRepository) GetLatestByUser(ctx context.Context, userID primitive.ObjectID) (*domain.PlanRecord, error) {
	if planID, ok := c.latest.Get(userID); ok {
		if plan, ok := c.byID.Get(planID); ok {
			return &plan, nil
		}
	}
	gen := c.generation()
	plan, err := c.next.GetLatestByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	c.fill(gen, func() {
		c.byID.Add(plan.ID, *plan)
		c.latest.Add(userID, plan.ID)
	})
	return plan, nil
}

// ListByUser is not cached; history is read rarely compared to the latest plan.
func (c *PlanRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.PlanRecord, error) {
	return c.next.ListByUser(ctx, userID)
}

func (c *PlanRepository) Delete(ctx context.Context, id, userID primitive.ObjectID) error {
	err := c.next.Delete(ctx, id, userID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.byID.Remove(id)
	c.latest.Remove(userID)
	return err
}
