package cache

import (
	"aifitness/planner/internal/domain"
	"aifitness/planner/internal/repository"
	"aifitness/planner/internal/repository/memory"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// countingRepo records how often reads reach the underlying store.
type countingRepo struct {
	*memory.PlanRepository
	getByID   int
	getLatest int
}

func (r *countingRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.PlanRecord, error) {
	r.getByID++
	return r.PlanRepository.GetByID(ctx, id)
}

func (r *countingRepo) GetLatestByUser(ctx context.Context, userID primitive.ObjectID) (*domain.PlanRecord, error) {
	r.getLatest++
	return r.PlanRepository.GetLatestByUser(ctx, userID)
}

func newCached(t *testing.T) (*PlanRepository, *countingRepo) {
	t.Helper()
	inner := &countingRepo{PlanRepository: memory.NewPlanRepository()}
	c, err := NewPlanRepository(inner, 8)
	require.NoError(t, err)
	return c, inner
}

func TestPlanCache_GetByIDHitsStoreOnce(t *testing.T) {
	ctx := context.Background()
	c, inner := newCached(t)

	// Stored behind the cache's back, so the first read has to miss.
	id, err := inner.Create(ctx, &domain.PlanRecord{UserID: primitive.NewObjectID(), Title: "t"})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		plan, err := c.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "t", plan.Title)
	}
	assert.Equal(t, 1, inner.getByID)
}

func TestPlanCache_CreateWritesThrough(t *testing.T) {
	ctx := context.Background()
	c, inner := newCached(t)

	id, err := c.Create(ctx, &domain.PlanRecord{UserID: primitive.NewObjectID(), Title: "fresh"})
	require.NoError(t, err)

	plan, err := c.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "fresh", plan.Title)
	assert.Equal(t, 0, inner.getByID)
}

func TestPlanCache_LatestIsRefreshedAfterCreate(t *testing.T) {
	ctx := context.Background()
	c, inner := newCached(t)
	userID := primitive.NewObjectID()
	base := time.Now().UTC()

	_, err := c.Create(ctx, &domain.PlanRecord{UserID: userID, Title: "old", CreatedAt: base})
	require.NoError(t, err)

	latest, err := c.GetLatestByUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "old", latest.Title)

	_, err = c.GetLatestByUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, inner.getLatest)

	_, err = c.Create(ctx, &domain.PlanRecord{UserID: userID, Title: "new", CreatedAt: base.Add(time.Minute)})
	require.NoError(t, err)

	latest, err = c.GetLatestByUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "new", latest.Title)
	// Written through on Create, so the store is not asked again.
	assert.Equal(t, 1, inner.getLatest)
}

func TestPlanCache_BackdatedCreateKeepsLatest(t *testing.T) {
	ctx := context.Background()
	c, _ := newCached(t)
	userID := primitive.NewObjectID()
	base := time.Now().UTC()

	_, err := c.Create(ctx, &domain.PlanRecord{UserID: userID, Title: "current", CreatedAt: base})
	require.NoError(t, err)
	_, err = c.GetLatestByUser(ctx, userID)
	require.NoError(t, err)

	_, err = c.Create(ctx, &domain.PlanRecord{UserID: userID, Title: "last month", CreatedAt: base.Add(-30 * 24 * time.Hour)})
	require.NoError(t, err)

	latest, err := c.GetLatestByUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "current", latest.Title)
}

// pausingRepo holds the next read after it has hit the store, until release
// is closed, so a write can land in between.
type pausingRepo struct {
	*memory.PlanRepository
	mu      sync.Mutex
	armed   bool
	read    chan struct{}
	release chan struct{}
}

func newPausingRepo() *pausingRepo {
	return &pausingRepo{
		PlanRepository: memory.NewPlanRepository(),
		read:           make(chan struct{}),
		release:        make(chan struct{}),
	}
}

func (r *pausingRepo) arm() {
	r.mu.Lock()
	r.armed = true
	r.mu.Unlock()
}

func (r *pausingRepo) pause() {
	r.mu.Lock()
	armed := r.armed
	r.armed = false
	r.mu.Unlock()
	if armed {
		r.read <- struct{}{}
		<-r.release
	}
}

func (r *pausingRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.PlanRecord, error) {
	plan, err := r.PlanRepository.GetByID(ctx, id)
	r.pause()
	return plan, err
}

func (r *pausingRepo) GetLatestByUser(ctx context.Context, userID primitive.ObjectID) (*domain.PlanRecord, error) {
	plan, err := r.PlanRepository.GetLatestByUser(ctx, userID)
	r.pause()
	return plan, err
}

func TestPlanCache_ReadRacingCreateDoesNotCacheOldLatest(t *testing.T) {
	ctx := context.Background()
	inner := newPausingRepo()
	c, err := NewPlanRepository(inner, 8)
	require.NoError(t, err)
	userID := primitive.NewObjectID()
	base := time.Now().UTC()

	_, err = c.Create(ctx, &domain.PlanRecord{UserID: userID, Title: "old", CreatedAt: base})
	require.NoError(t, err)

	inner.arm()
	done := make(chan string)
	go func() {
		plan, err := c.GetLatestByUser(ctx, userID)
		if err != nil {
			done <- err.Error()
			return
		}
		done <- plan.Title
	}()

	<-inner.read
	_, err = c.Create(ctx, &domain.PlanRecord{UserID: userID, Title: "new", CreatedAt: base.Add(time.Minute)})
	require.NoError(t, err)
	close(inner.release)
	assert.Equal(t, "old", <-done)

	latest, err := c.GetLatestByUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "new", latest.Title)
}

func TestPlanCache_ReadRacingDeleteDoesNotResurrectPlan(t *testing.T) {
	ctx := context.Background()
	inner := newPausingRepo()
	c, err := NewPlanRepository(inner, 8)
	require.NoError(t, err)
	userID := primitive.NewObjectID()

	id, err := inner.Create(ctx, &domain.PlanRecord{UserID: userID, Title: "doomed"})
	require.NoError(t, err)

	inner.arm()
	done := make(chan error)
	go func() {
		_, err := c.GetByID(ctx, id)
		done <- err
	}()

	<-inner.read
	require.NoError(t, c.Delete(ctx, id, userID))
	close(inner.release)
	require.NoError(t, <-done)

	_, err = c.GetByID(ctx, id)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = c.GetLatestByUser(ctx, userID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPlanCache_DeleteEvicts(t *testing.T) {
	ctx := context.Background()
	c, _ := newCached(t)
	userID := primitive.NewObjectID()

	id, err := c.Create(ctx, &domain.PlanRecord{UserID: userID})
	require.NoError(t, err)
	_, err = c.GetLatestByUser(ctx, userID)
	require.NoError(t, err)

	require.NoError(t, c.Delete(ctx, id, userID))

	_, err = c.GetByID(ctx, id)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = c.GetLatestByUser(ctx, userID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
