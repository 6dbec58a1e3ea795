package memory

import (
	"aifitness/planner/internal/domain"
	"aifitness/planner/internal/repository"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	id, err := repo.Create(ctx, &domain.User{Name: "Jane", Email: "Jane@Example.com", PasswordHash: "h"})
	require.NoError(t, err)

	byEmail, err := repo.GetByEmail(ctx, "jane@example.COM")
	require.NoError(t, err)
	assert.Equal(t, id, byEmail.ID)

	byID, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", byID.Email)

	_, err = repo.Create(ctx, &domain.User{Email: "JANE@example.com", PasswordHash: "h2"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	_, err = repo.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserRepository_ConcurrentRegistrationOfSameEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.Create(ctx, &domain.User{Email: "race@example.com", PasswordHash: "h"}); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
}

func TestPlanRepository_LatestAndHistory(t *testing.T) {
	ctx := context.Background()
	repo := NewPlanRepository()
	userID := primitive.NewObjectID()
	otherUser := primitive.NewObjectID()
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	_, err := repo.GetLatestByUser(ctx, userID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	for i, title := range []string{"first", "second", "third"} {
		_, err := repo.Create(ctx, &domain.PlanRecord{UserID: userID, Title: title, CreatedAt: base.Add(time.Duration(i) * time.Hour)})
		require.NoError(t, err)
	}
	_, err = repo.Create(ctx, &domain.PlanRecord{UserID: otherUser, Title: "someone else", CreatedAt: base.Add(24 * time.Hour)})
	require.NoError(t, err)

	latest, err := repo.GetLatestByUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "third", latest.Title)

	history, err := repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "third", history[0].Title)
	assert.Equal(t, "first", history[2].Title)
}

func TestPlanRepository_DeleteChecksOwner(t *testing.T) {
	ctx := context.Background()
	repo := NewPlanRepository()
	owner := primitive.NewObjectID()

	id, err := repo.Create(ctx, &domain.PlanRecord{UserID: owner})
	require.NoError(t, err)

	assert.ErrorIs(t, repo.Delete(ctx, id, primitive.NewObjectID()), repository.ErrNotFound)
	require.NoError(t, repo.Delete(ctx, id, owner))

	_, err = repo.GetByID(ctx, id)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestChatRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewChatRepository()
	userID := primitive.NewObjectID()
	planA := primitive.NewObjectID()
	planB := primitive.NewObjectID()

	for _, q := range []string{"one", "two"} {
		_, err := repo.Create(ctx, &domain.ChatRecord{PlanID: planA, UserID: userID, ChatTurn: domain.ChatTurn{Question: q}})
		require.NoError(t, err)
	}
	_, err := repo.Create(ctx, &domain.ChatRecord{PlanID: planB, UserID: userID, ChatTurn: domain.ChatTurn{Question: "other"}})
	require.NoError(t, err)

	chats, err := repo.ListByPlan(ctx, planA)
	require.NoError(t, err)
	require.Len(t, chats, 2)
	assert.Equal(t, "one", chats[0].Question)
	assert.Equal(t, "two", chats[1].Question)

	require.NoError(t, repo.DeleteByPlan(ctx, planA))
	chats, err = repo.ListByPlan(ctx, planA)
	require.NoError(t, err)
	assert.Empty(t, chats)

	chats, err = repo.ListByPlan(ctx, planB)
	require.NoError(t, err)
	assert.Len(t, chats, 1)
}
