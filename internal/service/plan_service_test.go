package service

import (
	"aifitness/planner/internal/domain"
	"aifitness/planner/internal/planner"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPlanService_Generate(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos()
	gen := &fakeGenerator{text: "Intro\nDIET PLAN\n| Monday | Eggs |\nWORKOUT PLAN\n| Monday | Run |"}
	svc := NewPlanService(repos.plans, repos.chats, gen, nil)
	userID := primitive.NewObjectID()

	record, err := svc.Generate(ctx, userID, sampleInput())
	require.NoError(t, err)

	assert.Equal(t, "| Monday | Eggs |", record.Plan.DietPlan)
	assert.Equal(t, "| Monday | Run |", record.Plan.WorkoutPlan)
	assert.Equal(t, "4 week cardio plan", record.Title)
	assert.Equal(t, []int{planner.PlanMaxTokens}, gen.maxTokens)
	assert.Equal(t, planner.BuildPlanPrompt(sampleInput()), gen.prompts[0])

	latest, err := svc.Latest(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, record.ID, latest.ID)
}

func TestPlanService_GenerateKeepsFallbacks(t *testing.T) {
	repos := newTestRepos()
	svc := NewPlanService(repos.plans, repos.chats, &fakeGenerator{text: "Sorry, I cannot help with that."}, nil)

	record, err := svc.Generate(context.Background(), primitive.NewObjectID(), sampleInput())
	require.NoError(t, err)

	assert.Equal(t, planner.DietFallback, record.Plan.DietPlan)
	assert.Equal(t, planner.WorkoutFallback, record.Plan.WorkoutPlan)
}

func TestPlanService_GenerateFailure(t *testing.T) {
	repos := newTestRepos()
	svc := NewPlanService(repos.plans, repos.chats, &fakeGenerator{err: errors.New("rate limited")}, nil)
	userID := primitive.NewObjectID()

	_, err := svc.Generate(context.Background(), userID, sampleInput())
	assert.ErrorIs(t, err, ErrGenerationFailed)

	_, err = svc.Latest(context.Background(), userID)
	assert.ErrorIs(t, err, ErrPlanNotFound)
}

func TestPlanService_GetChecksOwnership(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos()
	svc := NewPlanService(repos.plans, repos.chats, &fakeGenerator{text: "DIET PLAN a WORKOUT PLAN b"}, nil)
	owner := primitive.NewObjectID()

	record, err := svc.Generate(ctx, owner, sampleInput())
	require.NoError(t, err)

	_, err = svc.Get(ctx, primitive.NewObjectID(), record.ID)
	assert.ErrorIs(t, err, ErrPlanNotFound)

	got, err := svc.Get(ctx, owner, record.ID)
	require.NoError(t, err)
	assert.Equal(t, "a", got.Plan.DietPlan)
}

func TestPlanService_DeleteRemovesChats(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos()
	svc := NewPlanService(repos.plans, repos.chats, &fakeGenerator{text: "DIET PLAN a WORKOUT PLAN b"}, nil)
	owner := primitive.NewObjectID()

	record, err := svc.Generate(ctx, owner, sampleInput())
	require.NoError(t, err)
	_, err = repos.chats.Create(ctx, &domain.ChatRecord{PlanID: record.ID, UserID: owner})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, primitive.NewObjectID(), record.ID), ErrPlanNotFound)
	require.NoError(t, svc.Delete(ctx, owner, record.ID))

	chats, err := repos.chats.ListByPlan(ctx, record.ID)
	require.NoError(t, err)
	assert.Empty(t, chats)

	history, err := svc.History(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestPlanService_Export(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos()
	store := newFakeStorage()
	svc := NewPlanService(repos.plans, repos.chats, &fakeGenerator{text: "DIET PLAN\neat\nWORKOUT PLAN\nlift"}, store)
	owner := primitive.NewObjectID()

	record, err := svc.Generate(ctx, owner, sampleInput())
	require.NoError(t, err)

	url, err := svc.Export(ctx, owner, record.ID)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "https://storage.test/plans/"+owner.Hex()+"/"))

	require.Len(t, store.objects, 1)
	for key, body := range store.objects {
		assert.True(t, strings.HasSuffix(key, ".md"))
		assert.Contains(t, body, "# 4 week cardio plan")
		assert.Contains(t, body, "## Diet Plan\n\neat")
		assert.Contains(t, body, "## Workout Plan\n\nlift")
	}

	_, err = svc.Export(ctx, primitive.NewObjectID(), record.ID)
	assert.ErrorIs(t, err, ErrPlanNotFound)
}

func TestPlanService_ExportFailures(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos()
	owner := primitive.NewObjectID()

	noStorage := NewPlanService(repos.plans, repos.chats, &fakeGenerator{text: "x"}, nil)
	record, err := noStorage.Generate(ctx, owner, sampleInput())
	require.NoError(t, err)
	_, err = noStorage.Export(ctx, owner, record.ID)
	assert.ErrorIs(t, err, ErrExportUnavailable)

	broken := newFakeStorage()
	broken.putErr = errors.New("bucket missing")
	svc := NewPlanService(repos.plans, repos.chats, &fakeGenerator{text: "x"}, broken)
	_, err = svc.Export(ctx, owner, record.ID)
	assert.ErrorIs(t, err, ErrExportFailed)

	unsigned := newFakeStorage()
	unsigned.presignErr = errors.New("signing failed")
	svc = NewPlanService(repos.plans, repos.chats, &fakeGenerator{text: "x"}, unsigned)
	_, err = svc.Export(ctx, owner, record.ID)
	assert.ErrorIs(t, err, ErrExportFailed)
	assert.Empty(t, unsigned.objects)
}

func TestRenderPlanMarkdown(t *testing.T) {
	doc := RenderPlanMarkdown(&domain.PlanRecord{
		Title:     "6 week yoga plan",
		Input:     domain.PlanInput{WorkoutType: domain.WorkoutYoga, CurrentWeight: 70.5, TargetWeight: 65, NumberOfWeeks: 6},
		Plan:      domain.GeneratedPlan{DietPlan: "d", WorkoutPlan: "w"},
		CreatedAt: time.Date(2025, 5, 4, 0, 0, 0, 0, time.UTC),
	})

	assert.Contains(t, doc, "# 6 week yoga plan\n")
	assert.Contains(t, doc, "_Generated May 4, 2025_")
	assert.Contains(t, doc, "- Weight: 70.5 kg -> 65 kg")
	assert.Contains(t, doc, "- Duration: 6 weeks")
}
