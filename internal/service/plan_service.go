package service

import (
	"aifitness/planner/internal/domain"
	"aifitness/planner/internal/planner"
	"aifitness/planner/internal/repository"
	"aifitness/planner/internal/storage"
	"aifitness/planner/internal/textgen"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrPlanNotFound      = errors.New("plan not found")
	ErrGenerationFailed  = errors.New("failed to generate plan")
	ErrExportUnavailable = errors.New("plan export is not configured")
	ErrExportFailed      = errors.New("failed to export plan")
)

type PlanService interface {
	Generate(ctx context.Context, userID primitive.ObjectID, input domain.PlanInput) (*domain.PlanRecord, error)
	Latest(ctx context.Context, userID primitive.ObjectID) (*domain.PlanRecord, error)
	Get(ctx context.Context, userID, planID primitive.ObjectID) (*domain.PlanRecord, error)
	History(ctx context.Context, userID primitive.ObjectID) ([]domain.PlanRecord, error)
	Delete(ctx context.Context, userID, planID primitive.ObjectID) error
	Export(ctx context.Context, userID, planID primitive.ObjectID) (string, error)
}

type planService struct {
	planRepo    repository.PlanRepository
	chatRepo    repository.ChatRepository
	generator   textgen.Generator
	fileStorage storage.FileStorage // nil disables export
}

// NewPlanService creates a plan service. fileStorage may be nil.
func NewPlanService(
	planRepo repository.PlanRepository,
	chatRepo repository.ChatRepository,
	generator textgen.Generator,
	fileStorage storage.FileStorage,
) PlanService {
	return &planService{
		planRepo:    planRepo,
		chatRepo:    chatRepo,
		generator:   generator,
		fileStorage: fileStorage,
	}
}

// Generate asks the model for a plan for input and stores it as the user's
// latest plan. input must already be validated.
func (s *planService) Generate(ctx context.Context, userID primitive.ObjectID, input domain.PlanInput) (*domain.PlanRecord, error) {
	prompt := planner.BuildPlanPrompt(input)

	raw, err := s.generator.Generate(ctx, prompt, planner.PlanMaxTokens)
	if err != nil {
		log.Error().Err(err).Str("userId", userID.Hex()).Msg("Plan generation failed")
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	record := &domain.PlanRecord{
		UserID: userID,
		Title:  domain.PlanTitle(input),
		Input:  input,
		Plan:   planner.ParsePlanResponse(raw),
	}
	if record.Plan.DietPlan == planner.DietFallback || record.Plan.WorkoutPlan == planner.WorkoutFallback {
		log.Warn().Str("userId", userID.Hex()).Msg("Model response was missing a plan section")
	}

	if _, err := s.planRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("saving plan: %w", err)
	}
	log.Info().Str("userId", userID.Hex()).Str("planId", record.ID.Hex()).Msg("Plan generated")
	return record, nil
}

func (s *planService) Latest(ctx context.Context, userID primitive.ObjectID) (*domain.PlanRecord, error) {
	plan, err := s.planRepo.GetLatestByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return plan, nil
}

// Get returns a plan owned by userID. Plans of other users are reported as
// not found.
func (s *planService) Get(ctx context.Context, userID, planID primitive.ObjectID) (*domain.PlanRecord, error) {
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	if plan.UserID != userID {
		return nil, ErrPlanNotFound
	}
	return plan, nil
}

func (s *planService) History(ctx context.Context, userID primitive.ObjectID) ([]domain.PlanRecord, error) {
	return s.planRepo.ListByUser(ctx, userID)
}

// Delete removes a plan and the conversation about it.
func (s *planService) Delete(ctx context.Context, userID, planID primitive.ObjectID) error {
	if err := s.planRepo.Delete(ctx, planID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPlanNotFound
		}
		return err
	}
	if err := s.chatRepo.DeleteByPlan(ctx, planID); err != nil {
		log.Warn().Err(err).Str("planId", planID.Hex()).Msg("Failed to delete chats of deleted plan")
	}
	return nil
}

// Export uploads the plan as a markdown document and returns a temporary
// download URL for it.
func (s *planService) Export(ctx context.Context, userID, planID primitive.ObjectID) (string, error) {
	if s.fileStorage == nil {
		return "", ErrExportUnavailable
	}
	plan, err := s.Get(ctx, userID, planID)
	if err != nil {
		return "", err
	}

	objectKey := path.Join("plans", userID.Hex(), uuid.NewString()+".md")
	if err := s.fileStorage.PutObject(ctx, objectKey, "text/markdown; charset=utf-8", strings.NewReader(RenderPlanMarkdown(plan))); err != nil {
		return "", fmt.Errorf("%w: %w", ErrExportFailed, err)
	}
	url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, objectKey, storage.DefaultPresignedURLExpiry)
	if err != nil {
		if delErr := s.fileStorage.DeleteObject(ctx, objectKey); delErr != nil {
			log.Warn().Err(delErr).Str("key", objectKey).Msg("Failed to remove unexported plan document")
		}
		return "", fmt.Errorf("%w: %w", ErrExportFailed, err)
	}
	return url, nil
}

// RenderPlanMarkdown lays out a stored plan as a standalone markdown document.
func RenderPlanMarkdown(plan *domain.PlanRecord) string {
	in := plan.Input
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", plan.Title)
	fmt.Fprintf(&b, "_Generated %s_\n\n", plan.CreatedAt.Format("January 2, 2006"))
	b.WriteString("## Profile\n\n")
	fmt.Fprintf(&b, "- Workout type: %s\n", in.WorkoutType)
	fmt.Fprintf(&b, "- Diet type: %s\n", in.DietType)
	fmt.Fprintf(&b, "- Weight: %g kg -> %g kg\n", in.CurrentWeight, in.TargetWeight)
	fmt.Fprintf(&b, "- Age: %d\n", in.Age)
	fmt.Fprintf(&b, "- Gender: %s\n", in.Gender)
	fmt.Fprintf(&b, "- Duration: %d weeks\n\n", in.NumberOfWeeks)
	b.WriteString("## Diet Plan\n\n")
	b.WriteString(plan.Plan.DietPlan)
	b.WriteString("\n\n## Workout Plan\n\n")
	b.WriteString(plan.Plan.WorkoutPlan)
	b.WriteString("\n")
	return b.String()
}
