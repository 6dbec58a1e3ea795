package service

import (
	"aifitness/planner/internal/domain"
	"aifitness/planner/internal/planner"
	"aifitness/planner/internal/repository"
	"aifitness/planner/internal/textgen"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrQuestionRequired = errors.New("question is required")
	ErrNoPlanContext    = errors.New("no plan to answer questions about")
	ErrChatFailed       = errors.New("failed to process chat request")
)

// AskRequest carries a question and where to find the plan it is about.
// An inline Plan wins over PlanID; with neither, the user's latest plan is used.
type AskRequest struct {
	Question string
	PlanID   *primitive.ObjectID
	Plan     *domain.GeneratedPlan
}

type ChatService interface {
	Ask(ctx context.Context, userID primitive.ObjectID, req AskRequest) (*domain.ChatTurn, error)
	History(ctx context.Context, userID, planID primitive.ObjectID) ([]domain.ChatRecord, error)
}

type chatService struct {
	plans     PlanService
	chatRepo  repository.ChatRepository
	generator textgen.Generator
}

func NewChatService(plans PlanService, chatRepo repository.ChatRepository, generator textgen.Generator) ChatService {
	return &chatService{
		plans:     plans,
		chatRepo:  chatRepo,
		generator: generator,
	}
}

func (s *chatService) Ask(ctx context.Context, userID primitive.ObjectID, req AskRequest) (*domain.ChatTurn, error) {
	if strings.TrimSpace(req.Question) == "" {
		return nil, ErrQuestionRequired
	}

	plan, stored, err := s.resolvePlan(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	answer, err := s.generator.Generate(ctx, planner.BuildChatPrompt(req.Question, plan), planner.ChatMaxTokens)
	if err != nil {
		log.Error().Err(err).Str("userId", userID.Hex()).Msg("Chat generation failed")
		return nil, fmt.Errorf("%w: %w", ErrChatFailed, err)
	}
	turn := &domain.ChatTurn{Question: req.Question, Answer: answer}

	// Questions about an inline plan have nothing to be filed under.
	if stored != nil {
		record := &domain.ChatRecord{PlanID: stored.ID, UserID: userID, ChatTurn: *turn}
		if _, err := s.chatRepo.Create(ctx, record); err != nil {
			log.Warn().Err(err).Str("planId", stored.ID.Hex()).Msg("Failed to save chat turn")
		}
	}
	return turn, nil
}

func (s *chatService) resolvePlan(ctx context.Context, userID primitive.ObjectID, req AskRequest) (domain.GeneratedPlan, *domain.PlanRecord, error) {
	if req.Plan != nil {
		return *req.Plan, nil, nil
	}

	var (
		record *domain.PlanRecord
		err    error
	)
	if req.PlanID != nil {
		record, err = s.plans.Get(ctx, userID, *req.PlanID)
	} else {
		record, err = s.plans.Latest(ctx, userID)
	}
	if err != nil {
		if errors.Is(err, ErrPlanNotFound) {
			return domain.GeneratedPlan{}, nil, ErrNoPlanContext
		}
		return domain.GeneratedPlan{}, nil, err
	}
	return record.Plan, record, nil
}

// History returns the conversation about a plan owned by userID.
func (s *chatService) History(ctx context.Context, userID, planID primitive.ObjectID) ([]domain.ChatRecord, error) {
	if _, err := s.plans.Get(ctx, userID, planID); err != nil {
		return nil, err
	}
	return s.chatRepo.ListByPlan(ctx, planID)
}
