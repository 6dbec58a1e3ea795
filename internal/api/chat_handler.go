package api

import (
	"aifitness/planner/internal/domain"
	"aifitness/planner/internal/service"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ChatHandler struct {
	chatService service.ChatService
}

func NewChatHandler(chatService service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// ChatRequest asks about a stored plan (planId), a plan the client holds
// (plan), or, with neither, the caller's latest plan.
type ChatRequest struct {
	Question string                `json:"question"`
	PlanID   string                `json:"planId"`
	Plan     *domain.GeneratedPlan `json:"plan"`
}

type ChatResponse struct {
	Response string `json:"response"`
}

type ChatTurnResponse struct {
	ID        string    `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"createdAt"`
}

// Ask godoc
// @Summary Ask a question about a plan
// @Tags Chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param chat body ChatRequest true "Question and plan reference"
// @Success 200 {object} ChatResponse
// @Failure 400 {object} gin.H "Question and plan are required"
// @Failure 500 {object} gin.H "Failed to process chat request"
// @Router /chat [post]
func (h *ChatHandler) Ask(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	ask := service.AskRequest{Question: req.Question, Plan: req.Plan}
	if req.PlanID != "" {
		planID, err := primitive.ObjectIDFromHex(req.PlanID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid planId format.")
			return
		}
		ask.PlanID = &planID
	}

	turn, err := h.chatService.Ask(c.Request.Context(), userID, ask)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrQuestionRequired), errors.Is(err, service.ErrNoPlanContext):
			abortWithError(c, http.StatusBadRequest, "Question and plan are required")
		default:
			log.Error().Err(err).Str("userId", userID.Hex()).Msg("Error in chat")
			abortWithError(c, http.StatusInternalServerError, "Failed to process chat request")
		}
		return
	}
	c.JSON(http.StatusOK, ChatResponse{Response: turn.Answer})
}

// GetChatHistory godoc
// @Summary List questions and answers about a plan, oldest first
// @Tags Chat
// @Security BearerAuth
// @Success 200 {array} ChatTurnResponse
// @Failure 404 {object} gin.H "Plan not found"
// @Router /plans/{id}/chat [get]
func (h *ChatHandler) GetChatHistory(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	planID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	chats, err := h.chatService.History(c.Request.Context(), userID, planID)
	if err != nil {
		respondPlanError(c, err)
		return
	}

	turns := make([]ChatTurnResponse, 0, len(chats))
	for _, ch := range chats {
		turns = append(turns, ChatTurnResponse{
			ID:        ch.ID.Hex(),
			Question:  ch.Question,
			Answer:    ch.Answer,
			CreatedAt: ch.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, turns)
}
