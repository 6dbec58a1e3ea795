package api

import (
	"aifitness/planner/internal/domain"
	"aifitness/planner/internal/service"
	"aifitness/planner/internal/storage"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type PlanHandler struct {
	planService service.PlanService
}

func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// --- DTOs ---

// PlanRequest is the plan form. Ranges follow the web form's limits.
type PlanRequest struct {
	WorkoutType         domain.WorkoutType `json:"workoutType" binding:"required,oneof=strength cardio hiit yoga mixed"`
	DietType            domain.DietType    `json:"dietType" binding:"required,oneof=balanced keto paleo vegan vegetarian mediterranean"`
	CurrentWeight       float64            `json:"currentWeight" binding:"required,min=30,max=300"`
	TargetWeight        float64            `json:"targetWeight" binding:"required,min=30,max=300"`
	DietaryRestrictions string             `json:"dietaryRestrictions" binding:"max=1000"`
	HealthConditions    string             `json:"healthConditions" binding:"max=1000"`
	Age                 int                `json:"age" binding:"required,min=16,max=100"`
	Gender              domain.Gender      `json:"gender" binding:"required,oneof=male female other"`
	NumberOfWeeks       int                `json:"numberOfWeeks" binding:"required,min=1,max=12"`
	AdditionalComments  string             `json:"additionalComments" binding:"max=2000"`
}

func (r PlanRequest) toInput() domain.PlanInput {
	return domain.PlanInput{
		WorkoutType:         r.WorkoutType,
		DietType:            r.DietType,
		CurrentWeight:       r.CurrentWeight,
		TargetWeight:        r.TargetWeight,
		DietaryRestrictions: r.DietaryRestrictions,
		HealthConditions:    r.HealthConditions,
		Age:                 r.Age,
		Gender:              r.Gender,
		NumberOfWeeks:       r.NumberOfWeeks,
		AdditionalComments:  r.AdditionalComments,
	}
}

// PlanResponse keeps dietPlan and workoutPlan at the top level so clients of
// the bare generate endpoint can read them directly.
type PlanResponse struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	DietPlan    string           `json:"dietPlan"`
	WorkoutPlan string           `json:"workoutPlan"`
	Input       domain.PlanInput `json:"input"`
	CreatedAt   time.Time        `json:"createdAt"`
}

// PlanSummary is a history row.
type PlanSummary struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	WorkoutType domain.WorkoutType `json:"workoutType"`
	DietType    domain.DietType    `json:"dietType"`
	CreatedAt   time.Time          `json:"createdAt"`
}

func mapPlanToResponse(plan *domain.PlanRecord) PlanResponse {
	return PlanResponse{
		ID:          plan.ID.Hex(),
		Title:       plan.Title,
		DietPlan:    plan.Plan.DietPlan,
		WorkoutPlan: plan.Plan.WorkoutPlan,
		Input:       plan.Input,
		CreatedAt:   plan.CreatedAt,
	}
}

// --- Handler Methods ---

// GeneratePlan godoc
// @Summary Generate a diet and workout plan
// @Tags Plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param plan body PlanRequest true "Plan form"
// @Success 201 {object} PlanResponse
// @Failure 400 {object} gin.H "Validation error"
// @Failure 500 {object} gin.H "Failed to generate plan"
// @Router /plans [post]
func (h *PlanHandler) GeneratePlan(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	plan, err := h.planService.Generate(c.Request.Context(), userID, req.toInput())
	if err != nil {
		log.Error().Err(err).Str("userId", userID.Hex()).Msg("Error generating plan")
		abortWithError(c, http.StatusInternalServerError, "Failed to generate plan")
		return
	}
	c.JSON(http.StatusCreated, mapPlanToResponse(plan))
}

// GetLatestPlan godoc
// @Summary Get the caller's most recent plan
// @Tags Plans
// @Security BearerAuth
// @Success 200 {object} PlanResponse
// @Failure 404 {object} gin.H "No plan yet"
// @Router /plans/latest [get]
func (h *PlanHandler) GetLatestPlan(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	plan, err := h.planService.Latest(c.Request.Context(), userID)
	if err != nil {
		respondPlanError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapPlanToResponse(plan))
}

// GetPlanHistory godoc
// @Summary List the caller's plans, newest first
// @Tags Plans
// @Security BearerAuth
// @Success 200 {array} PlanSummary
// @Router /plans [get]
func (h *PlanHandler) GetPlanHistory(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	plans, err := h.planService.History(c.Request.Context(), userID)
	if err != nil {
		respondPlanError(c, err)
		return
	}

	summaries := make([]PlanSummary, 0, len(plans))
	for _, p := range plans {
		summaries = append(summaries, PlanSummary{
			ID:          p.ID.Hex(),
			Title:       p.Title,
			WorkoutType: p.Input.WorkoutType,
			DietType:    p.Input.DietType,
			CreatedAt:   p.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, summaries)
}

func (h *PlanHandler) GetPlan(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	planID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	plan, err := h.planService.Get(c.Request.Context(), userID, planID)
	if err != nil {
		respondPlanError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapPlanToResponse(plan))
}

func (h *PlanHandler) DeletePlan(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	planID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	if err := h.planService.Delete(c.Request.Context(), userID, planID); err != nil {
		respondPlanError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ExportPlan godoc
// @Summary Export a plan as a markdown document
// @Description Uploads the plan to object storage and returns a temporary download URL.
// @Tags Plans
// @Security BearerAuth
// @Success 200 {object} gin.H "{url, expiresIn}"
// @Failure 404 {object} gin.H "Plan not found"
// @Failure 503 {object} gin.H "Export not configured"
// @Router /plans/{id}/export [post]
func (h *PlanHandler) ExportPlan(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	planID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	url, err := h.planService.Export(c.Request.Context(), userID, planID)
	if err != nil {
		respondPlanError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url, "expiresIn": int(storage.DefaultPresignedURLExpiry.Seconds())})
}

func respondPlanError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPlanNotFound):
		abortWithError(c, http.StatusNotFound, "Plan not found")
	case errors.Is(err, service.ErrExportUnavailable):
		abortWithError(c, http.StatusServiceUnavailable, "Plan export is not configured")
	case errors.Is(err, service.ErrExportFailed):
		log.Error().Err(err).Msg("Plan export failed")
		abortWithError(c, http.StatusBadGateway, "Failed to export plan")
	default:
		log.Error().Err(err).Msg("Unexpected plan error")
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
