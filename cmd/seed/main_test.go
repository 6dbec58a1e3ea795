package main

import (
	"aifitness/planner/internal/domain"
	"aifitness/planner/internal/planner"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSampleTablesSurviveParsing(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	diet := dietTable(2)
	workout := workoutTable(rng, domain.WorkoutMixed, 2)

	got := planner.ParsePlanResponse(planner.FormatPlan(domain.GeneratedPlan{DietPlan: diet, WorkoutPlan: workout}))

	assert.Equal(t, diet, got.DietPlan)
	assert.Equal(t, workout, got.WorkoutPlan)
	assert.Equal(t, 2, strings.Count(diet, "| Day | Meal | Food Items | Portion Size | Calories |"))
	assert.Equal(t, 2, strings.Count(workout, "| Day | Exercise | Sets | Reps/Duration | Rest | Notes |"))
	assert.Contains(t, workout, "### Week 2")
}

func TestSampleDataIsValidFormInput(t *testing.T) {
	for _, u := range sampleUsers {
		assert.GreaterOrEqual(t, u.Age, 16, u.Email)
		// Target weight is up to 5 kg below current.
		assert.GreaterOrEqual(t, u.WeightKg-5, 30.0, u.Email)
	}
	for _, wt := range seedWorkoutTypes[:4] {
		assert.Len(t, workoutRotation[wt], len(daysOfWeek), wt)
	}
}
