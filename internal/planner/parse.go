package planner

import (
	"regexp"
	"strings"

	"aifitness/planner/internal/domain"
)

const (
	dietMarker    = "DIET PLAN"
	workoutMarker = "WORKOUT PLAN"

	DietFallback    = "Diet plan not generated."
	WorkoutFallback = "Workout plan not generated."
)

var (
	// The diet section stops at the first workout marker after it, or at end of text.
	dietSection    = regexp.MustCompile(`(?is)` + dietMarker + `(.*?)(?:` + workoutMarker + `|$)`)
	workoutSection = regexp.MustCompile(`(?is)` + workoutMarker + `(.*)$`)
)

// ParsePlanResponse splits raw model output into its diet and workout
// sections. Markers are matched case-insensitively and searched independently,
// so a missing diet section does not hide a present workout section. It never
// fails: absent sections get their fallback text.
func ParsePlanResponse(raw string) domain.GeneratedPlan {
	return domain.GeneratedPlan{
		DietPlan:    section(dietSection, raw, DietFallback),
		WorkoutPlan: section(workoutSection, raw, WorkoutFallback),
	}
}

func section(re *regexp.Regexp, raw, fallback string) string {
	m := re.FindStringSubmatch(raw)
	if m == nil {
		return fallback
	}
	return strings.TrimSpace(m[1])
}

// FormatPlan reassembles a plan into the marker layout ParsePlanResponse reads.
func FormatPlan(plan domain.GeneratedPlan) string {
	return dietMarker + "\n" + plan.DietPlan + "\n" + workoutMarker + "\n" + plan.WorkoutPlan
}
