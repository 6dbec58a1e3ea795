// Package planner turns a plan request into a model prompt and a model
// response back into a diet and workout plan.
package planner

import (
	"fmt"
	"strconv"

	"aifitness/planner/internal/domain"
)

// Output budgets passed to the text generator.
const (
	PlanMaxTokens = 4000
	ChatMaxTokens = 1000
)

const none = "None"

// BuildPlanPrompt renders the generation prompt for input. It does not
// validate; out-of-range values are substituted as-is.
func BuildPlanPrompt(input domain.PlanInput) string {
	return fmt.Sprintf(planPrompt,
		input.NumberOfWeeks,
		input.WorkoutType,
		input.DietType,
		formatKg(input.CurrentWeight),
		formatKg(input.TargetWeight),
		orNone(input.DietaryRestrictions),
		orNone(input.HealthConditions),
		input.Age,
		input.Gender,
		orNone(input.AdditionalComments),
		dietMarker,
		workoutMarker,
	)
}

// BuildChatPrompt renders a follow-up question together with the plan it is about.
func BuildChatPrompt(question string, plan domain.GeneratedPlan) string {
	return fmt.Sprintf(chatPrompt, plan.DietPlan, plan.WorkoutPlan, question)
}

// orNone replaces only the empty string; whitespace is passed through as typed.
func orNone(s string) string {
	if s == "" {
		return none
	}
	return s
}

func formatKg(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}

const planPrompt = `
You are a fitness and diet planner. Using the following inputs, create two detailed plans:
1. A diet plan table listing day-to-day food intake for %[1]d weeks.
2. A workout plan table listing day-to-day exercises for %[1]d weeks.

Inputs:
- Workout type: %[2]s
- Diet type: %[3]s
- Current weight: %[4]s kg
- Target weight: %[5]s kg
- Dietary restrictions: %[6]s
- Health conditions: %[7]s
- Age: %[8]d
- Gender: %[9]s
- Other instructions: %[10]s

Format your response in Markdown with proper tables. Make sure to:

1. Start with a brief introduction explaining the plan
2. For the diet plan:
   - Create a table with columns: Day, Meal, Food Items, Portion Size, Calories
   - Use proper Markdown table syntax with | and - characters
   - Include a header row with column names
   - List meals for each day of the week, repeated for %[1]d weeks
   - Include specific portion sizes and calorie estimates

3. For the workout plan:
   - Create a table with columns: Day, Exercise, Sets, Reps/Duration, Rest, Notes
   - Use proper Markdown table syntax with | and - characters
   - Include a header row with column names
   - List exercises for each day of the week, repeated for %[1]d weeks
   - Include rest days in the plan
   - Add notes for proper form or modifications

Example table format:
| Day | Meal | Food Items | Portion Size | Calories |
|-----|------|------------|--------------|----------|
| Monday | Breakfast | Oatmeal with berries | 1 cup | 300 |

Split your response into two clear sections: "%[11]s" and "%[12]s".
Each section should start with a brief description followed by the table.
`

const chatPrompt = `
You are a fitness and diet expert. Answer the following user question based on the given plan:

Plan:
Diet Plan:
%s

Workout Plan:
%s

Question: %s

Provide a clear, helpful, and detailed response. Use markdown formatting to make your answer readable.
Limit your response to information that is directly relevant to the question and the provided plan.
If the question is outside the scope of the plan, politely explain that and provide general fitness advice.
`
