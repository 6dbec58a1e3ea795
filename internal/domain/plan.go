package domain

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type WorkoutType string

const (
	WorkoutStrength WorkoutType = "strength"
	WorkoutCardio   WorkoutType = "cardio"
	WorkoutHIIT     WorkoutType = "hiit"
	WorkoutYoga     WorkoutType = "yoga"
	WorkoutMixed    WorkoutType = "mixed"
)

type DietType string

const (
	DietBalanced      DietType = "balanced"
	DietKeto          DietType = "keto"
	DietPaleo         DietType = "paleo"
	DietVegan         DietType = "vegan"
	DietVegetarian    DietType = "vegetarian"
	DietMediterranean DietType = "mediterranean"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// PlanInput is the profile and preferences a plan is generated from.
// Range checks happen at the edge (request binding); nothing downstream re-validates.
type PlanInput struct {
	WorkoutType         WorkoutType `bson:"workoutType" json:"workoutType"`
	DietType            DietType    `bson:"dietType" json:"dietType"`
	CurrentWeight       float64     `bson:"currentWeight" json:"currentWeight"` // kg
	TargetWeight        float64     `bson:"targetWeight" json:"targetWeight"`   // kg
	DietaryRestrictions string      `bson:"dietaryRestrictions,omitempty" json:"dietaryRestrictions,omitempty"`
	HealthConditions    string      `bson:"healthConditions,omitempty" json:"healthConditions,omitempty"`
	Age                 int         `bson:"age" json:"age"`
	Gender              Gender      `bson:"gender" json:"gender"`
	NumberOfWeeks       int         `bson:"numberOfWeeks" json:"numberOfWeeks"`
	AdditionalComments  string      `bson:"additionalComments,omitempty" json:"additionalComments,omitempty"`
}

// GeneratedPlan holds the two markdown sections split out of a model response.
// Both fields are always set; a section the model did not produce carries a
// fallback placeholder instead.
type GeneratedPlan struct {
	DietPlan    string `bson:"dietPlan" json:"dietPlan"`
	WorkoutPlan string `bson:"workoutPlan" json:"workoutPlan"`
}

// PlanRecord is a generated plan as stored for a user.
type PlanRecord struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Title     string             `bson:"title" json:"title"`
	Input     PlanInput          `bson:"input" json:"input"`
	Plan      GeneratedPlan      `bson:"plan" json:"plan"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// PlanTitle names a plan the way the history list shows it, e.g. "4 week cardio plan".
func PlanTitle(input PlanInput) string {
	return fmt.Sprintf("%d week %s plan", input.NumberOfWeeks, input.WorkoutType)
}
