package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an account that can generate and chat about plans.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`    // Should be unique
	PasswordHash string             `bson:"passwordHash" json:"-"` // Never expose this via JSON
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`

	// Optional profile, only filled in by seeded accounts for now.
	Age      int     `bson:"age,omitempty" json:"age,omitempty"`
	HeightCm float64 `bson:"heightCm,omitempty" json:"heightCm,omitempty"`
	WeightKg float64 `bson:"weightKg,omitempty" json:"weightKg,omitempty"`
}
