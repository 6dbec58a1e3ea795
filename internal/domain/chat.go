package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChatTurn is one follow-up question and the model's answer.
type ChatTurn struct {
	Question string `bson:"question" json:"question"`
	Answer   string `bson:"answer" json:"answer"`
}

// ChatRecord is a ChatTurn stored against the plan it was asked about.
type ChatRecord struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PlanID    primitive.ObjectID `bson:"planId" json:"planId"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	ChatTurn  `bson:",inline"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
