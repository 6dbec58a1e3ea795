package mongo

import (
	"aifitness/planner/internal/domain"
	"aifitness/planner/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const chatCollectionName = "chats"

type mongoChatRepository struct {
	collection *mongo.Collection
}

// NewMongoChatRepository creates a new chat repository.
func NewMongoChatRepository(db *mongo.Database) repository.ChatRepository {
	return &mongoChatRepository{
		collection: db.Collection(chatCollectionName),
	}
}

// Create inserts a question and its answer.
func (r *mongoChatRepository) Create(ctx context.Context, chat *domain.ChatRecord) (primitive.ObjectID, error) {
	if chat.PlanID == primitive.NilObjectID || chat.UserID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("chat requires planId and userId")
	}
	chat.ID = primitive.NewObjectID()
	chat.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, chat)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted chat ID")
	}
	return insertedID, nil
}

// ListByPlan retrieves the conversation about a plan, oldest first.
func (r *mongoChatRepository) ListByPlan(ctx context.Context, planID primitive.ObjectID) ([]domain.ChatRecord, error) {
	chats := []domain.ChatRecord{}
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"planId": planID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &chats); err != nil {
		return nil, err
	}
	return chats, nil
}

// DeleteByPlan removes the conversation of a deleted plan.
func (r *mongoChatRepository) DeleteByPlan(ctx context.Context, planID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"planId": planID})
	return err
}

// EnsureChatIndexes creates necessary indexes. Call during startup.
func EnsureChatIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "planId", Value: 1}, {Key: "createdAt", Value: 1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
