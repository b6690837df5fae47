package models

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Feedback struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name" validate:"required,max=100"`
	Email     string             `bson:"email" json:"email" validate:"required,contactemail"`
	Message   string             `bson:"message" json:"message" validate:"required,max=1000"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Normalize trims the form input and lowercases the email, as stored.
func (f *Feedback) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))
	f.Message = strings.TrimSpace(f.Message)
}

type FeedbackRepo interface {
	CreateFeedback(ctx context.Context, feedback *Feedback) (*Feedback, error)
	ListFeedback(ctx context.Context) ([]*Feedback, error)
	DeleteFeedback(ctx context.Context, id string) error
}

func (mdb *MongodbRepo) CreateFeedback(ctx context.Context, feedback *Feedback) (*Feedback, error) {
	col, err := mdb.GetCollection(ctx, FeedbackColName)
	if err != nil {
		return nil, err
	}
	if feedback.ID.IsZero() {
		feedback.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	feedback.CreatedAt = now
	feedback.UpdatedAt = now

	if _, err := col.InsertOne(ctx, feedback); err != nil {
		return nil, storeError("insert feedback", err)
	}
	return feedback, nil
}

// ListFeedback returns feedback newest first.
func (mdb *MongodbRepo) ListFeedback(ctx context.Context) ([]*Feedback, error) {
	col, err := mdb.GetCollection(ctx, FeedbackColName)
	if err != nil {
		return nil, err
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, storeError("find feedback", err)
	}
	defer cursor.Close(ctx)

	items := []*Feedback{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, storeError("decode feedback", err)
	}
	return items, nil
}

func (mdb *MongodbRepo) DeleteFeedback(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	col, err := mdb.GetCollection(ctx, FeedbackColName)
	if err != nil {
		return err
	}
	res, err := col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return storeError("delete feedback", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("delete feedback: %w", ErrNotFound)
	}
	return nil
}
