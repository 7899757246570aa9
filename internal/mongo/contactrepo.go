package mongo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bengalspicy/rms/internal/contact"
)

type ContactRepo struct {
	collection *mongo.Collection
}

func NewContactRepo(db *mongo.Database) *ContactRepo {
	return &ContactRepo{
		collection: db.Collection(CollContact),
	}
}

func (r *ContactRepo) Create(ctx context.Context, msg *contact.Message) error {
	if msg == nil {
		return fmt.Errorf("message is nil")
	}

	msg.EnsureID()

	if _, err := r.collection.InsertOne(ctx, msg); err != nil {
		return fmt.Errorf("cannot create contact message: %w", err)
	}
	return nil
}

func (r *ContactRepo) Get(ctx context.Context, id uuid.UUID) (*contact.Message, error) {
	var msg contact.Message
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&msg)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("cannot get contact message: %w", err)
	}
	return &msg, nil
}

func (r *ContactRepo) List(ctx context.Context) ([]*contact.Message, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("cannot list contact messages: %w", err)
	}
	defer cursor.Close(ctx)

	var messages []*contact.Message
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, fmt.Errorf("cannot decode contact messages: %w", err)
	}
	return messages, nil
}

func (r *ContactRepo) SetStatus(ctx context.Context, id uuid.UUID, status string) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		return fmt.Errorf("cannot update message status: %w", err)
	}
	if result.MatchedCount == 0 {
		return contact.ErrNotFound
	}
	return nil
}

func (r *ContactRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("cannot delete contact message: %w", err)
	}
	if result.DeletedCount == 0 {
		return contact.ErrNotFound
	}
	return nil
}
