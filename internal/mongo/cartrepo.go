package mongo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bengalspicy/rms/internal/cart"
)

type CartRepo struct {
	collection *mongo.Collection
}

func NewCartRepo(db *mongo.Database) *CartRepo {
	return &CartRepo{
		collection: db.Collection(CollCart),
	}
}

func (r *CartRepo) Create(ctx context.Context, entry *cart.CartEntry) error {
	if entry == nil {
		return fmt.Errorf("cart entry is nil")
	}

	entry.EnsureID()

	if _, err := r.collection.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("cannot create cart entry: %w", err)
	}
	return nil
}

func (r *CartRepo) Get(ctx context.Context, id uuid.UUID) (*cart.CartEntry, error) {
	var entry cart.CartEntry
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&entry)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("cannot get cart entry: %w", err)
	}
	return &entry, nil
}

func (r *CartRepo) ListByEmail(ctx context.Context, email string) ([]*cart.CartEntry, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"customerEmail": email})
	if err != nil {
		return nil, fmt.Errorf("cannot list cart entries: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []*cart.CartEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("cannot decode cart entries: %w", err)
	}
	return entries, nil
}

func (r *CartRepo) SetQuantity(ctx context.Context, id uuid.UUID, quantity int) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"quantity": quantity}},
	)
	if err != nil {
		return fmt.Errorf("cannot update cart quantity: %w", err)
	}
	if result.MatchedCount == 0 {
		return cart.ErrNotFound
	}
	return nil
}

func (r *CartRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("cannot delete cart entry: %w", err)
	}
	if result.DeletedCount == 0 {
		return cart.ErrNotFound
	}
	return nil
}
