package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bengalspicy/rms/internal/user"
)

type UserRepo struct {
	collection *mongo.Collection
}

func NewUserRepo(db *mongo.Database) *UserRepo {
	return &UserRepo{
		collection: db.Collection(CollUsers),
	}
}

// LoginOrRegister is one conditional upsert keyed on the unique email index.
// There is no read-then-write gap: concurrent first contacts for the same
// email converge on a single document, the loser of the race turning into a
// plain login increment.
func (r *UserRepo) LoginOrRegister(ctx context.Context, name, email string) (*user.User, uuid.UUID, error) {
	now := time.Now()
	newID := uuid.New()

	update := bson.M{
		"$set": bson.M{"activity.lastLogin": now},
		"$inc": bson.M{"activity.loginCount": 1},
		"$setOnInsert": bson.M{
			"_id":                newID,
			"name":               name,
			"email":              email,
			"role":               user.DefaultRole,
			"activity.createdAt": now,
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.Before)

	var existing user.User
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"email": email}, update, opts).Decode(&existing)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			// No prior document: the upsert inserted a fresh user.
			return nil, newID, nil
		}
		return nil, uuid.Nil, fmt.Errorf("cannot upsert user: %w", err)
	}

	return &existing, uuid.Nil, nil
}

func (r *UserRepo) Get(ctx context.Context, id uuid.UUID) (*user.User, error) {
	var u user.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("cannot get user: %w", err)
	}
	return &u, nil
}

func (r *UserRepo) List(ctx context.Context) ([]*user.User, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("cannot list users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []*user.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("cannot decode users: %w", err)
	}
	return users, nil
}

func (r *UserRepo) SetRole(ctx context.Context, id uuid.UUID, role string) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"role": role}},
	)
	if err != nil {
		return fmt.Errorf("cannot update role: %w", err)
	}
	if result.MatchedCount == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (r *UserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("cannot delete user: %w", err)
	}
	if result.DeletedCount == 0 {
		return user.ErrNotFound
	}
	return nil
}
