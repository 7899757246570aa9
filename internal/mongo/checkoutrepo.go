package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bengalspicy/rms/internal/order"
)

// CheckoutRepo runs the two checkout writes inside one session transaction:
// the order insert and the cart sweep commit together or not at all. Requires
// the store to run as a replica set, which is how the deployment is set up.
type CheckoutRepo struct {
	client *mongo.Client
	orders *mongo.Collection
	cart   *mongo.Collection
}

func NewCheckoutRepo(client *mongo.Client, db *mongo.Database) *CheckoutRepo {
	return &CheckoutRepo{
		client: client,
		orders: db.Collection(CollOrders),
		cart:   db.Collection(CollCart),
	}
}

func (r *CheckoutRepo) PlaceOrder(ctx context.Context, o *order.Order) error {
	if o == nil {
		return fmt.Errorf("order is nil")
	}

	session, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("cannot start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := r.orders.InsertOne(sc, o); err != nil {
			return nil, fmt.Errorf("cannot insert order: %w", err)
		}
		if _, err := r.cart.DeleteMany(sc, bson.M{"customerEmail": o.CustomerEmail}); err != nil {
			return nil, fmt.Errorf("cannot clear cart: %w", err)
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("checkout transaction failed: %w", err)
	}

	return nil
}
