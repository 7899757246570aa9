package commands

import (
	"context"
	"fmt"

	"github.com/appetiteclub/apt"
	"go.mongodb.org/mongo-driver/bson"
)

// ClearDemo removes the seeded demo menu items
func ClearDemo(ctx context.Context, config *apt.Config, logger apt.Logger) error {
	logger.Info("Starting demo data cleanup...")

	client, dbName, err := connect(ctx, config)
	if err != nil {
		return err
	}
	defer client.Disconnect(ctx)

	logger.Info("Connected to MongoDB")

	db := client.Database(dbName)

	// Delete demo menu items
	menuCollection := db.Collection("food_menu")
	menuResult, err := menuCollection.DeleteMany(ctx, bson.M{"created_by": "demo-seed"})
	if err != nil {
		return fmt.Errorf("delete demo menu items: %w", err)
	}
	logger.Info("Deleted demo menu items", "count", menuResult.DeletedCount)

	// Clear seed tracker
	seedsCollection := db.Collection("_seeds")
	trackerResult, err := seedsCollection.DeleteOne(ctx, bson.M{"_id": "demo_menu_v1"})
	if err != nil {
		return fmt.Errorf("delete menu seed tracker: %w", err)
	}
	logger.Info("Cleared menu seed tracker", "deleted", trackerResult.DeletedCount)

	return nil
}
