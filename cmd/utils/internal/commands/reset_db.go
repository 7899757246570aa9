package commands

import (
	"context"
	"fmt"

	"github.com/appetiteclub/apt"
	"go.mongodb.org/mongo-driver/bson"
)

// Collections that make up the restaurant database.
var allCollections = []string{
	"food_menu",
	"cart",
	"orders",
	"users",
	"contact",
	"_seeds",
}

// ResetDB drops every collection of the restaurant database - USE WITH CAUTION
func ResetDB(ctx context.Context, config *apt.Config, logger apt.Logger) error {
	logger.Infof("⚠️  DANGER: This will drop ALL restaurant collections!")
	logger.Infof("⚠️  This action cannot be undone!")

	client, dbName, err := connect(ctx, config)
	if err != nil {
		return err
	}
	defer client.Disconnect(ctx)

	logger.Info("Connected to MongoDB")

	db := client.Database(dbName)
	for _, collName := range allCollections {
		logger.Info("Dropping collection", "collection", collName)
		if err := db.Collection(collName).Drop(ctx); err != nil {
			logger.Infof("⚠️  Failed to drop collection %s (may not exist): %v", collName, err)
		} else {
			logger.Info("Collection dropped", "collection", collName)
		}
	}

	result := db.RunCommand(ctx, bson.D{{Key: "dropDatabase", Value: 1}})
	if result.Err() != nil {
		return fmt.Errorf("drop database %s: %w", dbName, result.Err())
	}

	logger.Info("Database has been dropped", "database", dbName)
	return nil
}
