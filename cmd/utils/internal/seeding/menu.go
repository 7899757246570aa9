package seeding

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type demoItem struct {
	Name        string
	Category    string
	Price       float64
	Description string
	Rating      float64
}

var demoMenu = []demoItem{
	{"Chicken Biryani", "rice", 12.50, "Basmati rice layered with spiced chicken and fried onion", 4.8},
	{"Beef Kala Bhuna", "curry", 15.00, "Slow cooked Chittagong style dark beef curry", 4.9},
	{"Hilsha Bhapa", "fish", 18.00, "Steamed hilsha in mustard paste, banana leaf wrapped", 4.7},
	{"Shorshe Ilish", "fish", 17.50, "Hilsha simmered in mustard gravy", 4.6},
	{"Morog Polao", "rice", 13.00, "Aromatic chicken polao cooked in ghee", 4.5},
	{"Begun Bharta", "vegetarian", 7.00, "Smoked mashed eggplant with mustard oil and green chili", 4.3},
	{"Dal Makhani", "vegetarian", 8.00, "Black lentils slow cooked with butter and cream", 4.4},
	{"Chicken Tikka", "grill", 10.50, "Char grilled chicken marinated in yogurt and spices", 4.6},
	{"Seekh Kebab", "grill", 11.00, "Minced beef skewers with fresh coriander", 4.5},
	{"Firni", "dessert", 5.50, "Rice pudding scented with cardamom and rose water", 4.7},
	{"Mishti Doi", "dessert", 4.50, "Caramelized sweet yogurt", 4.8},
	{"Borhani", "drinks", 3.50, "Spiced yogurt drink, the biryani companion", 4.2},
}

// SeedMenu inserts the demo menu into food_menu. Items are upserted by name so
// re-running the seed never duplicates them.
func SeedMenu(ctx context.Context, db *mongo.Database) error {
	collection := db.Collection("food_menu")
	now := time.Now()

	for _, item := range demoMenu {
		doc := bson.M{
			"_id":         uuid.New(),
			"name":        item.Name,
			"category":    item.Category,
			"price":       item.Price,
			"description": item.Description,
			"rating":      item.Rating,
			"created_at":  now,
			"updated_at":  now,
			"created_by":  "demo-seed",
		}

		_, err := collection.UpdateOne(
			ctx,
			bson.M{"name": item.Name},
			bson.M{"$setOnInsert": doc},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return fmt.Errorf("cannot seed menu item %s: %w", item.Name, err)
		}
	}

	return nil
}
