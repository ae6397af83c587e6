package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the listing indexes. It is idempotent.
func EnsureIndexes(ctx context.Context, coll *mongo.Collection) error {
	models := []mongo.IndexModel{
		// ORDER BY publishedAt DESC で使用(全一覧クエリ)
		{
			Keys:    newestFirst,
			Options: options.Index().SetName("idx_news_published_at"),
		},
		{
			Keys:    bson.D{{Key: "category", Value: 1}},
			Options: options.Index().SetName("idx_news_category"),
		},
	}
	if _, err := coll.Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("EnsureIndexes: %w", err)
	}
	return nil
}

// MigrateLegacySource rewrites documents stored with the flattened
// sourceName field into the nested source shape and returns how many
// documents changed.
func MigrateLegacySource(ctx context.Context, coll *mongo.Collection) (int64, error) {
	filter := bson.D{
		{Key: "sourceName", Value: bson.D{{Key: "$exists", Value: true}}},
		{Key: "source.name", Value: bson.D{{Key: "$exists", Value: false}}},
	}
	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "source", Value: bson.D{
				{Key: "name", Value: "$sourceName"},
				{Key: "url", Value: ""},
			}},
		}}},
		{{Key: "$unset", Value: "sourceName"}},
	}
	res, err := coll.UpdateMany(ctx, filter, pipeline)
	if err != nil {
		return 0, fmt.Errorf("MigrateLegacySource: %w", err)
	}
	return res.ModifiedCount, nil
}
