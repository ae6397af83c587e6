package db

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"newsroom/internal/config"
)

// OpenMongo connects to the document store and returns the client together
// with the configured news collection.
func OpenMongo(ctx context.Context, sc config.StoreConfig) (*mongo.Client, *mongo.Collection, error) {
	opts := options.Client().
		ApplyURI(sc.MongoURI).
		SetConnectTimeout(connectTimeout(sc)).
		SetServerSelectionTimeout(connectTimeout(sc))
	if sc.MaxOpenConns > 0 {
		opts.SetMaxPoolSize(uint64(sc.MaxOpenConns))
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("connect mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout(sc))
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("ping mongo: %w", err)
	}

	slog.Info("database connection established successfully",
		slog.String("driver", config.DriverMongo),
		slog.String("database", sc.MongoDatabase),
		slog.String("collection", sc.MongoCollection))

	return client, client.Database(sc.MongoDatabase).Collection(sc.MongoCollection), nil
}

// MongoPinger adapts a mongo client to the health check.
type MongoPinger struct {
	Client *mongo.Client
}

func (p MongoPinger) PingContext(ctx context.Context) error {
	return p.Client.Ping(ctx, readpref.Primary())
}
