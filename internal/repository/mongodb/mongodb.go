package mongodb

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/iyhunko/product-catalog/internal/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const connectTimeout = 10 * time.Second

// StartDB connects to MongoDB and verifies the connection with a ping.
// The returned database is safe for concurrent use.
func StartDB(ctx context.Context, dbConf config.DB) (*mongo.Database, error) {
	client, err := startDBConnection(ctx, dbConf)
	if err != nil {
		slog.Error("failed to initialize DB connection", slog.Any("err", err))
		return nil, fmt.Errorf("failed to initialize DB connection: %w", err)
	}
	return client.Database(dbConf.Name), nil
}

func startDBConnection(ctx context.Context, conf config.DB) (*mongo.Client, error) {
	opts := options.Client().ApplyURI(conf.URI)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	slog.Info("MongoDB connected", slog.String("host", strings.Join(opts.Hosts, ",")), slog.String("db", conf.Name))
	return client, nil
}

// StopDB closes the client behind db.
func StopDB(ctx context.Context, db *mongo.Database) error {
	if err := db.Client().Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from database: %w", err)
	}
	return nil
}
