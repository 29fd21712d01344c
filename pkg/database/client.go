package database

import (
	"context"
	"fmt"
	"time"

	"geocortex/pkg/logger"
	"geocortex/pkg/metrics"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Connect opens a MongoDB client and pings it. The caller owns the client
// and must release it with Disconnect.
func Connect(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	clientOptions := options.Client().ApplyURI(uri).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout).
		SetMaxPoolSize(100)

	start := time.Now()
	client, err := mongo.Connect(ctx, clientOptions)
	metrics.MongoOperationDuration.WithLabelValues("connect", "").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.MongoErrorsTotal.WithLabelValues("connect", "").Inc()
		logger.GlobalLogger.Errorf("failed to connect to MongoDB: %v", err)
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	start = time.Now()
	err = client.Ping(ctx, nil)
	metrics.MongoOperationDuration.WithLabelValues("ping", "").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.MongoErrorsTotal.WithLabelValues("ping", "").Inc()
		_ = client.Disconnect(context.Background())
		logger.GlobalLogger.Errorf("failed to ping MongoDB: %v", err)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	logger.GlobalLogger.Println("MongoDB connected successfully.")
	return client, nil
}

// Disconnect closes the client, waiting at most five seconds.
func Disconnect(client *mongo.Client) {
	if client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	start := time.Now()
	err := client.Disconnect(ctx)
	metrics.MongoOperationDuration.WithLabelValues("disconnect", "").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.MongoErrorsTotal.WithLabelValues("disconnect", "").Inc()
		logger.GlobalLogger.Errorf("Error closing MongoDB: %v", err)
		return
	}
	logger.GlobalLogger.Println("MongoDB connection closed")
}
