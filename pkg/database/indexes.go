package database

import (
	"context"
	"time"

	"geocortex/pkg/logger"
	"geocortex/pkg/metrics"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CreateAddressIndexes adds the secondary index used for address lookups.
// Records are listed in _id order, which needs no extra index.
func CreateAddressIndexes(ctx context.Context, collection *mongo.Collection) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	start := time.Now()
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "address", Value: 1}},
	})
	metrics.MongoOperationDuration.WithLabelValues("create_indexes", collection.Name()).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.MongoErrorsTotal.WithLabelValues("create_indexes", collection.Name()).Inc()
		logger.GlobalLogger.Errorf("Failed to create indexes: %v", err)
		return err
	}

	logger.GlobalLogger.Println("MongoDB indexes created successfully.")
	return nil
}
