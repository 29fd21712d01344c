package database

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// Database is the slice of a MongoDB database the API needs.
type Database interface {
	Collection(name string) *mongo.Collection
	EnsureIndexes(ctx context.Context, collection string) error
}

type MongoDatabase struct {
	db *mongo.Database
}

func NewMongoDatabase(db *mongo.Database) *MongoDatabase {
	return &MongoDatabase{db: db}
}

func (m *MongoDatabase) Collection(name string) *mongo.Collection {
	return m.db.Collection(name)
}

func (m *MongoDatabase) EnsureIndexes(ctx context.Context, collection string) error {
	return CreateAddressIndexes(ctx, m.db.Collection(collection))
}
