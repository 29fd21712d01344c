package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "geocortex/internal/errors"
	"geocortex/internal/models"
	"geocortex/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// propertyDocument is the stored shape: canonical fields plus the attributes
// inlined at the top level.
type propertyDocument struct {
	ID         primitive.ObjectID     `bson:"_id"`
	Address    string                 `bson:"address"`
	Lat        *float64               `bson:"lat,omitempty"`
	Lon        *float64               `bson:"lon,omitempty"`
	Attributes map[string]interface{} `bson:",inline"`
}

func toDocument(record *models.PropertyRecord, id primitive.ObjectID) *propertyDocument {
	attrs := make(map[string]interface{}, len(record.Attributes))
	for k, v := range record.Attributes {
		if !models.IsCanonical(k) {
			attrs[k] = v
		}
	}
	return &propertyDocument{
		ID:         id,
		Address:    record.Address,
		Lat:        record.Lat,
		Lon:        record.Lon,
		Attributes: attrs,
	}
}

func (d *propertyDocument) toRecord() *models.PropertyRecord {
	attrs := make(map[string]interface{}, len(d.Attributes))
	for k, v := range d.Attributes {
		attrs[k] = plainValue(v)
	}
	return &models.PropertyRecord{
		ID:         d.ID.Hex(),
		Address:    d.Address,
		Lat:        d.Lat,
		Lon:        d.Lon,
		Attributes: attrs,
	}
}

// plainValue turns driver container types into maps and slices so records
// serialize as ordinary JSON.
func plainValue(v interface{}) interface{} {
	switch t := v.(type) {
	case primitive.D:
		m := make(map[string]interface{}, len(t))
		for _, e := range t {
			m[e.Key] = plainValue(e.Value)
		}
		return m
	case primitive.M:
		m := make(map[string]interface{}, len(t))
		for k, e := range t {
			m[k] = plainValue(e)
		}
		return m
	case primitive.A:
		s := make([]interface{}, len(t))
		for i, e := range t {
			s[i] = plainValue(e)
		}
		return s
	case primitive.ObjectID:
		return t.Hex()
	case primitive.DateTime:
		return t.Time().UTC()
	}
	return v
}

type propertyRepository struct {
	collection *mongo.Collection
}

func NewPropertyRepository(collection *mongo.Collection) PropertyRepository {
	return &propertyRepository{collection: collection}
}

func (r *propertyRepository) observe(operation string, start time.Time, err error) {
	utils.RecordMongoOperationDuration(operation, r.collection.Name(), start)
	if err != nil {
		utils.RecordMongoError(operation, r.collection.Name())
	}
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", apperrors.ErrInvalidID, id)
	}
	return oid, nil
}

func unavailable(operation string, err error) error {
	return fmt.Errorf("%w: %s: %w", apperrors.ErrStoreUnavailable, operation, err)
}

func (r *propertyRepository) Insert(ctx context.Context, record *models.PropertyRecord) error {
	id := primitive.NewObjectID()
	start := time.Now()
	_, err := r.collection.InsertOne(ctx, toDocument(record, id))
	r.observe("insert", start, err)
	if err != nil {
		return unavailable("insert", err)
	}
	record.ID = id.Hex()
	return nil
}

func (r *propertyRepository) DeleteByID(ctx context.Context, id string) (int64, error) {
	oid, err := parseID(id)
	if err != nil {
		return 0, err
	}
	start := time.Now()
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	r.observe("delete_one", start, err)
	if err != nil {
		return 0, unavailable("delete", err)
	}
	return res.DeletedCount, nil
}

func (r *propertyRepository) DeleteAll(ctx context.Context) (int64, error) {
	start := time.Now()
	res, err := r.collection.DeleteMany(ctx, bson.M{})
	r.observe("delete_many", start, err)
	if err != nil {
		return 0, unavailable("delete all", err)
	}
	return res.DeletedCount, nil
}

func (r *propertyRepository) FindAll(ctx context.Context) ([]*models.PropertyRecord, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	start := time.Now()
	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	r.observe("find", start, err)
	if err != nil {
		return nil, unavailable("find", err)
	}
	defer cursor.Close(ctx)

	var docs []propertyDocument
	start = time.Now()
	err = cursor.All(ctx, &docs)
	r.observe("cursor_all", start, err)
	if err != nil {
		return nil, unavailable("read cursor", err)
	}

	records := make([]*models.PropertyRecord, 0, len(docs))
	for i := range docs {
		records = append(records, docs[i].toRecord())
	}
	return records, nil
}

func (r *propertyRepository) FindByID(ctx context.Context, id string) (*models.PropertyRecord, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var doc propertyDocument
	start := time.Now()
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		r.observe("find_one", start, nil)
		return nil, fmt.Errorf("%w: %s", apperrors.ErrNotFound, id)
	}
	r.observe("find_one", start, err)
	if err != nil {
		return nil, unavailable("find one", err)
	}
	return doc.toRecord(), nil
}

func (r *propertyRepository) Ping(ctx context.Context) error {
	start := time.Now()
	err := r.collection.Database().RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
	r.observe("ping", start, err)
	if err != nil {
		return unavailable("ping", err)
	}
	return nil
}
