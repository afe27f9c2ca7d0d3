package clientRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/sharathcodingit/remi-fitness-booking-app/database"
	"github.com/sharathcodingit/remi-fitness-booking-app/models"
	"github.com/sharathcodingit/remi-fitness-booking-app/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoClientStore implements Store using MongoDB, for deployments that
// outgrow the flat file. Documents are keyed by client name.
type MongoClientStore struct {
	coll *mongo.Collection
}

// NewMongoClientStore creates a Store backed by the "clients" collection.
func NewMongoClientStore() *MongoClientStore {
	coll := database.MongoClient.Database("remifitness").Collection("clients")
	store := &MongoClientStore{coll: coll}

	if err := store.ensureIndexes(); err != nil {
		utils.GetLogger().Warn("failed to create client indexes", zap.Error(err))
	}
	return store
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (s *MongoClientStore) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}},
	}

	_, err := s.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Load retrieves all client documents. A document that fails to decode is
// skipped with a warning rather than failing the whole load.
func (s *MongoClientStore) Load(ctx context.Context) ([]models.ClientRecord, error) {
	logger := utils.GetLogger()

	cursor, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve clients: %w", err)
	}
	defer cursor.Close(ctx)

	records := []models.ClientRecord{}
	for cursor.Next(ctx) {
		var rec models.ClientRecord
		if err := cursor.Decode(&rec); err != nil {
			logger.Warn("skipping undecodable client document", zap.Error(err))
			continue
		}
		rec.BookedSessions = sanitizeBookings(rec.Name, rec.BookedSessions)
		records = append(records, rec)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate clients: %w", err)
	}
	return records, nil
}

// Save upserts every record by name in one bulk write.
func (s *MongoClientStore) Save(ctx context.Context, records []models.ClientRecord) error {
	if len(records) == 0 {
		return nil
	}

	writes := make([]mongo.WriteModel, 0, len(records))
	for _, rec := range records {
		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"name": rec.Name}).
			SetReplacement(rec).
			SetUpsert(true))
	}

	if _, err := s.coll.BulkWrite(ctx, writes); err != nil {
		return fmt.Errorf("failed to save clients: %w", err)
	}
	return nil
}
