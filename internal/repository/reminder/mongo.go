package reminder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domain "github.com/Rakesh-Biswal/reminder-service/internal/domain/reminder"
)

// CollectionName is the MongoDB collection holding reminder records.
const CollectionName = "reminders"

// MongoRepository persists reminders in a MongoDB collection.
type MongoRepository struct {
	// collection is the backing MongoDB collection.
	collection *mongo.Collection
}

// NewMongoRepository creates a repository over the reminders collection of db.
func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{
		collection: db.Collection(CollectionName),
	}
}

// Create inserts a new reminder record.
func (r *MongoRepository) Create(ctx context.Context, rec *domain.Reminder) error {
	if _, err := r.collection.InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("insert reminder: %w", err)
	}

	return nil
}

// Get returns the reminder with the provided identifier scoped to its owner.
func (r *MongoRepository) Get(ctx context.Context, id, ownerID string) (*domain.Reminder, error) {
	filter := bson.M{"_id": id, "owner_id": ownerID}

	var rec domain.Reminder
	if err := r.collection.FindOne(ctx, filter).Decode(&rec); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("find reminder: %w", err)
	}

	return &rec, nil
}

// ListByOwner returns all reminders of the owner, newest first.
func (r *MongoRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Reminder, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}

	var records []domain.Reminder
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode reminders: %w", err)
	}

	return records, nil
}

// Update replaces the stored record, scoped to its owner.
func (r *MongoRepository) Update(ctx context.Context, rec *domain.Reminder) error {
	filter := bson.M{"_id": rec.ID, "owner_id": rec.OwnerID}

	result, err := r.collection.ReplaceOne(ctx, filter, rec)
	if err != nil {
		return fmt.Errorf("update reminder: %w", err)
	}

	if result.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes the reminder with the provided identifier scoped to its owner.
func (r *MongoRepository) Delete(ctx context.Context, id, ownerID string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "owner_id": ownerID})
	if err != nil {
		return fmt.Errorf("delete reminder: %w", err)
	}

	if result.DeletedCount == 0 {
		return ErrNotFound
	}

	return nil
}

// FindExpiredActive returns reminders that are still active with an expiry
// instant at or before now, ordered by creation instant for reproducible sweeps.
func (r *MongoRepository) FindExpiredActive(ctx context.Context, now time.Time) ([]domain.Reminder, error) {
	filter := bson.M{
		"status":     domain.StatusActive,
		"expires_at": bson.M{"$lte": now.UTC()},
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find expired active reminders: %w", err)
	}

	var records []domain.Reminder
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode expired active reminders: %w", err)
	}

	return records, nil
}

// MarkExpired flips the record to expired if it is still active.
// Returns false when no active record with the identifier exists,
// which callers treat as a benign no-op.
func (r *MongoRepository) MarkExpired(ctx context.Context, id string, now time.Time) (bool, error) {
	filter := bson.M{"_id": id, "status": domain.StatusActive}
	update := bson.M{"$set": bson.M{
		"status":     domain.StatusExpired,
		"updated_at": now.UTC(),
	}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("mark reminder expired: %w", err)
	}

	return result.ModifiedCount > 0, nil
}

// CountExpired returns how many reminders are currently in status expired.
func (r *MongoRepository) CountExpired(ctx context.Context) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"status": domain.StatusExpired})
	if err != nil {
		return 0, fmt.Errorf("count expired reminders: %w", err)
	}

	return count, nil
}
