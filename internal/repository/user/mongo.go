package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	domain "github.com/Rakesh-Biswal/reminder-service/internal/domain/user"
)

// CollectionName is the MongoDB collection holding account records.
const CollectionName = "users"

// MongoRepository persists accounts in a MongoDB collection.
type MongoRepository struct {
	// collection is the backing MongoDB collection.
	collection *mongo.Collection
}

// NewMongoRepository creates a repository over the users collection of db.
func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{
		collection: db.Collection(CollectionName),
	}
}

// Create inserts a new account, rejecting duplicate emails.
func (r *MongoRepository) Create(ctx context.Context, u *domain.User) error {
	count, err := r.collection.CountDocuments(ctx, bson.M{"email": u.Email})
	if err != nil {
		return fmt.Errorf("check email: %w", err)
	}

	if count > 0 {
		return ErrEmailTaken
	}

	if _, err := r.collection.InsertOne(ctx, u); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}

	return nil
}

// FindByEmail returns the account registered under the email.
func (r *MongoRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	filter := bson.M{"email": strings.ToLower(strings.TrimSpace(email))}

	var u domain.User
	if err := r.collection.FindOne(ctx, filter).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("find user by email: %w", err)
	}

	return &u, nil
}

// FindByID returns the account with the provided identifier.
func (r *MongoRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("find user by id: %w", err)
	}

	return &u, nil
}

// FindNotificationDestination resolves the SMS destination of the account.
func (r *MongoRepository) FindNotificationDestination(ctx context.Context, id string) (string, error) {
	u, err := r.FindByID(ctx, id)
	if err != nil {
		return "", err
	}

	if u.Phone == "" {
		return "", ErrNoDestination
	}

	return u.Phone, nil
}
