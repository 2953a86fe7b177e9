package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/internal/models"
)

// MongoCartRepository is a MongoDB implementation of CartRepository.
type MongoCartRepository struct {
	collection *mongo.Collection
}

// NewMongoCartRepository creates a new instance of MongoCartRepository.
func NewMongoCartRepository(db *mongo.Database) *MongoCartRepository {
	return &MongoCartRepository{
		collection: db.Collection("carts"),
	}
}

// GetByUserID retrieves the cart owned by an account.
func (r *MongoCartRepository) GetByUserID(ctx context.Context, userID string) (*models.Cart, error) {
	return r.findOne(ctx, bson.M{"userId": userID})
}

// GetByGuestID retrieves the cart owned by an anonymous session.
func (r *MongoCartRepository) GetByGuestID(ctx context.Context, guestID string) (*models.Cart, error) {
	return r.findOne(ctx, bson.M{"guestId": guestID})
}

// GetByOwner retrieves the cart whose user or guest key matches ownerKey.
func (r *MongoCartRepository) GetByOwner(ctx context.Context, ownerKey string) (*models.Cart, error) {
	return r.findOne(ctx, bson.M{"$or": bson.A{
		bson.M{"userId": ownerKey},
		bson.M{"guestId": ownerKey},
	}})
}

func (r *MongoCartRepository) findOne(ctx context.Context, filter bson.M) (*models.Cart, error) {
	var cart models.Cart
	err := r.collection.FindOne(ctx, filter).Decode(&cart)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	return &cart, nil
}

// Upsert writes the full cart document keyed by its owner. Replacing the
// whole item list keeps the write idempotent, so a merge can be replayed.
func (r *MongoCartRepository) Upsert(ctx context.Context, cart *models.Cart) error {
	now := time.Now()
	if cart.CreatedAt.IsZero() {
		cart.CreatedAt = now
	}
	cart.UpdatedAt = now
	if cart.ID == "" {
		cart.ID = uuid.New().String()
	}

	var filter bson.M
	set := bson.M{"items": cart.Items, "updatedAt": cart.UpdatedAt}
	switch {
	case cart.UserID != "":
		filter = bson.M{"userId": cart.UserID}
		set["userId"] = cart.UserID
	case cart.GuestID != "":
		filter = bson.M{"guestId": cart.GuestID}
		set["guestId"] = cart.GuestID
	default:
		return fmt.Errorf("cart has no owner key")
	}

	update := bson.M{"$set": set, "$setOnInsert": bson.M{
		"_id":       cart.ID,
		"createdAt": cart.CreatedAt,
	}}
	opts := options.Update().SetUpsert(true)

	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to upsert cart: %w", err)
	}
	return nil
}

// DeleteByGuestID permanently removes a guest cart.
func (r *MongoCartRepository) DeleteByGuestID(ctx context.Context, guestID string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"guestId": guestID})
	if err != nil {
		return fmt.Errorf("failed to delete guest cart: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrCartNotFound
	}
	return nil
}

// CreateIndexes enforces one cart per owner key. Both indexes are partial
// because every cart document carries only one of the two keys.
func (r *MongoCartRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetUnique(true).
				SetPartialFilterExpression(bson.M{"userId": bson.M{"$exists": true}}),
		},
		{
			Keys: bson.D{{Key: "guestId", Value: 1}},
			Options: options.Index().SetUnique(true).
				SetPartialFilterExpression(bson.M{"guestId": bson.M{"$exists": true}}),
		},
	}

	if _, err := r.collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create cart indexes: %w", err)
	}
	return nil
}
