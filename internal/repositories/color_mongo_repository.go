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

// MongoColorRepository is a MongoDB implementation of ColorRepository.
type MongoColorRepository struct {
	collection *mongo.Collection
}

// NewMongoColorRepository creates a new instance of MongoColorRepository.
func NewMongoColorRepository(db *mongo.Database) *MongoColorRepository {
	return &MongoColorRepository{
		collection: db.Collection("colors"),
	}
}

// GetAll lists every color.
func (r *MongoColorRepository) GetAll(ctx context.Context) ([]models.Color, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list colors: %w", err)
	}
	defer cursor.Close(ctx)

	var colors []models.Color
	if err := cursor.All(ctx, &colors); err != nil {
		return nil, fmt.Errorf("failed to decode colors: %w", err)
	}
	return colors, nil
}

// GetByName retrieves a color by its unique name.
func (r *MongoColorRepository) GetByName(ctx context.Context, name string) (*models.Color, error) {
	var color models.Color
	err := r.collection.FindOne(ctx, bson.M{"name": name}).Decode(&color)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrColorNotFound
		}
		return nil, fmt.Errorf("failed to get color: %w", err)
	}
	return &color, nil
}

// Create inserts a new color document.
func (r *MongoColorRepository) Create(ctx context.Context, color *models.Color) error {
	if color.ID == "" {
		color.ID = uuid.New().String()
	}
	now := time.Now()
	color.CreatedAt = now
	color.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, color); err != nil {
		return fmt.Errorf("failed to create color: %w", err)
	}
	return nil
}

// Delete removes a color by its id.
func (r *MongoColorRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("failed to delete color: %w", err)
	}
	return nil
}

// CreateIndexes enforces unique color names.
func (r *MongoColorRepository) CreateIndexes(ctx context.Context) error {
	index := mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := r.collection.Indexes().CreateOne(ctx, index); err != nil {
		return fmt.Errorf("failed to create color indexes: %w", err)
	}
	return nil
}
