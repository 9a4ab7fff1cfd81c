package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"itemvault/internal/model"
)

// Items is the mongo-backed item repository.
type Items struct {
	col *mongo.Collection
}

// NewItems returns an item repository over the given database.
func NewItems(db *mongo.Database) *Items {
	return &Items{col: db.Collection(itemCollection)}
}

// List returns one page of items, newest first, plus the total count.
func (s *Items) List(ctx context.Context, skip, limit int64) ([]model.Item, int64, error) {
	total, err := s.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("counting items: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)
	cursor, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("listing items: %w", err)
	}
	defer cursor.Close(ctx)

	var items []model.Item
	if err := cursor.All(ctx, &items); err != nil {
		return nil, 0, fmt.Errorf("decoding items: %w", err)
	}
	return items, total, nil
}

// Create inserts a new item and returns its store-assigned identifier.
func (s *Items) Create(ctx context.Context, item model.Item) (primitive.ObjectID, error) {
	res, err := s.col.InsertOne(ctx, item)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("creating item: %w", err)
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}

// Get returns an item by id, or nil when no document matches.
func (s *Items) Get(ctx context.Context, id primitive.ObjectID) (*model.Item, error) {
	var item model.Item
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return &item, nil
}

// Update applies a field-scoped $set and reports whether a document matched.
func (s *Items) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (bool, error) {
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return false, fmt.Errorf("updating item: %w", err)
	}
	return res.MatchedCount > 0, nil
}

// Delete removes an item and reports whether a document matched.
func (s *Items) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("deleting item: %w", err)
	}
	return res.DeletedCount > 0, nil
}
