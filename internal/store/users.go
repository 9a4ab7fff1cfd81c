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

// noPassword excludes the password hash from a read. Every read path uses it
// except the credential lookup for login.
var noPassword = bson.M{"password": 0}

// Users is the mongo-backed user repository.
type Users struct {
	col *mongo.Collection
}

// NewUsers returns a user repository over the given database.
func NewUsers(db *mongo.Database) *Users {
	return &Users{col: db.Collection(userCollection)}
}

// List returns one page of users, newest first, plus the total count.
// Password hashes are excluded by projection.
func (s *Users) List(ctx context.Context, skip, limit int64) ([]model.User, int64, error) {
	total, err := s.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("counting users: %w", err)
	}

	opts := options.Find().
		SetProjection(noPassword).
		SetSort(bson.D{{Key: "_id", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)
	cursor, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("listing users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []model.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, 0, fmt.Errorf("decoding users: %w", err)
	}
	return users, total, nil
}

// Create inserts a new user and returns its store-assigned identifier.
// A unique-index violation on email or username comes back as the raw driver
// error for the caller to classify.
func (s *Users) Create(ctx context.Context, user model.User) (primitive.ObjectID, error) {
	res, err := s.col.InsertOne(ctx, user)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("creating user: %w", err)
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}

// Get returns a user by id sans password, or nil when no document matches.
func (s *Users) Get(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	return s.findOne(ctx, bson.M{"_id": id}, options.FindOne().SetProjection(noPassword))
}

// GetByEmail returns a user by email sans password, or nil when no document
// matches.
func (s *Users) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.findOne(ctx, bson.M{"email": email}, options.FindOne().SetProjection(noPassword))
}

// GetByEmailWithPassword returns a user by email including the password
// hash. Only the login credential check reads this.
func (s *Users) GetByEmailWithPassword(ctx context.Context, email string) (*model.User, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

func (s *Users) findOne(ctx context.Context, filter bson.M, opts ...*options.FindOneOptions) (*model.User, error) {
	var user model.User
	err := s.col.FindOne(ctx, filter, opts...).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return &user, nil
}

// Update applies a field-scoped $set and reports whether a document matched.
func (s *Users) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (bool, error) {
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return false, fmt.Errorf("updating user: %w", err)
	}
	return res.MatchedCount > 0, nil
}

// UpdateByEmail applies a field-scoped $set to the user with the given email
// and reports whether a document matched.
func (s *Users) UpdateByEmail(ctx context.Context, email string, fields bson.M) (bool, error) {
	res, err := s.col.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": fields})
	if err != nil {
		return false, fmt.Errorf("updating user by email: %w", err)
	}
	return res.MatchedCount > 0, nil
}

// Delete removes a user and reports whether a document matched.
func (s *Users) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("deleting user: %w", err)
	}
	return res.DeletedCount > 0, nil
}
