package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/vinom-range/domain"
	"github.com/beka-birhanu/vinom-range/grid"
	"github.com/beka-birhanu/vinom-range/service/i"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	writeTimeout = time.Second
	readTimeout  = 2 * time.Second
)

// UserRepo handles the persistence of player accounts.
type UserRepo struct {
	collection *mongo.Collection
}

var _ i.UserRepo = &UserRepo{}

// NewUserRepo creates a new UserRepo with the given MongoDB client, database name, and collection name.
func NewUserRepo(client *mongo.Client, dbName, collectionName string) *UserRepo {
	return &UserRepo{
		collection: client.Database(dbName).Collection(collectionName),
	}
}

// EnsureIndexes creates the unique username index Save relies on to detect conflicts.
func (u *UserRepo) EnsureIndexes(ctx context.Context) error {
	_, err := u.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// Save inserts or updates a user's account fields. The stored origin is
// left to SaveOrigin.
func (u *UserRepo) Save(user *dmn.User) error {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	filter := bson.M{"_id": user.ID}
	update := bson.M{
		"$set": bson.M{
			"username":     user.Username,
			"passwordHash": user.PasswordHash,
			"updatedAt":    time.Now(),
		},
		"$setOnInsert": bson.M{
			"joinedAt": user.JoinedAt,
		},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := u.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return dmn.ErrUsernameTaken
		}
		return fmt.Errorf("saving user %s: %w", user.ID, err)
	}
	return nil
}

// SaveOrigin stores the origin the player currently holds.
func (u *UserRepo) SaveOrigin(id uuid.UUID, origin grid.Coordinate) error {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"lastOrigin": origin, "updatedAt": time.Now()}}
	result, err := u.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("saving origin of %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return dmn.ErrUserNotFound
	}
	return nil
}

// ByID retrieves a user by their ID.
func (u *UserRepo) ByID(id uuid.UUID) (*dmn.User, error) {
	return u.findOne(bson.M{"_id": id})
}

// ByUsername retrieves a user by their username.
func (u *UserRepo) ByUsername(username string) (*dmn.User, error) {
	return u.findOne(bson.M{"username": username})
}

func (u *UserRepo) findOne(filter bson.M) (*dmn.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), readTimeout)
	defer cancel()

	var user dmn.User
	if err := u.collection.FindOne(ctx, filter).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, dmn.ErrUserNotFound
		}
		return nil, fmt.Errorf("finding user: %w", err)
	}
	return &user, nil
}
