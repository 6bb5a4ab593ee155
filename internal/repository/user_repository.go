package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dias221467/Social_Network_API/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserRepository handles database operations related to users.
type UserRepository struct {
	collection *mongo.Collection
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		collection: db.Collection("users"),
	}
}

// EnsureIndexes creates the unique username and email indexes.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}
	return nil
}

// CreateUser inserts a new user into the database.
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	user.Normalize()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	result, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		logrus.WithError(err).Error("Failed to insert user into database")
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		logrus.Error("Failed to cast inserted ID to ObjectID")
		return nil, fmt.Errorf("failed to cast inserted ID")
	}
	user.ID = insertedID

	logrus.WithField("userID", user.ID.Hex()).Info("User inserted successfully")
	return user, nil
}

// GetAllUsers returns every stored user in natural order.
func (r *UserRepository) GetAllUsers(ctx context.Context) ([]models.User, error) {
	return r.find(ctx, bson.M{})
}

// GetUserByID retrieves a user by their ID.
func (r *UserRepository) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		return nil, r.notFound(err, id, "find user by id")
	}
	user.Normalize()
	return &user, nil
}

// GetUsersByIDs fetches the users named in ids. Missing ids are skipped.
func (r *UserRepository) GetUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

// UpdateUser applies the fields present in upd and returns the updated document.
func (r *UserRepository) UpdateUser(ctx context.Context, id primitive.ObjectID, upd models.UserUpdate) (*models.User, error) {
	set := bson.M{"updatedAt": time.Now()}
	if upd.Username != nil {
		set["username"] = *upd.Username
	}
	if upd.Email != nil {
		set["email"] = *upd.Email
	}
	if upd.Thoughts != nil {
		set["thoughts"] = models.IDs(upd.Thoughts)
	}
	if upd.Friends != nil {
		set["friends"] = models.IDs(upd.Friends)
	}
	return r.findOneAndUpdate(ctx, id, bson.M{"$set": set}, "update user")
}

// DeleteUser removes a user and returns the deleted document.
func (r *UserRepository) DeleteUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		return nil, r.notFound(err, id, "delete user")
	}

	logrus.WithField("userID", id.Hex()).Info("User deleted successfully")
	return &user, nil
}

// PushFriend appends friendID to the user's friends. Duplicates are kept.
func (r *UserRepository) PushFriend(ctx context.Context, userID, friendID primitive.ObjectID) (*models.User, error) {
	return r.findOneAndUpdate(ctx, userID, bson.M{"$push": bson.M{"friends": friendID}}, "add friend")
}

// PullFriend removes every occurrence of friendID from the user's friends.
func (r *UserRepository) PullFriend(ctx context.Context, userID, friendID primitive.ObjectID) (*models.User, error) {
	return r.findOneAndUpdate(ctx, userID, bson.M{"$pull": bson.M{"friends": friendID}}, "remove friend")
}

// PushThought links a thought to its author.
func (r *UserRepository) PushThought(ctx context.Context, userID, thoughtID primitive.ObjectID) error {
	return r.updateOne(ctx, userID, bson.M{"$push": bson.M{"thoughts": thoughtID}}, "link thought")
}

// PullThought unlinks a thought from its author.
func (r *UserRepository) PullThought(ctx context.Context, userID, thoughtID primitive.ObjectID) error {
	return r.updateOne(ctx, userID, bson.M{"$pull": bson.M{"thoughts": thoughtID}}, "unlink thought")
}

func (r *UserRepository) find(ctx context.Context, filter bson.M) ([]models.User, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	for i := range users {
		users[i].Normalize()
	}
	return users, nil
}

func (r *UserRepository) findOneAndUpdate(ctx context.Context, id primitive.ObjectID, update bson.M, op string) (*models.User, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user models.User
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&user)
	if err != nil {
		return nil, r.notFound(err, id, op)
	}
	user.Normalize()

	logrus.WithFields(logrus.Fields{"userID": id.Hex(), "op": op}).Info("User updated successfully")
	return &user, nil
}

func (r *UserRepository) updateOne(ctx context.Context, id primitive.ObjectID, update bson.M, op string) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		logrus.WithFields(logrus.Fields{"userID": id.Hex(), "op": op, "error": err}).Error("Failed to update user")
		return fmt.Errorf("failed to %s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("failed to %s: user %s: %w", op, id.Hex(), ErrNotFound)
	}
	return nil
}

func (r *UserRepository) notFound(err error, id primitive.ObjectID, op string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("failed to %s: user %s: %w", op, id.Hex(), ErrNotFound)
	}
	logrus.WithFields(logrus.Fields{
		"userID": id.Hex(),
		"op":     op,
		"error":  err,
	}).Error("User query failed")
	return fmt.Errorf("failed to %s: %w", op, err)
}
