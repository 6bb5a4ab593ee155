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

type ThoughtRepository struct {
	collection *mongo.Collection
}

func NewThoughtRepository(db *mongo.Database) *ThoughtRepository {
	return &ThoughtRepository{collection: db.Collection("thoughts")}
}

// EnsureIndexes indexes the owner username used by the user cascade.
func (r *ThoughtRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "username", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create thought indexes: %w", err)
	}
	return nil
}

func (r *ThoughtRepository) CreateThought(ctx context.Context, thought *models.Thought) (*models.Thought, error) {
	thought.Normalize()
	thought.CreatedAt = time.Now()
	thought.UpdatedAt = thought.CreatedAt

	result, err := r.collection.InsertOne(ctx, thought)
	if err != nil {
		logrus.WithError(err).Error("Failed to insert thought")
		return nil, fmt.Errorf("failed to create thought: %w", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("failed to cast inserted ID")
	}
	thought.ID = insertedID

	logrus.WithField("thoughtID", thought.ID.Hex()).Info("Thought created successfully")
	return thought, nil
}

func (r *ThoughtRepository) GetAllThoughts(ctx context.Context) ([]models.Thought, error) {
	return r.find(ctx, bson.M{})
}

func (r *ThoughtRepository) GetThoughtByID(ctx context.Context, id primitive.ObjectID) (*models.Thought, error) {
	var thought models.Thought
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&thought); err != nil {
		return nil, r.notFound(err, id, "get thought")
	}
	thought.Normalize()
	return &thought, nil
}

// GetThoughtsByIDs fetches the thoughts named in ids. Missing ids are skipped.
func (r *ThoughtRepository) GetThoughtsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Thought, error) {
	if len(ids) == 0 {
		return []models.Thought{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

func (r *ThoughtRepository) UpdateThought(ctx context.Context, id primitive.ObjectID, upd models.ThoughtUpdate) (*models.Thought, error) {
	set := bson.M{"updatedAt": time.Now()}
	if upd.ThoughtText != nil {
		set["thoughtText"] = *upd.ThoughtText
	}
	if upd.Username != nil {
		set["username"] = *upd.Username
	}
	if upd.UserID != nil {
		set["userId"] = *upd.UserID
	}
	return r.findOneAndUpdate(ctx, id, bson.M{"$set": set}, "update thought")
}

// DeleteThought removes a thought and returns the deleted document.
func (r *ThoughtRepository) DeleteThought(ctx context.Context, id primitive.ObjectID) (*models.Thought, error) {
	var thought models.Thought
	if err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&thought); err != nil {
		return nil, r.notFound(err, id, "delete thought")
	}

	logrus.WithField("thoughtID", id.Hex()).Info("Thought deleted successfully")
	return &thought, nil
}

// DeleteThoughtsByUsername removes every thought owned by username and reports how many went.
func (r *ThoughtRepository) DeleteThoughtsByUsername(ctx context.Context, username string) (int64, error) {
	res, err := r.collection.DeleteMany(ctx, bson.M{"username": username})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"username": username,
			"error":    err,
		}).Error("Failed to delete thoughts by username")
		return 0, fmt.Errorf("failed to delete thoughts: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"username": username,
		"count":    res.DeletedCount,
	}).Info("Thoughts deleted by username")
	return res.DeletedCount, nil
}

func (r *ThoughtRepository) PushReaction(ctx context.Context, thoughtID primitive.ObjectID, reaction models.Reaction) (*models.Thought, error) {
	return r.findOneAndUpdate(ctx, thoughtID, bson.M{"$push": bson.M{"reactions": reaction}}, "add reaction")
}

func (r *ThoughtRepository) PullReaction(ctx context.Context, thoughtID, reactionID primitive.ObjectID) (*models.Thought, error) {
	update := bson.M{"$pull": bson.M{"reactions": bson.M{"reactionId": reactionID}}}
	return r.findOneAndUpdate(ctx, thoughtID, update, "remove reaction")
}

func (r *ThoughtRepository) find(ctx context.Context, filter bson.M) ([]models.Thought, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get thoughts: %w", err)
	}
	defer cursor.Close(ctx)

	thoughts := []models.Thought{}
	if err := cursor.All(ctx, &thoughts); err != nil {
		return nil, fmt.Errorf("failed to decode thoughts: %w", err)
	}
	for i := range thoughts {
		thoughts[i].Normalize()
	}
	return thoughts, nil
}

func (r *ThoughtRepository) findOneAndUpdate(ctx context.Context, id primitive.ObjectID, update bson.M, op string) (*models.Thought, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var thought models.Thought
	if err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&thought); err != nil {
		return nil, r.notFound(err, id, op)
	}
	thought.Normalize()
	return &thought, nil
}

func (r *ThoughtRepository) notFound(err error, id primitive.ObjectID, op string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("failed to %s: thought %s: %w", op, id.Hex(), ErrNotFound)
	}
	logrus.WithError(err).WithField("thoughtID", id.Hex()).Error("Thought query failed")
	return fmt.Errorf("failed to %s: %w", op, err)
}
