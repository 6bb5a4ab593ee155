package services

import (
	"context"
	"fmt"

	"github.com/Dias221467/Social_Network_API/internal/models"
	"github.com/Dias221467/Social_Network_API/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserStore is satisfied by repository.UserRepository and memory.UserRepository.
// Lookups by id return an error wrapping repository.ErrNotFound when the user is absent.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]models.User, error)
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error)
	UpdateUser(ctx context.Context, id primitive.ObjectID, upd models.UserUpdate) (*models.User, error)
	DeleteUser(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	PushFriend(ctx context.Context, userID, friendID primitive.ObjectID) (*models.User, error)
	PullFriend(ctx context.Context, userID, friendID primitive.ObjectID) (*models.User, error)
	PushThought(ctx context.Context, userID, thoughtID primitive.ObjectID) error
	PullThought(ctx context.Context, userID, thoughtID primitive.ObjectID) error
}

// ThoughtStore is satisfied by repository.ThoughtRepository and memory.ThoughtRepository.
type ThoughtStore interface {
	CreateThought(ctx context.Context, thought *models.Thought) (*models.Thought, error)
	GetAllThoughts(ctx context.Context) ([]models.Thought, error)
	GetThoughtByID(ctx context.Context, id primitive.ObjectID) (*models.Thought, error)
	GetThoughtsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Thought, error)
	UpdateThought(ctx context.Context, id primitive.ObjectID, upd models.ThoughtUpdate) (*models.Thought, error)
	DeleteThought(ctx context.Context, id primitive.ObjectID) (*models.Thought, error)
	DeleteThoughtsByUsername(ctx context.Context, username string) (int64, error)
	PushReaction(ctx context.Context, thoughtID primitive.ObjectID, reaction models.Reaction) (*models.Thought, error)
	PullReaction(ctx context.Context, thoughtID, reactionID primitive.ObjectID) (*models.Thought, error)
}

// parseID converts a path id. A malformed id cannot name a stored document, so it reads as not found.
func parseID(kind, hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("invalid %s id %q: %w", kind, hex, repository.ErrNotFound)
	}
	return id, nil
}
