package services

import (
	"context"
	"fmt"

	"github.com/Dias221467/Social_Network_API/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserService encapsulates the business logic for user operations.
type UserService struct {
	users    UserStore
	thoughts ThoughtStore
}

// NewUserService creates a new instance of UserService.
func NewUserService(users UserStore, thoughts ThoughtStore) *UserService {
	return &UserService{
		users:    users,
		thoughts: thoughts,
	}
}

// GetAllUsers returns every user with thoughts and friends expanded.
func (s *UserService) GetAllUsers(ctx context.Context) ([]models.PopulatedUser, error) {
	users, err := s.users.GetAllUsers(ctx)
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, users)
}

// CreateUser stores a new user. Thoughts and friends default to empty lists.
func (s *UserService) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	user.ID = primitive.NilObjectID
	user.Normalize()

	created, err := s.users.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"userID":   created.ID.Hex(),
		"username": created.Username,
	}).Info("User created")
	return created, nil
}

// GetUserByID returns one user with thoughts and friends expanded.
func (s *UserService) GetUserByID(ctx context.Context, id string) (*models.PopulatedUser, error) {
	userID, err := parseID("user", id)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	populated, err := s.populate(ctx, []models.User{*user})
	if err != nil {
		return nil, err
	}
	return &populated[0], nil
}

// UpdateUser merges the present fields of upd into the user.
func (s *UserService) UpdateUser(ctx context.Context, id string, upd models.UserUpdate) (*models.User, error) {
	userID, err := parseID("user", id)
	if err != nil {
		return nil, err
	}
	return s.users.UpdateUser(ctx, userID, upd)
}

// DeleteUser removes the user and then every thought carrying its username.
// The user stays deleted when the cascade fails.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	userID, err := parseID("user", id)
	if err != nil {
		return err
	}

	deleted, err := s.users.DeleteUser(ctx, userID)
	if err != nil {
		return err
	}

	count, err := s.thoughts.DeleteThoughtsByUsername(ctx, deleted.Username)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"userID":   id,
			"username": deleted.Username,
			"error":    err,
		}).Error("User deleted but thought cascade failed")
		return fmt.Errorf("cascade delete for %s: %w", deleted.Username, err)
	}

	logrus.WithFields(logrus.Fields{
		"userID":   id,
		"username": deleted.Username,
		"thoughts": count,
	}).Info("User and associated thoughts deleted")
	return nil
}

// populate resolves thought and friend references with one batched lookup each.
// References that no longer resolve are dropped; order and duplicates are kept.
func (s *UserService) populate(ctx context.Context, users []models.User) ([]models.PopulatedUser, error) {
	var thoughtIDs, friendIDs []primitive.ObjectID
	for _, u := range users {
		thoughtIDs = append(thoughtIDs, u.Thoughts...)
		friendIDs = append(friendIDs, u.Friends...)
	}

	thoughts, err := s.thoughts.GetThoughtsByIDs(ctx, thoughtIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to expand thoughts: %w", err)
	}
	friends, err := s.users.GetUsersByIDs(ctx, friendIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to expand friends: %w", err)
	}

	thoughtByID := make(map[primitive.ObjectID]models.Thought, len(thoughts))
	for _, t := range thoughts {
		thoughtByID[t.ID] = t
	}
	friendByID := make(map[primitive.ObjectID]models.User, len(friends))
	for _, f := range friends {
		friendByID[f.ID] = f
	}

	out := make([]models.PopulatedUser, 0, len(users))
	for _, u := range users {
		p := models.PopulatedUser{
			ID:        u.ID,
			Username:  u.Username,
			Email:     u.Email,
			Thoughts:  []models.Thought{},
			Friends:   []models.User{},
			CreatedAt: u.CreatedAt,
			UpdatedAt: u.UpdatedAt,
		}
		for _, id := range u.Thoughts {
			if t, ok := thoughtByID[id]; ok {
				p.Thoughts = append(p.Thoughts, t)
			}
		}
		for _, id := range u.Friends {
			if f, ok := friendByID[id]; ok {
				p.Friends = append(p.Friends, f)
			}
		}
		out = append(out, p)
	}
	return out, nil
}
