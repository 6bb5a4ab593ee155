package services

import (
	"context"
	"time"

	"github.com/Dias221467/Social_Network_API/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ThoughtService struct {
	thoughts ThoughtStore
	users    UserStore
}

func NewThoughtService(thoughts ThoughtStore, users UserStore) *ThoughtService {
	return &ThoughtService{
		thoughts: thoughts,
		users:    users,
	}
}

func (s *ThoughtService) GetAllThoughts(ctx context.Context) ([]models.Thought, error) {
	return s.thoughts.GetAllThoughts(ctx)
}

// CreateThought stores the thought and then links it to thought.UserID.
// Reactions sent with the thought are kept and stamped like added ones.
// The link step is best-effort: its failure is logged and the created thought is returned anyway.
func (s *ThoughtService) CreateThought(ctx context.Context, thought *models.Thought) (*models.Thought, error) {
	thought.ID = primitive.NilObjectID
	now := time.Now()
	for i := range thought.Reactions {
		thought.Reactions[i].ReactionID = primitive.NewObjectID()
		thought.Reactions[i].CreatedAt = now
	}

	created, err := s.thoughts.CreateThought(ctx, thought)
	if err != nil {
		return nil, err
	}

	if created.UserID.IsZero() {
		logrus.WithField("thoughtID", created.ID.Hex()).Warn("Thought created without userId, not linked")
		return created, nil
	}

	if err := s.users.PushThought(ctx, created.UserID, created.ID); err != nil {
		logrus.WithFields(logrus.Fields{
			"thoughtID": created.ID.Hex(),
			"userID":    created.UserID.Hex(),
			"error":     err,
		}).Warn("Failed to link thought to user")
	}
	return created, nil
}

func (s *ThoughtService) GetThoughtByID(ctx context.Context, id string) (*models.Thought, error) {
	thoughtID, err := parseID("thought", id)
	if err != nil {
		return nil, err
	}
	return s.thoughts.GetThoughtByID(ctx, thoughtID)
}

func (s *ThoughtService) UpdateThought(ctx context.Context, id string, upd models.ThoughtUpdate) (*models.Thought, error) {
	thoughtID, err := parseID("thought", id)
	if err != nil {
		return nil, err
	}
	return s.thoughts.UpdateThought(ctx, thoughtID, upd)
}

// DeleteThought removes the thought and then unlinks it from its stored owner.
// The unlink step is best-effort and never reported.
func (s *ThoughtService) DeleteThought(ctx context.Context, id string) error {
	thoughtID, err := parseID("thought", id)
	if err != nil {
		return err
	}

	deleted, err := s.thoughts.DeleteThought(ctx, thoughtID)
	if err != nil {
		return err
	}

	if deleted.UserID.IsZero() {
		return nil
	}
	if err := s.users.PullThought(ctx, deleted.UserID, deleted.ID); err != nil {
		logrus.WithFields(logrus.Fields{
			"thoughtID": id,
			"userID":    deleted.UserID.Hex(),
			"error":     err,
		}).Warn("Failed to unlink thought from user")
	}
	return nil
}
