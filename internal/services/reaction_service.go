package services

import (
	"context"
	"time"

	"github.com/Dias221467/Social_Network_API/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReactionService manages the reactions embedded in a thought.
type ReactionService struct {
	thoughts ThoughtStore
}

func NewReactionService(thoughts ThoughtStore) *ReactionService {
	return &ReactionService{thoughts: thoughts}
}

// AddReaction appends a reaction with a fresh id and returns the whole thought.
func (s *ReactionService) AddReaction(ctx context.Context, thoughtID string, reaction models.Reaction) (*models.Thought, error) {
	tid, err := parseID("thought", thoughtID)
	if err != nil {
		return nil, err
	}

	reaction.ReactionID = primitive.NewObjectID()
	reaction.CreatedAt = time.Now()

	thought, err := s.thoughts.PushReaction(ctx, tid, reaction)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"thoughtID":  thoughtID,
		"reactionID": reaction.ReactionID.Hex(),
	}).Info("Reaction added")
	return thought, nil
}

// RemoveReaction pulls the reaction with reactionID. An unknown id leaves the thought as it was.
func (s *ReactionService) RemoveReaction(ctx context.Context, thoughtID, reactionID string) (*models.Thought, error) {
	tid, err := parseID("thought", thoughtID)
	if err != nil {
		return nil, err
	}

	rid, err := primitive.ObjectIDFromHex(reactionID)
	if err != nil {
		return s.thoughts.GetThoughtByID(ctx, tid)
	}
	return s.thoughts.PullReaction(ctx, tid, rid)
}
