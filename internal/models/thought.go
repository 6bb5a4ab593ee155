package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Thought is a post authored by a user. Reactions live inside it.
type Thought struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	ThoughtText string             `json:"thoughtText" bson:"thoughtText"`
	Username    string             `json:"username" bson:"username"`
	UserID      primitive.ObjectID `json:"userId" bson:"userId"`
	Reactions   []Reaction         `json:"reactions" bson:"reactions"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// Reaction is identified only within its parent thought.
type Reaction struct {
	ReactionID   primitive.ObjectID `json:"reactionId" bson:"reactionId"`
	ReactionBody string             `json:"reactionBody" bson:"reactionBody"`
	Username     string             `json:"username" bson:"username"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
}

type ThoughtUpdate struct {
	ThoughtText *string             `json:"thoughtText"`
	Username    *string             `json:"username"`
	UserID      *primitive.ObjectID `json:"userId"`
}

func (t *Thought) Normalize() {
	if t.Reactions == nil {
		t.Reactions = []Reaction{}
	}
}
