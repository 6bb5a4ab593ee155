package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a member of the social network as stored in the users collection.
type User struct {
	ID        primitive.ObjectID   `json:"_id" bson:"_id,omitempty"`
	Username  string               `json:"username" bson:"username"`
	Email     string               `json:"email" bson:"email"`
	Thoughts  []primitive.ObjectID `json:"thoughts" bson:"thoughts"`
	Friends   []primitive.ObjectID `json:"friends" bson:"friends"`
	CreatedAt time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// UserUpdate carries the fields of a partial user update; nil fields are left untouched.
type UserUpdate struct {
	Username *string                `json:"username"`
	Email    *string                `json:"email"`
	Thoughts *[]primitive.ObjectID `json:"thoughts"`
	Friends  *[]primitive.ObjectID `json:"friends"`
}

// PopulatedUser is a User with its thought and friend references expanded.
type PopulatedUser struct {
	ID        primitive.ObjectID `json:"_id"`
	Username  string             `json:"username"`
	Email     string             `json:"email"`
	Thoughts  []Thought          `json:"thoughts"`
	Friends   []User             `json:"friends"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// IDs dereferences an optional id list, mapping an explicit null to an empty list.
func IDs(ids *[]primitive.ObjectID) []primitive.ObjectID {
	if ids == nil || *ids == nil {
		return []primitive.ObjectID{}
	}
	return *ids
}

// Normalize replaces nil reference slices with empty ones so they encode as [].
func (u *User) Normalize() {
	if u.Thoughts == nil {
		u.Thoughts = []primitive.ObjectID{}
	}
	if u.Friends == nil {
		u.Friends = []primitive.ObjectID{}
	}
}
