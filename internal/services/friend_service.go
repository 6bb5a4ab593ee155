package services

import (
	"context"
	"fmt"

	"github.com/Dias221467/Social_Network_API/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FriendService handles the one-directional friend list of a user.
type FriendService struct {
	users UserStore
}

// NewFriendService creates a new FriendService.
func NewFriendService(users UserStore) *FriendService {
	return &FriendService{users: users}
}

// AddFriend appends friendID to the user's friends. The friend is not looked up
// and an id already present is appended again.
func (s *FriendService) AddFriend(ctx context.Context, userID, friendID string) (*models.User, error) {
	uid, err := parseID("user", userID)
	if err != nil {
		return nil, err
	}
	fid, err := primitive.ObjectIDFromHex(friendID)
	if err != nil {
		return nil, fmt.Errorf("invalid friend id %q: %v", friendID, err)
	}

	user, err := s.users.PushFriend(ctx, uid, fid)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{"userID": userID, "friendID": friendID}).Info("Friend added")
	return user, nil
}

// RemoveFriend drops every occurrence of friendID from the user's friends.
func (s *FriendService) RemoveFriend(ctx context.Context, userID, friendID string) (*models.User, error) {
	uid, err := parseID("user", userID)
	if err != nil {
		return nil, err
	}

	fid, err := primitive.ObjectIDFromHex(friendID)
	if err != nil {
		// nothing stored can match a malformed id
		return s.users.GetUserByID(ctx, uid)
	}

	user, err := s.users.PullFriend(ctx, uid, fid)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{"userID": userID, "friendID": friendID}).Info("Friend removed")
	return user, nil
}
