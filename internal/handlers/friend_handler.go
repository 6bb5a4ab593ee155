package handlers

import (
	"net/http"

	"github.com/Dias221467/Social_Network_API/internal/services"
	"github.com/gorilla/mux"
)

// FriendHandler manages HTTP endpoints for a user's friend list.
type FriendHandler struct {
	Service *services.FriendService
}

// NewFriendHandler initializes a new FriendHandler.
func NewFriendHandler(service *services.FriendService) *FriendHandler {
	return &FriendHandler{Service: service}
}

// AddFriendHandler appends friendId to the friends of userId.
func (h *FriendHandler) AddFriendHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	user, err := h.Service.AddFriend(r.Context(), vars["userId"], vars["friendId"])
	if err != nil {
		writeError(w, r, err, userNotFound)
		return
	}
	writeJSON(w, user)
}

// RemoveFriendHandler removes friendId from the friends of userId.
func (h *FriendHandler) RemoveFriendHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	user, err := h.Service.RemoveFriend(r.Context(), vars["userId"], vars["friendId"])
	if err != nil {
		writeError(w, r, err, userNotFound)
		return
	}
	writeJSON(w, user)
}
