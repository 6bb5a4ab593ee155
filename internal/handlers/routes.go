package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRoutes mounts the user, friend, thought and reaction endpoints on r.
func RegisterRoutes(r *mux.Router, users *UserHandler, friends *FriendHandler, thoughts *ThoughtHandler, reactions *ReactionHandler) {
	// User routes
	r.HandleFunc("/users", users.GetUsersHandler).Methods("GET")
	r.HandleFunc("/users", users.CreateUserHandler).Methods("POST")
	r.HandleFunc("/users/{userId}", users.GetUserHandler).Methods("GET")
	r.HandleFunc("/users/{userId}", users.UpdateUserHandler).Methods("PUT")
	r.HandleFunc("/users/{userId}", users.DeleteUserHandler).Methods("DELETE")

	// Friend routes
	r.HandleFunc("/users/{userId}/friends/{friendId}", friends.AddFriendHandler).Methods("POST")
	r.HandleFunc("/users/{userId}/friends/{friendId}", friends.RemoveFriendHandler).Methods("DELETE")

	// Thought routes
	r.HandleFunc("/thoughts", thoughts.GetThoughtsHandler).Methods("GET")
	r.HandleFunc("/thoughts", thoughts.CreateThoughtHandler).Methods("POST")
	r.HandleFunc("/thoughts/{thoughtId}", thoughts.GetThoughtHandler).Methods("GET")
	r.HandleFunc("/thoughts/{thoughtId}", thoughts.UpdateThoughtHandler).Methods("PUT")
	r.HandleFunc("/thoughts/{thoughtId}", thoughts.DeleteThoughtHandler).Methods("DELETE")

	// Reaction routes
	r.HandleFunc("/thoughts/{thoughtId}/reactions", reactions.AddReactionHandler).Methods("POST")
	r.HandleFunc("/thoughts/{thoughtId}/reactions/{reactionId}", reactions.RemoveReactionHandler).Methods("DELETE")
}

// HealthHandler reports liveness.
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}
