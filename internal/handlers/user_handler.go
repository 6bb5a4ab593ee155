package handlers

import (
	"net/http"

	"github.com/Dias221467/Social_Network_API/internal/models"
	"github.com/Dias221467/Social_Network_API/internal/services"
	"github.com/gorilla/mux"
)

// UserHandler handles HTTP requests related to users.
type UserHandler struct {
	Service *services.UserService
}

// NewUserHandler creates a new instance of UserHandler.
func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{Service: service}
}

// GetUsersHandler lists every user with thoughts and friends expanded.
func (h *UserHandler) GetUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.GetAllUsers(r.Context())
	if err != nil {
		writeError(w, r, err, userNotFound)
		return
	}
	writeJSON(w, users)
}

// CreateUserHandler creates a user from the request body.
func (h *UserHandler) CreateUserHandler(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := decodeBody(r, &user); err != nil {
		writeError(w, r, err, userNotFound)
		return
	}

	created, err := h.Service.CreateUser(r.Context(), &user)
	if err != nil {
		writeError(w, r, err, userNotFound)
		return
	}
	writeJSON(w, created)
}

// GetUserHandler fetches a single user by id, expanded.
func (h *UserHandler) GetUserHandler(w http.ResponseWriter, r *http.Request) {
	user, err := h.Service.GetUserByID(r.Context(), mux.Vars(r)["userId"])
	if err != nil {
		writeError(w, r, err, userNotFound)
		return
	}
	writeJSON(w, user)
}

// UpdateUserHandler merges the fields present in the body into the user.
func (h *UserHandler) UpdateUserHandler(w http.ResponseWriter, r *http.Request) {
	var upd models.UserUpdate
	if err := decodeBody(r, &upd); err != nil {
		writeError(w, r, err, userNotFound)
		return
	}

	user, err := h.Service.UpdateUser(r.Context(), mux.Vars(r)["userId"], upd)
	if err != nil {
		writeError(w, r, err, userNotFound)
		return
	}
	writeJSON(w, user)
}

// DeleteUserHandler deletes a user and the thoughts posted under its username.
func (h *UserHandler) DeleteUserHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteUser(r.Context(), mux.Vars(r)["userId"]); err != nil {
		writeError(w, r, err, userNotFound)
		return
	}
	writeMessage(w, "User and associated thoughts deleted")
}
