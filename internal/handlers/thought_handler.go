package handlers

import (
	"net/http"

	"github.com/Dias221467/Social_Network_API/internal/models"
	"github.com/Dias221467/Social_Network_API/internal/services"
	"github.com/gorilla/mux"
)

type ThoughtHandler struct {
	Service *services.ThoughtService
}

func NewThoughtHandler(service *services.ThoughtService) *ThoughtHandler {
	return &ThoughtHandler{Service: service}
}

func (h *ThoughtHandler) GetThoughtsHandler(w http.ResponseWriter, r *http.Request) {
	thoughts, err := h.Service.GetAllThoughts(r.Context())
	if err != nil {
		writeError(w, r, err, thoughtNotFound)
		return
	}
	writeJSON(w, thoughts)
}

// CreateThoughtHandler creates a thought; the userId field of the body links it to its author.
func (h *ThoughtHandler) CreateThoughtHandler(w http.ResponseWriter, r *http.Request) {
	var thought models.Thought
	if err := decodeBody(r, &thought); err != nil {
		writeError(w, r, err, thoughtNotFound)
		return
	}

	created, err := h.Service.CreateThought(r.Context(), &thought)
	if err != nil {
		writeError(w, r, err, thoughtNotFound)
		return
	}
	writeJSON(w, created)
}

func (h *ThoughtHandler) GetThoughtHandler(w http.ResponseWriter, r *http.Request) {
	thought, err := h.Service.GetThoughtByID(r.Context(), mux.Vars(r)["thoughtId"])
	if err != nil {
		writeError(w, r, err, thoughtNotFound)
		return
	}
	writeJSON(w, thought)
}

func (h *ThoughtHandler) UpdateThoughtHandler(w http.ResponseWriter, r *http.Request) {
	var upd models.ThoughtUpdate
	if err := decodeBody(r, &upd); err != nil {
		writeError(w, r, err, thoughtNotFound)
		return
	}

	thought, err := h.Service.UpdateThought(r.Context(), mux.Vars(r)["thoughtId"], upd)
	if err != nil {
		writeError(w, r, err, thoughtNotFound)
		return
	}
	writeJSON(w, thought)
}

func (h *ThoughtHandler) DeleteThoughtHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteThought(r.Context(), mux.Vars(r)["thoughtId"]); err != nil {
		writeError(w, r, err, thoughtNotFound)
		return
	}
	writeMessage(w, "Thought deleted")
}
