package handlers

import (
	"net/http"

	"github.com/Dias221467/Social_Network_API/internal/models"
	"github.com/Dias221467/Social_Network_API/internal/services"
	"github.com/gorilla/mux"
)

type ReactionHandler struct {
	Service *services.ReactionService
}

func NewReactionHandler(service *services.ReactionService) *ReactionHandler {
	return &ReactionHandler{Service: service}
}

// AddReactionHandler appends the body as a reaction and responds with the whole thought.
func (h *ReactionHandler) AddReactionHandler(w http.ResponseWriter, r *http.Request) {
	var reaction models.Reaction
	if err := decodeBody(r, &reaction); err != nil {
		writeError(w, r, err, thoughtNotFound)
		return
	}

	thought, err := h.Service.AddReaction(r.Context(), mux.Vars(r)["thoughtId"], reaction)
	if err != nil {
		writeError(w, r, err, thoughtNotFound)
		return
	}
	writeJSON(w, thought)
}

func (h *ReactionHandler) RemoveReactionHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	thought, err := h.Service.RemoveReaction(r.Context(), vars["thoughtId"], vars["reactionId"])
	if err != nil {
		writeError(w, r, err, thoughtNotFound)
		return
	}
	writeJSON(w, thought)
}
