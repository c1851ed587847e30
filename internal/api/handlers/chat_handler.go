package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/Ayu2427/Personal-doctor/internal/domain/entities"
)

// Diagnoser is the diagnosis service surface the chat handler needs
type Diagnoser interface {
	Diagnose(ctx context.Context, message, location string) (*entities.Diagnosis, error)
}

// ChatHandler handles the diagnosis endpoint
type ChatHandler struct {
	diagnosis Diagnoser
}

// NewChatHandler creates a new chat handler
func NewChatHandler(diagnosis Diagnoser) *ChatHandler {
	return &ChatHandler{diagnosis: diagnosis}
}

type chatRequest struct {
	Message  string `json:"message"`
	Location string `json:"location"`
}

// Chat handles POST /chat_api
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.diagnosis.Diagnose(r.Context(), req.Message, req.Location)
	if err != nil {
		// Raw error text stays server-side; the client only sees a
		// structured error code.
		log.Error().Err(err).Msg("diagnosis request failed")
		respondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}
