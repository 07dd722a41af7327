// Package api provides HTTP handlers for the intake API.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/talentscout/intake/internal/chatlog"
	"github.com/talentscout/intake/internal/engine"
	"github.com/talentscout/intake/internal/store"
)

const privacyNotice = "All candidate data is handled securely and in compliance with privacy standards. No real personal data is stored."

// Handler serves the screening conversation endpoints.
type Handler struct {
	engine  *engine.Engine
	repo    store.Repository
	chatLog *chatlog.Logger
}

// NewHandler creates a new Handler with its dependencies.
func NewHandler(eng *engine.Engine, repo store.Repository, chatLog *chatlog.Logger) *Handler {
	return &Handler{
		engine:  eng,
		repo:    repo,
		chatLog: chatLog,
	}
}

// RegisterRoutes registers the conversation and screening routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat", h.Chat)
	r.Post("/end", h.End)
	r.Get("/privacy", h.Privacy)
	r.Post("/upload_resume", h.UploadResume)
	r.Get("/screenings", h.Screenings)
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}
