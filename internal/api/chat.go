package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/talentscout/intake/internal/chatlog"
	"github.com/talentscout/intake/internal/engine"
)

// chatRequest is the inbound message shape. Message is usually a string, but
// the frontend sends the tech-stack selection as a list; both are accepted.
type chatRequest struct {
	Message   json.RawMessage `json:"message"`
	SessionID string          `json:"session_id"`
}

func (req *chatRequest) messageText() (string, bool) {
	if len(req.Message) == 0 {
		return "", true
	}

	var text string
	if err := json.Unmarshal(req.Message, &text); err == nil {
		return text, true
	}

	var list []string
	if err := json.Unmarshal(req.Message, &list); err == nil {
		return strings.Join(list, ", "), true
	}

	return "", false
}

// Chat processes one conversation turn.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	message, ok := req.messageText()
	if !ok {
		Error(w, http.StatusBadRequest, "message must be a string or a list of strings")
		return
	}

	reply := h.engine.HandleMessage(r.Context(), req.SessionID, message)
	h.logTurn(reply, message)

	JSON(w, http.StatusOK, reply)
}

// End terminates a conversation explicitly.
func (h *Handler) End(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	reply := h.engine.End(r.Context(), req.SessionID)
	h.logTurn(reply, "")

	JSON(w, http.StatusOK, reply)
}

// Privacy returns the data-handling notice.
func (h *Handler) Privacy(w http.ResponseWriter, _ *http.Request) {
	JSON(w, http.StatusOK, map[string]string{"notice": privacyNotice})
}

// Screenings lists persisted screening records, newest first.
func (h *Handler) Screenings(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			Error(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	records, err := h.repo.ListScreenings(r.Context(), limit)
	if err != nil {
		Error(w, http.StatusInternalServerError, "failed to list screenings")
		return
	}

	JSON(w, http.StatusOK, map[string]interface{}{
		"screenings": records,
		"count":      len(records),
	})
}

func (h *Handler) logTurn(reply *engine.Reply, inbound string) {
	if inbound != "" {
		h.chatLog.Log(chatlog.Event{
			SessionID: reply.SessionID,
			Direction: "inbound",
			Stage:     string(reply.Next),
			Content:   inbound,
		})
	}
	h.chatLog.Log(chatlog.Event{
		SessionID: reply.SessionID,
		Direction: "outbound",
		Stage:     string(reply.Next),
		Content:   reply.Response,
		Submit:    reply.Submit,
	})
}
