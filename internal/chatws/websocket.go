// Package chatws serves the screening conversation over a WebSocket, for
// frontends that prefer a persistent connection to polling POST /chat.
package chatws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/coder/websocket"
	"github.com/talentscout/intake/internal/chatlog"
	"github.com/talentscout/intake/internal/engine"
)

// Handler upgrades chat connections and relays turns to the dialogue engine.
type Handler struct {
	engine        *engine.Engine
	chatLog       *chatlog.Logger
	allowedOrigin string
	isDev         bool
}

// NewHandler creates a new WebSocket chat handler.
func NewHandler(eng *engine.Engine, chatLog *chatlog.Logger, allowedOrigin string, isDev bool) *Handler {
	return &Handler{
		engine:        eng,
		chatLog:       chatLog,
		allowedOrigin: allowedOrigin,
		isDev:         isDev,
	}
}

// wsMessage is one inbound frame. Message is usually a string; the tech-stack
// selection arrives as a list and is joined before dispatch.
type wsMessage struct {
	Type      string          `json:"type,omitempty"`
	Message   json.RawMessage `json:"message,omitempty"`
	SessionID string          `json:"session_id,omitempty"`
}

func (m *wsMessage) messageText() (string, bool) {
	if len(m.Message) == 0 {
		return "", true
	}

	var text string
	if err := json.Unmarshal(m.Message, &text); err == nil {
		return text, true
	}

	var list []string
	if err := json.Unmarshal(m.Message, &list); err == nil {
		return strings.Join(list, ", "), true
	}

	return "", false
}

// ServeHTTP implements http.Handler for WebSocket upgrade.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	slog.Info("WebSocket chat connection request", "ip", r.RemoteAddr)

	if !h.checkOrigin(r) {
		http.Error(w, "origin not allowed", http.StatusForbidden)
		return
	}

	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		slog.Error("Failed to accept WebSocket", "error", err)
		return
	}
	defer func() {
		if closeErr := ws.Close(websocket.StatusNormalClosure, "conversation ended"); closeErr != nil {
			slog.Debug("Failed to close websocket", "error", closeErr)
		}
	}()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	h.readLoop(ctx, ws)
}

// readLoop pumps frames until the client disconnects or the screening
// completes. The session id from the first reply is reused for every later
// frame, so clients may omit it after the opening message.
func (h *Handler) readLoop(ctx context.Context, ws *websocket.Conn) {
	var sessionID string

	for {
		_, raw, err := ws.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) != -1 {
				slog.Debug("WebSocket closed by client", "session_id", sessionID)
			} else {
				slog.Warn("WebSocket read error", "error", err, "session_id", sessionID)
			}
			return
		}

		var msg wsMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			if err := h.writeJSON(ctx, ws, map[string]string{"error": "invalid_frame"}); err != nil {
				return
			}
			continue
		}

		if msg.Type == "ping" {
			if err := h.writeJSON(ctx, ws, map[string]string{"type": "pong"}); err != nil {
				return
			}
			continue
		}

		text, ok := msg.messageText()
		if !ok {
			if err := h.writeJSON(ctx, ws, map[string]string{"error": "invalid_message"}); err != nil {
				return
			}
			continue
		}
		if msg.SessionID != "" {
			sessionID = msg.SessionID
		}

		var reply *engine.Reply
		if msg.Type == "end" {
			reply = h.engine.End(ctx, sessionID)
		} else {
			reply = h.engine.HandleMessage(ctx, sessionID, text)
		}
		sessionID = reply.SessionID
		h.logTurn(reply, text)

		if err := h.writeJSON(ctx, ws, reply); err != nil {
			slog.Warn("WebSocket write error", "error", err, "session_id", sessionID)
			return
		}

		if reply.Submit {
			slog.Info("Screening complete, closing WebSocket", "session_id", sessionID)
			return
		}
	}
}

func (h *Handler) checkOrigin(r *http.Request) bool {
	if h.isDev {
		return true
	}
	origin := r.Header.Get("Origin")
	if origin == "" || h.allowedOrigin == "*" {
		return true
	}
	if origin == h.allowedOrigin {
		return true
	}
	slog.Warn("WebSocket origin rejected", "origin", origin, "allowed", h.allowedOrigin)
	return false
}

func (h *Handler) writeJSON(ctx context.Context, ws *websocket.Conn, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return ws.Write(ctx, websocket.MessageText, data)
}

func (h *Handler) logTurn(reply *engine.Reply, inbound string) {
	if h.chatLog == nil {
		return
	}
	h.chatLog.Log(chatlog.Event{
		SessionID: reply.SessionID,
		Direction: "inbound",
		Stage:     string(reply.Next),
		Content:   inbound,
	})
	h.chatLog.Log(chatlog.Event{
		SessionID: reply.SessionID,
		Direction: "outbound",
		Stage:     string(reply.Next),
		Content:   reply.Response,
		Submit:    reply.Submit,
	})
}
