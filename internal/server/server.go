// Package server exposes the coach service over HTTP: the chat endpoint plus
// conversation-history list and detail.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/pennyplan/coach-go/internal/chat"
	"github.com/pennyplan/coach-go/internal/db"
	"github.com/pennyplan/coach-go/internal/guard"
	"github.com/pennyplan/coach-go/internal/logger"
)

const (
	defaultUserID = "demo-user"
	titleFallback = "New conversation"
	titleMaxLen   = 60
)

// Responder produces the assistant reply for a user message with context.
type Responder interface {
	Respond(ctx context.Context, history []chat.Turn, userText string) (string, error)
}

// Validator runs guardrail checks on incoming user text.
type Validator interface {
	Validate(ctx context.Context, userText string) error
}

// Handler serves the coach API.
type Handler struct {
	db        *db.Database
	responder Responder
	guard     Validator
	now       func() time.Time
}

func New(database *db.Database, responder Responder, guard Validator) *Handler {
	return &Handler{db: database, responder: responder, guard: guard, now: time.Now}
}

// Register mounts all routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/chat", h.handleChat)
	mux.HandleFunc("GET /api/history", h.handleHistory)
	mux.HandleFunc("GET /api/history/{convoId}", h.handleConversation)
}

type chatRequest struct {
	History  []chat.Turn `json:"history"`
	UserText string      `json:"user_text"`
	ConvoID  string      `json:"convoId"`
	UserID   string      `json:"userId"`
}

type chatResponse struct {
	BotReply string `json:"bot_reply"`
	ConvoID  string `json:"convoId"`
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.UserID == "" {
		req.UserID = defaultUserID
	}

	nowMs := h.now().UnixMilli()
	convoID := req.ConvoID
	if convoID == "" {
		convoID = uuid.NewString()
		if err := h.db.SaveConversationStart(convoID, req.UserID, nowMs); err != nil {
			logger.L.Error("failed to record conversation start", "convoId", convoID, "error", err)
			h.internalError(w, convoID)
			return
		}
	}

	h.persist(convoID, "user", req.UserText)

	if err := h.guard.Validate(r.Context(), req.UserText); err != nil {
		var rej *guard.RejectionError
		if errors.As(err, &rej) {
			h.persist(convoID, "assistant", "[Guardrail] "+rej.Reason)
			writeDetail(w, http.StatusBadRequest, rej.Reason)
			return
		}
		logger.L.Error("guardrail check failed", "convoId", convoID, "error", err)
		h.internalError(w, convoID)
		return
	}

	botReply, err := h.responder.Respond(r.Context(), req.History, req.UserText)
	if err != nil {
		logger.L.Error("chat completion failed", "convoId", convoID, "error", err)
		h.internalError(w, convoID)
		return
	}

	h.persist(convoID, "assistant", botReply)
	writeJSON(w, http.StatusOK, chatResponse{BotReply: botReply, ConvoID: convoID})
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "userId is required")
		return
	}

	summaries, err := h.db.Conversations(userID)
	if err != nil {
		logger.L.Error("failed to list conversations", "userId", userID, "error", err)
		writeDetail(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	out := make([]chat.Conversation, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, chat.Conversation{
			ConvoID:   s.ConvoID,
			StartedAt: s.StartedAt,
			Title:     title(s.Title),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleConversation(w http.ResponseWriter, r *http.Request) {
	convoID := r.PathValue("convoId")
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "userId is required")
		return
	}

	owner, err := h.db.ConversationOwner(convoID)
	if err != nil {
		logger.L.Error("failed to resolve conversation owner", "convoId", convoID, "error", err)
		writeDetail(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}
	if owner != userID {
		writeDetail(w, http.StatusForbidden, "Access forbidden")
		return
	}

	msgs, err := h.db.Messages(convoID)
	if err != nil {
		logger.L.Error("failed to load messages", "convoId", convoID, "error", err)
		writeDetail(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	type record struct {
		Author  string `json:"author"`
		Content string `json:"content"`
		TS      int64  `json:"ts"`
	}
	out := make([]record, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, record{Author: m.Author, Content: m.Content, TS: m.TS})
	}
	writeJSON(w, http.StatusOK, out)
}

// persist saves a message best-effort; the chat flow continues even if the
// write fails.
func (h *Handler) persist(convoID, author, content string) {
	err := h.db.SaveMessage(convoID, db.Message{
		MsgID:   uuid.NewString(),
		Author:  author,
		Content: content,
		TS:      h.now().UnixMilli(),
	})
	if err != nil {
		logger.L.Error("failed to persist message", "convoId", convoID, "author", author, "error", err)
	}
}

func (h *Handler) internalError(w http.ResponseWriter, convoID string) {
	h.persist(convoID, "assistant", "[Error] Internal Server Error")
	writeDetail(w, http.StatusInternalServerError, "An unexpected error occurred.")
}

// title trims a first-message title for display, falling back to a generic
// label when the conversation has no user message yet.
func title(s string) string {
	if s == "" {
		return titleFallback
	}
	runes := []rune(s)
	if len(runes) > titleMaxLen {
		return string(runes[:titleMaxLen]) + "..."
	}
	return s
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.L.Error("failed to encode response", "error", err)
	}
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
