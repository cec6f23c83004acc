package session

import (
	"context"
	"sync"

	"github.com/pennyplan/coach-go/internal/api"
	"github.com/pennyplan/coach-go/internal/chat"
	"github.com/pennyplan/coach-go/internal/logger"
)

// HistoryService is the slice of the api client the loader needs.
type HistoryService interface {
	Conversations(ctx context.Context, userID string) ([]chat.Conversation, error)
	Messages(ctx context.Context, convoID, userID string) ([]api.Record, error)
}

// Loader fetches the user's prior conversations and hydrates a selected one
// into the message store. History fetches are supplementary: failures are
// logged and leave existing state unchanged, never surfaced in the chat.
type Loader struct {
	store *chat.Store
	svc   HistoryService
	pane  *Pane

	mu            sync.Mutex
	conversations []chat.Conversation
	loading       bool
}

func NewLoader(store *chat.Store, svc HistoryService, pane *Pane) *Loader {
	return &Loader{store: store, svc: svc, pane: pane}
}

// LoadConversations refreshes the conversation list for a user. On failure
// the previous list is kept.
func (l *Loader) LoadConversations(ctx context.Context, userID string) {
	l.setLoading(true)
	defer l.setLoading(false)

	convos, err := l.svc.Conversations(ctx, userID)
	if err != nil {
		logger.L.Warn("failed to load conversation list", "userId", userID, "error", err)
		return
	}
	l.mu.Lock()
	l.conversations = convos
	l.mu.Unlock()
}

// SelectConversation replaces the active conversation with a prior one: the
// fetched messages and the selected id are applied together, discarding any
// in-progress draft. On failure the store is left untouched.
func (l *Loader) SelectConversation(ctx context.Context, convoID, userID string) {
	records, err := l.svc.Messages(ctx, convoID, userID)
	if err != nil {
		logger.L.Warn("failed to load conversation messages", "convoId", convoID, "error", err)
		return
	}

	msgs := make([]chat.Message, 0, len(records))
	for _, r := range records {
		msgs = append(msgs, chat.Message{
			Author:    chat.Author(r.Author),
			Content:   r.Content,
			Timestamp: r.TS,
		})
	}
	l.store.LoadMessages(msgs)
	l.store.SetConversationID(convoID)
	l.pane.Selected()
}

// NewChat discards the active conversation and returns the pane to a fresh
// session.
func (l *Loader) NewChat() {
	l.store.ClearHistory()
	l.pane.NewChat()
}

// Conversations returns a copy of the most recently loaded list.
func (l *Loader) Conversations() []chat.Conversation {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]chat.Conversation, len(l.conversations))
	copy(out, l.conversations)
	return out
}

// Loading reports whether a list refresh is in flight.
func (l *Loader) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loading
}

func (l *Loader) setLoading(v bool) {
	l.mu.Lock()
	l.loading = v
	l.mu.Unlock()
}
