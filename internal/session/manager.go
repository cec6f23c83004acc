// Package session orchestrates the active conversation: sending user
// messages through the remote chat endpoint, reconciling the backend-assigned
// conversation id, and loading prior conversations into the message store.
package session

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/pennyplan/coach-go/internal/api"
	"github.com/pennyplan/coach-go/internal/archive"
	"github.com/pennyplan/coach-go/internal/chat"
	"github.com/pennyplan/coach-go/internal/logger"
)

// ChatService is the slice of the api client the manager needs; it is easy to
// mock in tests.
type ChatService interface {
	Chat(ctx context.Context, req api.ChatRequest) (*api.ChatResponse, error)
}

// GenericErrorReply is shown when the chat endpoint fails without a
// structured policy reason.
const GenericErrorReply = "Sorry, I encountered an error. Please try again."

// Manager drives one user's active conversation against the remote chat
// endpoint. Failures never escape: every outcome of a send, success or not,
// lands in the message store as an assistant bubble.
type Manager struct {
	store  *chat.Store
	svc    ChatService
	pane   *Pane
	arc    *archive.Archive // optional
	userID string
	now    func() time.Time
}

// NewManager wires a manager for the given user. arc may be nil when no
// local transcript is wanted.
func NewManager(store *chat.Store, svc ChatService, pane *Pane, arc *archive.Archive, userID string) *Manager {
	return &Manager{
		store:  store,
		svc:    svc,
		pane:   pane,
		arc:    arc,
		userID: userID,
		now:    time.Now,
	}
}

// SendMessage sends one user message. Blank input and overlapping sends are
// silent no-ops. The user message is committed locally before the network
// call and is never rolled back; the reply, or a user-facing error bubble,
// is appended when the round-trip resolves.
func (m *Manager) SendMessage(ctx context.Context, text string) {
	text = strings.TrimSpace(text)
	if text == "" || m.store.Loading() {
		return
	}

	// Context for the request is the history as it stood before this send;
	// the new message travels separately as user_text.
	snapshot := m.store.Messages()

	userMsg := chat.Message{Author: chat.AuthorUser, Content: text, Timestamp: m.now().UnixMilli()}
	m.store.AddMessage(userMsg)
	m.pane.Compose()

	m.store.SetLoading(true)
	defer m.store.SetLoading(false)

	resp, err := m.svc.Chat(ctx, api.ChatRequest{
		History:  chat.ToTurns(snapshot),
		UserText: text,
		ConvoID:  m.store.ConversationID(),
		UserID:   m.userID,
	})
	if err != nil {
		m.appendFailure(err)
		return
	}

	botMsg := chat.Message{Author: chat.AuthorAssistant, Content: resp.BotReply, Timestamp: m.now().UnixMilli()}
	m.store.AddMessage(botMsg)

	if resp.ConvoID != "" && resp.ConvoID != m.store.ConversationID() {
		m.store.SetConversationID(resp.ConvoID)
		m.pane.Assigned()
	}

	m.archiveExchange(userMsg, botMsg)
}

// appendFailure renders a failed send as an assistant bubble: the server's
// policy reason verbatim when present, a generic retry suggestion otherwise.
func (m *Manager) appendFailure(err error) {
	content := GenericErrorReply
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.PolicyRejection() {
		content = apiErr.Detail
	}
	logger.L.Warn("chat send failed", "error", err)
	m.store.AddMessage(chat.Message{
		Author:    chat.AuthorAssistant,
		Content:   content,
		Timestamp: m.now().UnixMilli(),
	})
}

// archiveExchange mirrors a completed exchange into the local transcript.
// Best effort; an unassigned conversation id means there is nothing stable
// to file the messages under.
func (m *Manager) archiveExchange(msgs ...chat.Message) {
	if m.arc == nil {
		return
	}
	convoID := m.store.ConversationID()
	if convoID == "" {
		return
	}
	for _, msg := range msgs {
		m.arc.Save(archive.Entry{ConvoID: convoID, Author: msg.Author, Content: msg.Content, TS: msg.Timestamp})
	}
}
