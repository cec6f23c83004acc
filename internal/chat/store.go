package chat

import "sync"

// Store is the single source of truth for the active conversation: the
// backend-assigned conversation id (empty until assigned), the ordered
// message list, and whether a network round-trip is outstanding.
//
// Every mutation is atomic; readers always observe a fully applied state.
// Returned slices are copies, so callers can iterate without holding any
// lock and must not expect later mutations to show through.
type Store struct {
	mu             sync.Mutex
	conversationID string
	messages       []Message
	loading        bool
}

// NewStore returns an empty store: no conversation id, no messages.
func NewStore() *Store {
	return &Store{}
}

// AddMessage appends msg to the end of the message list. Messages without an
// author or with empty content are dropped; a committed message is never
// empty.
func (s *Store) AddMessage(msg Message) {
	if msg.Author == "" || msg.Content == "" {
		return
	}
	s.mu.Lock()
	s.messages = append(s.messages, msg)
	s.mu.Unlock()
}

// SetConversationID overwrites the active conversation id. An empty id marks
// the conversation as unassigned. The message list is untouched.
func (s *Store) SetConversationID(id string) {
	s.mu.Lock()
	s.conversationID = id
	s.mu.Unlock()
}

// ConversationID returns the active conversation id, or "" when the backend
// has not assigned one yet.
func (s *Store) ConversationID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conversationID
}

// ClearHistory resets the store for a fresh session: no messages, no
// conversation id.
func (s *Store) ClearHistory() {
	s.mu.Lock()
	s.messages = nil
	s.conversationID = ""
	s.mu.Unlock()
}

// LoadMessages replaces the message list wholesale, used when hydrating a
// previously saved conversation. The conversation id is not altered here;
// the caller sets it alongside.
func (s *Store) LoadMessages(list []Message) {
	msgs := make([]Message, len(list))
	copy(msgs, list)
	s.mu.Lock()
	s.messages = msgs
	s.mu.Unlock()
}

// Messages returns a copy of the current message list in append order.
func (s *Store) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// SetLoading marks whether a chat round-trip is outstanding. Send actions
// must be disabled while true.
func (s *Store) SetLoading(loading bool) {
	s.mu.Lock()
	s.loading = loading
	s.mu.Unlock()
}

// Loading reports whether a chat round-trip is outstanding.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}
