package chat

// Author identifies who produced a message.
type Author string

const (
	AuthorUser      Author = "user"
	AuthorAssistant Author = "assistant"
)

// Message is a single chat message in the active conversation.
// Timestamp is milliseconds since epoch, assigned by the producing side;
// it doubles as the display identifier.
type Message struct {
	Author    Author `json:"author"`
	Content   string `json:"content"`
	Timestamp int64  `json:"ts"`
}

// Conversation is a summary entry from the history list. ConvoID is assigned
// by the backend and is empty for a session that has not completed its first
// exchange.
type Conversation struct {
	ConvoID   string `json:"convoId"`
	StartedAt int64  `json:"startedAt"`
	Title     string `json:"title"`
}

// Turn is one user/assistant exchange sent as context to the chat endpoint.
// Bot is empty when the user message has not been answered yet.
type Turn struct {
	User string `json:"user"`
	Bot  string `json:"bot,omitempty"`
}
