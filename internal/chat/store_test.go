package chat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStore_AddMessageAppends(t *testing.T) {
	s := NewStore()
	s.AddMessage(Message{Author: AuthorUser, Content: "hi", Timestamp: 1})
	s.AddMessage(Message{Author: AuthorAssistant, Content: "hello", Timestamp: 2})

	msgs := s.Messages()
	require.Len(t, msgs, 2)
	require.Equal(t, AuthorUser, msgs[0].Author)
	require.Equal(t, AuthorAssistant, msgs[1].Author)
}

func TestStore_AddMessageDropsIncomplete(t *testing.T) {
	s := NewStore()
	s.AddMessage(Message{Author: AuthorUser})
	s.AddMessage(Message{Content: "no author"})
	require.Empty(t, s.Messages())
}

func TestStore_ClearHistory(t *testing.T) {
	s := NewStore()
	s.AddMessage(Message{Author: AuthorUser, Content: "draft"})
	s.SetConversationID("c9")

	s.ClearHistory()
	require.Empty(t, s.Messages())
	require.Equal(t, "", s.ConversationID())

	// Clearing an already empty store is fine too.
	s.ClearHistory()
	require.Empty(t, s.Messages())
	require.Equal(t, "", s.ConversationID())
}

func TestStore_LoadMessagesReplacesWholesale(t *testing.T) {
	s := NewStore()
	s.AddMessage(Message{Author: AuthorUser, Content: "one"})
	s.AddMessage(Message{Author: AuthorUser, Content: "two"})

	s.LoadMessages([]Message{
		{Author: AuthorUser, Content: "old q", Timestamp: 10},
		{Author: AuthorAssistant, Content: "old a", Timestamp: 11},
	})
	msgs := s.Messages()
	require.Len(t, msgs, 2)
	require.Equal(t, "old q", msgs[0].Content)
	// LoadMessages leaves the conversation id alone; the caller sets it.
	require.Equal(t, "", s.ConversationID())
}

func TestStore_MessagesReturnsCopy(t *testing.T) {
	s := NewStore()
	s.AddMessage(Message{Author: AuthorUser, Content: "original"})

	out := s.Messages()
	out[0].Content = "mutated"
	require.Equal(t, "original", s.Messages()[0].Content)
}

func TestStore_Loading(t *testing.T) {
	s := NewStore()
	require.False(t, s.Loading())
	s.SetLoading(true)
	require.True(t, s.Loading())
	s.SetLoading(false)
	require.False(t, s.Loading())
}
