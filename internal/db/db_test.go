package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *Database {
	t.Helper()
	d, err := Open(filepath.Join(t.TempDir(), "coach.db"))
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	return d
}

func TestDatabase_ConversationRoundTrip(t *testing.T) {
	d := openTestDB(t)

	require.NoError(t, d.SaveConversationStart("c1", "u1", 100))
	// Restarting the same conversation is a no-op.
	require.NoError(t, d.SaveConversationStart("c1", "u1", 999))

	require.NoError(t, d.SaveMessage("c1", Message{MsgID: "m1", Author: "user", Content: "What is a budget?", TS: 101}))
	require.NoError(t, d.SaveMessage("c1", Message{MsgID: "m2", Author: "assistant", Content: "A plan...", TS: 102}))

	msgs, err := d.Messages("c1")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	require.Equal(t, "user", msgs[0].Author)
	require.Equal(t, "A plan...", msgs[1].Content)
}

func TestDatabase_ConversationsNewestFirstWithTitles(t *testing.T) {
	d := openTestDB(t)

	require.NoError(t, d.SaveConversationStart("c1", "u1", 100))
	require.NoError(t, d.SaveConversationStart("c2", "u1", 200))
	require.NoError(t, d.SaveConversationStart("c3", "other", 300))
	require.NoError(t, d.SaveMessage("c1", Message{MsgID: "m1", Author: "user", Content: "How do I save?", TS: 101}))

	convos, err := d.Conversations("u1")
	require.NoError(t, err)
	require.Len(t, convos, 2)
	require.Equal(t, "c2", convos[0].ConvoID)
	require.Equal(t, "", convos[0].Title) // no user message yet
	require.Equal(t, "How do I save?", convos[1].Title)
}

func TestDatabase_ConversationOwner(t *testing.T) {
	d := openTestDB(t)

	require.NoError(t, d.SaveConversationStart("c1", "u1", 100))

	owner, err := d.ConversationOwner("c1")
	require.NoError(t, err)
	require.Equal(t, "u1", owner)

	owner, err = d.ConversationOwner("missing")
	require.NoError(t, err)
	require.Equal(t, "", owner)
}
