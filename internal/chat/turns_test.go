package chat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToTurns_Empty(t *testing.T) {
	require.Empty(t, ToTurns(nil))
	require.Empty(t, ToTurns([]Message{}))
}

func TestToTurns_UnansweredUser(t *testing.T) {
	turns := ToTurns([]Message{{Author: AuthorUser, Content: "a"}})
	require.Equal(t, []Turn{{User: "a"}}, turns)
}

func TestToTurns_SinglePair(t *testing.T) {
	turns := ToTurns([]Message{
		{Author: AuthorUser, Content: "a"},
		{Author: AuthorAssistant, Content: "b"},
	})
	require.Equal(t, []Turn{{User: "a", Bot: "b"}}, turns)
}

func TestToTurns_TrailingUserAfterPair(t *testing.T) {
	turns := ToTurns([]Message{
		{Author: AuthorUser, Content: "a"},
		{Author: AuthorAssistant, Content: "b"},
		{Author: AuthorUser, Content: "c"},
	})
	require.Equal(t, []Turn{{User: "a", Bot: "b"}, {User: "c"}}, turns)
}

// An assistant message with no preceding unconsumed user message is skipped
// rather than paired or panicking.
func TestToTurns_OrphanAssistantSkipped(t *testing.T) {
	turns := ToTurns([]Message{
		{Author: AuthorAssistant, Content: "stray"},
		{Author: AuthorUser, Content: "a"},
		{Author: AuthorAssistant, Content: "b"},
	})
	require.Equal(t, []Turn{{User: "a", Bot: "b"}}, turns)
}

func TestToTurns_Idempotent(t *testing.T) {
	in := []Message{
		{Author: AuthorUser, Content: "a"},
		{Author: AuthorAssistant, Content: "b"},
		{Author: AuthorUser, Content: "c"},
	}
	first := ToTurns(in)
	second := ToTurns(in)
	require.Equal(t, first, second)
}
