package chat

// ToTurns folds the flat message list into (user, assistant) exchanges as the
// chat endpoint expects them. A user message paired with the assistant message
// immediately after it forms one turn; a trailing unanswered user message
// forms a turn with an empty Bot. Assistant messages with no preceding
// unconsumed user message should not occur under append-only ordering, but
// are skipped rather than failing.
//
// Pure function: output depends only on the input slice.
func ToTurns(messages []Message) []Turn {
	turns := make([]Turn, 0, (len(messages)+1)/2)
	for i := 0; i < len(messages); {
		if messages[i].Author != AuthorUser {
			i++
			continue
		}
		turn := Turn{User: messages[i].Content}
		if i+1 < len(messages) && messages[i+1].Author == AuthorAssistant {
			turn.Bot = messages[i+1].Content
			i += 2
		} else {
			i++
		}
		turns = append(turns, turn)
	}
	return turns
}
