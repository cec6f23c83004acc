package coach

import (
	"context"
	"errors"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/require"

	"github.com/pennyplan/coach-go/internal/chat"
	"github.com/pennyplan/coach-go/internal/product"
)

type mockLLM struct {
	lastReq openai.ChatCompletionRequest
	reply   string
	err     error
}

func (m *mockLLM) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	m.lastReq = req
	if m.err != nil {
		return openai.ChatCompletionResponse{}, m.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Content: m.reply}}},
	}, nil
}

func (m *mockLLM) Moderations(ctx context.Context, req openai.ModerationRequest) (openai.ModerationResponse, error) {
	return openai.ModerationResponse{}, nil
}

var meta = &product.Metadata{ProductName: "PennyPlan", Description: "AI financial coaching", Features: []string{"budgeting", "goals"}}

func TestRespond_AssemblesCompletedPairsOnly(t *testing.T) {
	m := &mockLLM{reply: "  A budget is a plan.  "}
	r := NewResponder(m, meta, "gpt")

	out, err := r.Respond(context.Background(), []chat.Turn{
		{User: "hi", Bot: "hello"},
		{User: "unanswered"},
	}, "What is a budget?")
	require.NoError(t, err)
	require.Equal(t, "A budget is a plan.", out)

	msgs := m.lastReq.Messages
	// system + one completed pair + the new user message; the unanswered turn
	// is dropped.
	require.Len(t, msgs, 4)
	require.Equal(t, openai.ChatMessageRoleSystem, msgs[0].Role)
	require.Contains(t, msgs[0].Content, "PennyPlan")
	require.Equal(t, "hi", msgs[1].Content)
	require.Equal(t, openai.ChatMessageRoleAssistant, msgs[2].Role)
	require.Equal(t, "What is a budget?", msgs[3].Content)
}

func TestRespond_CompletionError(t *testing.T) {
	r := NewResponder(&mockLLM{err: errors.New("rate limited")}, meta, "gpt")
	_, err := r.Respond(context.Background(), nil, "hi")
	require.Error(t, err)
}
