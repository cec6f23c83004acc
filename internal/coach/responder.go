// Package coach turns conversation history and a new user message into an
// assistant reply via the chat completion API.
package coach

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/pennyplan/coach-go/internal/chat"
	"github.com/pennyplan/coach-go/internal/llm"
	"github.com/pennyplan/coach-go/internal/product"
)

// Responder assembles the prompt and calls the LLM.
type Responder struct {
	llm   llm.Client
	meta  *product.Metadata
	model string
}

func NewResponder(client llm.Client, meta *product.Metadata, model string) *Responder {
	return &Responder{llm: client, meta: meta, model: model}
}

func (r *Responder) systemPrompt() string {
	return fmt.Sprintf(`You are a helpful and friendly financial coaching assistant for a product named '%s'.
Your goal is to answer user questions and encourage them to try the product based on these details:
Product Description: %s
Key Features: %s
Stay on topic and be positive.`,
		r.meta.ProductName, r.meta.Description, strings.Join(r.meta.Features, ", "))
}

// assemble builds the full message list: system instructions, the completed
// exchanges from history, then the new user message. Turns without a bot
// reply carry no assistant context and are left out.
func (r *Responder) assemble(history []chat.Turn, userText string) []openai.ChatCompletionMessage {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: r.systemPrompt()},
	}
	for _, turn := range history {
		if turn.User == "" || turn.Bot == "" {
			continue
		}
		messages = append(messages,
			openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: turn.User},
			openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: turn.Bot},
		)
	}
	return append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: userText})
}

// Respond returns the assistant's reply to userText given prior exchanges.
func (r *Responder) Respond(ctx context.Context, history []chat.Turn, userText string) (string, error) {
	resp, err := r.llm.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       r.model,
		Messages:    r.assemble(history, userText),
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
