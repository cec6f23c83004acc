// Package guard runs the content guardrails for incoming chat messages: the
// OpenAI moderation endpoint first, then a zero-shot on-topic classifier.
// A RejectionError carries the user-facing reason for declining.
package guard

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"github.com/pennyplan/coach-go/internal/llm"
	"github.com/pennyplan/coach-go/internal/product"
)

// RejectionError is a content-policy rejection; Reason is shown to the user.
type RejectionError struct {
	Reason string
}

func (e *RejectionError) Error() string { return e.Reason }

const classifierSystemPrompt = `You are an expert classifier for a financial coaching chatbot. Decide if a user's message is ON-TOPIC (about our product, its features, use cases, or support) or OFF-TOPIC (not related to our product, or about competitors, or inappropriate).

- ON-TOPIC: Any question or statement about the product, its features, pricing, support, integrations, what it does, or anything that helps the user understand or use the product. This includes generic questions like "tell me about your product", "what do you do?", "how can you help me?", etc.
- OFF-TOPIC: Personal questions, jokes, unrelated topics, competitor comparisons, or anything not about our product.
- GREETINGS: If the message is a greeting (e.g., "hi", "hello"), treat as ON-TOPIC but suggest asking about the product.
- COMPETITOR: If the message mentions a competitor, treat as OFF-TOPIC and explain why.

Respond ONLY in this JSON format:
{ "on_topic": true/false, "reason": "..." }`

// Guard validates user messages before they reach the coach.
type Guard struct {
	llm   llm.Client
	meta  *product.Metadata
	model string
}

func New(client llm.Client, meta *product.Metadata, model string) *Guard {
	return &Guard{llm: client, meta: meta, model: model}
}

// Validate runs all guardrail checks on userText. A *RejectionError means the
// message was declined for policy reasons; any other error is a transport or
// service fault.
func (g *Guard) Validate(ctx context.Context, userText string) error {
	if err := g.checkModeration(ctx, userText); err != nil {
		return err
	}
	return g.checkTopic(ctx, userText)
}

func (g *Guard) checkModeration(ctx context.Context, userText string) error {
	resp, err := g.llm.Moderations(ctx, openai.ModerationRequest{Input: userText})
	if err != nil {
		return fmt.Errorf("moderation call: %w", err)
	}
	for _, result := range resp.Results {
		if !result.Flagged {
			continue
		}
		category := flaggedCategory(result.Categories)
		return &RejectionError{Reason: fmt.Sprintf("Message violates moderation policy: %s", category)}
	}
	return nil
}

func (g *Guard) checkTopic(ctx context.Context, userText string) error {
	user := fmt.Sprintf("Product: %s\nDescription: %s\n\nUser Message: %q",
		g.meta.ProductName, g.meta.Description, userText)

	resp, err := g.llm.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: classifierSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: 0,
		MaxTokens:   100,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return fmt.Errorf("topic classifier call: %w", err)
	}
	if len(resp.Choices) == 0 {
		return fmt.Errorf("topic classifier returned no choices")
	}

	var verdict struct {
		OnTopic bool   `json:"on_topic"`
		Reason  string `json:"reason"`
	}
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &verdict); err != nil {
		return fmt.Errorf("parse topic classifier verdict: %w", err)
	}
	if !verdict.OnTopic {
		return &RejectionError{Reason: verdict.Reason}
	}
	return nil
}

// flaggedCategory returns the first moderation category marked true.
func flaggedCategory(c openai.ResultCategories) string {
	categories := []struct {
		name    string
		flagged bool
	}{
		{"hate", c.Hate},
		{"hate/threatening", c.HateThreatening},
		{"harassment", c.Harassment},
		{"harassment/threatening", c.HarassmentThreatening},
		{"self-harm", c.SelfHarm},
		{"self-harm/intent", c.SelfHarmIntent},
		{"self-harm/instructions", c.SelfHarmInstructions},
		{"sexual", c.Sexual},
		{"sexual/minors", c.SexualMinors},
		{"violence", c.Violence},
		{"violence/graphic", c.ViolenceGraphic},
	}
	for _, cat := range categories {
		if cat.flagged {
			return cat.name
		}
	}
	return "unspecified"
}
