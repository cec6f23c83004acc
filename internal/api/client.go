// Package api is the HTTP client for the remote coach endpoints: chat
// completion plus the conversation-history list and detail fetches.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pennyplan/coach-go/internal/chat"
)

// Error is a non-2xx response from the coach service. A 400-class status
// carrying a Detail is a content-policy rejection and its Detail is meant to
// be shown to the user verbatim.
type Error struct {
	StatusCode int
	Detail     string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("coach api: status %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("coach api: status %d", e.StatusCode)
}

// PolicyRejection reports whether the failure is a structured content-policy
// rejection rather than a transport or server fault.
func (e *Error) PolicyRejection() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500 && e.Detail != ""
}

// ChatRequest is the body of POST /api/chat. ConvoID is omitted until the
// backend has assigned one.
type ChatRequest struct {
	History  []chat.Turn `json:"history"`
	UserText string      `json:"user_text"`
	ConvoID  string      `json:"convoId,omitempty"`
	UserID   string      `json:"userId"`
}

// ChatResponse is the success body of POST /api/chat.
type ChatResponse struct {
	BotReply string `json:"bot_reply"`
	ConvoID  string `json:"convoId"`
}

// Record is one message as the history detail endpoint returns it.
type Record struct {
	Author  string `json:"author"`
	Content string `json:"content"`
	TS      int64  `json:"ts"`
}

// Client talks to the coach service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the service at baseURL, e.g.
// "http://localhost:8000/api". A zero timeout falls back to 10s.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Chat posts a user message with its conversational context and returns the
// assistant reply together with the authoritative conversation id.
func (c *Client) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode chat request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, readError(resp)
	}

	var out ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode chat response: %w", err)
	}
	return &out, nil
}

// Conversations fetches the history list for a user, newest first.
func (c *Client) Conversations(ctx context.Context, userID string) ([]chat.Conversation, error) {
	var out []chat.Conversation
	if err := c.get(ctx, "/history?userId="+url.QueryEscape(userID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Messages fetches the full message list of one conversation in
// chronological order.
func (c *Client) Messages(ctx context.Context, convoID, userID string) ([]Record, error) {
	var out []Record
	path := "/history/" + url.PathEscape(convoID) + "?userId=" + url.QueryEscape(userID)
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return readError(resp)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// readError drains a failed response and lifts a structured {"detail": ...}
// body into Error.Detail when present.
func readError(resp *http.Response) error {
	apiErr := &Error{StatusCode: resp.StatusCode}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return apiErr
	}
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		apiErr.Detail = payload.Detail
	}
	return apiErr
}
