// ABOUTME: Support chat endpoints of the Go-Biz API
// ABOUTME: Message send and history fetch consumed by the polling chat screen

package client

import (
	"context"
)

// ChatMessage is one support chat message
type ChatMessage struct {
	ID        string `json:"id"`
	Sender    string `json:"sender"` // "user" or "support"
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
}

// SendChatMessage calls POST /api/chat/messages
func (c *Client) SendChatMessage(ctx context.Context, body string) (*ChatMessage, error) {
	var out ChatMessage
	if err := c.postJSON(ctx, "/api/chat/messages", map[string]string{"body": body}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ChatHistory calls GET /api/chat/messages
func (c *Client) ChatHistory(ctx context.Context) ([]ChatMessage, error) {
	var out struct {
		Messages []ChatMessage `json:"messages"`
	}
	if err := c.getJSON(ctx, "/api/chat/messages", &out); err != nil {
		return nil, err
	}
	return out.Messages, nil
}
