// Package llm talks to the upstream chat model.
package llm

import (
	"context"
	"time"

	"github.com/jbdamask/dinebot/pkg/metrics"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// ToolCall is a structured tool invocation. Arguments holds the raw JSON
// text exactly as the model produced it; it may be malformed.
type ToolCall struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

type Message struct {
	Role      Role       `json:"role"`
	Content   string     `json:"content"`
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
}

// Tool declares one callable function to the model.
type Tool struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Parameters  interface{} `json:"parameters"`
}

// Client sends a conversation plus tool declarations and returns the model's
// single reply message.
type Client interface {
	Generate(ctx context.Context, messages []Message, tools []Tool) (*Message, error)
}

// Instrumented wraps a client and records call latency per provider.
func Instrumented(c Client, provider Provider) Client {
	return &instrumentedClient{next: c, provider: string(provider)}
}

type instrumentedClient struct {
	next     Client
	provider string
}

func (c *instrumentedClient) Generate(ctx context.Context, messages []Message, tools []Tool) (*Message, error) {
	start := time.Now()
	msg, err := c.next.Generate(ctx, messages, tools)
	metrics.RecordModelCall(c.provider, err == nil, time.Since(start).Seconds())
	return msg, err
}
