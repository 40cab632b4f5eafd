// Package llmtest provides a scripted model client for tests.
package llmtest

import (
	"context"
	"fmt"
	"sync"

	"github.com/jbdamask/dinebot/pkg/llm"
)

// Response is one scripted reply: either a message or an error.
type Response struct {
	Message *llm.Message
	Err     error
}

// ScriptedClient replays queued responses in order and records every request.
type ScriptedClient struct {
	mu        sync.Mutex
	responses []Response
	queued    int
	Requests  [][]llm.Message
}

func NewScriptedClient(responses ...Response) *ScriptedClient {
	return &ScriptedClient{responses: responses, queued: len(responses)}
}

// Text queues a plain text reply.
func (s *ScriptedClient) Text(content string) *ScriptedClient {
	return s.push(Response{Message: &llm.Message{Role: llm.RoleAssistant, Content: content}})
}

// Call queues a structured tool call with raw argument text.
func (s *ScriptedClient) Call(name, arguments string) *ScriptedClient {
	s.mu.Lock()
	id := fmt.Sprintf("call_%d", s.queued)
	s.mu.Unlock()
	return s.push(Response{Message: &llm.Message{
		Role:      llm.RoleAssistant,
		ToolCalls: []llm.ToolCall{{ID: id, Name: name, Arguments: arguments}},
	}})
}

// Fail queues an upstream error.
func (s *ScriptedClient) Fail(err error) *ScriptedClient {
	return s.push(Response{Err: err})
}

func (s *ScriptedClient) push(r Response) *ScriptedClient {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses = append(s.responses, r)
	s.queued++
	return s
}

func (s *ScriptedClient) Generate(ctx context.Context, messages []llm.Message, tools []llm.Tool) (*llm.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Requests = append(s.Requests, append([]llm.Message(nil), messages...))
	if len(s.responses) == 0 {
		return nil, fmt.Errorf("scripted client: no response queued")
	}
	r := s.responses[0]
	s.responses = s.responses[1:]
	return r.Message, r.Err
}
