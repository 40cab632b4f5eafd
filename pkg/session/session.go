// Package session keeps per-session conversation history for callers that
// do not hold it themselves, such as the HTTP API.
package session

import (
	"context"
	"sync"

	"github.com/jbdamask/dinebot/pkg/llm"
)

// Store is an append-only history keyed by session id.
type Store interface {
	Load(ctx context.Context, id string) ([]llm.Message, error)
	Append(ctx context.Context, id string, msgs ...llm.Message) error
	Reset(ctx context.Context, id string) error
	Close() error
}

// MemoryStore keeps histories in process memory.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string][]llm.Message
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string][]llm.Message)}
}

// Load returns a copy of the history; an unknown id has an empty history.
func (s *MemoryStore) Load(ctx context.Context, id string) ([]llm.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]llm.Message(nil), s.sessions[id]...), nil
}

func (s *MemoryStore) Append(ctx context.Context, id string, msgs ...llm.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = append(s.sessions[id], msgs...)
	return nil
}

func (s *MemoryStore) Reset(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *MemoryStore) Close() error { return nil }
