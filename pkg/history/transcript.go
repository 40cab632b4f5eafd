// Package history records chat sessions as JSONL transcripts.
package history

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jbdamask/dinebot/pkg/llm"
)

// Event is one line of a transcript file. Events form a chain through
// ParentUUID so a transcript can be replayed in order.
type Event struct {
	Type       string `json:"type"`
	UUID       string `json:"uuid"`
	ParentUUID string `json:"parentUuid,omitempty"`
	SessionID  string `json:"sessionId"`
	Timestamp  string `json:"timestamp"`
	Content    string `json:"content"`
}

// Transcript appends turns of one session to <dir>/<session id>.jsonl.
type Transcript struct {
	SessionID   string
	CurrentUUID string
	FilePath    string

	mu sync.Mutex
}

// Open starts or continues the transcript for sessionID. An empty
// sessionID starts a new session with a fresh uuid.
func Open(dir, sessionID string) (*Transcript, error) {
	if sessionID == "" {
		sessionID = uuid.New().String()
	}
	if sessionID != filepath.Base(sessionID) || sessionID == "." || sessionID == ".." {
		return nil, fmt.Errorf("invalid session id %q", sessionID)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create transcript dir: %w", err)
	}

	t := &Transcript{
		SessionID: sessionID,
		FilePath:  filepath.Join(dir, sessionID+".jsonl"),
	}

	// Continue the chain of an existing file.
	events, err := readEvents(t.FilePath)
	if err != nil {
		return nil, err
	}
	if len(events) > 0 {
		t.CurrentUUID = events[len(events)-1].UUID
	}
	return t, nil
}

// Append writes one turn. System messages are not recorded.
func (t *Transcript) Append(role llm.Role, content string) error {
	if role == llm.RoleSystem {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	event := Event{
		Type:       string(role),
		UUID:       uuid.New().String(),
		ParentUUID: t.CurrentUUID,
		SessionID:  t.SessionID,
		Timestamp:  time.Now().UTC().Format(time.RFC3339Nano),
		Content:    content,
	}

	f, err := os.OpenFile(t.FilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(event); err != nil {
		return err
	}

	t.CurrentUUID = event.UUID
	return nil
}

// Messages returns the recorded turns as conversation history.
func (t *Transcript) Messages() ([]llm.Message, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	events, err := readEvents(t.FilePath)
	if err != nil {
		return nil, err
	}
	msgs := make([]llm.Message, 0, len(events))
	for _, e := range events {
		msgs = append(msgs, llm.Message{Role: llm.Role(e.Type), Content: e.Content})
	}
	return msgs, nil
}

// readEvents loads every event in path. A missing file has no events.
func readEvents(path string) ([]Event, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open transcript: %w", err)
	}
	defer f.Close()

	var events []Event
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var e Event
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			return nil, fmt.Errorf("failed to parse transcript %s: %w", path, err)
		}
		events = append(events, e)
	}
	return events, scanner.Err()
}
