package agent

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/jbdamask/dinebot/pkg/history"
	"github.com/jbdamask/dinebot/pkg/llm"
)

// Conversation plays the caller role for an interactive chat: it owns the
// history and appends both turns after every reply.
type Conversation struct {
	resolver   *Resolver
	history    []llm.Message
	transcript *history.Transcript
	log        logrus.FieldLogger
}

// NewConversation starts a conversation. transcript may be nil; when it
// already holds turns they become the starting history.
func NewConversation(r *Resolver, transcript *history.Transcript) (*Conversation, error) {
	c := &Conversation{resolver: r, transcript: transcript, log: r.log}
	if transcript != nil {
		msgs, err := transcript.Messages()
		if err != nil {
			return nil, err
		}
		c.history = msgs
	}
	return c, nil
}

// Send resolves utterance against the history so far and records the turn
// unless ctx was cancelled meanwhile.
func (c *Conversation) Send(ctx context.Context, utterance string) string {
	reply := c.resolver.Reply(ctx, utterance, c.history)

	// A cancelled turn is not part of the conversation.
	if ctx.Err() != nil {
		return reply
	}

	c.history = append(c.history,
		llm.Message{Role: llm.RoleUser, Content: utterance},
		llm.Message{Role: llm.RoleAssistant, Content: reply},
	)

	if c.transcript != nil {
		err := c.transcript.Append(llm.RoleUser, utterance)
		if err == nil {
			err = c.transcript.Append(llm.RoleAssistant, reply)
		}
		if err != nil {
			c.log.WithError(err).Warn("failed to write transcript")
		}
	}
	return reply
}

func (c *Conversation) History() []llm.Message {
	return c.history
}

// Reset forgets the history. The transcript keeps what was written.
func (c *Conversation) Reset() {
	c.history = nil
}

func (c *Conversation) LastReply() string {
	for i := len(c.history) - 1; i >= 0; i-- {
		if c.history[i].Role == llm.RoleAssistant {
			return c.history[i].Content
		}
	}
	return ""
}

// SessionID returns the transcript's session id, or "" without one.
func (c *Conversation) SessionID() string {
	if c.transcript == nil {
		return ""
	}
	return c.transcript.SessionID
}
