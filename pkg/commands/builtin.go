package commands

import (
	"fmt"
	"strings"

	"golang.design/x/clipboard"
)

type HelpCommand struct {
	registry *Registry
}

func NewHelpCommand(r *Registry) *HelpCommand {
	return &HelpCommand{registry: r}
}

func (c *HelpCommand) Name() string        { return "help" }
func (c *HelpCommand) Description() string { return "List slash commands" }

func (c *HelpCommand) Execute(s Session) (string, error) {
	var sb strings.Builder
	sb.WriteString("Commands:\n")
	for _, cmd := range c.registry.List() {
		sb.WriteString(fmt.Sprintf("  /%-8s %s\n", cmd.Name(), cmd.Description()))
	}
	sb.WriteString("Type exit or quit to leave.")
	return sb.String(), nil
}

type ResetCommand struct{}

func (ResetCommand) Name() string        { return "reset" }
func (ResetCommand) Description() string { return "Forget the conversation so far" }

func (ResetCommand) Execute(s Session) (string, error) {
	s.Reset()
	return "Conversation cleared.", nil
}

type HistoryCommand struct{}

func (HistoryCommand) Name() string        { return "history" }
func (HistoryCommand) Description() string { return "Show the conversation so far" }

func (HistoryCommand) Execute(s Session) (string, error) {
	msgs := s.History()
	if len(msgs) == 0 {
		return "No messages yet.", nil
	}
	var sb strings.Builder
	for i, m := range msgs {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("%s: %s", m.Role, m.Content))
	}
	return sb.String(), nil
}

// Clipboard receives copied text.
type Clipboard interface {
	WriteText(text string) error
}

// SystemClipboard writes to the OS clipboard.
type SystemClipboard struct{}

func (SystemClipboard) WriteText(text string) error {
	if err := clipboard.Init(); err != nil {
		return fmt.Errorf("clipboard unavailable: %w", err)
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}

type CopyCommand struct {
	clip Clipboard
}

// NewCopyCommand uses the system clipboard when clip is nil.
func NewCopyCommand(clip Clipboard) *CopyCommand {
	if clip == nil {
		clip = SystemClipboard{}
	}
	return &CopyCommand{clip: clip}
}

func (c *CopyCommand) Name() string        { return "copy" }
func (c *CopyCommand) Description() string { return "Copy the last reply to the clipboard" }

func (c *CopyCommand) Execute(s Session) (string, error) {
	reply := s.LastReply()
	if reply == "" {
		return "Nothing to copy yet.", nil
	}
	if err := c.clip.WriteText(reply); err != nil {
		return "", err
	}
	return "Copied last reply to clipboard.", nil
}
