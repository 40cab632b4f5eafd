package commands

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbdamask/dinebot/pkg/llm"
)

type fakeSession struct {
	history []llm.Message
	resets  int
}

func (f *fakeSession) History() []llm.Message { return f.history }
func (f *fakeSession) Reset()                 { f.resets++; f.history = nil }
func (f *fakeSession) LastReply() string {
	for i := len(f.history) - 1; i >= 0; i-- {
		if f.history[i].Role == llm.RoleAssistant {
			return f.history[i].Content
		}
	}
	return ""
}

type fakeClipboard struct {
	text string
	err  error
}

func (f *fakeClipboard) WriteText(text string) error {
	f.text = text
	return f.err
}

func TestParse(t *testing.T) {
	tests := []struct {
		line string
		name string
		ok   bool
	}{
		{"/help", "help", true},
		{"  /Reset now ", "reset", true},
		{"/", "", true},
		{"show italian", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		name, ok := Parse(tt.line)
		assert.Equal(t, tt.ok, ok, tt.line)
		assert.Equal(t, tt.name, name, tt.line)
	}
}

func TestDefaultRegistryOrder(t *testing.T) {
	r := NewDefaultRegistry(&fakeClipboard{}, NewModelCommand(llm.DefaultModelID, nil))
	assert.Equal(t, []string{"help", "reset", "history", "copy", "model"}, r.Names())

	r = NewDefaultRegistry(&fakeClipboard{}, nil)
	_, ok := r.Get("model")
	assert.False(t, ok)
}

func TestHelpListsCommands(t *testing.T) {
	r := NewDefaultRegistry(&fakeClipboard{}, nil)
	cmd, _ := r.Get("help")
	out, err := cmd.Execute(&fakeSession{})
	require.NoError(t, err)
	assert.Contains(t, out, "/reset")
	assert.Contains(t, out, "/copy")
}

func TestResetAndHistory(t *testing.T) {
	s := &fakeSession{history: []llm.Message{
		{Role: llm.RoleUser, Content: "show italian"},
		{Role: llm.RoleAssistant, Content: "Available Restaurants:"},
	}}

	out, err := HistoryCommand{}.Execute(s)
	require.NoError(t, err)
	assert.Equal(t, "user: show italian\nassistant: Available Restaurants:", out)

	out, _ = ResetCommand{}.Execute(s)
	assert.Equal(t, "Conversation cleared.", out)
	assert.Equal(t, 1, s.resets)

	out, _ = HistoryCommand{}.Execute(s)
	assert.Equal(t, "No messages yet.", out)
}

func TestCopyCommand(t *testing.T) {
	clip := &fakeClipboard{}
	cmd := NewCopyCommand(clip)

	out, err := cmd.Execute(&fakeSession{})
	require.NoError(t, err)
	assert.Equal(t, "Nothing to copy yet.", out)
	assert.Empty(t, clip.text)

	s := &fakeSession{history: []llm.Message{
		{Role: llm.RoleUser, Content: "hi"},
		{Role: llm.RoleAssistant, Content: "✔ A table is available at that time."},
	}}
	_, err = cmd.Execute(s)
	require.NoError(t, err)
	assert.Equal(t, "✔ A table is available at that time.", clip.text)

	clip.err = errors.New("no display")
	_, err = cmd.Execute(s)
	assert.Error(t, err)
}

func TestModelCommand(t *testing.T) {
	var switched string
	cmd := NewModelCommand(llm.DefaultModelID, func(id string) error {
		switched = id
		return nil
	})

	out, _ := cmd.Execute(&fakeSession{})
	assert.Equal(t, "Current model: Llama 3.1 8B Instant [groq]", out)

	opts := cmd.GetModels()
	require.Len(t, opts, len(llm.SupportedModels))
	assert.True(t, opts[0].IsCurrent)

	require.NoError(t, cmd.SetModel("gpt-4o-mini"))
	assert.Equal(t, "gpt-4o-mini", switched)
	assert.Equal(t, "gpt-4o-mini", cmd.CurrentModel())

	assert.Error(t, cmd.SetModel("gemini-pro"))
	assert.Equal(t, "gpt-4o-mini", cmd.CurrentModel())

	failing := NewModelCommand(llm.DefaultModelID, func(string) error { return errors.New("no key") })
	assert.Error(t, failing.SetModel("claude-haiku-4.5"))
	assert.Equal(t, llm.DefaultModelID, failing.CurrentModel())
}
