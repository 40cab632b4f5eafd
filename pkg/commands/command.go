package commands

import (
	"strings"

	"github.com/jbdamask/dinebot/pkg/llm"
)

// Session is the chat state a command may inspect or change.
type Session interface {
	History() []llm.Message
	Reset()
	LastReply() string
}

// Command represents a slash command that can be executed
type Command interface {
	// Name returns the command name (without the leading slash)
	Name() string

	// Description returns a short description shown in the command picker
	Description() string

	// Execute runs the command and returns text to show the user.
	Execute(s Session) (string, error)
}

// Registry holds all registered slash commands
type Registry struct {
	commands map[string]Command
	order    []string // Preserve insertion order for display
}

// NewRegistry creates a new command registry
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]Command),
		order:    []string{},
	}
}

// NewDefaultRegistry registers the built-in chat commands. model may be nil.
func NewDefaultRegistry(clip Clipboard, model *ModelCommand) *Registry {
	r := NewRegistry()
	r.Register(NewHelpCommand(r))
	r.Register(ResetCommand{})
	r.Register(HistoryCommand{})
	r.Register(NewCopyCommand(clip))
	if model != nil {
		r.Register(model)
	}
	return r
}

// Register adds a command to the registry
func (r *Registry) Register(cmd Command) {
	name := cmd.Name()
	if _, exists := r.commands[name]; !exists {
		r.order = append(r.order, name)
	}
	r.commands[name] = cmd
}

// Get retrieves a command by name
func (r *Registry) Get(name string) (Command, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// List returns all registered commands in registration order
func (r *Registry) List() []Command {
	cmds := make([]Command, 0, len(r.order))
	for _, name := range r.order {
		cmds = append(cmds, r.commands[name])
	}
	return cmds
}

// Names returns the names of all registered commands
func (r *Registry) Names() []string {
	return r.order
}

// Parse splits "/name args" into the command name. ok is false for lines
// that are not slash commands.
func Parse(line string) (name string, ok bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "/") {
		return "", false
	}
	fields := strings.Fields(line[1:])
	if len(fields) == 0 {
		return "", true
	}
	return strings.ToLower(fields[0]), true
}
