// Package ui is the terminal front end of the chat loop.
package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	accent = lipgloss.Color("#D97757")
	muted  = lipgloss.Color("#7D7D7D")

	botLabel   = lipgloss.NewStyle().Foreground(accent).Bold(true)
	noticeText = lipgloss.NewStyle().Foreground(muted)
	errorText  = lipgloss.NewStyle().Foreground(lipgloss.Color("#E05252"))
)

// UI is interactive on a terminal. In plain mode it reads lines from in
// and never starts a bubbletea program.
type UI struct {
	out   io.Writer
	in    *bufio.Reader
	plain bool

	programOpts []tea.ProgramOption
}

// New returns an interactive UI, or a plain one when stdin is not a terminal.
func New() *UI {
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return NewPlain(os.Stdin, os.Stdout)
	}
	return &UI{out: os.Stdout}
}

func NewPlain(in io.Reader, out io.Writer) *UI {
	return &UI{out: out, in: bufio.NewReader(in), plain: true}
}

// Plain reports whether pickers and spinners are unavailable.
func (u *UI) Plain() bool {
	return u.plain
}

func (u *UI) Print(msg string) {
	fmt.Fprintln(u.out, msg)
}

// Reply prints an assistant reply under the bot label.
func (u *UI) Reply(text string) {
	fmt.Fprintln(u.out, FormatReply(text))
}

// Notice prints command output and status lines.
func (u *UI) Notice(text string) {
	fmt.Fprintln(u.out, noticeText.Render(text))
}

func (u *UI) Error(err error) {
	fmt.Fprintln(u.out, errorText.Render("Error: "+err.Error()))
}

// FormatReply prefixes the reply with the bot label.
func FormatReply(text string) string {
	return botLabel.Render("dinebot ›") + " " + text
}

// Input Handling

type inputModel struct {
	textInput    textinput.Model
	output       string
	canceled     bool
	slashTrigger bool // Triggered when "/" is typed as first char
}

func initialInputModel(prompt string) inputModel {
	ti := textinput.New()
	ti.Placeholder = "Ask for a cuisine, a table, or a reservation..."
	ti.Focus()
	ti.CharLimit = 0
	ti.Width = 80
	ti.Prompt = prompt

	return inputModel{textInput: ti}
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.output = m.textInput.Value()
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc, tea.KeyCtrlD:
			m.canceled = true
			return m, tea.Quit
		case tea.KeyRunes:
			// "/" on an empty line opens the command picker
			if len(key.Runes) == 1 && key.Runes[0] == '/' && m.textInput.Value() == "" {
				m.slashTrigger = true
				m.output = "/"
				return m, tea.Quit
			}
		}
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	return m.textInput.View() + "\n"
}

// Prompt reads one line. Ctrl+C, Esc and Ctrl+D read as "exit".
func (u *UI) Prompt(prompt string) string {
	if u.plain {
		return u.readLine(prompt)
	}

	p := tea.NewProgram(initialInputModel(prompt))
	m, err := p.Run()
	if err != nil {
		u.Error(err)
		return "exit"
	}

	if mModel, ok := m.(inputModel); ok {
		if mModel.canceled {
			return "exit"
		}
		return strings.TrimSpace(mModel.output)
	}
	return ""
}

// readLine treats end of input as "exit".
func (u *UI) readLine(prompt string) string {
	fmt.Fprint(u.out, prompt)
	line, err := u.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "exit"
	}
	return strings.TrimSpace(line)
}

// Thinking indicator

type replyMsg string

type thinkingModel struct {
	spinner  spinner.Model
	work     func() string
	reply    string
	done     bool
	canceled bool
}

func newThinkingModel(work func() string) thinkingModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(accent)
	return thinkingModel{spinner: s, work: work}
}

func (m thinkingModel) Init() tea.Cmd {
	work := m.work
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		return replyMsg(work())
	})
}

func (m thinkingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case replyMsg:
		m.reply = string(msg)
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.canceled = true
			return m, tea.Quit
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m thinkingModel) View() string {
	if m.done || m.canceled {
		return ""
	}
	return m.spinner.View() + noticeText.Render(" Thinking...") + "\n"
}

// Think shows a spinner while work runs. Ctrl+C cancels the context handed
// to work and returns an empty reply. Think returns only after work has.
func (u *UI) Think(ctx context.Context, work func(ctx context.Context) string) string {
	workCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	if u.plain {
		return work(workCtx)
	}

	var reply string
	done := make(chan struct{})
	go func() {
		defer close(done)
		reply = work(workCtx)
	}()

	opts := append([]tea.ProgramOption{tea.WithContext(ctx)}, u.programOpts...)
	p := tea.NewProgram(newThinkingModel(func() string {
		<-done
		return reply
	}), opts...)
	m, err := p.Run()

	cancel()
	<-done

	if ctx.Err() != nil {
		return ""
	}
	if err != nil {
		// No terminal; work still ran.
		return reply
	}
	if tm, ok := m.(thinkingModel); ok && tm.done {
		return tm.reply
	}
	return ""
}
