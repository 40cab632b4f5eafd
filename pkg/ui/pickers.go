package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// pickerItem is a list entry carrying the value returned on selection.
type pickerItem struct {
	value string
	title string
	desc  string
	match string
}

func (i pickerItem) Title() string       { return i.title }
func (i pickerItem) Description() string { return i.desc }
func (i pickerItem) FilterValue() string { return i.match }

type pickerModel struct {
	list     list.Model
	selected string
	canceled bool
}

func newPickerModel(title string, items []pickerItem, width, height int) pickerModel {
	listItems := make([]list.Item, len(items))
	for i, item := range items {
		listItems[i] = item
	}

	selected := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(lipgloss.Color("62")).
		Padding(0, 0, 0, 1)

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = selected.Foreground(lipgloss.Color("170"))
	delegate.Styles.SelectedDesc = selected.Foreground(lipgloss.Color("240"))

	l := list.New(listItems, delegate, width, height)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = lipgloss.NewStyle().
		Foreground(lipgloss.Color("170")).
		Bold(true).
		Padding(0, 1)

	return pickerModel{list: l}
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter:
			if item, ok := m.list.SelectedItem().(pickerItem); ok {
				m.selected = item.value
			}
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.canceled = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m pickerModel) View() string {
	return m.list.View()
}

func (u *UI) pick(model pickerModel) string {
	if u.plain {
		return ""
	}
	p := tea.NewProgram(model)
	m, err := p.Run()
	if err != nil {
		u.Error(err)
		return ""
	}
	if pm, ok := m.(pickerModel); ok && !pm.canceled {
		return pm.selected
	}
	return ""
}

// CommandInfo holds command info for the picker
type CommandInfo struct {
	Name        string
	Description string
}

func commandItems(commands []CommandInfo) []pickerItem {
	items := make([]pickerItem, len(commands))
	for i, c := range commands {
		items[i] = pickerItem{value: c.Name, title: "/" + c.Name, desc: c.Description, match: c.Name}
	}
	return items
}

// PickCommand displays a command picker and returns the selected command name
// Returns empty string if canceled
func (u *UI) PickCommand(commands []CommandInfo) string {
	return u.pick(newPickerModel("Commands", commandItems(commands), 40, 10))
}

// ModelInfo holds model info for the picker
type ModelInfo struct {
	ID          string
	Name        string
	Provider    string
	Description string
	IsCurrent   bool
}

func modelItems(models []ModelInfo) []pickerItem {
	items := make([]pickerItem, len(models))
	for i, m := range models {
		indicator := "  "
		if m.IsCurrent {
			indicator = "✓ "
		}
		items[i] = pickerItem{
			value: m.ID,
			title: indicator + m.Name,
			desc:  fmt.Sprintf("[%s] %s", m.Provider, m.Description),
			match: m.Name + " " + m.Provider,
		}
	}
	return items
}

// PickModel displays a model picker and returns the selected model ID
// Returns empty string if canceled
func (u *UI) PickModel(models []ModelInfo) string {
	return u.pick(newPickerModel("Select Model", modelItems(models), 60, 14))
}
