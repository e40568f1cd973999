// Package picker is the interactive workbook chooser shown when no file is
// given on the command line. It follows The Elm Architecture of bubbletea:
// the Model holds the file browser, Update reacts to keys and directory
// reads, View renders it.
package picker

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"bluebook/internal/validation"
)

// ErrCancelled is returned when the user leaves the picker without choosing.
var ErrCancelled = errors.New("no workbook selected")

const title = "Select a Blue Book workbook"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF"))
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))
	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
)

type clearErrorMsg struct{}

func clearErrorAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearErrorMsg{}
	})
}

// Model is the picker state.
type Model struct {
	filepicker filepicker.Model
	selected   string
	err        error
	quitting   bool
}

// New creates a picker rooted at startDir that only accepts workbooks.
func New(startDir string) Model {
	fp := filepicker.New()
	fp.CurrentDirectory = startDir
	fp.AllowedTypes = allowedTypes()
	fp.ShowPermissions = false
	return Model{filepicker: fp}
}

// allowedTypes lists workbook extensions in lower and upper case, since the
// file browser compares suffixes case-sensitively.
func allowedTypes() []string {
	types := make([]string, 0, 2*len(validation.WorkbookExtensions))
	for _, ext := range validation.WorkbookExtensions {
		types = append(types, ext, strings.ToUpper(ext))
	}
	return types
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.filepicker.Init()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		}
	case clearErrorMsg:
		m.err = nil
	}

	var cmd tea.Cmd
	m.filepicker, cmd = m.filepicker.Update(msg)

	if ok, path := m.filepicker.DidSelectFile(msg); ok {
		m.selected = path
		return m, tea.Quit
	}
	if ok, path := m.filepicker.DidSelectDisabledFile(msg); ok {
		m.err = fmt.Errorf("%s is not a workbook", path)
		m.selected = ""
		return m, tea.Batch(cmd, clearErrorAfter(2*time.Second))
	}
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting || m.selected != "" {
		return ""
	}

	var status string
	switch {
	case m.err != nil:
		status = errorStyle.Render(m.err.Error())
	default:
		status = hintStyle.Render(m.filepicker.CurrentDirectory)
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(title),
		status,
		"",
		m.filepicker.View(),
	)
	return lipgloss.JoinVertical(lipgloss.Left,
		boxStyle.Render(body),
		hintStyle.Render("enter: open/select  ←/backspace: up  q: cancel"),
	)
}

// Selected returns the chosen workbook, or "" when none was chosen.
func (m Model) Selected() string {
	return m.selected
}

// Run shows the picker on out (the terminal) and returns the chosen path.
func Run(startDir string, in io.Reader, out io.Writer) (string, error) {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stderr
	}

	final, err := tea.NewProgram(New(startDir), tea.WithInput(in), tea.WithOutput(out)).Run()
	if err != nil {
		return "", fmt.Errorf("file picker failed: %w", err)
	}
	m, ok := final.(Model)
	if !ok || m.Selected() == "" {
		return "", ErrCancelled
	}
	return m.Selected(), nil
}
