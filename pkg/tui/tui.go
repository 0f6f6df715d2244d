// Package tui provides a terminal user interface for jazzimpro
package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/james-see/jazzimpro/pkg/converter"
	"github.com/james-see/jazzimpro/pkg/flow"
	"github.com/james-see/jazzimpro/pkg/i18n"
)

// Smoky jazz-club color scheme
var (
	brass     = lipgloss.Color("#D4A017")
	cream     = lipgloss.Color("#F5E6C8")
	smoke     = lipgloss.Color("#8C8C8C")
	nightBlue = lipgloss.Color("#1B2A41")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(brass).
			Background(nightBlue).
			Padding(0, 2).
			MarginBottom(1)

	menuStyle = lipgloss.NewStyle().
			Foreground(cream).
			PaddingLeft(2)

	selectedStyle = lipgloss.NewStyle().
			Foreground(brass).
			Bold(true).
			PaddingLeft(2)

	textStyle = lipgloss.NewStyle().
			Foreground(cream)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E0474C")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(smoke).
			MarginTop(1)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(brass).
			Padding(1, 2)
)

// calculatingDelay keeps the spinner on screen long enough to be seen
const calculatingDelay = 700 * time.Millisecond

const sessionID = "tui"

// State represents the current TUI state
type State int

const (
	StateMenu State = iota
	StateFlow
	StateCalculating
	StateResult
	StateFilePicker
	StateProgression
)

// MenuItem represents a menu option
type MenuItem struct {
	Title       string
	Description string
}

var menuItems = []MenuItem{
	{Title: "Build a chord", Description: "Pick a root, a type and an accidental"},
	{Title: "Open progression", Description: "Analyse a .txt file of chord symbols"},
	{Title: "Exit", Description: "Exit the application"},
}

const (
	menuBuild = iota
	menuOpen
	menuExit
)

// Model represents the TUI model
type Model struct {
	state      State
	menuIndex  int
	store      *flow.Store
	conv       *converter.Converter
	lang       string
	busyLabel  string
	reply      flow.Reply
	buttons    []flow.Button
	index      int
	filePicker filepicker.Model
	spinner    spinner.Model
	file       string
	output     string
	err        error
	width      int
	height     int
}

// calculatedMsg carries a finished reply once the spinner has run
type calculatedMsg struct {
	reply flow.Reply
}

// progressionMsg signals a progression file was analysed
type progressionMsg struct {
	text   string
	output string
	err    error
}

// New creates a new TUI model
func New(store *flow.Store, conv *converter.Converter, lang string) Model {
	fp := filepicker.New()
	fp.AllowedTypes = []string{".txt"}
	fp.CurrentDirectory, _ = os.Getwd()

	tr := i18n.MustNew()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(brass)

	return Model{
		state:      StateMenu,
		store:      store,
		conv:       conv,
		lang:       lang,
		busyLabel:  tr.T(tr.Match(lang), i18n.Calculating),
		filePicker: fp,
		spinner:    s,
	}
}

// Init initializes the TUI model
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles TUI updates
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == StateFilePicker {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "esc":
				m.state = StateMenu
				return m, nil
			case "q", "ctrl+c":
				return m, tea.Quit
			}
		}

		var cmd tea.Cmd
		m.filePicker, cmd = m.filePicker.Update(msg)

		if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
			m.file = path
			m.state = StateCalculating
			return m, tea.Batch(m.spinner.Tick, m.analyseFile())
		}
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.filePicker.SetHeight(msg.Height - 10)
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case StateMenu:
			return m.updateMenu(msg)
		case StateFlow:
			return m.updateFlow(msg)
		case StateResult:
			return m.updateResult(msg)
		case StateProgression:
			return m.updateProgression(msg)
		case StateCalculating:
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case calculatedMsg:
		m.showReply(msg.reply)
		return m, nil

	case progressionMsg:
		m.state = StateProgression
		m.err = msg.err
		m.output = msg.output
		m.reply = flow.Reply{Text: msg.text}
		return m, nil
	}

	return m, nil
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.menuIndex > 0 {
			m.menuIndex--
		}
	case "down", "j":
		if m.menuIndex < len(menuItems)-1 {
			m.menuIndex++
		}
	case "enter":
		switch m.menuIndex {
		case menuBuild:
			m.showReply(m.store.Start(sessionID, m.lang))
			return m, nil
		case menuOpen:
			m.state = StateFilePicker
			return m, m.filePicker.Init()
		case menuExit:
			return m, tea.Quit
		}
	case "q", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateFlow(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.index > 0 {
			m.index--
		}
	case "down", "j":
		if m.index < len(m.buttons)-1 {
			m.index++
		}
	case "enter":
		if len(m.buttons) == 0 {
			return m, nil
		}
		return m.press(m.buttons[m.index].Data)
	case "esc":
		sess, ok := m.store.Session(sessionID)
		if !ok {
			m.state = StateMenu
			return m, nil
		}
		switch sess.Step {
		case flow.StepType:
			return m.press(flow.ActionBackRoot)
		case flow.StepAccidental:
			return m.press(flow.ActionBackType)
		default:
			m.store.Cancel(sessionID)
			m.state = StateMenu
		}
	case "q", "ctrl+c":
		m.store.Cancel(sessionID)
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if len(m.buttons) > 0 {
			return m.press(m.buttons[0].Data)
		}
		m.state = StateMenu
	case "esc":
		m.state = StateMenu
	case "q", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateProgression(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.state = StateMenu
		m.err = nil
		m.file = ""
		m.output = ""
	case "q", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

// press sends button data to the session. A reply with a result goes
// through the calculating screen first.
func (m Model) press(data string) (tea.Model, tea.Cmd) {
	reply, err := m.store.Handle(sessionID, data)
	if err != nil {
		m.err = err
		return m, nil
	}
	m.err = nil

	if reply.Result != nil {
		m.state = StateCalculating
		return m, tea.Batch(m.spinner.Tick, tea.Tick(calculatingDelay, func(time.Time) tea.Msg {
			return calculatedMsg{reply: reply}
		}))
	}
	m.showReply(reply)
	return m, nil
}

func (m *Model) showReply(reply flow.Reply) {
	m.reply = reply
	m.buttons = nil
	for _, row := range reply.Keyboard {
		m.buttons = append(m.buttons, row...)
	}
	m.index = 0
	if reply.Closed {
		m.state = StateResult
	} else {
		m.state = StateFlow
	}
}

func (m Model) analyseFile() tea.Cmd {
	file, conv := m.file, m.conv
	return func() tea.Msg {
		symbols, err := converter.ReadSymbolsFile(file)
		if err != nil {
			return progressionMsg{err: err}
		}
		analyses, err := conv.Analyze(symbols)
		if err != nil {
			return progressionMsg{err: err}
		}

		output := strings.TrimSuffix(file, filepath.Ext(file)) + ".mid"
		data, err := conv.Render(analyses, converter.FormatMIDI)
		if err == nil {
			err = os.WriteFile(output, data, 0644)
		}
		if err != nil {
			return progressionMsg{text: converter.Text(analyses), err: err}
		}
		return progressionMsg{text: converter.Text(analyses), output: output}
	}
}

// View renders the TUI
func (m Model) View() string {
	var s strings.Builder

	s.WriteString(asciiLogo())
	s.WriteString("\n")

	switch m.state {
	case StateMenu:
		s.WriteString(m.viewMenu())
	case StateFlow, StateResult:
		s.WriteString(m.viewFlow())
	case StateCalculating:
		s.WriteString(m.viewCalculating())
	case StateFilePicker:
		s.WriteString(m.viewFilePicker())
	case StateProgression:
		s.WriteString(m.viewProgression())
	}

	s.WriteString("\n")
	s.WriteString(helpStyle.Render("↑/↓: navigate • enter: select • esc: back • q: quit"))

	return s.String()
}

func (m Model) viewMenu() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(" JAZZ IMPRO "))
	s.WriteString("\n\n")

	for i, item := range menuItems {
		if i == m.menuIndex {
			s.WriteString(selectedStyle.Render(fmt.Sprintf("▸ %s", item.Title)))
			s.WriteString("\n")
			s.WriteString(lipgloss.NewStyle().Foreground(smoke).PaddingLeft(4).Render(item.Description))
		} else {
			s.WriteString(menuStyle.Render(fmt.Sprintf("  %s", item.Title)))
		}
		s.WriteString("\n")
	}

	return boxStyle.Render(s.String())
}

func (m Model) viewFlow() string {
	var s strings.Builder

	s.WriteString(textStyle.Render(m.reply.Text))
	s.WriteString("\n\n")

	for i, b := range m.buttons {
		if i == m.index {
			s.WriteString(selectedStyle.Render("▸ " + b.Text))
		} else {
			s.WriteString(menuStyle.Render("  " + b.Text))
		}
		s.WriteString("\n")
	}

	if m.err != nil {
		s.WriteString("\n")
		s.WriteString(errorStyle.Render("✗ " + m.err.Error()))
	}

	return boxStyle.Render(s.String())
}

func (m Model) viewCalculating() string {
	return boxStyle.Render(fmt.Sprintf("%s %s", m.spinner.View(), m.busyLabel))
}

func (m Model) viewFilePicker() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(" SELECT PROGRESSION "))
	s.WriteString("\n\n")
	s.WriteString(m.filePicker.View())
	s.WriteString("\n")
	s.WriteString(helpStyle.Render("esc: back to menu"))

	return s.String()
}

func (m Model) viewProgression() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(" " + strings.ToUpper(filepath.Base(m.file)) + " "))
	s.WriteString("\n\n")
	if m.reply.Text != "" {
		s.WriteString(textStyle.Render(m.reply.Text))
		s.WriteString("\n")
	}
	if m.err != nil {
		s.WriteString(errorStyle.Render(fmt.Sprintf("✗ %s", m.err.Error())))
	} else {
		s.WriteString(fmt.Sprintf("MIDI: %s", filepath.Base(m.output)))
	}

	s.WriteString("\n\n")
	s.WriteString(helpStyle.Render("Press enter to continue"))

	return boxStyle.Render(s.String())
}

func asciiLogo() string {
	logo := `
       _                 _                           
      | | __ _ ________ (_)_ __ ___  _ __  _ __ ___  
   _  | |/ _' |_  /_  / | | '_ ' _ \| '_ \| '__/ _ \ 
  | |_| | (_| |/ / / /  | | | | | | | |_) | | | (_) |
   \___/ \__,_/___/___| |_|_| |_| |_| .__/|_|  \___/ 
                                    |_|              
`
	return lipgloss.NewStyle().Foreground(brass).Render(logo)
}

// Run starts the TUI application
func Run(store *flow.Store, conv *converter.Converter, lang string) error {
	p := tea.NewProgram(New(store, conv, lang), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
