// internal/tui/model.go
// Package tui implements the interactive ask/build interface.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	minTopK = 1
	maxTopK = 8
)

// AnswerFunc streams the answer for a question; every value is the full
// accumulated answer so far.
type AnswerFunc func(ctx context.Context, question string, topK int) <-chan string

// BuildFunc rebuilds the index, reporting progress, and returns a status line.
type BuildFunc func(ctx context.Context, onProgress func(current, total int, label string)) (string, error)

type answerMsg string

type answerDoneMsg struct{}

type buildProgressMsg struct {
	current int
	total   int
	label   string
}

type buildDoneMsg struct {
	status string
	err    error
}

// Model is the Bubble Tea model for the ask interface.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	answer AnswerFunc
	build  BuildFunc

	input    textinput.Model
	viewport viewport.Model

	topK      int
	status    string
	answering bool
	building  bool
	ready     bool

	answerCh    <-chan string
	answerStop  context.CancelFunc
	buildEvents chan tea.Msg
}

// New creates the ask interface model.
func New(ctx context.Context, answer AnswerFunc, build BuildFunc) *Model {
	ctx, cancel := context.WithCancel(ctx)

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "e.g. What is machine learning?"
	ti.Focus()
	ti.CharLimit = 0

	return &Model{
		ctx:      ctx,
		cancel:   cancel,
		answer:   answer,
		build:    build,
		input:    ti,
		viewport: viewport.New(0, 0),
		topK:     3,
		status:   "Enter a question. ctrl+b rebuilds the index.",
	}
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key, window, and stream events.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, ah := answerBoxStyle.GetFrameSize()
		_, qh := questionBoxStyle.GetFrameSize()
		reserved := 2 + 1 + qh + 1
		vh := msg.Height - reserved - ah
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = maxInt(20, msg.Width-2)
		m.viewport.Height = vh
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
			m.cancel()
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			return m.startAnswer()
		case "ctrl+k":
			if m.topK < maxTopK {
				m.topK++
			}
			return m, nil
		case "ctrl+j":
			if m.topK > minTopK {
				m.topK--
			}
			return m, nil
		case "ctrl+b":
			return m.startBuild()
		}

	case answerMsg:
		m.viewport.SetContent(string(msg))
		m.viewport.GotoBottom()
		return m, waitForAnswer(m.answerCh)

	case answerDoneMsg:
		m.answering = false
		if m.answerStop != nil {
			m.answerStop()
			m.answerStop = nil
		}
		m.status = fmt.Sprintf("Done. top-k=%d", m.topK)
		return m, nil

	case buildProgressMsg:
		m.status = fmt.Sprintf("[%d/%d] %s", msg.current, msg.total, msg.label)
		return m, waitForBuildEvent(m.buildEvents)

	case buildDoneMsg:
		m.building = false
		m.buildEvents = nil
		if msg.err != nil {
			m.status = "Index build failed: " + msg.err.Error()
		} else {
			m.status = msg.status
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) startAnswer() (tea.Model, tea.Cmd) {
	if m.answering || m.building {
		return m, nil
	}
	question := strings.TrimSpace(m.input.Value())

	ctx, stop := context.WithCancel(m.ctx)
	m.answerStop = stop
	m.answerCh = m.answer(ctx, question, m.topK)
	m.answering = true
	m.status = fmt.Sprintf("Asking (top-k=%d)...", m.topK)
	m.viewport.SetContent("")
	return m, waitForAnswer(m.answerCh)
}

func (m *Model) startBuild() (tea.Model, tea.Cmd) {
	if m.answering || m.building {
		return m, nil
	}
	events := make(chan tea.Msg, 16)
	m.buildEvents = events
	m.building = true
	m.status = "Building index..."

	build := m.build
	ctx := m.ctx
	go func() {
		status, err := build(ctx, func(current, total int, label string) {
			events <- buildProgressMsg{current: current, total: total, label: label}
		})
		events <- buildDoneMsg{status: status, err: err}
		close(events)
	}()
	return m, waitForBuildEvent(events)
}

func waitForAnswer(ch <-chan string) tea.Cmd {
	return func() tea.Msg {
		value, ok := <-ch
		if !ok {
			return answerDoneMsg{}
		}
		return answerMsg(value)
	}
}

func waitForBuildEvent(ch chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}

// View renders the layout: header, answer pane, question input, status line.
func (m *Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := headerStyle.Render("papyr — ask your corpus")
	answer := answerBoxStyle.Render(m.viewport.View())
	question := questionBoxStyle.Render(m.input.View())
	status := statusStyle.Render(fmt.Sprintf("%s  (top-k=%d, ctrl+k/ctrl+j adjust)", m.status, m.topK))
	return header + "\n" + answer + "\n" + question + "\n" + status
}

var (
	headerStyle      = lipgloss.NewStyle().Bold(true)
	answerBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	questionBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	statusStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Run starts the interactive program.
func Run(ctx context.Context, answer AnswerFunc, build BuildFunc) error {
	program := tea.NewProgram(New(ctx, answer, build), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
