// Package tui implements the interactive chat interface.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const answerTimeout = 5 * time.Minute

// Answerer is the chat-facing subset of the RAG pipeline.
type Answerer interface {
	Answer(ctx context.Context, question string) (string, error)
}

type message struct {
	role    string
	content string
}

// answerMsg carries the result of an in-flight question.
type answerMsg struct {
	answer string
	err    error
}

// Model is the Bubble Tea model for the chat session.
type Model struct {
	answerer  Answerer
	modelName string

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model

	messages []message
	waiting  bool
	ready    bool
}

// New creates a chat model that answers questions with the given
// pipeline. modelName is shown in the header.
func New(answerer Answerer, modelName string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask about your journal (Enter to send, Esc to quit)"
	ti.Focus()
	ti.CharLimit = 0

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		answerer:  answerer,
		modelName: modelName,
		input:     ti,
		viewport:  viewport.New(0, 0),
		spinner:   sp,
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key, window, and answer events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, ch := chatBoxStyle.GetFrameSize()
		_, ih := inputBoxStyle.GetFrameSize()
		reserved := 2 + ih + 1 + 1 // header, input box, status
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width-4)
		m.viewport.Height = max(3, vh-ch)
		m.input.Width = max(20, msg.Width-8)
		m.viewport.SetContent(m.renderMessages())
		m.viewport.GotoBottom()
		return m, nil

	case answerMsg:
		m.waiting = false
		if msg.err != nil {
			m.messages = append(m.messages, message{
				role:    "assistant",
				content: errorStyle.Render(fmt.Sprintf("Error: %v", msg.err)),
			})
		} else {
			m.messages = append(m.messages, message{role: "assistant", content: msg.answer})
		}
		m.viewport.SetContent(m.renderMessages())
		m.viewport.GotoBottom()
		return m, nil

	case spinner.TickMsg:
		if !m.waiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.viewport.SetContent(m.renderMessages())
		m.viewport.GotoBottom()
		return m, cmd

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
			return m, tea.Quit
		}
		if msg.Type == tea.KeyEnter {
			question := strings.TrimSpace(m.input.Value())
			switch strings.ToLower(question) {
			case "quit", "exit", "q":
				return m, tea.Quit
			}
			if question != "" && !m.waiting {
				m.messages = append(m.messages, message{role: "user", content: question})
				m.input.SetValue("")
				m.waiting = true
				m.viewport.SetContent(m.renderMessages())
				m.viewport.GotoBottom()
				return m, tea.Batch(m.ask(question), m.spinner.Tick)
			}
			return m, nil
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// ask runs the question through the pipeline off the update loop.
func (m Model) ask(question string) tea.Cmd {
	answerer := m.answerer
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), answerTimeout)
		defer cancel()
		answer, err := answerer.Answer(ctx, question)
		return answerMsg{answer: answer, err: err}
	}
}

// View renders the chat layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := titleStyle.Render("Journal Chat") + "  " + helpStyle.Render(m.modelName)
	chat := chatBoxStyle.Render(m.viewport.View())
	input := inputBoxStyle.Render(m.input.View())

	status := helpStyle.Render("Enter to send - Esc to quit")
	if m.waiting {
		status = m.spinner.View() + " Thinking..."
	}

	return header + "\n" + chat + "\n" + input + "\n" + status
}

func (m Model) renderMessages() string {
	if len(m.messages) == 0 && !m.waiting {
		return "Ask a question about your journal entries to get started."
	}

	var b strings.Builder
	for i, msg := range m.messages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		if msg.role == "user" {
			b.WriteString(userStyle.Render("You: ") + msg.content)
		} else {
			b.WriteString(aiStyle.Render("AI: ") + msg.content)
		}
	}
	if m.waiting {
		if len(m.messages) > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(aiStyle.Render("AI: ") + m.spinner.View() + " Thinking...")
	}

	if m.viewport.Width > 0 {
		return lipgloss.NewStyle().Width(m.viewport.Width).Render(b.String())
	}
	return b.String()
}

var (
	chatBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	titleStyle    = lipgloss.NewStyle().Bold(true)
	userStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	aiStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)
