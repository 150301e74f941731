// Package console is an interactive terminal chat for trying the bot locally.
package console

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MJBeltran13/ai-chatbot-shop/internal/catalog"
	"github.com/MJBeltran13/ai-chatbot-shop/internal/resolver"
)

// --- Styles ---

var (
	titleStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("62")).
			Foreground(lipgloss.Color("230")).
			Padding(0, 1).
			Bold(true)
	userStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	botStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	intentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	docStyle    = lipgloss.NewStyle().Padding(1, 2)
)

// Answerer is the resolver as the console sees it.
type Answerer interface {
	Answer(ctx context.Context, req resolver.Request) (resolver.Result, error)
}

type turn struct {
	user   string
	bot    string
	intent string
	err    error
}

type answerMsg struct {
	res resolver.Result
	err error
}

// Model is the bubbletea model of the chat console.
type Model struct {
	answerer Answerer
	timeout  time.Duration

	input    textinput.Model
	viewport viewport.Model
	turns    []turn
	waiting  bool
	quitting bool
	// ShowIntent prints the answering intent under every reply.
	ShowIntent bool
}

func New(a Answerer, timeout time.Duration) Model {
	ti := textinput.New()
	ti.Placeholder = "Ask about parts, prices, services... (Tagalog ok)"
	ti.Prompt = "› "
	ti.CharLimit = 500
	ti.Focus()

	if timeout <= 0 {
		timeout = time.Minute
	}
	return Model{answerer: a, timeout: timeout, input: ti, viewport: viewport.New(80, 20)}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			text := strings.TrimSpace(m.input.Value())
			if text == "" || m.waiting {
				return m, nil
			}
			if text == "/quit" || text == "/exit" {
				m.quitting = true
				return m, tea.Quit
			}
			m.turns = append(m.turns, turn{user: text})
			m.input.Reset()
			m.waiting = true
			m.refresh()
			return m, m.ask(text)
		}

	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width - 4
		m.viewport.Height = msg.Height - 8
		m.input.Width = msg.Width - 8
		m.refresh()

	case answerMsg:
		m.waiting = false
		if n := len(m.turns); n > 0 {
			m.turns[n-1].bot = msg.res.Text
			m.turns[n-1].intent = msg.res.Intent
			m.turns[n-1].err = msg.err
		}
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	if scrolls(msg) {
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// scrolls keeps typed letters out of the viewport's vim-style key bindings.
func scrolls(msg tea.Msg) bool {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return true
	}
	switch k.Type {
	case tea.KeyPgUp, tea.KeyPgDown, tea.KeyUp, tea.KeyDown:
		return true
	}
	return false
}

func (m Model) ask(text string) tea.Cmd {
	a, timeout := m.answerer, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		res, err := a.Answer(ctx, resolver.Request{
			Message: text,
			Context: map[string]any{"channel": "console"},
		})
		return answerMsg{res: res, err: err}
	}
}

func (m *Model) refresh() {
	m.viewport.SetContent(m.transcript())
	m.viewport.GotoBottom()
}

func (m Model) transcript() string {
	var b strings.Builder
	for _, t := range m.turns {
		b.WriteString(userStyle.Render("You: ") + t.user + "\n")
		switch {
		case t.bot == "" && t.err == nil:
			b.WriteString(botStyle.Render(catalog.BotName+": ") + helpStyle.Render("thinking...") + "\n")
		default:
			b.WriteString(botStyle.Render(catalog.BotName+": ") + t.bot + "\n")
			if t.err != nil {
				b.WriteString(errStyle.Render("  error: "+t.err.Error()) + "\n")
			}
			if m.ShowIntent && t.intent != "" {
				b.WriteString(intentStyle.Render("  ["+t.intent+"]") + "\n")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) View() string {
	if m.quitting {
		return "Salamat! Goodbye.\n"
	}
	header := titleStyle.Render(fmt.Sprintf("%s · %s Auto Parts", catalog.BotName, catalog.ShopName))
	footer := helpStyle.Render("enter: send • /quit or esc: exit")
	return docStyle.Render(strings.Join([]string{header, m.viewport.View(), m.input.View(), footer}, "\n\n"))
}

// Run starts the console on the terminal and blocks until the user quits.
func Run(a Answerer, timeout time.Duration, showIntent bool) error {
	m := New(a, timeout)
	m.ShowIntent = showIntent
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
