package console

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MJBeltran13/ai-chatbot-shop/internal/resolver"
)

type stubAnswerer struct {
	got resolver.Request
	res resolver.Result
	err error
}

func (s *stubAnswerer) Answer(_ context.Context, req resolver.Request) (resolver.Result, error) {
	s.got = req
	return s.res, s.err
}

func typeText(m tea.Model, text string) tea.Model {
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return m
}

func TestConsole_RoundTrip(t *testing.T) {
	a := &stubAnswerer{res: resolver.Result{Text: "The price of Camshaft is ₱1,700.", Intent: "price"}}
	m := New(a, 0)
	m.ShowIntent = true

	var model tea.Model = m
	model = typeText(model, "how much is camshaft")
	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, model.(Model).waiting)
	assert.Contains(t, model.(Model).transcript(), "thinking...")

	msg := cmd()
	assert.Equal(t, "how much is camshaft", a.got.Message)
	assert.Equal(t, "console", a.got.Context["channel"])

	model, _ = model.Update(msg)
	out := model.(Model).transcript()
	assert.False(t, model.(Model).waiting)
	assert.Contains(t, out, "₱1,700")
	assert.Contains(t, out, "[price]")
	assert.Equal(t, "", model.(Model).input.Value())
}

func TestConsole_ErrorShown(t *testing.T) {
	a := &stubAnswerer{res: resolver.Result{Text: resolver.ApologyEN}, err: errors.New("dispatch: boom")}
	var model tea.Model = New(a, 0)
	model = typeText(model, "hello")
	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model, _ = model.Update(cmd())

	out := model.(Model).transcript()
	assert.Contains(t, out, resolver.ApologyEN)
	assert.Contains(t, out, "dispatch: boom")
}

func TestConsole_IgnoresBlankAndQuits(t *testing.T) {
	var model tea.Model = New(&stubAnswerer{}, 0)
	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Empty(t, model.(Model).turns)

	model = typeText(model, "/quit")
	model, cmd = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, model.(Model).quitting)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
