package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModalLifecycle(t *testing.T) {
	var m Modal
	assert.False(t, m.Visible())

	m.OpenLoading("AI breakthrough", "https://example.com/ai")
	assert.True(t, m.Visible())
	assert.True(t, m.Loading())

	m.SetBody("Short summary.")
	assert.True(t, m.Visible())
	assert.False(t, m.Loading())
	assert.Equal(t, "Short summary.", m.Body())

	m.Dismiss()
	assert.False(t, m.Visible())
}

func TestModalDismissIsIdempotent(t *testing.T) {
	var m Modal

	m.OpenLoading("headline", "https://example.com/a")
	m.Dismiss()
	m.Dismiss()
	m.Dismiss()

	assert.False(t, m.Visible())
}

func TestModalContentAfterDismissIsDropped(t *testing.T) {
	var m Modal

	m.OpenLoading("headline", "https://example.com/a")
	m.Dismiss()

	m.SetBody("late summary")
	assert.False(t, m.Visible())
	assert.Equal(t, "", m.Body())

	m.SetError("late failure")
	assert.False(t, m.Visible())
	assert.Equal(t, "", m.Error())
}

func TestModalErrorState(t *testing.T) {
	var m Modal

	m.OpenLoading("headline", "https://example.com/a")
	m.SetError("Rate limit reached")

	assert.True(t, m.Visible())
	assert.False(t, m.Loading())
	assert.Equal(t, "Rate limit reached", m.Error())

	view := m.View(100, 30, "")
	assert.Contains(t, view, "✗ Rate limit reached")
}

func TestModalViewShowsTitleAndBody(t *testing.T) {
	var m Modal

	m.OpenLoading("AI breakthrough", "https://example.com/ai")
	view := m.View(100, 30, "")
	assert.Contains(t, view, "AI breakthrough")
	assert.Contains(t, view, "https://example.com/ai")
	assert.Contains(t, view, MsgSummarizing)

	m.SetBody("Short summary.")
	view = m.View(100, 30, "")
	assert.Contains(t, view, "Short summary.")
	assert.Contains(t, view, "esc: close")
}

func TestModalReopenAfterDismiss(t *testing.T) {
	var m Modal

	m.OpenLoading("first", "https://example.com/1")
	m.SetBody("first summary")
	m.Dismiss()

	m.OpenLoading("second", "https://example.com/2")
	assert.True(t, m.Visible())
	assert.True(t, m.Loading())
	assert.Equal(t, "", m.Body())
	assert.Contains(t, m.View(100, 30, ""), "second")
}
