package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// renderInputFrame draws a rounded bordered container around a rendered
// input view. Pass the already-rendered input view string.
func renderInputFrame(inputView string, focused bool, contentWidth int) string {
	borderColor := MutedColor
	if focused {
		borderColor = AccentColor
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Width(contentWidth + 4).
		Render(inputView)
}

// renderCentered centers the provided content within the given box.
func renderCentered(width, height int, content string) string {
	return EmptyStyle.
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// renderMuted renders text in muted color (utility wrapper).
func renderMuted(text string) string {
	return lipgloss.NewStyle().Foreground(MutedColor).Render(text)
}

// renderHelp renders help/instructional text consistently.
func renderHelp(text string) string {
	return HelpStyle.Render(text)
}

// renderMarkdown renders summary text through glamour, wrapped to the
// given width. Falls back to plainly styled text when the renderer is
// unavailable.
func renderMarkdown(text string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return ModalTextStyle.Width(width).Render(text)
	}
	out, err := r.Render(text)
	if err != nil {
		return ModalTextStyle.Width(width).Render(text)
	}
	return strings.TrimRight(out, "\n")
}
