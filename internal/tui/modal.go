package tui

import "github.com/charmbracelet/lipgloss"

type modalState int

const (
	modalHidden modalState = iota
	modalLoading
	modalReady
	modalFailed
)

// Modal is the summary overlay. It opens in a loading state the moment
// a summary is requested and fills in (or fails) when the network
// answer arrives. Dismissing it is idempotent; content arriving after a
// dismissal is dropped rather than resurrecting the overlay.
type Modal struct {
	state   modalState
	title   string
	url     string
	body    string
	errText string
}

// OpenLoading shows the modal with a placeholder body.
func (m *Modal) OpenLoading(title, url string) {
	m.state = modalLoading
	m.title = title
	m.url = url
	m.body = ""
	m.errText = ""
}

// SetBody fills the modal with the summary text. No-op when hidden.
func (m *Modal) SetBody(body string) {
	if m.state == modalHidden {
		return
	}
	m.state = modalReady
	m.body = body
	m.errText = ""
}

// SetError replaces the modal body with an inline error. No-op when
// hidden.
func (m *Modal) SetError(msg string) {
	if m.state == modalHidden {
		return
	}
	m.state = modalFailed
	m.errText = msg
	m.body = ""
}

// Dismiss hides the modal regardless of its current state.
func (m *Modal) Dismiss() {
	m.state = modalHidden
	m.title = ""
	m.url = ""
	m.body = ""
	m.errText = ""
}

func (m *Modal) Visible() bool { return m.state != modalHidden }
func (m *Modal) Loading() bool { return m.state == modalLoading }
func (m *Modal) Body() string  { return m.body }
func (m *Modal) Error() string { return m.errText }

// View renders the overlay. spin is the current spinner frame, shown
// while the summary is loading; pass "" to omit it.
func (m *Modal) View(width, height int, spin string) string {
	if !m.Visible() {
		return ""
	}

	modalWidth := (width * 4) / 5
	if modalWidth > 72 {
		modalWidth = 72
	}
	if modalWidth < 20 {
		modalWidth = width - 4
		if modalWidth < 15 {
			modalWidth = width
		}
	}
	inner := modalWidth - 4

	var body string
	switch m.state {
	case modalLoading:
		body = renderMuted(MsgSummarizing)
		if spin != "" {
			body = spin + " " + body
		}
	case modalFailed:
		body = ErrorMessageStyle.Render("✗ " + m.errText)
	default:
		body = renderMarkdown(m.body, inner)
	}

	lines := []string{
		HeaderStyle.Render("› summary"),
		"",
		ModalHighlightStyle.Width(inner).Render(truncateEnd(m.title, inner*2)),
	}
	if m.url != "" {
		lines = append(lines, renderMuted(truncateMiddle(m.url, inner)))
	}
	lines = append(lines, "", body, "", renderHelp("esc: close"))

	box := lipgloss.JoinVertical(lipgloss.Left, lines...)

	framed := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(AccentColor).
		Padding(1, 2).
		Width(modalWidth - 2).
		Render(box)

	return renderCentered(width, height, framed)
}
