package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Hemanthkumar04/newslens/internal/config"
	"github.com/Hemanthkumar04/newslens/internal/newsapi"
)

// Card geometry. Every card renders at a fixed height so the grid math
// stays trivial; lipgloss pads short content and truncates long.
const (
	cardTitleLines = 2
	cardDescLines  = 3
	cardHeight     = 1 + cardTitleLines + cardDescLines + 2 // header + body + border
)

// CardViewModel is the derived, display-ready form of one article. The
// lowercase fields exist only for the filter; display fields carry the
// fallback strings. A fresh set is built on every render, there is no
// incremental diffing.
type CardViewModel struct {
	Article newsapi.Article

	Title       string
	Description string
	Source      string
	Date        string
	HasImage    bool

	TitleLower  string
	DescLower   string
	SourceLower string

	Visible bool
}

func newCardViewModel(a newsapi.Article, dateFormat string) CardViewModel {
	title := strings.TrimSpace(a.Title)

	desc := strings.TrimSpace(a.Description)
	if desc == "" {
		desc = MsgNoDescription
	}

	source := strings.TrimSpace(a.Source.Name)
	if source == "" {
		source = MsgUnknownSource
	}

	return CardViewModel{
		Article:     a,
		Title:       title,
		Description: desc,
		Source:      source,
		Date:        formatDate(a.PublishedAt, dateFormat),
		HasImage:    strings.TrimSpace(a.URLToImage) != "",

		// Lowercase copies come from the raw article, not the display
		// fallbacks, so "unknown" never matches a card that merely
		// lacks a source.
		TitleLower:  strings.ToLower(a.Title),
		DescLower:   strings.ToLower(a.Description),
		SourceLower: strings.ToLower(a.Source.Name),

		Visible: true,
	}
}

// formatDate renders an ISO-8601 timestamp in the configured short
// local form. Absent or unparsable timestamps render empty.
func formatDate(iso, layout string) string {
	iso = strings.TrimSpace(iso)
	if iso == "" {
		return ""
	}
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return ""
	}
	return t.Local().Format(layout)
}

func renderCard(c *CardViewModel, ui config.UIConfig, selected bool) string {
	inner := ui.CardWidth - 4
	if inner < 10 {
		inner = 10
	}

	marker := "□"
	if c.HasImage {
		marker = "▣"
	}

	dateText := c.Date
	srcMax := inner - len([]rune(dateText)) - 1
	srcText := truncateEnd(marker+" "+c.Source, srcMax)
	pad := inner - len([]rune(srcText)) - len([]rune(dateText))
	if pad < 0 {
		pad = 0
	}
	header := SourceStyle.Render(srcText) + strings.Repeat(" ", pad) + TimeStyle.Render(dateText)

	title := CardTitleStyle.
		Width(inner).
		Height(cardTitleLines).
		MaxHeight(cardTitleLines).
		Render(c.Title)

	desc := CardDescStyle.
		Width(inner).
		Height(cardDescLines).
		MaxHeight(cardDescLines).
		Render(c.Description)

	body := lipgloss.JoinVertical(lipgloss.Left, header, title, desc)

	borderColor := MutedColor
	if selected {
		borderColor = AccentColor
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Width(ui.CardWidth - 2).
		Render(body)
}

// renderSkeletonCard draws a placeholder card shown while a fetch is in
// flight.
func renderSkeletonCard(ui config.UIConfig) string {
	inner := ui.CardWidth - 4
	if inner < 10 {
		inner = 10
	}

	bar := func(n int) string {
		if n > inner {
			n = inner
		}
		return SkeletonStyle.Render(strings.Repeat("░", n))
	}

	body := lipgloss.JoinVertical(
		lipgloss.Left,
		bar(inner/2),
		bar(inner),
		bar(inner-4),
		bar(inner*3/4),
		bar(inner/3),
		"",
	)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(SurfaceColor).
		Padding(0, 1).
		Width(ui.CardWidth - 2).
		Render(body)
}
