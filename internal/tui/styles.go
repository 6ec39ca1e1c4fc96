package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/Hemanthkumar04/newslens/internal/config"
)

const AppName = "newslens"

// ASCII wordmark for newslens - canonical definition
var LogoLines = []string{
	"┌┐┌┌─┐┬ ┬┌─┐┬  ┌─┐┌┐┌┌─┐",
	"│││├┤ │││└─┐│  ├┤ │││└─┐",
	"┘└┘└─┘└┴┘└─┘┴─┘└─┘┘└┘└─┘",
}

const CompactLogo = `newslens ›`

// Banner gradient colors
var BannerColors = []lipgloss.Color{
	lipgloss.Color("#FF6B6B"),
	lipgloss.Color("#FFA86B"),
	lipgloss.Color("#95E1D3"),
	lipgloss.Color("#4ECDC4"),
}

// Brand colors, dawn-to-night progression. These are the defaults; a
// config [ui.colors] section can override them via applyTheme.
var (
	PrimaryColor   = lipgloss.Color("#FF6B6B") // Warm coral - dawn
	SecondaryColor = lipgloss.Color("#4ECDC4") // Teal - morning
	AccentColor    = lipgloss.Color("#95E1D3") // Mint - fresh start

	BackgroundColor = lipgloss.Color("#1A1A2E") // Deep night
	SurfaceColor    = lipgloss.Color("#16213E") // Midnight blue
	TextColor       = lipgloss.Color("#EAEAEA") // Soft white
	MutedColor      = lipgloss.Color("#94A3B8") // Muted gray-blue

	ErrorColor   = lipgloss.Color("#F87171") // Red
	SuccessColor = lipgloss.Color("#4ADE80") // Green
)

// Styled components
var (
	LogoStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)

	TitleStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Background(SurfaceColor).
			Bold(true).
			Padding(0, 2)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Bold(true)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Padding(0, 1)

	HelpStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Italic(true)

	TimeStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Faint(true)

	SourceStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Bold(true)

	CardTitleStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Bold(true)

	CardDescStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	SkeletonStyle = lipgloss.NewStyle().
			Foreground(SurfaceColor)

	TopicActiveStyle = lipgloss.NewStyle().
				Foreground(BackgroundColor).
				Background(AccentColor).
				Bold(true).
				Padding(0, 1)

	TopicInactiveStyle = lipgloss.NewStyle().
				Foreground(MutedColor).
				Padding(0, 1)

	ModalTextStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	ModalHighlightStyle = lipgloss.NewStyle().
				Foreground(AccentColor).
				Bold(true)

	ErrorMessageStyle = lipgloss.NewStyle().
				Foreground(ErrorColor).
				Bold(true)

	StatusSuccessStyle = lipgloss.NewStyle().
				Foreground(SuccessColor)

	SeparatorStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	// Empty style for sizing wrappers
	EmptyStyle = lipgloss.NewStyle()
)

// applyTheme rebinds the palette from config and rebuilds every style
// that references it. Unset colors keep their defaults.
func applyTheme(c config.UIColors) {
	set := func(dst *lipgloss.Color, hex string) {
		if hex != "" {
			*dst = lipgloss.Color(hex)
		}
	}
	set(&PrimaryColor, c.Primary)
	set(&SecondaryColor, c.Secondary)
	set(&AccentColor, c.Accent)
	set(&BackgroundColor, c.Background)
	set(&SurfaceColor, c.Surface)
	set(&TextColor, c.Text)
	set(&MutedColor, c.Muted)
	set(&ErrorColor, c.Error)
	set(&SuccessColor, c.Success)

	LogoStyle = LogoStyle.Foreground(PrimaryColor)
	TitleStyle = TitleStyle.Foreground(TextColor).Background(SurfaceColor)
	HeaderStyle = HeaderStyle.Foreground(SecondaryColor)
	StatusBarStyle = StatusBarStyle.Foreground(MutedColor)
	HelpStyle = HelpStyle.Foreground(MutedColor)
	TimeStyle = TimeStyle.Foreground(MutedColor)
	SourceStyle = SourceStyle.Foreground(SecondaryColor)
	CardTitleStyle = CardTitleStyle.Foreground(TextColor)
	CardDescStyle = CardDescStyle.Foreground(MutedColor)
	SkeletonStyle = SkeletonStyle.Foreground(SurfaceColor)
	TopicActiveStyle = TopicActiveStyle.Foreground(BackgroundColor).Background(AccentColor)
	TopicInactiveStyle = TopicInactiveStyle.Foreground(MutedColor)
	ModalTextStyle = ModalTextStyle.Foreground(TextColor)
	ModalHighlightStyle = ModalHighlightStyle.Foreground(AccentColor)
	ErrorMessageStyle = ErrorMessageStyle.Foreground(ErrorColor)
	StatusSuccessStyle = StatusSuccessStyle.Foreground(SuccessColor)
	SeparatorStyle = SeparatorStyle.Foreground(MutedColor)
}

func GetCompactBanner(message string) string {
	var coloredLines []string
	for _, line := range LogoLines {
		coloredLines = append(coloredLines, LogoStyle.Render(line))
	}

	logo := lipgloss.JoinVertical(lipgloss.Center, coloredLines...)

	return lipgloss.JoinVertical(
		lipgloss.Center,
		logo,
		"",
		HelpStyle.Render(message),
	)
}

// ShowBanner prints the startup banner for CLI subcommands. The TUI
// itself never calls this; stdout belongs to bubbletea there.
func ShowBanner(version string) {
	lines := make([]string, len(LogoLines)+1)
	copy(lines, LogoLines)
	lines[len(LogoLines)] = ""

	versionTag := version
	if versionTag != "" && versionTag != "dev" {
		if versionTag[0] != 'v' && versionTag[0] != 'V' {
			versionTag = "v" + versionTag
		}
		lines = append(lines, fmt.Sprintf("News at terminal speed %s", versionTag))
	} else {
		lines = append(lines, "News at terminal speed")
	}

	var coloredLines []string
	for i, line := range lines {
		if line == "" {
			coloredLines = append(coloredLines, line)
			continue
		}

		colorIdx := i % len(BannerColors)
		style := lipgloss.NewStyle().
			Foreground(BannerColors[colorIdx]).
			Bold(i < len(LogoLines))

		coloredLines = append(coloredLines, style.Render(line))
	}

	banner := lipgloss.JoinVertical(lipgloss.Center, coloredLines...)
	output := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(SecondaryColor).
		Padding(1, 3).
		MarginTop(1).
		Render(banner)

	fmt.Println(lipgloss.NewStyle().
		Width(60).
		Align(lipgloss.Center).
		Render(output))
}
