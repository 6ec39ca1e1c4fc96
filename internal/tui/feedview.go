package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Hemanthkumar04/newslens/internal/config"
	"github.com/Hemanthkumar04/newslens/internal/newsapi"
)

type feedState int

const (
	feedEmpty feedState = iota
	feedLoading
	feedPopulated
	feedErrored
)

// TitleFilter reports whether a title is an upstream redaction marker
// and the article should be dropped before rendering.
type TitleFilter func(title string) bool

// RemovedTitleFilter matches the configured sentinel titles exactly,
// ignoring surrounding whitespace.
func RemovedTitleFilter(markers []string) TitleFilter {
	return func(title string) bool {
		title = strings.TrimSpace(title)
		for _, m := range markers {
			if title == m {
				return true
			}
		}
		return false
	}
}

// FeedView owns the card grid: one display state at a time, a cursor
// over the visible cards, and the status/error text for the bar below.
// It never initiates network calls; the controller feeds it articles.
type FeedView struct {
	ui      config.UIConfig
	removed TitleFilter
	filter  *FilterEngine

	width  int
	height int

	state     feedState
	cards     []CardViewModel
	cursor    int // position within the visible card sequence
	rowOffset int
	skeletons int

	status  string
	errText string
}

func NewFeedView(ui config.UIConfig, removed TitleFilter) *FeedView {
	if removed == nil {
		removed = RemovedTitleFilter(ui.RemovedTitleMarkers)
	}
	return &FeedView{
		ui:      ui,
		removed: removed,
		filter:  &FilterEngine{},
		state:   feedEmpty,
	}
}

func (f *FeedView) SetSize(width, height int) {
	f.width = width
	f.height = height
}

// ShowLoading clears the grid and displays placeholder cards. This is a
// synchronous transition; callers run it before issuing the fetch so
// feedback is immediate. count <= 0 falls back to the configured count.
func (f *FeedView) ShowLoading(count int) {
	if count <= 0 {
		count = f.ui.SkeletonCount
	}
	if count < 0 {
		count = 0
	}
	f.state = feedLoading
	f.cards = nil
	f.cursor = 0
	f.rowOffset = 0
	f.skeletons = count
	f.status = ""
	f.errText = ""
}

// SetArticles replaces the grid content. Articles with a missing or
// sentinel title are skipped; an empty result sets the no-articles
// status and leaves zero cards. A successful render clears any prior
// status or error and re-applies the current filter query, so the
// visible set always reflects the latest fetch under the latest query.
func (f *FeedView) SetArticles(articles []newsapi.Article) {
	cards := make([]CardViewModel, 0, len(articles))
	for _, a := range articles {
		if strings.TrimSpace(a.Title) == "" || f.removed(a.Title) {
			continue
		}
		cards = append(cards, newCardViewModel(a, f.ui.DateFormat))
	}

	f.cards = cards
	f.cursor = 0
	f.rowOffset = 0

	if len(f.cards) == 0 {
		f.state = feedEmpty
		f.status = MsgNoArticles
		f.errText = ""
		return
	}

	f.state = feedPopulated
	f.status = ""
	f.errText = ""
	f.filter.Apply(f.cards)
}

// SetError clears the grid and records the error text. Skeletons never
// outlive a failed fetch.
func (f *FeedView) SetError(msg string) {
	f.state = feedErrored
	f.cards = nil
	f.cursor = 0
	f.rowOffset = 0
	f.errText = msg
	f.status = ""
}

func (f *FeedView) SetStatus(msg string) {
	f.status = msg
}

func (f *FeedView) Status() string { return f.status }
func (f *FeedView) Error() string  { return f.errText }

// ApplyFilter updates card visibility for the query and returns the
// visible count.
func (f *FeedView) ApplyFilter(query string) int {
	f.filter.SetQuery(query)
	n := f.filter.Apply(f.cards)
	f.clampCursor()
	return n
}

func (f *FeedView) FilterQuery() string { return f.filter.Query() }
func (f *FeedView) FilterActive() bool  { return f.filter.Active() }

func (f *FeedView) CardCount() int { return len(f.cards) }

func (f *FeedView) VisibleCount() int {
	n := 0
	for i := range f.cards {
		if f.cards[i].Visible {
			n++
		}
	}
	return n
}

// Cards exposes the current view models for inspection.
func (f *FeedView) Cards() []CardViewModel { return f.cards }

// visibleIndex returns card indices in display order, filtered.
func (f *FeedView) visibleIndex() []int {
	idx := make([]int, 0, len(f.cards))
	for i := range f.cards {
		if f.cards[i].Visible {
			idx = append(idx, i)
		}
	}
	return idx
}

// SelectedCard returns the card under the cursor, if any.
func (f *FeedView) SelectedCard() (*CardViewModel, bool) {
	if f.state != feedPopulated {
		return nil, false
	}
	vis := f.visibleIndex()
	if len(vis) == 0 {
		return nil, false
	}
	pos := f.cursor
	if pos >= len(vis) {
		pos = len(vis) - 1
	}
	return &f.cards[vis[pos]], true
}

func (f *FeedView) MoveLeft()  { f.moveCursor(-1) }
func (f *FeedView) MoveRight() { f.moveCursor(1) }
func (f *FeedView) MoveUp()    { f.moveCursor(-f.columns()) }
func (f *FeedView) MoveDown()  { f.moveCursor(f.columns()) }

func (f *FeedView) moveCursor(delta int) {
	vis := f.visibleIndex()
	if len(vis) == 0 {
		f.cursor = 0
		return
	}
	pos := f.cursor + delta
	if pos < 0 {
		pos = 0
	}
	if pos > len(vis)-1 {
		pos = len(vis) - 1
	}
	f.cursor = pos
}

func (f *FeedView) clampCursor() {
	vis := f.visibleIndex()
	if len(vis) == 0 {
		f.cursor = 0
		f.rowOffset = 0
		return
	}
	if f.cursor > len(vis)-1 {
		f.cursor = len(vis) - 1
	}
}

func (f *FeedView) columns() int {
	cardW := f.ui.CardWidth + 1 // single-space gutter
	cols := (f.width + 1) / cardW
	if cols < 1 {
		cols = 1
	}
	return cols
}

func (f *FeedView) View() string {
	switch f.state {
	case feedLoading:
		return f.viewSkeletons()
	case feedErrored:
		return renderCentered(f.width, f.height, ErrorMessageStyle.Render("✗ "+f.errText))
	case feedPopulated:
		return f.viewGrid()
	default:
		msg := f.status
		if msg == "" {
			return ""
		}
		return renderCentered(f.width, f.height, GetCompactBanner(msg))
	}
}

func (f *FeedView) viewSkeletons() string {
	if f.skeletons == 0 {
		return ""
	}
	cards := make([]string, f.skeletons)
	skeleton := renderSkeletonCard(f.ui)
	for i := range cards {
		cards[i] = skeleton
	}
	return f.layoutRows(cards, -1)
}

func (f *FeedView) viewGrid() string {
	vis := f.visibleIndex()
	if len(vis) == 0 {
		return renderCentered(f.width, f.height, renderMuted(MsgNoFilterMatch))
	}

	pos := f.cursor
	if pos >= len(vis) {
		pos = len(vis) - 1
	}

	cards := make([]string, len(vis))
	for i, ci := range vis {
		cards[i] = renderCard(&f.cards[ci], f.ui, i == pos)
	}
	return f.layoutRows(cards, pos)
}

// layoutRows lays rendered cards into a grid, windowed vertically so
// the cursor row stays on screen. cursorPos < 0 means no cursor.
func (f *FeedView) layoutRows(cards []string, cursorPos int) string {
	cols := f.columns()

	var rows []string
	for start := 0; start < len(cards); start += cols {
		end := start + cols
		if end > len(cards) {
			end = len(cards)
		}
		row := cards[start]
		for _, c := range cards[start+1 : end] {
			row = lipgloss.JoinHorizontal(lipgloss.Top, row, " ", c)
		}
		rows = append(rows, row)
	}

	maxRows := f.height / cardHeight
	if maxRows < 1 {
		maxRows = 1
	}

	if cursorPos >= 0 {
		cursorRow := cursorPos / cols
		if cursorRow < f.rowOffset {
			f.rowOffset = cursorRow
		}
		if cursorRow >= f.rowOffset+maxRows {
			f.rowOffset = cursorRow - maxRows + 1
		}
	}
	if f.rowOffset > len(rows)-maxRows {
		f.rowOffset = len(rows) - maxRows
	}
	if f.rowOffset < 0 {
		f.rowOffset = 0
	}

	end := f.rowOffset + maxRows
	if end > len(rows) {
		end = len(rows)
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows[f.rowOffset:end]...)
}
