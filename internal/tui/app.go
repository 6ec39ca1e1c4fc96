package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Hemanthkumar04/newslens/internal/browser"
	"github.com/Hemanthkumar04/newslens/internal/config"
	"github.com/Hemanthkumar04/newslens/internal/debuglog"
	"github.com/Hemanthkumar04/newslens/internal/newsapi"
	"github.com/Hemanthkumar04/newslens/internal/related"
	"github.com/Hemanthkumar04/newslens/internal/summary"
)

// NewsSearcher fetches articles for a topic.
type NewsSearcher interface {
	Search(ctx context.Context, topic string, pageSize int) ([]newsapi.Article, error)
}

// Summarizer produces a plain-text summary for one article.
type Summarizer interface {
	Summarize(ctx context.Context, title, description, url string) (string, error)
}

// RelatedFinder indexes the current articles and finds similar ones.
type RelatedFinder interface {
	Index(articles []newsapi.Article) error
	Related(article newsapi.Article, limit int) ([]related.Match, error)
	Close() error
}

// LinkOpener hands a URL to the system browser.
type LinkOpener interface {
	Open(url string) error
}

// Deps carries the app's collaborators. The constructor takes them
// explicitly so tests can swap any of them for stubs.
type Deps struct {
	News       NewsSearcher
	Summarizer Summarizer
	Related    RelatedFinder
	Opener     LinkOpener
}

// DefaultDeps builds the production wiring from config. A failed
// similarity-index setup leaves Related nil and degrades that feature
// only.
func DefaultDeps(cfg *config.Config) Deps {
	deps := Deps{
		News:       newsapi.NewClient(cfg),
		Summarizer: summary.NewClient(cfg),
		Opener:     browser.NewOpener(),
	}

	engine, err := related.NewEngine()
	if err != nil {
		debuglog.Warnf("tui: related-article index unavailable: %v", err)
		return deps
	}
	deps.Related = engine
	return deps
}

type App struct {
	cfg        *config.Config
	news       NewsSearcher
	summarizer Summarizer
	related    RelatedFinder
	opener     LinkOpener

	keyHandler  *KeyHandler
	feedView    *FeedView
	modal       Modal
	searchInput textinput.Model
	filterInput textinput.Model
	relatedList list.Model
	spin        spinner.Model

	view           View
	helpVisible    bool
	relatedPending bool

	topic    string
	topicIdx int // index into cfg.Topics, -1 for a custom search
	articles []newsapi.Article

	// Monotonic sequence counters. Completions carry the counter value
	// they were issued under; anything older than the current value is
	// stale and dropped, so a slow response never overwrites the state
	// of a newer request.
	fetchSeq   int
	summarySeq int

	summarizing bool // the summarize action is disabled while in flight

	errFlash error

	width  int
	height int
}

func NewApp(cfg *config.Config, deps Deps) *App {
	applyTheme(cfg.UI.Colors)

	si := textinput.New()
	si.Placeholder = "Search for a topic..."
	si.CharLimit = 256

	fi := textinput.New()
	fi.Placeholder = "Filter cards..."
	fi.Prompt = "/ "
	fi.CharLimit = 256

	rl := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	rl.Title = "› related articles"
	rl.SetShowStatusBar(false)
	rl.SetFilteringEnabled(false)
	rl.SetShowHelp(false)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(AccentColor)

	app := &App{
		cfg:         cfg,
		news:        deps.News,
		summarizer:  deps.Summarizer,
		related:     deps.Related,
		opener:      deps.Opener,
		feedView:    NewFeedView(cfg.UI, nil),
		searchInput: si,
		filterInput: fi,
		relatedList: rl,
		spin:        sp,
		view:        ViewFeed,
		topicIdx:    -1,
	}

	app.keyHandler = NewKeyHandler(app, cfg)

	return app
}

// initialTopic is the query loaded at startup: the first preset, or the
// builtin default when no presets are configured.
func (a *App) initialTopic() string {
	if len(a.cfg.Topics) > 0 {
		return a.cfg.Topics[0].Query
	}
	return newsapi.DefaultTopic
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.loadNews(a.initialTopic()),
		a.spin.Tick,
		tea.EnterAltScreen,
	)
}

// loadNews restarts the feed lifecycle for a topic: the loading state
// and status are applied synchronously, then the fetch runs off-loop
// under a fresh sequence number.
func (a *App) loadNews(topic string) tea.Cmd {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		topic = newsapi.DefaultTopic
	}

	a.topic = topic
	a.syncTopicSelection()
	a.errFlash = nil

	a.feedView.ShowLoading(0)
	a.feedView.SetStatus(MsgLoading)

	a.fetchSeq++
	return a.fetchArticles(topic, a.fetchSeq)
}

// syncTopicSelection activates the preset matching the current topic
// and deactivates the rest; a custom search deactivates them all.
func (a *App) syncTopicSelection() {
	a.topicIdx = -1
	for i, t := range a.cfg.Topics {
		if strings.EqualFold(t.Query, a.topic) {
			a.topicIdx = i
			return
		}
	}
}

func (a *App) enterSearch() tea.Cmd {
	a.view = ViewSearch
	a.searchInput.Reset()
	a.searchInput.Focus()
	return textinput.Blink
}

func (a *App) enterFilter() tea.Cmd {
	if a.feedView.CardCount() == 0 {
		return nil
	}
	a.filterInput.Focus()
	return textinput.Blink
}

func (a *App) refresh() tea.Cmd {
	return a.loadNews(a.topic)
}

func (a *App) selectTopic(i int) tea.Cmd {
	if i < 0 || i >= len(a.cfg.Topics) {
		return nil
	}
	return a.loadNews(a.cfg.Topics[i].Query)
}

func (a *App) cycleTopic(delta int) tea.Cmd {
	n := len(a.cfg.Topics)
	if n == 0 {
		return nil
	}
	idx := a.topicIdx + delta
	if a.topicIdx == -1 {
		idx = 0
		if delta < 0 {
			idx = n - 1
		}
	}
	idx = ((idx % n) + n) % n
	return a.selectTopic(idx)
}

// summarizeSelected opens the modal in loading state immediately and
// requests the summary. The action stays disabled until the in-flight
// request completes, even if the modal is dismissed early.
func (a *App) summarizeSelected() tea.Cmd {
	card, ok := a.feedView.SelectedCard()
	if !ok || a.summarizing {
		return nil
	}

	a.summarizing = true
	a.modal.OpenLoading(card.Title, card.Article.URL)

	a.summarySeq++
	return a.fetchSummary(card.Article, a.summarySeq)
}

func (a *App) relatedForSelected() tea.Cmd {
	card, ok := a.feedView.SelectedCard()
	if !ok || a.related == nil {
		return nil
	}

	a.relatedList.Title = "› related to: " + truncateEnd(card.Title, 50)
	a.relatedList.SetItems(nil)
	a.relatedPending = true
	a.view = ViewRelated
	return a.findRelated(card.Article)
}

func (a *App) openSelected() tea.Cmd {
	card, ok := a.feedView.SelectedCard()
	if !ok || card.Article.URL == "" {
		return nil
	}
	return a.openLink(card.Article.URL)
}

func (a *App) openSelectedRelated() tea.Cmd {
	item, ok := a.relatedList.SelectedItem().(matchItem)
	if !ok || item.url == "" {
		return nil
	}
	return a.openLink(item.url)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.feedView.SetSize(msg.Width, a.contentHeight())
		a.relatedList.SetSize(msg.Width, a.contentHeight())

		inputWidth := msg.Width - 8
		if inputWidth < 20 {
			inputWidth = msg.Width
		}
		a.searchInput.Width = inputWidth
		a.filterInput.Width = inputWidth

	case tea.KeyMsg:
		return a.keyHandler.HandleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd

	case articlesFetchedMsg:
		if msg.seq != a.fetchSeq {
			debuglog.Debugf("tui: dropping stale fetch for %q (seq %d < %d)", msg.topic, msg.seq, a.fetchSeq)
			return a, nil
		}
		if msg.err != nil {
			a.feedView.SetError(msg.err.Error())
			return a, nil
		}
		a.articles = msg.articles
		a.feedView.SetArticles(msg.articles)
		return a, a.indexRelated(msg.articles)

	case summaryMsg:
		if msg.seq != a.summarySeq {
			debuglog.Debugf("tui: dropping stale summary (seq %d < %d)", msg.seq, a.summarySeq)
			return a, nil
		}
		a.summarizing = false
		if !a.modal.Visible() {
			return a, nil
		}
		if msg.err != nil {
			a.modal.SetError(msg.err.Error())
		} else {
			a.modal.SetBody(msg.text)
		}

	case relatedResultsMsg:
		a.relatedPending = false
		if a.view != ViewRelated {
			return a, nil
		}
		if msg.err != nil {
			a.errFlash = msg.err
			return a, nil
		}
		items := make([]list.Item, len(msg.matches))
		for i, m := range msg.matches {
			items[i] = newMatchItem(m, a.cfg.UI.DateFormat)
		}
		a.relatedList.SetItems(items)

	case errorMsg:
		a.errFlash = msg.err
	}

	switch a.view {
	case ViewSearch:
		newInput, cmd := a.searchInput.Update(msg)
		a.searchInput = newInput
		cmds = append(cmds, cmd)
	case ViewRelated:
		newList, cmd := a.relatedList.Update(msg)
		a.relatedList = newList
		cmds = append(cmds, cmd)
	default:
		if a.filterInput.Focused() {
			newInput, cmd := a.filterInput.Update(msg)
			a.filterInput = newInput
			cmds = append(cmds, cmd)
		}
	}

	return a, tea.Batch(cmds...)
}

// contentHeight is the vertical space left for the main surface after
// the header and the status bar.
func (a *App) contentHeight() int {
	h := a.height - 4
	if h < 1 {
		h = 1
	}
	return h
}

func (a *App) View() string {
	header := a.renderHeader()

	var content string
	switch {
	case a.modal.Visible():
		content = a.modal.View(a.width, a.contentHeight(), a.spin.View())
	case a.helpVisible:
		content = a.renderHelpOverlay()
	case a.view == ViewSearch:
		content = renderCentered(a.width, a.contentHeight(),
			lipgloss.JoinVertical(
				lipgloss.Center,
				TitleStyle.Render("› search topic"),
				"",
				renderInputFrame(a.searchInput.View(), a.searchInput.Focused(), a.searchInput.Width),
				"",
				renderHelp("Press Enter to search, Esc to cancel"),
			),
		)
	case a.view == ViewRelated:
		content = a.viewRelated()
	default:
		content = a.viewFeed()
	}

	separatorWidth := a.width - 1
	if separatorWidth < 0 {
		separatorWidth = 0
	}
	separator := SeparatorStyle.Render(strings.Repeat("─", separatorWidth+1))

	return lipgloss.JoinVertical(lipgloss.Top, header, content, separator, a.renderStatusBar())
}

func (a *App) viewFeed() string {
	filterVisible := a.filterInput.Focused() || a.feedView.FilterActive()
	if !filterVisible {
		a.feedView.SetSize(a.width, a.contentHeight())
		return a.feedView.View()
	}

	bar := renderInputFrame(a.filterInput.View(), a.filterInput.Focused(), a.width-8)
	a.feedView.SetSize(a.width, a.contentHeight()-3)
	return lipgloss.JoinVertical(lipgloss.Top, bar, a.feedView.View())
}

func (a *App) viewRelated() string {
	if a.relatedPending {
		return renderCentered(a.width, a.contentHeight(),
			a.spin.View()+" "+renderMuted(MsgFindingRelated))
	}
	if len(a.relatedList.Items()) == 0 {
		return renderCentered(a.width, a.contentHeight(), renderMuted(MsgNoRelated))
	}
	return a.relatedList.View()
}

func (a *App) renderHeader() string {
	logo := LogoStyle.Render(CompactLogo)

	bar := a.renderTopicBar()
	line := logo
	if bar != "" {
		line = lipgloss.JoinHorizontal(lipgloss.Top, logo, "  ", bar)
	}

	return lipgloss.NewStyle().MaxWidth(a.width).Render(line) + "\n"
}

func (a *App) renderTopicBar() string {
	if len(a.cfg.Topics) == 0 && a.topic == "" {
		return ""
	}

	chips := make([]string, 0, len(a.cfg.Topics)+1)
	for i, t := range a.cfg.Topics {
		label := fmt.Sprintf("%d %s", i+1, t.Name)
		if i == a.topicIdx {
			chips = append(chips, TopicActiveStyle.Render(label))
		} else {
			chips = append(chips, TopicInactiveStyle.Render(label))
		}
	}
	if a.topicIdx == -1 && a.topic != "" {
		chips = append(chips, TopicActiveStyle.Render("⌕ "+truncateEnd(a.topic, 24)))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, chips...)
}

func (a *App) renderStatusBar() string {
	if a.feedView.Error() != "" {
		return StatusBarStyle.Width(a.width).Render(
			ErrorMessageStyle.Render("✗ " + a.feedView.Error()))
	}
	if a.errFlash != nil {
		return StatusBarStyle.Width(a.width).Render(
			ErrorMessageStyle.Render(fmt.Sprintf("✗ %v", a.errFlash)))
	}
	if a.feedView.Status() != "" {
		return StatusBarStyle.Width(a.width).Render(a.feedView.Status())
	}

	parts := a.keyHandler.GetHelpForCurrentView()
	if a.feedView.FilterActive() {
		count := MsgFilterCount(a.feedView.VisibleCount(), a.feedView.CardCount())
		if a.feedView.VisibleCount() > 0 {
			count = StatusSuccessStyle.Render(count)
		} else {
			count = ErrorMessageStyle.Render(count)
		}
		parts = append([]string{"filter: " + a.feedView.FilterQuery(), count}, parts...)
	} else if a.view == ViewFeed && a.feedView.CardCount() > 0 {
		parts = append([]string{MsgArticleCount(a.feedView.CardCount())}, parts...)
	}

	return StatusBarStyle.Width(a.width).Render(strings.Join(parts, " • "))
}

func (a *App) renderHelpOverlay() string {
	b := a.cfg.Keys.Bindings
	rows := []string{
		HeaderStyle.Render("› keys"),
		"",
		b.Search + "        search a topic",
		b.Filter + "        filter visible cards",
		b.Summarize + "        summarize selected article",
		b.Related + "        related articles",
		b.OpenLink + "        open in browser",
		b.Refresh + "        refresh current topic",
		"1-9      topic presets",
		"tab      next topic",
		"arrows   move between cards",
		b.Quit + "        quit",
		"",
		renderHelp("press any key to close"),
	}
	return renderCentered(a.width, a.contentHeight(),
		lipgloss.JoinVertical(lipgloss.Left, rows...))
}

type matchItem struct {
	title string
	desc  string
	url   string
}

func newMatchItem(m related.Match, dateFormat string) matchItem {
	source := strings.TrimSpace(m.Article.Source.Name)
	if source == "" {
		source = MsgUnknownSource
	}

	desc := source
	if d := formatDate(m.Article.PublishedAt, dateFormat); d != "" {
		desc += " • " + d
	}

	return matchItem{
		title: fmt.Sprintf("%3.0f%%  %s", m.Score*100, m.Article.Title),
		desc:  desc,
		url:   m.Article.URL,
	}
}

func (i matchItem) Title() string       { return i.title }
func (i matchItem) Description() string { return i.desc }
func (i matchItem) FilterValue() string { return i.title }

type articlesFetchedMsg struct {
	seq      int
	topic    string
	articles []newsapi.Article
	err      error
}

type summaryMsg struct {
	seq  int
	text string
	err  error
}

type relatedResultsMsg struct {
	matches []related.Match
	err     error
}

type errorMsg struct {
	err error
}
