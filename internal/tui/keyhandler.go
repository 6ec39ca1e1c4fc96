package tui

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Hemanthkumar04/newslens/internal/config"
)

// keyAction mutates app state and may kick off a command.
type keyAction func() tea.Cmd

// KeyHandler routes key presses through explicit dispatch tables built
// from the configured bindings. Text-input modes and the modal overlay
// are checked first; everything else is a table lookup.
type KeyHandler struct {
	app *App
	cfg *config.Config

	feedKeys    map[string]keyAction
	relatedKeys map[string]keyAction
}

func NewKeyHandler(app *App, cfg *config.Config) *KeyHandler {
	kh := &KeyHandler{app: app, cfg: cfg}
	b := cfg.Keys.Bindings

	kh.feedKeys = map[string]keyAction{
		b.Search:    app.enterSearch,
		b.Filter:    app.enterFilter,
		b.Refresh:   app.refresh,
		b.Summarize: app.summarizeSelected,
		b.Related:   app.relatedForSelected,
		b.OpenLink:  app.openSelected,
		"enter":     app.summarizeSelected,
		"tab":       func() tea.Cmd { return app.cycleTopic(1) },
		"shift+tab": func() tea.Cmd { return app.cycleTopic(-1) },
		"left":      func() tea.Cmd { app.feedView.MoveLeft(); return nil },
		"right":     func() tea.Cmd { app.feedView.MoveRight(); return nil },
		"up":        func() tea.Cmd { app.feedView.MoveUp(); return nil },
		"down":      func() tea.Cmd { app.feedView.MoveDown(); return nil },
	}

	// Number keys map straight onto the topic presets.
	for i := range cfg.Topics {
		if i >= 9 {
			break
		}
		idx := i
		kh.feedKeys[strconv.Itoa(i+1)] = func() tea.Cmd { return app.selectTopic(idx) }
	}

	kh.relatedKeys = map[string]keyAction{
		"enter":    app.openSelectedRelated,
		b.OpenLink: app.openSelectedRelated,
	}

	return kh
}

func (kh *KeyHandler) HandleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return kh.app, tea.Quit
	}

	if kh.app.view == ViewSearch {
		return kh.handleSearchInput(msg)
	}
	if kh.app.filterInput.Focused() {
		return kh.handleFilterInput(msg)
	}

	if kh.app.modal.Visible() {
		return kh.handleModal(key)
	}
	if kh.app.helpVisible {
		kh.app.helpVisible = false
		return kh.app, nil
	}

	b := kh.cfg.Keys.Bindings
	switch key {
	case b.Quit:
		return kh.app, tea.Quit
	case b.Back:
		return kh.navigateBack()
	case b.Help:
		kh.app.helpVisible = true
		return kh.app, nil
	}

	var table map[string]keyAction
	switch kh.app.view {
	case ViewRelated:
		table = kh.relatedKeys
	default:
		table = kh.feedKeys
	}

	if action, ok := table[key]; ok {
		return kh.app, action()
	}

	return kh.delegateToCharm(msg)
}

// handleSearchInput owns keys while the topic input has focus.
func (kh *KeyHandler) handleSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		kh.app.view = ViewFeed
		kh.app.searchInput.Reset()
		return kh.app, nil
	case "enter":
		topic := strings.TrimSpace(kh.app.searchInput.Value())
		if topic == "" {
			return kh.app, nil
		}
		kh.app.view = ViewFeed
		kh.app.searchInput.Reset()
		return kh.app, kh.app.loadNews(topic)
	default:
		newInput, cmd := kh.app.searchInput.Update(msg)
		kh.app.searchInput = newInput
		return kh.app, cmd
	}
}

// handleFilterInput owns keys while the filter bar has focus. Every
// change re-applies the filter immediately; there is no debounce, the
// matching is a synchronous substring pass.
func (kh *KeyHandler) handleFilterInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		kh.app.filterInput.Reset()
		kh.app.filterInput.Blur()
		kh.app.feedView.ApplyFilter("")
		return kh.app, nil
	case "enter":
		kh.app.filterInput.Blur()
		return kh.app, nil
	default:
		prev := kh.app.filterInput.Value()
		newInput, cmd := kh.app.filterInput.Update(msg)
		kh.app.filterInput = newInput
		if v := kh.app.filterInput.Value(); v != prev {
			kh.app.feedView.ApplyFilter(v)
		}
		return kh.app, cmd
	}
}

// handleModal keeps the summary overlay modal: it swallows everything
// except dismissal.
func (kh *KeyHandler) handleModal(key string) (tea.Model, tea.Cmd) {
	switch key {
	case kh.cfg.Keys.Bindings.Back, "q":
		kh.app.modal.Dismiss()
	}
	return kh.app, nil
}

func (kh *KeyHandler) navigateBack() (tea.Model, tea.Cmd) {
	switch kh.app.view {
	case ViewRelated:
		kh.app.view = ViewFeed
		kh.app.relatedList.SetItems(nil)
		return kh.app, nil
	default:
		if kh.app.feedView.FilterActive() {
			kh.app.filterInput.Reset()
			kh.app.feedView.ApplyFilter("")
			return kh.app, nil
		}
		return kh.app, tea.Quit
	}
}

// delegateToCharm lets the bubbles components handle keys we don't
// intercept, list navigation mostly.
func (kh *KeyHandler) delegateToCharm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch kh.app.view {
	case ViewRelated:
		var cmd tea.Cmd
		kh.app.relatedList, cmd = kh.app.relatedList.Update(msg)
		return kh.app, cmd
	default:
		return kh.app, nil
	}
}

// GetHelpForCurrentView returns the key hints for the status bar.
func (kh *KeyHandler) GetHelpForCurrentView() []string {
	b := kh.cfg.Keys.Bindings

	switch {
	case kh.app.modal.Visible():
		return []string{"esc: close"}
	case kh.app.view == ViewSearch:
		return []string{"enter: search", "esc: cancel"}
	case kh.app.view == ViewRelated:
		return []string{"enter: open", "esc: back"}
	case kh.app.filterInput.Focused():
		return []string{"type to filter", "enter: keep", "esc: clear"}
	default:
		return []string{
			b.Search + ": search",
			b.Filter + ": filter",
			b.Summarize + ": summarize",
			b.Related + ": related",
			b.OpenLink + ": open",
			b.Refresh + ": refresh",
			b.Quit + ": quit",
		}
	}
}
