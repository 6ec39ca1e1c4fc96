package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Hemanthkumar04/newslens/internal/debuglog"
	"github.com/Hemanthkumar04/newslens/internal/newsapi"
	"github.com/Hemanthkumar04/newslens/internal/related"
)

// Commands run off the event loop; each one resolves to a message
// carrying the sequence number it was issued under so stale completions
// can be recognized and dropped.

func (a *App) fetchArticles(topic string, seq int) tea.Cmd {
	return func() tea.Msg {
		articles, err := a.news.Search(context.Background(), topic, a.cfg.API.PageSize)
		if err != nil {
			return articlesFetchedMsg{seq: seq, topic: topic, err: err}
		}
		return articlesFetchedMsg{seq: seq, topic: topic, articles: articles}
	}
}

func (a *App) fetchSummary(article newsapi.Article, seq int) tea.Cmd {
	return func() tea.Msg {
		text, err := a.summarizer.Summarize(context.Background(), article.Title, article.Description, article.URL)
		return summaryMsg{seq: seq, text: text, err: err}
	}
}

// indexRelated rebuilds the similarity index for the current articles.
// Failures degrade the related-articles feature, never the feed.
func (a *App) indexRelated(articles []newsapi.Article) tea.Cmd {
	return func() tea.Msg {
		if a.related == nil {
			return nil
		}
		if err := a.related.Index(articles); err != nil {
			debuglog.Warnf("tui: indexing related articles: %v", err)
		}
		return nil
	}
}

func (a *App) findRelated(article newsapi.Article) tea.Cmd {
	return func() tea.Msg {
		if a.related == nil {
			return relatedResultsMsg{}
		}
		matches, err := a.related.Related(article, related.DefaultLimit)
		return relatedResultsMsg{matches: matches, err: err}
	}
}

func (a *App) openLink(url string) tea.Cmd {
	return func() tea.Msg {
		if err := a.opener.Open(url); err != nil {
			return errorMsg{err: wrapErr("opening link", err)}
		}
		return nil
	}
}
