package tui

import "fmt"

// Canonical user-facing messages. The two feed messages are load-bearing
// strings the rest of the UI keys off; change them only deliberately.
const (
	MsgLoading       = "Loading latest news..."
	MsgNoArticles    = "No articles found. Try a different topic."
	MsgNoDescription = "No description available."
	MsgUnknownSource = "Unknown Source"

	MsgSummarizing    = "Generating summary…"
	MsgFindingRelated = "Finding related articles…"
	MsgNoFilterMatch  = "No cards match the filter."
	MsgNoRelated      = "No related articles found."
)

func MsgArticleCount(n int) string {
	if n == 1 {
		return "1 article"
	}
	return fmt.Sprintf("%d articles", n)
}

func MsgFilterCount(visible, total int) string {
	return fmt.Sprintf("%d/%d cards", visible, total)
}
