package tui

import "strings"

// FilterEngine decides per-card visibility for a live query. Matching
// runs against the lowercase copies precomputed at card construction,
// so every keystroke costs one substring pass and no allocation.
type FilterEngine struct {
	query string
}

// SetQuery normalizes and stores the query. An empty query matches
// everything.
func (f *FilterEngine) SetQuery(raw string) {
	f.query = strings.ToLower(strings.TrimSpace(raw))
}

func (f *FilterEngine) Query() string {
	return f.query
}

func (f *FilterEngine) Active() bool {
	return f.query != ""
}

// Apply sets each card's visibility in place and returns the visible
// count. Cards are never removed or reordered; repeated calls with the
// same query converge to the same visibility set.
func (f *FilterEngine) Apply(cards []CardViewModel) int {
	visible := 0
	for i := range cards {
		cards[i].Visible = f.Matches(&cards[i])
		if cards[i].Visible {
			visible++
		}
	}
	return visible
}

// Matches reports whether a card survives the current query: empty
// query, or the query is a substring of the card's lowercase title,
// description, or source name.
func (f *FilterEngine) Matches(c *CardViewModel) bool {
	if f.query == "" {
		return true
	}
	return strings.Contains(c.TitleLower, f.query) ||
		strings.Contains(c.DescLower, f.query) ||
		strings.Contains(c.SourceLower, f.query)
}
