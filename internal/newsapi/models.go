package newsapi

// DefaultTopic seeds the first fetch and backstops empty queries.
const DefaultTopic = "technology"

// Source identifies the outlet an article came from.
type Source struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Article is one raw record as returned by the news-search endpoint.
// Fields may be empty; presentation fallbacks are the feed view's job.
type Article struct {
	Source      Source `json:"source"`
	Author      string `json:"author"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
	PublishedAt string `json:"publishedAt"`
	Content     string `json:"content"`
}

// Response is the news-search envelope. Status is "ok" on success and
// "error" with Code/Message populated on an application-level failure.
type Response struct {
	Status       string    `json:"status"`
	TotalResults int       `json:"totalResults"`
	Code         string    `json:"code,omitempty"`
	Message      string    `json:"message,omitempty"`
	Articles     []Article `json:"articles"`
}
