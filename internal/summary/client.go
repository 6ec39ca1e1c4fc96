package summary

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/Hemanthkumar04/newslens/internal/config"
	"github.com/Hemanthkumar04/newslens/internal/debuglog"
)

// Client requests AI summaries from the summarization endpoint, normally
// a running `newslens serve` proxy.
type Client struct {
	http     *resty.Client
	endpoint string
}

// HTTPError is a failed summarization call. Message carries the error
// text from the response body when the endpoint sent one.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("summarization failed (HTTP %d)", e.Status)
}

type summarizeRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

type summarizeResponse struct {
	Summary string `json:"summary"`
	Error   string `json:"error"`
}

func NewClient(cfg *config.Config) *Client {
	c := resty.New().
		SetTimeout(cfg.API.Timeout).
		SetHeader("User-Agent", cfg.API.UserAgent).
		SetHeader("Accept", "application/json")

	return &Client{http: c, endpoint: cfg.API.SummaryEndpoint}
}

// Summarize posts an article's title, description and URL and returns the
// plain summary text.
func (c *Client) Summarize(ctx context.Context, title, description, url string) (string, error) {
	payload := summarizeRequest{
		Title:       title,
		Description: description,
		URL:         url,
	}

	debuglog.Debugf("summary: POST %s title=%q", c.endpoint, title)

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(c.endpoint)
	if err != nil {
		return "", fmt.Errorf("requesting summary: %w", err)
	}

	var out summarizeResponse
	decodeErr := json.Unmarshal(resp.Body(), &out)

	if !resp.IsSuccess() {
		return "", &HTTPError{Status: resp.StatusCode(), Message: out.Error}
	}
	if decodeErr != nil {
		return "", fmt.Errorf("decoding summary response: %w", decodeErr)
	}
	if out.Summary == "" && out.Error != "" {
		return "", &HTTPError{Status: resp.StatusCode(), Message: out.Error}
	}

	return out.Summary, nil
}
