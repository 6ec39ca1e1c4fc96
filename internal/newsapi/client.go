package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/Hemanthkumar04/newslens/internal/config"
	"github.com/Hemanthkumar04/newslens/internal/debuglog"
)

// Client issues news-search requests. The endpoint may be NewsAPI itself
// or a local `newslens serve` proxy; both speak the same envelope.
type Client struct {
	http *resty.Client
	cfg  config.APIConfig
}

func NewClient(cfg *config.Config) *Client {
	c := resty.New().
		SetTimeout(cfg.API.Timeout).
		SetHeader("User-Agent", cfg.API.UserAgent).
		SetHeader("Accept", "application/json")

	return &Client{http: c, cfg: cfg.API}
}

// Search fetches articles for a topic. An empty or whitespace topic falls
// back to DefaultTopic, and pageSize <= 0 falls back to the configured
// page size. The article list comes back as received; entries with
// missing fields are the renderer's problem.
func (c *Client) Search(ctx context.Context, topic string, pageSize int) ([]Article, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		topic = DefaultTopic
	}
	if pageSize <= 0 {
		pageSize = c.cfg.PageSize
	}

	params := map[string]string{
		"q":        topic,
		"pageSize": strconv.Itoa(pageSize),
	}

	req := c.http.R().
		SetContext(ctx).
		SetQueryParams(params)

	// Direct NewsAPI calls need the key plus the search knobs the proxy
	// would otherwise fill in.
	if c.cfg.Key != "" {
		req.SetQueryParam("language", c.cfg.Language)
		req.SetQueryParam("sortBy", c.cfg.SortBy)
		req.SetHeader("X-Api-Key", c.cfg.Key)
	}

	debuglog.Debugf("newsapi: GET %s q=%q pageSize=%d", c.cfg.NewsEndpoint, topic, pageSize)

	resp, err := req.Get(c.cfg.NewsEndpoint)
	if err != nil {
		return nil, fmt.Errorf("fetching news: %w", err)
	}

	if err := checkStatus(resp.StatusCode(), resp.Body()); err != nil {
		debuglog.Warnf("newsapi: search %q failed: %v", topic, err)
		return nil, err
	}

	var payload Response
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return nil, fmt.Errorf("decoding news response: %w", err)
	}

	if payload.Status == "error" {
		return nil, &UpstreamError{Code: payload.Code, Message: payload.Message}
	}

	debuglog.Debugf("newsapi: %d articles for %q", len(payload.Articles), topic)
	return payload.Articles, nil
}

// checkStatus maps a non-success HTTP status to the error taxonomy.
func checkStatus(status int, body []byte) error {
	switch {
	case status == http.StatusUnauthorized:
		return &AuthError{Status: status}
	case status == http.StatusTooManyRequests:
		return &RateLimitError{Status: status}
	case status >= 500:
		return &ServerError{Status: status}
	case status < 200 || status > 299:
		return &HTTPError{Status: status, Message: errorMessage(body)}
	}
	return nil
}

// errorMessage pulls a human-readable message out of an error body.
// Both NewsAPI ({"message": ...}) and the proxy ({"error": ...}) shapes
// are recognized.
func errorMessage(body []byte) string {
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	if envelope.Message != "" {
		return envelope.Message
	}
	return envelope.Error
}
