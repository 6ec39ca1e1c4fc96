package integration

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Hemanthkumar04/newslens/internal/config"
	"github.com/Hemanthkumar04/newslens/internal/llm"
	"github.com/Hemanthkumar04/newslens/internal/newsapi"
	"github.com/Hemanthkumar04/newslens/internal/proxy"
	"github.com/Hemanthkumar04/newslens/internal/summary"
)

// fakeSummarizer stands in for the Gemini client behind the proxy.
type fakeSummarizer struct {
	text      string
	err       error
	lastTitle string
}

func (f *fakeSummarizer) Summarize(_ context.Context, title, _, _ string) (string, error) {
	f.lastTitle = title
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

// startProxy runs the full chain for one test: a fake NewsAPI upstream,
// a proxy pointed at it, and a client config pointed at the proxy. The
// returned config deliberately carries no API key; only the proxy holds
// one.
func startProxy(t *testing.T, upstream http.HandlerFunc, summarizer llm.Summarizer) *config.Config {
	t.Helper()

	up := httptest.NewServer(upstream)
	t.Cleanup(up.Close)

	serverCfg := config.TestConfig()
	serverCfg.API.Key = "server-side-key"
	serverCfg.Proxy.Upstream = up.URL

	ps := httptest.NewServer(proxy.NewServer(serverCfg, summarizer).Router())
	t.Cleanup(ps.Close)

	clientCfg := config.TestConfig()
	clientCfg.API.Key = ""
	clientCfg.API.NewsEndpoint = ps.URL + "/api/news"
	clientCfg.API.SummaryEndpoint = ps.URL + "/api/summarize"

	return clientCfg
}

const articlesPayload = `{"status":"ok","totalResults":3,"articles":[
	{"title":"AI breakthrough","description":"New model released","url":"https://example.com/ai","urlToImage":"https://example.com/ai.jpg","publishedAt":"2025-08-01T09:30:00Z","source":{"name":"TechDaily"}},
	{"title":"Quantum networking milestone","description":"Entangled link spans two cities","url":"https://example.com/quantum","source":{"name":"Science Wire"}},
	{"title":"Markets rally","description":"Stocks climb on rate news","url":"https://example.com/markets","source":{"name":"FinanceHub"}}
]}`

func TestIntegration_NewsSearchThroughProxy(t *testing.T) {
	var upstreamKey string
	upstream := func(w http.ResponseWriter, r *http.Request) {
		upstreamKey = r.Header.Get("X-Api-Key")
		if got := r.URL.Query().Get("q"); got != "golang" {
			t.Errorf("upstream q = %q, want golang", got)
		}
		if got := r.URL.Query().Get("language"); got != "en" {
			t.Errorf("upstream language = %q, want en", got)
		}
		if got := r.URL.Query().Get("sortBy"); got != "publishedAt" {
			t.Errorf("upstream sortBy = %q, want publishedAt", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(articlesPayload))
	}

	cfg := startProxy(t, upstream, nil)
	client := newsapi.NewClient(cfg)

	articles, err := client.Search(context.Background(), "golang", 3)
	if err != nil {
		t.Fatalf("Search through proxy failed: %v", err)
	}

	if len(articles) != 3 {
		t.Fatalf("expected 3 articles, got %d", len(articles))
	}
	if articles[0].Title != "AI breakthrough" {
		t.Errorf("Title = %q", articles[0].Title)
	}
	if articles[0].Source.Name != "TechDaily" {
		t.Errorf("Source.Name = %q", articles[0].Source.Name)
	}
	if articles[0].PublishedAt != "2025-08-01T09:30:00Z" {
		t.Errorf("PublishedAt = %q", articles[0].PublishedAt)
	}

	// The key the upstream saw must be the proxy's, proving the client
	// side never needed one.
	if upstreamKey != "server-side-key" {
		t.Errorf("upstream saw key %q, want the proxy's", upstreamKey)
	}
}

func TestIntegration_PageSizeClampedByProxy(t *testing.T) {
	upstream := func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("pageSize"); got != "100" {
			t.Errorf("upstream pageSize = %q, want 100", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","articles":[]}`))
	}

	cfg := startProxy(t, upstream, nil)
	client := newsapi.NewClient(cfg)

	if _, err := client.Search(context.Background(), "tech", 500); err != nil {
		t.Fatalf("Search failed: %v", err)
	}
}

func TestIntegration_AuthFailurePassesThrough(t *testing.T) {
	upstream := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}

	cfg := startProxy(t, upstream, nil)
	client := newsapi.NewClient(cfg)

	_, err := client.Search(context.Background(), "tech", 5)
	var authErr *newsapi.AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthError through the proxy, got %v", err)
	}
}

func TestIntegration_RateLimitPassesThrough(t *testing.T) {
	upstream := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}

	cfg := startProxy(t, upstream, nil)
	client := newsapi.NewClient(cfg)

	_, err := client.Search(context.Background(), "tech", 5)
	var rlErr *newsapi.RateLimitError
	if !errors.As(err, &rlErr) {
		t.Fatalf("expected RateLimitError through the proxy, got %v", err)
	}
}

func TestIntegration_ErrorEnvelopePassesThrough(t *testing.T) {
	upstream := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"error","code":"parameterInvalid","message":"bad request"}`))
	}

	cfg := startProxy(t, upstream, nil)
	client := newsapi.NewClient(cfg)

	// The proxy re-emits the envelope as its own 200 error body, so the
	// client classifies it the same way it would a direct upstream error.
	_, err := client.Search(context.Background(), "tech", 5)
	var upErr *newsapi.UpstreamError
	if !errors.As(err, &upErr) {
		t.Fatalf("expected UpstreamError through the proxy, got %v", err)
	}
}

func TestIntegration_SummarizeThroughProxy(t *testing.T) {
	summarizer := &fakeSummarizer{text: "Concise three line summary."}
	cfg := startProxy(t, func(w http.ResponseWriter, r *http.Request) {}, summarizer)

	client := summary.NewClient(cfg)
	got, err := client.Summarize(context.Background(), "AI breakthrough", "New model released", "https://example.com/ai")
	if err != nil {
		t.Fatalf("Summarize through proxy failed: %v", err)
	}

	if got != "Concise three line summary." {
		t.Errorf("summary = %q", got)
	}
	if summarizer.lastTitle != "AI breakthrough" {
		t.Errorf("summarizer saw title %q", summarizer.lastTitle)
	}
}

func TestIntegration_SummarizeWithoutModel(t *testing.T) {
	cfg := startProxy(t, func(w http.ResponseWriter, r *http.Request) {}, nil)

	client := summary.NewClient(cfg)
	_, err := client.Summarize(context.Background(), "AI breakthrough", "", "")

	var httpErr *summary.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if httpErr.Status != http.StatusInternalServerError {
		t.Errorf("Status = %d, want 500", httpErr.Status)
	}
	if httpErr.Message != "GEMINI_API_KEY not set in .env" {
		t.Errorf("Message = %q", httpErr.Message)
	}
}

func TestIntegration_SummarizeFailureSurfaces(t *testing.T) {
	summarizer := &fakeSummarizer{err: errors.New("model overloaded")}
	cfg := startProxy(t, func(w http.ResponseWriter, r *http.Request) {}, summarizer)

	client := summary.NewClient(cfg)
	_, err := client.Summarize(context.Background(), "AI breakthrough", "", "")

	var httpErr *summary.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if httpErr.Status != http.StatusBadGateway {
		t.Errorf("Status = %d, want 502", httpErr.Status)
	}
	if httpErr.Message != "model overloaded" {
		t.Errorf("Message = %q", httpErr.Message)
	}
}
