package proxy

import (
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Hemanthkumar04/newslens/internal/config"
	"github.com/Hemanthkumar04/newslens/internal/debuglog"
	"github.com/Hemanthkumar04/newslens/internal/llm"
	"github.com/Hemanthkumar04/newslens/internal/newsapi"
)

// Server is the credential-hiding proxy: the TUI (or any frontend) talks
// to it instead of NewsAPI, so the API key never leaves the server side.
type Server struct {
	cfg        *config.Config
	news       *newsapi.Client
	summarizer llm.Summarizer
	log        *zap.SugaredLogger
}

// NewServer wires the proxy. summarizer may be nil; /api/summarize then
// reports the missing key instead of serving summaries.
func NewServer(cfg *config.Config, summarizer llm.Summarizer) *Server {
	// The proxy always talks to the real upstream, regardless of where
	// the client-side news endpoint points.
	upstreamCfg := *cfg
	upstreamCfg.API.NewsEndpoint = cfg.Proxy.Upstream

	return &Server{
		cfg:        cfg,
		news:       newsapi.NewClient(&upstreamCfg),
		summarizer: summarizer,
		log:        debuglog.L(),
	}
}

// Router builds the gin engine with all routes attached.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(s.requestLogger(), gin.Recovery())

	r.GET("/api/health", s.handleHealth)
	r.GET("/api/news", s.handleNews)
	r.POST("/api/summarize", s.handleSummarize)

	return r
}

// Run serves until the listener fails.
func (s *Server) Run() error {
	s.log.Infof("proxy listening on %s", s.cfg.Proxy.Addr)
	return s.Router().Run(s.cfg.Proxy.Addr)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleNews(c *gin.Context) {
	topic := c.DefaultQuery("q", newsapi.DefaultTopic)
	pageSize := parsePageSize(c.Query("pageSize"), s.cfg.API.PageSize)

	if s.cfg.API.Key == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "NEWS_API_KEY not set in .env"})
		return
	}

	articles, err := s.news.Search(c.Request.Context(), topic, pageSize)
	if err != nil {
		s.writeNewsError(c, err)
		return
	}

	if articles == nil {
		articles = []newsapi.Article{}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "articles": articles})
}

// writeNewsError maps a search failure onto the upstream-facing status
// table: auth and throttling keep their statuses with friendlier
// messages, an error envelope passes through as a 200 like the upstream
// sent it, and transport failures split into timeout and unreachable.
func (s *Server) writeNewsError(c *gin.Context, err error) {
	var (
		authErr *newsapi.AuthError
		rlErr   *newsapi.RateLimitError
		srvErr  *newsapi.ServerError
		httpErr *newsapi.HTTPError
		upErr   *newsapi.UpstreamError
		netErr  net.Error
	)

	switch {
	case errors.As(err, &authErr):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid API key"})
	case errors.As(err, &rlErr):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit reached"})
	case errors.As(err, &upErr):
		c.JSON(http.StatusOK, gin.H{"status": "error", "articles": []newsapi.Article{}})
	case errors.As(err, &srvErr):
		c.JSON(srvErr.Status, gin.H{"error": srvErr.Error()})
	case errors.As(err, &httpErr):
		c.JSON(httpErr.Status, gin.H{"error": httpErr.Error()})
	case errors.As(err, &netErr) && netErr.Timeout():
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "NewsAPI request timed out"})
	case errors.As(err, &netErr):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Could not reach NewsAPI"})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": "invalid upstream response"})
	}

	s.log.Warnf("news proxy error: %v", err)
}

type summarizeRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

func (s *Server) handleSummarize(c *gin.Context) {
	if s.summarizer == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "GEMINI_API_KEY not set in .env"})
		return
	}

	var req summarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}

	summary, err := s.summarizer.Summarize(c.Request.Context(), req.Title, req.Description, req.URL)
	if err != nil {
		s.log.Warnf("summarization failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// parsePageSize clamps the requested page size to what NewsAPI accepts.
func parsePageSize(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	if n < 1 {
		return 1
	}
	if n > 100 {
		return 100
	}
	return n
}
