package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/Hemanthkumar04/newslens/internal/validation"
)

type Config struct {
	API   APIConfig   `mapstructure:"api"`
	UI    UIConfig    `mapstructure:"ui"`
	Keys  KeyConfig   `mapstructure:"keys"`
	Log   LogConfig   `mapstructure:"log"`
	Proxy ProxyConfig `mapstructure:"proxy"`
	LLM   LLMConfig   `mapstructure:"llm"`

	// Topics holds the selectable topic presets. Empty means "use the
	// built-in presets" (see topics.go).
	Topics []Topic `mapstructure:"topics"`
}

type APIConfig struct {
	// NewsEndpoint is the news-search URL. Point it at NewsAPI directly
	// (requires Key) or at a running `newslens serve` proxy.
	NewsEndpoint    string        `mapstructure:"news_endpoint"`
	SummaryEndpoint string        `mapstructure:"summary_endpoint"`
	Key             string        `mapstructure:"key"`
	PageSize        int           `mapstructure:"page_size"`
	Language        string        `mapstructure:"language"`
	SortBy          string        `mapstructure:"sort_by"`
	Timeout         time.Duration `mapstructure:"timeout"`
	UserAgent       string        `mapstructure:"user_agent"`
}

type UIConfig struct {
	Colors        UIColors `mapstructure:"colors"`
	SkeletonCount int      `mapstructure:"skeleton_count"`
	DateFormat    string   `mapstructure:"date_format"`
	CardWidth     int      `mapstructure:"card_width"`

	// RemovedTitleMarkers are upstream redaction sentinels; articles whose
	// title matches one of these are dropped before rendering.
	RemovedTitleMarkers []string `mapstructure:"removed_title_markers"`
}

type UIColors struct {
	Primary    string `mapstructure:"primary"`
	Secondary  string `mapstructure:"secondary"`
	Accent     string `mapstructure:"accent"`
	Background string `mapstructure:"background"`
	Surface    string `mapstructure:"surface"`
	Text       string `mapstructure:"text"`
	Muted      string `mapstructure:"muted"`
	Error      string `mapstructure:"error"`
	Success    string `mapstructure:"success"`
}

type KeyConfig struct {
	Modifier string      `mapstructure:"modifier"`
	Bindings KeyBindings `mapstructure:"bindings"`
}

type KeyBindings struct {
	Quit      string `mapstructure:"quit"`
	Search    string `mapstructure:"search"`
	Filter    string `mapstructure:"filter"`
	Refresh   string `mapstructure:"refresh"`
	Summarize string `mapstructure:"summarize"`
	Related   string `mapstructure:"related"`
	OpenLink  string `mapstructure:"open_link"`
	Back      string `mapstructure:"back"`
	Help      string `mapstructure:"help"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	Path  string `mapstructure:"path"`
}

type ProxyConfig struct {
	Addr string `mapstructure:"addr"`
	// Upstream is the real NewsAPI search endpoint the proxy forwards to.
	Upstream string `mapstructure:"upstream"`
}

type LLMConfig struct {
	Model string `mapstructure:"model"`
	Key   string `mapstructure:"key"`
}

func defaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	logPath := filepath.Join(homeDir, ".newslens", "newslens.log")

	return &Config{
		API: APIConfig{
			NewsEndpoint:    "https://newsapi.org/v2/everything",
			SummaryEndpoint: "http://localhost:5000/api/summarize",
			PageSize:        12,
			Language:        "en",
			SortBy:          "publishedAt",
			Timeout:         10 * time.Second,
			UserAgent:       "newslens/1.0 (https://github.com/Hemanthkumar04/newslens)",
		},
		UI: UIConfig{
			Colors: UIColors{
				Primary:    "#FF6B6B",
				Secondary:  "#4ECDC4",
				Accent:     "#95E1D3",
				Background: "#1A1A2E",
				Surface:    "#16213E",
				Text:       "#EAEAEA",
				Muted:      "#94A3B8",
				Error:      "#F87171",
				Success:    "#4ADE80",
			},
			SkeletonCount:       6,
			DateFormat:          "Jan 2, 2006",
			CardWidth:           38,
			RemovedTitleMarkers: []string{"[Removed]"},
		},
		Keys: KeyConfig{
			Modifier: "ctrl",
			Bindings: KeyBindings{
				Quit:      "q",
				Search:    "s",
				Filter:    "f",
				Refresh:   "r",
				Summarize: "a",
				Related:   "l",
				OpenLink:  "o",
				Back:      "esc",
				Help:      "?",
			},
		},
		Log: LogConfig{
			Level: "error",
			Path:  logPath,
		},
		Proxy: ProxyConfig{
			Addr:     ":5000",
			Upstream: "https://newsapi.org/v2/everything",
		},
		LLM: LLMConfig{
			Model: "gemini-1.5-flash",
		},
	}
}

// Load reads configuration from the given file, falling back to
// ~/.config/newslens/config.toml and then to built-in defaults. A .env
// file in the working directory is honored so NEWS_API_KEY and
// GEMINI_API_KEY can live next to the binary instead of the shell profile.
func Load(configPath string) (*Config, error) {
	// Missing .env is fine; only the keys matter.
	_ = godotenv.Load()

	v := viper.New()

	cfg := defaultConfig()
	v.SetDefault("api", cfg.API)
	v.SetDefault("ui", cfg.UI)
	v.SetDefault("keys", cfg.Keys)
	v.SetDefault("log", cfg.Log)
	v.SetDefault("proxy", cfg.Proxy)
	v.SetDefault("llm", cfg.LLM)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		homeDir, _ := os.UserHomeDir()
		configDir := filepath.Join(homeDir, ".config", "newslens")

		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(configDir)
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("NEWSLENS")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	// Unmarshal over the defaults; a file that sets only some keys in a
	// section keeps that section's remaining defaults.
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	applyEnvSecrets(cfg)

	// Expand paths after loading
	expandPaths(cfg)

	if len(cfg.Topics) == 0 {
		topics, err := DefaultTopics()
		if err != nil {
			return nil, err
		}
		cfg.Topics = topics
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects configurations the API clients cannot work with.
func (c *Config) Validate() error {
	if _, err := validation.ValidateEndpointURL(c.API.NewsEndpoint); err != nil {
		return fmt.Errorf("api.news_endpoint: %w", err)
	}
	if _, err := validation.ValidateEndpointURL(c.API.SummaryEndpoint); err != nil {
		return fmt.Errorf("api.summary_endpoint: %w", err)
	}
	if _, err := validation.ValidateEndpointURL(c.Proxy.Upstream); err != nil {
		return fmt.Errorf("proxy.upstream: %w", err)
	}
	if c.API.PageSize < 1 || c.API.PageSize > 100 {
		return fmt.Errorf("api.page_size: must be between 1 and 100, got %d", c.API.PageSize)
	}
	if c.UI.SkeletonCount < 0 {
		return fmt.Errorf("ui.skeleton_count: must not be negative, got %d", c.UI.SkeletonCount)
	}
	return nil
}

// applyEnvSecrets keeps API keys out of the config file. The well-known
// environment names win over anything viper picked up.
func applyEnvSecrets(cfg *Config) {
	if key := os.Getenv("NEWS_API_KEY"); key != "" {
		cfg.API.Key = key
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		cfg.LLM.Key = key
	}
}

// expandPath expands ~ to home directory and converts to absolute path
func expandPath(path string) string {
	if path == "" {
		return path
	}

	// Expand tilde
	if len(path) >= 2 && path[:2] == "~/" {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}

	// Convert to absolute path if not already absolute
	if !filepath.IsAbs(path) {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}

	return path
}

// expandPaths expands all paths in the config
func expandPaths(cfg *Config) {
	cfg.Log.Path = expandPath(cfg.Log.Path)
}

func Save(config *Config, path string) error {
	v := viper.New()

	// Convert durations to strings for TOML readability
	apiCfg := map[string]interface{}{
		"news_endpoint":    config.API.NewsEndpoint,
		"summary_endpoint": config.API.SummaryEndpoint,
		"page_size":        config.API.PageSize,
		"language":         config.API.Language,
		"sort_by":          config.API.SortBy,
		"timeout":          config.API.Timeout.String(),
		"user_agent":       config.API.UserAgent,
	}

	// Keys never belong in a config file on disk.
	llmCfg := map[string]interface{}{
		"model": config.LLM.Model,
	}

	v.Set("api", apiCfg)
	v.Set("ui", config.UI)
	v.Set("keys", config.Keys)
	v.Set("log", config.Log)
	v.Set("proxy", config.Proxy)
	v.Set("llm", llmCfg)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	return v.WriteConfigAs(path)
}

func GenerateDefaultConfig(path string) error {
	return Save(defaultConfig(), path)
}
