package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	// Test API defaults
	if cfg.API.NewsEndpoint != "https://newsapi.org/v2/everything" {
		t.Errorf("API.NewsEndpoint = %s, want NewsAPI everything endpoint", cfg.API.NewsEndpoint)
	}
	if cfg.API.PageSize != 12 {
		t.Errorf("API.PageSize = %d, want 12", cfg.API.PageSize)
	}
	if cfg.API.Language != "en" {
		t.Errorf("API.Language = %s, want 'en'", cfg.API.Language)
	}
	if cfg.API.SortBy != "publishedAt" {
		t.Errorf("API.SortBy = %s, want 'publishedAt'", cfg.API.SortBy)
	}
	if cfg.API.Timeout != 10*time.Second {
		t.Errorf("API.Timeout = %v, want 10s", cfg.API.Timeout)
	}
	if cfg.API.UserAgent == "" {
		t.Error("API.UserAgent should not be empty")
	}

	// Test UI defaults
	if cfg.UI.SkeletonCount != 6 {
		t.Errorf("UI.SkeletonCount = %d, want 6", cfg.UI.SkeletonCount)
	}
	if cfg.UI.DateFormat != "Jan 2, 2006" {
		t.Errorf("UI.DateFormat = %s, want 'Jan 2, 2006'", cfg.UI.DateFormat)
	}
	if len(cfg.UI.RemovedTitleMarkers) != 1 || cfg.UI.RemovedTitleMarkers[0] != "[Removed]" {
		t.Errorf("UI.RemovedTitleMarkers = %v, want ['[Removed]']", cfg.UI.RemovedTitleMarkers)
	}

	// Test key bindings
	if cfg.Keys.Modifier != "ctrl" {
		t.Errorf("Keys.Modifier = %s, want 'ctrl'", cfg.Keys.Modifier)
	}
	if cfg.Keys.Bindings.Quit != "q" {
		t.Errorf("Keys.Bindings.Quit = %s, want 'q'", cfg.Keys.Bindings.Quit)
	}

	// Test LLM defaults
	if cfg.LLM.Model != "gemini-1.5-flash" {
		t.Errorf("LLM.Model = %s, want 'gemini-1.5-flash'", cfg.LLM.Model)
	}
}

func TestLoad_DefaultConfig(t *testing.T) {
	// Test loading without a config file (should use defaults)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg == nil {
		t.Fatal("Load() returned nil config")
	}

	// Should have default values
	if cfg.API.PageSize != 12 {
		t.Errorf("API.PageSize = %d, want 12", cfg.API.PageSize)
	}

	// Built-in topic presets kick in when the file defines none
	if len(cfg.Topics) == 0 {
		t.Error("Load() should fall back to built-in topics")
	}
}

func TestLoad_FromFile(t *testing.T) {
	// Create a temporary config file
	tmpDir, err := os.MkdirTemp("", "config-test-*")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	configPath := filepath.Join(tmpDir, "test-config.toml")
	configContent := `
[api]
news_endpoint = "http://localhost:5000/api/news"
page_size = 24
timeout = "20s"
user_agent = "test-agent"

[ui]
skeleton_count = 4

[ui.colors]
primary = "#FF0000"

[[topics]]
name = "Space"
query = "space exploration"
`

	if writeErr := os.WriteFile(configPath, []byte(configContent), 0o644); writeErr != nil {
		t.Fatal(writeErr)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// Check loaded values
	if cfg.API.NewsEndpoint != "http://localhost:5000/api/news" {
		t.Errorf("API.NewsEndpoint = %s, want 'http://localhost:5000/api/news'", cfg.API.NewsEndpoint)
	}
	if cfg.API.PageSize != 24 {
		t.Errorf("API.PageSize = %d, want 24", cfg.API.PageSize)
	}
	if cfg.API.Timeout != 20*time.Second {
		t.Errorf("API.Timeout = %v, want 20s", cfg.API.Timeout)
	}
	if cfg.API.UserAgent != "test-agent" {
		t.Errorf("API.UserAgent = %s, want 'test-agent'", cfg.API.UserAgent)
	}
	if cfg.UI.SkeletonCount != 4 {
		t.Errorf("UI.SkeletonCount = %d, want 4", cfg.UI.SkeletonCount)
	}
	if cfg.UI.Colors.Primary != "#FF0000" {
		t.Errorf("UI.Colors.Primary = %s, want '#FF0000'", cfg.UI.Colors.Primary)
	}

	// Keys absent from a partially-set section keep their defaults
	if cfg.API.SummaryEndpoint != "http://localhost:5000/api/summarize" {
		t.Errorf("API.SummaryEndpoint = %s, want default summarize endpoint", cfg.API.SummaryEndpoint)
	}
	if cfg.API.Language != "en" {
		t.Errorf("API.Language = %s, want default 'en'", cfg.API.Language)
	}

	// User topics replace the built-in presets entirely
	if len(cfg.Topics) != 1 || cfg.Topics[0].Query != "space exploration" {
		t.Errorf("Topics = %v, want single 'space exploration' topic", cfg.Topics)
	}
}

func TestLoad_EnvSecrets(t *testing.T) {
	t.Setenv("NEWS_API_KEY", "env-news-key")
	t.Setenv("GEMINI_API_KEY", "env-gemini-key")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.API.Key != "env-news-key" {
		t.Errorf("API.Key = %s, want 'env-news-key'", cfg.API.Key)
	}
	if cfg.LLM.Key != "env-gemini-key" {
		t.Errorf("LLM.Key = %s, want 'env-gemini-key'", cfg.LLM.Key)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "defaults are valid",
			mutate:  func(_ *Config) {},
			wantErr: false,
		},
		{
			name:    "bad news endpoint",
			mutate:  func(c *Config) { c.API.NewsEndpoint = "not a url" },
			wantErr: true,
		},
		{
			name:    "non-http summary endpoint",
			mutate:  func(c *Config) { c.API.SummaryEndpoint = "ftp://example.com/sum" },
			wantErr: true,
		},
		{
			name:    "page size too small",
			mutate:  func(c *Config) { c.API.PageSize = 0 },
			wantErr: true,
		},
		{
			name:    "page size too large",
			mutate:  func(c *Config) { c.API.PageSize = 500 },
			wantErr: true,
		},
		{
			name:    "negative skeleton count",
			mutate:  func(c *Config) { c.UI.SkeletonCount = -1 },
			wantErr: true,
		},
		{
			name:    "empty proxy upstream",
			mutate:  func(c *Config) { c.Proxy.Upstream = "" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSave(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "config-save-test-*")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	cfg := defaultConfig()
	cfg.API.NewsEndpoint = "http://localhost:9999/api/news"
	cfg.API.UserAgent = "test-save-agent"
	cfg.Keys.Modifier = "alt"

	savePath := filepath.Join(tmpDir, "saved-config.toml")
	if saveErr := Save(cfg, savePath); saveErr != nil {
		t.Fatalf("Save() error = %v", saveErr)
	}

	// Verify file was created
	if _, statErr := os.Stat(savePath); os.IsNotExist(statErr) {
		t.Fatal("Save() did not create config file")
	}

	// Load it back and verify
	loaded, err := Load(savePath)
	if err != nil {
		t.Fatalf("Failed to load saved config: %v", err)
	}

	if loaded.API.NewsEndpoint != cfg.API.NewsEndpoint {
		t.Errorf("Loaded API.NewsEndpoint = %s, want %s", loaded.API.NewsEndpoint, cfg.API.NewsEndpoint)
	}
	if loaded.API.UserAgent != cfg.API.UserAgent {
		t.Errorf("Loaded API.UserAgent = %s, want %s", loaded.API.UserAgent, cfg.API.UserAgent)
	}
	if loaded.Keys.Modifier != cfg.Keys.Modifier {
		t.Errorf("Loaded Keys.Modifier = %s, want %s", loaded.Keys.Modifier, cfg.Keys.Modifier)
	}
}

func TestSave_OmitsSecrets(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "config-secret-test-*")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	cfg := defaultConfig()
	cfg.API.Key = "super-secret"
	cfg.LLM.Key = "also-secret"

	savePath := filepath.Join(tmpDir, "config.toml")
	if saveErr := Save(cfg, savePath); saveErr != nil {
		t.Fatalf("Save() error = %v", saveErr)
	}

	data, err := os.ReadFile(savePath)
	if err != nil {
		t.Fatal(err)
	}

	if strings.Contains(string(data), "super-secret") || strings.Contains(string(data), "also-secret") {
		t.Error("Save() wrote API keys to disk")
	}
}

func TestGenerateDefaultConfig(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "config-gen-test-*")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	configPath := filepath.Join(tmpDir, "generated.toml")
	if genErr := GenerateDefaultConfig(configPath); genErr != nil {
		t.Fatalf("GenerateDefaultConfig() error = %v", genErr)
	}

	// Verify file exists
	if _, statErr := os.Stat(configPath); os.IsNotExist(statErr) {
		t.Fatal("GenerateDefaultConfig() did not create file")
	}

	// Load and verify it has defaults
	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load generated config: %v", err)
	}

	if cfg.Keys.Modifier != "ctrl" {
		t.Errorf("Generated config has Keys.Modifier = %s, want 'ctrl'", cfg.Keys.Modifier)
	}
}

func TestDefaultTopics(t *testing.T) {
	topics, err := DefaultTopics()
	if err != nil {
		t.Fatalf("DefaultTopics() error = %v", err)
	}

	if len(topics) == 0 {
		t.Fatal("DefaultTopics() returned no topics")
	}

	if topics[0].Name != "Technology" || topics[0].Query != "technology" {
		t.Errorf("first topic = %+v, want Technology/technology", topics[0])
	}

	for _, topic := range topics {
		if topic.Name == "" || topic.Query == "" {
			t.Errorf("topic %+v has empty name or query", topic)
		}
	}
}

func TestFindTopic(t *testing.T) {
	cfg := TestConfig()

	if topic, ok := cfg.FindTopic("Technology"); !ok || topic.Query != "technology" {
		t.Errorf("FindTopic(Technology) = %+v, %v; want technology query", topic, ok)
	}

	// Lookup by query string also resolves
	if _, ok := cfg.FindTopic("sports"); !ok {
		t.Error("FindTopic(sports) should resolve by query")
	}

	if _, ok := cfg.FindTopic("nonexistent"); ok {
		t.Error("FindTopic(nonexistent) should not resolve")
	}
}

func TestTestConfig(t *testing.T) {
	cfg := TestConfig()

	if cfg == nil {
		t.Fatal("TestConfig() returned nil")
	}

	// Verify test-specific settings
	if cfg.API.UserAgent != "newslens-test/1.0" {
		t.Errorf("TestConfig API.UserAgent = %s, want 'newslens-test/1.0'", cfg.API.UserAgent)
	}
	if cfg.Log.Level != "off" {
		t.Errorf("TestConfig Log.Level = %s, want 'off'", cfg.Log.Level)
	}
}
