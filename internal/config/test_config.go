package config

import "time"

// TestConfig returns a config suitable for testing
func TestConfig() *Config {
	topics, _ := DefaultTopics()
	return &Config{
		API: APIConfig{
			NewsEndpoint:    "http://localhost/api/news",
			SummaryEndpoint: "http://localhost/api/summarize",
			Key:             "test-key",
			PageSize:        12,
			Language:        "en",
			SortBy:          "publishedAt",
			Timeout:         5 * time.Second,
			UserAgent:       "newslens-test/1.0",
		},
		UI:     defaultConfig().UI,
		Keys:   defaultConfig().Keys,
		Log:    LogConfig{Level: "off"},
		Proxy:  defaultConfig().Proxy,
		LLM:    defaultConfig().LLM,
		Topics: topics,
	}
}
