package config

import (
	_ "embed"
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

//go:embed topics.toml
var topicsTOML []byte

// Topic is a named preset query shown in the topic bar.
type Topic struct {
	Name  string `toml:"name" mapstructure:"name"`
	Query string `toml:"query" mapstructure:"query"`
}

type topicsFile struct {
	Topics []Topic `toml:"topics"`
}

// DefaultTopics returns the built-in topic presets from the embedded TOML.
func DefaultTopics() ([]Topic, error) {
	var file topicsFile
	if err := toml.Unmarshal(topicsTOML, &file); err != nil {
		return nil, fmt.Errorf("parsing topics.toml: %w", err)
	}
	return file.Topics, nil
}

// FindTopic resolves a topic by name, case-sensitively first and then by
// query. Returns the zero Topic and false when nothing matches.
func (c *Config) FindTopic(name string) (Topic, bool) {
	for _, t := range c.Topics {
		if t.Name == name {
			return t, true
		}
	}
	for _, t := range c.Topics {
		if t.Query == name {
			return t, true
		}
	}
	return Topic{}, false
}
