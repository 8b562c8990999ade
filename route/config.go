package route

import (
	"encoding/json"
	"fmt"
	"os"
)

// ConversationRoute describes one conversation's routing entry: the
// conversation number from the corpus, a display name, and the keywords
// that pull a query toward it.
type ConversationRoute struct {
	Conversation int      `json:"conversation"`
	Name         string   `json:"name"`
	Keywords     []string `json:"keywords"`
}

func (r ConversationRoute) validate() error {
	if r.Conversation <= 0 {
		return fmt.Errorf("%w: conversation number %d", ErrInvalidRoute, r.Conversation)
	}
	if len(r.Keywords) == 0 {
		return fmt.Errorf("%w: conversation %d has no keywords", ErrInvalidRoute, r.Conversation)
	}
	for _, keyword := range r.Keywords {
		if keyword == "" {
			return fmt.Errorf("%w: conversation %d has an empty keyword", ErrInvalidRoute, r.Conversation)
		}
	}
	return nil
}

// Config is the on-disk routing configuration.
type Config struct {
	Conversations []ConversationRoute `json:"conversations"`
}

// LoadConfig reads and parses a routing configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read routing config: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedConfig, err)
	}
	return &config, nil
}
