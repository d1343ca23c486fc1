package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/adrg/xdg"
)

// Config represents the configuration for the Collected Notes binaries.
type Config struct {
	CollectedNotes struct {
		Email string `json:"email"`
		Token string `json:"token"`
		URL   string `json:"url"`
	} `json:"collectednotes"`
	MCP struct {
		Tools map[string]bool `json:"tools"`
	} `json:"mcp"`
}

// Load loads the configuration from a JSON file.
// If path is empty, it searches for "collectednotes/config.json" in XDG
// config directories. The COLLECTED_NOTES_EMAIL and COLLECTED_NOTES_TOKEN
// environment variables override whatever the file contains, and suffice
// on their own when no file exists.
func Load(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		found, err := xdg.SearchConfigFile("collectednotes/config.json")
		if err == nil {
			path = found
		}
	}

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		if err := json.NewDecoder(f).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if email := os.Getenv("COLLECTED_NOTES_EMAIL"); email != "" {
		cfg.CollectedNotes.Email = email
	}
	if token := os.Getenv("COLLECTED_NOTES_TOKEN"); token != "" {
		cfg.CollectedNotes.Token = token
	}

	if cfg.CollectedNotes.Email != "" && cfg.CollectedNotes.Token == "" {
		return nil, errors.New("incomplete credentials: email is set but token is missing")
	}

	return &cfg, nil
}
