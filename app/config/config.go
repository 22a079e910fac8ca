// Package config loads the feed list configuration.
package config

import (
	"fmt"
	"net/url"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Source is a single configured feed.
type Source struct {
	URL      string `koanf:"url"`
	Category string `koanf:"category"`
	Name     string `koanf:"name"`
}

// Config is the feed list configuration.
type Config struct {
	Feeds []Source `koanf:"feeds"`
}

// Load reads the configuration from the JSON file at path. Any problem with
// the file is fatal for the run, the caller is expected to abort.
func Load(path string) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(file.Provider(path), json.Parser()); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config %s: %w", path, err)
	}

	for i, src := range cfg.Feeds {
		if src.URL == "" {
			return Config{}, fmt.Errorf("config %s: feed #%d has no url", path, i)
		}
		if _, err := url.ParseRequestURI(src.URL); err != nil {
			return Config{}, fmt.Errorf("config %s: feed #%d: %w", path, i, err)
		}
	}

	return cfg, nil
}
