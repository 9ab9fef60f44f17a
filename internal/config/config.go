package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ListenAddr   string `yaml:"listen_addr"`
	DatabaseURL  string `yaml:"database_url"`
	Collection   string `yaml:"collection"`
	Settlement   string `yaml:"settlement"`
	FloorSlug    string `yaml:"floor_slug"`    // marketplace id for the floor feed, empty disables it
	FloorRefresh string `yaml:"floor_refresh"` // time.ParseDuration format
}

func Default() *Config {
	return &Config{
		ListenAddr:   ":8080",
		Collection:   "collection",
		Settlement:   "XRD",
		FloorRefresh: "1m",
	}
}

// Load reads a YAML config. An empty path yields the defaults. DATABASE_URL
// in the environment wins over the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, err
		}
	}
	if url := os.Getenv("DATABASE_URL"); url != "" {
		cfg.DatabaseURL = url
	}
	return cfg, nil
}

func (c *Config) RefreshInterval() time.Duration {
	d, err := time.ParseDuration(c.FloorRefresh)
	if err != nil || d <= 0 {
		return time.Minute
	}
	return d
}
