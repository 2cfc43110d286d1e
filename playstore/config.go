package playstore

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level collector configuration.
type Config struct {
	Browser BrowserConfig `yaml:"browser"`
	Scrape  ScrapeConfig  `yaml:"scrape"`
}

// BrowserConfig controls the Chrome session.
type BrowserConfig struct {
	// Remote is the WebSocket URL of an external Chrome. Empty =
	// launch a local one.
	Remote string `yaml:"remote"`

	// Headful shows the browser window. Default: headless.
	Headful bool `yaml:"headful"`

	// ResourceBlocking lists resource types to block (images, fonts,
	// media, stylesheets).
	ResourceBlocking []string `yaml:"resource_blocking"`

	// NavTimeout bounds navigation plus initial load.
	NavTimeout time.Duration `yaml:"nav_timeout"`
}

// ScrapeConfig controls page driving.
type ScrapeConfig struct {
	// SettleDelay is the fixed wait after navigation, panel
	// activation, and the key-event burst.
	SettleDelay time.Duration `yaml:"settle_delay"`

	// KeyDelay is the pause between synthesized focus-advance events.
	KeyDelay time.Duration `yaml:"key_delay"`

	// IconTimeout bounds the wait for the section navigation icons.
	IconTimeout time.Duration `yaml:"icon_timeout"`
}

// MaxAdvance caps the focus-advance count accepted from the CLI.
const MaxAdvance = 10000

func (c *Config) applyDefaults() {
	if c.Browser.NavTimeout <= 0 {
		c.Browser.NavTimeout = 30 * time.Second
	}
	if c.Scrape.SettleDelay <= 0 {
		c.Scrape.SettleDelay = 3 * time.Second
	}
	if c.Scrape.KeyDelay <= 0 {
		c.Scrape.KeyDelay = 10 * time.Millisecond
	}
	if c.Scrape.IconTimeout <= 0 {
		c.Scrape.IconTimeout = 10 * time.Second
	}
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// LoadConfigFile reads a YAML configuration file and applies defaults.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("playstore: read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("playstore: parse config: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}
