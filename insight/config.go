package insight

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileConfig is the doctor's YAML configuration: the model endpoint
// parameters, prompt-construction knobs, and the report archive path.
type FileConfig struct {
	Model     ClientConfig `yaml:"model"`
	ChunkSize int          `yaml:"chunk_size"`
	Locale    string       `yaml:"locale"`

	// DBPath is the report archive database. Default: db/reports.db.
	DBPath string `yaml:"db_path"`

	// AuthHash is an optional bcrypt password hash protecting the HTTP
	// surface.
	AuthHash string `yaml:"auth_hash"`
}

func (c *FileConfig) applyDefaults() {
	c.Model.defaults()
	if c.ChunkSize <= 0 {
		c.ChunkSize = DefaultChunkSize
	}
	if c.Locale == "" {
		c.Locale = "en"
	}
	if c.DBPath == "" {
		c.DBPath = "db/reports.db"
	}
}

// DefaultFileConfig returns the configuration used when no file is given.
func DefaultFileConfig() *FileConfig {
	cfg := &FileConfig{}
	cfg.applyDefaults()
	return cfg
}

// LoadConfigFile reads a YAML configuration file and applies defaults.
func LoadConfigFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("insight: read config: %w", err)
	}
	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("insight: parse config: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}
