package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Provider    ProviderConfig    `yaml:"provider"`
	Limits      LimitsConfig      `yaml:"limits"`
	Paths       PathsConfig       `yaml:"paths"`
	Languages   []string          `yaml:"languages"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
}

type ProviderConfig struct {
	APIKeys         []string `yaml:"api_keys"`
	TranscribeModel string   `yaml:"transcribe_model"`
	TextModel       string   `yaml:"text_model"`
}

type LimitsConfig struct {
	// MaxChunkDuration is the provider's hard per-call audio limit in seconds.
	// SafeChunkDuration stays well below it because the limit describes input
	// size, not how much text the model may emit for that input.
	MaxChunkDuration  float64 `yaml:"max_chunk_duration"`
	SafeChunkDuration float64 `yaml:"safe_chunk_duration"`
	ChunkOverlap      float64 `yaml:"chunk_overlap"`
	MaxFileSizeMB     float64 `yaml:"max_file_size_mb"`
	EntityChunkChars  int     `yaml:"entity_chunk_chars"`
	TranslateChars    int     `yaml:"translate_chunk_chars"`
}

type PathsConfig struct {
	Downloads string `yaml:"downloads"`
	Channels  string `yaml:"channels"`
	Inbox     string `yaml:"inbox"`
	Output    string `yaml:"output"`
	Temp      string `yaml:"temp"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrentChunks int `yaml:"max_concurrent_chunks"`
	MaxConcurrentItems  int `yaml:"max_concurrent_items"`
}

// Load reads and validates a YAML config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if len(c.Provider.APIKeys) == 0 {
		return fmt.Errorf("provider.api_keys is required")
	}
	if c.Paths.Channels == "" {
		return fmt.Errorf("paths.channels is required")
	}
	if c.Paths.Output == "" {
		return fmt.Errorf("paths.output is required")
	}
	if c.Limits.SafeChunkDuration > 0 && c.Limits.MaxChunkDuration > 0 &&
		c.Limits.SafeChunkDuration > c.Limits.MaxChunkDuration {
		return fmt.Errorf("limits.safe_chunk_duration must not exceed limits.max_chunk_duration")
	}

	if c.Provider.TranscribeModel == "" {
		c.Provider.TranscribeModel = "gemini-2.5-flash"
	}
	if c.Provider.TextModel == "" {
		c.Provider.TextModel = "gemini-2.5-pro"
	}
	if c.Limits.MaxChunkDuration == 0 {
		c.Limits.MaxChunkDuration = 1400
	}
	if c.Limits.SafeChunkDuration == 0 {
		c.Limits.SafeChunkDuration = 720
	}
	if c.Limits.ChunkOverlap == 0 {
		c.Limits.ChunkOverlap = 0.5
	}
	if c.Limits.MaxFileSizeMB == 0 {
		c.Limits.MaxFileSizeMB = 25
	}
	if c.Limits.EntityChunkChars == 0 {
		c.Limits.EntityChunkChars = 8000
	}
	if c.Limits.TranslateChars == 0 {
		c.Limits.TranslateChars = 7000
	}
	if c.Paths.Downloads == "" {
		c.Paths.Downloads = "data/downloads"
	}
	if c.Paths.Inbox == "" {
		c.Paths.Inbox = "data/inbox"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}
	if c.Performance.MaxConcurrentChunks == 0 {
		c.Performance.MaxConcurrentChunks = 3
	}
	if c.Performance.MaxConcurrentItems == 0 {
		c.Performance.MaxConcurrentItems = 2
	}
	if len(c.Languages) == 0 {
		c.Languages = []string{"en"}
	}

	return nil
}
