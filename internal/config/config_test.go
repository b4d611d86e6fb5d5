package config

import (
	"os"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "valid config",
			config: Config{
				Provider: ProviderConfig{
					APIKeys: []string{"key-1"},
				},
				Paths: PathsConfig{
					Channels: "data/channels",
					Output:   "data/output",
				},
			},
			wantErr: false,
		},
		{
			name: "missing api keys",
			config: Config{
				Paths: PathsConfig{
					Channels: "data/channels",
					Output:   "data/output",
				},
			},
			wantErr: true,
		},
		{
			name: "missing paths",
			config: Config{
				Provider: ProviderConfig{
					APIKeys: []string{"key-1"},
				},
				Paths: PathsConfig{},
			},
			wantErr: true,
		},
		{
			name: "safe duration above hard limit",
			config: Config{
				Provider: ProviderConfig{
					APIKeys: []string{"key-1"},
				},
				Paths: PathsConfig{
					Channels: "data/channels",
					Output:   "data/output",
				},
				Limits: LimitsConfig{
					MaxChunkDuration:  1400,
					SafeChunkDuration: 2000,
				},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := Config{
		Provider: ProviderConfig{APIKeys: []string{"key-1"}},
		Paths: PathsConfig{
			Channels: "data/channels",
			Output:   "data/output",
		},
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if cfg.Limits.MaxChunkDuration != 1400 {
		t.Errorf("MaxChunkDuration = %v, want 1400", cfg.Limits.MaxChunkDuration)
	}
	if cfg.Limits.SafeChunkDuration != 720 {
		t.Errorf("SafeChunkDuration = %v, want 720", cfg.Limits.SafeChunkDuration)
	}
	if cfg.Limits.ChunkOverlap != 0.5 {
		t.Errorf("ChunkOverlap = %v, want 0.5", cfg.Limits.ChunkOverlap)
	}
	if cfg.Limits.EntityChunkChars != 8000 {
		t.Errorf("EntityChunkChars = %v, want 8000", cfg.Limits.EntityChunkChars)
	}
	if cfg.Limits.TranslateChars != 7000 {
		t.Errorf("TranslateChars = %v, want 7000", cfg.Limits.TranslateChars)
	}
	if len(cfg.Languages) != 1 || cfg.Languages[0] != "en" {
		t.Errorf("Languages = %v, want [en]", cfg.Languages)
	}
}

func TestLoad(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	content := `
provider:
  api_keys:
    - "key-1"
    - "key-2"
  transcribe_model: "gemini-2.5-flash"

limits:
  safe_chunk_duration: 600

paths:
  channels: "data/channels"
  output: "data/output"

languages:
  - pt
  - es

logging:
  level: "info"
`

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(cfg.Provider.APIKeys) != 2 {
		t.Errorf("APIKeys = %v, want 2 keys", cfg.Provider.APIKeys)
	}
	if cfg.Limits.SafeChunkDuration != 600 {
		t.Errorf("SafeChunkDuration = %v, want 600", cfg.Limits.SafeChunkDuration)
	}
	if cfg.Limits.MaxChunkDuration != 1400 {
		t.Errorf("MaxChunkDuration = %v, want default 1400", cfg.Limits.MaxChunkDuration)
	}
	if len(cfg.Languages) != 2 {
		t.Errorf("Languages = %v, want [pt es]", cfg.Languages)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}
