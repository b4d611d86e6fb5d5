package channel

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
)

const stateFile = "state.json"

// Store persists channel state as one state.json per channel directory.
// Saves go through a temp file plus rename so a crash mid-write never
// leaves a truncated state behind.
type Store struct {
	baseDir string
	logger  logger.Logger
}

// NewStore creates a Store rooted at baseDir.
func NewStore(baseDir string, log logger.Logger) *Store {
	return &Store{baseDir: baseDir, logger: log}
}

// Dir returns the directory holding one channel's state and artifacts.
func (s *Store) Dir(key string) string {
	return filepath.Join(s.baseDir, key)
}

// Load reads a channel's state. A missing file returns (nil, nil): the
// caller starts fresh. A file that exists but cannot be parsed is an
// error, never silently discarded, because overwriting it would throw
// away completed work.
func (s *Store) Load(ctx context.Context, key string) (*State, error) {
	path := filepath.Join(s.Dir(key), stateFile)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read state %s: %w", path, err)
	}
	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("parse state %s (refusing to overwrite): %w", path, err)
	}
	return &st, nil
}

// Save writes a channel's state atomically.
func (s *Store) Save(ctx context.Context, key string, st *State) error {
	dir := s.Dir(key)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create channel dir: %w", err)
	}

	st.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	path := filepath.Join(dir, stateFile)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write state temp: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("commit state: %w", err)
	}
	return nil
}

// Heal reconciles stage flags with the filesystem: a flag whose output
// file no longer exists is reset so the stage reruns. Returns the number
// of flags reset.
func (s *Store) Heal(ctx context.Context, st *State) int {
	reset := 0
	for id, vs := range st.Status {
		if vs.Downloaded && !fileExists(vs.AudioPath) {
			s.logger.Warn(ctx, "Audio for %s missing, will re-download: %s", id, vs.AudioPath)
			vs.Downloaded = false
			vs.AudioPath = ""
			reset++
		}
		if vs.Transcribed && !fileExists(vs.TranscriptFile) {
			s.logger.Warn(ctx, "Transcript for %s missing, will re-transcribe: %s", id, vs.TranscriptFile)
			vs.Transcribed = false
			vs.TranscriptFile = ""
			reset++
		}
		if vs.EntitiesDone && vs.EntitiesFile != "" && !fileExists(vs.EntitiesFile) {
			s.logger.Warn(ctx, "Entities for %s missing, will re-detect: %s", id, vs.EntitiesFile)
			vs.EntitiesDone = false
			vs.EntitiesFile = ""
			reset++
		}
		for lang, ts := range vs.Translations {
			if ts.Completed && !fileExists(ts.File) {
				s.logger.Warn(ctx, "Translation %s for %s missing, will re-translate: %s", lang, id, ts.File)
				ts.Completed = false
				ts.File = ""
				reset++
			}
		}
	}
	return reset
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// SafeKey turns a channel identifier into a directory name.
func SafeKey(id string) string {
	var sb strings.Builder
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			sb.WriteRune(r)
		default:
			sb.WriteRune('_')
		}
	}
	key := strings.Trim(sb.String(), "._")
	if key == "" {
		key = "channel"
	}
	return key
}
