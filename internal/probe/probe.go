package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/nguyentantai21042004/transcript-flow/pkg/executor"
)

// MediaInfo describes a local media file. Immutable once probed.
type MediaInfo struct {
	Path     string
	Duration float64 // seconds
	Size     int64   // bytes
}

type implProber struct {
	executor executor.Executor
}

// Prober reports a media file's duration and size without decoding it.
type Prober interface {
	Probe(ctx context.Context, path string) (*MediaInfo, error)
}

// New creates a Prober backed by ffprobe.
func New(exec executor.Executor) Prober {
	return &implProber{executor: exec}
}

// Probe runs a single ffprobe JSON call against path. Duration comes from
// container metadata, so the file is never read in full.
func (p *implProber) Probe(ctx context.Context, path string) (*MediaInfo, error) {
	out, err := p.executor.Execute(ctx, "ffprobe",
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		path,
	)
	if err != nil {
		return nil, fmt.Errorf("ffprobe %s: %w", path, err)
	}

	info, err := ParseJSON([]byte(out))
	if err != nil {
		return nil, err
	}
	info.Path = path
	return info, nil
}

// ParseJSON converts raw ffprobe JSON output into a MediaInfo.
// Exported for testing without a real ffprobe binary.
func ParseJSON(data []byte) (*MediaInfo, error) {
	var raw ffprobeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse ffprobe JSON: %w", err)
	}

	duration, err := strconv.ParseFloat(raw.Format.Duration, 64)
	if err != nil {
		return nil, fmt.Errorf("parse duration %q: %w", raw.Format.Duration, err)
	}

	// Size is informational; a missing field is not fatal.
	size, _ := strconv.ParseInt(raw.Format.Size, 10, 64)

	return &MediaInfo{Duration: duration, Size: size}, nil
}

// ffprobe JSON wire types
type ffprobeOutput struct {
	Format ffprobeFormat `json:"format"`
}

type ffprobeFormat struct {
	Filename string `json:"filename"`
	Duration string `json:"duration"`
	Size     string `json:"size"`
}
