package segmenter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/nguyentantai21042004/transcript-flow/internal/planner"
	"github.com/nguyentantai21042004/transcript-flow/internal/probe"
)

// Cut extracts one fragment per planned chunk using ffmpeg stream copy, so
// the source is never decoded or loaded into memory. A plan of one chunk
// covering the whole input returns the source path directly, skipping the
// extraction entirely.
//
// Fragment timestamps are normalized to start at zero, so a per-fragment
// transcription reports times relative to its own start.
func (s *implSegmenter) Cut(ctx context.Context, media *probe.MediaInfo, chunks []planner.AudioChunk) ([]Fragment, error) {
	if len(chunks) == 0 {
		return nil, fmt.Errorf("no chunks to cut")
	}

	if len(chunks) == 1 && chunks[0].Start == 0 {
		return []Fragment{{Index: 0, Path: media.Path, Chunk: chunks[0]}}, nil
	}

	if s.scratch == "" {
		scratch, err := os.MkdirTemp(s.tempRoot, "chunks-*")
		if err != nil {
			return nil, fmt.Errorf("create scratch dir: %w", err)
		}
		s.scratch = scratch
	}

	ext := filepath.Ext(media.Path)
	if ext == "" {
		ext = ".mp3"
	}

	fragments := make([]Fragment, len(chunks))
	for i, chunk := range chunks {
		outPath := filepath.Join(s.scratch, fmt.Sprintf("chunk_%03d%s", chunk.Index, ext))

		args := []string{
			"-ss", formatSeconds(chunk.Start),
			"-t", formatSeconds(chunk.Duration),
			"-i", media.Path,
			"-vn",
			"-acodec", "copy",
			"-avoid_negative_ts", "make_zero",
			"-y",
			outPath,
		}

		if _, err := s.executor.Execute(ctx, "ffmpeg", args...); err != nil {
			s.logger.Warn(ctx, "Fragment %d extraction failed: %v", chunk.Index, err)
			fragments[i] = Fragment{Index: chunk.Index, Chunk: chunk, Err: fmt.Errorf("extract fragment %d: %w", chunk.Index, err)}
			continue
		}

		s.logger.Debug(ctx, "Extracted fragment %d: %.1fs-%.1fs -> %s", chunk.Index, chunk.Start, chunk.End(), outPath)
		fragments[i] = Fragment{Index: chunk.Index, Path: outPath, Chunk: chunk}
	}

	return fragments, nil
}

// Cleanup removes the scratch directory and every fragment in it. Safe to
// call on every exit path, including before any Cut.
func (s *implSegmenter) Cleanup(ctx context.Context) {
	if s.scratch == "" {
		return
	}
	if err := os.RemoveAll(s.scratch); err != nil {
		s.logger.Warn(ctx, "Failed to cleanup scratch dir %s: %v", s.scratch, err)
	} else {
		s.logger.Debug(ctx, "Cleaned up scratch dir: %s", s.scratch)
	}
	s.scratch = ""
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}
