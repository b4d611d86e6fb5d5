package segmenter

import (
	"context"

	"github.com/nguyentantai21042004/transcript-flow/internal/planner"
	"github.com/nguyentantai21042004/transcript-flow/internal/probe"
)

// Fragment is one physically extracted, independently playable audio slice.
// A failed extraction carries its error here so the remaining fragments can
// still be processed.
type Fragment struct {
	Index int
	Path  string
	Chunk planner.AudioChunk
	Err   error
}

// Segmenter cuts planned chunks out of a media file into scratch fragments.
type Segmenter interface {
	Cut(ctx context.Context, media *probe.MediaInfo, chunks []planner.AudioChunk) ([]Fragment, error)
	Cleanup(ctx context.Context)
}
