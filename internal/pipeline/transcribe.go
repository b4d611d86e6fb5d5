package pipeline

import (
	"context"
	"fmt"
	"sync"

	"github.com/nguyentantai21042004/transcript-flow/internal/planner"
	"github.com/nguyentantai21042004/transcript-flow/internal/provider"
	"github.com/nguyentantai21042004/transcript-flow/internal/segmenter"
	"github.com/nguyentantai21042004/transcript-flow/pkg/retry"
)

// chunkOutcome is one unit result: payload on success, err on permanent
// failure. Exactly one is produced per planned chunk.
type chunkOutcome struct {
	payload *provider.TranscriptPayload
	err     error
}

// Transcribe probes the audio, plans the minimum number of chunks that fit
// under the provider's safe limit, cuts them and transcribes them with
// bounded concurrency. Chunks may finish in any order; assembly is always
// by chunk position, so output is deterministic.
func (p *implPipeline) Transcribe(ctx context.Context, audioPath string, language string) (*Transcript, error) {
	media, err := p.prober.Probe(ctx, audioPath)
	if err != nil {
		return nil, fmt.Errorf("probe audio: %w", err)
	}

	chunks := planner.PlanAudio(media.Duration, p.limits())
	if len(chunks) == 0 {
		return nil, fmt.Errorf("audio %s has no duration", audioPath)
	}

	p.logger.Info(ctx, "Planned %d chunks of ~%.1f minutes for %.1f minute audio",
		len(chunks), chunks[0].Duration/60, media.Duration/60)

	seg := p.newSegmenter()
	defer seg.Cleanup(ctx)

	fragments, err := seg.Cut(ctx, media, chunks)
	if err != nil {
		return nil, fmt.Errorf("cut fragments: %w", err)
	}

	outcomes := make([]chunkOutcome, len(fragments))
	sem := newSemaphore(p.cfg.Performance.MaxConcurrentChunks)
	var wg sync.WaitGroup

	for i, frag := range fragments {
		if frag.Err != nil {
			outcomes[i] = chunkOutcome{err: frag.Err}
			continue
		}

		wg.Add(1)
		go func(i int, frag segmenter.Fragment) {
			defer wg.Done()

			if err := sem.acquire(ctx); err != nil {
				outcomes[i] = chunkOutcome{err: err}
				return
			}
			defer sem.release()

			payload, err := retry.Do(ctx, p.retryCfg, func() (*provider.TranscriptPayload, error) {
				return p.provider.Transcribe(ctx, frag.Path, language)
			})
			if err != nil {
				p.logger.Warn(ctx, "Chunk %d failed permanently: %v", frag.Index, err)
				outcomes[i] = chunkOutcome{err: err}
				return
			}
			outcomes[i] = chunkOutcome{payload: payload}
		}(i, frag)
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	transcript := assembleTranscript(fragments, outcomes)
	transcript.Language = language

	p.logger.Info(ctx, "Transcription assembled: %d/%d chunks, %d characters",
		transcript.TotalChunks-transcript.FailedChunks, transcript.TotalChunks, len(transcript.Text))

	return transcript, nil
}
