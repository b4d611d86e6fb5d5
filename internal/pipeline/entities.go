package pipeline

import (
	"context"
	"sync"

	"github.com/nguyentantai21042004/transcript-flow/internal/planner"
	"github.com/nguyentantai21042004/transcript-flow/pkg/retry"
)

// DetectEntities splits the transcript into spans sized for fast extraction
// calls and unions the per-span results. Entities are best effort: a span
// that fails permanently contributes nothing, and no placeholder is needed
// because the result set is unordered.
func (p *implPipeline) DetectEntities(ctx context.Context, text string) ([]Entity, error) {
	spans := planner.PlanText(text, p.cfg.Limits.EntityChunkChars)
	if len(spans) == 0 {
		return nil, nil
	}

	p.logger.Info(ctx, "Detecting entities across %d spans", len(spans))

	results := make([]map[string][]string, len(spans))
	sem := newSemaphore(p.cfg.Performance.MaxConcurrentChunks)
	var wg sync.WaitGroup

	for i, span := range spans {
		wg.Add(1)
		go func(i int, span planner.TextSpan) {
			defer wg.Done()

			if err := sem.acquire(ctx); err != nil {
				return
			}
			defer sem.release()

			found, err := retry.Do(ctx, p.retryCfg, func() (map[string][]string, error) {
				return p.provider.ExtractEntities(ctx, span.Text)
			})
			if err != nil {
				p.logger.Warn(ctx, "Entity span %d failed permanently: %v", span.Index, err)
				return
			}
			results[i] = found
		}(i, span)
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entities := assembleEntities(results)
	p.logger.Info(ctx, "Entity detection complete: %d unique entities", len(entities))
	return entities, nil
}
