package pipeline

import (
	"context"
	"sync"

	"github.com/nguyentantai21042004/transcript-flow/internal/planner"
	"github.com/nguyentantai21042004/transcript-flow/pkg/retry"
)

// spanOutcome is one translated span, or its error on permanent failure.
type spanOutcome struct {
	text string
	err  error
}

// Translate splits the text at sentence boundaries into spans sized for
// quality translation calls, translates them concurrently and reassembles
// in original order. A span that fails permanently falls back to its
// untranslated text: a readable paragraph in the wrong language beats a
// hole in the prose, and Fallbacks records exactly where it happened.
func (p *implPipeline) Translate(ctx context.Context, text string, targetLanguage string) (*Translation, error) {
	spans := planner.PlanText(text, p.cfg.Limits.TranslateChars)
	if len(spans) == 0 {
		return &Translation{Language: targetLanguage}, nil
	}

	p.logger.Info(ctx, "Translating %d spans to %s", len(spans), targetLanguage)

	outcomes := make([]spanOutcome, len(spans))
	sem := newSemaphore(p.cfg.Performance.MaxConcurrentChunks)
	var wg sync.WaitGroup

	for i, span := range spans {
		wg.Add(1)
		go func(i int, span planner.TextSpan) {
			defer wg.Done()

			if err := sem.acquire(ctx); err != nil {
				outcomes[i] = spanOutcome{err: err}
				return
			}
			defer sem.release()

			translated, err := retry.Do(ctx, p.retryCfg, func() (string, error) {
				return p.provider.Translate(ctx, span.Text, targetLanguage)
			})
			if err != nil {
				p.logger.Warn(ctx, "Translation span %d failed permanently, keeping original: %v", span.Index, err)
				outcomes[i] = spanOutcome{err: err}
				return
			}
			outcomes[i] = spanOutcome{text: translated}
		}(i, span)
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	translation := assembleTranslation(spans, outcomes, targetLanguage)

	if translation.Complete() {
		p.logger.Info(ctx, "Translation to %s complete: %d characters", targetLanguage, len(translation.Text))
	} else {
		p.logger.Warn(ctx, "Translation to %s partial: %d of %d spans fell back to original text",
			targetLanguage, len(translation.Fallbacks), translation.TotalSpans)
	}

	return translation, nil
}
