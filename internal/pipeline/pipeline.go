package pipeline

import (
	"context"
	"fmt"
	"time"
)

// Run carries one local item through every stage: transcription, entity
// detection and one translation per requested language. Used by the inbox
// watch mode, where there is no persisted channel state to resume from.
func (p *implPipeline) Run(ctx context.Context, audioPath string, languages []string) (*Result, error) {
	startTime := time.Now()

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting item processing: %s", audioPath)
	p.logger.Info(ctx, "========================================")

	transcript, err := p.Transcribe(ctx, audioPath, "")
	if err != nil {
		return nil, fmt.Errorf("transcribe: %w", err)
	}
	if len(transcript.Segments) == 0 {
		return nil, fmt.Errorf("transcription produced no usable text (%d of %d chunks failed)",
			transcript.FailedChunks, transcript.TotalChunks)
	}

	entities, err := p.DetectEntities(ctx, transcript.Text)
	if err != nil {
		return nil, fmt.Errorf("detect entities: %w", err)
	}

	translations := make(map[string]*Translation, len(languages))
	for _, lang := range languages {
		translation, err := p.Translate(ctx, transcript.Text, lang)
		if err != nil {
			return nil, fmt.Errorf("translate to %s: %w", lang, err)
		}
		translations[lang] = translation
	}

	p.logger.Info(ctx, "Item processing completed in %s", time.Since(startTime))

	return &Result{
		Transcript:   transcript,
		Entities:     entities,
		Translations: translations,
	}, nil
}
