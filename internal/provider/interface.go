package provider

import "context"

// Segment is one timed span of transcribed speech. Times are relative to the
// start of the submitted fragment, not the source media.
type Segment struct {
	Start float64
	End   float64
	Text  string
}

// TranscriptPayload is the typed result of transcribing one audio fragment.
type TranscriptPayload struct {
	Segments []Segment
	Language string
}

// Provider is the capability interface all AI backends implement. The
// pipeline depends only on this, never on a concrete backend.
type Provider interface {
	Transcribe(ctx context.Context, fragmentPath string, language string) (*TranscriptPayload, error)
	ExtractEntities(ctx context.Context, span string) (map[string][]string, error)
	Translate(ctx context.Context, span string, targetLanguage string) (string, error)
}
