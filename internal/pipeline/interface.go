package pipeline

import "context"

// Pipeline carries one work item through its stages. Each stage is exposed
// separately so a resumable runner can skip the ones already completed.
type Pipeline interface {
	Transcribe(ctx context.Context, audioPath string, language string) (*Transcript, error)
	DetectEntities(ctx context.Context, text string) ([]Entity, error)
	Translate(ctx context.Context, text string, targetLanguage string) (*Translation, error)
	Run(ctx context.Context, audioPath string, languages []string) (*Result, error)
}

// Result bundles the artifacts of a full single-item run.
type Result struct {
	Transcript   *Transcript
	Entities     []Entity
	Translations map[string]*Translation
}
