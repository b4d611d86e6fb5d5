package provider

import (
	"sync"

	"github.com/nguyentantai21042004/transcript-flow/internal/config"
	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
)

type implGemini struct {
	apiKeys         []string
	transcribeModel string
	textModel       string
	logger          logger.Logger

	// currentKey is shared by concurrent chunk calls.
	mu         sync.Mutex
	currentKey int
}

// NewGemini creates a Provider backed by the Gemini API, rotating through
// the supplied API keys on rate limits.
func NewGemini(cfg config.ProviderConfig, log logger.Logger) Provider {
	return &implGemini{
		apiKeys:         cfg.APIKeys,
		transcribeModel: cfg.TranscribeModel,
		textModel:       cfg.TextModel,
		logger:          log,
	}
}
