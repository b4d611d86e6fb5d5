package pipeline

import (
	"github.com/nguyentantai21042004/transcript-flow/internal/config"
	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
	"github.com/nguyentantai21042004/transcript-flow/internal/planner"
	"github.com/nguyentantai21042004/transcript-flow/internal/probe"
	"github.com/nguyentantai21042004/transcript-flow/internal/provider"
	"github.com/nguyentantai21042004/transcript-flow/internal/segmenter"
	"github.com/nguyentantai21042004/transcript-flow/pkg/retry"
)

// SegmenterFactory builds a fresh Segmenter per item, each with its own
// scratch directory.
type SegmenterFactory func() segmenter.Segmenter

type implPipeline struct {
	cfg          *config.Config
	prober       probe.Prober
	newSegmenter SegmenterFactory
	provider     provider.Provider
	retryCfg     retry.Config
	logger       logger.Logger
}

// New creates a Pipeline instance
func New(cfg *config.Config, prober probe.Prober, segf SegmenterFactory, prov provider.Provider, log logger.Logger) Pipeline {
	return &implPipeline{
		cfg:          cfg,
		prober:       prober,
		newSegmenter: segf,
		provider:     prov,
		retryCfg:     retry.DefaultConfig(provider.Recoverable),
		logger:       log,
	}
}

func (p *implPipeline) limits() planner.Limits {
	return planner.Limits{
		MaxChunkDuration:  p.cfg.Limits.MaxChunkDuration,
		SafeChunkDuration: p.cfg.Limits.SafeChunkDuration,
		ChunkOverlap:      p.cfg.Limits.ChunkOverlap,
	}
}
