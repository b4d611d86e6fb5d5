package channel

import (
	"github.com/nguyentantai21042004/transcript-flow/internal/config"
	"github.com/nguyentantai21042004/transcript-flow/internal/downloader"
	"github.com/nguyentantai21042004/transcript-flow/internal/export"
	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
	"github.com/nguyentantai21042004/transcript-flow/internal/pipeline"
)

type implRunner struct {
	cfg    *config.Config
	store  *Store
	dl     downloader.Downloader
	pipe   pipeline.Pipeline
	writer *export.Writer
	logger logger.Logger
}

// New creates a channel Runner instance
func New(cfg *config.Config, store *Store, dl downloader.Downloader, pipe pipeline.Pipeline, writer *export.Writer, log logger.Logger) Runner {
	return &implRunner{
		cfg:    cfg,
		store:  store,
		dl:     dl,
		pipe:   pipe,
		writer: writer,
		logger: log,
	}
}
