package downloader

import (
	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
	"github.com/nguyentantai21042004/transcript-flow/pkg/executor"
)

type implDownloader struct {
	executor  executor.Executor
	logger    logger.Logger
	outputDir string
}

// New creates a Downloader backed by yt-dlp, writing audio into outputDir.
func New(exec executor.Executor, log logger.Logger, outputDir string) Downloader {
	return &implDownloader{
		executor:  exec,
		logger:    log,
		outputDir: outputDir,
	}
}
