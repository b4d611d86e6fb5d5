package segmenter

import (
	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
	"github.com/nguyentantai21042004/transcript-flow/pkg/executor"
)

type implSegmenter struct {
	executor executor.Executor
	logger   logger.Logger
	tempRoot string
	scratch  string
}

// New creates a Segmenter writing fragments under tempRoot.
func New(exec executor.Executor, log logger.Logger, tempRoot string) Segmenter {
	return &implSegmenter{
		executor: exec,
		logger:   log,
		tempRoot: tempRoot,
	}
}
