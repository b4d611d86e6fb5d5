package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"

	"github.com/nguyentantai21042004/transcript-flow/internal/channel"
	"github.com/nguyentantai21042004/transcript-flow/internal/config"
	"github.com/nguyentantai21042004/transcript-flow/internal/downloader"
	"github.com/nguyentantai21042004/transcript-flow/internal/export"
	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
	"github.com/nguyentantai21042004/transcript-flow/internal/pipeline"
	"github.com/nguyentantai21042004/transcript-flow/internal/probe"
	"github.com/nguyentantai21042004/transcript-flow/internal/provider"
	"github.com/nguyentantai21042004/transcript-flow/internal/segmenter"
	"github.com/nguyentantai21042004/transcript-flow/internal/watcher"
	"github.com/nguyentantai21042004/transcript-flow/pkg/executor"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Logging.Level)
	log.Info(ctx, "========================================")
	log.Info(ctx, "Transcript Pipeline")
	log.Info(ctx, "========================================")
	log.Info(ctx, "System: %s/%s", runtime.GOOS, runtime.GOARCH)
	log.Info(ctx, "CPU Cores: %d", runtime.NumCPU())
	log.Info(ctx, "Languages: %s", strings.Join(cfg.Languages, ", "))
	log.Info(ctx, "Configuration loaded successfully")

	if err := ensureDirectories(cfg); err != nil {
		log.Error(ctx, "Failed to create directories: %v", err)
		os.Exit(1)
	}

	// Initialize dependencies
	exec := executor.New()
	prober := probe.New(exec)
	prov := provider.NewGemini(cfg.Provider, log)
	segf := func() segmenter.Segmenter {
		return segmenter.New(exec, log, cfg.Paths.Temp)
	}
	pipe := pipeline.New(cfg, prober, segf, prov, log)
	dl := downloader.New(exec, log, cfg.Paths.Downloads)
	writer := export.NewWriter(log)
	store := channel.NewStore(cfg.Paths.Channels, log)
	runner := channel.New(cfg, store, dl, pipe, writer, log)

	// Create context with cancellation and graceful shutdown
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info(ctx, "Shutdown signal received")
		cancel()
	}()

	if len(os.Args) > 1 {
		if err := runTarget(ctx, os.Args[1], cfg, runner, dl, pipe, writer, log); err != nil && err != context.Canceled {
			log.Error(ctx, "Processing failed: %v", err)
			os.Exit(1)
		}
		return
	}

	runWatch(ctx, cfg, pipe, writer, log)
}

// runTarget processes one command line target: a channel URL, a single
// video URL, or a local media file.
func runTarget(ctx context.Context, target string, cfg *config.Config, runner channel.Runner, dl downloader.Downloader, pipe pipeline.Pipeline, writer *export.Writer, log logger.Logger) error {
	if downloader.IsChannelURL(target) {
		log.Info(ctx, "Target is a channel, processing with resume support")
		return runner.Process(ctx, target)
	}

	if _, err := os.Stat(target); err == nil {
		log.Info(ctx, "Target is a local file")
		return runOne(ctx, target, itemID(target), "", cfg, pipe, writer)
	}

	log.Info(ctx, "Target is a single video")
	audio, err := dl.Download(ctx, target)
	if err != nil {
		return fmt.Errorf("download: %w", err)
	}
	return runOne(ctx, audio.Path, audio.ID, audio.Title, cfg, pipe, writer)
}

// runOne runs the full pipeline on one audio file and writes artifacts to
// the output directory.
func runOne(ctx context.Context, audioPath, id, title string, cfg *config.Config, pipe pipeline.Pipeline, writer *export.Writer) error {
	result, err := pipe.Run(ctx, audioPath, cfg.Languages)
	if err != nil {
		return err
	}

	if _, err := writer.WriteTranscript(ctx, cfg.Paths.Output, id, title, result.Transcript, result.Entities); err != nil {
		return err
	}
	for _, tr := range result.Translations {
		if _, err := writer.WriteTranslation(ctx, cfg.Paths.Output, id, title, tr); err != nil {
			return err
		}
	}
	return nil
}

// runWatch monitors the inbox directory and pipes every dropped media
// file through the full pipeline.
func runWatch(ctx context.Context, cfg *config.Config, pipe pipeline.Pipeline, writer *export.Writer, log logger.Logger) {
	handler := func(ctx context.Context, filePath string) error {
		return runOne(ctx, filePath, itemID(filePath), filepath.Base(filePath), cfg, pipe, writer)
	}

	w, err := watcher.New(cfg.Paths.Inbox, handler, log, cfg.Performance.MaxConcurrentItems)
	if err != nil {
		log.Error(ctx, "Failed to create watcher: %v", err)
		os.Exit(1)
	}
	defer w.Stop()

	log.Info(ctx, "========================================")
	log.Info(ctx, "Pipeline is ready!")
	log.Info(ctx, "Monitoring: %s", cfg.Paths.Inbox)
	log.Info(ctx, "Output: %s", cfg.Paths.Output)
	log.Info(ctx, "Press Ctrl+C to stop")
	log.Info(ctx, "========================================")

	if err := w.Start(ctx); err != nil && err != context.Canceled {
		log.Error(ctx, "Watcher error: %v", err)
		os.Exit(1)
	}
	log.Info(ctx, "Pipeline stopped")
}

func itemID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Downloads,
		cfg.Paths.Channels,
		cfg.Paths.Inbox,
		cfg.Paths.Output,
		cfg.Paths.Temp,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
