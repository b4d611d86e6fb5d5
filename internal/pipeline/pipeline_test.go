package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/nguyentantai21042004/transcript-flow/internal/config"
	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
	"github.com/nguyentantai21042004/transcript-flow/internal/planner"
	"github.com/nguyentantai21042004/transcript-flow/internal/probe"
	"github.com/nguyentantai21042004/transcript-flow/internal/provider"
	"github.com/nguyentantai21042004/transcript-flow/internal/segmenter"
	"github.com/nguyentantai21042004/transcript-flow/pkg/retry"
)

type fakeProber struct {
	duration float64
}

func (f *fakeProber) Probe(ctx context.Context, path string) (*probe.MediaInfo, error) {
	return &probe.MediaInfo{Path: path, Duration: f.duration, Size: 1 << 20}, nil
}

// fakeSegmenter hands back one pseudo-fragment per chunk without ffmpeg.
type fakeSegmenter struct {
	cleaned bool
}

func (f *fakeSegmenter) Cut(ctx context.Context, media *probe.MediaInfo, chunks []planner.AudioChunk) ([]segmenter.Fragment, error) {
	frags := make([]segmenter.Fragment, len(chunks))
	for i, c := range chunks {
		frags[i] = segmenter.Fragment{Index: c.Index, Path: fmt.Sprintf("frag_%03d.mp3", c.Index), Chunk: c}
	}
	return frags, nil
}

func (f *fakeSegmenter) Cleanup(ctx context.Context) {
	f.cleaned = true
}

// fakeProvider scripts per-fragment transcription results and counts calls.
type fakeProvider struct {
	mu              sync.Mutex
	transcribeCalls int
	failFragments   map[string]error

	entities     map[string][]string
	entityErr    error
	translateErr error
}

func (f *fakeProvider) Transcribe(ctx context.Context, fragmentPath string, language string) (*provider.TranscriptPayload, error) {
	f.mu.Lock()
	f.transcribeCalls++
	f.mu.Unlock()

	if err, ok := f.failFragments[fragmentPath]; ok {
		return nil, err
	}
	return &provider.TranscriptPayload{
		Segments: []provider.Segment{{Text: "text of " + fragmentPath}},
	}, nil
}

func (f *fakeProvider) ExtractEntities(ctx context.Context, span string) (map[string][]string, error) {
	if f.entityErr != nil {
		return nil, f.entityErr
	}
	return f.entities, nil
}

func (f *fakeProvider) Translate(ctx context.Context, span string, targetLanguage string) (string, error) {
	if f.translateErr != nil {
		return "", f.translateErr
	}
	return "[" + targetLanguage + "] " + span, nil
}

func permanentErr() error {
	return &provider.Error{Kind: provider.KindInvalidInput, Err: errors.New("rejected")}
}

func testPipeline(t *testing.T, prober probe.Prober, seg segmenter.Segmenter, prov provider.Provider) *implPipeline {
	t.Helper()
	cfg := &config.Config{
		Provider: config.ProviderConfig{APIKeys: []string{"k"}},
		Paths:    config.PathsConfig{Channels: "c", Output: "o"},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}

	p := New(cfg, prober, func() segmenter.Segmenter { return seg }, prov, logger.New("error")).(*implPipeline)
	p.retryCfg = retry.Config{
		MaxAttempts: 3,
		BaseDelay:   time.Millisecond,
		Retryable:   provider.Recoverable,
	}
	return p
}

func TestTranscribePartialFailure(t *testing.T) {
	// 2880s at a 720s safe limit plans 4 chunks; chunk 1 (the second)
	// permanently fails. Assembly must keep ordered text for the other
	// three and record the failed chunk's time range as a gap.
	seg := &fakeSegmenter{}
	prov := &fakeProvider{
		failFragments: map[string]error{"frag_001.mp3": permanentErr()},
	}
	p := testPipeline(t, &fakeProber{duration: 2880}, seg, prov)

	transcript, err := p.Transcribe(context.Background(), "audio.mp3", "en")
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}

	if transcript.TotalChunks != 4 {
		t.Errorf("TotalChunks = %d, want 4", transcript.TotalChunks)
	}
	if transcript.FailedChunks != 1 {
		t.Errorf("FailedChunks = %d, want 1", transcript.FailedChunks)
	}
	if len(transcript.Segments) != 3 {
		t.Fatalf("Segments = %d, want 3", len(transcript.Segments))
	}
	if len(transcript.Gaps) != 1 {
		t.Fatalf("Gaps = %d, want 1", len(transcript.Gaps))
	}

	gap := transcript.Gaps[0]
	if gap.Start > 720.5 || gap.End < 1439 {
		t.Errorf("gap %v does not cover the second chunk's range", gap)
	}

	// Segments stay in source order regardless of completion order.
	wantOrder := []string{"frag_000", "frag_002", "frag_003"}
	for i, seg := range transcript.Segments {
		if !strings.Contains(seg.Text, wantOrder[i]) {
			t.Errorf("segment %d = %q, want fragment %s", i, seg.Text, wantOrder[i])
		}
	}

	if !seg.cleaned {
		t.Error("segmenter scratch area was not cleaned up")
	}
}

func TestTranscribeSingleChunk(t *testing.T) {
	prov := &fakeProvider{}
	p := testPipeline(t, &fakeProber{duration: 300}, &fakeSegmenter{}, prov)

	transcript, err := p.Transcribe(context.Background(), "short.mp3", "")
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if transcript.TotalChunks != 1 {
		t.Errorf("TotalChunks = %d, want 1 for short audio", transcript.TotalChunks)
	}
	if prov.transcribeCalls != 1 {
		t.Errorf("transcribe calls = %d, want 1", prov.transcribeCalls)
	}
	if !transcript.Complete() {
		t.Error("expected complete transcript")
	}
}

func TestTranscribeRetriesRecoverable(t *testing.T) {
	// A recoverable failure is retried up to 3 attempts before the chunk
	// is declared failed; the pipeline still returns a transcript.
	prov := &fakeProvider{
		failFragments: map[string]error{
			"frag_000.mp3": &provider.Error{Kind: provider.KindRateLimited, Err: errors.New("429")},
		},
	}
	p := testPipeline(t, &fakeProber{duration: 1440}, &fakeSegmenter{}, prov)

	transcript, err := p.Transcribe(context.Background(), "audio.mp3", "")
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if transcript.FailedChunks != 1 {
		t.Errorf("FailedChunks = %d, want 1", transcript.FailedChunks)
	}
	// 3 attempts for the failing chunk plus 1 for the healthy one.
	if prov.transcribeCalls != 4 {
		t.Errorf("transcribe calls = %d, want 4", prov.transcribeCalls)
	}
}

func TestDetectEntitiesDedupe(t *testing.T) {
	prov := &fakeProvider{
		entities: map[string][]string{
			"PERSON":   {"John Doe", "john doe", " John Doe "},
			"LOCATION": {"Lisbon"},
		},
	}
	p := testPipeline(t, &fakeProber{duration: 300}, &fakeSegmenter{}, prov)

	entities, err := p.DetectEntities(context.Background(), "Some transcript text.")
	if err != nil {
		t.Fatalf("DetectEntities() error = %v", err)
	}
	if len(entities) != 2 {
		t.Fatalf("entities = %v, want 2 after dedupe", entities)
	}
	if entities[0].Name != "John Doe" || entities[0].Type != "PERSON" {
		t.Errorf("entities[0] = %v, want John Doe/PERSON", entities[0])
	}
	if entities[1].Name != "Lisbon" || entities[1].Type != "LOCATION" {
		t.Errorf("entities[1] = %v, want Lisbon/LOCATION", entities[1])
	}
}

func TestDetectEntitiesBestEffort(t *testing.T) {
	prov := &fakeProvider{entityErr: permanentErr()}
	p := testPipeline(t, &fakeProber{duration: 300}, &fakeSegmenter{}, prov)

	entities, err := p.DetectEntities(context.Background(), "Some transcript text.")
	if err != nil {
		t.Fatalf("DetectEntities() error = %v", err)
	}
	if len(entities) != 0 {
		t.Errorf("entities = %v, want none when all spans fail", entities)
	}
}

func TestTranslateFallback(t *testing.T) {
	prov := &fakeProvider{translateErr: permanentErr()}
	p := testPipeline(t, &fakeProber{duration: 300}, &fakeSegmenter{}, prov)

	original := "This stays untranslated."
	translation, err := p.Translate(context.Background(), original, "pt")
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if translation.Complete() {
		t.Error("expected partial translation")
	}
	if translation.Text != original {
		t.Errorf("fallback text = %q, want original %q", translation.Text, original)
	}
	if len(translation.Fallbacks) != 1 || translation.Fallbacks[0] != 0 {
		t.Errorf("Fallbacks = %v, want [0]", translation.Fallbacks)
	}
}

func TestTranslateSuccess(t *testing.T) {
	prov := &fakeProvider{}
	p := testPipeline(t, &fakeProber{duration: 300}, &fakeSegmenter{}, prov)

	translation, err := p.Translate(context.Background(), "Hello there.", "es")
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if !strings.HasPrefix(translation.Text, "[es]") {
		t.Errorf("Text = %q, want translated content", translation.Text)
	}
	if !translation.Complete() {
		t.Error("expected complete translation")
	}
}

func TestRunProducesAllArtifacts(t *testing.T) {
	prov := &fakeProvider{
		entities: map[string][]string{"PERSON": {"Ada"}},
	}
	p := testPipeline(t, &fakeProber{duration: 1440}, &fakeSegmenter{}, prov)

	result, err := p.Run(context.Background(), "audio.mp3", []string{"pt", "es"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.Transcript == nil || len(result.Transcript.Segments) != 2 {
		t.Errorf("unexpected transcript: %+v", result.Transcript)
	}
	if len(result.Entities) != 1 {
		t.Errorf("entities = %v, want 1", result.Entities)
	}
	if len(result.Translations) != 2 {
		t.Errorf("translations = %v, want pt and es", result.Translations)
	}
}
