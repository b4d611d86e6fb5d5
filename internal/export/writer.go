package export

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
	"github.com/nguyentantai21042004/transcript-flow/internal/pipeline"
)

// Writer persists assembled artifacts. The transcript's canonical form is
// JSON, which keeps segment timing and gap metadata machine-readable for
// resumed runs; .txt and .docx renditions are for humans.
type Writer struct {
	logger logger.Logger
}

// NewWriter creates a Writer instance
func NewWriter(log logger.Logger) *Writer {
	return &Writer{logger: log}
}

// WriteTranscript writes the canonical JSON artifact plus readable .txt and
// .docx renditions. Returns the JSON path, which state records reference.
func (w *Writer) WriteTranscript(ctx context.Context, dir, itemID, title string, t *pipeline.Transcript, entities []pipeline.Entity) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	jsonPath := filepath.Join(dir, itemID+"_transcript.json")
	if err := writeJSON(jsonPath, t); err != nil {
		return "", err
	}

	txtPath := filepath.Join(dir, itemID+"_transcript.txt")
	if err := os.WriteFile(txtPath, []byte(renderTranscriptText(title, t)), 0644); err != nil {
		return "", fmt.Errorf("write transcript txt: %w", err)
	}

	docxPath := filepath.Join(dir, itemID+"_transcript.docx")
	if err := transcriptToDocx(title, t, docxPath); err != nil {
		// The docx rendition is a convenience; its failure must not fail
		// the stage.
		w.logger.Warn(ctx, "Failed to write transcript docx: %v", err)
	}

	if len(entities) > 0 {
		if _, err := w.WriteEntities(ctx, dir, itemID, entities); err != nil {
			return "", err
		}
	}

	w.logger.Info(ctx, "Transcript saved: %s", jsonPath)
	return jsonPath, nil
}

// WriteEntities writes the deduplicated entity list for one item.
func (w *Writer) WriteEntities(ctx context.Context, dir, itemID string, entities []pipeline.Entity) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(dir, itemID+"_entities.json")
	if err := writeJSON(path, entities); err != nil {
		return "", err
	}
	w.logger.Info(ctx, "Entities saved: %s", path)
	return path, nil
}

// ReadTranscript loads a previously written canonical transcript, used when
// a resumed run needs the text of an already-completed transcription stage.
func (w *Writer) ReadTranscript(path string) (*pipeline.Transcript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}
	var t pipeline.Transcript
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse transcript %s: %w", path, err)
	}
	return &t, nil
}

// WriteTranslation writes one language's translation as .txt plus a .docx
// rendition. Returns the .txt path.
func (w *Writer) WriteTranslation(ctx context.Context, dir, itemID, title string, t *pipeline.Translation) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	txtPath := filepath.Join(dir, fmt.Sprintf("%s_translated_%s.txt", itemID, t.Language))
	if err := os.WriteFile(txtPath, []byte(renderTranslationText(title, t)), 0644); err != nil {
		return "", fmt.Errorf("write translation: %w", err)
	}

	docxPath := filepath.Join(dir, fmt.Sprintf("%s_translated_%s.docx", itemID, t.Language))
	if err := translationToDocx(title, t, docxPath); err != nil {
		w.logger.Warn(ctx, "Failed to write translation docx: %v", err)
	}

	w.logger.Info(ctx, "Translation (%s) saved: %s", t.Language, txtPath)
	return txtPath, nil
}

func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func renderTranscriptText(title string, t *pipeline.Transcript) string {
	var sb strings.Builder

	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString("TRANSCRIPT\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n\n")
	if title != "" {
		sb.WriteString("Title: " + title + "\n")
	}
	sb.WriteString(fmt.Sprintf("Generated: %s\n", time.Now().Format("2006-01-02 15:04:05")))
	sb.WriteString(fmt.Sprintf("Chunks: %d", t.TotalChunks))
	if t.FailedChunks > 0 {
		sb.WriteString(fmt.Sprintf(" (%d failed)", t.FailedChunks))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Words: %d\n", len(strings.Fields(t.Text))))

	if len(t.Gaps) > 0 {
		sb.WriteString("\nMISSING RANGES (transcription failed):\n")
		for _, g := range t.GapSummary() {
			sb.WriteString("  - " + g + "\n")
		}
	}

	sb.WriteString("\n" + strings.Repeat("=", 80) + "\n\n")
	sb.WriteString(t.Text)
	sb.WriteString("\n")

	return sb.String()
}

func renderTranslationText(title string, t *pipeline.Translation) string {
	var sb strings.Builder

	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("TRANSLATION (%s)\n", t.Language))
	sb.WriteString(strings.Repeat("=", 80) + "\n\n")
	if title != "" {
		sb.WriteString("Title: " + title + "\n")
	}
	if !t.Complete() {
		sb.WriteString(fmt.Sprintf("Note: %d of %d spans kept their original language after translation failures.\n",
			len(t.Fallbacks), t.TotalSpans))
	}

	sb.WriteString("\n" + strings.Repeat("=", 80) + "\n\n")
	sb.WriteString(t.Text)
	sb.WriteString("\n")

	return sb.String()
}
