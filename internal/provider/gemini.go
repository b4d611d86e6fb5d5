package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"google.golang.org/genai"
)

const transcribePrompt = `Transcribe this audio recording verbatim. Return only the spoken text, without timestamps, speaker labels, commentary or markdown formatting.`

const entityPrompt = `From the transcript chunk below, extract ALL proper names of people and places.

Follow these rules:
- Entity Types: Only 'PERSON' and 'LOCATION'.
- Extraction: Be comprehensive. Extract every proper name, even if mentioned only once.
- Output: Return a JSON object with two keys: "PERSON" (array of person names) and "LOCATION" (array of place names).

TRANSCRIPT CHUNK:
---
%s
---`

const translatePrompt = `Translate the transcript chunk below into %s.

Requirements:
- Preserve the meaning and tone of the original.
- Ensure no sentences are lost or truncated from the original.
- Answer with a continual paragraph, not a list of sentences, and do not use markdown formatting.

TRANSCRIPT CHUNK:
---
%s
---`

// Transcribe sends one audio fragment to Gemini and returns its text as a
// single segment. Timing relative to the source is attached by the caller,
// which knows the fragment's position.
func (g *implGemini) Transcribe(ctx context.Context, fragmentPath string, language string) (*TranscriptPayload, error) {
	data, err := os.ReadFile(fragmentPath)
	if err != nil {
		return nil, &Error{Kind: KindInvalidInput, Err: fmt.Errorf("read fragment: %w", err)}
	}

	prompt := transcribePrompt
	if language != "" {
		prompt += fmt.Sprintf(" The audio is in %q.", language)
	}

	parts := []*genai.Part{
		genai.NewPartFromText(prompt),
		genai.NewPartFromBytes(data, mimeTypeFor(fragmentPath)),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	text, err := g.generate(ctx, g.transcribeModel, contents, nil)
	if err != nil {
		return nil, err
	}

	return &TranscriptPayload{
		Segments: []Segment{{Text: strings.TrimSpace(text)}},
		Language: language,
	}, nil
}

// ExtractEntities asks Gemini for person/place names in a text span,
// constrained to a JSON schema for reliable parsing.
func (g *implGemini) ExtractEntities(ctx context.Context, span string) (map[string][]string, error) {
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"PERSON": {
					Type:  genai.TypeArray,
					Items: &genai.Schema{Type: genai.TypeString},
				},
				"LOCATION": {
					Type:  genai.TypeArray,
					Items: &genai.Schema{Type: genai.TypeString},
				},
			},
			Required: []string{"PERSON", "LOCATION"},
		},
	}

	text, err := g.generate(ctx, g.textModel, genai.Text(fmt.Sprintf(entityPrompt, span)), cfg)
	if err != nil {
		return nil, err
	}

	var parsed map[string][]string
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return nil, &Error{Kind: KindServerFault, Err: fmt.Errorf("parse entity response: %w", err)}
	}

	return parsed, nil
}

// Translate renders a text span into the target language.
func (g *implGemini) Translate(ctx context.Context, span string, targetLanguage string) (string, error) {
	text, err := g.generate(ctx, g.textModel, genai.Text(fmt.Sprintf(translatePrompt, targetLanguage, span)), nil)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// generate performs one Gemini call, rotating API keys on rate limits so a
// quota-exhausted key does not stall the whole run.
func (g *implGemini) generate(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (string, error) {
	attempts := len(g.apiKeys)
	var lastErr error

	for range attempts {
		keyIdx, key := g.activeKey()

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = classify(fmt.Errorf("create client: %w", err))
			g.rotateKey()
			continue
		}

		result, err := client.Models.GenerateContent(ctx, model, contents, cfg)
		if err != nil {
			perr := classify(err)
			if perr.Kind == KindRateLimited && attempts > 1 {
				g.logger.Warn(ctx, "Key %d rate limited, rotating...", keyIdx+1)
				g.rotateKey()
				lastErr = perr
				continue
			}
			return "", perr
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var text string
			for _, part := range result.Candidates[0].Content.Parts {
				if part.Text != "" {
					text += part.Text
				}
			}
			return text, nil
		}

		return "", &Error{Kind: KindServerFault, Err: fmt.Errorf("empty response from Gemini")}
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (g *implGemini) activeKey() (int, string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.currentKey, g.apiKeys[g.currentKey]
}

func (g *implGemini) rotateKey() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.currentKey = (g.currentKey + 1) % len(g.apiKeys)
}

func mimeTypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return "audio/wav"
	case ".m4a", ".aac":
		return "audio/aac"
	case ".ogg":
		return "audio/ogg"
	case ".flac":
		return "audio/flac"
	default:
		return "audio/mpeg"
	}
}
