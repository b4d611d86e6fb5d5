package pipeline

import (
	"sort"
	"strings"

	"github.com/nguyentantai21042004/transcript-flow/internal/planner"
	"github.com/nguyentantai21042004/transcript-flow/internal/segmenter"
)

// assembleTranscript merges per-chunk outcomes into one ordered transcript.
// Successful chunks become timed segments, positioned by their chunk's
// offset in the source; failed chunks become gaps covering their time
// range. A failed span is never dropped silently.
func assembleTranscript(fragments []segmenter.Fragment, outcomes []chunkOutcome) *Transcript {
	t := &Transcript{TotalChunks: len(fragments)}

	for i, frag := range fragments {
		chunk := frag.Chunk
		out := outcomes[i]

		if out.err != nil {
			t.FailedChunks++
			t.Gaps = append(t.Gaps, Gap{
				Start:  chunk.Start,
				End:    chunk.End(),
				Reason: out.err.Error(),
			})
			continue
		}

		for _, ps := range out.payload.Segments {
			seg := TranscriptSegment{
				Start: chunk.Start + ps.Start,
				End:   chunk.Start + ps.End,
				Text:  strings.TrimSpace(ps.Text),
			}
			// A provider without per-segment timing reports zeros; the
			// chunk's own bounds are the best available timing then.
			if ps.End == 0 {
				seg.Start = chunk.Start
				seg.End = chunk.End()
			}
			if seg.Text == "" {
				continue
			}
			t.Segments = append(t.Segments, seg)
		}
	}

	sort.SliceStable(t.Segments, func(i, j int) bool {
		return t.Segments[i].Start < t.Segments[j].Start
	})
	sort.SliceStable(t.Gaps, func(i, j int) bool {
		return t.Gaps[i].Start < t.Gaps[j].Start
	})

	parts := make([]string, 0, len(t.Segments))
	for _, seg := range t.Segments {
		parts = append(parts, seg.Text)
	}
	t.Text = strings.Join(parts, " ")

	return t
}

// assembleEntities unions per-span extraction results, deduplicating on
// (lowercased trimmed name, type) and sorting by name for stable output.
func assembleEntities(results []map[string][]string) []Entity {
	type key struct {
		name string
		typ  string
	}
	seen := make(map[key]Entity)

	for _, found := range results {
		for typ, names := range found {
			for _, name := range names {
				name = strings.TrimSpace(name)
				if name == "" {
					continue
				}
				k := key{name: strings.ToLower(name), typ: typ}
				if _, ok := seen[k]; !ok {
					seen[k] = Entity{Name: name, Type: typ}
				}
			}
		}
	}

	entities := make([]Entity, 0, len(seen))
	for _, e := range seen {
		entities = append(entities, e)
	}
	sort.Slice(entities, func(i, j int) bool {
		if entities[i].Name != entities[j].Name {
			return entities[i].Name < entities[j].Name
		}
		return entities[i].Type < entities[j].Type
	})

	return entities
}

// assembleTranslation concatenates translated spans in original order,
// substituting the untranslated source text for spans that failed.
func assembleTranslation(spans []planner.TextSpan, outcomes []spanOutcome, language string) *Translation {
	t := &Translation{Language: language, TotalSpans: len(spans)}

	parts := make([]string, 0, len(spans))
	for i, span := range spans {
		if outcomes[i].err != nil {
			t.Fallbacks = append(t.Fallbacks, span.Index)
			parts = append(parts, strings.TrimSpace(span.Text))
			continue
		}
		parts = append(parts, strings.TrimSpace(outcomes[i].text))
	}

	t.Text = strings.Join(parts, " ")
	return t
}
