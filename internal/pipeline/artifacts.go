package pipeline

import "fmt"

// TranscriptSegment is one timed span of the assembled transcript, with
// times relative to the source media.
type TranscriptSegment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Gap records a time range whose transcription permanently failed. Gaps are
// part of the artifact itself: a reader must be able to see "unknown content
// between t1 and t2" without consulting logs.
type Gap struct {
	Start  float64 `json:"start"`
	End    float64 `json:"end"`
	Reason string  `json:"reason"`
}

// Transcript is the assembled transcription artifact for one item.
type Transcript struct {
	Text         string              `json:"text"`
	Segments     []TranscriptSegment `json:"segments"`
	Gaps         []Gap               `json:"gaps,omitempty"`
	Language     string              `json:"language,omitempty"`
	TotalChunks  int                 `json:"total_chunks"`
	FailedChunks int                 `json:"failed_chunks"`
}

// Complete reports whether every chunk transcribed successfully.
func (t *Transcript) Complete() bool {
	return t.FailedChunks == 0
}

// GapSummary renders the gaps for headers and logs, e.g. "120.0s-125.0s".
func (t *Transcript) GapSummary() []string {
	out := make([]string, len(t.Gaps))
	for i, g := range t.Gaps {
		out[i] = fmt.Sprintf("%.1fs-%.1fs: %s", g.Start, g.End, g.Reason)
	}
	return out
}

// Entity is one deduplicated name found in a transcript.
type Entity struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Translation is the assembled translation artifact for one language.
// Fallbacks lists span indexes whose translation permanently failed and
// whose original text was substituted instead.
type Translation struct {
	Language   string `json:"language"`
	Text       string `json:"text"`
	TotalSpans int    `json:"total_spans"`
	Fallbacks  []int  `json:"fallbacks,omitempty"`
}

// Complete reports whether every span translated successfully.
func (t *Translation) Complete() bool {
	return len(t.Fallbacks) == 0
}
