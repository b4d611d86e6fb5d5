package planner

// Limits are the provider constraints audio planning works against. All
// durations are in seconds.
type Limits struct {
	// MaxChunkDuration is the provider's hard per-call ceiling.
	MaxChunkDuration float64
	// SafeChunkDuration is the conservative target, kept well under the
	// hard ceiling: the ceiling bounds input size, not how much text the
	// model emits in response.
	SafeChunkDuration float64
	// ChunkOverlap is added at chunk boundaries to avoid mid-word cuts,
	// but only when chunks run close to the safe limit.
	ChunkOverlap float64
}

// AudioChunk is one planned slice of the source audio.
type AudioChunk struct {
	Index    int
	Start    float64
	Duration float64
}

// End returns the chunk's end offset in the source.
func (c AudioChunk) End() float64 {
	return c.Start + c.Duration
}

// TextSpan is one planned slice of a text input. Start and End are byte
// offsets into the original string; spans partition it exactly.
type TextSpan struct {
	Index int
	Start int
	End   int
	Text  string
}
