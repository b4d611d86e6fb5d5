package planner

import "math"

// overlapTrigger is the fraction of the safe duration above which chunk
// boundaries get an overlap. Comfortably short chunks cut between words
// rarely enough that the duplicated audio is not worth it.
const overlapTrigger = 0.9

// safeOvershoot lets chunks exceed the safe duration by a small fraction
// when that saves a whole chunk. The safe limit sits far below the hard
// API ceiling, so a 2% overshoot is still nowhere near it, while an input
// a hair past an even division would otherwise cost an extra call.
const safeOvershoot = 1.02

// PlanAudio divides a total duration into the minimum number of chunks that
// each fit under lim.SafeChunkDuration. The total is divided evenly across
// ceil(total/safe) chunks rather than cut into fixed-size blocks, so no
// chunk is unnecessarily small and no call is wasted on a tiny remainder.
//
// An input at or under the safe limit yields a single chunk covering it
// whole. When chunks run close to the safe limit, each boundary is widened
// backwards by lim.ChunkOverlap to reduce the chance of splitting a word.
func PlanAudio(total float64, lim Limits) []AudioChunk {
	if total <= 0 {
		return nil
	}

	safe := lim.SafeChunkDuration
	if safe <= 0 || total <= safe {
		return []AudioChunk{{Index: 0, Start: 0, Duration: total}}
	}

	n := int(math.Ceil(total / safe))
	if n > 1 {
		// 33.5 minutes at a 16.7 minute safe limit divides into two
		// chunks of 16.75 minutes, not three; round n down when the
		// slightly longer chunks stay within the overshoot and under
		// the hard ceiling.
		per := total / float64(n-1)
		if per <= safe*safeOvershoot && (lim.MaxChunkDuration <= 0 || per <= lim.MaxChunkDuration) {
			n--
		}
	}
	per := total / float64(n)

	overlap := 0.0
	if lim.ChunkOverlap > 0 && per > overlapTrigger*safe {
		overlap = lim.ChunkOverlap
	}

	chunks := make([]AudioChunk, n)
	for i := range chunks {
		start := float64(i) * per
		duration := per
		if i > 0 && overlap > 0 {
			start -= overlap
			duration += overlap
		}
		if i == n-1 {
			// Absorb float drift so the last chunk ends exactly at total.
			duration = total - start
		}
		chunks[i] = AudioChunk{Index: i, Start: start, Duration: duration}
	}

	return chunks
}
