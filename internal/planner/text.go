package planner

import "unicode/utf8"

// PlanText splits text into spans of at most maxChars bytes, cutting at the
// sentence boundary nearest to and not exceeding the budget. A single
// sentence longer than the budget is hard-split at the budget instead,
// never below one whole rune so planning always advances.
// Spans are contiguous, non-overlapping and cover the text exactly, so
// concatenating them in order reproduces the input byte for byte.
func PlanText(text string, maxChars int) []TextSpan {
	if len(text) == 0 {
		return nil
	}
	if maxChars <= 0 || len(text) <= maxChars {
		return []TextSpan{{Index: 0, Start: 0, End: len(text), Text: text}}
	}

	boundaries := sentenceStarts(text)

	var spans []TextSpan
	start := 0
	bi := 0
	for start < len(text) {
		if len(text)-start <= maxChars {
			spans = append(spans, TextSpan{
				Index: len(spans),
				Start: start,
				End:   len(text),
				Text:  text[start:],
			})
			break
		}

		// Largest sentence start within budget becomes the cut point.
		end := -1
		for bi < len(boundaries) && boundaries[bi]-start <= maxChars {
			if boundaries[bi] > start {
				end = boundaries[bi]
			}
			bi++
		}

		if end <= start {
			// One sentence alone exceeds the budget: hard-split at the
			// budget, backed off to a rune boundary.
			end = start + maxChars
			for end > start && !utf8.RuneStart(text[end]) {
				end--
			}
			if end == start {
				// Budget smaller than the next rune: a span must still
				// advance, so take the whole rune over the budget.
				_, size := utf8.DecodeRuneInString(text[start:])
				end = start + size
			}
		}

		spans = append(spans, TextSpan{
			Index: len(spans),
			Start: start,
			End:   end,
			Text:  text[start:end],
		})
		start = end
	}

	return spans
}

// sentenceStarts returns the byte offsets at which sentences begin:
// positions just past a terminator (./!/?) and its trailing whitespace.
// The whitespace stays with the preceding span so spans reassemble exactly.
func sentenceStarts(text string) []int {
	var starts []int
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c != '.' && c != '!' && c != '?' {
			continue
		}
		j := i + 1
		for j < len(text) && (text[j] == '.' || text[j] == '!' || text[j] == '?') {
			j++
		}
		if j >= len(text) || !isSpace(text[j]) {
			i = j - 1
			continue
		}
		for j < len(text) && isSpace(text[j]) {
			j++
		}
		starts = append(starts, j)
		i = j - 1
	}
	return starts
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
