package planner

import (
	"strings"
	"testing"
)

func TestPlanTextRoundTrip(t *testing.T) {
	texts := []string{
		"One sentence only.",
		"First sentence. Second sentence! Third sentence? Fourth.",
		"No terminators at all just a stream of words going on and on",
		"Trailing spaces. After the period.   Then more text.",
		"Unicode: ação é ótima. Mais uma frase aqui. E outra ainda.",
		strings.Repeat("A fairly normal sentence about nothing much. ", 200),
	}

	for _, text := range texts {
		for _, budget := range []int{10, 50, 100, 1000} {
			spans := PlanText(text, budget)
			var sb strings.Builder
			for i, s := range spans {
				if s.Index != i {
					t.Errorf("span index %d out of order", s.Index)
				}
				if s.Text != text[s.Start:s.End] {
					t.Errorf("span %d text does not match its offsets", i)
				}
				sb.WriteString(s.Text)
			}
			if sb.String() != text {
				t.Errorf("budget %d: concatenated spans do not reproduce input", budget)
			}
		}
	}
}

func TestPlanTextRespectsSentences(t *testing.T) {
	text := "Alpha is here. Bravo follows on. Charlie closes it."
	spans := PlanText(text, 35)

	if len(spans) < 2 {
		t.Fatalf("expected multiple spans, got %d", len(spans))
	}
	// Every span except the last must end right after a sentence
	// terminator and its whitespace.
	for _, s := range spans[:len(spans)-1] {
		trimmed := strings.TrimRight(s.Text, " \t\n")
		if !strings.HasSuffix(trimmed, ".") && !strings.HasSuffix(trimmed, "!") && !strings.HasSuffix(trimmed, "?") {
			t.Errorf("span %d %q does not end at a sentence boundary", s.Index, s.Text)
		}
	}
}

func TestPlanTextBudget(t *testing.T) {
	text := strings.Repeat("Short sentence here. ", 100)
	spans := PlanText(text, 100)

	for _, s := range spans {
		if len(s.Text) > 100 {
			t.Errorf("span %d length %d exceeds budget", s.Index, len(s.Text))
		}
	}
}

func TestPlanTextOversizedSentence(t *testing.T) {
	// A single sentence longer than the budget must be hard-split at the
	// budget boundary rather than rejected.
	text := strings.Repeat("word ", 100) + "end."
	spans := PlanText(text, 50)

	if len(spans) < 2 {
		t.Fatalf("expected hard-split spans, got %d", len(spans))
	}
	if len(spans[0].Text) != 50 {
		t.Errorf("first hard-split span length = %d, want 50", len(spans[0].Text))
	}

	var sb strings.Builder
	for _, s := range spans {
		sb.WriteString(s.Text)
	}
	if sb.String() != text {
		t.Error("hard-split spans do not reproduce input")
	}
}

func TestPlanTextHardSplitRuneSafe(t *testing.T) {
	text := strings.Repeat("é", 100) // 2 bytes per rune, no sentence breaks
	spans := PlanText(text, 25)

	var sb strings.Builder
	for _, s := range spans {
		if len(s.Text) > 25 {
			t.Errorf("span %d exceeds budget", s.Index)
		}
		if !strings.HasPrefix(s.Text, "é") {
			t.Errorf("span %d starts mid-rune", s.Index)
		}
		sb.WriteString(s.Text)
	}
	if sb.String() != text {
		t.Error("rune-safe split does not reproduce input")
	}
}

func TestPlanTextSubRuneBudget(t *testing.T) {
	// A budget below one rune's byte width must still make progress,
	// emitting whole runes rather than looping forever.
	text := strings.Repeat("é", 10) // 2 bytes per rune
	spans := PlanText(text, 1)

	if len(spans) != 10 {
		t.Fatalf("expected 10 single-rune spans, got %d", len(spans))
	}
	var sb strings.Builder
	for _, s := range spans {
		if s.Text != "é" {
			t.Errorf("span %d = %q, want single rune", s.Index, s.Text)
		}
		sb.WriteString(s.Text)
	}
	if sb.String() != text {
		t.Error("sub-rune budget spans do not reproduce input")
	}
}

func TestPlanTextSmallInputs(t *testing.T) {
	if spans := PlanText("", 100); spans != nil {
		t.Errorf("expected nil for empty text, got %v", spans)
	}

	spans := PlanText("hi", 100)
	if len(spans) != 1 || spans[0].Text != "hi" {
		t.Errorf("expected single span for short text, got %v", spans)
	}
}

func TestSentenceStarts(t *testing.T) {
	text := "One. Two! Three? Done"
	starts := sentenceStarts(text)
	want := []int{5, 10, 17}
	if len(starts) != len(want) {
		t.Fatalf("starts = %v, want %v", starts, want)
	}
	for i := range want {
		if starts[i] != want[i] {
			t.Errorf("starts[%d] = %d, want %d", i, starts[i], want[i])
		}
	}
}
