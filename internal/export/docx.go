package export

import (
	"fmt"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"github.com/nguyentantai21042004/transcript-flow/internal/pipeline"
)

const (
	fontName = "Times New Roman"
	fontSize = 13
)

// transcriptToDocx renders an assembled transcript as a styled docx.
// Gap ranges are listed under the title so missing audio is visible
// without opening the JSON artifact.
func transcriptToDocx(title string, t *pipeline.Transcript, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	addStyledRun(doc.AddParagraph(""), title, true, 16)
	doc.AddParagraph("")

	if len(t.Gaps) > 0 {
		addStyledRun(doc.AddParagraph(""), "Missing ranges (transcription failed):", true, fontSize)
		for _, g := range t.GapSummary() {
			p := doc.AddParagraph("")
			p.AddText("• "+g).Font(fontName).Size(fontSize).Color("000000")
		}
		doc.AddParagraph("")
	}

	for _, para := range splitParagraphs(t.Text) {
		p := doc.AddParagraph("")
		p.AddText(para).Font(fontName).Size(fontSize).Color("000000")
	}

	return doc.SaveTo(outputPath)
}

func translationToDocx(title string, t *pipeline.Translation, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	addStyledRun(doc.AddParagraph(""), fmt.Sprintf("%s (%s)", title, t.Language), true, 16)
	doc.AddParagraph("")

	for _, para := range splitParagraphs(t.Text) {
		p := doc.AddParagraph("")
		p.AddText(para).Font(fontName).Size(fontSize).Color("000000")
	}

	return doc.SaveTo(outputPath)
}

// splitParagraphs breaks a long text body into readable paragraphs at
// sentence ends, roughly 600 runes each. Word processors choke on a
// single multi-hour paragraph.
func splitParagraphs(text string) []string {
	const target = 600

	var out []string
	var cur strings.Builder
	for _, sentence := range splitSentences(text) {
		if cur.Len() > 0 && cur.Len()+len(sentence) > target {
			out = append(out, strings.TrimSpace(cur.String()))
			cur.Reset()
		}
		cur.WriteString(sentence)
	}
	if s := strings.TrimSpace(cur.String()); s != "" {
		out = append(out, s)
	}
	return out
}

func splitSentences(text string) []string {
	var out []string
	start := 0
	for i := 0; i < len(text)-1; i++ {
		c := text[i]
		if (c == '.' || c == '!' || c == '?') && (text[i+1] == ' ' || text[i+1] == '\n') {
			out = append(out, text[start:i+2])
			start = i + 2
		}
	}
	if start < len(text) {
		out = append(out, text[start:])
	}
	return out
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}
