package quizbank

import (
	"fmt"
	"html"
	"strings"
)

// Answers maps question id to the chosen option index. Unanswered questions
// are simply absent.
type Answers map[string]int

// RenderHTML produces the exam fragment: one card per question with an
// exclusive radio group named by question id. All bank-sourced text is
// escaped; banks are untrusted input.
func RenderHTML(p Paper) string {
	var b strings.Builder
	for i, q := range p.Questions {
		fmt.Fprintf(&b, `<div class="q-card"><div class="q-text"><strong>%d.</strong> %s</div><div class="options" id="opt-%s">`,
			i+1, html.EscapeString(q.Text), html.EscapeString(q.ID))
		for oi, opt := range q.Options {
			fmt.Fprintf(&b, `<label><input type="radio" name="%s" value="%d"/> %s</label>`,
				html.EscapeString(q.ID), oi, html.EscapeString(opt))
		}
		b.WriteString(`</div></div>`)
	}
	return b.String()
}

// CollectAnswers filters a raw id->index mapping down to choices that are
// actually valid for the paper: known question id, option index in range.
// Everything else is dropped, mirroring how a radio scan can only ever see
// rendered controls.
func CollectAnswers(p Paper, raw map[string]int) Answers {
	byID := make(map[string]Question, len(p.Questions))
	for _, q := range p.Questions {
		byID[q.ID] = q
	}
	out := Answers{}
	for id, idx := range raw {
		q, ok := byID[id]
		if !ok || idx < 0 || idx >= len(q.Options) {
			continue
		}
		out[id] = idx
	}
	return out
}
