// Package quizbank loads per-subject question banks and normalizes the two
// wire shapes (legacy "papers", current "sets") into one in-memory Paper.
package quizbank

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alphaquiz/monthlyquiz/internal/schedule"
)

// ErrNoPapers marks a syntactically valid bank with nothing to serve.
// Callers degrade to a placeholder; the exam clock still runs.
var ErrNoPapers = errors.New("quizbank: no papers or sets in bank")

// Question is the normalized MCQ. Answer is nil when the bank does not
// carry a key, in which case the attempt is graded manually.
type Question struct {
	ID      string   `json:"id"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
	Answer  *int     `json:"answer,omitempty"`
}

// Paper is one selected variant of a subject's bank.
type Paper struct {
	PaperID   string     `json:"paperId"`
	Alias     string     `json:"alias,omitempty"`
	Questions []Question `json:"questions"`
}

// Bank is the decoded wire form, either shape.
type Bank struct {
	Papers []Paper `json:"papers"`
	Sets   []Set   `json:"sets"`
	Alias  string  `json:"alias"`
	Board  string  `json:"board"`
}

// Set is the current wire shape: terse field names, answer key in "correct".
type Set struct {
	ID        string        `json:"id"`
	Alias     string        `json:"alias"`
	Questions []setQuestion `json:"questions"`
}

type setQuestion struct {
	Q       string   `json:"q"`
	Text    string   `json:"text"`
	A       []string `json:"a"`
	Options []string `json:"options"`
	Correct *int     `json:"correct"`
	Answer  *int     `json:"answer"`
}

// Parse decodes a bank body without selecting a variant.
func Parse(data []byte) (Bank, error) {
	var b Bank
	if err := json.Unmarshal(data, &b); err != nil {
		return Bank{}, fmt.Errorf("quizbank: decode: %w", err)
	}
	return b, nil
}

// Pick selects one variant deterministically for the seed and normalizes it.
// Legacy papers are served as-is; sets are mapped to the legacy shape with
// synthesized question ids.
func (b Bank) Pick(seed string) (Paper, error) {
	if len(b.Papers) > 0 {
		p := b.Papers[schedule.PickIndex(seed, len(b.Papers))]
		if p.Alias == "" {
			if b.Alias != "" {
				p.Alias = b.Alias
			} else {
				p.Alias = b.Board
			}
		}
		return p, nil
	}
	if len(b.Sets) > 0 {
		return b.Sets[schedule.PickIndex(seed, len(b.Sets))].normalize(), nil
	}
	return Paper{}, ErrNoPapers
}

func (s Set) normalize() Paper {
	qs := make([]Question, len(s.Questions))
	for i, sq := range s.Questions {
		q := Question{
			ID:      fmt.Sprintf("%s-q%d", s.ID, i+1),
			Text:    sq.Q,
			Options: sq.A,
			Answer:  sq.Correct,
		}
		if q.Text == "" {
			q.Text = sq.Text
		}
		if q.Text == "" {
			q.Text = fmt.Sprintf("Q%d", i+1)
		}
		if q.Options == nil {
			q.Options = sq.Options
		}
		if q.Options == nil {
			q.Options = []string{}
		}
		if q.Answer == nil {
			q.Answer = sq.Answer
		}
		qs[i] = q
	}
	return Paper{PaperID: s.ID, Alias: s.Alias, Questions: qs}
}

// StripAnswers returns a copy safe to serve to students, with every answer
// key removed.
func (p Paper) StripAnswers() Paper {
	out := p
	out.Questions = make([]Question, len(p.Questions))
	for i, q := range p.Questions {
		q.Answer = nil
		out.Questions[i] = q
	}
	return out
}

// Keyed reports whether every question carries a known answer, i.e. whether
// a score can be computed at all.
func (p Paper) Keyed() bool {
	for _, q := range p.Questions {
		if q.Answer == nil {
			return false
		}
	}
	return true
}
