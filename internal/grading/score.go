// Package grading scores a collected answer set against a paper's key.
package grading

import "github.com/alphaquiz/monthlyquiz/internal/quizbank"

// Score counts exact index matches against the answer key. The second
// return reports whether a score is available at all: scoring requires
// every question in the paper to carry a known answer, otherwise the
// attempt is graded manually and the score is "N/A".
func Score(p quizbank.Paper, ans quizbank.Answers) (int, bool) {
	if !p.Keyed() {
		return 0, false
	}
	score := 0
	for _, q := range p.Questions {
		if got, ok := ans[q.ID]; ok && got == *q.Answer {
			score++
		}
	}
	return score, true
}
