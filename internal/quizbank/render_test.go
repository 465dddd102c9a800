package quizbank

import (
	"strings"
	"testing"
)

func TestRenderHTMLEscapes(t *testing.T) {
	p := Paper{
		PaperID: "p1",
		Questions: []Question{
			{ID: "p1-1", Text: `<script>alert("x")</script>`, Options: []string{"<b>bold</b>", "plain"}},
		},
	}
	out := RenderHTML(p)
	if strings.Contains(out, "<script>") || strings.Contains(out, "<b>") {
		t.Fatalf("unescaped bank content in output: %s", out)
	}
	if !strings.Contains(out, "&lt;script&gt;") {
		t.Errorf("expected escaped question text, got: %s", out)
	}
	if !strings.Contains(out, `name="p1-1"`) {
		t.Errorf("radio group not keyed by question id: %s", out)
	}
	if !strings.Contains(out, `value="1"`) {
		t.Errorf("option indices missing: %s", out)
	}
}

func TestCollectAnswers(t *testing.T) {
	p := Paper{
		Questions: []Question{
			{ID: "q1", Options: []string{"a", "b"}},
			{ID: "q2", Options: []string{"a", "b", "c"}},
		},
	}
	got := CollectAnswers(p, map[string]int{
		"q1":    1,
		"q2":    5,  // out of range
		"ghost": 0,  // unknown question
	})
	if len(got) != 1 || got["q1"] != 1 {
		t.Fatalf("collected %v, want only q1=1", got)
	}
}

func TestCollectAnswersEmpty(t *testing.T) {
	p := Paper{Questions: []Question{{ID: "q1", Options: []string{"a"}}}}
	if got := CollectAnswers(p, nil); len(got) != 0 {
		t.Fatalf("collected %v from nothing", got)
	}
}
