package quizbank

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

const setsBody = `{
  "sets": [{
    "id": "set-a",
    "alias": "Board 2020",
    "questions": [{"q": "Q one", "a": ["w", "x"], "correct": 1}]
  }]
}`

func TestHTTPSourceFetch(t *testing.T) {
	var gotPath, gotCache string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotCache = r.Header.Get("Cache-Control")
		_, _ = w.Write([]byte(setsBody))
	}))
	defer srv.Close()

	data, err := NewHTTPSource(srv.URL).Fetch(context.Background(), "physics.json")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if string(data) != setsBody {
		t.Errorf("body = %q", data)
	}
	if gotPath != "/quizdata/physics.json" {
		t.Errorf("path = %q", gotPath)
	}
	if gotCache != "no-store" {
		t.Errorf("Cache-Control = %q, want no-store", gotCache)
	}
}

func TestHTTPSourceStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewHTTPSource(srv.URL).Fetch(context.Background(), "physics.json")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
}

func TestHTTPSourceConnectError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening

	_, err := NewHTTPSource(srv.URL).Fetch(context.Background(), "physics.json")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
}

func TestLoadViaHTTPSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(setsBody))
	}))
	defer srv.Close()

	p, err := Load(context.Background(), NewHTTPSource(srv.URL), "physics.json", "2025-03-25|physics")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.PaperID != "set-a" || len(p.Questions) != 1 {
		t.Fatalf("paper = %+v", p)
	}
	if p.Questions[0].ID != "set-a-q1" {
		t.Errorf("question id = %q", p.Questions[0].ID)
	}
}
