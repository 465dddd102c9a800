package storage

import (
	"io"
	"reflect"
	"sort"
	"strings"
	"testing"
)

func TestFSStorePutGet(t *testing.T) {
	s, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	key, err := s.Put("quizdata/physics.json", strings.NewReader(`{"sets":[]}`))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if key != "quizdata/physics.json" {
		t.Errorf("key = %q", key)
	}

	rc, err := s.Get("quizdata/physics.json")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	defer rc.Close()
	body, _ := io.ReadAll(rc)
	if string(body) != `{"sets":[]}` {
		t.Errorf("body = %q", body)
	}

	if _, err := s.Put("", strings.NewReader("x")); err == nil {
		t.Error("empty key accepted")
	}
}

func TestFSStoreList(t *testing.T) {
	s, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{
		"quizdata/physics.json",
		"quizdata/biology.json",
		"MonthlyQuizExam/style.css",
		"index.html",
	} {
		if _, err := s.Put(key, strings.NewReader("x")); err != nil {
			t.Fatalf("Put %s: %v", key, err)
		}
	}

	keys, err := s.List("quizdata")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	sort.Strings(keys)
	want := []string{"quizdata/biology.json", "quizdata/physics.json"}
	if !reflect.DeepEqual(keys, want) {
		t.Errorf("List(quizdata) = %v, want %v", keys, want)
	}

	all, err := s.List("")
	if err != nil {
		t.Fatalf("List root: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("List root = %v", all)
	}

	// keys are slash-separated regardless of platform
	for _, k := range all {
		if strings.Contains(k, "\\") {
			t.Errorf("key %q not slash-separated", k)
		}
	}

	// a prefix with no entries is not an error
	missing, err := s.List("nosuchdir")
	if err != nil {
		t.Fatalf("List missing: %v", err)
	}
	if len(missing) != 0 {
		t.Errorf("List missing = %v", missing)
	}
}
