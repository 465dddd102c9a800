package auth

import (
	"regexp"
	"testing"
)

func TestUserIDStable(t *testing.T) {
	a := UserID("Student@Example.COM")
	b := UserID("  student@example.com ")
	if a != b {
		t.Fatalf("case/whitespace variants map to different ids: %q vs %q", a, b)
	}
	if len(a) == 0 || len(a) > 16 {
		t.Fatalf("id length = %d", len(a))
	}
	if !regexp.MustCompile(`^[a-zA-Z0-9]+$`).MatchString(a) {
		t.Fatalf("id not alphanumeric: %q", a)
	}
	if UserID("other@example.com") == a {
		t.Fatal("distinct emails collided")
	}
}

func TestValidEmail(t *testing.T) {
	valid := []string{"a@b.co", "student.name@school.edu.bd"}
	invalid := []string{"", "plain", "a b@c.d", "a@b", "@b.c"}
	for _, e := range valid {
		if !ValidEmail(e) {
			t.Errorf("%q rejected", e)
		}
	}
	for _, e := range invalid {
		if ValidEmail(e) {
			t.Errorf("%q accepted", e)
		}
	}
}

func TestTokenRoundTrip(t *testing.T) {
	svc := NewService("test-secret")
	tok, err := svc.Issue("user1", "Rahim", "rahim@example.com", "student")
	if err != nil {
		t.Fatal(err)
	}
	claims, err := svc.Parse(tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Subject != "user1" || claims.Name != "Rahim" || claims.Role != "student" {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestTokenTamperRejected(t *testing.T) {
	svc := NewService("test-secret")
	tok, _ := svc.Issue("user1", "Rahim", "rahim@example.com", "student")
	if _, err := svc.Parse(tok + "x"); err == nil {
		t.Fatal("tampered token accepted")
	}
	other := NewService("different-secret")
	if _, err := other.Parse(tok); err == nil {
		t.Fatal("token accepted under wrong key")
	}
}
