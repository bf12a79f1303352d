package gemini

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGenerateParsesSingleCandidate(t *testing.T) {
	var gotPath, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"the answer"}]}}]}`))
	}))
	defer srv.Close()

	c := NewWithBaseURL([]string{"key-a", "key-b"}, "gemini-1.5-flash-latest", srv.URL)

	answer, err := c.Generate(context.Background(), "what is chitchat?")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if answer != "the answer" {
		t.Fatalf("unexpected answer %q", answer)
	}
	if !strings.Contains(gotPath, "gemini-1.5-flash-latest:generateContent") {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotKey != "key-a" && gotKey != "key-b" {
		t.Fatalf("key must come from the configured pool, got %q", gotKey)
	}
}

func TestGenerateErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewWithBaseURL([]string{"key"}, "gemini-1.5-flash-latest", srv.URL)

	if _, err := c.Generate(context.Background(), "q"); !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}

func TestGenerateMalformedPayload(t *testing.T) {
	cases := []string{
		`not json`,
		`{"candidates":[]}`,
		`{"candidates":[{"content":{"parts":[]}}]}`,
	}
	for _, body := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(body))
		}))

		c := NewWithBaseURL([]string{"key"}, "gemini-1.5-flash-latest", srv.URL)
		if _, err := c.Generate(context.Background(), "q"); !errors.Is(err, ErrUpstream) {
			t.Fatalf("body %q: expected ErrUpstream, got %v", body, err)
		}
		srv.Close()
	}
}

func TestGenerateNoKeys(t *testing.T) {
	c := New(nil, "gemini-1.5-flash-latest")
	if _, err := c.Generate(context.Background(), "q"); !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream without keys, got %v", err)
	}
}
