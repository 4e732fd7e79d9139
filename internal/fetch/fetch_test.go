package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sharederrors "github.com/Nimrod-Galor/Domain-Audit-sub002/internal/shared/errors"
)

func TestPage_FetchesHTML(t *testing.T) {
	const page = "<html><head><script src='https://x.example/a.js'></script></head></html>"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); !strings.HasPrefix(ua, "domaudit/") {
			t.Errorf("unexpected user agent %q", ua)
		}
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	f := New(Config{})
	body, err := f.Page(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Page failed: %v", err)
	}
	if body != page {
		t.Errorf("unexpected body %q", body)
	}
}

func TestPage_InvalidTarget(t *testing.T) {
	f := New(Config{})
	for _, target := range []string{"", "ftp://example.com/x", "not a url", "/relative"} {
		_, err := f.Page(context.Background(), target)
		if !errors.Is(err, sharederrors.ErrInvalidTarget) {
			t.Errorf("Page(%q): expected ErrInvalidTarget, got %v", target, err)
		}
	}
}

func TestPage_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	f := New(Config{})
	if _, err := f.Page(context.Background(), srv.URL); err == nil {
		t.Error("expected error for 500 response")
	}
}

func TestPage_BodyCapped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(make([]byte, 1024))
	}))
	defer srv.Close()

	f := New(Config{MaxBytes: 100})
	body, err := f.Page(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Page failed: %v", err)
	}
	if len(body) != 100 {
		t.Errorf("body length = %d, want capped at 100", len(body))
	}
}

func TestPage_EmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("  \n\t"))
	}))
	defer srv.Close()

	f := New(Config{})
	_, err := f.Page(context.Background(), srv.URL)
	if !errors.Is(err, sharederrors.ErrEmptyDocument) {
		t.Errorf("expected ErrEmptyDocument, got %v", err)
	}
}
