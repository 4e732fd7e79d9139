package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Nimrod-Galor/Domain-Audit-sub002/internal/fetch"
)

func TestLoadTarget_LocalFile(t *testing.T) {
	const page = "<html><head><script src='https://x.example/a.js'></script></head></html>"
	path := filepath.Join(t.TempDir(), "page.html")
	if err := os.WriteFile(path, []byte(page), 0o644); err != nil {
		t.Fatal(err)
	}

	html, pageURL, err := loadTarget(context.Background(), fetch.New(fetch.Config{}), path)
	if err != nil {
		t.Fatalf("loadTarget failed: %v", err)
	}
	if html != page {
		t.Errorf("unexpected content %q", html)
	}
	if pageURL != "" {
		t.Errorf("local file should have no page URL, got %q", pageURL)
	}
}

func TestLoadTarget_InvalidURL(t *testing.T) {
	_, _, err := loadTarget(context.Background(), fetch.New(fetch.Config{}), "not a url")
	if err == nil {
		t.Fatal("expected an error for an unparseable target")
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	want := map[string]bool{"analyze": false, "catalog": false, "report": false, "version": false}
	for _, c := range rootCmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("command %s is not registered", name)
		}
	}
}
