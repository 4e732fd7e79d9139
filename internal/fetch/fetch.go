// Package fetch retrieves page HTML for analysis. It is transport only:
// no timing is measured and nothing beyond the initial document is loaded.
package fetch

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sharederrors "github.com/Nimrod-Galor/Domain-Audit-sub002/internal/shared/errors"
)

const (
	defaultTimeout   = 15 * time.Second
	defaultUserAgent = "domaudit/1.0 (+third-party resource analyzer)"
	maxBodyBytes     = 2 * 1024 * 1024
)

// Config tunes the fetcher. Zero values use the defaults above.
type Config struct {
	Timeout   time.Duration
	UserAgent string
	MaxBytes  int64
}

// Fetcher downloads page HTML with conservative transport settings.
type Fetcher struct {
	client    *http.Client
	userAgent string
	maxBytes  int64
}

// New builds a Fetcher.
func New(cfg Config) *Fetcher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	maxBytes := cfg.MaxBytes
	if maxBytes <= 0 {
		maxBytes = maxBodyBytes
	}
	return &Fetcher{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					MinVersion: tls.VersionTLS12,
				},
			},
		},
		userAgent: userAgent,
		maxBytes:  maxBytes,
	}
}

// Page fetches the HTML document at target. The target must be an absolute
// http(s) URL; the body is capped at MaxBytes.
func (f *Fetcher) Page(ctx context.Context, target string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(target))
	if err != nil || u.Hostname() == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return "", fmt.Errorf("%w: %q", sharederrors.ErrInvalidTarget, target)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", u.Hostname(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		return "", fmt.Errorf("fetch %s: unexpected status %d", u.Hostname(), resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return "", fmt.Errorf("%w: %s", sharederrors.ErrEmptyDocument, u.Hostname())
	}
	return string(body), nil
}
