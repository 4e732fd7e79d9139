// Package services maps resource URLs to known third-party service
// descriptors. The catalog is configuration data: built once, never mutated.
package services

import "strings"

// Category classifies a known service.
type Category string

const (
	CategoryAnalytics   Category = "analytics"
	CategoryAdvertising Category = "advertising"
	CategorySocial      Category = "social"
	CategoryCDN         Category = "cdn"
	CategoryUtilities   Category = "utilities"
	CategoryTracking    Category = "tracking"
)

// CVE is a static vulnerability record. This is a stand-in list, not a live
// database feed.
type CVE struct {
	ID       string `json:"id"`
	Severity string `json:"severity"`
	Summary  string `json:"summary"`
}

// Descriptor describes one known third-party service.
type Descriptor struct {
	Name     string   `json:"name"`
	Category Category `json:"category"`
	// Patterns are substrings matched against the lowercased resource URL.
	Patterns []string `json:"patterns"`
	// Requires/Conflicts/Enhances are patterns matched against other
	// resources on the same page to infer dependency edges.
	Requires  []string `json:"requires,omitempty"`
	Conflicts []string `json:"conflicts,omitempty"`
	Enhances  []string `json:"enhances,omitempty"`
	// Critical marks services whose failure visibly breaks the page.
	Critical bool `json:"critical,omitempty"`
	// EstimatedLoadMS is a static transfer+parse estimate, not a measurement.
	EstimatedLoadMS int   `json:"estimated_load_ms"`
	KnownCVEs       []CVE `json:"known_cves,omitempty"`
}

// Catalog is an immutable lookup table of known services plus the
// typically-slow URL pattern set used for bottleneck labeling.
type Catalog struct {
	services     []Descriptor
	slowPatterns []string
}

// NewCatalog builds a catalog from explicit descriptor and slow-pattern
// lists. Inputs are copied so later mutation by the caller has no effect.
func NewCatalog(descriptors []Descriptor, slowPatterns []string) *Catalog {
	c := &Catalog{
		services:     make([]Descriptor, len(descriptors)),
		slowPatterns: make([]string, len(slowPatterns)),
	}
	copy(c.services, descriptors)
	copy(c.slowPatterns, slowPatterns)
	return c
}

// Identify returns the descriptor whose pattern matches rawURL, if any.
// First match in catalog order wins.
func (c *Catalog) Identify(rawURL string) (Descriptor, bool) {
	lower := strings.ToLower(rawURL)
	for _, d := range c.services {
		for _, p := range d.Patterns {
			if strings.Contains(lower, p) {
				return d, true
			}
		}
	}
	return Descriptor{}, false
}

// IsSlow reports whether rawURL matches the typically-slow pattern set.
func (c *Catalog) IsSlow(rawURL string) bool {
	lower := strings.ToLower(rawURL)
	for _, p := range c.slowPatterns {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// Services returns a copy of all descriptors, for listing commands.
func (c *Catalog) Services() []Descriptor {
	out := make([]Descriptor, len(c.services))
	copy(out, c.services)
	return out
}

// Len returns the number of known services.
func (c *Catalog) Len() int { return len(c.services) }

// Matches reports whether rawURL matches any of the given patterns.
func Matches(rawURL string, patterns []string) bool {
	lower := strings.ToLower(rawURL)
	for _, p := range patterns {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}
