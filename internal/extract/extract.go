// Package extract walks a parsed document and yields raw third-party
// resource descriptors for the analyzers downstream.
package extract

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/Nimrod-Galor/Domain-Audit-sub002/internal/document"
)

// Kind classifies how a resource is referenced by the page.
type Kind string

const (
	KindScript     Kind = "script"
	KindStylesheet Kind = "stylesheet"
	KindIframe     Kind = "iframe"
	KindImage      Kind = "image"
	KindPreconnect Kind = "preconnect"
)

// Resource is a raw resource descriptor: what the markup says, before any
// service identification happens.
type Resource struct {
	Kind     Kind   `json:"kind"`
	URL      string `json:"url"`
	Async    bool   `json:"async,omitempty"`
	Defer    bool   `json:"defer,omitempty"`
	Module   bool   `json:"module,omitempty"`
	Dynamic  bool   `json:"dynamic,omitempty"`
	Lazy     bool   `json:"lazy,omitempty"`
	Media    string `json:"media,omitempty"`
	Position int    `json:"position"`
}

// Options controls extraction.
type Options struct {
	// PageURL is the page's own address; resources on the same host are
	// treated as first-party and skipped. Empty keeps everything.
	PageURL string
	// IncludeFirstParty disables the same-host filter.
	IncludeFirstParty bool
}

var dynamicSrcPattern = regexp.MustCompile(`(?i)(?:\.src\s*=\s*|createElement\(['"]script['"][\s\S]{0,200}?)["'](https?://[^"']+|//[^"']+)["']`)

// Extract walks doc and returns external resource descriptors in document
// order. Malformed URLs are skipped; extraction never fails outright.
func Extract(doc *document.Document, opts Options) []Resource {
	if doc == nil {
		return nil
	}

	var base *url.URL
	if opts.PageURL != "" {
		if u, err := url.Parse(opts.PageURL); err == nil && u.Hostname() != "" {
			base = u
		}
	}

	seen := make(map[string]struct{})
	var resources []Resource

	add := func(r Resource) {
		resolved := resolveURL(r.URL, base)
		if resolved == "" {
			return
		}
		u, err := url.Parse(resolved)
		if err != nil || u.Hostname() == "" {
			return
		}
		if base != nil && !opts.IncludeFirstParty &&
			strings.EqualFold(u.Hostname(), base.Hostname()) {
			return
		}
		key := string(r.Kind) + "|" + resolved
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		r.URL = resolved
		resources = append(resources, r)
	}

	for _, el := range doc.QuerySelectorAll("script") {
		if src, ok := el.Lookup("src"); ok && src != "" {
			add(Resource{
				Kind:     KindScript,
				URL:      strings.TrimSpace(src),
				Async:    el.HasAttr("async"),
				Defer:    el.HasAttr("defer"),
				Module:   el.Attr("type") == "module",
				Position: el.Position,
			})
			continue
		}
		// Inline scripts can inject loaders at runtime; a static scan of
		// string literals is the closest approximation available.
		for _, m := range dynamicSrcPattern.FindAllStringSubmatch(el.Text(), -1) {
			add(Resource{
				Kind:     KindScript,
				URL:      m[1],
				Dynamic:  true,
				Async:    true,
				Position: el.Position,
			})
		}
	}

	for _, el := range doc.QuerySelectorAll("link") {
		href := strings.TrimSpace(el.Attr("href"))
		if href == "" {
			continue
		}
		switch strings.ToLower(el.Attr("rel")) {
		case "stylesheet":
			add(Resource{
				Kind:     KindStylesheet,
				URL:      href,
				Media:    el.Attr("media"),
				Position: el.Position,
			})
		case "preconnect", "dns-prefetch":
			add(Resource{Kind: KindPreconnect, URL: href, Position: el.Position})
		case "prefetch", "preload":
			add(Resource{Kind: KindPreconnect, URL: href, Lazy: true, Position: el.Position})
		}
	}

	for _, el := range doc.QuerySelectorAll("iframe[src]") {
		add(Resource{
			Kind:     KindIframe,
			URL:      strings.TrimSpace(el.Attr("src")),
			Lazy:     strings.EqualFold(el.Attr("loading"), "lazy"),
			Position: el.Position,
		})
	}

	for _, el := range doc.QuerySelectorAll("img[src]") {
		add(Resource{
			Kind:     KindImage,
			URL:      strings.TrimSpace(el.Attr("src")),
			Lazy:     strings.EqualFold(el.Attr("loading"), "lazy"),
			Position: el.Position,
		})
	}

	return resources
}

// RenderBlocking reports whether the resource blocks first paint: a script
// without async/defer/module, or a stylesheet whose media applies to the
// default rendering context.
func (r Resource) RenderBlocking() bool {
	switch r.Kind {
	case KindScript:
		return !r.Async && !r.Defer && !r.Module && !r.Dynamic
	case KindStylesheet:
		return mediaAppliesToScreen(r.Media)
	}
	return false
}

// LoadingPattern maps the markup flags to a single loading classification.
func (r Resource) LoadingPattern() string {
	switch {
	case r.Dynamic:
		return "dynamic"
	case r.Lazy:
		return "lazy"
	case r.Async:
		return "async"
	case r.Defer || r.Module:
		return "defer"
	default:
		return "blocking"
	}
}

func mediaAppliesToScreen(media string) bool {
	media = strings.ToLower(strings.TrimSpace(media))
	switch media {
	case "", "all", "screen":
		return true
	}
	// Conditional queries ("screen and (...)") still gate first paint.
	return strings.Contains(media, "screen") || strings.Contains(media, "(")
}

func resolveURL(src string, base *url.URL) string {
	src = strings.TrimSpace(src)
	switch {
	case src == "", strings.HasPrefix(src, "data:"), strings.HasPrefix(src, "javascript:"):
		return ""
	case strings.HasPrefix(src, "//"):
		scheme := "https"
		if base != nil {
			scheme = base.Scheme
		}
		return scheme + ":" + src
	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		return src
	}
	if base == nil {
		return ""
	}
	resolved, err := base.Parse(src)
	if err != nil {
		return ""
	}
	return resolved.String()
}
