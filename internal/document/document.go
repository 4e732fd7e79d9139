// Package document wraps a parsed HTML tree behind a small query API so the
// analyzers never touch golang.org/x/net/html nodes directly.
package document

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Document is a read-only view over a parsed HTML page. Element positions
// follow document order (depth-first over the tree), which analyzers use as
// a proxy for request issuance order.
type Document struct {
	root     *html.Node
	elements []Element
}

// Element is a single HTML element plus its document-order position.
type Element struct {
	node     *html.Node
	Tag      string
	Position int
}

// Parse reads HTML from r and indexes every element in document order.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	doc := &Document{root: root}
	pos := 0
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			doc.elements = append(doc.elements, Element{node: n, Tag: n.Data, Position: pos})
			pos++
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return doc, nil
}

// ParseString is a convenience wrapper around Parse.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// QuerySelectorAll returns all elements matching a minimal selector subset:
// "tag", "tag[attr]" or "tag[attr=value]". Matching is case-insensitive for
// tag and attribute names, exact for attribute values.
func (d *Document) QuerySelectorAll(selector string) []Element {
	tag, attr, value, hasAttr := parseSelector(selector)
	var out []Element
	for _, el := range d.elements {
		if tag != "" && !strings.EqualFold(el.Tag, tag) {
			continue
		}
		if hasAttr {
			v, ok := el.Lookup(attr)
			if !ok {
				continue
			}
			if value != "" && v != value {
				continue
			}
		}
		out = append(out, el)
	}
	return out
}

// Len returns the number of elements indexed.
func (d *Document) Len() int { return len(d.elements) }

// Attr returns the value of the named attribute, or "" when absent.
func (e Element) Attr(name string) string {
	v, _ := e.Lookup(name)
	return v
}

// Lookup returns the attribute value and whether the attribute is present.
// A boolean attribute written without a value (e.g. <script async>) reports
// present with an empty value.
func (e Element) Lookup(name string) (string, bool) {
	for _, a := range e.node.Attr {
		if strings.EqualFold(a.Key, name) {
			return a.Val, true
		}
	}
	return "", false
}

// HasAttr reports whether the named attribute is present.
func (e Element) HasAttr(name string) bool {
	_, ok := e.Lookup(name)
	return ok
}

// Text returns the concatenated text content of the element's children.
// Used to scan inline script bodies.
func (e Element) Text() string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(e.node)
	return sb.String()
}

func parseSelector(selector string) (tag, attr, value string, hasAttr bool) {
	selector = strings.TrimSpace(selector)
	open := strings.IndexByte(selector, '[')
	if open < 0 {
		return selector, "", "", false
	}
	tag = selector[:open]
	rest := strings.TrimSuffix(selector[open+1:], "]")
	if eq := strings.IndexByte(rest, '='); eq >= 0 {
		return tag, rest[:eq], strings.Trim(rest[eq+1:], `"'`), true
	}
	return tag, rest, "", true
}
