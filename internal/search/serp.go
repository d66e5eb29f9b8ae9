package search

import (
	"strings"

	"golang.org/x/net/html"
)

// Shared node helpers for the HTML SERP parsers.

// findAll walks the tree depth-first collecting nodes that satisfy the
// predicate.
func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

// findFirst returns the first matching node, or nil.
func findFirst(n *html.Node, match func(*html.Node) bool) *html.Node {
	nodes := findAll(n, match)
	if len(nodes) == 0 {
		return nil
	}
	return nodes[0]
}

// attr returns the value of the named attribute, or "".
func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

// hasClass reports whether an element node carries the CSS class.
func hasClass(n *html.Node, class string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// nodeText concatenates the visible text beneath a node.
func nodeText(n *html.Node) string {
	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(strings.Join(strings.Fields(buf.String()), " "))
}

// isElement reports whether n is the named element.
func isElement(n *html.Node, name string) bool {
	return n.Type == html.ElementNode && n.Data == name
}
