// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package patch

import (
	"strings"

	"golang.org/x/net/html"
)

// walk visits every node under root in depth-first pre-order and stops
// early when visit returns false.
func walk(root *html.Node, visit func(*html.Node) bool) bool {
	if !visit(root) {
		return false
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, visit) {
			return false
		}
	}
	return true
}

// findAll returns every element under root for which match is true, in
// document order.
func findAll(root *html.Node, match func(*html.Node) bool) []*html.Node {
	var results []*html.Node
	walk(root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && match(n) {
			results = append(results, n)
		}
		return true
	})
	return results
}

// findFirst returns the first element under root for which match is true,
// or nil.
func findFirst(root *html.Node, match func(*html.Node) bool) *html.Node {
	var found *html.Node
	walk(root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && match(n) {
			found = n
			return false
		}
		return true
	})
	return found
}

// isHTML reports whether n is an element in the HTML namespace. Elements
// inside <svg> or <math> carry a foreign namespace.
func isHTML(n *html.Node) bool {
	return n.Type == html.ElementNode && n.Namespace == ""
}

// getAttr returns the value of an attribute and whether it is present.
func getAttr(n *html.Node, key string) (string, bool) {
	for _, attr := range n.Attr {
		if attr.Namespace == "" && attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

// setAttr sets key to val, replacing an existing value in place or appending
// a new attribute. It reports whether the node changed.
func setAttr(n *html.Node, key, val string) bool {
	for i := range n.Attr {
		if n.Attr[i].Namespace == "" && n.Attr[i].Key == key {
			if n.Attr[i].Val == val {
				return false
			}
			n.Attr[i].Val = val
			return true
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
	return true
}

// hasClass reports whether the whitespace-separated class list of n
// contains class.
func hasClass(n *html.Node, class string) bool {
	v, ok := getAttr(n, "class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}
