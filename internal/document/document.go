// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package document loads, parses, serializes, and saves single HTML files.
// Full documents are parsed with the HTML5 algorithm; partial files (no
// doctype and no html, head, or body tag) are parsed as body content so
// that rendering does not wrap them in html/head/body. Repeated attributes
// on an element are collapsed after parsing.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// errNotUTF8 is wrapped in a ParseError for input that is not valid UTF-8.
var errNotUTF8 = errors.New("content is not valid UTF-8")

// Load reads the file at path and parses it. It returns an *IOError when the
// file cannot be read and a *ParseError when its content is rejected.
func Load(path string) (*html.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}
	doc, err := Parse(data)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return nil, err
	}
	return doc, nil
}

// Parse decodes src as UTF-8 HTML and returns the document node.
func Parse(src []byte) (*html.Node, error) {
	if !utf8.Valid(src) {
		return nil, &ParseError{Err: errNotUTF8}
	}

	if isFullDocument(src) {
		doc, err := html.Parse(bytes.NewReader(src))
		if err != nil {
			return nil, &ParseError{Err: err}
		}
		dedupeAttrs(doc)
		return doc, nil
	}

	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(bytes.NewReader(src), body)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	doc := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		doc.AppendChild(n)
	}
	dedupeAttrs(doc)
	return doc, nil
}

// Render serializes doc back to HTML. A tree the serializer rejects, such
// as a void element with children, is reported as a plain wrapped error.
func Render(doc *html.Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return nil, fmt.Errorf("rendering HTML: %w", err)
	}
	return buf.Bytes(), nil
}

// Save overwrites the file at path with data, keeping its permission bits.
// No backup is made.
func Save(path string, data []byte) error {
	perm := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}
	if err := os.WriteFile(path, data, perm); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// isFullDocument reports whether src declares a doctype or contains an
// <html>, <head>, or <body> start tag anywhere. Such files go through the
// full tree builder, because fragment parsing drops those elements and
// their attributes. The tokenizer keeps script, style, and comment text
// from matching, and custom elements like <html-include> have their own
// tag name.
func isFullDocument(src []byte) bool {
	z := html.NewTokenizer(bytes.NewReader(src))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return false
		case html.DoctypeToken:
			return true
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			switch atom.Lookup(name) {
			case atom.Html, atom.Head, atom.Body:
				return true
			}
		}
	}
}

// dedupeAttrs collapses repeated attributes on every element. The first
// occurrence keeps its position and takes the value of the last one, so
// <img alt="" alt="Logo"> becomes <img alt="Logo">.
func dedupeAttrs(root *html.Node) {
	if root.Type == html.ElementNode && len(root.Attr) > 1 {
		root.Attr = dedupe(root.Attr)
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		dedupeAttrs(c)
	}
}

func dedupe(attrs []html.Attribute) []html.Attribute {
	type key struct{ ns, name string }
	index := make(map[key]int, len(attrs))
	out := attrs[:0:0]
	for _, a := range attrs {
		k := key{a.Namespace, a.Key}
		if i, ok := index[k]; ok {
			out[i].Val = a.Val
			continue
		}
		index[k] = len(out)
		out = append(out, a)
	}
	return out
}
