// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package patch applies a fixed set of accessibility fixes to a parsed HTML
// document. Every fix mutates the tree in place and never fails; a document
// without matching elements is left as it is.
//
// The fixes are:
//   - label the mobile navigation toggle (#mobile-menu-button);
//   - label copy-to-clipboard buttons (.copy-button);
//   - demote every h1 after the first to h2;
//   - give images without alt text a placeholder.
package patch

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/pdiddy/a11y-patcher/pkg/types"
)

const (
	// MenuButtonID is the id of the mobile navigation toggle.
	MenuButtonID = "mobile-menu-button"
	// MenuButtonLabel is the aria-label given to the navigation toggle.
	MenuButtonLabel = "Open navigation menu"
	// MenuButtonExpanded is the initial aria-expanded state of the toggle.
	MenuButtonExpanded = "false"

	// CopyButtonClass is the class token marking copy-to-clipboard buttons.
	CopyButtonClass = "copy-button"
	// CopyButtonLabel is the aria-label given to copy buttons.
	CopyButtonLabel = "Copy result to clipboard"

	// AltPlaceholder is the alt text given to images without one.
	AltPlaceholder = "Descriptive text here"
)

// Patch runs all four fixes over doc and returns how many elements each one
// changed. Running Patch again on the result changes nothing.
func Patch(doc *html.Node) types.FixCounts {
	return types.FixCounts{
		MenuButtons: FixMenuButton(doc),
		CopyButtons: FixCopyButtons(doc),
		Headings:    FixHeadingOrder(doc),
		Images:      FixImageAltText(doc),
	}
}

// FixMenuButton sets aria-label and aria-expanded on the first element whose
// id is MenuButtonID. Existing values are overwritten. It returns 1 if the
// element changed, 0 otherwise.
func FixMenuButton(doc *html.Node) int {
	btn := findFirst(doc, func(n *html.Node) bool {
		id, _ := getAttr(n, "id")
		return id == MenuButtonID
	})
	if btn == nil {
		return 0
	}

	changed := setAttr(btn, "aria-label", MenuButtonLabel)
	if setAttr(btn, "aria-expanded", MenuButtonExpanded) {
		changed = true
	}
	if changed {
		return 1
	}
	return 0
}

// FixCopyButtons sets aria-label on every element carrying the
// CopyButtonClass class token, overwriting any existing label.
func FixCopyButtons(doc *html.Node) int {
	changed := 0
	for _, btn := range findAll(doc, func(n *html.Node) bool { return hasClass(n, CopyButtonClass) }) {
		if setAttr(btn, "aria-label", CopyButtonLabel) {
			changed++
		}
	}
	return changed
}

// FixHeadingOrder keeps the first h1 in document order and renames every
// later h1 to h2. Only the tag changes; attributes and children stay. h2-h4
// are scanned but never altered, and h5/h6 are ignored entirely, so an h3
// preceding the first h1 is left where it is.
func FixHeadingOrder(doc *html.Node) int {
	headings := findAll(doc, func(n *html.Node) bool {
		if !isHTML(n) {
			return false
		}
		switch n.DataAtom {
		case atom.H1, atom.H2, atom.H3, atom.H4:
			return true
		}
		return false
	})

	seenFirstH1 := false
	renamed := 0
	for _, h := range headings {
		if h.DataAtom != atom.H1 {
			continue
		}
		if !seenFirstH1 {
			seenFirstH1 = true
			continue
		}
		h.DataAtom = atom.H2
		h.Data = atom.H2.String()
		renamed++
	}
	return renamed
}

// FixImageAltText sets alt to AltPlaceholder on every img whose alt
// attribute is missing or empty. A non-empty alt, even whitespace, is kept.
func FixImageAltText(doc *html.Node) int {
	changed := 0
	for _, img := range findAll(doc, func(n *html.Node) bool { return isHTML(n) && n.DataAtom == atom.Img }) {
		if alt, _ := getAttr(img, "alt"); alt != "" {
			continue
		}
		setAttr(img, "alt", AltPlaceholder)
		changed++
	}
	return changed
}
