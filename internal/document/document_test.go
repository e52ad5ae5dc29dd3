// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package document

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseRender(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "fragment keeps its shape",
			in:   `<div class="card"><img src="a.png"></div>`,
			want: `<div class="card"><img src="a.png"/></div>`,
		},
		{
			name: "full document",
			in:   `<!DOCTYPE html><html><head><title>T</title></head><body><p>x</p></body></html>`,
			want: `<!DOCTYPE html><html><head><title>T</title></head><body><p>x</p></body></html>`,
		},
		{
			name: "html tag without doctype",
			in:   `<HTML><body><p>x</p></body></HTML>`,
			want: `<html><head></head><body><p>x</p></body></html>`,
		},
		{
			name: "head and body without doctype keep their attributes",
			in:   `<head><title>T</title></head><body class="dark" data-page="home"><h1>x</h1></body>`,
			want: `<html><head><title>T</title></head><body class="dark" data-page="home"><h1>x</h1></body></html>`,
		},
		{
			name: "html inside script stays a fragment",
			in:   `<div><script>document.write("<html>")</script><h1>a</h1></div>`,
			want: `<div><script>document.write("<html>")</script><h1>a</h1></div>`,
		},
		{
			name: "doctype inside comment stays a fragment",
			in:   `<!-- <!DOCTYPE html> --><p>x</p>`,
			want: `<!-- <!DOCTYPE html> --><p>x</p>`,
		},
		{
			name: "custom element with html prefix",
			in:   `<html-include src="nav.html"></html-include>`,
			want: `<html-include src="nav.html"></html-include>`,
		},
		{
			name: "html in attribute value",
			in:   `<a title="<html>">x</a>`,
			want: `<a title="&lt;html&gt;">x</a>`,
		},
		{
			name: "duplicate attributes collapse to the last value",
			in:   `<img alt="" src="a.png" alt="Logo">`,
			want: `<img alt="Logo" src="a.png"/>`,
		},
		{
			name: "empty input",
			in:   ``,
			want: ``,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse([]byte(tt.in))
			require.NoError(t, err)
			out, err := Render(doc)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(out))
		})
	}
}

func TestParse_DoctypeAfterLongPreamble(t *testing.T) {
	preamble := strings.Repeat("<!-- build banner -->\n", 400)
	src := preamble + `<!DOCTYPE html><html lang="en"><head></head><body><p>x</p></body></html>`
	require.Greater(t, len(preamble), 4096)
	assert.True(t, isFullDocument([]byte(src)))

	doc, err := Parse([]byte(src))
	require.NoError(t, err)
	out, err := Render(doc)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(out),
		`<!DOCTYPE html><html lang="en"><head></head><body><p>x</p></body></html>`))
}

func TestIsFullDocument(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{`<!doctype html><p>x</p>`, true},
		{`<HTML><p>x</p></HTML>`, true},
		{`<meta charset="utf-8"><title>T</title><body><p>x</p></body>`, true},
		{`<head><title>T</title></head>`, true},
		{`<p>x</p>`, false},
		{`<style>body { color: red }</style><p>x</p>`, false},
		{`<textarea><body></textarea>`, false},
		{`<p>&lt;html&gt;</p>`, false},
		{``, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, isFullDocument([]byte(tt.in)))
		})
	}
}

func TestRender_RejectedTree(t *testing.T) {
	img := &html.Node{Type: html.ElementNode, Data: "img", DataAtom: atom.Img}
	img.AppendChild(&html.Node{Type: html.TextNode, Data: "child"})
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(img)

	_, err := Render(doc)
	require.Error(t, err)
	var pe *ParseError
	assert.False(t, errors.As(err, &pe), "serialization failures are not parse errors")
	assert.Contains(t, err.Error(), "rendering HTML")
}

func TestParse_RejectsInvalidUTF8(t *testing.T) {
	_, err := Parse([]byte("<p>caf\xe9</p>"))
	require.Error(t, err)

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.ErrorIs(t, err, errNotUTF8)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "index.html", `<h1>Hello</h1>`)

	doc, err := Load(path)
	require.NoError(t, err)
	out, err := Render(doc)
	require.NoError(t, err)
	assert.Equal(t, `<h1>Hello</h1>`, string(out))
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "missing.html"))
		var ioe *IOError
		require.True(t, errors.As(err, &ioe))
		assert.Equal(t, "read", ioe.Op)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("invalid encoding", func(t *testing.T) {
		path := writeFile(t, dir, "latin1.html", "<p>\xff\xfe</p>")
		_, err := Load(path)
		var pe *ParseError
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, path, pe.Path)
		assert.Contains(t, err.Error(), path)
	})
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.html")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o600))

	require.NoError(t, Save(path, []byte("new")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	}
}

func TestSave_Unwritable(t *testing.T) {
	err := Save(filepath.Join(t.TempDir(), "no-such-dir", "page.html"), []byte("x"))
	var ioe *IOError
	require.True(t, errors.As(err, &ioe))
	assert.Equal(t, "write", ioe.Op)
}
