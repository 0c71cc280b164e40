package renderer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	r := New(t.TempDir())

	doc, err := r.Render("# Proposal\n\nWe recommend **phased delivery**.", "Acme Robotics")
	require.NoError(t, err)

	assert.Contains(t, doc, "<title>Proposal for Acme Robotics</title>")
	assert.Contains(t, doc, "<h1")
	assert.Contains(t, doc, "<strong>phased delivery</strong>")
}

func TestRenderEscapesCompanyName(t *testing.T) {
	r := New(t.TempDir())

	doc, err := r.Render("body", `<script>"Acme"</script>`)
	require.NoError(t, err)
	assert.NotContains(t, doc, "<title>Proposal for <script>")
}

func TestWriteDocument(t *testing.T) {
	dir := t.TempDir()
	r := New(filepath.Join(dir, "proposals"))

	doc, err := r.Render("# Hello", "Acme")
	require.NoError(t, err)

	path, err := r.WriteDocument(doc, "Acme")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, doc, string(data), "the file carries the document verbatim")
}

func TestWriteDocumentBlockedOutputDir(t *testing.T) {
	dir := t.TempDir()
	blocked := filepath.Join(dir, "proposals")
	require.NoError(t, os.WriteFile(blocked, []byte("not a directory"), 0o644))

	r := New(blocked)
	_, err := r.WriteDocument("<html></html>", "Acme")
	require.Error(t, err)
}

func TestRenderToFile(t *testing.T) {
	dir := t.TempDir()
	r := New(filepath.Join(dir, "proposals"))

	path, err := r.RenderToFile("# Hello", "Acme & Sons")
	require.NoError(t, err)

	assert.Contains(t, filepath.Base(path), "proposal_Acme___Sons_")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<h1")
}
