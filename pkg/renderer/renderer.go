// Package renderer turns proposal markdown into styled HTML documents.
package renderer

import (
	"bytes"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"
)

// Renderer converts proposal markdown into a complete HTML document and
// writes it under the configured output directory.
type Renderer struct {
	md        goldmark.Markdown
	outputDir string
}

// New creates a Renderer writing documents under outputDir.
func New(outputDir string) *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.Table, extension.Strikethrough),
			goldmark.WithRendererOptions(htmlrenderer.WithHardWraps()),
		),
		outputDir: outputDir,
	}
}

// Render converts markdown to a standalone HTML document for the company.
func (r *Renderer) Render(markdown, companyName string) (string, error) {
	var body bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &body); err != nil {
		return "", eris.Wrap(err, "renderer: convert markdown")
	}

	doc := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Proposal for %s</title>
<style>
body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 48rem; margin: 2rem auto; }
h1, h2 { color: #1e3a8a; }
table { border-collapse: collapse; }
td, th { border: 1px solid #cbd5e1; padding: 0.4rem 0.8rem; }
</style>
</head>
<body>
%s</body>
</html>
`, html.EscapeString(companyName), body.String())

	return doc, nil
}

// RenderToFile renders the markdown and writes the document to a
// timestamped file. Returns the written path.
func (r *Renderer) RenderToFile(markdown, companyName string) (string, error) {
	doc, err := r.Render(markdown, companyName)
	if err != nil {
		return "", err
	}
	return r.WriteDocument(doc, companyName)
}

// WriteDocument writes an already rendered document to a timestamped file
// under the output directory. Returns the written path.
func (r *Renderer) WriteDocument(doc, companyName string) (string, error) {
	if err := os.MkdirAll(r.outputDir, 0o755); err != nil {
		return "", eris.Wrapf(err, "renderer: create output dir %s", r.outputDir)
	}

	name := fmt.Sprintf("proposal_%s_%s.html", safeName(companyName), time.Now().Format("20060102_150405"))
	path := filepath.Join(r.outputDir, name)
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return "", eris.Wrapf(err, "renderer: write %s", path)
	}
	return path, nil
}

func safeName(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
