package discovery

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// readmeFile is the per-case documentation file consulted for titles.
const readmeFile = "README.md"

// Title returns the case's human-readable title for verbose listings.
// The descriptor name wins when present; otherwise the first level-1 heading
// of the case's README.md is used. Returns false when neither exists.
func Title(dir, descriptorName string) (string, bool) {
	if descriptorName != "" {
		return descriptorName, true
	}
	return readmeTitle(filepath.Join(dir, readmeFile))
}

// readmeTitle extracts the first level-1 heading from a Markdown file.
func readmeTitle(path string) (string, bool) {
	source, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(source))

	var title string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if heading, ok := n.(*ast.Heading); ok && heading.Level == 1 {
			title = extractText(heading, source)
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})

	title = strings.TrimSpace(title)
	return title, title != ""
}

// extractText extracts plain text from an AST node
func extractText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if text, ok := c.(*ast.Text); ok {
			buf.Write(text.Segment.Value(source))
		}
	}
	return buf.String()
}
