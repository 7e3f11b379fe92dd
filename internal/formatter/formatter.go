// package formatter renders imported posts as plain text, Markdown or HTML
package formatter

import (
	"bytes"
	"fmt"
	stdhtml "html"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/desertthunder/postsync/internal/models"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// RenderHTML converts a markdown body to HTML. Raw HTML in the source is omitted.
func RenderHTML(body string) ([]byte, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(body), &buf); err != nil {
		return nil, fmt.Errorf("failed to render markdown: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportToText lists posts one per line as "created_at  url  title".
func ExportToText(posts []models.PostDetail) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Posts: %d\n\n", len(posts)))
	for _, p := range posts {
		draft := ""
		if isDraft(p.Draft) {
			draft = " (draft)"
		}
		buf.WriteString(fmt.Sprintf("%s  %s  %s%s\n", p.CreatedAt, p.URL, p.Title, draft))
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown renders a single post with a metadata header followed by its body.
func ExportToMarkdown(p models.PostDetail) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", p.Title))
	buf.WriteString(fmt.Sprintf("**URL**: %s\n", p.URL))
	buf.WriteString(fmt.Sprintf("**Author**: %s\n", p.Author))
	buf.WriteString(fmt.Sprintf("**Date**: %s\n", p.CreatedAt))
	buf.WriteString(fmt.Sprintf("**Draft**: %s\n", p.Draft))

	if len(p.Categories) > 0 {
		buf.WriteString(fmt.Sprintf("**Categories**: %s\n", strings.Join(p.Categories, ", ")))
	}
	if len(p.Tags) > 0 {
		buf.WriteString(fmt.Sprintf("**Tags**: %s\n", strings.Join(p.Tags, ", ")))
	}

	if p.Content != "" {
		buf.WriteString("\n")
		buf.WriteString(p.Content)
		if !strings.HasSuffix(p.Content, "\n") {
			buf.WriteString("\n")
		}
	}

	return buf.Bytes(), nil
}

// ExportToHTML renders a single post as an HTML fragment with the title as a heading.
func ExportToHTML(p models.PostDetail) ([]byte, error) {
	body, err := RenderHTML(p.Content)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("<article data-url=\"%s\">\n", stdhtml.EscapeString(p.URL)))
	buf.WriteString(fmt.Sprintf("<h1>%s</h1>\n", stdhtml.EscapeString(p.Title)))
	buf.Write(body)
	buf.WriteString("</article>\n")
	return buf.Bytes(), nil
}

// ExportTerms renders category or tag counts as a Markdown section.
func ExportTerms(heading string, terms []models.Term) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("## %s (%d)\n\n", heading, len(terms)))
	for _, term := range terms {
		buf.WriteString(fmt.Sprintf("- %s (%d)\n", term.Name, term.Posts))
	}
	buf.WriteString("\n")

	return buf.Bytes()
}

// WriteHTMLExport writes a rendered post to path.
func WriteHTMLExport(p models.PostDetail, path string) error {
	data, err := ExportToHTML(p)
	if err != nil {
		return fmt.Errorf("failed to generate HTML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write HTML file: %w", err)
	}
	return nil
}

func isDraft(v string) bool {
	p := models.NewPost("", "", "", v, "", "")
	return p.IsDraft()
}
