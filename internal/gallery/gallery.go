// Package gallery exports a diagram collection as a static HTML site:
// an index page plus one page per diagram, rendered with Mermaid in
// the browser.
package gallery

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/mermaidkeep/mermaidkeep/internal/diagram"
)

// Generator writes the static gallery site.
type Generator struct {
	OutputDir string
	Title     string
}

// NewGenerator creates a Generator. Title defaults to "Diagram Gallery".
func NewGenerator(outputDir, title string) *Generator {
	if title == "" {
		title = "Diagram Gallery"
	}
	return &Generator{OutputDir: outputDir, Title: title}
}

// Generate builds the site for the given diagrams. Returns the number
// of diagram pages written.
func (g *Generator) Generate(diagrams []diagram.Diagram) (int, error) {
	if len(diagrams) == 0 {
		return 0, fmt.Errorf("no diagrams to export")
	}

	if err := os.MkdirAll(g.OutputDir, 0o755); err != nil {
		return 0, fmt.Errorf("creating output dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(g.OutputDir, "style.css"), []byte(cssContent), 0o644); err != nil {
		return 0, err
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)

	tmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return 0, fmt.Errorf("parsing page template: %w", err)
	}

	for _, d := range diagrams {
		if err := g.renderDiagramPage(md, tmpl, d); err != nil {
			return 0, fmt.Errorf("rendering %s: %w", d.ID, err)
		}
	}

	if err := g.renderIndex(tmpl, diagrams); err != nil {
		return 0, fmt.Errorf("rendering index: %w", err)
	}

	return len(diagrams), nil
}

// pageData holds the data passed to the HTML template for each page.
type pageData struct {
	Title   string
	Site    string
	Content template.HTML
	IsIndex bool
}

func (g *Generator) renderDiagramPage(md goldmark.Markdown, tmpl *template.Template, d diagram.Diagram) error {
	var doc strings.Builder
	fmt.Fprintf(&doc, "# %s\n\n", d.Title)
	if d.Description != "" {
		fmt.Fprintf(&doc, "%s\n\n", d.Description)
	}
	fmt.Fprintf(&doc, "**Type:** %s", d.Type.DisplayName())
	if len(d.Tags) > 0 {
		fmt.Fprintf(&doc, " | **Tags:** %s", strings.Join(d.Tags, ", "))
	}
	fmt.Fprintf(&doc, " | **Updated:** %s\n\n", d.UpdatedAt.Format("Jan 2, 2006"))
	fmt.Fprintf(&doc, "```mermaid\n%s\n```\n\n", d.Code)
	fmt.Fprintf(&doc, "## Source\n\n```\n%s\n```\n", d.Code)

	var htmlBuf bytes.Buffer
	if err := md.Convert([]byte(doc.String()), &htmlBuf); err != nil {
		return fmt.Errorf("converting markdown: %w", err)
	}

	content := postProcessMermaid(htmlBuf.String())

	return g.writePage(tmpl, pageFileName(d), pageData{
		Title:   d.Title,
		Site:    g.Title,
		Content: template.HTML(content),
	})
}

func (g *Generator) renderIndex(tmpl *template.Template, diagrams []diagram.Diagram) error {
	var b strings.Builder
	b.WriteString(`<ul class="diagram-list">`)
	for _, d := range diagrams {
		fmt.Fprintf(&b, `<li><a href="%s">%s</a> <span class="type">%s</span>`,
			pageFileName(d), template.HTMLEscapeString(d.Title), d.Type.DisplayName())
		if d.IsFavorite {
			b.WriteString(` <span class="favorite">&#9733;</span>`)
		}
		if d.Description != "" {
			fmt.Fprintf(&b, `<p>%s</p>`, template.HTMLEscapeString(d.Description))
		}
		b.WriteString("</li>")
	}
	b.WriteString("</ul>")

	return g.writePage(tmpl, "index.html", pageData{
		Title:   g.Title,
		Site:    g.Title,
		Content: template.HTML(b.String()),
		IsIndex: true,
	})
}

func (g *Generator) writePage(tmpl *template.Template, name string, data pageData) error {
	f, err := os.Create(filepath.Join(g.OutputDir, name))
	if err != nil {
		return err
	}
	defer f.Close()
	return tmpl.Execute(f, data)
}

// pageFileName derives a stable file name from the diagram id.
func pageFileName(d diagram.Diagram) string {
	return "diagram-" + d.ID + ".html"
}

// postProcessMermaid converts rendered mermaid code blocks into divs
// the Mermaid runtime picks up.
func postProcessMermaid(html string) string {
	const openTag = `<pre><code class="language-mermaid">`
	const closeTag = `</code></pre>`

	for {
		idx := strings.Index(html, openTag)
		if idx == -1 {
			break
		}
		endIdx := strings.Index(html[idx:], closeTag)
		if endIdx == -1 {
			break
		}
		endIdx += idx

		mermaidContent := html[idx+len(openTag) : endIdx]
		replacement := `<div class="mermaid">` + mermaidContent + `</div>`
		html = html[:idx] + replacement + html[endIdx+len(closeTag):]
	}

	return html
}
