package gallery

const pageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}} - {{.Site}}</title>
<link rel="stylesheet" href="style.css">
<script src="https://cdn.jsdelivr.net/npm/mermaid@10/dist/mermaid.min.js"></script>
</head>
<body>
<header>
  <a href="index.html">{{.Site}}</a>
</header>
<main>
{{if not .IsIndex}}<nav><a href="index.html">&larr; All diagrams</a></nav>{{end}}
{{.Content}}
</main>
<script>mermaid.initialize({ startOnLoad: true });</script>
</body>
</html>
`

const cssContent = `body {
  font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", sans-serif;
  max-width: 960px;
  margin: 0 auto;
  padding: 1rem 2rem;
  color: #1f2937;
}
header {
  border-bottom: 1px solid #e5e7eb;
  padding-bottom: 0.75rem;
  margin-bottom: 1.5rem;
}
header a {
  font-weight: 600;
  font-size: 1.25rem;
  color: inherit;
  text-decoration: none;
}
nav { margin-bottom: 1rem; }
.mermaid { display: flex; justify-content: center; margin: 1.5rem 0; }
.diagram-list { list-style: none; padding: 0; }
.diagram-list li { padding: 0.75rem 0; border-bottom: 1px solid #f3f4f6; }
.diagram-list a { font-weight: 500; }
.diagram-list .type {
  font-size: 0.8rem;
  color: #6b7280;
  background: #f3f4f6;
  border-radius: 4px;
  padding: 0.1rem 0.5rem;
  margin-left: 0.5rem;
}
.diagram-list .favorite { color: #f59e0b; }
.diagram-list p { margin: 0.25rem 0 0; color: #6b7280; font-size: 0.9rem; }
pre {
  background: #f9fafb;
  border: 1px solid #e5e7eb;
  border-radius: 6px;
  padding: 1rem;
  overflow-x: auto;
}
`
