// Package preview renders project sources into browser-ready documents.
package preview

import (
	"fmt"
	"html"
	"net/url"
	"strings"
)

type Code struct {
	HTML       string `json:"html"`
	CSS        string `json:"css"`
	JavaScript string `json:"javascript"`
}

// IsBlank is true when none of the three sources has non-whitespace content.
func (c Code) IsBlank() bool {
	return strings.TrimSpace(c.HTML) == "" &&
		strings.TrimSpace(c.CSS) == "" &&
		strings.TrimSpace(c.JavaScript) == ""
}

// Document inlines the three sources into a single HTML document. Sources
// are interpolated verbatim.
func Document(code Code) string {
	var b strings.Builder
	b.Grow(len(code.HTML) + len(code.CSS) + len(code.JavaScript) + 80)
	b.WriteString("<html><head><style>")
	b.WriteString(code.CSS)
	b.WriteString("</style></head><body>")
	b.WriteString(code.HTML)
	b.WriteString("<script>")
	b.WriteString(code.JavaScript)
	b.WriteString("</script></body></html>")
	return b.String()
}

// DataURI returns Document as a data: URL suitable for a sandboxed iframe src.
func DataURI(code Code) string {
	return "data:text/html;charset=utf-8," + url.PathEscape(Document(code))
}

// CompletePage wraps body in a standalone page that pulls styles.css and
// index.js from alongside it.
func CompletePage(title, body string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8" />
<meta name="viewport" content="width=device-width, initial-scale=1.0" />
<title>%s</title>
<link rel="stylesheet" href="./styles.css" />
</head>
<body>
%s
<script src="./index.js"></script>
</body>
</html>
`, html.EscapeString(title), body)
}
