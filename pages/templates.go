package pages

import (
	"fmt"
	"html"
	"strings"

	"github.com/fbrnila/go-dms-dav/uc"
)

type indexPages struct{}

func New() uc.IndexRenderer {
	return indexPages{}
}

// Index renders a folder listing as a fixed-width table wrapped in <pre>,
// the way classic httpd autoindexes look.
func (indexPages) Index(path, parent string, entries []uc.DirEntry) string {
	var b strings.Builder

	title := html.EscapeString(path)
	b.WriteString(`<!DOCTYPE html>
<html>
<head><title>Index of ` + title + `</title></head>
<body>
<h1>Index of ` + title + `</h1>
<pre>      Size  Last modified        Filename
<hr>`)
	b.WriteString("\n")

	if parent != "" {
		fmt.Fprintf(&b, "%10s  %-19s  <a href=\"%s\">..</a>\n", "", "", html.EscapeString(parent))
	}
	for _, e := range entries {
		size := ""
		if e.Mime != "" {
			size = fmt.Sprintf("%d", e.Size)
		}
		fmt.Fprintf(&b, "%10s  %-19s  <a href=\"%s\">%s</a>\n",
			size, e.ModTime.Format("2006-01-02 15:04:05"), html.EscapeString(e.Href), html.EscapeString(e.Name))
	}

	b.WriteString(`<hr></pre>
</body>
</html>`)
	return b.String()
}
