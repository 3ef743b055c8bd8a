package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"
)

// RenderSVG serializes a measured Doc into a self-contained SVG document.
// Output is byte-identical for identical input: elements are emitted in
// plan order and no map iteration is involved.
func RenderSVG(doc Doc, opts Options) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		doc.Width, doc.Height, doc.Width, doc.Height)
	buf.WriteString("\n")

	fmt.Fprintf(&buf, `<style>
.heading { font: bold %dpx sans-serif; fill: #000000; }
.name { font: %dpx sans-serif; fill: %s; }
.minor { font: %dpx sans-serif; fill: %s; opacity: 0.8; }
</style>
`, opts.FontSize+2, opts.FontSize, opts.Theme.Text, opts.FontSize-2, opts.Theme.Text)

	for _, rect := range doc.Rects {
		fmt.Fprintf(&buf, `<rect x="%d" y="%d" width="%d" height="%d" fill="%s" stroke="#00000033"/>`,
			rect.X, rect.Y, rect.W, rect.H, rect.Fill)
		buf.WriteString("\n")
	}

	for _, text := range doc.Texts {
		fmt.Fprintf(&buf, `<text x="%d" y="%d" class="%s">%s</text>`,
			text.X, text.Y, text.Class, escapeText(text.Content))
		buf.WriteString("\n")
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func escapeText(s string) string {
	return textEscaper.Replace(s)
}

// Filename returns the download name for an export taken at t.
func Filename(t time.Time) string {
	return fmt.Sprintf("target-view-%s.svg", t.Format("2006-01-02"))
}
