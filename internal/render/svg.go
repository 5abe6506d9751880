// Package render builds the SVG output: a shared document builder (defs
// block, deterministic group ordering, text wrapping) plus one renderer
// per diagram family.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/probelabs/mermaid-lint/internal/layout"
)

// Doc accumulates SVG markup: an append-only buffer with indent tracking,
// every byte synthesized from laid-out geometry.
type Doc struct {
	buf    strings.Builder
	indent int
}

func NewDoc() *Doc { return &Doc{} }

func (d *Doc) String() string { return d.buf.String() }

func (d *Doc) writeIndent() {
	for i := 0; i < d.indent; i++ {
		d.buf.WriteString("  ")
	}
}

// Open writes the SVG root element's opening tag.
func (d *Doc) Open(width, height float64) {
	d.buf.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 `)
	d.buf.WriteString(ftoa(width))
	d.buf.WriteByte(' ')
	d.buf.WriteString(ftoa(height))
	d.buf.WriteString(`" width="`)
	d.buf.WriteString(ftoa(width))
	d.buf.WriteString(`" height="`)
	d.buf.WriteString(ftoa(height))
	d.buf.WriteString("\">\n")
	d.indent++
}

// Close writes the SVG root element's closing tag.
func (d *Doc) Close() {
	d.indent--
	d.buf.WriteString("</svg>\n")
}

// Group opens a <g> with the given class attribute, runs body, then
// closes it; the ordered top-level groups (defs, clusters, edges, nodes)
// are built from this.
func (d *Doc) Group(class string, body func()) {
	d.writeIndent()
	d.buf.WriteString(`<g class="` + escape(class) + "\">\n")
	d.indent++
	body()
	d.indent--
	d.writeIndent()
	d.buf.WriteString("</g>\n")
}

// Elem writes a self-closing element with the given tag and attributes,
// in the order given (SVG attribute order is visually inert but
// deterministic output matters for diffable test fixtures).
func (d *Doc) Elem(tag string, attrs ...Attr) {
	d.writeIndent()
	d.buf.WriteString("<" + tag)
	for _, a := range attrs {
		d.buf.WriteString(" " + a.Name + "=\"" + escape(a.Value) + "\"")
	}
	d.buf.WriteString("/>\n")
}

// Text writes a <text> element with body content.
func (d *Doc) Text(content string, attrs ...Attr) {
	d.writeIndent()
	d.buf.WriteString("<text")
	for _, a := range attrs {
		d.buf.WriteString(" " + a.Name + "=\"" + escape(a.Value) + "\"")
	}
	d.buf.WriteString(">" + escape(content) + "</text>\n")
}

// Raw writes a pre-built element verbatim (used for the <defs> blocks,
// whose markers are written as literal strings in markers.go and
// classstate.go).
func (d *Doc) Raw(s string) {
	d.writeIndent()
	d.buf.WriteString(s)
	d.buf.WriteByte('\n')
}

// Attr is one XML attribute.
type Attr struct{ Name, Value string }

func A(name string, value string) Attr { return Attr{name, value} }
func AF(name string, value float64) Attr {
	return Attr{name, ftoa(value)}
}

func ftoa(f float64) string { return strconv.FormatFloat(f, 'f', 2, 64) }

func escape(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
	)
	return r.Replace(s)
}

// PathPoints builds an SVG path "d" attribute from a polyline: "M x y L x
// y L x y ...".
func PathPoints(points []layout.Point) string {
	if len(points) == 0 {
		return ""
	}
	var b strings.Builder
	for i, p := range points {
		if i == 0 {
			b.WriteString("M ")
		} else {
			b.WriteString(" L ")
		}
		fmt.Fprintf(&b, "%s %s", ftoa(p.X), ftoa(p.Y))
	}
	return b.String()
}
