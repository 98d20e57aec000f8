// Package base holds the small HTML helpers shared by the components.
package base

import (
	"context"
	"io"
	"strings"

	twmerge "github.com/Oudwins/tailwind-merge-go"
	"github.com/a-h/templ"
)

// Classes merges tailwind classes. Later classes win over conflicting earlier ones.
func Classes(classes ...string) string {
	return twmerge.Merge(strings.Join(classes, " "))
}

// Writer writes HTML and remembers the first error, so components can write
// unconditionally and check once at the end.
type Writer struct {
	w   io.Writer
	err error
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Raw writes trusted markup.
func (w *Writer) Raw(parts ...string) {
	for _, p := range parts {
		if w.err != nil {
			return
		}
		_, w.err = io.WriteString(w.w, p)
	}
}

// Text writes escaped text.
func (w *Writer) Text(s string) {
	w.Raw(templ.EscapeString(s))
}

// Attr writes ` name="value"` with the value escaped.
func (w *Writer) Attr(name, value string) {
	w.Raw(" ", name, `="`, templ.EscapeString(value), `"`)
}

// AttrIf writes a boolean attribute when cond holds.
func (w *Writer) AttrIf(cond bool, name string) {
	if cond {
		w.Raw(" ", name)
	}
}

// Open writes `<tag class="..."`, leaving the tag open for more attributes.
func (w *Writer) Open(tag string, classes ...string) {
	w.Raw("<", tag)
	if len(classes) > 0 {
		w.Attr("class", Classes(classes...))
	}
}

func (w *Writer) Render(ctx context.Context, c templ.Component) {
	if w.err != nil || c == nil {
		return
	}
	w.err = c.Render(ctx, w.w)
}

func (w *Writer) Err() error {
	return w.err
}
