package components

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Writer emits markup and keeps the first write error; later writes are skipped
type Writer struct {
	w   io.Writer
	err error
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Raw writes trusted markup as is
func (w *Writer) Raw(parts ...string) {
	for _, p := range parts {
		if w.err != nil {
			return
		}
		_, w.err = io.WriteString(w.w, p)
	}
}

// Text writes escaped text content
func (w *Writer) Text(s string) {
	w.Raw(templ.EscapeString(s))
}

// Attr writes ` name="value"` with the value escaped
func (w *Writer) Attr(name, value string) {
	w.Raw(" ", name, `="`, templ.EscapeString(value), `"`)
}

// URLAttr writes an href-like attribute, replacing unsafe schemes
func (w *Writer) URLAttr(name, url string) {
	w.Attr(name, string(templ.URL(url)))
}

// BoolAttr writes a valueless attribute when on is true
func (w *Writer) BoolAttr(name string, on bool) {
	if on {
		w.Raw(" ", name)
	}
}

// Component renders a nested component into the same output
func (w *Writer) Component(ctx context.Context, c templ.Component) {
	if w.err != nil || c == nil {
		return
	}
	w.err = c.Render(ctx, w.w)
}

func (w *Writer) Err() error {
	return w.err
}
