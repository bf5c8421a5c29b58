// Package templates holds the HTML views, written against templ's
// Component interface so handlers render them the same way they would
// render generated templ code.
package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// writer accumulates the first write error so view code can emit markup
// without checking every call.
type writer struct {
	w   io.Writer
	err error
}

func (w *writer) raw(parts ...string) {
	for _, p := range parts {
		if w.err != nil {
			return
		}
		_, w.err = io.WriteString(w.w, p)
	}
}

// text writes s HTML-escaped. It is also safe inside quoted attributes.
func (w *writer) text(s string) {
	w.raw(templ.EscapeString(s))
}

func (w *writer) render(ctx context.Context, c templ.Component) {
	if w.err != nil || c == nil {
		return
	}
	w.err = c.Render(ctx, w.w)
}

func component(fn func(ctx context.Context, w *writer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		fn(ctx, w)
		return w.err
	})
}

// attr renders ` name="value"` with value escaped.
func attr(name, value string) string {
	return " " + name + `="` + templ.EscapeString(value) + `"`
}

// selectedIf returns the selected attribute when cond holds.
func selectedIf(cond bool) string {
	if cond {
		return " selected"
	}
	return ""
}
