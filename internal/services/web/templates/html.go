package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// on marks a boolean attribute that renders without a value.
const on = "\x00on"

// markup writes escaped HTML and keeps the first write error.
type markup struct {
	w   io.Writer
	err error
}

func (m *markup) raw(s string) {
	if m.err != nil {
		return
	}
	_, m.err = io.WriteString(m.w, s)
}

func (m *markup) text(s string) {
	m.raw(templ.EscapeString(s))
}

// open writes a start tag. attrs alternate name and value; empty values are
// skipped and on renders a bare attribute.
func (m *markup) open(tag string, attrs ...string) {
	m.raw("<" + tag)
	for idx := 0; idx+1 < len(attrs); idx += 2 {
		name, value := attrs[idx], attrs[idx+1]
		switch value {
		case "":
		case on:
			m.raw(" " + name)
		default:
			m.raw(" " + name + `="` + templ.EscapeString(value) + `"`)
		}
	}
	m.raw(">")
}

func (m *markup) close(tag string) {
	m.raw("</" + tag + ">")
}

// element writes a start tag, escaped text and the end tag.
func (m *markup) element(tag string, body string, attrs ...string) {
	m.open(tag, attrs...)
	m.text(body)
	m.close(tag)
}

func (m *markup) component(ctx context.Context, c templ.Component) {
	if m.err != nil || c == nil {
		return
	}
	m.err = c.Render(ctx, m.w)
}

// render adapts a markup-writing function to a templ component.
func render(fn func(ctx context.Context, m *markup)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := &markup{w: w}
		fn(ctx, m)
		return m.err
	})
}

func attrIf(cond bool) string {
	if cond {
		return on
	}
	return ""
}
