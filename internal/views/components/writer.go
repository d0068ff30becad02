package components

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Writer accumulates markup and remembers the first write error so component
// bodies can be written without checking every call.
type Writer struct {
	w   io.Writer
	err error
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Raw writes trusted markup as is.
func (hw *Writer) Raw(markup string) {
	if hw.err != nil {
		return
	}
	_, hw.err = io.WriteString(hw.w, markup)
}

// Text writes escaped text.
func (hw *Writer) Text(value string) {
	hw.Raw(templ.EscapeString(value))
}

// Attr writes ` name="value"` with the value escaped.
func (hw *Writer) Attr(name, value string) {
	hw.Raw(" " + name + "=\"" + templ.EscapeString(value) + "\"")
}

// Render writes a nested component. A nil component writes nothing.
func (hw *Writer) Render(ctx context.Context, component templ.Component) {
	if hw.err != nil || component == nil {
		return
	}
	hw.err = component.Render(ctx, hw.w)
}

func (hw *Writer) Err() error {
	return hw.err
}
