package components

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// Flash renders a dismissible notice. Empty messages render nothing.
func Flash(message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if message == "" {
			return nil
		}
		hw := NewWriter(w)
		hw.Raw(`<div class="flash" role="status">`)
		hw.Text(message)
		hw.Raw(`</div>`)
		return hw.Err()
	})
}

// FieldError renders the validation message attached to a form field.
func FieldError(message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if message == "" {
			return nil
		}
		hw := NewWriter(w)
		hw.Raw(`<p class="field-error">`)
		hw.Text(message)
		hw.Raw(`</p>`)
		return hw.Err()
	})
}

// InputField describes a labelled form input.
type InputField struct {
	Label string
	Name  string
	Type  string
	Value string
	Step  string
	Error string
}

func inputClass(hasError bool) string {
	if hasError {
		return "input input-invalid"
	}
	return "input"
}

// Input renders a label, an input and its validation message.
func Input(field InputField) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		kind := field.Type
		if kind == "" {
			kind = "text"
		}
		hw := NewWriter(w)
		hw.Raw(`<label class="field">`)
		hw.Raw(`<span>`)
		hw.Text(field.Label)
		hw.Raw(`</span><input`)
		hw.Attr("type", kind)
		hw.Attr("name", field.Name)
		hw.Attr("value", field.Value)
		if field.Step != "" {
			hw.Attr("step", field.Step)
		}
		hw.Attr("class", inputClass(field.Error != ""))
		hw.Raw(`>`)
		hw.Render(ctx, FieldError(field.Error))
		hw.Raw(`</label>`)
		return hw.Err()
	})
}

// ErrorSummary lists every field error above a form.
func ErrorSummary(errors map[string]string, order []string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if len(errors) == 0 {
			return nil
		}
		hw := NewWriter(w)
		hw.Raw(`<div class="error-summary" role="alert"><p>Corrija os campos destacados.</p><ul>`)
		for _, key := range order {
			message, ok := errors[key]
			if !ok {
				continue
			}
			hw.Raw(`<li>`)
			hw.Text(key + ": " + message)
			hw.Raw(`</li>`)
		}
		hw.Raw(`</ul></div>`)
		return hw.Err()
	})
}

// IDString formats a record id for use in paths and field names.
func IDString(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
