package layout

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"kitchencost/internal/views/components"
)

const stylesheet = `body{font-family:system-ui,sans-serif;margin:0;background:#fafaf7;color:#222}
nav{display:flex;gap:1rem;padding:1rem 2rem;background:#2f3e46}
nav a{color:#cad2c5;text-decoration:none}nav a[data-state=active]{color:#fff;font-weight:600}
main{padding:1.5rem 2rem;max-width:60rem}
table{border-collapse:collapse;width:100%}th,td{text-align:left;padding:.4rem .6rem;border-bottom:1px solid #ddd}
td.num,th.num{text-align:right}
.field{display:block;margin-bottom:.8rem}.field span{display:block;font-size:.9rem}
.input{padding:.3rem;border:1px solid #bbb}.input-invalid{border-color:#b00020}
.field-error,.error-summary{color:#b00020}.flash{background:#e7f5e9;padding:.6rem 1rem;margin-bottom:1rem}`

// Layout wraps page content in the document shell with the navigation bar.
func Layout(title, active string, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := components.NewWriter(w)
		hw.Raw(`<!DOCTYPE html><html lang="pt-BR"><head><meta charset="utf-8">`)
		hw.Raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		hw.Raw(`<title>`)
		hw.Text(title)
		hw.Raw(`</title><style>`)
		hw.Raw(stylesheet)
		hw.Raw(`</style>`)
		hw.Raw(`<script src="https://unpkg.com/htmx.org@1.9.12" defer></script>`)
		hw.Raw(`</head><body><nav>`)
		for _, link := range NavLinks() {
			hw.Raw(`<a`)
			hw.Attr("href", link.Path)
			hw.Attr("data-state", linkState(link.Section, active))
			hw.Raw(`>`)
			hw.Text(link.Label)
			hw.Raw(`</a>`)
		}
		hw.Raw(`</nav><main id="content" hx-boost="true" hx-target="#content">`)
		hw.Render(ctx, content)
		hw.Raw(`</main></body></html>`)
		return hw.Err()
	})
}
