package pages

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"kitchencost/internal/pricelist"
	"kitchencost/internal/views/components"
	"kitchencost/internal/views/layout"
)

// ImportView is the price list upload screen, optionally with the outcome of
// the last upload.
type ImportView struct {
	FileName string
	DryRun   bool
	Error    string
	Summary  *pricelist.Summary
}

func ImportPage(view ImportView) Page {
	return Page{Title: "Importar preços", Section: layout.SectionImport, Content: importContent(view)}
}

func importContent(view ImportView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := components.NewWriter(w)
		hw.Raw(`<h1>Importar lista de preços</h1>`)
		hw.Render(ctx, components.FieldError(view.Error))
		if view.Summary != nil {
			hw.Render(ctx, importSummary(view))
		}
		hw.Raw(`<form method="post" action="/importar" enctype="multipart/form-data" hx-encoding="multipart/form-data">`)
		hw.Raw(`<label class="field"><span>Arquivo CSV ou PDF</span><input type="file" name="price_list" accept=".csv,.pdf,text/csv,application/pdf"></label>`)
		hw.Raw(`<label class="field"><input type="checkbox" name="dry_run" value="on"> Apenas conferir, sem gravar</label>`)
		hw.Raw(`<button type="submit">Importar</button></form>`)
		return hw.Err()
	})
}

func importSummary(view ImportView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		summary := view.Summary
		hw := components.NewWriter(w)
		hw.Raw(`<section class="import-summary"><h2>`)
		hw.Text(DefaultDash(view.FileName))
		hw.Raw(`</h2><p>`)
		if view.DryRun {
			hw.Text(fmt.Sprintf("%d linhas válidas. Nada foi gravado.", summary.Parsed))
		} else {
			hw.Text(fmt.Sprintf("%d criados, %d atualizados.", summary.Created, summary.Updated))
		}
		hw.Raw(`</p>`)
		if len(summary.Problems) > 0 {
			hw.Raw(`<ul class="field-error">`)
			for _, problem := range summary.Problems {
				hw.Raw(`<li>`)
				hw.Text(problem.Error())
				hw.Raw(`</li>`)
			}
			hw.Raw(`</ul>`)
		}
		hw.Raw(`</section>`)
		return hw.Err()
	})
}
