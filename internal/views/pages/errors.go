package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"kitchencost/internal/views/components"
)

// NotFoundPage tells the user the requested record does not exist.
func NotFoundPage(message string) Page {
	return Page{Title: "Não encontrado", Content: messageContent("Não encontrado", message)}
}

// ServerErrorPage is shown when a request fails for reasons the user cannot fix.
func ServerErrorPage() Page {
	return Page{Title: "Erro", Content: messageContent("Algo deu errado", "Não foi possível concluir a operação. Tente novamente.")}
}

func messageContent(heading, message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := components.NewWriter(w)
		hw.Raw(`<h1>`)
		hw.Text(heading)
		hw.Raw(`</h1><p>`)
		hw.Text(message)
		hw.Raw(`</p><p><a href="/">Voltar</a></p>`)
		return hw.Err()
	})
}
