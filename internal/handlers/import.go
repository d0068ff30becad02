package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"

	applog "kitchencost/internal/log"
	"kitchencost/internal/pricelist"
	"kitchencost/internal/views/pages"
)

// ImportForm renders the price list upload form.
func (h *Handler) ImportForm(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, http.StatusOK, pages.ImportPage(pages.ImportView{}))
}

// ImportPriceList upserts the ingredients of an uploaded CSV or PDF price list.
func (h *Handler) ImportPriceList(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, pricelist.MaxSize+(1<<20))
	if err := r.ParseMultipartForm(pricelist.MaxSize); err != nil {
		applog.Debug(r.Context(), "failed to parse price list upload", "error", err)
		h.importError(w, r, "Envie um arquivo CSV ou PDF de até 5 MB.")
		return
	}
	dryRun := r.FormValue("dry_run") != ""

	name, data, contentType, err := readUpload(r)
	if err != nil {
		applog.Debug(r.Context(), "price list upload read failed", "error", err)
		h.importError(w, r, "Não foi possível ler o arquivo enviado.")
		return
	}

	entries, problems, err := pricelist.Read(data, name, pricelist.Detect(name, contentType))
	if err != nil {
		applog.Debug(r.Context(), "price list could not be parsed", "error", err, "file", name)
		h.importError(w, r, "Não encontramos ingredientes nesse arquivo. Confira o cabeçalho (nome, quantidade, unidade, preco).")
		return
	}

	summary, err := pricelist.Apply(r.Context(), h.ingredients, entries, dryRun)
	if err != nil {
		h.fail(w, r, err, "import price list", "file", name)
		return
	}
	summary.Problems = append(problems, summary.Problems...)

	applog.Info(r.Context(), "price list imported",
		"file", name,
		"dryRun", dryRun,
		"parsed", summary.Parsed,
		"created", summary.Created,
		"updated", summary.Updated,
		"problems", len(summary.Problems),
	)
	h.renderPage(w, r, http.StatusOK, pages.ImportPage(pages.ImportView{
		FileName: name,
		DryRun:   dryRun,
		Summary:  &summary,
	}))
}

func (h *Handler) importError(w http.ResponseWriter, r *http.Request, message string) {
	h.renderPage(w, r, http.StatusUnprocessableEntity, pages.ImportPage(pages.ImportView{Error: message}))
}

func readUpload(r *http.Request) (string, []byte, string, error) {
	file, header, err := r.FormFile("price_list")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil, "", errors.New("no file uploaded")
		}
		return "", nil, "", err
	}
	defer file.Close()

	if header.Size > pricelist.MaxSize {
		return "", nil, "", fmt.Errorf("file exceeds %d bytes", pricelist.MaxSize)
	}

	buf := bytes.NewBuffer(make([]byte, 0, header.Size))
	if _, err := io.Copy(buf, file); err != nil {
		return "", nil, "", err
	}
	return header.Filename, buf.Bytes(), header.Header.Get("Content-Type"), nil
}
