// Package pricelist reads supplier price lists (CSV exports or PDF
// catalogues) into ingredient inputs and applies them to the ingredient store.
package pricelist

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"

	"kitchencost/internal/store"
)

// Format names a price list encoding.
type Format string

const (
	FormatAuto Format = "auto"
	FormatCSV  Format = "csv"
	FormatPDF  Format = "pdf"
)

// MaxSize bounds the price lists accepted over HTTP.
const MaxSize = 5 << 20

var (
	// ErrEmpty is returned when a price list has no header or no rows.
	ErrEmpty = errors.New("pricelist: no entries found")

	textLinePattern = regexp.MustCompile(`^\s*(.+?)\s+([0-9][0-9.,]*)\s*([A-Za-zµ]+)\s+(?:R\$\s*)?([0-9][0-9.,]*)\s*$`)
	spacePattern    = regexp.MustCompile(`\s+`)
)

// Entry is one parsed price list row. Line is 1-based in the source.
type Entry struct {
	Line  int
	Input store.IngredientInput
}

// Problem reports a row that could not be parsed.
type Problem struct {
	Line int
	Err  error
}

func (p Problem) Error() string {
	return fmt.Sprintf("line %d: %v", p.Line, p.Err)
}

// ParseFormat validates a user supplied format name.
func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case "", FormatAuto:
		return FormatAuto, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatPDF:
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("unknown price list format %q (want auto, csv or pdf)", value)
	}
}

// Detect resolves FormatAuto from a file name and an optional content type.
func Detect(name, contentType string) Format {
	if strings.Contains(strings.ToLower(contentType), "pdf") || strings.EqualFold(filepath.Ext(name), ".pdf") {
		return FormatPDF
	}
	return FormatCSV
}

// Read parses data in the given format. FormatAuto is resolved from name.
func Read(data []byte, name string, format Format) ([]Entry, []Problem, error) {
	if format == FormatAuto || format == "" {
		format = Detect(name, "")
	}
	switch format {
	case FormatPDF:
		return ReadPDF(data)
	case FormatCSV:
		return ReadCSV(bytes.NewReader(data))
	default:
		return nil, nil, fmt.Errorf("unsupported price list format %q", format)
	}
}

var headerAliases = map[string]string{
	"name":           "name",
	"nome":           "name",
	"ingredient":     "name",
	"ingrediente":    "name",
	"quantity":       "quantity",
	"quantidade":     "quantity",
	"qtd":            "quantity",
	"unit":           "unit",
	"unidade":        "unit",
	"un":             "unit",
	"unit_price":     "unit_price",
	"price":          "unit_price",
	"preco":          "unit_price",
	"preço":          "unit_price",
	"preco_unitario": "unit_price",
	"preço_unitário": "unit_price",
	"preco_unitário": "unit_price",
	"valor_unitario": "unit_price",
}

func canonicalHeader(value string) string {
	key := strings.ToLower(strings.TrimSpace(value))
	key = strings.TrimPrefix(key, "\ufeff")
	key = spacePattern.ReplaceAllString(key, "_")
	key = strings.ReplaceAll(key, "-", "_")
	return headerAliases[key]
}

// ReadCSV parses a price list with a header row naming the name, quantity,
// unit and unit price columns in English or Portuguese. Semicolon separated
// files and decimal commas are accepted.
func ReadCSV(r io.Reader) ([]Entry, []Problem, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("read csv: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffDelimiter(data)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil, ErrEmpty
	}

	columns := make(map[string]int, 4)
	for idx, header := range rows[0] {
		if key := canonicalHeader(header); key != "" {
			if _, seen := columns[key]; !seen {
				columns[key] = idx
			}
		}
	}
	var missing []string
	for _, key := range []string{"name", "quantity", "unit", "unit_price"} {
		if _, ok := columns[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, nil, fmt.Errorf("csv header is missing columns: %s", strings.Join(missing, ", "))
	}

	var (
		entries  []Entry
		problems []Problem
	)
	for idx, row := range rows[1:] {
		line := idx + 2
		if blankRow(row) {
			continue
		}
		field := func(key string) string {
			if col := columns[key]; col < len(row) {
				return row[col]
			}
			return ""
		}
		input, err := store.ParseIngredientInput(field("name"), NormalizeNumber(field("quantity")), field("unit"), NormalizeNumber(field("unit_price")))
		if err != nil {
			problems = append(problems, Problem{Line: line, Err: err})
			continue
		}
		entries = append(entries, Entry{Line: line, Input: input})
	}
	if len(entries) == 0 && len(problems) == 0 {
		return nil, nil, ErrEmpty
	}
	return entries, problems, nil
}

func sniffDelimiter(data []byte) rune {
	first, _, _ := bytes.Cut(data, []byte("\n"))
	if bytes.Count(first, []byte(";")) > bytes.Count(first, []byte(",")) {
		return ';'
	}
	return ','
}

func blankRow(row []string) bool {
	for _, value := range row {
		if strings.TrimSpace(value) != "" {
			return false
		}
	}
	return true
}

// NormalizeNumber rewrites "1.234,56", "0,01" and "R$ 3,50" style amounts into
// the dotted form strconv understands. The last separator present is taken as
// the decimal point.
func NormalizeNumber(raw string) string {
	value := strings.TrimSpace(raw)
	value = strings.TrimPrefix(value, "R$")
	value = strings.ReplaceAll(value, " ", "")
	comma := strings.LastIndex(value, ",")
	dot := strings.LastIndex(value, ".")
	switch {
	case comma >= 0 && dot >= 0 && comma > dot:
		value = strings.ReplaceAll(value, ".", "")
		value = strings.Replace(value, ",", ".", 1)
	case comma >= 0 && dot >= 0:
		value = strings.ReplaceAll(value, ",", "")
	case comma >= 0:
		value = strings.ReplaceAll(value, ",", ".")
	}
	return value
}

// ReadPDF extracts the text of every page and parses it with ParseText.
func ReadPDF(data []byte) ([]Entry, []Problem, error) {
	text, err := ExtractPDFText(data)
	if err != nil {
		return nil, nil, err
	}
	entries, problems := ParseText(text)
	if len(entries) == 0 && len(problems) == 0 {
		return nil, nil, ErrEmpty
	}
	return entries, problems, nil
}

func ExtractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	var builder strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("read pdf page %d: %w", i, err)
		}
		builder.WriteString(text)
		builder.WriteString("\n")
	}
	return builder.String(), nil
}

// ParseText reads catalogue lines shaped like "Farinha de trigo 1000 g R$ 0,01".
// Lines that do not look like a price entry are ignored.
func ParseText(text string) ([]Entry, []Problem) {
	var (
		entries  []Entry
		problems []Problem
	)
	for idx, raw := range strings.Split(text, "\n") {
		match := textLinePattern.FindStringSubmatch(raw)
		if match == nil {
			continue
		}
		input, err := store.ParseIngredientInput(match[1], NormalizeNumber(match[2]), match[3], NormalizeNumber(match[4]))
		if err != nil {
			problems = append(problems, Problem{Line: idx + 1, Err: err})
			continue
		}
		entries = append(entries, Entry{Line: idx + 1, Input: input})
	}
	return entries, problems
}
