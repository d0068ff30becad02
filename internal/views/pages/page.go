// Package pages holds the server-rendered screens. Each constructor returns a
// Page whose Content can be served alone to htmx requests or wrapped in the
// layout for full document loads.
package pages

import (
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"kitchencost/internal/costing"
	"kitchencost/internal/views/layout"
)

// Page couples a screen's content with the document metadata the layout needs.
type Page struct {
	Title   string
	Section string
	Content templ.Component
}

// Document renders the page inside the full layout.
func (p Page) Document() templ.Component {
	return layout.Layout(p.Title, p.Section, p.Content)
}

// DefaultDash returns a dash when the provided value is empty or whitespace.
func DefaultDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

// FormatQuantity renders a quantity without trailing zeros.
func FormatQuantity(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// Money renders a cost in reais with two decimals.
func Money(value float64) string {
	return "R$ " + costing.Format(value)
}
