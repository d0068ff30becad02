package layout

import "sort"

// Section identifiers used to highlight the active navigation entry.
const (
	SectionIngredients = "ingredients"
	SectionRecipes     = "recipes"
	SectionImport      = "import"
)

// NavLink is one entry of the top navigation bar.
type NavLink struct {
	Label   string
	Path    string
	Section string
	order   int
}

var navRegistry = map[string]NavLink{
	"/":                  {Label: "Ingredientes", Path: "/", Section: SectionIngredients, order: 1},
	"/cadastro":          {Label: "Cadastrar ingrediente", Path: "/cadastro", Section: SectionIngredients, order: 2},
	"/receitas":          {Label: "Receitas", Path: "/receitas", Section: SectionRecipes, order: 3},
	"/cadastrar_receita": {Label: "Cadastrar receita", Path: "/cadastrar_receita", Section: SectionRecipes, order: 4},
	"/importar":          {Label: "Importar preços", Path: "/importar", Section: SectionImport, order: 5},
}

// NavLinks returns the navigation entries in display order.
func NavLinks() []NavLink {
	links := make([]NavLink, 0, len(navRegistry))
	for _, link := range navRegistry {
		links = append(links, link)
	}
	sort.Slice(links, func(i, j int) bool {
		return links[i].order < links[j].order
	})
	return links
}

func linkState(section, active string) string {
	if section == active {
		return "active"
	}
	return "inactive"
}
