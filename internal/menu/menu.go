package menu

// Item is one navigation entry. The backend returns a small tree; leaf
// items carry a route, group items carry children.
type Item struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Route    string `json:"route,omitempty"`
	Icon     string `json:"icon,omitempty"`
	Children []Item `json:"children,omitempty"`
}

// Menu is the full navigation structure.
type Menu struct {
	Items []Item `json:"items"`
}

// Fallback returns the hardcoded menu used whenever the remote menu
// cannot be fetched. It covers every resource the admin surface knows
// about, so a dead menu endpoint never strands the user.
func Fallback() Menu {
	return Menu{Items: []Item{
		{ID: "agence", Label: "Agences", Route: "/agence"},
		{ID: "tcc", Label: "Teneurs de Comptes", Route: "/tcc"},
		{ID: "client", Label: "Clients", Route: "/client"},
		{ID: "iob", Label: "IOB", Route: "/iob"},
		{
			ID:    "referentiel",
			Label: "Référentiel",
			Children: []Item{
				{ID: "financial-institution", Label: "Institutions Financières", Route: "/financial-institution"},
				{ID: "issuer", Label: "Émetteurs", Route: "/issuer"},
			},
		},
	}}
}
