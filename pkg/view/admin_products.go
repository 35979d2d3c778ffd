package view

type AdminSection struct {
	Slug   string `json:"slug"`
	Label  string `json:"label"`
	Active bool   `json:"active,omitempty"`
}

// AdminProductForm is one editable product card.
type AdminProductForm struct {
	ID           string `json:"id"`
	Action       string `json:"action"`
	Name         string `json:"nombre"`
	Price        string `json:"precio"`
	PriceDisplay string `json:"precio_formateado"`
	Description  string `json:"descripcion"`
	Category     string `json:"categoria"`
	ImageURL     string `json:"imagen,omitempty"`
}

type AdminProductsPage struct {
	Section  AdminSection       `json:"seccion"`
	Sections []AdminSection     `json:"secciones,omitempty"`
	Forms    []AdminProductForm `json:"productos"`
}
