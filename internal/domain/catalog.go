package domain

// Catalog entities: finished products, raw materials and bookable
// services offered by the store.

// Product is a finished handmade item offered for sale.
type Product struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	ImageURL    string  `json:"imageUrl,omitempty"`
	Visible     bool    `json:"visible"`
}

// RawMaterial is a supply item tracked for workshop and production use.
type RawMaterial struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Supplier string  `json:"supplier,omitempty"`
	Unit     string  `json:"unit"`
	Stock    int     `json:"stock"`
	MinStock int     `json:"minStock"`
	UnitCost float64 `json:"unitCost"`
}

// LowStock reports whether the material is at or below its minimum.
func (m RawMaterial) LowStock() bool {
	return m.Stock <= m.MinStock
}

// Service is a bookable offering such as repairs or custom fittings.
type Service struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	DurationMin int     `json:"durationMin"`
	Active      bool    `json:"active"`
}
