package models

// Product represents a product in the catalog.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	InStock     bool    `json:"inStock"`
}

// ProductDraft holds the mutable fields of a product, before an id is assigned.
type ProductDraft struct {
	Name        string
	Description string
	Price       float64
	Category    string
	InStock     bool
}

// NewProduct builds a product from a draft and an assigned id.
func NewProduct(id string, d ProductDraft) Product {
	p := Product{ID: id}
	p.Apply(d)
	return p
}

// Apply replaces the five mutable fields. The id is left untouched.
func (p *Product) Apply(d ProductDraft) {
	p.Name = d.Name
	p.Description = d.Description
	p.Price = d.Price
	p.Category = d.Category
	p.InStock = d.InStock
}
