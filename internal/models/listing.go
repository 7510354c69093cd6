package models

// ListQuery carries the filter and pagination inputs of a product listing.
type ListQuery struct {
	Category string
	Page     int
	Limit    int
}

// ProductPage is one page of a filtered product listing.
type ProductPage struct {
	Page  int       `json:"page"`
	Limit int       `json:"limit"`
	Total int       `json:"total"` // size of the filtered set before slicing
	Data  []Product `json:"data"`
}
