package services

import (
	"strings"

	"productapi/internal/apperrors"
	"productapi/internal/models"
)

// Listing defaults applied when page or limit is not supplied.
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// ErrSearchQueryRequired is returned by SearchByName for an empty query.
var ErrSearchQueryRequired = &apperrors.ValidationError{
	Field:   "name",
	Message: "Search query 'name' is required",
}

// FilterByCategory keeps the products whose category equals category, ignoring case.
// An empty category keeps everything.
func FilterByCategory(products []models.Product, category string) []models.Product {
	if category == "" {
		return products
	}
	filtered := make([]models.Product, 0, len(products))
	for _, p := range products {
		if strings.EqualFold(p.Category, category) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// ListProducts filters by category and returns the requested page.
// Pages past the end, or a page or limit below one, produce an empty page.
// Negative values never count back from the end of the catalog.
func ListProducts(products []models.Product, q models.ListQuery) models.ProductPage {
	filtered := FilterByCategory(products, q.Category)
	page := models.ProductPage{
		Page:  q.Page,
		Limit: q.Limit,
		Total: len(filtered),
		Data:  []models.Product{},
	}
	if q.Page < 1 || q.Limit < 1 || q.Page-1 > len(filtered)/q.Limit {
		return page
	}

	start := (q.Page - 1) * q.Limit
	if start >= len(filtered) {
		return page
	}
	end := len(filtered)
	if q.Limit < end-start {
		end = start + q.Limit
	}
	page.Data = append(page.Data, filtered[start:end]...)
	return page
}

// SearchByName returns every product whose name contains name, ignoring case.
func SearchByName(products []models.Product, name string) ([]models.Product, error) {
	if name == "" {
		return nil, ErrSearchQueryRequired
	}
	needle := strings.ToLower(name)
	matches := make([]models.Product, 0)
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			matches = append(matches, p)
		}
	}
	return matches, nil
}

// CategoryStats counts products per lower-cased category, in first-seen order.
func CategoryStats(products []models.Product) models.CategoryStats {
	stats := models.CategoryStats{TotalProducts: len(products)}
	for _, p := range products {
		stats.CountByCategory.Inc(strings.ToLower(p.Category))
	}
	return stats
}
