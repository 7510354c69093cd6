package repositories

import (
	"errors"

	"productapi/internal/models"
)

// ErrProductNotFound is returned when no product matches the requested id or index.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines the interface for product data access.
// Implementations keep products in insertion order and are safe for concurrent use.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	FindIndex(id string) (int, error)
	Append(draft models.ProductDraft) (*models.Product, error)
	Replace(id string, draft models.ProductDraft) (*models.Product, error)
	RemoveAt(index int) (*models.Product, error)
	Count() (int, error)
}
