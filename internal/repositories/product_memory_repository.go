package repositories

import (
	"fmt"
	"sync"

	"productapi/internal/models"
)

// MemoryProductRepository is an in-memory implementation of ProductRepository.
type MemoryProductRepository struct {
	products []models.Product
	nextID   IDGenerator
	mu       sync.RWMutex
}

// NewMemoryProductRepository creates a new instance of MemoryProductRepository.
// A nil generator falls back to SequentialIDs.
func NewMemoryProductRepository(nextID IDGenerator) *MemoryProductRepository {
	if nextID == nil {
		nextID = SequentialIDs
	}
	return &MemoryProductRepository{
		products: make([]models.Product, 0),
		nextID:   nextID,
	}
}

// GetAll returns a copy of all products in insertion order.
func (r *MemoryProductRepository) GetAll() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, len(r.products))
	copy(productList, r.products)
	return productList, nil
}

// GetByID returns a product by its ID.
func (r *MemoryProductRepository) GetByID(id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("product with ID %s: %w", id, ErrProductNotFound)
	}
	product := r.products[i]
	return &product, nil
}

// FindIndex returns the position of the product with the given ID.
func (r *MemoryProductRepository) FindIndex(id string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return -1, fmt.Errorf("product with ID %s: %w", id, ErrProductNotFound)
	}
	return i, nil
}

// Append stores a new product and assigns its ID.
func (r *MemoryProductRepository) Append(draft models.ProductDraft) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextID(len(r.products), func(id string) bool { return r.indexOf(id) >= 0 })
	product := models.NewProduct(id, draft)
	r.products = append(r.products, product)
	return &product, nil
}

// Replace overwrites the mutable fields of an existing product in place.
func (r *MemoryProductRepository) Replace(id string, draft models.ProductDraft) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("product with ID %s not updated: %w", id, ErrProductNotFound)
	}
	r.products[i].Apply(draft)
	product := r.products[i]
	return &product, nil
}

// RemoveAt deletes the product at index and returns it.
func (r *MemoryProductRepository) RemoveAt(index int) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if index < 0 || index >= len(r.products) {
		return nil, fmt.Errorf("product at index %d: %w", index, ErrProductNotFound)
	}
	removed := r.products[index]
	r.products = append(r.products[:index], r.products[index+1:]...)
	return &removed, nil
}

// Count returns the number of stored products.
func (r *MemoryProductRepository) Count() (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.products), nil
}

// indexOf must be called with r.mu held.
func (r *MemoryProductRepository) indexOf(id string) int {
	for i := range r.products {
		if r.products[i].ID == id {
			return i
		}
	}
	return -1
}
