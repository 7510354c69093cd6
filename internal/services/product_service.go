package services

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"productapi/internal/apperrors"
	"productapi/internal/models"
	"productapi/internal/repositories"
)

// EventPublisher receives catalog change events.
type EventPublisher interface {
	PublishProductEvent(event models.ProductEvent) error
}

// ProductService handles business logic related to products.
//
// Every operation runs under mu, so concurrent requests observe the catalog as
// if they had been applied one at a time.
type ProductService struct {
	repo   repositories.ProductRepository
	events EventPublisher
	logger *slog.Logger
	mu     sync.RWMutex
	now    func() time.Time
}

// NewProductService creates a new ProductService. events may be nil, in which
// case no change events are published. A nil logger uses slog.Default.
func NewProductService(repo repositories.ProductRepository, events EventPublisher, logger *slog.Logger) *ProductService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProductService{
		repo:   repo,
		events: events,
		logger: logger,
		now:    time.Now,
	}
}

// AllProducts retrieves every product, unfiltered and unpaginated.
func (s *ProductService) AllProducts() ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot()
}

// ListProducts returns one page of the catalog filtered by category.
func (s *ProductService) ListProducts(q models.ListQuery) (models.ProductPage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products, err := s.snapshot()
	if err != nil {
		return models.ProductPage{}, err
	}
	return ListProducts(products, q), nil
}

// SearchProducts returns the products whose name contains name.
func (s *ProductService) SearchProducts(name string) ([]models.Product, error) {
	if name == "" {
		return nil, ErrSearchQueryRequired
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	products, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return SearchByName(products, name)
}

// ProductStats counts the catalog per category.
func (s *ProductService) ProductStats() (models.CategoryStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products, err := s.snapshot()
	if err != nil {
		return models.CategoryStats{}, err
	}
	return CategoryStats(products), nil
}

// GetProduct retrieves a single product by its ID.
func (s *ProductService) GetProduct(id string) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, translate(err, "get product")
	}
	return product, nil
}

// CreateProduct validates payload and stores it as a new product.
func (s *ProductService) CreateProduct(payload map[string]interface{}) (*models.Product, error) {
	draft, err := ValidateProductPayload(payload)
	if err != nil {
		return nil, err
	}

	product, err := s.write(func() (*models.Product, error) {
		return s.repo.Append(draft)
	})
	if err != nil {
		return nil, translate(err, "create product")
	}
	s.publish(models.EventProductCreated, *product)
	return product, nil
}

// UpdateProduct validates payload and replaces the mutable fields of product id.
// Validation runs before the lookup, so a bad payload is reported even for an unknown id.
func (s *ProductService) UpdateProduct(id string, payload map[string]interface{}) (*models.Product, error) {
	draft, err := ValidateProductPayload(payload)
	if err != nil {
		return nil, err
	}

	product, err := s.write(func() (*models.Product, error) {
		return s.repo.Replace(id, draft)
	})
	if err != nil {
		return nil, translate(err, "update product")
	}
	s.publish(models.EventProductUpdated, *product)
	return product, nil
}

// DeleteProduct removes product id and returns the removed record.
func (s *ProductService) DeleteProduct(id string) (*models.Product, error) {
	product, err := s.write(func() (*models.Product, error) {
		index, err := s.repo.FindIndex(id)
		if err != nil {
			return nil, err
		}
		return s.repo.RemoveAt(index)
	})
	if err != nil {
		return nil, translate(err, "delete product")
	}
	s.publish(models.EventProductDeleted, *product)
	return product, nil
}

func (s *ProductService) write(fn func() (*models.Product, error)) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn()
}

func (s *ProductService) snapshot() ([]models.Product, error) {
	products, err := s.repo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// publish is best effort: a broker failure never fails the request.
func (s *ProductService) publish(eventType string, product models.Product) {
	if s.events == nil {
		return
	}
	event := models.ProductEvent{Type: eventType, Product: product, OccurredAt: s.now().UTC()}
	if err := s.events.PublishProductEvent(event); err != nil {
		s.logger.Warn("failed to publish product event", "type", eventType, "product_id", product.ID, "error", err)
	}
}

func translate(err error, op string) error {
	if errors.Is(err, repositories.ErrProductNotFound) {
		return apperrors.NewNotFoundError("Product not found")
	}
	return fmt.Errorf("%s: %w", op, err)
}
