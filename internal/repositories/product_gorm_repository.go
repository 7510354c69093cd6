package repositories

import (
	"errors"
	"fmt"

	"productapi/internal/models"

	"gorm.io/gorm"
)

// productRecord is the table layout behind GORMProductRepository.
// Seq preserves insertion order; ProductID is the public id.
type productRecord struct {
	Seq         uint    `gorm:"primaryKey;autoIncrement"`
	ProductID   string  `gorm:"column:product_id;type:varchar(36);uniqueIndex;not null"`
	Name        string  `gorm:"not null"`
	Description string  `gorm:"not null"`
	Price       float64 `gorm:"not null"`
	Category    string  `gorm:"index;not null"`
	InStock     bool    `gorm:"not null"`
}

func (productRecord) TableName() string { return "products" }

func (rec productRecord) toModel() models.Product {
	return models.Product{
		ID:          rec.ProductID,
		Name:        rec.Name,
		Description: rec.Description,
		Price:       rec.Price,
		Category:    rec.Category,
		InStock:     rec.InStock,
	}
}

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db     *gorm.DB
	nextID IDGenerator
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
// A nil generator falls back to SequentialIDs.
func NewGORMProductRepository(db *gorm.DB, nextID IDGenerator) *GORMProductRepository {
	if nextID == nil {
		nextID = SequentialIDs
	}
	return &GORMProductRepository{
		db:     db,
		nextID: nextID,
	}
}

// GetAll retrieves all products from the database in insertion order.
func (r *GORMProductRepository) GetAll() ([]models.Product, error) {
	var records []productRecord
	if err := r.db.Order("seq").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	products := make([]models.Product, 0, len(records))
	for _, rec := range records {
		products = append(products, rec.toModel())
	}
	return products, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(id string) (*models.Product, error) {
	rec, err := findRecord(r.db, id)
	if err != nil {
		return nil, err
	}
	product := rec.toModel()
	return &product, nil
}

// FindIndex returns the zero-based insertion position of the product with the given ID.
func (r *GORMProductRepository) FindIndex(id string) (int, error) {
	rec, err := findRecord(r.db, id)
	if err != nil {
		return -1, err
	}
	var before int64
	if err := r.db.Model(&productRecord{}).Where("seq < ?", rec.Seq).Count(&before).Error; err != nil {
		return -1, fmt.Errorf("failed to locate product %s: %w", id, err)
	}
	return int(before), nil
}

// Append creates a new product in the database and assigns its ID.
func (r *GORMProductRepository) Append(draft models.ProductDraft) (*models.Product, error) {
	var created productRecord
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&productRecord{}).Count(&count).Error; err != nil {
			return err
		}

		var lookupErr error
		taken := func(id string) bool {
			var n int64
			if err := tx.Model(&productRecord{}).Where("product_id = ?", id).Count(&n).Error; err != nil {
				lookupErr = err
				return false
			}
			return n > 0
		}
		id := r.nextID(int(count), taken)
		if lookupErr != nil {
			return lookupErr
		}

		created = productRecord{
			ProductID:   id,
			Name:        draft.Name,
			Description: draft.Description,
			Price:       draft.Price,
			Category:    draft.Category,
			InStock:     draft.InStock,
		}
		return tx.Create(&created).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	product := created.toModel()
	return &product, nil
}

// Replace updates the mutable fields of an existing product.
func (r *GORMProductRepository) Replace(id string, draft models.ProductDraft) (*models.Product, error) {
	var updated productRecord
	err := r.db.Transaction(func(tx *gorm.DB) error {
		rec, err := findRecord(tx, id)
		if err != nil {
			return err
		}
		// A map is used so zero values such as InStock=false are written too.
		res := tx.Model(&productRecord{}).Where("seq = ?", rec.Seq).Updates(map[string]interface{}{
			"name":        draft.Name,
			"description": draft.Description,
			"price":       draft.Price,
			"category":    draft.Category,
			"in_stock":    draft.InStock,
		})
		if res.Error != nil {
			return fmt.Errorf("failed to update product: %w", res.Error)
		}
		rec.Name = draft.Name
		rec.Description = draft.Description
		rec.Price = draft.Price
		rec.Category = draft.Category
		rec.InStock = draft.InStock
		updated = *rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	product := updated.toModel()
	return &product, nil
}

// RemoveAt deletes the product at the given insertion position and returns it.
func (r *GORMProductRepository) RemoveAt(index int) (*models.Product, error) {
	if index < 0 {
		return nil, fmt.Errorf("product at index %d: %w", index, ErrProductNotFound)
	}
	var removed productRecord
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Order("seq").Offset(index).Limit(1).Take(&removed).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("product at index %d: %w", index, ErrProductNotFound)
			}
			return fmt.Errorf("failed to locate product at index %d: %w", index, err)
		}
		if err := tx.Delete(&productRecord{}, "seq = ?", removed.Seq).Error; err != nil {
			return fmt.Errorf("failed to delete product: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	product := removed.toModel()
	return &product, nil
}

// Count returns the number of stored products.
func (r *GORMProductRepository) Count() (int, error) {
	var count int64
	if err := r.db.Model(&productRecord{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return int(count), nil
}

func findRecord(db *gorm.DB, id string) (*productRecord, error) {
	var rec productRecord
	if err := db.Where("product_id = ?", id).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product with ID %s: %w", id, ErrProductNotFound)
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &rec, nil
}
