package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"haven/internal/models"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll retrieves all products from the database in store order.
func (r *GORMProductRepository) GetAll() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("%w: failed to list products: %v", ErrStoreUnavailable, err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %s: %w", id, ErrRecordNotFound)
		}
		return nil, fmt.Errorf("%w: failed to get product %s: %v", ErrStoreUnavailable, id, err)
	}
	return &product, nil
}

// Create persists a new product, assigning an ID when none is set.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("%w: failed to create product: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// Update replaces all mutable fields of an existing product.
func (r *GORMProductRepository) Update(product *models.Product) error {
	res := r.db.Model(&models.Product{}).Where("id = ?", product.ID).Updates(map[string]interface{}{
		"title":       product.Title,
		"description": product.Description,
		"price":       product.Price,
		"image":       product.Image,
		"category":    product.Category,
	})
	if res.Error != nil {
		return fmt.Errorf("%w: failed to update product %s: %v", ErrStoreUnavailable, product.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		// GORM does not report ErrRecordNotFound for updates that match
		// no rows, so we check RowsAffected.
		return fmt.Errorf("product %s: %w", product.ID, ErrRecordNotFound)
	}
	return nil
}

// Delete removes a product by its ID and returns the removed record.
func (r *GORMProductRepository) Delete(id string) (*models.Product, error) {
	removed, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	res := r.db.Unscoped().Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return nil, fmt.Errorf("%w: failed to delete product %s: %v", ErrStoreUnavailable, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("product %s: %w", id, ErrRecordNotFound)
	}
	return removed, nil
}
