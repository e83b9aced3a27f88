package repositories

import (
	"errors"

	"haven/internal/models"
)

// ErrRecordNotFound is returned when no product with the requested ID exists.
// ErrStoreUnavailable wraps connectivity or backend failures of the store.
var (
	ErrRecordNotFound   = errors.New("product not found")
	ErrStoreUnavailable = errors.New("product store unavailable")
)

// ProductRepository defines the interface for product data access.
// Delete returns the removed record so callers can confirm what was dropped.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) (*models.Product, error)
}
