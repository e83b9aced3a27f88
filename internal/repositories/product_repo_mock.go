package repositories

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"haven/internal/models"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
// Insertion order is preserved so listings come back in store order, the way
// a sequential table scan would return them.
type MockProductRepository struct {
	products []models.Product
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: []models.Product{},
	}
}

// GetAll returns all products in insertion order.
func (r *MockProductRepository) GetAll() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, len(r.products))
	copy(productList, r.products)
	return productList, nil
}

// GetByID returns a product by its ID.
func (r *MockProductRepository) GetByID(id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.ID == id {
			product := p
			return &product, nil
		}
	}
	return nil, fmt.Errorf("product %s: %w", id, ErrRecordNotFound)
}

// Create adds a new product, assigning an ID and creation time when unset.
func (r *MockProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now()
	}
	r.products = append(r.products, *product)
	return nil
}

// Update modifies an existing product.
func (r *MockProductRepository) Update(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.products {
		if p.ID == product.ID {
			product.CreatedAt = p.CreatedAt
			r.products[i] = *product
			return nil
		}
	}
	return fmt.Errorf("product %s: %w", product.ID, ErrRecordNotFound)
}

// Delete removes a product by its ID and returns the removed record.
func (r *MockProductRepository) Delete(id string) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.products {
		if p.ID == id {
			removed := p
			r.products = append(r.products[:i], r.products[i+1:]...)
			return &removed, nil
		}
	}
	return nil, fmt.Errorf("product %s: %w", id, ErrRecordNotFound)
}
