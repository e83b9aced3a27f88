package services

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"

	"haven/internal/models"
	"haven/internal/repositories"
	"haven/pkg/rabbitmq"
)

// ProductService handles the product record lifecycle: it validates drafts,
// persists them through the repository, and publishes lifecycle events.
type ProductService struct {
	repo     repositories.ProductRepository
	validate *validator.Validate
	events   rabbitmq.Publisher // may be nil when no broker is configured
}

// NewProductService creates a new ProductService. events may be nil.
func NewProductService(repo repositories.ProductRepository, events rabbitmq.Publisher) *ProductService {
	return &ProductService{
		repo:     repo,
		validate: validator.New(),
		events:   events,
	}
}

// ListAll retrieves every product in store order.
func (s *ProductService) ListAll() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetByID retrieves a single product by its ID.
func (s *ProductService) GetByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct validates a draft and persists it, returning the stored
// record including its store-assigned ID. A failed validation persists
// nothing.
func (s *ProductService) CreateProduct(draft models.ProductDraft) (*models.Product, error) {
	trimDraft(&draft)
	if err := s.validateDraft(draft); err != nil {
		return nil, err
	}

	product := &models.Product{
		Title:       draft.Title,
		Description: draft.Description,
		Price:       draft.Price,
		Image:       draft.Image,
		Category:    draft.Category,
	}
	if err := s.repo.Create(product); err != nil {
		return nil, err
	}

	s.publishEvent("product.created", product)
	return product, nil
}

// UpdateProduct replaces all mutable fields of an existing product. The
// draft goes through the same validation as CreateProduct.
func (s *ProductService) UpdateProduct(id string, draft models.ProductDraft) (*models.Product, error) {
	trimDraft(&draft)
	if err := s.validateDraft(draft); err != nil {
		return nil, err
	}

	product := &models.Product{
		ID:          id,
		Title:       draft.Title,
		Description: draft.Description,
		Price:       draft.Price,
		Image:       draft.Image,
		Category:    draft.Category,
	}
	if err := s.repo.Update(product); err != nil {
		return nil, err
	}

	s.publishEvent("product.updated", product)
	return product, nil
}

// DeleteProduct removes a product by its ID and returns the removed record
// for confirmation. Deleting an absent ID is an error, not a no-op.
func (s *ProductService) DeleteProduct(id string) (*models.Product, error) {
	removed, err := s.repo.Delete(id)
	if err != nil {
		return nil, err
	}

	s.publishEvent("product.deleted", removed)
	return removed, nil
}

// trimDraft strips surrounding whitespace before validation so that padded
// input cannot satisfy the length rules.
func trimDraft(draft *models.ProductDraft) {
	draft.Title = strings.TrimSpace(draft.Title)
	draft.Description = strings.TrimSpace(draft.Description)
	draft.Image = strings.TrimSpace(draft.Image)
	draft.Category = strings.TrimSpace(draft.Category)
}

// validateDraft runs the struct validation and converts the result into a
// ValidationError listing every violated field.
func (s *ProductService) validateDraft(draft models.ProductDraft) error {
	err := s.validate.Struct(draft)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("failed to validate draft: %w", err)
	}

	verr := &ValidationError{}
	for _, e := range validationErrors {
		verr.Fields = append(verr.Fields, FieldError{
			Field:  strings.ToLower(e.Field()),
			Reason: reasonForTag(e),
		})
	}
	return verr
}

func reasonForTag(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters long", e.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters long", e.Param())
	case "gt":
		return "must be a positive number"
	default:
		return fmt.Sprintf("failed on the '%s' rule", e.Tag())
	}
}

// publishEvent emits a product lifecycle event. Publishing is best effort:
// a broker failure is logged and never surfaced to the caller, since the
// store write has already succeeded.
func (s *ProductService) publishEvent(event string, product *models.Product) {
	if s.events == nil {
		return
	}

	body, err := json.Marshal(map[string]interface{}{
		"event":      event,
		"product_id": product.ID,
		"title":      product.Title,
		"price":      product.Price,
		"category":   product.Category,
	})
	if err != nil {
		log.Printf("Failed to marshal %s event for product %s: %v", event, product.ID, err)
		return
	}

	if err := s.events.Publish("", rabbitmq.CatalogQueue, body); err != nil {
		log.Printf("Warning: failed to publish %s event for product %s: %v", event, product.ID, err)
	}
}
