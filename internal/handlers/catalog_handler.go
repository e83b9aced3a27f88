package handlers

import (
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"haven/internal/catalog"
	"haven/internal/services"
)

// CatalogHandler serves the browse view: the filtered, sorted, paginated
// page of listings plus the filter option sets derived from the loaded
// products. Each request builds a fresh view from the full product set, so
// the response is a pure function of the query parameters.
type CatalogHandler struct {
	service *services.ProductService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(service *services.ProductService) *CatalogHandler {
	return &CatalogHandler{
		service: service,
	}
}

// RegisterRoutes registers the catalog route with the Fiber app.
func (h *CatalogHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/catalog", h.HandleBrowseCatalog)
}

// HandleBrowseCatalog renders one page of the catalog.
//
// Query parameters: category, min_price, max_price (omit for "and above"),
// sort (price-asc, price-desc, newest), page_size.
func (h *CatalogHandler) HandleBrowseCatalog(c *fiber.Ctx) error {
	products, err := h.service.ListAll()
	if err != nil {
		log.Printf("Error loading products for catalog: %v", err)
		return respondServiceError(c, err, "Could not load the catalog")
	}

	view := catalog.NewView(products)

	if category := c.Query("category"); category != "" {
		view.SetCategoryFilter(category)
	}

	priceRange, err := parsePriceRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid price filter",
			"error":   err.Error(),
		})
	}
	if priceRange != nil {
		view.SetPriceFilter(priceRange)
	}

	if sortParam := c.Query("sort"); sortParam != "" {
		key, err := catalog.ParseSortKey(sortParam)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid sort key",
				"error":   err.Error(),
			})
		}
		view.SetSortKey(key)
	}

	// page_size is how far the client has "loaded more" so far.
	if pageParam := c.Query("page_size"); pageParam != "" {
		requested, err := strconv.Atoi(pageParam)
		if err != nil || requested < catalog.DefaultPageSize {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid page size",
			})
		}
		for view.PageSize() < requested {
			view.LoadMore()
		}
	}

	displayed, err := view.Displayed()
	if err != nil {
		if errors.Is(err, catalog.ErrNoProducts) {
			return c.JSON(fiber.Map{
				"message":  "No products found.",
				"products": []interface{}{},
			})
		}
		log.Printf("Error computing catalog page: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not compute the catalog page",
		})
	}

	response := fiber.Map{
		"products":   displayed,
		"total":      view.Total(),
		"page_size":  view.PageSize(),
		"categories": view.Categories(),
	}
	if min, max, ok := view.PriceBounds(); ok {
		response["price_bounds"] = fiber.Map{"min": min, "max": max}
	}
	return c.JSON(response)
}

// parsePriceRange builds the inclusive price filter from min_price and
// max_price. A present min_price with no max_price means "and above".
func parsePriceRange(c *fiber.Ctx) (*catalog.PriceRange, error) {
	minParam := c.Query("min_price")
	maxParam := c.Query("max_price")
	if minParam == "" && maxParam == "" {
		return nil, nil
	}

	r := &catalog.PriceRange{}
	if minParam != "" {
		min, err := strconv.ParseFloat(minParam, 64)
		if err != nil {
			return nil, errors.New("min_price must be a number")
		}
		r.Min = min
	}
	if maxParam != "" {
		max, err := strconv.ParseFloat(maxParam, 64)
		if err != nil {
			return nil, errors.New("max_price must be a number")
		}
		if max < r.Min {
			return nil, errors.New("max_price must not be below min_price")
		}
		r.Max = &max
	}
	return r, nil
}
