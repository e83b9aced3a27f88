package handlers

import "github.com/gofiber/fiber/v2"

// PageHandler serves the static informational pages. They have no data
// dependency on the catalog or the store.
type PageHandler struct{}

// NewPageHandler creates a new PageHandler.
func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

// RegisterRoutes registers the static page routes with the Fiber app.
func (h *PageHandler) RegisterRoutes(router fiber.Router) {
	pageRoutes := router.Group("/pages")
	pageRoutes.Get("/about", h.HandleAbout)
	pageRoutes.Get("/contact", h.HandleContact)
}

// HandleAbout serves the About page content.
func (h *PageHandler) HandleAbout(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"title": "About Handcrafted Haven",
		"body": "Handcrafted Haven is a marketplace for handmade crafts. " +
			"Artisans list their work, shoppers browse by category and price, " +
			"and every purchase supports an independent maker.",
	})
}

// HandleContact serves the Contact page content.
func (h *PageHandler) HandleContact(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"title": "Contact",
		"email": "hello@handcraftedhaven.example",
		"body":  "Questions about a listing or an order? Send us a note.",
	})
}
