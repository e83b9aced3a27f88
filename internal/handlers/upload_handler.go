package handlers

import (
	"io"
	"log"

	"github.com/gofiber/fiber/v2"

	"haven/internal/assets"
)

// UploadHandler accepts product image uploads and responds with the stable
// URL the stored asset is served at.
type UploadHandler struct {
	uploader *assets.Uploader
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(uploader *assets.Uploader) *UploadHandler {
	return &UploadHandler{
		uploader: uploader,
	}
}

// RegisterRoutes registers the upload route with the Fiber app.
func (h *UploadHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/uploads", h.HandleUpload)
}

// HandleUpload stores the multipart "file" field and returns its URL.
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "A 'file' form field is required",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("Error opening uploaded file: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not read the uploaded file",
		})
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		log.Printf("Error reading uploaded file: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not read the uploaded file",
		})
	}

	url, err := h.uploader.Upload(fileHeader.Filename, data)
	if err != nil {
		log.Printf("Error storing uploaded file: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not store the uploaded file",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"url": url,
	})
}
