package main

import (
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"haven/internal/assets"
	"haven/internal/handlers"
	"haven/internal/models"
	"haven/internal/repositories"
	"haven/internal/services"
	"haven/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_DSN", "haven.db")
	viper.SetDefault("UPLOAD_DIR", "uploads")
	viper.SetDefault("ASSET_BASE_URL", "http://localhost:8080/assets")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")
	databaseDSN := viper.GetString("DATABASE_DSN")
	rabbitMQURL := viper.GetString("RABBITMQ_URL")

	// --- Initialize Database ---
	db, err := openDatabase(databaseDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- Initialize RabbitMQ Client (optional) ---
	// When no broker is configured the service simply skips event
	// publishing; store writes do not depend on it.
	var events rabbitmq.Publisher
	var mqClient *rabbitmq.Client
	if rabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: rabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
		events = mqClient
	} else {
		log.Println("RABBITMQ_URL not set, product lifecycle events disabled")
	}

	// --- Initialize Repositories ---
	productRepo := repositories.NewGORMProductRepository(db)
	seedProducts(productRepo)

	// --- Initialize Services ---
	productService := services.NewProductService(productRepo, events)

	// --- Initialize Asset Uploader ---
	uploader, err := assets.NewUploader(assets.Config{
		Dir:     viper.GetString("UPLOAD_DIR"),
		BaseURL: viper.GetString("ASSET_BASE_URL"),
	})
	if err != nil {
		log.Fatalf("Failed to initialize asset uploader: %v", err)
	}

	// --- Initialize Handlers ---
	productHandler := handlers.NewProductHandler(productService)
	catalogHandler := handlers.NewCatalogHandler(productService)
	uploadHandler := handlers.NewUploadHandler(uploader)
	pageHandler := handlers.NewPageHandler()

	// --- Initialize Fiber App ---
	app := fiber.New()
	app.Use(logger.New())

	// Stored assets are served straight from the upload directory.
	app.Static("/assets", viper.GetString("UPLOAD_DIR"))

	// --- API Routes ---
	apiV1 := app.Group("/api/v1")
	productHandler.RegisterRoutes(apiV1)
	catalogHandler.RegisterRoutes(apiV1)
	uploadHandler.RegisterRoutes(apiV1)
	pageHandler.RegisterRoutes(apiV1)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}

// openDatabase picks the GORM driver from the DSN shape: postgres for
// URL/keyword DSNs, sqlite for plain file paths.
func openDatabase(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.Contains(dsn, "host=") {
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}
	return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
}

// seedProducts populates an empty store with a few starter listings so a
// fresh local run has something to browse.
func seedProducts(repo repositories.ProductRepository) {
	existing, err := repo.GetAll()
	if err != nil {
		log.Printf("Error checking for existing products: %v", err)
		return
	}
	if len(existing) > 0 {
		return
	}

	products := []models.Product{
		{Title: "Stoneware mug", Description: "Hand-thrown stoneware mug with a speckled glaze", Price: 24.00, Image: "http://localhost:8080/assets/seed-mug.jpg", Category: "pottery"},
		{Title: "Wool scarf", Description: "Hand-knitted merino wool scarf in forest green", Price: 45.00, Image: "http://localhost:8080/assets/seed-scarf.jpg", Category: "knitting"},
		{Title: "Walnut serving board", Description: "Hand-carved walnut board with a live edge", Price: 68.00, Image: "http://localhost:8080/assets/seed-board.jpg", Category: "woodwork"},
	}

	for i := range products {
		if err := repo.Create(&products[i]); err != nil {
			log.Printf("Error seeding product %s: %v", products[i].Title, err)
		} else {
			log.Printf("Seeded product: %s (ID: %s)", products[i].Title, products[i].ID)
		}
	}
}
