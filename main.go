package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"storefront/internal/handlers"
	"storefront/internal/repositories"
	"storefront/internal/services"
	"storefront/pkg/rabbitmq"
)

// configure sets configuration defaults and loads environment overrides.
func configure() {
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("CATALOG_BACKEND", "memory") // memory | sqlite | postgres
	viper.SetDefault("DATABASE_DSN", "file::memory:?cache=shared")
	viper.SetDefault("RABBITMQ_URL", "") // empty disables event publishing
	viper.AutomaticEnv()
}

func main() {
	configure()

	appPort := viper.GetString("APP_PORT")
	rabbitMQURL := viper.GetString("RABBITMQ_URL")

	// --- Initialize RabbitMQ Client (optional) ---
	var mqClient *rabbitmq.Client
	if rabbitMQURL != "" {
		var err error
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: rabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
	} else {
		log.Println("RABBITMQ_URL not set, order event publishing disabled")
	}

	// The publisher interface stays nil when no broker is configured.
	var events services.EventPublisher
	if mqClient != nil {
		events = mqClient
	}
	app, err := newApp(events)
	if err != nil {
		log.Fatalf("Failed to create app: %v", err)
	}

	// --- Start RabbitMQ Consumer in a Goroutine ---
	// Logs order events back out; real consumers (inventory, email) live in
	// other processes.
	if mqClient != nil {
		go func() {
			log.Println("Starting RabbitMQ consumer for order events...")
			messageHandler := func(msg amqp.Delivery) error {
				log.Printf("Received order event %s (tag %d): %s", msg.Type, msg.DeliveryTag, string(msg.Body))
				return nil
			}
			if consumerErr := mqClient.ConsumeOrderEvents(messageHandler); consumerErr != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
			}
		}()
	}

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

// NewApp builds the Fiber application with the configured catalog backend,
// an empty in-memory order store, and no event publishing.
func NewApp() (*fiber.App, error) {
	configure()
	return newApp(nil)
}

func newApp(events services.EventPublisher) (*fiber.App, error) {
	// --- Initialize Repositories ---
	productRepo, err := newProductRepository()
	if err != nil {
		return nil, err
	}
	if err := repositories.SeedCatalog(productRepo); err != nil {
		return nil, fmt.Errorf("failed to seed catalog: %w", err)
	}
	orderRepo := repositories.NewMemoryOrderRepository()

	// --- Initialize Services ---
	catalogService := services.NewCatalogService(productRepo)
	orderService := services.NewOrderService(orderRepo, productRepo, events)

	// --- Initialize Handlers ---
	productHandler := handlers.NewProductHandler(catalogService)
	orderHandler := handlers.NewOrderHandler(orderService)

	app := fiber.New()

	// --- Middleware ---
	app.Use(logger.New())

	// --- API Routes ---
	api := app.Group("/api")
	productHandler.RegisterRoutes(api)
	orderHandler.RegisterRoutes(api)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	return app, nil
}

// newProductRepository selects the catalog backend from configuration. The
// API behaves identically over all three backends.
func newProductRepository() (repositories.ProductRepository, error) {
	backend := viper.GetString("CATALOG_BACKEND")
	switch backend {
	case "memory":
		return repositories.NewMemoryProductRepository(), nil
	case "sqlite":
		db, err := gorm.Open(sqlite.Open(viper.GetString("DATABASE_DSN")), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite catalog: %w", err)
		}
		return repositories.NewGORMProductRepository(db)
	case "postgres":
		db, err := gorm.Open(postgres.Open(viper.GetString("DATABASE_DSN")), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres catalog: %w", err)
		}
		return repositories.NewGORMProductRepository(db)
	default:
		return nil, fmt.Errorf("unknown CATALOG_BACKEND %q", backend)
	}
}
