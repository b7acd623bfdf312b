package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"zoru/internal/config"
	"zoru/internal/handlers"
	"zoru/internal/middleware"
	"zoru/internal/models"
	"zoru/internal/repositories"
	"zoru/internal/services"
	"zoru/pkg/email"
	"zoru/pkg/mercadopago"
	"zoru/pkg/rabbitmq"
)

func main() {
	cfg := config.Load()

	// --- Database ---
	// Without a DSN the app runs on in-memory repositories, which is
	// enough for local development of the storefront frontend.
	var db *gorm.DB
	if cfg.DatabaseDSN != "" {
		var err error
		db, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		if err := db.AutoMigrate(
			&models.Product{},
			&models.User{},
			&models.CartItem{},
			&models.Order{},
			&models.OrderItem{},
			&models.PasswordResetToken{},
			&models.RaffleEntry{},
			&models.DropSignup{},
			&models.WishlistItem{},
		); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
	} else {
		log.Println("DATABASE_DSN not set, using in-memory repositories")
	}

	// --- RabbitMQ ---
	// The storefront keeps working without the event queue; order
	// events are simply skipped.
	mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
	if err != nil {
		log.Printf("RabbitMQ unavailable, continuing without order events: %v", err)
		mqClient = nil
	} else {
		defer mqClient.Close()
	}

	app := NewApp(cfg, db, mqClient)

	// --- Order event consumer ---
	if mqClient != nil {
		log.Println("Starting order event consumer...")
		if consumerErr := mqClient.ConsumeOrderEvents(func(msg amqp.Delivery) error {
			log.Printf("Order event (tag %d): %s", msg.DeliveryTag, string(msg.Body))
			return nil
		}); consumerErr != nil {
			log.Printf("Failed to start order event consumer: %v", consumerErr)
		}
	}

	// --- Start HTTP server ---
	log.Printf("Starting server on %s", cfg.AppPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
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

// NewApp wires repositories, services and handlers into a Fiber app.
// A nil db selects the in-memory repositories; a nil mqClient disables
// order events.
func NewApp(cfg config.Config, db *gorm.DB, mqClient *rabbitmq.Client) *fiber.App {
	// --- Repositories ---
	var (
		productRepo  repositories.ProductRepository
		userRepo     repositories.UserRepository
		cartRepo     repositories.CartRepository
		orderRepo    repositories.OrderRepository
		tokenRepo    repositories.ResetTokenRepository
		raffleRepo   repositories.RaffleRepository
		wishlistRepo repositories.WishlistRepository
	)
	if db != nil {
		productRepo = repositories.NewGORMProductRepository(db)
		userRepo = repositories.NewGORMUserRepository(db)
		cartRepo = repositories.NewGORMCartRepository(db)
		orderRepo = repositories.NewGORMOrderRepository(db)
		tokenRepo = repositories.NewGORMResetTokenRepository(db)
		raffleRepo = repositories.NewGORMRaffleRepository(db)
		wishlistRepo = repositories.NewGORMWishlistRepository(db)
	} else {
		productRepo = repositories.NewMockProductRepository()
		userRepo = repositories.NewMockUserRepository()
		cartRepo = repositories.NewMockCartRepository()
		orderRepo = repositories.NewMockOrderRepository()
		tokenRepo = repositories.NewMockResetTokenRepository()
		raffleRepo = repositories.NewMockRaffleRepository()
		wishlistRepo = repositories.NewMockWishlistRepository()
	}

	seedCatalog(productRepo)

	// --- Infrastructure ---
	sender := email.NewSender(cfg.ResendAPIKey, cfg.EmailFrom)
	gateway := mercadopago.NewClient(cfg.MPBaseURL, cfg.MPAccessToken)
	var events services.EventPublisher
	if mqClient != nil {
		events = mqClient
	}

	// --- Services ---
	productService := services.NewProductService(productRepo)
	authService := services.NewAuthService(userRepo, cfg.JWTSecret)
	cartService := services.NewCartService(cartRepo, productRepo)
	checkoutService := services.NewCheckoutService(
		orderRepo, cartRepo, userRepo, gateway, events, sender, cfg.PublicBaseURL)
	resetService := services.NewPasswordResetService(
		userRepo, tokenRepo, sender, cfg.PublicBaseURL)
	raffleService := services.NewRaffleService(raffleRepo, productRepo)
	profileService := services.NewProfileService(wishlistRepo, productRepo)

	// --- Handlers ---
	productHandler := handlers.NewProductHandler(productService)
	authHandler := handlers.NewAuthHandler(authService)
	cartHandler := handlers.NewCartHandler(cartService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	passwordHandler := handlers.NewPasswordHandler(resetService)
	raffleHandler := handlers.NewRaffleHandler(raffleService)
	wishlistHandler := handlers.NewWishlistHandler(profileService)

	// --- Fiber app ---
	app := fiber.New()
	app.Use(logger.New())

	authRequired := middleware.AuthRequired(authService)

	apiV1 := app.Group("/api/v1")
	productHandler.RegisterRoutes(apiV1)
	authHandler.RegisterRoutes(apiV1, authRequired)
	passwordHandler.RegisterRoutes(apiV1)
	cartHandler.RegisterRoutes(apiV1, authRequired)
	checkoutHandler.RegisterRoutes(apiV1, authRequired)
	raffleHandler.RegisterRoutes(apiV1)
	wishlistHandler.RegisterRoutes(apiV1, authRequired)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	return app
}

// seedCatalog populates an empty product repository with the current
// ZORU lineup.
func seedCatalog(repo repositories.ProductRepository) {
	if n, err := repo.Count(); err != nil || n > 0 {
		return
	}

	products := []models.Product{
		{
			Title:       "ZORU Noise Tee",
			Slug:        "zoru-noise-tee",
			Description: "Camiseta oversize con gráfica glitch en la espalda.",
			Price:       89.90,
			Image:       "https://cdn.zoru.pe/products/noise-tee.jpg",
			Stock:       120,
			Sizes:       []string{"S", "M", "L", "XL"},
			Category:    "tees",
		},
		{
			Title:       "Static Hoodie",
			Slug:        "static-hoodie",
			Description: "Hoodie de felpa pesada, bordado frontal.",
			Price:       199.90,
			Image:       "https://cdn.zoru.pe/products/static-hoodie.jpg",
			Stock:       80,
			Sizes:       []string{"S", "M", "L", "XL"},
			Category:    "hoodies",
		},
		{
			Title:       "District Cargo Pants",
			Slug:        "district-cargo-pants",
			Description: "Cargo de corte recto con bolsillos utilitarios.",
			Price:       159.90,
			Image:       "https://cdn.zoru.pe/products/district-cargo.jpg",
			Stock:       60,
			Sizes:       []string{"28", "30", "32", "34"},
			Category:    "pants",
		},
		{
			Title:       "ZORU 999 Varsity Jacket",
			Slug:        "zoru-999-varsity",
			Description: "Drop limitado: 999 unidades numeradas, nunca reeditadas.",
			Price:       349.90,
			Image:       "https://cdn.zoru.pe/products/999-varsity.jpg",
			Stock:       models.DropUnits,
			Sizes:       []string{"M", "L", "XL"},
			Category:    "jackets",
			IsDrop:      true,
		},
	}

	for i := range products {
		if err := repo.Create(&products[i]); err != nil {
			log.Printf("Error seeding product %s: %v", products[i].Title, err)
		} else {
			log.Printf("Seeded product: %s (ID: %s)", products[i].Title, products[i].ID)
		}
	}
}
