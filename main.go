package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"

	"storefront/internal/cache"
	"storefront/internal/handlers"
	"storefront/internal/middleware"
	"storefront/internal/repositories"
	"storefront/internal/services"
	"storefront/pkg/googleauth"
	"storefront/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("MONGODB_URI", "mongodb://localhost:27017")
	viper.SetDefault("MONGODB_DATABASE", "storefront")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("CORS_ORIGIN", "http://localhost:5173")
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")
	jwtSecret := viper.GetString("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}
	googleClientID := viper.GetString("GOOGLE_CLIENT_ID")
	if googleClientID == "" {
		log.Fatal("GOOGLE_CLIENT_ID must be set")
	}

	// --- Document store ---
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	db, err := repositories.ConnectMongoDB(ctx, viper.GetString("MONGODB_URI"), viper.GetString("MONGODB_DATABASE"))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	// --- Repositories ---
	userRepo := repositories.NewMongoUserRepository(db)
	cartRepo := repositories.NewMongoCartRepository(db)
	productRepo := repositories.NewMongoProductRepository(db)
	categoryRepo := repositories.NewMongoCategoryRepository(db)
	colorRepo := repositories.NewMongoColorRepository(db)

	if err := bootstrapIndexes(ctx, userRepo, cartRepo, categoryRepo, colorRepo); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	// --- Redis cart cache ---
	redisClient := redis.NewClient(&redis.Options{
		Addr:     viper.GetString("REDIS_ADDR"),
		Password: viper.GetString("REDIS_PASSWORD"),
	})
	defer redisClient.Close()
	cartCache := cache.NewRedisCartCache(redisClient)

	// --- RabbitMQ (optional) ---
	// Without a configured broker the services simply skip event publishing.
	var mqClient *rabbitmq.Client
	if mqURL := viper.GetString("RABBITMQ_URL"); mqURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: mqURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
	} else {
		log.Println("RABBITMQ_URL not set, account events disabled")
	}

	// --- Services ---
	googleVerifier := googleauth.NewIDTokenVerifier(googleClientID)
	authService := services.NewAuthService(userRepo, googleVerifier, mqClient, jwtSecret)
	cartService := services.NewCartService(cartRepo, cartCache, mqClient)
	productService := services.NewProductService(productRepo)
	catalogService := services.NewCatalogService(categoryRepo, colorRepo)
	userAdminService := services.NewUserAdminService(userRepo)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService, cartService)
	cartHandler := handlers.NewCartHandler(cartService)
	productHandler := handlers.NewProductHandler(productService)
	categoryHandler := handlers.NewCategoryHandler(catalogService)
	colorHandler := handlers.NewColorHandler(catalogService)
	adminUsersHandler := handlers.NewAdminUsersHandler(userAdminService)

	// --- Fiber app ---
	app := fiber.New()

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     viper.GetString("CORS_ORIGIN"),
		AllowCredentials: true,
	}))

	api := app.Group("/api")

	// Public routes
	authHandler.RegisterRoutes(api)
	shop := api.Group("/shop")
	productHandler.RegisterShopRoutes(shop)
	cartHandler.RegisterRoutes(shop)

	// Authenticated routes
	authed := api.Group("", middleware.AuthRequired(authService))
	authed.Get("/auth/check-auth", authHandler.HandleCheckAuth)

	// Admin routes
	admin := authed.Group("/admin", middleware.AdminRequired())
	adminUsersHandler.RegisterRoutes(admin)
	categoryHandler.RegisterRoutes(admin)
	colorHandler.RegisterRoutes(admin)
	productHandler.RegisterAdminRoutes(admin)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start HTTP server ---
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

// indexCreator is implemented by repositories that bootstrap their own
// collection indexes.
type indexCreator interface {
	CreateIndexes(ctx context.Context) error
}

func bootstrapIndexes(ctx context.Context, creators ...indexCreator) error {
	for _, c := range creators {
		if err := c.CreateIndexes(ctx); err != nil {
			return err
		}
	}
	return nil
}
