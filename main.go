package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/davidjirca/dreamhome/config"
	"github.com/davidjirca/dreamhome/consumers"
	"github.com/davidjirca/dreamhome/controllers"
	"github.com/davidjirca/dreamhome/domain"
	"github.com/davidjirca/dreamhome/events"
	"github.com/davidjirca/dreamhome/middleware"
	"github.com/davidjirca/dreamhome/repositories"
	"github.com/davidjirca/dreamhome/services"
)

func main() {
	log.Println("Starting DreamHome API...")

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	cfg := config.LoadConfig()
	log.Printf("Configuration loaded: Port=%s, MemcachedHost=%s", cfg.Port, cfg.MemcachedHost)

	// Database
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(&domain.User{}, &domain.Property{}, &domain.SavedSearch{}, &domain.Favorite{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	if err := repositories.EnsureSearchSchema(db, cfg.SearchDictionary); err != nil {
		log.Fatalf("Failed to set up search schema: %v", err)
	}
	log.Println("Database ready")

	// Analytics store: optional, searches work without it.
	var analyticsRepo repositories.AnalyticsRepository
	mongoCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	mongoClient, err := mongo.Connect(mongoCtx, options.Client().ApplyURI(cfg.MongoURI))
	cancel()
	if err != nil {
		log.Printf("Analytics store unavailable, search logging disabled: %v", err)
	} else {
		analyticsRepo = repositories.NewAnalyticsRepository(mongoClient, cfg.MongoDatabase)
		log.Println("Analytics repository initialized")
	}

	// Repositories
	propertyRepo := repositories.NewPropertyRepository(db, cfg.SearchDictionary)
	cacheRepo := repositories.NewCacheRepository(cfg.MemcachedHost, cfg.PropertyCacheTTL, cfg.SearchCacheTTL)
	userRepo := repositories.NewUserRepository(db)
	savedSearchRepo := repositories.NewSavedSearchRepository(db)
	favoriteRepo := repositories.NewFavoriteRepository(db)
	log.Println("Repositories initialized")

	// Event publisher: optional, mutations work without a broker.
	var publisher events.PropertyPublisher
	if p, err := events.NewRabbitMQPublisher(cfg.RabbitMQURL, "properties_queue"); err != nil {
		log.Printf("RabbitMQ unavailable, event publishing disabled: %v", err)
	} else {
		publisher = p
		defer publisher.Close()
	}

	// Services
	propertyService := services.NewPropertyService(propertyRepo, cacheRepo, publisher, cfg.ListingExpiryDays)
	searchService := services.NewSearchService(propertyRepo, cacheRepo, analyticsRepo)
	userService := services.NewUserService(userRepo)
	favoriteService := services.NewFavoriteService(favoriteRepo, propertyRepo, cacheRepo)
	savedSearchService := services.NewSavedSearchService(savedSearchRepo)
	log.Println("Services initialized")

	// Event consumer keeps caches coherent across instances.
	if consumer, err := consumers.NewRabbitMQConsumer(cfg.RabbitMQURL, "properties_queue", cacheRepo); err != nil {
		log.Printf("RabbitMQ consumer unavailable: %v", err)
	} else {
		if err := consumer.Start(); err != nil {
			log.Printf("Error starting RabbitMQ consumer: %v", err)
		}
		defer consumer.Close()
	}

	// Controllers
	propertyController := controllers.NewPropertyController(propertyService)
	searchController := controllers.NewSearchController(searchService)
	userController := controllers.NewUserController(userService)
	favoriteController := controllers.NewFavoriteController(favoriteService)
	savedSearchController := controllers.NewSavedSearchController(savedSearchService)

	router := setupRouter(propertyController, searchController, userController, favoriteController, savedSearchController)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Starting HTTP server on port %s...", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down DreamHome API...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Error shutting down server: %v", err)
	}

	log.Println("DreamHome API stopped")
}

func setupRouter(
	propertyController *controllers.PropertyController,
	searchController *controllers.SearchController,
	userController *controllers.UserController,
	favoriteController *controllers.FavoriteController,
	savedSearchController *controllers.SavedSearchController,
) *gin.Engine {
	router := gin.Default()

	router.GET("/health", controllers.HealthCheck)

	api := router.Group("/api")
	{
		// Public
		api.POST("/users/register", userController.Register)
		api.POST("/users/login", userController.Login)
		api.GET("/properties/search", middleware.OptionalAuthMiddleware(), searchController.Search)
		api.GET("/properties/slug/:slug", propertyController.GetBySlug)
		api.GET("/properties/:id", propertyController.GetByID)

		// Authenticated
		auth := api.Group("")
		auth.Use(middleware.AuthMiddleware())
		{
			auth.GET("/users/me", userController.Me)

			auth.POST("/properties", propertyController.Create)
			auth.PATCH("/properties/:id", propertyController.Update)
			auth.DELETE("/properties/:id", propertyController.Delete)
			auth.POST("/properties/:id/publish", propertyController.Publish)

			auth.POST("/favorites", favoriteController.Add)
			auth.GET("/favorites", favoriteController.List)
			auth.DELETE("/favorites/:property_id", favoriteController.Remove)

			auth.POST("/saved-searches", savedSearchController.Create)
			auth.GET("/saved-searches", savedSearchController.List)
			auth.GET("/saved-searches/:id", savedSearchController.Get)
			auth.PATCH("/saved-searches/:id", savedSearchController.Update)
			auth.DELETE("/saved-searches/:id", savedSearchController.Delete)
		}
	}

	return router
}
