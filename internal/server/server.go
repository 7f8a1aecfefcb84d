package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"freshfood/internal/config"
	"freshfood/internal/database"
	custommiddleware "freshfood/internal/middleware"
	"freshfood/internal/repository"
	"freshfood/internal/service"
	"freshfood/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     *database.Service
	redis  *redis.Client
}

func NewServer(cfg *config.Config, logger *zap.Logger, db *database.Service, redisClient *redis.Client) *Server {
	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.CORSMiddleware(cfg.Server.AllowedOrigins, cfg.Server.Env == "development"))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(db.Health(r.Context()))
	})

	// Initialize repositories
	productRepo := repository.NewProductRepository(db.DB())
	orderRepo := repository.NewOrderRepository(db.DB())
	userRepo := repository.NewUserRepository(db.DB())
	categoryRepo := repository.NewCategoryRepository(db.DB())
	settingsRepo := repository.NewSettingsRepository(db.DB())

	// Initialize services
	productService := service.NewProductService(productRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	orderService := service.NewOrderService(orderRepo, logger)
	statsService := service.NewStatsService(productRepo, orderRepo)
	settingsService := service.NewSettingsService(settingsRepo, cfg.Store)
	userService := service.NewUserService(userRepo, cfg.JWT.Secret, cfg.JWT.AccessExpiry)

	// Initialize handlers
	productHandler := transport.NewProductHandler(productService, logger)
	categoryHandler := transport.NewCategoryHandler(categoryService, logger)
	orderHandler := transport.NewOrderHandler(orderService, logger)
	cartHandler := transport.NewCartHandler(settingsService, logger)
	dashboardHandler := transport.NewDashboardHandler(statsService, settingsService, logger)
	userHandler := transport.NewUserHandler(userService, orderService, logger)

	// Middleware stacks
	authMiddleware := custommiddleware.AuthMiddleware(cfg.JWT.Secret, logger)
	optionalAuth := custommiddleware.OptionalAuthMiddleware(cfg.JWT.Secret, logger)
	adminStack := []func(http.Handler) http.Handler{
		authMiddleware,
		custommiddleware.RequireAdmin(logger),
	}

	checkoutLimiter := custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
		RequestsPerWindow: 10,
		Window:            time.Minute,
		KeyPrefix:         "ratelimit:checkout",
	}, logger)
	loginLimiter := custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
		RequestsPerWindow: 20,
		Window:            time.Minute,
		KeyPrefix:         "ratelimit:login",
	}, logger)

	// Register routes
	productHandler.RegisterRoutes(router, adminStack)
	categoryHandler.RegisterRoutes(router, adminStack)
	orderHandler.RegisterRoutes(router, optionalAuth, checkoutLimiter, adminStack)
	cartHandler.RegisterRoutes(router)
	dashboardHandler.RegisterRoutes(router, adminStack)
	userHandler.RegisterRoutes(router, authMiddleware, loginLimiter)

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		db:     db,
		redis:  redisClient,
	}

	return server
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if s.db != nil {
		if err := s.db.Close(ctx); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
