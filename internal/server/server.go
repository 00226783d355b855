package server

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"storefront/internal/config"
	custommiddleware "storefront/internal/middleware"
	"storefront/internal/repository"
	"storefront/internal/service"
	"storefront/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     *sql.DB
	redis  *redis.Client
}

func NewServer(cfg *config.Config, logger *zap.Logger, db *sql.DB) *Server {
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
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Serve uploaded assets
	router.Handle(cfg.Upload.PublicPath+"/*", http.StripPrefix(
		cfg.Upload.PublicPath+"/",
		http.FileServer(http.Dir(cfg.Upload.Dir)),
	))

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	// Initialize services
	tokenExpiry := time.Duration(cfg.JWT.ExpiryDays) * 24 * time.Hour
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, tokenExpiry)
	catalogService := service.NewCatalogService(productRepo, categoryRepo)
	productService := service.NewProductService(productRepo, categoryRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	orderService := service.NewOrderService(orderRepo, productRepo)
	themeService := service.NewThemeService(settingRepo, cfg.Theme.CSSPath)

	// Auth middleware chain for admin routes
	authMiddleware := custommiddleware.AuthMiddleware(authService, logger)
	requireAdmin := custommiddleware.RequireAdmin(logger)

	// Login rate limiter backed by redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	rateLimiter := custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
		RequestsPerWindow: 10,
		Window:            time.Minute,
		KeyPrefix:         "ratelimit:login",
	}, logger)

	// Initialize handlers
	authHandler := transport.NewAuthHandler(authService, logger)
	catalogHandler := transport.NewCatalogHandler(catalogService, logger)
	productHandler := transport.NewAdminProductHandler(productService, logger)
	categoryHandler := transport.NewAdminCategoryHandler(categoryService, logger)
	orderHandler := transport.NewAdminOrderHandler(orderService, logger)
	themeHandler := transport.NewThemeHandler(themeService, logger)
	uploadHandler := transport.NewUploadHandler(cfg.Upload.Dir, cfg.Upload.PublicPath, cfg.Upload.MaxSizeBytes, logger)

	// Register routes
	authHandler.RegisterRoutes(router, authMiddleware, requireAdmin, rateLimiter)
	catalogHandler.RegisterRoutes(router)
	productHandler.RegisterRoutes(router, authMiddleware, requireAdmin)
	categoryHandler.RegisterRoutes(router, authMiddleware, requireAdmin)
	orderHandler.RegisterRoutes(router, authMiddleware, requireAdmin)
	themeHandler.RegisterRoutes(router, authMiddleware, requireAdmin)
	uploadHandler.RegisterRoutes(router, authMiddleware, requireAdmin)

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

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis client", zap.Error(err))
		}
	}

	// Close database connection
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
