package main

import (
	"context"
	"os"
	"time"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/domain"
	"storefront/internal/logger"
	"storefront/internal/repository"
	"storefront/internal/service"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// starterCategories mirrors the categories the storefront launched with
var starterCategories = []struct {
	name        string
	description string
}{
	{"T-Shirts", "Comfortable and stylish t-shirts for everyday wear"},
	{"Hoodies", "Warm and cozy hoodies for cool weather"},
	{"Accessories", "Stylish accessories to complete your look"},
	{"Shoes", "Comfortable and fashionable footwear"},
}

func main() {
	// .env is optional; environment variables may already be set
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.NewWithDefaults()
	defer log.Sync()

	dbService := database.New(cfg.Database)
	defer dbService.Close()
	db := dbService.DB()

	if err := database.RunMigrations(db, "migrations", log); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)

	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@example.com"
	}
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "admin123"
	}

	seedAdmin(ctx, userRepo, adminEmail, adminPassword, log)
	seedCategories(ctx, categoryRepo, log)

	log.Info("Seed complete")
}

func seedAdmin(ctx context.Context, userRepo repository.UserRepository, email, password string, log *zap.Logger) {
	if _, err := userRepo.FindByEmail(ctx, email); err == nil {
		log.Info("Admin user already exists", zap.String("email", email))
		return
	} else if err != repository.ErrUserNotFound {
		log.Fatal("Failed to check admin user", zap.Error(err))
	}

	hash, err := service.HashPassword(password)
	if err != nil {
		log.Fatal("Failed to hash admin password", zap.Error(err))
	}

	now := time.Now()
	admin := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         "Admin User",
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := userRepo.Create(ctx, admin); err != nil {
		log.Fatal("Failed to create admin user", zap.Error(err))
	}

	log.Info("Admin user created", zap.String("email", email))
}

func seedCategories(ctx context.Context, categoryRepo repository.CategoryRepository, log *zap.Logger) {
	for _, c := range starterCategories {
		slug := domain.Slugify(c.name)

		if _, err := categoryRepo.FindBySlug(ctx, slug); err == nil {
			continue
		} else if err != repository.ErrCategoryNotFound {
			log.Fatal("Failed to check category", zap.Error(err))
		}

		now := time.Now()
		category := &domain.Category{
			ID:          uuid.New(),
			Name:        c.name,
			Slug:        slug,
			Description: c.description,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		if err := categoryRepo.Create(ctx, category); err != nil {
			log.Fatal("Failed to create category", zap.String("slug", slug), zap.Error(err))
		}

		log.Info("Category created", zap.String("slug", slug))
	}
}
