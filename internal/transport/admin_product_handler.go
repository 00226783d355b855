package transport

import (
	"net/http"

	"storefront/internal/middleware"
	"storefront/internal/repository"
	"storefront/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateProductRequest represents the admin product creation payload
type CreateProductRequest struct {
	Name           string    `json:"name" validate:"required"`
	Description    string    `json:"description"`
	Price          float64   `json:"price" validate:"required,gt=0"`
	CompareAtPrice *float64  `json:"compare_at_price" validate:"omitempty,gt=0"`
	Images         []string  `json:"images"`
	Inventory      int       `json:"inventory" validate:"gte=0"`
	SKU            string    `json:"sku"`
	Weight         *float64  `json:"weight" validate:"omitempty,gt=0"`
	Dimensions     string    `json:"dimensions"`
	IsFeatured     bool      `json:"is_featured"`
	CategoryID     uuid.UUID `json:"category_id" validate:"required"`
}

// UpdateProductRequest is an explicit per-field patch; absent fields are
// left untouched.
type UpdateProductRequest struct {
	Name           *string    `json:"name" validate:"omitempty,min=1"`
	Description    *string    `json:"description"`
	Price          *float64   `json:"price" validate:"omitempty,gt=0"`
	CompareAtPrice *float64   `json:"compare_at_price" validate:"omitempty,gt=0"`
	Images         *[]string  `json:"images"`
	Inventory      *int       `json:"inventory" validate:"omitempty,gte=0"`
	SKU            *string    `json:"sku"`
	Weight         *float64   `json:"weight" validate:"omitempty,gt=0"`
	Dimensions     *string    `json:"dimensions"`
	IsActive       *bool      `json:"is_active"`
	IsFeatured     *bool      `json:"is_featured"`
	CategoryID     *uuid.UUID `json:"category_id"`
}

// AdminProductHandler handles the admin product CRUD endpoints
type AdminProductHandler struct {
	productService service.ProductService
	logger         *zap.Logger
}

// NewAdminProductHandler creates a new AdminProductHandler
func NewAdminProductHandler(productService service.ProductService, logger *zap.Logger) *AdminProductHandler {
	return &AdminProductHandler{
		productService: productService,
		logger:         logger,
	}
}

// RegisterRoutes registers the admin product routes behind the supplied
// middleware chain
func (h *AdminProductHandler) RegisterRoutes(r chi.Router, authMiddleware, requireAdmin func(http.Handler) http.Handler) {
	r.Route("/api/admin/products", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(requireAdmin)

		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// List returns every product, active or not
func (h *AdminProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.ListAll(r.Context())
	if err != nil {
		h.logger.Error("Failed to list products", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// Get returns a single product by id
func (h *AdminProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	product, err := h.productService.GetByID(r.Context(), id)
	if err != nil {
		if err == repository.ErrProductNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to get product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// Create creates a product, deriving its slug from the name
func (h *AdminProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Product create validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.productService.Create(r.Context(), service.CreateProductInput{
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		CompareAtPrice: req.CompareAtPrice,
		Images:         req.Images,
		Inventory:      req.Inventory,
		SKU:            req.SKU,
		Weight:         req.Weight,
		Dimensions:     req.Dimensions,
		IsFeatured:     req.IsFeatured,
		CategoryID:     req.CategoryID,
	})
	if err != nil {
		h.respondProductError(w, err, "failed to create product")
		return
	}

	h.logger.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("slug", product.Slug),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, product)
}

// Update applies a whitelisted patch; renaming regenerates the slug
func (h *AdminProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	var req UpdateProductRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Product update validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.productService.Update(r.Context(), id, service.UpdateProductInput{
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		CompareAtPrice: req.CompareAtPrice,
		Images:         req.Images,
		Inventory:      req.Inventory,
		SKU:            req.SKU,
		Weight:         req.Weight,
		Dimensions:     req.Dimensions,
		IsActive:       req.IsActive,
		IsFeatured:     req.IsFeatured,
		CategoryID:     req.CategoryID,
	})
	if err != nil {
		h.respondProductError(w, err, "failed to update product")
		return
	}

	h.logger.Info("Product updated",
		zap.String("product_id", product.ID.String()),
		zap.String("slug", product.Slug),
	)
	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// Delete removes a product unconditionally
func (h *AdminProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	if err := h.productService.Delete(r.Context(), id); err != nil {
		if err == repository.ErrProductNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to delete product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete product")
		return
	}

	h.logger.Info("Product deleted", zap.String("product_id", id.String()))
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "product deleted successfully"})
}

func (h *AdminProductHandler) respondProductError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case repository.ErrProductNotFound:
		middleware.RespondWithError(w, http.StatusNotFound, "product not found")
	case repository.ErrCategoryNotFound:
		middleware.RespondWithError(w, http.StatusNotFound, "category not found")
	case repository.ErrProductSlugExists:
		middleware.RespondWithError(w, http.StatusConflict, "a product with this name already exists")
	case service.ErrInvalidSlug:
		middleware.RespondWithError(w, http.StatusBadRequest, "name does not produce a valid slug")
	default:
		h.logger.Error(fallback, zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, fallback)
	}
}
