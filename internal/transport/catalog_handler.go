package transport

import (
	"net/http"
	"strconv"
	"strings"

	"storefront/internal/middleware"
	"storefront/internal/repository"
	"storefront/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CatalogHandler handles the public storefront read endpoints
type CatalogHandler struct {
	catalogService service.CatalogService
	logger         *zap.Logger
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService service.CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// RegisterRoutes registers the public catalog routes
func (h *CatalogHandler) RegisterRoutes(r chi.Router) {
	r.Get("/api/products", h.ListProducts)
	r.Get("/api/products/{slug}", h.GetProduct)
	r.Get("/api/categories", h.ListCategories)
}

// parseProductFilter translates query parameters into a ProductFilter.
// Unparsable page/limit fall back to the service defaults; malformed price
// bounds are a validation error rather than a silently ignored filter.
func parseProductFilter(r *http.Request) (repository.ProductFilter, []middleware.ValidationError) {
	q := r.URL.Query()
	var invalid []middleware.ValidationError

	filter := repository.ProductFilter{
		CategorySlug: q.Get("category"),
		Search:       q.Get("search"),
		FeaturedOnly: q.Get("featured") == "true",
	}

	if raw := q.Get("minPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			invalid = append(invalid, middleware.ValidationError{Field: "minPrice", Message: "must be a number"})
		} else {
			filter.MinPrice = &v
		}
	}

	if raw := q.Get("maxPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			invalid = append(invalid, middleware.ValidationError{Field: "maxPrice", Message: "must be a number"})
		} else {
			filter.MaxPrice = &v
		}
	}

	if page, err := strconv.Atoi(q.Get("page")); err == nil {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil {
		filter.Limit = limit
	}

	switch q.Get("sortBy") {
	case "name":
		filter.SortBy = "name"
	case "price":
		filter.SortBy = "price"
	default:
		filter.SortBy = "created_at"
	}

	if strings.EqualFold(q.Get("sortOrder"), "asc") {
		filter.SortOrder = repository.SortOrderAsc
	} else {
		filter.SortOrder = repository.SortOrderDesc
	}

	return filter, invalid
}

// ListProducts serves the filtered, paginated public product listing
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	filter, invalid := parseProductFilter(r)
	if len(invalid) > 0 {
		middleware.RespondWithValidationErrors(w, invalid)
		return
	}

	result, err := h.catalogService.ListProducts(r.Context(), filter)
	if err != nil {
		h.logger.Error("Failed to list products", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, result)
}

// GetProduct serves a single active product by slug
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	product, err := h.catalogService.GetProductBySlug(r.Context(), slug)
	if err != nil {
		if err == repository.ErrProductNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to get product", zap.String("slug", slug), zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// ListCategories serves all categories with active product counts
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalogService.ListCategories(r.Context())
	if err != nil {
		h.logger.Error("Failed to list categories", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list categories")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, categories)
}
