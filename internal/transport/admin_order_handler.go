package transport

import (
	"net/http"
	"strconv"

	"storefront/internal/middleware"
	"storefront/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AdminOrderHandler serves the read-only order views and dashboard stats
type AdminOrderHandler struct {
	orderService service.OrderService
	logger       *zap.Logger
}

// NewAdminOrderHandler creates a new AdminOrderHandler
func NewAdminOrderHandler(orderService service.OrderService, logger *zap.Logger) *AdminOrderHandler {
	return &AdminOrderHandler{
		orderService: orderService,
		logger:       logger,
	}
}

// RegisterRoutes registers the admin order routes behind the supplied
// middleware chain
func (h *AdminOrderHandler) RegisterRoutes(r chi.Router, authMiddleware, requireAdmin func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(requireAdmin)

		r.Get("/api/admin/orders", h.List)
		r.Get("/api/admin/stats", h.Stats)
	})
}

// List returns the most recent orders with their items
func (h *AdminOrderHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	orders, err := h.orderService.ListRecent(r.Context(), limit)
	if err != nil {
		h.logger.Error("Failed to list orders", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list orders")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, orders)
}

// Stats returns the dashboard counters
func (h *AdminOrderHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.orderService.Stats(r.Context())
	if err != nil {
		h.logger.Error("Failed to compute stats", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to compute stats")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, stats)
}
