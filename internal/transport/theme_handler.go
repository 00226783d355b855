package transport

import (
	"encoding/json"
	"net/http"

	"storefront/internal/domain"
	"storefront/internal/middleware"
	"storefront/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// GenerateCSSRequest carries the stylesheet to materialize
type GenerateCSSRequest struct {
	CSS string `json:"css" validate:"required"`
}

// ThemeHandler handles the admin theme endpoints
type ThemeHandler struct {
	themeService service.ThemeService
	logger       *zap.Logger
}

// NewThemeHandler creates a new ThemeHandler
func NewThemeHandler(themeService service.ThemeService, logger *zap.Logger) *ThemeHandler {
	return &ThemeHandler{
		themeService: themeService,
		logger:       logger,
	}
}

// RegisterRoutes registers the admin theme routes behind the supplied
// middleware chain
func (h *ThemeHandler) RegisterRoutes(r chi.Router, authMiddleware, requireAdmin func(http.Handler) http.Handler) {
	r.Route("/api/admin/theme", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(requireAdmin)

		r.Get("/", h.Get)
		r.Post("/", h.Save)
		r.Post("/css", h.GenerateCSS)
	})
}

// Get returns the stored theme mapping; unset keys are simply absent
func (h *ThemeHandler) Get(w http.ResponseWriter, r *http.Request) {
	theme, err := h.themeService.GetTheme(r.Context())
	if err != nil {
		h.logger.Error("Failed to load theme", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to load theme")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, theme)
}

// Save upserts each submitted key/value pair independently. The payload
// must be a flat string-to-string mapping; anything else is a validation
// error.
func (h *ThemeHandler) Save(w http.ResponseWriter, r *http.Request) {
	var theme domain.ThemeSettings

	if err := json.NewDecoder(r.Body).Decode(&theme); err != nil {
		h.logger.Debug("Theme decode failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "theme must be a flat string mapping")
		return
	}

	if err := h.themeService.SaveTheme(r.Context(), theme); err != nil {
		h.logger.Error("Failed to save theme", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to save theme")
		return
	}

	h.logger.Info("Theme saved", zap.Int("keys", len(theme)))
	middleware.RespondWithJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// GenerateCSS writes the posted stylesheet to the public asset path
func (h *ThemeHandler) GenerateCSS(w http.ResponseWriter, r *http.Request) {
	var req GenerateCSSRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("CSS generation validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.themeService.WriteCSS(req.CSS); err != nil {
		h.logger.Error("Failed to write css", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to generate css file")
		return
	}

	h.logger.Info("Theme css generated")
	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "css file generated successfully",
	})
}
