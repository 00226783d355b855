package transport

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"time"

	"storefront/internal/middleware"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// allowedImageTypes is the upload allowlist. Detection is by content
// sniffing, so a renamed executable does not pass as a .png.
var allowedImageTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
}

// UploadResponse is returned after a successful upload
type UploadResponse struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

// UploadHandler handles admin image uploads
type UploadHandler struct {
	uploadDir    string
	publicPath   string
	maxSizeBytes int64
	logger       *zap.Logger
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(uploadDir, publicPath string, maxSizeBytes int64, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{
		uploadDir:    uploadDir,
		publicPath:   publicPath,
		maxSizeBytes: maxSizeBytes,
		logger:       logger,
	}
}

// RegisterRoutes registers the upload route behind the supplied middleware
// chain
func (h *UploadHandler) RegisterRoutes(r chi.Router, authMiddleware, requireAdmin func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(requireAdmin)

		r.Post("/api/admin/upload", h.Upload)
	})
}

// Upload accepts a single multipart image field, enforces the size cap and
// content allowlist, and returns the public URL of the stored file
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxSizeBytes)

	if err := r.ParseMultipartForm(h.maxSizeBytes); err != nil {
		h.logger.Debug("Multipart parse failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "file exceeds the 5MB limit or the form is malformed")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	mtype, err := mimetype.DetectReader(file)
	if err != nil {
		h.logger.Error("Failed to sniff upload content", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to process upload")
		return
	}

	if !isAllowedImageType(mtype) {
		middleware.RespondWithError(w, http.StatusBadRequest, "only jpeg, png, gif and webp images are allowed")
		return
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		h.logger.Error("Failed to rewind upload", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to process upload")
		return
	}

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		h.logger.Error("Failed to create upload directory", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to store upload")
		return
	}

	filename := fmt.Sprintf("product-%d%s", time.Now().UnixNano(), mtype.Extension())

	dst, err := os.Create(filepath.Join(h.uploadDir, filename))
	if err != nil {
		h.logger.Error("Failed to create upload file", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to store upload")
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		h.logger.Error("Failed to write upload file", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to store upload")
		return
	}

	h.logger.Info("Image uploaded",
		zap.String("filename", filename),
		zap.String("content_type", mtype.String()),
	)

	middleware.RespondWithJSON(w, http.StatusOK, UploadResponse{
		URL:      path.Join(h.publicPath, filename),
		Filename: filename,
	})
}

func isAllowedImageType(mtype *mimetype.MIME) bool {
	for _, allowed := range allowedImageTypes {
		if mtype.Is(allowed) {
			return true
		}
	}
	return false
}
