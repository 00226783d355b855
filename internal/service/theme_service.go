package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

// ThemeService stores the flat theme mapping and materializes the static
// theme stylesheet.
type ThemeService interface {
	GetTheme(ctx context.Context) (domain.ThemeSettings, error)
	SaveTheme(ctx context.Context, theme domain.ThemeSettings) error
	WriteCSS(css string) error
}

type themeService struct {
	settingRepo repository.SettingRepository
	cssPath     string
}

// NewThemeService creates a new instance of ThemeService. cssPath is the
// public asset path the generated stylesheet is written to.
func NewThemeService(settingRepo repository.SettingRepository, cssPath string) ThemeService {
	return &themeService{
		settingRepo: settingRepo,
		cssPath:     cssPath,
	}
}

// GetTheme returns the stored mapping with the storage prefix stripped.
// Keys never saved are simply absent; callers apply their own defaults.
func (s *themeService) GetTheme(ctx context.Context) (domain.ThemeSettings, error) {
	settings, err := s.settingRepo.ListByPrefix(ctx, domain.ThemeKeyPrefix)
	if err != nil {
		return nil, err
	}

	theme := domain.ThemeSettings{}
	for _, setting := range settings {
		theme[strings.TrimPrefix(setting.Key, domain.ThemeKeyPrefix)] = setting.Value
	}

	return theme, nil
}

// SaveTheme upserts each submitted key independently under the storage
// prefix. Unknown keys are accepted as custom settings.
func (s *themeService) SaveTheme(ctx context.Context, theme domain.ThemeSettings) error {
	for key, value := range theme {
		if err := s.settingRepo.Upsert(ctx, domain.ThemeKeyPrefix+key, value); err != nil {
			return fmt.Errorf("failed to save theme setting %q: %w", key, err)
		}
	}
	return nil
}

// WriteCSS writes the stylesheet to the configured public asset path,
// creating the directory if needed.
func (s *themeService) WriteCSS(css string) error {
	if err := os.MkdirAll(filepath.Dir(s.cssPath), 0o755); err != nil {
		return fmt.Errorf("failed to create css directory: %w", err)
	}

	if err := os.WriteFile(s.cssPath, []byte(css), 0o644); err != nil {
		return fmt.Errorf("failed to write css file: %w", err)
	}

	return nil
}
