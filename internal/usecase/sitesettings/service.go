// Package sitesettings serves the site settings singleton: the admin form
// writes through to the backend; public pages read through a TTL cache so
// every render does not cost a backend round trip.
package sitesettings

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fresh-motors-web/internal/cache"
	"fresh-motors-web/internal/domain/entity"
	"fresh-motors-web/internal/repository"
)

// Service provides settings use cases. The cache entry it owns is
// registered with the refresher in cmd/web.
type Service struct {
	repo   repository.SettingsRepository
	entry  *cache.Entry[*entity.SiteSettings]
	logger *slog.Logger
}

// NewService creates a settings service with the given cache TTL.
func NewService(repo repository.SettingsRepository, ttl time.Duration, logger *slog.Logger) *Service {
	s := &Service{repo: repo, logger: logger}
	s.entry = cache.NewEntry("settings", ttl, s.load)
	return s
}

func (s *Service) load(ctx context.Context) (*entity.SiteSettings, error) {
	return s.repo.Get(ctx)
}

// Entry exposes the cache entry for refresher registration and readiness
// checks.
func (s *Service) Entry() *cache.Entry[*entity.SiteSettings] {
	return s.entry
}

// Cached returns the cached settings, loading on a miss. Callers that
// must render something regardless use Current instead.
func (s *Service) Cached(ctx context.Context) (*entity.SiteSettings, error) {
	return s.entry.Get(ctx)
}

// Current returns settings for public rendering. It never fails: when the
// backend is unreachable and nothing is cached, the built-in defaults keep
// the site chrome intact.
func (s *Service) Current(ctx context.Context) *entity.SiteSettings {
	settings, err := s.entry.Get(ctx)
	if err != nil {
		s.logger.Warn("settings unavailable, rendering defaults",
			slog.Any("error", err))
		return entity.DefaultSettings()
	}
	return settings
}

// Fresh bypasses the cache for the admin form, so an editor always sees
// the stored values, then refreshes the cache with what it read.
func (s *Service) Fresh(ctx context.Context) (*entity.SiteSettings, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load site settings: %w", err)
	}
	return settings, nil
}

// Update validates and stores changed settings, then refreshes the cache
// so public pages pick the change up immediately instead of at TTL expiry.
func (s *Service) Update(ctx context.Context, settings *entity.SiteSettings) (*entity.SiteSettings, error) {
	if settings.SiteName == "" {
		return nil, &entity.ValidationError{Field: "site_name", Message: "site name is required"}
	}

	updated, err := s.repo.Update(ctx, settings)
	if err != nil {
		return nil, fmt.Errorf("update site settings: %w", err)
	}

	if err := s.entry.Refresh(ctx); err != nil {
		// 保存自体は成功している。キャッシュはTTLで追いつく。
		s.logger.Warn("settings cache refresh after update failed",
			slog.Any("error", err))
	}
	return updated, nil
}
