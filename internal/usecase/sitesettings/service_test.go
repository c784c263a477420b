package sitesettings_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"fresh-motors-web/internal/domain/entity"
	"fresh-motors-web/internal/usecase/sitesettings"
)

type stubRepo struct {
	settings *entity.SiteSettings
	getErr   error

	gets    int
	updated *entity.SiteSettings
}

func (s *stubRepo) Get(context.Context) (*entity.SiteSettings, error) {
	s.gets++
	return s.settings, s.getErr
}

func (s *stubRepo) Update(_ context.Context, settings *entity.SiteSettings) (*entity.SiteSettings, error) {
	s.updated = settings
	s.settings = settings
	return settings, nil
}

func newService(repo *stubRepo) *sitesettings.Service {
	return sitesettings.NewService(repo, time.Minute, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestCurrentCachesReads(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{settings: &entity.SiteSettings{SiteName: "Fresh Motors", Tagline: "Автомобильные новости"}}
	svc := newService(repo)

	first := svc.Current(context.Background())
	second := svc.Current(context.Background())

	if first.SiteName != "Fresh Motors" || second.SiteName != "Fresh Motors" {
		t.Errorf("settings = %+v / %+v", first, second)
	}
	if repo.gets != 1 {
		t.Errorf("backend reads = %d, want 1 (second read from cache)", repo.gets)
	}
}

func TestCurrentFallsBackToDefaults(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{getErr: entity.ErrBackendUnavailable}
	svc := newService(repo)

	got := svc.Current(context.Background())
	if got.SiteName != "Fresh Motors" {
		t.Errorf("fallback settings = %+v, want built-in defaults", got)
	}
	if !got.CommentsOpen {
		t.Error("default feature toggles must stay on")
	}
}

func TestUpdateRequiresSiteName(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{settings: &entity.SiteSettings{SiteName: "Fresh Motors"}}
	svc := newService(repo)

	if _, err := svc.Update(context.Background(), &entity.SiteSettings{}); err == nil {
		t.Error("Update() accepted empty site name")
	}
	if repo.updated != nil {
		t.Error("invalid settings reached the repository")
	}
}

func TestUpdateRefreshesCache(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{settings: &entity.SiteSettings{SiteName: "Fresh Motors"}}
	svc := newService(repo)

	// Warm the cache with the old value.
	if got := svc.Current(context.Background()); got.Tagline != "" {
		t.Fatalf("unexpected tagline %q", got.Tagline)
	}

	_, err := svc.Update(context.Background(), &entity.SiteSettings{
		SiteName: "Fresh Motors",
		Tagline:  "Новый слоган",
	})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}

	if got := svc.Current(context.Background()); got.Tagline != "Новый слоган" {
		t.Errorf("tagline after update = %q, cache should refresh immediately", got.Tagline)
	}
}

func TestFreshBypassesCache(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{settings: &entity.SiteSettings{SiteName: "Fresh Motors"}}
	svc := newService(repo)

	_ = svc.Current(context.Background())
	if _, err := svc.Fresh(context.Background()); err != nil {
		t.Fatalf("Fresh() error: %v", err)
	}
	if repo.gets != 2 {
		t.Errorf("backend reads = %d, want cache read + fresh read", repo.gets)
	}
}
