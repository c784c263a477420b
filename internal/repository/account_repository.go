package repository

import (
	"context"

	"fresh-motors-web/internal/domain/entity"
)

// Credentials is the token pair issued by the backend auth endpoint
// together with the authenticated user.
type Credentials struct {
	AccessToken string       `json:"access_token"`
	ExpiresIn   int64        `json:"expires_in"`
	User        *entity.User `json:"user"`
}

// ProfileUpdate carries the PATCHable profile fields. Nil means
// "leave unchanged", mirroring the backend's partial update contract.
type ProfileUpdate struct {
	Name      *string `json:"name,omitempty"`
	Email     *string `json:"email,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

type AccountRepository interface {
	// Login exchanges credentials for a backend access token.
	// Returns entity.ErrUnauthorized on rejected credentials.
	Login(ctx context.Context, email, password string) (*Credentials, error)
	// CurrentUser fetches the profile behind the given access token.
	CurrentUser(ctx context.Context, token string) (*entity.User, error)
	UpdateProfile(ctx context.Context, token string, update ProfileUpdate) (*entity.User, error)
	// ChangePassword submits the old and new password. The confirmation
	// equality check happens before this call, never inside it.
	ChangePassword(ctx context.Context, token, current, next string) error
}

type SettingsRepository interface {
	Get(ctx context.Context) (*entity.SiteSettings, error)
	Update(ctx context.Context, settings *entity.SiteSettings) (*entity.SiteSettings, error)
}

type AnalyticsRepository interface {
	Summary(ctx context.Context) (*entity.AnalyticsSummary, error)
}

type VehicleSpecRepository interface {
	// GetByArticle returns entity.ErrNotFound when no sheet exists yet.
	GetByArticle(ctx context.Context, articleID int64) (*entity.VehicleSpec, error)
	Upsert(ctx context.Context, spec *entity.VehicleSpec) (*entity.VehicleSpec, error)
	// Extract posts free text to the backend extraction helper and
	// returns the parsed sheet without persisting it.
	Extract(ctx context.Context, articleID int64, text string) (*entity.VehicleSpec, error)
}

type GenerationRepository interface {
	// Start submits a generation task and returns its id for progress
	// streaming.
	Start(ctx context.Context, req *entity.GenerationRequest) (*entity.GenerationTask, error)
	Status(ctx context.Context, taskID string) (*entity.GenerationTask, error)
}
