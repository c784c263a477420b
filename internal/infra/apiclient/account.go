package apiclient

import (
	"context"
	"fmt"

	"fresh-motors-web/internal/domain/entity"
	"fresh-motors-web/internal/repository"
)

// AccountClient implements repository.AccountRepository against /auth.
type AccountClient struct {
	*Client
}

// NewAccountClient creates an account repository backed by the REST API.
func NewAccountClient(c *Client) *AccountClient {
	return &AccountClient{Client: c}
}

// Login exchanges credentials for a backend access token.
func (a *AccountClient) Login(ctx context.Context, email, password string) (*repository.Credentials, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", entity.ErrInvalidInput)
	}
	body := map[string]string{
		"email":    email,
		"password": password,
	}
	var creds repository.Credentials
	if err := a.post(ctx, "/auth/login/", body, &creds); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return &creds, nil
}

// CurrentUser fetches the profile behind the given access token.
func (a *AccountClient) CurrentUser(ctx context.Context, token string) (*entity.User, error) {
	var user entity.User
	if err := a.get(WithToken(ctx, token), "/auth/me/", nil, &user); err != nil {
		return nil, fmt.Errorf("fetch current user: %w", err)
	}
	return &user, nil
}

// UpdateProfile applies a partial profile update for the token's user.
func (a *AccountClient) UpdateProfile(ctx context.Context, token string, update repository.ProfileUpdate) (*entity.User, error) {
	if update.Email != nil {
		if err := entity.ValidateEmail(*update.Email); err != nil {
			return nil, err
		}
	}
	var user entity.User
	if err := a.patch(WithToken(ctx, token), "/auth/profile/", update, &user); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return &user, nil
}

// ChangePassword submits the current and the new password.
// Confirmation equality is the caller's concern and never reaches this call.
func (a *AccountClient) ChangePassword(ctx context.Context, token, current, next string) error {
	body := map[string]string{
		"current_password": current,
		"new_password":     next,
	}
	if err := a.post(WithToken(ctx, token), "/auth/change-password/", body, nil); err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	return nil
}

// SettingsClient implements repository.SettingsRepository against /settings.
type SettingsClient struct {
	*Client
}

// NewSettingsClient creates a settings repository backed by the REST API.
func NewSettingsClient(c *Client) *SettingsClient {
	return &SettingsClient{Client: c}
}

// Get retrieves the site settings singleton.
func (s *SettingsClient) Get(ctx context.Context) (*entity.SiteSettings, error) {
	var settings entity.SiteSettings
	if err := s.get(ctx, "/settings/", nil, &settings); err != nil {
		return nil, fmt.Errorf("get site settings: %w", err)
	}
	return &settings, nil
}

// Update stores changed site settings.
func (s *SettingsClient) Update(ctx context.Context, settings *entity.SiteSettings) (*entity.SiteSettings, error) {
	if settings.SiteName == "" {
		return nil, fmt.Errorf("%w: site name is required", entity.ErrInvalidInput)
	}
	var updated entity.SiteSettings
	if err := s.patch(ctx, "/settings/", settings, &updated); err != nil {
		return nil, fmt.Errorf("update site settings: %w", err)
	}
	return &updated, nil
}

// AnalyticsClient implements repository.AnalyticsRepository.
type AnalyticsClient struct {
	*Client
}

// NewAnalyticsClient creates an analytics repository backed by the REST API.
func NewAnalyticsClient(c *Client) *AnalyticsClient {
	return &AnalyticsClient{Client: c}
}

// Summary retrieves the dashboard aggregate (counts, top articles,
// views by day).
func (an *AnalyticsClient) Summary(ctx context.Context) (*entity.AnalyticsSummary, error) {
	var summary entity.AnalyticsSummary
	if err := an.get(ctx, "/analytics/summary/", nil, &summary); err != nil {
		return nil, fmt.Errorf("get analytics summary: %w", err)
	}
	return &summary, nil
}
