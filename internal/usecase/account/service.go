// Package account serves the admin profile area: login, profile reads and
// updates, password changes. The password-change confirmation check runs
// here, before any network call, matching the original form behavior.
package account

import (
	"context"
	"fmt"
	"strings"

	"fresh-motors-web/internal/config"
	"fresh-motors-web/internal/domain/entity"
	"fresh-motors-web/internal/repository"
)

// Service provides account use cases. Security carries the password
// policy from the YAML security config.
type Service struct {
	Repo     repository.AccountRepository
	Security *config.SecurityConfig
}

// Login exchanges credentials for a backend token plus the user summary.
// Returns entity.ErrUnauthorized when the backend rejects them.
func (s *Service) Login(ctx context.Context, email, password string) (*repository.Credentials, error) {
	if email == "" {
		return nil, &entity.ValidationError{Field: "email", Message: "email is required"}
	}
	if password == "" {
		return nil, &entity.ValidationError{Field: "password", Message: "password is required"}
	}

	creds, err := s.Repo.Login(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if creds.User == nil || !creds.User.CanManage() {
		// 認証は通ったが管理画面には入れないロール
		return nil, fmt.Errorf("%w: account has no management role", entity.ErrForbidden)
	}
	return creds, nil
}

// Profile fetches the user behind the session token.
func (s *Service) Profile(ctx context.Context, token string) (*entity.User, error) {
	user, err := s.Repo.CurrentUser(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return user, nil
}

// UpdateProfile applies a partial profile update.
func (s *Service) UpdateProfile(ctx context.Context, token string, update repository.ProfileUpdate) (*entity.User, error) {
	if update.Email != nil {
		if err := entity.ValidateEmail(*update.Email); err != nil {
			return nil, err
		}
	}
	if update.Name != nil && strings.TrimSpace(*update.Name) == "" {
		return nil, &entity.ValidationError{Field: "name", Message: "name must not be blank"}
	}

	user, err := s.Repo.UpdateProfile(ctx, token, update)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return user, nil
}

// ChangePassword validates the form and submits the change. The
// new/confirmation equality check and the password policy run before any
// network call; on a local failure the backend never sees the request.
func (s *Service) ChangePassword(ctx context.Context, token, current, next, confirm string) error {
	if current == "" {
		return &entity.ValidationError{Field: "current_password", Message: "current password is required"}
	}
	if err := s.checkPasswordPolicy(next); err != nil {
		return err
	}
	if next != confirm {
		return &entity.ValidationError{Field: "confirm_password", Message: "passwords do not match"}
	}
	if next == current {
		return &entity.ValidationError{Field: "new_password", Message: "new password must differ from the current one"}
	}

	if err := s.Repo.ChangePassword(ctx, token, current, next); err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	return nil
}

func (s *Service) checkPasswordPolicy(next string) error {
	if next == "" {
		return &entity.ValidationError{Field: "new_password", Message: "new password is required"}
	}
	minLen := s.Security.GetMinPasswordLength()
	if len([]rune(next)) < minLen {
		return &entity.ValidationError{
			Field:   "new_password",
			Message: fmt.Sprintf("password must be at least %d characters", minLen),
		}
	}
	lowered := strings.ToLower(next)
	for _, weak := range s.Security.GetWeakPasswords() {
		if lowered == strings.ToLower(weak) {
			return &entity.ValidationError{Field: "new_password", Message: "password is too common"}
		}
	}
	return nil
}
