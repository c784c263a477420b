package entity

import "time"

// Subscriber is one newsletter signup. Confirmation is a backend concern
// (double opt-in mail); this service only displays and submits state.
type Subscriber struct {
	ID          int64      `json:"id"`
	Email       string     `json:"email"`
	IsConfirmed bool       `json:"is_confirmed"`
	CreatedAt   time.Time  `json:"created_at"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
}

// Validate checks the signup form input.
func (s *Subscriber) Validate() error {
	return ValidateEmail(s.Email)
}

// User is the authenticated backend account behind an admin session.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	Role      string    `json:"role"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// User roles as issued by the backend auth service.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

// CanManage reports whether the user may enter the admin area at all.
func (u *User) CanManage() bool {
	return u.Role == RoleAdmin || u.Role == RoleEditor
}

// IsAdmin reports whether the user holds the admin role. Destructive
// operations (subscriber deletion, settings) require it.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
