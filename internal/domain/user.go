package domain

import (
	"context"
	"time"
)

// Roles carried in access tokens.
const (
	RoleOrganizer = "organizer"
	RoleEntrant   = "entrant"
)

// User holds the contact details and preferences the lottery needs.
// swagger:model User
type User struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
	// NotificationsEnabled is nil when the user never chose; that counts as enabled.
	NotificationsEnabled *bool     `json:"notifications_enabled,omitempty"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// WantsNotifications reports the effective preference.
func (u *User) WantsNotifications() bool {
	return u == nil || u.NotificationsEnabled == nil || *u.NotificationsEnabled
}

// Principal is the authenticated caller.
type Principal struct {
	UserID string
	Email  string
	Roles  []string
}

// HasRole reports whether the principal carries role.
func (p Principal) HasRole(role string) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(userID, email string, roles []string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated principal.
type TokenVerifier interface {
	Verify(token string) (Principal, error)
}

// UserRepository defines the interface for user storage
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*User, error)
	// SetNotificationsEnabled creates the user row when it does not exist yet.
	SetNotificationsEnabled(ctx context.Context, id string, enabled bool) (*User, error)
}
