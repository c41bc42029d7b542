package models

import (
	"time"
)

// User represents an account provisioned from a verified OIDC identity.
// Rows are created on first successful login and refreshed on later logins.
type User struct {
	// ID is the unique identifier for the user.
	ID uint64 `gorm:"primaryKey"`
	// Subject is the OIDC subject (sub claim) identifying the user at the provider.
	Subject string `gorm:"unique;size:255;not null"`
	// Email is the user's email address from the verified claims.
	Email string `gorm:"size:255;not null"`
	// Name is the user's display name from the verified claims.
	Name string `gorm:"size:255"`
	// Roles are the roles assigned to the user, ordered by role id.
	Roles []Role `gorm:"many2many:user_roles"`
	// CreatedAt is the timestamp when the user was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the user was last updated (managed by GORM).
	UpdatedAt time.Time
}

// RoleNames returns the user's role names in role id order.
func (u *User) RoleNames() []string {
	out := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		out = append(out, r.Name)
	}

	return out
}
