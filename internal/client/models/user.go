// Package models defines the wire and domain types of the RootShare client.
package models

// Role is the access level the backend grants a user.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// AuthProvider tells how an account was created.
type AuthProvider string

const (
	AuthProviderLocal  AuthProvider = "local"
	AuthProviderGoogle AuthProvider = "google"
)

// User is the authenticated account as returned by auth/me and the login
// endpoints. Values are replaced wholesale on every fetch.
type User struct {
	ID              string       `json:"_id"`
	Email           string       `json:"email"`
	Username        string       `json:"username"`
	ProfileImageURL *string      `json:"profileImageUrl,omitempty"`
	Role            Role         `json:"role"`
	AuthProvider    AuthProvider `json:"authProvider"`
	CreatedAt       string       `json:"createdAt"`
	UpdatedAt       string       `json:"updatedAt"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
