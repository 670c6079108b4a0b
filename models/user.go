package models

import (
	"strings"
	"time"
)

// Roles known to the authorization layer.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents an account entity used for authentication and authorization.
// PasswordHash is a bcrypt digest and must never leave the server.
type User struct {
	// ID is a server-assigned UUIDv7 string.
	ID string `json:"id"`

	// Email is the unique login identifier, stored lower-cased.
	Email string `json:"email"`

	// PasswordHash is never serialized.
	PasswordHash string `json:"-"`

	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`

	// Role is one of RoleUser or RoleAdmin.
	Role string `json:"role"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// RegisterRequest is the body of the registration endpoint.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role,omitempty"`
}

// LoginRequest is the body of the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest is the body of the refresh and logout endpoints.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// LogoutRequest describes which credentials should stop being accepted.
type LogoutRequest struct {
	SubjectID    string
	AccessToken  string
	RefreshToken string
}

// UpdateUserRequest is the body of the user update endpoint. Nil fields are
// left unchanged.
type UpdateUserRequest struct {
	Email     *string `json:"email,omitempty"`
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Role      *string `json:"role,omitempty"`
}

// Apply copies the set fields of req onto user. The email is lower-cased and
// names are trimmed the way registration stores them.
func (req UpdateUserRequest) Apply(user User) User {
	if req.Email != nil {
		user.Email = strings.ToLower(*req.Email)
	}
	if req.FirstName != nil {
		user.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		user.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	return user
}

// UserList is one page of users plus the total number of accounts.
type UserList struct {
	Users []User `json:"users"`
	Total int64  `json:"total"`
}

// ListUsersQuery is the pagination of the user listing endpoint. Page is
// 1-based.
type ListUsersQuery struct {
	Page  uint64
	Limit uint64
}
