package types

import (
	"strings"
	"time"
)

// User roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// AdminUsername is the fixed username of the seeded system account.
const AdminUsername = "admin"

// User represents an account that owns labels, memos, and contacts.
// Username and email are unique case-insensitively; the Users table enforces
// both with NOCASE unique indexes.
type User struct {
	ID           string // UUID v7, generated on creation.
	Username     string // Required, unique (case-insensitive).
	PasswordHash string // Digest produced by a PasswordHasher; never plaintext.
	Email        string // Required, unique (case-insensitive).
	FirstName    string // Optional profile fields; empty means absent.
	LastName     string
	Phone        string
	DateOfBirth  *time.Time // Optional; nil means absent.
	Bio          string
	Avatar       string
	Role         string // RoleUser or RoleAdmin.
	IsActive     bool
	IsSystem     bool // Protected from update and delete.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName derives the display name from the first and last name. Empty or
// whitespace-only components are dropped; when both are empty the result is
// the empty string.
func (u *User) FullName() string {
	first := strings.TrimSpace(u.FirstName)
	last := strings.TrimSpace(u.LastName)
	switch {
	case first == "":
		return last
	case last == "":
		return first
	default:
		return first + " " + last
	}
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
