package domain

import (
	"slices"
	"time"
)

const (
	RoleLearner    = "learner"
	RoleInstructor = "instructor"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// Roles lists every role a user may hold.
var Roles = []string{RoleLearner, RoleInstructor, RoleAdmin, RoleSuperAdmin}

// StaffRoles are the roles allowed to authenticate against the application.
var StaffRoles = []string{RoleInstructor, RoleAdmin, RoleSuperAdmin}

// ValidRole reports whether role belongs to the closed role set.
func ValidRole(role string) bool {
	return slices.Contains(Roles, role)
}

// IsStaff reports whether role may log in.
func IsStaff(role string) bool {
	return slices.Contains(StaffRoles, role)
}

// User models an account holder: learner, instructor or administrator.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// Identity is what a successful login reveals about the caller.
type Identity struct {
	UserID   int64  `json:"userid"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Email    string `json:"email"`
}

// Identity returns the login payload for u.
func (u *User) Identity() Identity {
	return Identity{UserID: u.ID, Username: u.Username, Role: u.Role, Email: u.Email}
}
