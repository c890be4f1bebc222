package ports

import (
	"context"

	"github.com/smartlicense/license-api/internal/core/domain"
)

// SecretHasher hashes and checks passwords and security answers.
type SecretHasher interface {
	Hash(secret string) (string, error)
	// Verify reports whether secret matches hash. A malformed hash is a mismatch.
	Verify(secret, hash string) bool
}

type CreateUserInput struct {
	Username string
	Password string
	Email    string
	Role     string
	IsActive *bool // defaults to true
}

// UpdateUserInput replaces every field of the user; the password is required.
type UpdateUserInput struct {
	Username string
	Password string
	Email    string
	Role     string
	IsActive bool
}

// ActiveStatus is the projection returned by the is_active endpoints.
type ActiveStatus struct {
	ID       int64 `json:"id"`
	IsActive bool  `json:"is_active"`
}

// IdentityService authenticates staff and manages user accounts.
type IdentityService interface {
	Login(ctx context.Context, username, password, roleHint string) (*domain.Identity, error)
	Authenticate(ctx context.Context, username, password string) (*domain.Identity, error)
	CreateUser(ctx context.Context, in CreateUserInput) (*domain.User, error)
	UpdateUser(ctx context.Context, id int64, in UpdateUserInput) (*domain.User, error)
	SetActive(ctx context.Context, id int64, active bool) (*ActiveStatus, error)
	GetActive(ctx context.Context, id int64) (*ActiveStatus, error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
}
