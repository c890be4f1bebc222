package ports

import (
	"context"

	"github.com/smartlicense/license-api/internal/core/domain"
)

// UserRepository persists user accounts. Username and email are unique; a
// violated constraint surfaces as domain.ErrUserExists.
type UserRepository interface {
	// Create stores the user and returns it with the gateway-assigned ID.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// ExistsByUsernameOrEmail reports whether another user (ID != excludeID)
	// already holds username or email. Pass 0 to check against every user.
	ExistsByUsernameOrEmail(ctx context.Context, username, email string, excludeID int64) (bool, error)
	// Update overwrites every mutable field of the stored user with u's values.
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	SetActive(ctx context.Context, id int64, active bool) (*domain.User, error)
}
