package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/smartlicense/license-api/internal/core/domain"
	"github.com/smartlicense/license-api/internal/core/ports"
)

// IdentityService implements login, per-request authentication and user management.
type IdentityService struct {
	users  ports.UserRepository
	hasher ports.SecretHasher
	log    zerolog.Logger
}

func NewIdentityService(users ports.UserRepository, hasher ports.SecretHasher, log zerolog.Logger) *IdentityService {
	return &IdentityService{users: users, hasher: hasher, log: log}
}

// Login checks credentials and returns the caller's identity. roleHint is the
// role the client claims to log in as; it is recorded and otherwise ignored.
func (s *IdentityService) Login(ctx context.Context, username, password, roleHint string) (*domain.Identity, error) {
	s.log.Debug().Str("username", username).Str("role_hint", roleHint).Msg("login attempt")
	return s.Authenticate(ctx, username, password)
}

// Authenticate applies the login rules in order: unknown user and wrong
// password are indistinguishable, then the role and the active flag are checked.
func (s *IdentityService) Authenticate(ctx context.Context, username, password string) (*domain.Identity, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	if !domain.IsStaff(user.Role) {
		return nil, domain.ErrRoleNotAllowed
	}
	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}

	id := user.Identity()
	return &id, nil
}

func (s *IdentityService) CreateUser(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	if err := validateAccount(in.Username, in.Password, in.Email, in.Role); err != nil {
		return nil, err
	}

	taken, err := s.users.ExistsByUsernameOrEmail(ctx, in.Username, in.Email, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrUserExists
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}

	created, err := s.users.Create(ctx, &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         in.Role,
		IsActive:     active,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("user_id", created.ID).Str("role", created.Role).Msg("user created")
	return created, nil
}

// UpdateUser replaces every mutable field, re-hashing the password.
func (s *IdentityService) UpdateUser(ctx context.Context, id int64, in ports.UpdateUserInput) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateAccount(in.Username, in.Password, in.Email, in.Role); err != nil {
		return nil, err
	}

	taken, err := s.users.ExistsByUsernameOrEmail(ctx, in.Username, in.Email, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrUserExists
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user.Username = in.Username
	user.Email = in.Email
	user.PasswordHash = hash
	user.Role = in.Role
	user.IsActive = in.IsActive

	updated, err := s.users.Update(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("user_id", id).Msg("user updated")
	return updated, nil
}

func (s *IdentityService) SetActive(ctx context.Context, id int64, active bool) (*ports.ActiveStatus, error) {
	user, err := s.users.SetActive(ctx, id, active)
	if err != nil {
		return nil, err
	}
	s.log.Info().Int64("user_id", id).Bool("is_active", active).Msg("user active flag set")
	return &ports.ActiveStatus{ID: user.ID, IsActive: user.IsActive}, nil
}

func (s *IdentityService) GetActive(ctx context.Context, id int64) (*ports.ActiveStatus, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ports.ActiveStatus{ID: user.ID, IsActive: user.IsActive}, nil
}

func (s *IdentityService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *IdentityService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.users.FindByUsername(ctx, username)
}

// EnsureBootstrapAdmin creates a super_admin named username unless a user with
// that username already exists. It reports whether a user was created. Empty
// username or password disables bootstrapping.
func (s *IdentityService) EnsureBootstrapAdmin(ctx context.Context, username, password, email string) (bool, error) {
	if username == "" || password == "" {
		return false, nil
	}

	_, err := s.users.FindByUsername(ctx, username)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return false, err
	}

	if email == "" {
		email = username + "@localhost"
	}
	if _, err := s.CreateUser(ctx, ports.CreateUserInput{
		Username: username,
		Password: password,
		Email:    email,
		Role:     domain.RoleSuperAdmin,
	}); err != nil {
		return false, err
	}

	s.log.Warn().Str("username", username).Msg("bootstrap super admin created")
	return true, nil
}

func validateAccount(username, password, email, role string) error {
	switch {
	case strings.TrimSpace(username) == "":
		return domain.Invalid("username is required")
	case password == "":
		return domain.Invalid("password is required")
	case strings.TrimSpace(email) == "":
		return domain.Invalid("email is required")
	case !domain.ValidRole(role):
		return domain.Invalid("role must be one of: %s", strings.Join(domain.Roles, " "))
	}
	return nil
}
