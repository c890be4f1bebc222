package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/smartlicense/license-api/internal/core/domain"
	"github.com/smartlicense/license-api/internal/core/ports"
)

func newIdentityService() (*IdentityService, *stubUserRepo) {
	repo := newStubUserRepo()
	return NewIdentityService(repo, prefixHasher{}, zerolog.Nop()), repo
}

func mustCreateUser(t *testing.T, svc *IdentityService, username, role string, active bool) *domain.User {
	t.Helper()
	u, err := svc.CreateUser(context.Background(), ports.CreateUserInput{
		Username: username,
		Password: "pw-" + username,
		Email:    username + "@example.com",
		Role:     role,
		IsActive: &active,
	})
	if err != nil {
		t.Fatalf("CreateUser(%s) returned error: %v", username, err)
	}
	return u
}

func TestIdentityService_CreateUser_HashesPassword(t *testing.T) {
	svc, repo := newIdentityService()

	u := mustCreateUser(t, svc, "alice", domain.RoleInstructor, true)
	stored := repo.users[u.ID]
	if stored.PasswordHash == "pw-alice" {
		t.Fatalf("expected password to be hashed")
	}
	if !u.IsActive {
		t.Fatalf("expected user to be active")
	}
}

func TestIdentityService_CreateUser_DefaultsActive(t *testing.T) {
	svc, _ := newIdentityService()

	u, err := svc.CreateUser(context.Background(), ports.CreateUserInput{
		Username: "bob", Password: "pw", Email: "bob@example.com", Role: domain.RoleLearner,
	})
	if err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}
	if !u.IsActive {
		t.Fatalf("expected is_active to default to true")
	}
}

func TestIdentityService_CreateUser_Duplicate(t *testing.T) {
	svc, _ := newIdentityService()
	mustCreateUser(t, svc, "carol", domain.RoleAdmin, true)

	cases := []ports.CreateUserInput{
		{Username: "carol", Password: "x", Email: "other@example.com", Role: domain.RoleAdmin},
		{Username: "other", Password: "x", Email: "carol@example.com", Role: domain.RoleAdmin},
	}
	for _, in := range cases {
		_, err := svc.CreateUser(context.Background(), in)
		if !errors.Is(err, domain.ErrConflict) {
			t.Fatalf("expected ErrConflict for %+v, got %v", in, err)
		}
	}
}

func TestIdentityService_CreateUser_InvalidRole(t *testing.T) {
	svc, _ := newIdentityService()

	_, err := svc.CreateUser(context.Background(), ports.CreateUserInput{
		Username: "dave", Password: "pw", Email: "dave@example.com", Role: "root",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestIdentityService_Login(t *testing.T) {
	svc, _ := newIdentityService()
	instructor := mustCreateUser(t, svc, "ivan", domain.RoleInstructor, true)
	mustCreateUser(t, svc, "lena", domain.RoleLearner, true)
	mustCreateUser(t, svc, "otto", domain.RoleInstructor, false)

	cases := []struct {
		name     string
		username string
		password string
		want     error
	}{
		{"unknown user", "ghost", "pw", domain.ErrInvalidCredentials},
		{"wrong password", "ivan", "nope", domain.ErrInvalidCredentials},
		{"empty password", "ivan", "", domain.ErrInvalidCredentials},
		{"learner", "lena", "pw-lena", domain.ErrForbidden},
		{"inactive instructor", "otto", "pw-otto", domain.ErrForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tc.username, tc.password, domain.RoleInstructor)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	id, err := svc.Login(context.Background(), "ivan", "pw-ivan", "anything")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	want := domain.Identity{UserID: instructor.ID, Username: "ivan", Role: domain.RoleInstructor, Email: "ivan@example.com"}
	if *id != want {
		t.Fatalf("unexpected identity: %+v", id)
	}
}

func TestIdentityService_Login_UnknownAndWrongPasswordLookTheSame(t *testing.T) {
	svc, _ := newIdentityService()
	mustCreateUser(t, svc, "ivan", domain.RoleInstructor, true)

	_, errUnknown := svc.Login(context.Background(), "ghost", "pw", "")
	_, errWrong := svc.Login(context.Background(), "ivan", "bad", "")
	if errUnknown != errWrong {
		t.Fatalf("expected identical errors, got %v and %v", errUnknown, errWrong)
	}
}

func TestIdentityService_UpdateUser(t *testing.T) {
	svc, repo := newIdentityService()
	alice := mustCreateUser(t, svc, "alice", domain.RoleInstructor, true)
	mustCreateUser(t, svc, "bob", domain.RoleInstructor, true)

	// Keeping its own username and email is not a conflict.
	updated, err := svc.UpdateUser(context.Background(), alice.ID, ports.UpdateUserInput{
		Username: "alice", Password: "new", Email: "alice@example.com", Role: domain.RoleAdmin, IsActive: true,
	})
	if err != nil {
		t.Fatalf("UpdateUser returned error: %v", err)
	}
	if updated.Role != domain.RoleAdmin {
		t.Fatalf("expected role admin, got %s", updated.Role)
	}
	if repo.users[alice.ID].PasswordHash != "hashed:new" {
		t.Fatalf("expected password to be re-hashed")
	}

	_, err = svc.UpdateUser(context.Background(), alice.ID, ports.UpdateUserInput{
		Username: "bob", Password: "x", Email: "alice@example.com", Role: domain.RoleAdmin,
	})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	_, err = svc.UpdateUser(context.Background(), 999, ports.UpdateUserInput{
		Username: "x", Password: "x", Email: "x@example.com", Role: domain.RoleAdmin,
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestIdentityService_SetActive_Idempotent(t *testing.T) {
	svc, _ := newIdentityService()
	u := mustCreateUser(t, svc, "ivan", domain.RoleInstructor, true)

	for i := 0; i < 2; i++ {
		status, err := svc.SetActive(context.Background(), u.ID, false)
		if err != nil {
			t.Fatalf("SetActive returned error: %v", err)
		}
		if status.IsActive || status.ID != u.ID {
			t.Fatalf("unexpected status: %+v", status)
		}
	}

	status, err := svc.GetActive(context.Background(), u.ID)
	if err != nil || status.IsActive {
		t.Fatalf("expected inactive user, got %+v, %v", status, err)
	}

	if _, err := svc.Login(context.Background(), "ivan", "pw-ivan", ""); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected deactivated user to be forbidden, got %v", err)
	}

	if _, err := svc.SetActive(context.Background(), 42, true); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestIdentityService_EnsureBootstrapAdmin(t *testing.T) {
	svc, _ := newIdentityService()
	ctx := context.Background()

	created, err := svc.EnsureBootstrapAdmin(ctx, "root", "toor", "")
	if err != nil || !created {
		t.Fatalf("expected admin to be created, got %v, %v", created, err)
	}
	created, err = svc.EnsureBootstrapAdmin(ctx, "root", "toor", "")
	if err != nil || created {
		t.Fatalf("expected second call to be a no-op, got %v, %v", created, err)
	}

	id, err := svc.Login(ctx, "root", "toor", "")
	if err != nil {
		t.Fatalf("bootstrap admin cannot log in: %v", err)
	}
	if id.Role != domain.RoleSuperAdmin {
		t.Fatalf("expected super_admin, got %s", id.Role)
	}

	if created, _ := svc.EnsureBootstrapAdmin(ctx, "", "", ""); created {
		t.Fatalf("expected empty credentials to disable bootstrapping")
	}
}
