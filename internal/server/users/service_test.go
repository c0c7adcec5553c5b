package users

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/amitEt25/aiven-auth-assigment/internal/common"
	"github.com/amitEt25/aiven-auth-assigment/internal/server/auth"
	"github.com/amitEt25/aiven-auth-assigment/internal/server/config"
)

// --- helpers ---

func newTestService(t *testing.T, repo Repository) *Service {
	t.Helper()
	cfg := &config.Config{
		SecretKey:                   "k",
		AccessTokenValidityDuration: time.Hour,
	}
	// reduced cost so the suite stays fast
	hasher := auth.NewHasher(auth.ScryptParams{N: 1024, R: 8, P: 1, SaltLen: 16, KeyLen: 32})
	return NewService(repo, hasher, cfg)
}

type failingRepo struct {
	err error
}

func (f *failingRepo) Create(context.Context, *User) (*User, error)      { return nil, f.err }
func (f *failingRepo) GetByEmail(context.Context, string) (*User, error) { return nil, f.err }
func (f *failingRepo) GetByID(context.Context, int64) (*User, error)     { return nil, f.err }
func (f *failingRepo) List(context.Context) ([]*User, error)             { return nil, f.err }

// --- tests ---

func TestService_Register(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, NewInMemoryRepository())

	res, err := svc.Register(ctx, "alice@example.com", "password1", "Alice", "Smith")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if res.User.ID == 0 {
		t.Errorf("expected assigned user id")
	}
	if res.User.Email != "alice@example.com" {
		t.Errorf("unexpected email: %s", res.User.Email)
	}
	if res.User.PasswordHash == "" || res.User.PasswordHash == "password1" {
		t.Errorf("password was not hashed")
	}
	if res.Token == "" {
		t.Errorf("expected access token")
	}
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, NewInMemoryRepository())

	if _, err := svc.Register(ctx, "alice@example.com", "password1", "Alice", "Smith"); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	_, err := svc.Register(ctx, "alice@example.com", "password2", "Other", "Person")
	if !errors.Is(err, common.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestService_Register_RepoFailurePreservesCause(t *testing.T) {
	ctx := context.Background()
	cause := errors.New("connection refused")
	svc := newTestService(t, &failingRepo{err: cause})

	_, err := svc.Register(ctx, "alice@example.com", "password1", "Alice", "Smith")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, cause) {
		t.Errorf("cause is not wrapped: %v", err)
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("cause missing from message: %v", err)
	}
}

func TestService_Login_RepoFailurePreservesCause(t *testing.T) {
	ctx := context.Background()
	cause := errors.New("connection refused")
	svc := newTestService(t, &failingRepo{err: cause})

	_, err := svc.Login(ctx, "alice@example.com", "password1")
	if !errors.Is(err, cause) {
		t.Errorf("cause is not wrapped: %v", err)
	}
	// an infrastructure failure must not look like bad credentials
	if errors.Is(err, common.ErrInvalidCredentials) {
		t.Errorf("unexpected ErrInvalidCredentials: %v", err)
	}
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, NewInMemoryRepository())

	if _, err := svc.Register(ctx, "alice@example.com", "password1", "Alice", "Smith"); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	res, err := svc.Login(ctx, "alice@example.com", "password1")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if res.Token == "" {
		t.Errorf("expected access token")
	}
	if res.User.Email != "alice@example.com" {
		t.Errorf("unexpected email: %s", res.User.Email)
	}
}

func TestService_Login_InvalidCredentials(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, NewInMemoryRepository())

	if _, err := svc.Register(ctx, "alice@example.com", "password1", "Alice", "Smith"); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "alice@example.com", "wrong"},
		{"unknown email", "nobody@example.com", "password1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(ctx, tt.email, tt.password)
			if !errors.Is(err, common.ErrInvalidCredentials) {
				t.Errorf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

func TestService_GetProfile(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, NewInMemoryRepository())

	res, err := svc.Register(ctx, "alice@example.com", "password1", "Alice", "Smith")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}

	user, err := svc.GetProfile(ctx, res.User.ID)
	if err != nil {
		t.Fatalf("GetProfile error: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Errorf("unexpected email: %s", user.Email)
	}

	_, err = svc.GetProfile(ctx, res.User.ID+100)
	if !errors.Is(err, common.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestService_List_NewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository()
	svc := newTestService(t, repo)

	emails := []string{"a@example.com", "b@example.com", "c@example.com"}
	for _, e := range emails {
		if _, err := svc.Register(ctx, e, "password1", "F", "L"); err != nil {
			t.Fatalf("Register error: %v", err)
		}
	}

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(list) != len(emails) {
		t.Fatalf("expected %d users, got %d", len(emails), len(list))
	}
	for i := range list[:len(list)-1] {
		if list[i].CreatedAt.Before(list[i+1].CreatedAt) {
			t.Errorf("list is not ordered newest first")
		}
	}
}
