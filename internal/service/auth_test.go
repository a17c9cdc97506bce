package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SumitGhughtyal/Suraksha-Setu/internal/crypto"
	"github.com/SumitGhughtyal/Suraksha-Setu/internal/model"
	"github.com/SumitGhughtyal/Suraksha-Setu/internal/repository"
)

// fakeUserStore is an in-memory UserStore enforcing email uniqueness the
// way the database constraint does.
type fakeUserStore struct {
	users  map[string]*model.User
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*model.User), nextID: 1}
}

func (s *fakeUserStore) Create(_ context.Context, user *model.User) error {
	if _, exists := s.users[user.Email]; exists {
		return repository.ErrDuplicateEmail
	}
	user.ID = s.nextID
	user.CreatedAt = time.Now()
	s.nextID++
	stored := *user
	s.users[user.Email] = &stored
	return nil
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	user, ok := s.users[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *fakeUserStore) GetByID(_ context.Context, id int64) (*model.User, error) {
	for _, user := range s.users {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func newTestAuthService(store UserStore) *AuthService {
	return NewAuthService(store, "test-secret", time.Hour, crypto.DefaultCost)
}

func TestRegisterEmptyEmail(t *testing.T) {
	svc := newTestAuthService(newFakeUserStore())

	_, err := svc.Register(context.Background(), model.RegisterRequest{Password: "secret123"})
	if !errors.Is(err, ErrEmailRequired) {
		t.Errorf("Register() error = %v, want ErrEmailRequired", err)
	}
}

func TestRegisterEmptyPassword(t *testing.T) {
	svc := newTestAuthService(newFakeUserStore())

	_, err := svc.Register(context.Background(), model.RegisterRequest{Email: "a@x.com"})
	if !errors.Is(err, ErrPasswordRequired) {
		t.Errorf("Register() error = %v, want ErrPasswordRequired", err)
	}
}

func TestRegisterThenLogin(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestAuthService(store)

	user, err := svc.Register(context.Background(), model.RegisterRequest{
		Email:    "a@x.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}
	if user.Email != "a@x.com" {
		t.Errorf("Register() email = %q, want %q", user.Email, "a@x.com")
	}
	if user.ID == 0 {
		t.Error("Register() returned zero user id")
	}
	if store.users["a@x.com"].PasswordHash == "secret123" {
		t.Fatal("password stored in plaintext")
	}

	token, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    "a@x.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Login() unexpected error: %v", err)
	}

	claims, err := crypto.VerifyToken(token, "test-secret")
	if err != nil {
		t.Fatalf("VerifyToken() unexpected error: %v", err)
	}
	if claims.Email != "a@x.com" {
		t.Errorf("token email claim = %q, want %q", claims.Email, "a@x.com")
	}
	if claims.UserID != user.ID {
		t.Errorf("token user_id claim = %d, want %d", claims.UserID, user.ID)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestAuthService(store)

	req := model.RegisterRequest{Email: "a@x.com", Password: "secret123"}
	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}

	_, err := svc.Register(context.Background(), req)
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("Register() error = %v, want ErrEmailTaken", err)
	}
	if len(store.users) != 1 {
		t.Errorf("store holds %d users after duplicate register, want 1", len(store.users))
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestAuthService(newFakeUserStore())

	if _, err := svc.Register(context.Background(), model.RegisterRequest{
		Email:    "a@x.com",
		Password: "secret123",
	}); err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}

	_, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    "a@x.com",
		Password: "wrong-password",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newTestAuthService(newFakeUserStore())

	// Unknown email and wrong password must be indistinguishable.
	_, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    "nobody@x.com",
		Password: "secret123",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
	}
}

func TestProfile(t *testing.T) {
	svc := newTestAuthService(newFakeUserStore())

	user, err := svc.Register(context.Background(), model.RegisterRequest{
		Email:    "a@x.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}

	got, err := svc.Profile(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("Profile() unexpected error: %v", err)
	}
	if got.Email != "a@x.com" {
		t.Errorf("Profile() email = %q, want %q", got.Email, "a@x.com")
	}

	if _, err := svc.Profile(context.Background(), 9999); !errors.Is(err, repository.ErrUserNotFound) {
		t.Errorf("Profile() error = %v, want ErrUserNotFound", err)
	}
}
