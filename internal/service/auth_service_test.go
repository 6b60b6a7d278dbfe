package service_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/vedran77/bloglist/internal/repository/sqlite"
	"github.com/vedran77/bloglist/internal/service"
)

const testJWTSecret = "test-secret-key-for-unit-tests"

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestAuthService(t *testing.T) *service.AuthService {
	t.Helper()
	db := newTestDB(t)
	return service.NewAuthService(sqlite.NewUserRepo(db), testJWTSecret)
}

func TestAuthService_Register_Success(t *testing.T) {
	auth := newTestAuthService(t)
	ctx := context.Background()

	user, err := auth.Register(ctx, service.RegisterInput{
		Username: "root",
		Name:     "Superuser",
		Password: "sekret",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if user.ID == uuid.Nil {
		t.Fatal("expected user ID to be set")
	}
	if user.Username != "root" {
		t.Fatalf("expected username root, got %s", user.Username)
	}
	if user.PasswordHash == "sekret" {
		t.Fatal("password hash must not equal the plaintext password")
	}
	if user.Posts == nil || len(user.Posts) != 0 {
		t.Fatalf("expected empty post list, got %v", user.Posts)
	}
}

func TestAuthService_Register_ShortPassword(t *testing.T) {
	auth := newTestAuthService(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, service.RegisterInput{
		Username: "shorty",
		Name:     "Short Password",
		Password: "pw",
	})
	if !errors.Is(err, service.ErrPasswordTooShort) {
		t.Fatalf("expected ErrPasswordTooShort, got %v", err)
	}
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	auth := newTestAuthService(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, service.RegisterInput{Username: "dup", Name: "First", Password: "sekret"})
	if err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, err = auth.Register(ctx, service.RegisterInput{Username: "dup", Name: "Second", Password: "hunter2"})
	if !errors.Is(err, service.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestAuthService_Register_EmptyPassword(t *testing.T) {
	auth := newTestAuthService(t)
	ctx := context.Background()

	// An absent password skips the length rule and fails at the hashing
	// step instead.
	_, err := auth.Register(ctx, service.RegisterInput{Username: "nopw", Name: "No Password"})
	if err == nil {
		t.Fatal("expected error for empty password")
	}
	if errors.Is(err, service.ErrPasswordTooShort) {
		t.Fatalf("expected a generic hashing failure, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	auth := newTestAuthService(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, service.RegisterInput{Username: "root", Name: "Superuser", Password: "sekret"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	resp, err := auth.Login(ctx, service.LoginInput{Username: "root", Password: "sekret"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected non-empty token")
	}
	if resp.Username != "root" || resp.Name != "Superuser" {
		t.Fatalf("unexpected login response: %+v", resp)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	auth := newTestAuthService(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, service.RegisterInput{Username: "root", Name: "Superuser", Password: "sekret"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, err = auth.Login(ctx, service.LoginInput{Username: "root", Password: "wrong"})
	if !errors.Is(err, service.ErrInvalidCreds) {
		t.Fatalf("expected ErrInvalidCreds, got %v", err)
	}
}

func TestAuthService_Login_UnknownUsername(t *testing.T) {
	auth := newTestAuthService(t)

	_, err := auth.Login(context.Background(), service.LoginInput{Username: "nobody", Password: "sekret"})
	if !errors.Is(err, service.ErrInvalidCreds) {
		t.Fatalf("expected ErrInvalidCreds, got %v", err)
	}
}

func TestAuthService_Token_RoundTrip(t *testing.T) {
	auth := newTestAuthService(t)
	ctx := context.Background()

	user, err := auth.Register(ctx, service.RegisterInput{Username: "root", Name: "Superuser", Password: "sekret"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	resp, err := auth.Login(ctx, service.LoginInput{Username: "root", Password: "sekret"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	userID, err := auth.ValidateToken(resp.Token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if userID != user.ID {
		t.Fatalf("expected user ID %s, got %s", user.ID, userID)
	}
}

func TestAuthService_Token_Malformed(t *testing.T) {
	auth := newTestAuthService(t)

	_, err := auth.ValidateToken("not-a-valid-jwt")
	if !errors.Is(err, service.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAuthService_Token_Tampered(t *testing.T) {
	auth := newTestAuthService(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, service.RegisterInput{Username: "root", Name: "Superuser", Password: "sekret"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	resp, err := auth.Login(ctx, service.LoginInput{Username: "root", Password: "sekret"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	tampered := resp.Token[:len(resp.Token)-5] + "XXXXX"
	_, err = auth.ValidateToken(tampered)
	if !errors.Is(err, service.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for tampered token, got %v", err)
	}
}

func TestAuthService_Token_WrongSecret(t *testing.T) {
	db := newTestDB(t)
	userRepo := sqlite.NewUserRepo(db)
	auth1 := service.NewAuthService(userRepo, "secret-one")
	auth2 := service.NewAuthService(userRepo, "secret-two")
	ctx := context.Background()

	_, err := auth1.Register(ctx, service.RegisterInput{Username: "root", Name: "Superuser", Password: "sekret"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	resp, err := auth1.Login(ctx, service.LoginInput{Username: "root", Password: "sekret"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	_, err = auth2.ValidateToken(resp.Token)
	if !errors.Is(err, service.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}
