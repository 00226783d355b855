package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func seedUser(t *testing.T, repo *mockUserRepository, email, password string, role domain.Role) *domain.User {
	t.Helper()

	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		Name:         "Test User",
		Role:         role,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	repo.users[user.ID] = user
	return user
}

func TestProperty_LoginIssuesVerifiableTokens(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("tokens issued at login validate back to the same user", prop.ForAll(
		func(email string, password string) bool {
			userRepo := newMockUserRepository()
			service := NewAuthService(userRepo, "test-secret-key", DefaultTokenExpiry)
			ctx := context.Background()

			admin := seedUser(t, userRepo, email, password, domain.RoleAdmin)

			token, user, err := service.Login(ctx, email, password)
			if err != nil {
				t.Logf("FAIL: Login failed for valid admin credentials: %v", err)
				return false
			}
			if user.ID != admin.ID {
				t.Logf("FAIL: Login returned the wrong user")
				return false
			}

			userID, err := service.ValidateToken(token)
			if err != nil {
				t.Logf("FAIL: Token validation failed: %v", err)
				return false
			}
			if userID != admin.ID {
				t.Logf("FAIL: Token user id mismatch. Expected %s, got %s", admin.ID, userID)
				return false
			}

			return true
		},
		gen.RegexMatch(`[a-z]{3,10}@[a-z]{3,8}\.(com|org|net)`),
		gen.RegexMatch(`[A-Za-z0-9!@#$%]{8,20}`),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_TamperedTokensAreRejected(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("flipping any byte of the signature invalidates the token", prop.ForAll(
		func(password string, flip uint8) bool {
			userRepo := newMockUserRepository()
			service := NewAuthService(userRepo, "test-secret-key", DefaultTokenExpiry)

			admin := seedUser(t, userRepo, "admin@store.test", password, domain.RoleAdmin)

			token, err := service.IssueToken(admin.ID)
			if err != nil {
				t.Logf("FAIL: IssueToken failed: %v", err)
				return false
			}

			// Corrupt one character of the signature segment.
			raw := []byte(token)
			pos := len(raw) - 1 - int(flip)%10
			if raw[pos] == 'A' {
				raw[pos] = 'B'
			} else {
				raw[pos] = 'A'
			}
			if string(raw) == token {
				return true
			}

			userID, err := service.ValidateToken(string(raw))
			if !errors.Is(err, ErrInvalidToken) {
				t.Logf("FAIL: Expected ErrInvalidToken for tampered token, got: %v", err)
				return false
			}
			if userID != uuid.Nil {
				t.Logf("FAIL: Tampered token leaked a user id")
				return false
			}

			return true
		},
		gen.RegexMatch(`[A-Za-z0-9!@#$%]{8,20}`),
		gen.UInt8(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestLoginRejectsNonAdmin(t *testing.T) {
	userRepo := newMockUserRepository()
	service := NewAuthService(userRepo, "test-secret-key", DefaultTokenExpiry)
	ctx := context.Background()

	seedUser(t, userRepo, "customer@store.test", "correct-password", domain.RoleUser)

	// The password is correct; the role check must still win.
	token, user, err := service.Login(ctx, "customer@store.test", "correct-password")
	if !errors.Is(err, ErrNotAdmin) {
		t.Fatalf("expected ErrNotAdmin, got %v", err)
	}
	if token != "" || user != nil {
		t.Fatal("login must not return a token or user for non-admin accounts")
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	userRepo := newMockUserRepository()
	service := NewAuthService(userRepo, "test-secret-key", DefaultTokenExpiry)
	ctx := context.Background()

	seedUser(t, userRepo, "admin@store.test", "correct-password", domain.RoleAdmin)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "admin@store.test", "wrong-password"},
		{"unknown email", "nobody@store.test", "correct-password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := service.Login(ctx, tt.email, tt.password)
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Fatalf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	userRepo := newMockUserRepository()
	service := NewAuthService(userRepo, "test-secret-key", DefaultTokenExpiry)

	// Sign an already-expired token with the same secret.
	claims := &Claims{
		UserID: uuid.New(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret-key"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	if _, err := service.ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	userRepo := newMockUserRepository()
	issuer := NewAuthService(userRepo, "secret-a", DefaultTokenExpiry)
	verifier := NewAuthService(userRepo, "secret-b", DefaultTokenExpiry)

	token, err := issuer.IssueToken(uuid.New())
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	if _, err := verifier.ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for foreign signature, got %v", err)
	}
}
