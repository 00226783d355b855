package transport

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/internal/domain"
	"storefront/internal/service"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"go.uber.org/zap"
)

func newLoginFixture(t *testing.T, email, password string, role domain.Role) (*AuthHandler, service.AuthService) {
	t.Helper()

	repo := newStubUserRepository()
	hash, err := service.HashPassword(password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	repo.users[user.ID] = user

	auth := service.NewAuthService(repo, "test-secret", service.DefaultTokenExpiry)
	return NewAuthHandler(auth, zap.NewNop()), auth
}

func postLogin(handler *AuthHandler, payload interface{}) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.Login(w, req)
	return w
}

func TestProperty_ValidAdminLoginReturnsToken(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("admin credentials yield a verifiable token and the profile", prop.ForAll(
		func(email string, password string) bool {
			handler, auth := newLoginFixture(t, email, password, domain.RoleAdmin)

			w := postLogin(handler, LoginRequest{Email: email, Password: password})
			if w.Code != http.StatusOK {
				t.Logf("FAIL: Expected 200, got %d", w.Code)
				return false
			}

			var resp LoginResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Logf("FAIL: Could not decode response: %v", err)
				return false
			}
			if resp.Token == "" {
				t.Logf("FAIL: Token is empty")
				return false
			}
			if resp.User == nil || resp.User.Email != email {
				t.Logf("FAIL: Profile missing or wrong")
				return false
			}

			userID, err := auth.ValidateToken(resp.Token)
			if err != nil || userID != resp.User.ID {
				t.Logf("FAIL: Returned token does not validate to the user: %v", err)
				return false
			}

			// The hash must never appear in the serialized profile.
			raw, _ := json.Marshal(resp.User)
			if bytes.Contains(raw, []byte("password")) {
				t.Logf("FAIL: Serialized profile leaks password material")
				return false
			}

			return true
		},
		gen.RegexMatch(`[a-z]{3,10}@[a-z]{3,8}\.(com|org|net)`),
		gen.RegexMatch(`[A-Za-z0-9!@#$%]{8,20}`),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestLoginWrongPassword(t *testing.T) {
	handler, _ := newLoginFixture(t, "admin@store.test", "correct-password", domain.RoleAdmin)

	w := postLogin(handler, LoginRequest{Email: "admin@store.test", Password: "wrong"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	handler, _ := newLoginFixture(t, "admin@store.test", "correct-password", domain.RoleAdmin)

	w := postLogin(handler, LoginRequest{Email: "nobody@store.test", Password: "correct-password"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestLoginNonAdminForbidden(t *testing.T) {
	handler, _ := newLoginFixture(t, "customer@store.test", "correct-password", domain.RoleUser)

	// Correct credentials, wrong role.
	w := postLogin(handler, LoginRequest{Email: "customer@store.test", Password: "correct-password"})
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestLoginValidation(t *testing.T) {
	handler, _ := newLoginFixture(t, "admin@store.test", "correct-password", domain.RoleAdmin)

	tests := []struct {
		name    string
		payload interface{}
	}{
		{"missing email", LoginRequest{Password: "correct-password"}},
		{"bad email", LoginRequest{Email: "not-an-email", Password: "correct-password"}},
		{"missing password", LoginRequest{Email: "admin@store.test"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postLogin(handler, tt.payload)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}

			var response map[string]interface{}
			if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
				t.Fatalf("could not decode error response: %v", err)
			}
			if _, ok := response["error"]; !ok {
				t.Fatal("response missing error envelope")
			}
		})
	}
}
