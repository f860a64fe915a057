package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"johar-connect/internal/domain"
)

func TestJWTService_IssueParseAccess(t *testing.T) {
	svc := NewJWTService("secret", 30*time.Minute)
	user := domain.User{ID: "u1", Email: "tourist@example.com", Role: domain.RoleTourist}

	resp, err := svc.Issue(user)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if resp.AccessToken == "" || resp.TokenType != "bearer" || resp.ExpiresIn != 1800 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.User.ID != "u1" {
		t.Fatalf("expected user in response")
	}

	claims, err := svc.ParseAccessToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("parse access: %v", err)
	}
	if claims.UserID != "u1" || claims.Role != domain.RoleTourist || claims.ID == "" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestJWTService_Revoke(t *testing.T) {
	svc := NewJWTServiceWithStore("secret", time.Minute, NewMemoryRevokedTokenStore())
	resp, err := svc.Issue(domain.User{ID: "u1", Email: "guide@example.com", Role: domain.RoleGuide})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if err := svc.Revoke(resp.AccessToken); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if _, err := svc.ParseAccessToken(resp.AccessToken); !errors.Is(err, ErrJWTRevoked) {
		t.Fatalf("expected ErrJWTRevoked, got %v", err)
	}
}

func TestJWTService_RejectsEmptySecret(t *testing.T) {
	svc := NewJWTService("", time.Minute)
	if _, err := svc.Issue(domain.User{ID: "u1"}); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected ErrJWTInvalid on empty secret, got %v", err)
	}
}

func signClaims(t *testing.T, claims Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestJWTService_RejectsWrongIssuer(t *testing.T) {
	svc := NewJWTService("secret", time.Minute)
	now := time.Now().UTC()
	signed := signClaims(t, Claims{
		UserID:    "u1",
		TokenType: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "j1",
			Issuer:    "other-issuer",
			Subject:   "u1",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(10 * time.Minute)),
		},
	})

	if _, err := svc.ParseAccessToken(signed); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected ErrJWTInvalid for wrong issuer, got %v", err)
	}
}

func TestJWTService_Expired(t *testing.T) {
	svc := NewJWTService("secret", time.Minute)
	now := time.Now().UTC()
	signed := signClaims(t, Claims{
		UserID:    "u1",
		TokenType: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "j1",
			Issuer:    "johar-connect",
			Subject:   "u1",
			IssuedAt:  jwt.NewNumericDate(now.Add(-time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute)),
		},
	})

	if _, err := svc.ParseAccessToken(signed); !errors.Is(err, ErrJWTExpired) {
		t.Fatalf("expected ErrJWTExpired, got %v", err)
	}
}

func TestJWTService_RejectsGarbage(t *testing.T) {
	svc := NewJWTService("secret", time.Minute)
	if _, err := svc.ParseAccessToken("not-a-jwt"); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected ErrJWTInvalid, got %v", err)
	}
	if _, err := svc.ParseAccessToken("  "); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected ErrJWTInvalid for blank token, got %v", err)
	}
}

type failingRevokedStore struct{ err error }

func (f failingRevokedStore) Revoke(string, time.Duration) error { return f.err }

func (f failingRevokedStore) IsRevoked(string) (bool, error) { return false, f.err }

func TestJWTService_RevocationStoreFailureIsNotAuthError(t *testing.T) {
	storeErr := errors.New("redis down")
	svc := NewJWTServiceWithStore("secret", time.Minute, failingRevokedStore{err: storeErr})
	resp, err := svc.Issue(domain.User{ID: "u1", Email: "u1@example.com", Role: domain.RoleTourist})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	_, err = svc.ParseAccessToken(resp.AccessToken)
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
	if IsAuthError(err) {
		t.Fatalf("store failure classified as auth error: %v", err)
	}
	for _, authErr := range []error{ErrJWTInvalid, ErrJWTExpired, ErrJWTRevoked} {
		if !IsAuthError(authErr) {
			t.Fatalf("expected %v to be an auth error", authErr)
		}
	}
}
