// File: internal/service/authentication.go
package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"quantedgeb/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenTTL is how long a login token stays valid.
const AccessTokenTTL = 7 * 24 * time.Hour

// VerificationTokenTTL bounds the email-verification link lifetime.
const VerificationTokenTTL = 24 * time.Hour

// TokenTypeEmailVerification discriminates verification tokens from access
// tokens sharing the same signing key.
const TokenTypeEmailVerification = "email_verification"

// CustomClaims carries the JWT payload for both token kinds. Type is empty on
// access tokens.
type CustomClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email,omitempty"`
	Type   string `json:"type,omitempty"`
	jwt.RegisteredClaims
}

// AuthenticateUser checks the plaintext password against the stored hash.
func AuthenticateUser(ctx context.Context, user model.User, password string) (*model.User, error) {
	if err := ComparePassword(user.PasswordHash, password); err != nil {
		return nil, errors.New("invalid password")
	}
	return &user, nil
}

func signClaims(claims CustomClaims) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", fmt.Errorf("JWT_SECRET not set")
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// IssueAccessToken produces the bearer token returned on login.
func IssueAccessToken(user model.User, ttl time.Duration) (string, error) {
	now := time.Now()
	return signClaims(CustomClaims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
}

// IssueVerificationToken produces the token embedded in verification emails.
func IssueVerificationToken(userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	return signClaims(CustomClaims{
		UserID: userID,
		Type:   TokenTypeEmailVerification,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
}

func parseClaims(tokenString string) (*CustomClaims, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET not set")
	}

	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// VerifyAccessToken validates a bearer token. Verification tokens are not
// accepted here even though the signature checks out.
func VerifyAccessToken(tokenString string) (*CustomClaims, error) {
	claims, err := parseClaims(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Type != "" {
		return nil, fmt.Errorf("not an access token")
	}
	return claims, nil
}

// VerifyVerificationToken validates an email-verification token and returns
// the user id it was issued for.
func VerifyVerificationToken(tokenString string) (string, error) {
	claims, err := parseClaims(tokenString)
	if err != nil {
		return "", err
	}
	if claims.Type != TokenTypeEmailVerification {
		return "", fmt.Errorf("invalid token type")
	}
	return claims.UserID, nil
}
