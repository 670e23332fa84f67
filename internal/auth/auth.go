// Package auth resolves the current user for owner checks.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
)

// User is the signed-in identity. An empty ID means anonymous.
type User struct {
	ID    string
	Email string
}

// Anonymous reports whether no user is signed in.
func (u User) Anonymous() bool {
	return u.ID == ""
}

// CanEdit reports whether u may edit or delete a listing owned by ownerID.
func (u User) CanEdit(ownerID string) bool {
	return !u.Anonymous() && u.ID == ownerID
}

// GenerateToken creates an HS256 token whose subject is the user ID.
func GenerateToken(secret []byte, subject, email string, ttl time.Duration) (string, error) {
	if len(secret) == 0 {
		return "", errors.New("signing secret is required")
	}
	claims := jwt.MapClaims{
		"sub":   subject,
		"email": email,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseToken validates an HS256 token and returns its user.
func ParseToken(secret []byte, tokenString string) (User, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return User{}, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return User{}, errors.New("invalid token")
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return User{}, errors.New("token does not contain a valid 'sub' claim")
	}
	email, _ := claims["email"].(string)
	return User{ID: sub, Email: email}, nil
}

// Current resolves the user from a token when one is configured, falling
// back to a plain configured user ID.
func Current(token, secret, userID string) (User, error) {
	if token != "" {
		return ParseToken([]byte(secret), token)
	}
	return User{ID: userID}, nil
}
