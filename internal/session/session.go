// Package session carries the current user's identity facts. The original
// storefront kept these in an ambient auth context; here the session is an
// explicit value injected into every service that needs it, so nothing reads
// global state and tests can construct any identity they like.
package session

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// RoleAdmin marks back-office operators. Everyone else is a customer.
const RoleAdmin = "ADMIN"

// Session is the identity the auth collaborator established. A nil *Session
// means "not logged in".
type Session struct {
	UserID   int
	Username string
	Email    string
	Role     string
	Token    string
}

// IsAdmin reports whether the session may perform back-office actions.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}

// Authenticated reports whether there is a logged-in user at all.
func (s *Session) Authenticated() bool {
	return s != nil && s.UserID > 0
}

// FromToken recovers identity facts from the auth token. How the token was
// obtained is the auth collaborator's business; we only read its claims.
func FromToken(tokenString, secret string) (*Session, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse session token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("session token is not valid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("session token has no readable claims")
	}

	s := &Session{Token: tokenString}
	if v, ok := claims["user_id"].(float64); ok {
		s.UserID = int(v)
	}
	if v, ok := claims["username"].(string); ok {
		s.Username = v
	}
	if v, ok := claims["email"].(string); ok {
		s.Email = v
	}
	if v, ok := claims["role"].(string); ok {
		s.Role = v
	}
	if s.UserID == 0 {
		return nil, fmt.Errorf("session token carries no user_id claim")
	}
	return s, nil
}
