package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/KostasSpiridopoulos/BackendAssignment/internal/model"
)

const TokenType = "bearer"

var (
	ErrUnauthorized       = errors.New("could not validate user")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

type Token struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Identity is what a valid token says about its bearer.
type Identity struct {
	UserID   int64  `json:"id"`
	Username string `json:"username"`
}

type claims struct {
	UserID int64 `json:"id"`
	jwt.RegisteredClaims
}

// IssueToken signs an HS256 token for user that expires after the configured TTL.
func (s *Service) IssueToken(user model.User) (Token, error) {
	now := s.now()
	exp := now.Add(s.ttl)

	c := claims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
	if err != nil {
		return Token{}, fmt.Errorf("sign token: %w", err)
	}

	return Token{AccessToken: signed, TokenType: TokenType, ExpiresAt: exp}, nil
}

// ParseToken fails closed: any token that is malformed, signed with another
// key or algorithm, expired, lacking exp, or missing the user claims yields
// ErrUnauthorized.
func (s *Service) ParseToken(raw string) (Identity, error) {
	var c claims

	_, err := jwt.ParseWithClaims(raw, &c,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	if c.Subject == "" || c.UserID == 0 {
		return Identity{}, fmt.Errorf("%w: missing user claims", ErrUnauthorized)
	}

	return Identity{UserID: c.UserID, Username: c.Subject}, nil
}
