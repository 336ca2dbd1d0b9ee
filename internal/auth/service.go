package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/KostasSpiridopoulos/BackendAssignment/internal/model"
	"github.com/KostasSpiridopoulos/BackendAssignment/internal/store"
)

type Config struct {
	Secret   string
	TokenTTL time.Duration
	// HashCost defaults to bcrypt.DefaultCost.
	HashCost int
	Now      func() time.Time
}

type Service struct {
	users  store.UserStore
	secret []byte
	ttl    time.Duration
	cost   int
	now    func() time.Time
}

func NewService(users store.UserStore, cfg Config) *Service {
	s := &Service{
		users:  users,
		secret: []byte(cfg.Secret),
		ttl:    cfg.TokenTTL,
		cost:   cfg.HashCost,
		now:    cfg.Now,
	}
	if s.cost == 0 {
		s.cost = bcrypt.DefaultCost
	}
	if s.now == nil {
		s.now = time.Now
	}

	return s
}

func (s *Service) HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	return string(hashed), nil
}

func CheckPassword(hashed, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}

// Register creates a user with a bcrypt hash of password.
func (s *Service) Register(ctx context.Context, username, password string) (model.User, error) {
	hashed, err := s.HashPassword(password)
	if err != nil {
		return model.User{}, err
	}

	u := model.User{Username: username, HashedPassword: hashed}
	if u.ID, err = s.users.CreateUser(ctx, &u); err != nil {
		return model.User{}, err
	}

	return u, nil
}

// Authenticate does not tell an unknown username apart from a wrong password.
func (s *Service) Authenticate(ctx context.Context, username, password string) (model.User, error) {
	u, err := s.users.GetUserByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return model.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return model.User{}, err
	}

	if !CheckPassword(u.HashedPassword, password) {
		return model.User{}, ErrInvalidCredentials
	}

	return u, nil
}

func (s *Service) Login(ctx context.Context, username, password string) (Token, error) {
	u, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return Token{}, err
	}

	return s.IssueToken(u)
}
