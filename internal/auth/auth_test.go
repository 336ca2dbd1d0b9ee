package auth

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/KostasSpiridopoulos/BackendAssignment/internal/model"
	"github.com/KostasSpiridopoulos/BackendAssignment/internal/store"
)

const testSecret = "test-secret"

type memUsers struct {
	byName map[string]model.User
}

func (m *memUsers) CreateUser(_ context.Context, u *model.User) (int64, error) {
	if _, ok := m.byName[u.Username]; ok {
		return 0, fmt.Errorf("username %q: %w", u.Username, store.ErrDuplicate)
	}
	id := int64(len(m.byName) + 1)
	saved := *u
	saved.ID = id
	m.byName[u.Username] = saved
	return id, nil
}

func (m *memUsers) GetUser(_ context.Context, id int64) (model.User, error) {
	for _, u := range m.byName {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, store.ErrNotFound
}

func (m *memUsers) GetUserByUsername(_ context.Context, name string) (model.User, error) {
	u, ok := m.byName[name]
	if !ok {
		return model.User{}, store.ErrNotFound
	}
	return u, nil
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestService(t *testing.T) (*Service, *clock) {
	t.Helper()
	c := &clock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	s := NewService(&memUsers{byName: map[string]model.User{}}, Config{
		Secret:   testSecret,
		TokenTTL: 30 * time.Minute,
		HashCost: bcrypt.MinCost,
		Now:      c.now,
	})
	return s, c
}

func signed(t *testing.T, method jwt.SigningMethod, key any, c jwt.Claims) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(method, c).SignedString(key)
	require.NoError(t, err)
	return raw
}

func TestTokenRoundTrip(t *testing.T) {
	s, c := newTestService(t)

	tok, err := s.IssueToken(model.User{ID: 7, Username: "alice"})
	require.NoError(t, err)
	assert.Equal(t, "bearer", tok.TokenType)
	assert.Equal(t, c.t.Add(30*time.Minute), tok.ExpiresAt)

	id, err := s.ParseToken(tok.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, Identity{UserID: 7, Username: "alice"}, id)
}

func TestParseTokenFailsClosed(t *testing.T) {
	s, c := newTestService(t)
	exp := jwt.NewNumericDate(c.t.Add(time.Hour))

	tests := []struct {
		name string
		raw  func() string
	}{
		{"garbage", func() string { return "not.a.token" }},
		{"empty", func() string { return "" }},
		{"wrong secret", func() string {
			return signed(t, jwt.SigningMethodHS256, []byte("other"), claims{UserID: 1,
				RegisteredClaims: jwt.RegisteredClaims{Subject: "alice", ExpiresAt: exp}})
		}},
		{"wrong algorithm", func() string {
			return signed(t, jwt.SigningMethodHS512, []byte(testSecret), claims{UserID: 1,
				RegisteredClaims: jwt.RegisteredClaims{Subject: "alice", ExpiresAt: exp}})
		}},
		{"alg none", func() string {
			return signed(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, claims{UserID: 1,
				RegisteredClaims: jwt.RegisteredClaims{Subject: "alice", ExpiresAt: exp}})
		}},
		{"no expiry", func() string {
			return signed(t, jwt.SigningMethodHS256, []byte(testSecret), claims{UserID: 1,
				RegisteredClaims: jwt.RegisteredClaims{Subject: "alice"}})
		}},
		{"no subject", func() string {
			return signed(t, jwt.SigningMethodHS256, []byte(testSecret), claims{UserID: 1,
				RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: exp}})
		}},
		{"no user id", func() string {
			return signed(t, jwt.SigningMethodHS256, []byte(testSecret), claims{
				RegisteredClaims: jwt.RegisteredClaims{Subject: "alice", ExpiresAt: exp}})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.ParseToken(tt.raw())
			assert.ErrorIs(t, err, ErrUnauthorized)
		})
	}
}

func TestParseTokenExpired(t *testing.T) {
	s, c := newTestService(t)

	tok, err := s.IssueToken(model.User{ID: 1, Username: "alice"})
	require.NoError(t, err)

	c.t = c.t.Add(31 * time.Minute)
	_, err = s.ParseToken(tok.AccessToken)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestRegisterAndAuthenticate(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	u, err := s.Register(ctx, "alice", "wonderland")
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.NotEqual(t, "wonderland", u.HashedPassword)

	_, err = s.Register(ctx, "alice", "again")
	assert.ErrorIs(t, err, store.ErrDuplicate)

	got, err := s.Authenticate(ctx, "alice", "wonderland")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = s.Authenticate(ctx, "alice", "nope")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = s.Authenticate(ctx, "nobody", "wonderland")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	tok, err := s.Login(ctx, "alice", "wonderland")
	require.NoError(t, err)
	id, err := s.ParseToken(tok.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", id.Username)
}

func TestAuthenticator(t *testing.T) {
	s, _ := newTestService(t)
	tok, err := s.IssueToken(model.User{ID: 3, Username: "bob"})
	require.NoError(t, err)

	var seen Identity
	h := s.Authenticator(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = IdentityFromContext(r.Context())
	}))

	for _, header := range []string{"", "Basic abc", "Bearer", "Bearer junk"} {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			r.Header.Set("Authorization", header)
		}
		h.ServeHTTP(w, r)
		assert.Equal(t, http.StatusUnauthorized, w.Code, header)
		assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
	}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "bearer "+tok.AccessToken)
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, Identity{UserID: 3, Username: "bob"}, seen)
}
