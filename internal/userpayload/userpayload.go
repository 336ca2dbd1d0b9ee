package userpayload

import (
	"net/http"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/KostasSpiridopoulos/BackendAssignment/internal/auth"
	"github.com/KostasSpiridopoulos/BackendAssignment/internal/model"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

type UserPayload struct {
	*model.User
}

func NewUserPayloadResponse(user *model.User) *UserPayload {
	return &UserPayload{User: user}
}

func (u *UserPayload) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

// CredentialsRequest is the body of both registration and token requests.
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Bind caps the password at 72 bytes, the most bcrypt will hash.
func (c *CredentialsRequest) Bind(r *http.Request) error {
	c.Username = strings.TrimSpace(c.Username)

	return validation.ValidateStruct(c,
		validation.Field(&c.Username, validation.Required, validation.Length(1, 64),
			validation.Match(usernamePattern).Error("must contain only letters, digits, '_', '.' or '-'")),
		validation.Field(&c.Password, validation.Required, validation.Length(1, 72)),
	)
}

type TokenResponse struct {
	auth.Token
}

func (t *TokenResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

type IdentityResponse struct {
	auth.Identity
}

func (i *IdentityResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}
