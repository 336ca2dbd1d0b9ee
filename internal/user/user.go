package user

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"github.com/KostasSpiridopoulos/BackendAssignment/internal/auth"
	"github.com/KostasSpiridopoulos/BackendAssignment/internal/errresponse"
	"github.com/KostasSpiridopoulos/BackendAssignment/internal/logging"
	"github.com/KostasSpiridopoulos/BackendAssignment/internal/store"
	"github.com/KostasSpiridopoulos/BackendAssignment/internal/userpayload"
)

// API serves registration, token issuing and the caller's own identity.
type API struct {
	auth  *auth.Service
	users store.UserStore
}

func NewAPI(a *auth.Service, users store.UserStore) *API {
	return &API{auth: a, users: users}
}

func (a *API) Register(w http.ResponseWriter, r *http.Request) {
	data := &userpayload.CredentialsRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, errresponse.ErrInvalidRequest(err)) // nolint
		return
	}

	u, err := a.auth.Register(r.Context(), data.Username, data.Password)
	if err != nil {
		errresponse.Respond(w, r, err)
		return
	}

	logging.FromContext(r.Context()).Infow("user registered", "user_id", u.ID)

	render.Status(r, http.StatusCreated)
	render.Render(w, r, userpayload.NewUserPayloadResponse(&u)) // nolint
}

// Token exchanges a username and password, sent as a form or as JSON, for a
// bearer token.
func (a *API) Token(w http.ResponseWriter, r *http.Request) {
	data := &userpayload.CredentialsRequest{}

	var err error
	if render.GetRequestContentType(r) == render.ContentTypeForm {
		if err = r.ParseForm(); err == nil {
			data.Username = r.PostForm.Get("username")
			data.Password = r.PostForm.Get("password")
			err = data.Bind(r)
		}
	} else {
		err = render.Bind(r, data)
	}
	if err != nil {
		render.Render(w, r, errresponse.ErrInvalidRequest(err)) // nolint
		return
	}

	token, err := a.auth.Login(r.Context(), data.Username, data.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		auth.Unauthorized(w, r, err)
		return
	}
	if err != nil {
		errresponse.Respond(w, r, err)
		return
	}

	render.Render(w, r, &userpayload.TokenResponse{Token: token}) // nolint
}

// Me returns the identity carried by the bearer token.
func (a *API) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		auth.Unauthorized(w, r, auth.ErrUnauthorized)
		return
	}

	if _, err := a.users.GetUser(r.Context(), id.UserID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			auth.Unauthorized(w, r, err)
			return
		}
		errresponse.Respond(w, r, err)
		return
	}

	render.Render(w, r, &userpayload.IdentityResponse{Identity: id}) // nolint
}
