// Package catalog serves the author and tag lists that articles refer to by id.
package catalog

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/KostasSpiridopoulos/BackendAssignment/internal/articlerequest"
	"github.com/KostasSpiridopoulos/BackendAssignment/internal/articleresponse"
	"github.com/KostasSpiridopoulos/BackendAssignment/internal/errresponse"
	"github.com/KostasSpiridopoulos/BackendAssignment/internal/model"
	"github.com/KostasSpiridopoulos/BackendAssignment/internal/store"
)

type Store interface {
	store.AuthorStore
	store.TagStore
}

type API struct {
	store Store
}

func NewAPI(s Store) *API {
	return &API{store: s}
}

func (a *API) CreateAuthor(w http.ResponseWriter, r *http.Request) {
	data := &articlerequest.NameRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, errresponse.ErrInvalidRequest(err)) // nolint
		return
	}

	author := model.Author{Name: data.Name}
	id, err := a.store.CreateAuthor(r.Context(), &author)
	if err != nil {
		errresponse.Respond(w, r, err)
		return
	}
	author.ID = id

	render.Status(r, http.StatusCreated)
	render.Render(w, r, &articleresponse.AuthorResponse{Author: &author}) // nolint
}

func (a *API) ListAuthors(w http.ResponseWriter, r *http.Request) {
	authors, err := a.store.ListAuthors(r.Context())
	if err != nil {
		errresponse.Respond(w, r, err)
		return
	}

	render.RenderList(w, r, articleresponse.NewAuthorListResponse(authors)) // nolint
}

func (a *API) GetAuthor(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "authorID")
	if !ok {
		return
	}

	author, err := a.store.GetAuthor(r.Context(), id)
	if err != nil {
		errresponse.Respond(w, r, err)
		return
	}

	render.Render(w, r, &articleresponse.AuthorResponse{Author: &author}) // nolint
}

func (a *API) CreateTag(w http.ResponseWriter, r *http.Request) {
	data := &articlerequest.NameRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, errresponse.ErrInvalidRequest(err)) // nolint
		return
	}

	tag := model.Tag{Name: data.Name}
	id, err := a.store.CreateTag(r.Context(), &tag)
	if err != nil {
		errresponse.Respond(w, r, err)
		return
	}
	tag.ID = id

	render.Status(r, http.StatusCreated)
	render.Render(w, r, &articleresponse.TagResponse{Tag: &tag}) // nolint
}

func (a *API) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := a.store.ListTags(r.Context())
	if err != nil {
		errresponse.Respond(w, r, err)
		return
	}

	render.RenderList(w, r, articleresponse.NewTagListResponse(tags)) // nolint
}

func (a *API) GetTag(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "tagID")
	if !ok {
		return
	}

	tag, err := a.store.GetTag(r.Context(), id)
	if err != nil {
		errresponse.Respond(w, r, err)
		return
	}

	render.Render(w, r, &articleresponse.TagResponse{Tag: &tag}) // nolint
}

func urlID(w http.ResponseWriter, r *http.Request, param string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || id < 1 {
		render.Render(w, r, errresponse.ErrNotFound) // nolint
		return 0, false
	}

	return id, true
}
