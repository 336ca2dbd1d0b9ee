package comment

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/KostasSpiridopoulos/BackendAssignment/internal/article"
	"github.com/KostasSpiridopoulos/BackendAssignment/internal/auth"
	"github.com/KostasSpiridopoulos/BackendAssignment/internal/commentpayload"
	"github.com/KostasSpiridopoulos/BackendAssignment/internal/errresponse"
	"github.com/KostasSpiridopoulos/BackendAssignment/internal/model"
	"github.com/KostasSpiridopoulos/BackendAssignment/internal/store"
)

type ctxKey int8

const ctxKeyComment ctxKey = iota

type API struct {
	store store.CommentStore
}

func NewAPI(s store.CommentStore) *API {
	return &API{store: s}
}

// CommentCtx loads the Comment named in the URL or stops with a 404.
func (a *API) CommentCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "commentID"), 10, 64)
		if err != nil || id < 1 {
			render.Render(w, r, errresponse.ErrNotFound) // nolint
			return
		}

		c, err := a.store.GetComment(r.Context(), id)
		if err != nil {
			errresponse.Respond(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyComment, c)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ListComments returns the comments of the article loaded by article.ArticleCtx.
func (a *API) ListComments(w http.ResponseWriter, r *http.Request) {
	art, ok := article.FromContext(r.Context())
	if !ok {
		render.Render(w, r, errresponse.ErrNotFound) // nolint
		return
	}

	comments, err := a.store.ListCommentsByArticle(r.Context(), art.ID)
	if err != nil {
		errresponse.Respond(w, r, err)
		return
	}

	if err := render.RenderList(w, r, commentpayload.NewCommentListResponse(comments)); err != nil {
		render.Render(w, r, errresponse.ErrRender(err)) // nolint
	}
}

func (a *API) CreateComment(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		auth.Unauthorized(w, r, auth.ErrUnauthorized)
		return
	}

	art, ok := article.FromContext(r.Context())
	if !ok {
		render.Render(w, r, errresponse.ErrNotFound) // nolint
		return
	}

	data := &commentpayload.CommentRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, errresponse.ErrInvalidRequest(err)) // nolint
		return
	}

	c := model.Comment{Content: data.Content, ArticleID: art.ID, UserID: id.UserID}
	commentID, err := a.store.CreateComment(r.Context(), &c)
	if err != nil {
		errresponse.Respond(w, r, err)
		return
	}

	created, err := a.store.GetComment(r.Context(), commentID)
	if err != nil {
		errresponse.Respond(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	if err := render.Render(w, r, &commentpayload.CommentResponse{Comment: &created}); err != nil {
		render.Render(w, r, errresponse.ErrRender(err)) // nolint
	}
}

func (a *API) GetComment(w http.ResponseWriter, r *http.Request) {
	c, _ := r.Context().Value(ctxKeyComment).(model.Comment)

	if err := render.Render(w, r, &commentpayload.CommentResponse{Comment: &c}); err != nil {
		render.Render(w, r, errresponse.ErrRender(err)) // nolint
	}
}

// UpdateComment replaces the content of a comment owned by the caller.
func (a *API) UpdateComment(w http.ResponseWriter, r *http.Request) {
	c, ok := a.owned(w, r)
	if !ok {
		return
	}

	data := &commentpayload.CommentRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, errresponse.ErrInvalidRequest(err)) // nolint
		return
	}

	if err := a.store.UpdateComment(r.Context(), c.UserID, c.ID, data.Content); err != nil {
		errresponse.Respond(w, r, err)
		return
	}

	c.Content = data.Content
	if err := render.Render(w, r, &commentpayload.CommentResponse{Comment: &c}); err != nil {
		render.Render(w, r, errresponse.ErrRender(err)) // nolint
	}
}

func (a *API) DeleteComment(w http.ResponseWriter, r *http.Request) {
	c, ok := a.owned(w, r)
	if !ok {
		return
	}

	if err := a.store.DeleteComment(r.Context(), c.UserID, c.ID); err != nil {
		errresponse.Respond(w, r, err)
		return
	}

	render.NoContent(w, r)
}

func (a *API) owned(w http.ResponseWriter, r *http.Request) (model.Comment, bool) {
	id, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		auth.Unauthorized(w, r, auth.ErrUnauthorized)
		return model.Comment{}, false
	}

	c, ok := r.Context().Value(ctxKeyComment).(model.Comment)
	if !ok {
		render.Render(w, r, errresponse.ErrNotFound) // nolint
		return model.Comment{}, false
	}

	if c.UserID != id.UserID {
		errresponse.Respond(w, r, store.ErrNotOwner)
		return model.Comment{}, false
	}

	return c, true
}
