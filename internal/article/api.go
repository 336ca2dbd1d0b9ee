package article

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/KostasSpiridopoulos/BackendAssignment/internal/articlefilter"
	"github.com/KostasSpiridopoulos/BackendAssignment/internal/articlerequest"
	"github.com/KostasSpiridopoulos/BackendAssignment/internal/articleresponse"
	"github.com/KostasSpiridopoulos/BackendAssignment/internal/auth"
	"github.com/KostasSpiridopoulos/BackendAssignment/internal/errresponse"
	"github.com/KostasSpiridopoulos/BackendAssignment/internal/export"
	"github.com/KostasSpiridopoulos/BackendAssignment/internal/logging"
	"github.com/KostasSpiridopoulos/BackendAssignment/internal/model"
	"github.com/KostasSpiridopoulos/BackendAssignment/internal/store"
)

type API struct {
	store     store.ArticleStore
	pageLimit int
}

func NewAPI(s store.ArticleStore, pageLimit int) *API {
	if pageLimit <= 0 {
		pageLimit = articlefilter.DefaultPageLimit
	}

	return &API{store: s, pageLimit: pageLimit}
}

// ListArticles returns a page of all articles, or the articles named by the
// ids parameter. The .csv variant exports the whole selection.
func (a *API) ListArticles(w http.ResponseWriter, r *http.Request) {
	var (
		articles []model.Article
		err      error
	)

	if raw := r.URL.Query().Get("ids"); raw != "" {
		ids, perr := articlefilter.ParseIDs(raw)
		if perr != nil {
			render.Render(w, r, errresponse.ErrInvalidRequest(perr)) // nolint
			return
		}
		articles, err = a.store.ListArticlesByIDs(r.Context(), ids)
	} else {
		f := articlefilter.Filter{Page: pageFromContext(r.Context()), Limit: a.pageLimit}
		if wantsCSV(r) {
			f.Page = 0
		}
		articles, err = a.store.FilterArticles(r.Context(), f)
	}
	if err != nil {
		errresponse.Respond(w, r, err)
		return
	}

	a.respondList(w, r, articles)
}

// SearchArticles runs the filtered article query.
func (a *API) SearchArticles(w http.ResponseWriter, r *http.Request) {
	f, err := articlefilter.Parse(r.URL.Query())
	if err != nil {
		render.Render(w, r, errresponse.ErrInvalidRequest(err)) // nolint
		return
	}

	f.Limit = a.pageLimit
	if wantsCSV(r) {
		f.Page = 0
	}

	articles, err := a.store.FilterArticles(r.Context(), f)
	if err != nil {
		errresponse.Respond(w, r, err)
		return
	}

	a.respondList(w, r, articles)
}

func (a *API) respondList(w http.ResponseWriter, r *http.Request, articles []model.Article) {
	if wantsCSV(r) {
		if len(articles) == 0 {
			render.Render(w, r, errresponse.ErrNotFound) // nolint
			return
		}
		if err := export.ServeArticles(w, articles); err != nil {
			logging.FromContext(r.Context()).Errorw("write csv export", "error", err)
		}
		return
	}

	if err := render.RenderList(w, r, articleresponse.NewArticleListResponse(articles)); err != nil {
		render.Render(w, r, errresponse.ErrRender(err)) // nolint
	}
}

// CreateArticle persists the posted Article, owned by the caller, and returns
// it back to the client as an acknowledgement.
func (a *API) CreateArticle(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		auth.Unauthorized(w, r, auth.ErrUnauthorized)
		return
	}

	data := &articlerequest.ArticleRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, errresponse.ErrInvalidRequest(err)) // nolint
		return
	}

	article := data.Article(id.UserID)
	articleID, err := a.store.CreateArticle(r.Context(), &article, data.Authors, data.Tags)
	if err != nil {
		errresponse.Respond(w, r, err)
		return
	}

	created, err := a.store.GetArticle(r.Context(), articleID)
	if err != nil {
		errresponse.Respond(w, r, err)
		return
	}

	logging.FromContext(r.Context()).Infow("article created", "article_id", articleID, "user_id", id.UserID)

	render.Status(r, http.StatusCreated)
	if err := render.Render(w, r, articleresponse.NewArticleResponse(&created)); err != nil {
		render.Render(w, r, errresponse.ErrRender(err)) // nolint
	}
}

// GetArticle returns the Article loaded by ArticleCtx.
func (a *API) GetArticle(w http.ResponseWriter, r *http.Request) {
	article, _ := FromContext(r.Context())

	if err := render.Render(w, r, articleresponse.NewArticleResponse(&article)); err != nil {
		render.Render(w, r, errresponse.ErrRender(err)) // nolint
	}
}

// UpdateArticle replaces the fields and the author and tag sets of an
// existing Article. Only its owner may do so.
func (a *API) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	article, ok := a.owned(w, r)
	if !ok {
		return
	}

	data := &articlerequest.ArticleRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, errresponse.ErrInvalidRequest(err)) // nolint
		return
	}

	updated := data.Article(article.OwnerID)
	updated.ID = article.ID
	if err := a.store.UpdateArticle(r.Context(), article.OwnerID, &updated, data.Authors, data.Tags); err != nil {
		errresponse.Respond(w, r, err)
		return
	}

	updated, err := a.store.GetArticle(r.Context(), article.ID)
	if err != nil {
		errresponse.Respond(w, r, err)
		return
	}

	if err := render.Render(w, r, articleresponse.NewArticleResponse(&updated)); err != nil {
		render.Render(w, r, errresponse.ErrRender(err)) // nolint
	}
}

// DeleteArticle removes an Article together with its comments.
func (a *API) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	article, ok := a.owned(w, r)
	if !ok {
		return
	}

	if err := a.store.DeleteArticle(r.Context(), article.OwnerID, article.ID); err != nil {
		errresponse.Respond(w, r, err)
		return
	}

	logging.FromContext(r.Context()).Infow("article deleted", "article_id", article.ID)
	render.NoContent(w, r)
}

// owned returns the context article when the caller owns it and writes the
// 401 response otherwise.
func (a *API) owned(w http.ResponseWriter, r *http.Request) (model.Article, bool) {
	id, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		auth.Unauthorized(w, r, auth.ErrUnauthorized)
		return model.Article{}, false
	}

	article, ok := FromContext(r.Context())
	if !ok {
		render.Render(w, r, errresponse.ErrNotFound) // nolint
		return model.Article{}, false
	}

	if article.OwnerID != id.UserID {
		errresponse.Respond(w, r, store.ErrNotOwner)
		return model.Article{}, false
	}

	return article, true
}

func wantsCSV(r *http.Request) bool {
	format, _ := r.Context().Value(middleware.URLFormatCtxKey).(string)
	return format == "csv"
}
