package article

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/KostasSpiridopoulos/BackendAssignment/internal/articlefilter"
	"github.com/KostasSpiridopoulos/BackendAssignment/internal/errresponse"
	"github.com/KostasSpiridopoulos/BackendAssignment/internal/model"
)

type ctxKey int8

const (
	ctxKeyArticle ctxKey = iota
	ctxKeyPage
)

// ArticleCtx middleware is used to load an Article object from
// the URL parameters passed through as the request. In case
// the Article could not be found, we stop here and return a 404.
func (a *API) ArticleCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "articleID"), 10, 64)
		if err != nil || id < 1 {
			render.Render(w, r, errresponse.ErrNotFound) // nolint
			return
		}

		article, err := a.store.GetArticle(r.Context(), id)
		if err != nil {
			errresponse.Respond(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyArticle, article)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// FromContext returns the article loaded by ArticleCtx.
func FromContext(ctx context.Context) (model.Article, bool) {
	article, ok := ctx.Value(ctxKeyArticle).(model.Article)
	return article, ok
}

// Paginate reads the 1-based page query parameter.
func Paginate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, err := articlefilter.ParsePage(r.URL.Query().Get("page"))
		if err != nil {
			render.Render(w, r, errresponse.ErrInvalidRequest(err)) // nolint
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyPage, page)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func pageFromContext(ctx context.Context) int {
	if page, ok := ctx.Value(ctxKeyPage).(int); ok {
		return page
	}
	return 1
}
