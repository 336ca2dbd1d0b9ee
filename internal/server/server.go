package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/KostasSpiridopoulos/BackendAssignment/internal/article"
	"github.com/KostasSpiridopoulos/BackendAssignment/internal/auth"
	"github.com/KostasSpiridopoulos/BackendAssignment/internal/catalog"
	"github.com/KostasSpiridopoulos/BackendAssignment/internal/comment"
	"github.com/KostasSpiridopoulos/BackendAssignment/internal/logging"
	"github.com/KostasSpiridopoulos/BackendAssignment/internal/metrics"
	"github.com/KostasSpiridopoulos/BackendAssignment/internal/store"
	"github.com/KostasSpiridopoulos/BackendAssignment/internal/user"
)

type Deps struct {
	Store     store.Store
	Auth      *auth.Service
	Logger    *zap.SugaredLogger
	Metrics   *metrics.Metrics
	PageLimit int
}

// NewRouter builds the public API router.
func NewRouter(d Deps) chi.Router {
	articles := article.NewAPI(d.Store, d.PageLimit)
	comments := comment.NewAPI(d.Store)
	cat := catalog.NewAPI(d.Store)
	users := user.NewAPI(d.Auth, d.Store)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(logging.Middleware(d.Logger))
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware)
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.URLFormat)
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("root.")) // nolint
	})

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("pong")) // nolint
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/", users.Register)   // POST /auth
		r.Post("/token", users.Token) // POST /auth/token
		r.With(d.Auth.Authenticator).Get("/me", users.Me)
	})

	r.Route("/authors", func(r chi.Router) {
		r.Get("/", cat.ListAuthors)
		r.Post("/", cat.CreateAuthor)
		r.Get("/{authorID}", cat.GetAuthor)
	})

	r.Route("/tags", func(r chi.Router) {
		r.Get("/", cat.ListTags)
		r.Post("/", cat.CreateTag)
		r.Get("/{tagID}", cat.GetTag)
	})

	// RESTy routes for "articles" resource. URLFormat routes /articles.csv
	// and /articles/search.csv here with the "csv" format set.
	r.Route("/articles", func(r chi.Router) {
		r.With(article.Paginate).Get("/", articles.ListArticles)       // GET /articles
		r.With(d.Auth.Authenticator).Post("/", articles.CreateArticle) // POST /articles
		r.Get("/search", articles.SearchArticles)                      // GET /articles/search

		r.Route("/{articleID}", func(r chi.Router) {
			r.Use(articles.ArticleCtx) // Load the Article on the request context
			r.Get("/", articles.GetArticle)
			r.Get("/comments", comments.ListComments)

			r.Group(func(r chi.Router) {
				r.Use(d.Auth.Authenticator)
				r.Put("/", articles.UpdateArticle)
				r.Delete("/", articles.DeleteArticle)
				r.Post("/comments", comments.CreateComment)
			})
		})
	})

	r.Route("/comments/{commentID}", func(r chi.Router) {
		r.Use(comments.CommentCtx)
		r.Get("/", comments.GetComment)

		r.Group(func(r chi.Router) {
			r.Use(d.Auth.Authenticator)
			r.Put("/", comments.UpdateComment)
			r.Delete("/", comments.DeleteComment)
		})
	})

	return r
}

// NewDiagRouter serves the metrics endpoint on the diagnostics listener.
func NewDiagRouter(m *metrics.Metrics) chi.Router {
	r := chi.NewRouter()
	r.Get("/metrics", m.Handler().ServeHTTP)

	return r
}
