//
// Articles
// ========
// A REST API for articles, their authors, tags and comments.
//
// Generate the route docs with `go run . -routes`.
//
// Boot the server with sample data:
// ---------------------------------
// $ go run . -seed
//
// Client requests:
// ----------------
// $ curl -d '{"username":"alice","password":"secret"}' http://localhost:3333/auth
// {"id":3,"username":"alice"}
//
// $ curl -d 'username=alice&password=secret' http://localhost:3333/auth/token
// {"access_token":"eyJ...","token_type":"bearer","expires_at":"..."}
//
// $ curl 'http://localhost:3333/articles/search?year=2023&tags=Health'
// [{"id":2,"title":"Article 2",...}]
//
// $ curl 'http://localhost:3333/articles/search.csv?authors=Author%20One'
// id,title,abstract
// 1,Article 1,Abstract of Article 1
//
// $ curl -H "Authorization: Bearer $TOKEN" -X DELETE http://localhost:3333/articles/1
//
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/docgen"
	"go.opentelemetry.io/otel/metric/global"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/KostasSpiridopoulos/BackendAssignment/internal/auth"
	"github.com/KostasSpiridopoulos/BackendAssignment/internal/config"
	"github.com/KostasSpiridopoulos/BackendAssignment/internal/logging"
	"github.com/KostasSpiridopoulos/BackendAssignment/internal/metrics"
	"github.com/KostasSpiridopoulos/BackendAssignment/internal/seed"
	"github.com/KostasSpiridopoulos/BackendAssignment/internal/server"
	"github.com/KostasSpiridopoulos/BackendAssignment/internal/store/sqlite"
)

const ServiceName = "articles"

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	var (
		routes   = flag.Bool("routes", false, "Generate router documentation")
		addr     = flag.String("addr", cfg.Addr, "application address")
		diagAddr = flag.String("diag_addr", cfg.DiagAddr, "diag address")
		withSeed = flag.Bool("seed", cfg.Seed, "load sample data on start")
	)

	flag.Parse()

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() // nolint

	sugar := logger.Sugar()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, sugar, cfg, *addr, *diagAddr, *routes, *withSeed); err != nil {
		sugar.Errorw("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, sugar *zap.SugaredLogger, cfg config.Config, addr, diagAddr string, routes, withSeed bool) error {
	m, err := metrics.New(ServiceName)
	if err != nil {
		return err
	}
	global.SetMeterProvider(m.MeterProvider())

	dbPath := cfg.DBPath
	if routes {
		dbPath = "file:routes?mode=memory"
	}

	st, err := sqlite.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store %q: %w", dbPath, err)
	}
	defer st.Close()

	if cfg.TokenSecret == config.DevTokenSecret {
		sugar.Warnw("using the development token secret, set ARTICLES_TOKEN_SECRET")
	}

	authSvc := auth.NewService(st, auth.Config{Secret: cfg.TokenSecret, TokenTTL: cfg.TokenTTL})

	r := server.NewRouter(server.Deps{
		Store:     st,
		Auth:      authSvc,
		Logger:    sugar,
		Metrics:   m,
		PageLimit: cfg.PageLimit,
	})

	// Passing -routes to the program will generate docs for the above
	// router definition.
	if routes {
		fmt.Println(docgen.MarkdownRoutesDoc(r, docgen.MarkdownOpts{
			ProjectPath: "github.com/KostasSpiridopoulos/BackendAssignment",
			Intro:       "Routes of the articles REST API.",
		}))

		return nil
	}

	if withSeed {
		if err := seed.Run(ctx, st, authSvc, sugar); err != nil {
			return err
		}
	}

	api := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 5 * time.Second}
	diag := &http.Server{Addr: diagAddr, Handler: server.NewDiagRouter(m), ReadHeaderTimeout: 5 * time.Second}

	g, gctx := errgroup.WithContext(ctx)
	for _, srv := range []*http.Server{api, diag} {
		srv := srv
		g.Go(func() error {
			sugar.Infow("listening", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("serve %s: %w", srv.Addr, err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return errors.Join(api.Shutdown(shutdownCtx), diag.Shutdown(shutdownCtx))
	})

	return g.Wait()
}
