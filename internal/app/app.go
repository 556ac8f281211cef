package app

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"cehpoint/site_backend/internal/app/config"
	apphttp "cehpoint/site_backend/internal/app/http"
	"cehpoint/site_backend/internal/app/http/handlers"
	"cehpoint/site_backend/internal/domain/ai/consult"
	"cehpoint/site_backend/internal/domain/ai/estimator"
	"cehpoint/site_backend/internal/domain/quote"
	pdfgen "cehpoint/site_backend/internal/domain/quote/pdf/gofpdf"
	"cehpoint/site_backend/internal/infra/db/postgres"
	"cehpoint/site_backend/internal/infra/llm/gemini"
)

const shutdownTimeout = 15 * time.Second

func Run() {
	cfg := config.MustLoad()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps := handlers.Deps{PDF: pdfgen.New()}

	if cfg.DatabaseURL != "" {
		db, err := postgres.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("db: %v", err)
		}
		defer db.Close()

		store := postgres.NewQuotations(db)
		if err := store.EnsureSchema(ctx); err != nil {
			log.Fatalf("db: %v", err)
		}
		deps.Store = store
	} else {
		log.Printf("db: DATABASE_URL not set, quotations will not be recorded")
	}

	var estGen estimator.Generator
	var advGen consult.Generator
	if cfg.GeminiAPIKey != "" {
		cli, err := gemini.New(ctx, gemini.Config{
			APIKey:  cfg.GeminiAPIKey,
			Model:   cfg.GeminiModel,
			Timeout: cfg.GeminiTimeout,
			Retries: cfg.GeminiRetries,
		})
		if err != nil {
			log.Fatalf("llm: %v", err)
		}
		estGen, advGen = cli, cli
		log.Printf("llm: using %s", cli.Name())
	} else {
		log.Printf("llm: GEMINI_API_KEY not set, serving fallback estimates only")
	}

	deps.Estimator = estimator.New(estGen, quote.NewEstimator(quote.DefaultTables()), estimator.Options{
		CacheSize: cfg.QuoteCacheSize,
		CacheTTL:  cfg.QuoteCacheTTL,
	})
	deps.Advisor = consult.NewAdvisor(advGen)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           apphttp.NewRouter(cfg, deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Printf("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("server: %v", err)
	}
}
