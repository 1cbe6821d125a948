package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Vovarama1992/faq-orchestrator/internal/assistant"
	"github.com/Vovarama1992/faq-orchestrator/internal/config"
	"github.com/Vovarama1992/faq-orchestrator/internal/console"
	"github.com/Vovarama1992/faq-orchestrator/internal/eventlog"
	"github.com/Vovarama1992/faq-orchestrator/internal/faq"
	"github.com/Vovarama1992/faq-orchestrator/internal/httpx"
	"github.com/Vovarama1992/faq-orchestrator/internal/iam"
	"github.com/Vovarama1992/faq-orchestrator/internal/logging"
	"github.com/Vovarama1992/faq-orchestrator/internal/metrics"
	"github.com/Vovarama1992/faq-orchestrator/internal/selection"
	"github.com/Vovarama1992/faq-orchestrator/internal/tuning"
)

func main() {
	cfg := config.Load()

	zl := logging.New(cfg.App.LogFilePath, cfg.IsProduction())
	defer zl.Sync()

	events := eventlog.New(zl)
	events.Info("Title: FAQ orchestrator for the hosted assistant started")
	if !cfg.App.EnvFileLoaded {
		events.Debug(".env file not found, using system environment")
	}
	for _, line := range cfg.Summary() {
		events.Debug(line)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Assistant ---
	client, err := newAssistantClient(ctx, cfg)
	if err != nil {
		zl.Fatal("assistant setup error", zap.Error(err))
	}
	sessions := assistant.NewSessions(client, events)

	// --- Selection store ---
	connector, err := newSelectionConnector(ctx, cfg)
	if err != nil {
		zl.Fatal("selection store setup error", zap.Error(err))
	}

	runtime := tuning.NewRuntime(cfg.Tuning.MaxIntents, cfg.Tuning.FAQStripping)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(metrics.Middleware)
	r.Use(httpx.Recover(func(v any) {
		events.Error(fmt.Sprintf("panic: %v", v))
	}))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.App.CorsAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	// --- Module wiring ---
	faqService := faq.NewService(sessions, client, runtime, events, faq.StrategyByName(cfg.Assistant.TextStrategy))
	faq.RegisterRoutes(r, faq.NewHandler(faqService, events))

	selectionService := selection.NewService(connector, events)
	selection.RegisterRoutes(r, selection.NewHandler(selectionService, events))

	var terminate func()
	if cfg.App.EnableKill {
		terminate = func() {
			zl.Warn("terminated via /kill")
			_ = zl.Sync()
			os.Exit(1)
		}
	}
	console.RegisterRoutes(r, console.NewHandler(events, selectionService, runtime, events, terminate))

	// --- health, metrics ---
	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})
	r.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	zl.Info("listening", zap.String("port", cfg.App.Port))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		zl.Fatal("server error", zap.Error(err))
	}
}

func newAssistantClient(ctx context.Context, cfg *config.Config) (assistant.Client, error) {
	switch cfg.Assistant.Provider {
	case "watson", "":
		return assistant.NewWatsonClient(assistant.WatsonConfig{
			APIKey:      cfg.Assistant.APIKey,
			URL:         cfg.Assistant.URL,
			AssistantID: cfg.Assistant.AssistantID,
			Version:     cfg.Assistant.Version,
		}, iamFactory(ctx, cfg)), nil
	case "openai":
		catalog, err := assistant.LoadCatalog(cfg.Assistant.CatalogPath)
		if err != nil {
			return nil, err
		}
		return assistant.NewOpenAIClient(assistant.OpenAIConfig{
			APIKey:  cfg.Assistant.OpenAIKey,
			Model:   cfg.Assistant.OpenAIModel,
			Timeout: cfg.App.ExternalTimeout,
		}, catalog), nil
	default:
		return nil, fmt.Errorf("unknown ASSISTANT_PROVIDER %q", cfg.Assistant.Provider)
	}
}

func newSelectionConnector(ctx context.Context, cfg *config.Config) (selection.Connector, error) {
	switch cfg.Store.Backend {
	case "cloudant", "":
		return selection.NewCloudantConnector(selection.CloudantConfig{
			URL:    cfg.Store.CloudantURL,
			APIKey: cfg.Store.CloudantKey,
			DB:     cfg.Store.CloudantDB,
		}, selection.ClientFactory(iamFactory(ctx, cfg))), nil
	case "postgres":
		return selection.NewPostgresConnector(cfg.Store.DatabaseURL), nil
	case "none", "memory":
		return selection.NewMemoryConnector(), nil
	default:
		return nil, fmt.Errorf("unknown SELECTION_STORE %q", cfg.Store.Backend)
	}
}

// iamFactory yields bearer-token HTTP clients. Tokens are fetched with the
// process context so they outlive the request that triggered the login.
func iamFactory(ctx context.Context, cfg *config.Config) assistant.HTTPClientFactory {
	return func(_ context.Context, apiKey string) (*http.Client, error) {
		return iam.NewClient(ctx, cfg.Assistant.IAMURL, apiKey, cfg.App.ExternalTimeout)
	}
}
