package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/heraldhq/herald/internal/campaign"
	"github.com/heraldhq/herald/internal/config"
	"github.com/heraldhq/herald/internal/contact"
	"github.com/heraldhq/herald/internal/handlers"
	"github.com/heraldhq/herald/internal/history"
	"github.com/heraldhq/herald/internal/storage/memory"
	"github.com/heraldhq/herald/internal/storage/postgres"
	"github.com/heraldhq/herald/internal/verify"
	"github.com/heraldhq/herald/pkg/db"
	"github.com/heraldhq/herald/pkg/health"
	"github.com/heraldhq/herald/pkg/logger"
	"github.com/heraldhq/herald/pkg/mailer"
	"github.com/heraldhq/herald/pkg/mailer/mailgun"
	"github.com/heraldhq/herald/pkg/mailer/resend"
	"github.com/heraldhq/herald/pkg/storage"
)

func main() {
	if err := run(); err != nil {
		slog.Error("herald exited", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := logger.NewWithSentry(cfg.Sentry, handlers.RequestIDExtractor())
	log.Info("starting herald", cfg.logFields()...)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var (
		contacts     contact.Store
		settings     config.Store
		historyStore history.Store
		checks       = health.Checks{}
	)

	if cfg.DB.ConnectionString != "" {
		pool, err := db.Connect(ctx, cfg.DB)
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := db.Migrate(ctx, pool, postgres.Migrations, cfg.DB.MigrationsTable, log); err != nil {
			return err
		}

		store := postgres.New(pool)
		contacts, settings, historyStore = store.Contacts, store.Settings, store.History
		checks["database"] = db.Healthcheck(pool)
	} else {
		log.Warn("no database configured, using in-memory store")
		store := memory.New()
		contacts, settings, historyStore = store.Contacts, store.Settings, store.History

		if cfg.SeedContacts > 0 {
			if err := contacts.Upsert(ctx, contact.Sample(cfg.SeedContacts)); err != nil {
				return err
			}
			log.Info("seeded sample contacts", slog.Int("count", cfg.SeedContacts))
		}
	}

	var provider config.Provider
	if (&config.Settings{Domain: cfg.Env.Domain, FromEmail: cfg.Env.FromEmail}).Complete() {
		provider = config.NewEnvProvider(cfg.Env)
	} else {
		provider = config.NewStoreProvider(settings)
	}

	sender, err := buildSender(cfg, log)
	if err != nil {
		return err
	}

	checks["sender"] = func(ctx context.Context) error {
		s, err := provider.Settings(ctx)
		if err != nil {
			return err
		}
		if sender == nil || !s.Complete() {
			return campaign.ErrNotConfigured
		}
		return nil
	}

	gate := verify.New(cfg.SendSecret)
	svc := campaign.NewService(sender, provider, historyStore, gate,
		campaign.WithLogger(log))

	opts := []handlers.Option{
		handlers.WithLogger(log),
		handlers.WithHealthChecks(checks),
	}
	if cfg.S3.Configured() {
		uploads, err := storage.New(cfg.S3)
		if err != nil {
			return err
		}
		opts = append(opts, handlers.WithUploads(uploads))
	}

	server := handlers.NewServer(contacts, provider, historyStore, svc, opts...)

	return serve(ctx, cfg, server.Router(), log)
}

// buildSender picks the outbound adapter. Missing credentials leave the
// sender nil; the campaign service then rejects sends as unconfigured
// instead of the process refusing to start.
func buildSender(cfg appConfig, log *slog.Logger) (mailer.Sender, error) {
	switch cfg.Provider {
	case "resend":
		if cfg.Resend.APIKey == "" {
			log.Warn("resend selected but RESEND_API_KEY is empty")
			return nil, nil
		}
		return resend.New(cfg.Resend)
	case "mailgun":
		if cfg.Mailgun.APIKey == "" || cfg.Mailgun.Domain == "" {
			log.Warn("mailgun credentials incomplete, sending disabled")
			return nil, nil
		}
		return mailgun.New(cfg.Mailgun)
	default:
		return nil, errors.New("unknown MAIL_PROVIDER: " + cfg.Provider)
	}
}

// serve runs the HTTP server until the context is cancelled, then
// shuts down gracefully within the configured timeout.
func serve(ctx context.Context, cfg appConfig, handler http.Handler, log *slog.Logger) error {
	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", slog.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info("shutdown completed")
	return nil
}
