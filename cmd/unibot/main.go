package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/vickramb/unibot/internal/config"
	"github.com/vickramb/unibot/internal/content"
	"github.com/vickramb/unibot/internal/flow"
	"github.com/vickramb/unibot/internal/httpapi"
	"github.com/vickramb/unibot/internal/observability"
	"github.com/vickramb/unibot/internal/registry"
	"github.com/vickramb/unibot/internal/session"
	"github.com/vickramb/unibot/internal/verify"
)

func main() {
	// Missing .env is fine; the environment itself may carry everything.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	metrics := observability.NewMetrics(cfg.MetricsNamespace)

	contentStore, err := content.Load()
	if err != nil {
		log.Fatalf("content load failed: %v", err)
	}

	ctx := context.Background()
	registryStore, err := registry.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("registry init failed: %v", err)
	}
	defer registryStore.Close()
	if cfg.DatabaseURL == "" {
		log.Printf("registry: in-memory (DATABASE_URL not set)")
	} else {
		log.Printf("registry: postgres")
	}

	gateway, err := verify.New(verify.Config{
		Mode:             cfg.VerifyProvider,
		AccountSID:       cfg.TwilioAccountSID,
		AuthToken:        cfg.TwilioAuthToken,
		VerifyServiceSID: cfg.TwilioVerifyServiceID,
		BypassCode:       cfg.VerifyBypassCode,
	})
	if err != nil {
		log.Fatalf("verify gateway init failed: %v", err)
	}
	if _, ok := gateway.(*verify.BypassProvider); ok {
		log.Printf("verify provider: bypass (codes are not actually delivered)")
	} else {
		log.Printf("verify provider: twilio")
	}

	sessions := session.NewStore(flow.EntryState, cfg.SessionTimeout)
	sessions.SetExpireHook(func(_ *session.Session) {
		metrics.SessionEvents.WithLabelValues("expired").Inc()
		metrics.ActiveSessions.Set(float64(sessions.ActiveCount()))
	})

	router := flow.NewRouter(sessions, contentStore, gateway, registryStore, metrics, flow.Config{
		DefaultCountryCode: cfg.DefaultCountryCode,
		VerifyTimeout:      cfg.VerifyTimeout,
	})

	api := httpapi.New(cfg, router, metrics, nil)
	httpServer := &http.Server{
		Addr:    cfg.BindAddr,
		Handler: api.Router(),
	}

	runCtx, runCancel := context.WithCancel(context.Background())
	defer runCancel()
	sessions.StartJanitor(runCtx, cfg.SweepInterval)

	go func() {
		log.Printf("server listening on %s", cfg.BindAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	log.Printf("shutdown signal received")

	runCancel()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
		_ = httpServer.Close()
	}

	log.Printf("shutdown complete")
}
