package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"pitwall/internal/collector"
	"pitwall/internal/config"
	"pitwall/internal/feed"
	"pitwall/internal/ingest"
	"pitwall/internal/middleware"
	"pitwall/internal/observability"
	"pitwall/internal/server"
	"pitwall/internal/services"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file (optional)")
	demo := flag.Bool("demo", false, "generate synthetic telemetry instead of waiting for a producer")
	issueToken := flag.String("issue-token", "", "print a stream token for the named client and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("[config] %v", err)
	}

	if *issueToken != "" {
		issueStreamToken(cfg, *issueToken)
		return
	}

	col := collector.New(cfg.History.Capacity)
	obs := observability.New(col)
	hub := services.NewHub(col, cfg.StreamInterval())
	probe := services.NewSystemProbe(2 * cfg.StreamInterval())
	settings := services.NewSettingsStore()

	var auth *services.AuthService
	if cfg.Auth.Enabled {
		auth = services.NewAuthService(cfg.Auth.Secret, cfg.TokenTTL())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Ingest.URL != "" {
		sub, err := ingest.NewSubscriber(cfg.Ingest.URL, cfg.Ingest.Subject, col, obs.IngestErrors())
		if err != nil {
			log.Fatalf("[ingest] %v", err)
		}
		if err := sub.Start(); err != nil {
			log.Fatalf("[ingest] subscribe: %v", err)
		}
		defer sub.Close()
	}

	if *demo {
		runner := feed.New(col, cfg.StreamInterval(), uint64(os.Getpid()))
		go runner.Run(ctx)
		log.Println("[feed] demo telemetry enabled")
	}

	srv := server.New(cfg, col, hub, obs, auth, probe, settings)
	if err := srv.Run(ctx); err != nil {
		log.Fatalf("[server] %v", err)
	}

	hub.Stop()
	log.Println("[server] exited")
}

// issueStreamToken mints a token on the operator's terminal. Tokens
// never travel over HTTP.
func issueStreamToken(cfg *config.Config, clientName string) {
	if !middleware.NewInputValidator().ValidateClientName(clientName) {
		log.Fatalf("[auth] invalid client name %q", clientName)
	}
	auth := services.NewAuthService(cfg.Auth.Secret, cfg.TokenTTL())
	token, err := auth.GenerateToken(clientName)
	if err != nil {
		log.Fatalf("[auth] issue token: %v", err)
	}
	middleware.NewSecurityLogger().LogTokenIssued(clientName)
	fmt.Println(token)
}
