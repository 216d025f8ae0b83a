// Package server assembles the gin engine and runs the HTTP listener.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"pitwall/internal/collector"
	"pitwall/internal/config"
	"pitwall/internal/controllers"
	"pitwall/internal/middleware"
	"pitwall/internal/observability"
	"pitwall/internal/routes"
	"pitwall/internal/services"
)

// Server owns the engine and the http.Server around it. All handler
// dependencies are injected; nothing here is a package global.
type Server struct {
	cfg     *config.Config
	engine  *gin.Engine
	httpSrv *http.Server
}

// New builds the full middleware chain and route table. auth may be
// nil, which leaves the live stream open.
func New(
	cfg *config.Config,
	col *collector.Collector,
	hub *services.Hub,
	obs *observability.Observer,
	auth *services.AuthService,
	probe *services.SystemProbe,
	settings *services.SettingsStore,
) *Server {
	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery())
	engine.Use(middleware.SecurityHeadersMiddleware())
	engine.Use(middleware.CORSMiddleware(cfg.Server.AllowedOrigins))
	if len(cfg.Server.AllowedIPs) > 0 {
		engine.Use(middleware.IPWhitelistMiddleware(middleware.NewIPWhitelist(cfg.Server.AllowedIPs)))
	}
	engine.Use(middleware.RateLimitMiddleware(middleware.NewRateLimiter(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst)))
	engine.Use(middleware.MetricsMiddleware(obs))

	seclog := middleware.NewSecurityLogger()

	mc := controllers.NewMetricsController(col, cfg.History.DefaultLimit)
	sc := controllers.NewStatusController(col, settings, time.Now())
	yc := controllers.NewSystemController(probe)
	wc := controllers.NewStreamController(hub, auth, seclog)

	routes.RegisterAPIRoutes(engine, mc, sc, yc)
	routes.RegisterStreamRoutes(engine, wc)
	routes.RegisterOpsRoutes(engine, obs)

	if cfg.Server.StaticDir != "" {
		engine.Static("/static", cfg.Server.StaticDir)
		engine.StaticFile("/", filepath.Join(cfg.Server.StaticDir, "index.html"))
	}

	return &Server{cfg: cfg, engine: engine}
}

// Engine exposes the router for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Run binds the listener and serves until ctx is canceled, then shuts
// down gracefully. A failed bind is returned immediately so the caller
// can treat it as fatal.
func (s *Server) Run(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("bind %s: %w", addr, err)
	}

	s.httpSrv = &http.Server{Handler: s.engine}
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpSrv.Serve(ln)
	}()
	log.Printf("[server] dashboard listening on %s", addr)

	select {
	case <-ctx.Done():
		log.Println("[server] shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("forced shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	}
}
