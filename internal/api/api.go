// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fibreflow/workforce/internal/config"
	"github.com/fibreflow/workforce/internal/infrastructure"
	"github.com/fibreflow/workforce/pkg/middleware"
	"github.com/fibreflow/workforce/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
func NewModule(
	ctx context.Context,
	cfg *config.Config,
	infra *infrastructure.Infrastructure,
) (*module.Module, *Domain, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(cfg, runtime)

	mux := http.NewServeMux()
	registerRoutes(mux, domain, cfg, runtime)

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))
	m.Use(middleware.Metrics(runtime.Metrics))
	m.Use(middleware.RateLimit(&cfg.API.RateLimit))

	auth, err := middleware.Auth(ctx, &cfg.API.Auth)
	if err != nil {
		return nil, nil, fmt.Errorf("auth middleware: %w", err)
	}
	m.Use(auth)

	return m, domain, nil
}
