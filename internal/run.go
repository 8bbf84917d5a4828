package internal

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrymomot/esprit/pkg/hostrouter"
)

// Run serves several Apps from one listener, dispatching on the Host
// header. Every distinct controller is flushed and closed on shutdown.
//
// Example:
//
//	err := esprit.Run(
//	    esprit.Domain("shop.example.com", shop),
//	    esprit.Domain("*.example.com", tenants),
//	    esprit.Fallback(landing),
//	    esprit.Address(":8080"),
//	)
func Run(opts ...RunOption) error {
	cfg := buildRunConfig(opts...)

	var (
		handler http.Handler
		apps    []*App
	)
	switch {
	case len(cfg.domains) > 0:
		routes := make(hostrouter.Routes, len(cfg.domains))
		for pattern, app := range cfg.domains {
			routes[pattern] = app
			apps = append(apps, app)
		}
		var fallback http.Handler
		if cfg.fallback != nil {
			fallback = cfg.fallback
			apps = append(apps, cfg.fallback)
		}
		handler = hostrouter.New(routes, fallback)
	case cfg.fallback != nil:
		handler = cfg.fallback
		apps = append(apps, cfg.fallback)
	default:
		return errors.New("esprit: no domains or fallback configured")
	}

	hooks := cfg.shutdownHooks
	seen := make(map[*Controller]bool)
	for _, app := range apps {
		if c := app.Controller(); c != nil && !seen[c] {
			seen[c] = true
			hooks = append(hooks, app.shutdownHooks()...)
			if cfg.logger == nil {
				cfg.logger = c.Logger()
			}
		}
	}

	return runServer(runtimeConfig{
		handler:         handler,
		address:         cfg.address,
		logger:          cfg.logger,
		shutdownTimeout: cfg.shutdownTimeout,
		shutdownHooks:   hooks,
		baseCtx:         cfg.baseCtx,
	})
}

// ShutdownFunc adapts a closer to a shutdown hook.
func ShutdownFunc(fn func() error) func(context.Context) error {
	return func(context.Context) error { return fn() }
}
