package internal

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/esprit/pkg/logger"
)

// Default server timeouts.
const (
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20 // 1MB
	defaultShutdownTimeout   = 30 * time.Second
)

// App mounts the controller behind a chi router. Explicit routes, static
// files, health and metrics endpoints are matched first; every other
// request goes to the controller.
type App struct {
	router       chi.Router
	controller   *Controller
	log          *logger.Logger
	healthConfig *healthConfig
	metrics      *metricsEndpoint
	middlewares  []Middleware
	handlers     []Handler
	staticRoutes []staticRoute
}

type staticRoute struct {
	handler http.Handler
	pattern string
}

type metricsEndpoint struct {
	gatherer prometheus.Gatherer
	path     string
}

// New creates an application. The App is immutable after creation.
//
// Example:
//
//	ctrl, err := esprit.NewController(cfg, esprit.WithCommands(commands))
//	app := esprit.New(
//	    esprit.WithController(ctrl),
//	    esprit.WithMiddleware(middlewares.RequestID()),
//	    esprit.WithHealthChecks(),
//	)
func New(opts ...Option) *App {
	a := &App{
		router: chi.NewRouter(),
		log:    logger.NewNope(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.controller != nil {
		a.log = a.controller.Logger()
	}
	a.setupRoutes()
	return a
}

// Router returns the underlying chi.Router.
func (a *App) Router() chi.Router {
	return a.router
}

// Controller returns the mounted controller, or nil.
func (a *App) Controller() *Controller {
	return a.controller
}

func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// Run starts a single-host server and blocks until shutdown. The
// controller is flushed and closed after the server stops.
//
// Example:
//
//	err := app.Run(":8080", esprit.ShutdownTimeout(10*time.Second))
func (a *App) Run(addr string, opts ...RunOption) error {
	cfg := buildRunConfig(opts...)
	if cfg.logger == nil {
		cfg.logger = a.log
	}

	return runServer(runtimeConfig{
		handler:         a.router,
		address:         addr,
		logger:          cfg.logger,
		shutdownTimeout: cfg.shutdownTimeout,
		shutdownHooks:   append(cfg.shutdownHooks, a.shutdownHooks()...),
		baseCtx:         cfg.baseCtx,
	})
}

func (a *App) shutdownHooks() []func(context.Context) error {
	if a.controller == nil {
		return nil
	}
	return []func(context.Context) error{
		a.controller.Flush,
		func(context.Context) error { return a.controller.Close() },
	}
}

func (a *App) setupRoutes() {
	for _, mw := range a.middlewares {
		a.router.Use(mw)
	}

	for _, sr := range a.staticRoutes {
		a.router.Mount(sr.pattern, sr.handler)
	}

	if a.healthConfig != nil {
		checks := make(map[string]CheckFunc)
		if a.controller != nil {
			for name, fn := range a.controller.ReadinessChecks() {
				checks[name] = fn
			}
		}
		for name, fn := range a.healthConfig.checks {
			checks[name] = fn
		}
		a.router.Get(a.healthConfig.livenessPath, livenessHandler())
		a.router.Get(a.healthConfig.readinessPath, readinessHandler(checks, a.log))
	}

	if a.metrics != nil {
		a.router.Handle(a.metrics.path, promhttp.HandlerFor(a.metrics.gatherer, promhttp.HandlerOpts{}))
	}

	for _, h := range a.handlers {
		h.Routes(a.router)
	}

	if a.controller != nil {
		a.router.NotFound(a.controller.ServeHTTP)
		a.router.MethodNotAllowed(a.controller.ServeHTTP)
	}
}

type healthConfig struct {
	checks        map[string]CheckFunc
	livenessPath  string
	readinessPath string
}

// Default health check paths.
const (
	defaultLivenessPath  = "/health/live"
	defaultReadinessPath = "/health/ready"
)

// HealthOption configures health check endpoints.
type HealthOption func(*healthConfig)

// WithLivenessPath sets the liveness endpoint path.
// Defaults to "/health/live".
func WithLivenessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.livenessPath = path
		}
	}
}

// WithReadinessPath sets the readiness endpoint path.
// Defaults to "/health/ready".
func WithReadinessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.readinessPath = path
		}
	}
}

// WithReadinessCheck adds a named readiness check next to the database and
// cache checks of the controller.
func WithReadinessCheck(name string, fn CheckFunc) HealthOption {
	return func(c *healthConfig) {
		if c.checks == nil {
			c.checks = make(map[string]CheckFunc)
		}
		c.checks[name] = fn
	}
}
