// Command esprit serves a template directory through the path convention.
//
// Every page is a template named after its URL: "/about" renders
// "About.html", "/shop/cart" renders "Shop_Cart.html" or "Shop.html", and
// anything else falls through to "Default.html". It is meant for static
// sites and for trying templates before writing commands.
//
// Usage:
//
//	esprit -config config.yaml
//
// Settings come from the YAML file, then .env, then ESPRIT_* variables.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/dmitrymomot/esprit"
	"github.com/dmitrymomot/esprit/middlewares"
	"github.com/dmitrymomot/esprit/pkg/config"
	"github.com/dmitrymomot/esprit/pkg/i18n"
	"github.com/dmitrymomot/esprit/pkg/logger"
)

const (
	keyStaticDir = "static_dir"
	keyMigrate   = "migrate"
)

func main() {
	path := flag.String("config", os.Getenv("ESPRIT_CONFIG"), "path to the YAML configuration file")
	flag.Parse()

	if err := run(*path); err != nil {
		fmt.Fprintln(os.Stderr, "esprit:", err)
		os.Exit(1)
	}
}

func run(path string) error {
	cfg, err := config.Load(path, config.WithDotenv(), config.WithEnv("ESPRIT"))
	if err != nil {
		return err
	}

	log, err := esprit.NewLoggerFromConfig(cfg, logger.WithExtractors(middlewares.RequestIDExtractor()))
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	ctrl, err := esprit.NewController(cfg,
		esprit.WithLogger(log),
		esprit.WithMetrics(reg),
		esprit.WithRequestIDFunc(middlewares.GetRequestID),
	)
	if err != nil {
		_ = log.Close()
		return err
	}
	// Closing the controller closes the logger too.
	defer func() { _ = ctrl.Close() }()

	if cfg.Bool(keyMigrate, true) {
		if err := migrate(cfg, ctrl); err != nil {
			return err
		}
	}

	opts := []esprit.Option{
		esprit.WithController(ctrl),
		esprit.WithMiddleware(
			middlewares.RequestID(),
			middlewares.Recover(log),
		),
		esprit.WithHealthChecks(),
		esprit.WithMetricsEndpoint("/metrics", reg),
	}
	if dir := cfg.String(keyStaticDir, ""); dir != "" {
		opts = append(opts, esprit.WithStaticFiles("/static/", os.DirFS(dir), "."))
	}

	return esprit.New(opts...).Run(cfg.String(esprit.KeyAddress, ":8080"))
}

// migrate creates the translation tables when a database is configured.
func migrate(cfg *config.Config, ctrl *esprit.Controller) error {
	svc := ctrl.Services()
	if svc.Databases == nil {
		return nil
	}
	ctx := context.Background()
	handle, err := svc.Databases.Default(ctx)
	if err != nil {
		return err
	}
	if err := handle.Migrate(ctx, i18n.Migrations, i18n.MigrationsDir, cfg.String("migrations_table", "")); err != nil {
		return err
	}
	ctrl.Logger().WithOrigin("MIGRATE").Config("translation tables ready", slog.String("dir", i18n.MigrationsDir))
	return nil
}
