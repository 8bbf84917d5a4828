// Package config loads read-only key-value settings from JSON, XML or YAML
// files with optional .env and environment overlays.
//
//	cfg, err := config.Load("data/config.json",
//		config.WithDotenv(".env"),
//		config.WithEnv("ESPRIT"),
//	)
//	dsn := cfg.String("db_dsn", "")
//
// Nested keys are flattened with "." ("template.cache"), lists are joined
// with ",". With WithEnv("ESPRIT"), ESPRIT_DB_DSN overrides db_dsn. An
// empty prefix overlays the whole environment.
package config
