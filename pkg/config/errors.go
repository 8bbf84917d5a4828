package config

import "errors"

var (
	// ErrBadConfigFile is returned when a config file cannot be read or parsed.
	ErrBadConfigFile = errors.New("config: bad config file")

	// ErrUnsupportedFormat is returned for file extensions with no parser.
	ErrUnsupportedFormat = errors.New("config: unsupported config format")

	// ErrNonexistentKey is returned by Require for unset keys.
	ErrNonexistentKey = errors.New("config: nonexistent key")
)
