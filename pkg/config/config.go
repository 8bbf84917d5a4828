package config

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Config is a read-only set of string settings. Nested documents are
// flattened with "." between levels; lists are joined with ",".
type Config struct {
	values map[string]string
}

// FromMap builds a Config from already flat values.
func FromMap(values map[string]string) *Config {
	return &Config{values: maps.Clone(values)}
}

// Exists reports whether key is set.
func (c *Config) Exists(key string) bool {
	_, ok := c.values[key]
	return ok
}

// Get returns the raw value of key and whether it is set.
func (c *Config) Get(key string) (string, bool) {
	v, ok := c.values[key]
	return v, ok
}

// Require returns the value of key or ErrNonexistentKey.
func (c *Config) Require(key string) (string, error) {
	v, ok := c.values[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNonexistentKey, key)
	}
	return v, nil
}

// String returns the value of key, or def when unset.
func (c *Config) String(key, def string) string {
	if v, ok := c.values[key]; ok {
		return v
	}
	return def
}

// Int returns key parsed as an integer, or def when unset or malformed.
func (c *Config) Int(key string, def int) int {
	v, ok := c.values[key]
	if !ok {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return n
}

// Bool returns key parsed as a boolean, or def when unset or malformed.
// Empty values count as true so that XML markers like <debug/> work.
func (c *Config) Bool(key string, def bool) bool {
	v, ok := c.values[key]
	if !ok {
		return def
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return true
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// Duration returns key parsed with time.ParseDuration. Bare integers are
// read as seconds.
func (c *Config) Duration(key string, def time.Duration) time.Duration {
	v, ok := c.values[key]
	if !ok {
		return def
	}
	v = strings.TrimSpace(v)
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

// Strings splits key on commas, trimming blanks. Unset keys yield nil.
func (c *Config) Strings(key string) []string {
	v, ok := c.values[key]
	if !ok {
		return nil
	}
	var out []string
	for part := range strings.SplitSeq(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Keys returns all keys in sorted order.
func (c *Config) Keys() []string {
	return slices.Sorted(maps.Keys(c.values))
}

// All returns a copy of every setting.
func (c *Config) All() map[string]string {
	return maps.Clone(c.values)
}
