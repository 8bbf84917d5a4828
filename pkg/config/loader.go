package config

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Option configures Load.
type Option func(*loadOptions)

type loadOptions struct {
	defaults   map[string]string
	envPrefix  string
	dotenv     []string
	useEnv     bool
	loadDotenv bool
}

// WithDefaults supplies values used when neither the file nor the
// environment sets a key.
func WithDefaults(defaults map[string]string) Option {
	return func(o *loadOptions) {
		o.defaults = defaults
	}
}

// WithEnv overlays environment variables named PREFIX_KEY (upper case) on
// top of file values, e.g. ESPRIT_DB_DSN overrides db_dsn.
func WithEnv(prefix string) Option {
	return func(o *loadOptions) {
		o.useEnv = true
		o.envPrefix = prefix
	}
}

// WithDotenv loads the given .env files into the process environment
// before the overlay is applied. Missing files are ignored.
func WithDotenv(files ...string) Option {
	return func(o *loadOptions) {
		o.loadDotenv = true
		o.dotenv = files
	}
}

// Load reads a JSON, XML or YAML file (chosen by extension) and applies
// the configured overlays. An empty path skips the file.
func Load(path string, opts ...Option) (*Config, error) {
	o := &loadOptions{}
	for _, opt := range opts {
		opt(o)
	}

	values := make(map[string]string)
	for k, v := range o.defaults {
		values[k] = v
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrBadConfigFile, path, err)
		}
		parsed, err := Parse(filepath.Ext(path), data)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrBadConfigFile, path, err)
		}
		for k, v := range parsed {
			values[k] = v
		}
	}

	if o.loadDotenv {
		for _, f := range o.dotenv {
			if _, err := os.Stat(f); err != nil {
				continue
			}
			if err := godotenv.Load(f); err != nil {
				return nil, fmt.Errorf("%w: %s: %w", ErrBadConfigFile, f, err)
			}
		}
	}

	if o.useEnv {
		applyEnv(values, o.envPrefix, os.Environ())
	}

	return &Config{values: values}, nil
}

// Parse decodes data according to ext (".json", ".xml", ".yaml", ".yml")
// into flat key-value pairs.
func Parse(ext string, data []byte) (map[string]string, error) {
	switch strings.ToLower(ext) {
	case ".json":
		var doc map[string]any
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
		return flatten(doc), nil
	case ".yaml", ".yml":
		var doc map[string]any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
		return flatten(doc), nil
	case ".xml":
		return parseXML(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

func flatten(doc map[string]any) map[string]string {
	out := make(map[string]string)
	var walk func(prefix string, v any)
	walk = func(prefix string, v any) {
		switch val := v.(type) {
		case map[string]any:
			for k, child := range val {
				walk(joinKey(prefix, k), child)
			}
		case []any:
			parts := make([]string, 0, len(val))
			for _, item := range val {
				parts = append(parts, scalar(item))
			}
			out[prefix] = strings.Join(parts, ",")
		default:
			out[prefix] = scalar(val)
		}
	}
	for k, v := range doc {
		walk(k, v)
	}
	return out
}

func scalar(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// parseXML reads every element below the root. Leaf text becomes the value;
// nested elements are flattened with ".". Repeated leaves are joined by ",".
func parseXML(data []byte) (map[string]string, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	out := make(map[string]string)

	var path []string
	var text strings.Builder
	hasChildren := []bool{}
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if len(hasChildren) > 0 {
				hasChildren[len(hasChildren)-1] = true
			}
			path = append(path, t.Name.Local)
			hasChildren = append(hasChildren, false)
			text.Reset()
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			leaf := !hasChildren[len(hasChildren)-1]
			if leaf && len(path) > 1 {
				key := strings.Join(path[1:], ".")
				val := strings.TrimSpace(text.String())
				if prev, ok := out[key]; ok {
					val = prev + "," + val
				}
				out[key] = val
			}
			path = path[:len(path)-1]
			hasChildren = hasChildren[:len(hasChildren)-1]
			text.Reset()
		}
	}
	if len(out) == 0 && len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("empty document")
	}
	return out, nil
}

func applyEnv(values map[string]string, prefix string, environ []string) {
	if prefix != "" {
		prefix = strings.ToUpper(prefix) + "_"
	}
	for _, kv := range environ {
		name, val, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, prefix) {
			continue
		}
		key := strings.ToLower(strings.TrimPrefix(name, prefix))
		if key == "" {
			continue
		}
		values[key] = val
	}
}
