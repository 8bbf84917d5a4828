package logger

import (
	"fmt"
	"log/slog"
	"strings"
)

// Severity levels. They extend slog's four levels so that every record
// still orders correctly against slog.LevelDebug..slog.LevelError.
const (
	LevelFinest  slog.Level = -12
	LevelFiner   slog.Level = -8
	LevelFine    slog.Level = slog.LevelDebug
	LevelConfig  slog.Level = -2
	LevelInfo    slog.Level = slog.LevelInfo
	LevelWarning slog.Level = slog.LevelWarn
	LevelError   slog.Level = slog.LevelError
	LevelSevere  slog.Level = 12
)

var levelNames = map[slog.Level]string{
	LevelFinest:  "FINEST",
	LevelFiner:   "FINER",
	LevelFine:    "FINE",
	LevelConfig:  "CONFIG",
	LevelInfo:    "INFO",
	LevelWarning: "WARNING",
	LevelError:   "ERROR",
	LevelSevere:  "SEVERE",
}

// LevelName returns the severity name of l.
// Levels between two named severities take the name of the lower one.
func LevelName(l slog.Level) string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	best := LevelFinest
	for lvl := range levelNames {
		if lvl <= l && lvl > best {
			best = lvl
		}
	}
	return levelNames[best]
}

// ParseLevel converts a severity name (case-insensitive) to its level.
func ParseLevel(s string) (slog.Level, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	switch name {
	case "WARN":
		return LevelWarning, nil
	case "DEBUG":
		return LevelFine, nil
	}
	for lvl, n := range levelNames {
		if n == name {
			return lvl, nil
		}
	}
	return 0, fmt.Errorf("logger: unknown severity %q", s)
}

// replaceLevel renders the level attribute with severity names instead of
// slog's "DEBUG-4" style offsets.
func replaceLevel(groups []string, a slog.Attr) slog.Attr {
	if len(groups) == 0 && a.Key == slog.LevelKey {
		if lvl, ok := a.Value.Any().(slog.Level); ok {
			return slog.String(slog.LevelKey, LevelName(lvl))
		}
	}
	return a
}
