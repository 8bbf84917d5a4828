package i18n

import (
	"context"

	"github.com/dmitrymomot/esprit/pkg/logger"
)

// Source resolves translations for a language identifier.
type Source interface {
	Translation(ctx context.Context, identifier, langIdentifier string) (string, error)
}

// Translator binds a Source to one language. Lookup failures are logged
// and rendered as an empty string.
type Translator struct {
	source   Source
	log      *logger.Logger
	language string
}

// NewTranslator creates a Translator for language.
func NewTranslator(source Source, language string, l *logger.Logger) *Translator {
	if l == nil {
		l = logger.NewNope()
	}
	return &Translator{source: source, language: language, log: l}
}

// Translate returns the text for identifier, or "" after logging the
// failure.
func (t *Translator) Translate(ctx context.Context, identifier string) string {
	text, err := t.source.Translation(ctx, identifier, t.language)
	if err != nil {
		t.log.LogEvent(ctx, logger.EventFromError(err, "TRANSLATOR"))
		return ""
	}
	return text
}

// TranslateWith translates identifier and fills its {{name}} placeholders.
func (t *Translator) TranslateWith(ctx context.Context, identifier string, placeholders M) string {
	return ReplacePlaceholders(t.Translate(ctx, identifier), placeholders)
}

// Language returns the translator's language identifier.
func (t *Translator) Language() string {
	return t.language
}
