package i18n

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrymomot/esprit/pkg/cache"
)

// TranslationManager looks up translations along a language's parent chain.
type TranslationManager struct {
	store     Store
	languages *LanguageSource
	cache     cache.Cache
}

// NewTranslationManager creates a manager. A nil cache skips caching.
func NewTranslationManager(store Store, languages *LanguageSource, c cache.Cache) *TranslationManager {
	if c == nil {
		c = cache.NewBlackhole()
	}
	return &TranslationManager{store: store, languages: languages, cache: c}
}

func translationKey(languageID int64, identifier string) string {
	return "translation_" + strconv.FormatInt(languageID, 10) + "_" + identifier
}

// Translation returns the text for identifier in the language named by
// langIdentifier. The language itself is tried first, then each ancestor up
// to the root; the first non-empty text wins.
func (m *TranslationManager) Translation(ctx context.Context, identifier, langIdentifier string) (string, error) {
	lang, err := m.languages.ByIdentifier(ctx, langIdentifier)
	if err != nil {
		return "", err
	}
	return m.TranslationFor(ctx, identifier, lang)
}

// TranslationFor is Translation with an already resolved language.
func (m *TranslationManager) TranslationFor(ctx context.Context, identifier string, lang *Language) (string, error) {
	key := translationKey(lang.ID, identifier)
	var text string
	if found, _ := m.cache.Get(ctx, key, &text); found && text != "" {
		return text, nil
	}

	chain, err := m.languages.Ancestry(ctx, lang)
	if err != nil {
		return "", err
	}
	for _, l := range chain {
		text, ok, err := m.store.Translation(ctx, l.ID, identifier)
		if err != nil {
			return "", err
		}
		if ok && text != "" {
			_ = m.cache.Set(ctx, key, text, 0)
			return text, nil
		}
	}
	return "", fmt.Errorf("%w: %q in %s", ErrInvalidTranslationIdentifier, identifier, lang.Identifier)
}

// Invalidate drops the cached text of identifier for lang.
func (m *TranslationManager) Invalidate(ctx context.Context, identifier string, lang *Language) {
	_ = m.cache.Delete(ctx, translationKey(lang.ID, identifier))
}

// Languages returns the manager's language source.
func (m *TranslationManager) Languages() *LanguageSource { return m.languages }
