package i18n

import (
	"context"
	"strconv"
	"strings"
)

// TranslationTool edits translations at runtime. It is exposed only when
// the application runs in debug mode.
type TranslationTool struct {
	store     WritableStore
	languages *LanguageSource
	manager   *TranslationManager
}

// NewTranslationTool creates a tool writing to store.
func NewTranslationTool(store WritableStore, manager *TranslationManager) *TranslationTool {
	return &TranslationTool{store: store, languages: manager.Languages(), manager: manager}
}

// Languages lists every stored language.
func (t *TranslationTool) Languages(ctx context.Context) ([]*Language, error) {
	return t.languages.All(ctx)
}

// IdentifierExists reports whether any language translates identifier.
func (t *TranslationTool) IdentifierExists(ctx context.Context, identifier string) (bool, error) {
	return t.store.IdentifierExists(ctx, identifier)
}

// NewIdentifier returns suggested when it is unused. Otherwise it appends
// or bumps a "_*<hex>" suffix until the identifier is free:
// "greeting" becomes "greeting_*1", "greeting_*9" becomes "greeting_*a".
func (t *TranslationTool) NewIdentifier(ctx context.Context, suggested string) (string, error) {
	exists, err := t.store.IdentifierExists(ctx, suggested)
	if err != nil || !exists {
		return suggested, err
	}

	base, iteration := suggested, uint64(0)
	if i := strings.LastIndex(suggested, "_"); i >= 0 && strings.HasPrefix(suggested[i+1:], "*") {
		if n, err := strconv.ParseUint(suggested[i+2:], 16, 64); err == nil {
			base, iteration = suggested[:i], n
		}
	}

	for {
		iteration++
		guess := base + "_*" + strconv.FormatUint(iteration, 16)
		exists, err := t.store.IdentifierExists(ctx, guess)
		if err != nil {
			return "", err
		}
		if !exists {
			return guess, nil
		}
	}
}

// SetTranslation stores text for identifier in lang and drops the cached
// value.
func (t *TranslationTool) SetTranslation(ctx context.Context, lang *Language, identifier, text string) error {
	if err := t.store.SetTranslation(ctx, lang.ID, identifier, text); err != nil {
		return err
	}
	t.manager.Invalidate(ctx, identifier, lang)
	return nil
}
