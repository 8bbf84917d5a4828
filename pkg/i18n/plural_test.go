package i18n_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/esprit/pkg/cache"
	"github.com/dmitrymomot/esprit/pkg/i18n"
	"github.com/dmitrymomot/esprit/pkg/logger"
)

func TestPluralRuleFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		lang string
		n    int
		want string
	}{
		{"en", 0, i18n.PluralZero},
		{"en-US", 1, i18n.PluralOne},
		{"en", -1, i18n.PluralOne},
		{"en", 5, i18n.PluralOther},
		{"pl", 2, i18n.PluralFew},
		{"pl", 12, i18n.PluralMany},
		{"ru", 22, i18n.PluralFew},
		{"uk", 25, i18n.PluralMany},
		{"fr", 0, i18n.PluralOne},
		{"pt-BR", 1_000_000, i18n.PluralMany},
		{"es", 0, i18n.PluralOther},
		{"de", 0, i18n.PluralOther},
		{"de-AT", 1, i18n.PluralOne},
		{"ja", 1, i18n.PluralOther},
		{"ar", 2, i18n.PluralTwo},
		{"ar", 105, i18n.PluralFew},
		{"ar", 111, i18n.PluralMany},
		{"ar", 100, i18n.PluralOther},
		{"xx", 3, i18n.PluralFew},
		{"", 25, i18n.PluralOther},
	}
	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, i18n.PluralRuleFor(tt.lang)(tt.n), "n=%d", tt.n)
		})
	}
}

func TestPluralForms(t *testing.T) {
	t.Parallel()

	want := []string{i18n.PluralZero, i18n.PluralOne, i18n.PluralFew, i18n.PluralMany}
	if diff := cmp.Diff(want, i18n.PluralForms(i18n.SlavicPluralRule)); diff != "" {
		t.Errorf("slavic forms (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{i18n.PluralOther}, i18n.PluralForms(i18n.AsianPluralRule)); diff != "" {
		t.Errorf("asian forms (-want +got):\n%s", diff)
	}
}

func TestTranslatePlural(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := i18n.NewMemoryStore()
	store.AddLanguage(i18n.Language{ID: 1, Identifier: "en"})
	store.AddLanguage(i18n.Language{ID: 2, Identifier: "pl"})
	require.NoError(t, store.SetTranslation(ctx, 1, "files.one", "one file"))
	require.NoError(t, store.SetTranslation(ctx, 1, "files.other", "{{count}} files in {{dir}}"))
	require.NoError(t, store.SetTranslation(ctx, 2, "files.one", "1 plik"))
	require.NoError(t, store.SetTranslation(ctx, 2, "files.few", "{{count}} pliki"))
	require.NoError(t, store.SetTranslation(ctx, 2, "files.other", "{{count}} plików"))

	c := cache.NewBlackhole()
	manager := i18n.NewTranslationManager(store, i18n.NewLanguageSource(store, c), c)
	logs := logger.NewMemoryRecorder(logger.LevelFinest)
	l := logger.New(logger.WithRecorder(logs))

	en := i18n.NewTranslator(manager, "en", l)
	assert.Equal(t, "one file", en.TranslatePlural(ctx, "files", 1, nil))
	assert.Equal(t, "0 files in /tmp", en.TranslatePlural(ctx, "files", 0, i18n.M{"dir": "/tmp"}))

	pl := i18n.NewTranslator(manager, "pl", l)
	assert.Equal(t, "3 pliki", pl.TranslatePlural(ctx, "files", 3, nil))
	assert.Equal(t, "5 plików", pl.TranslatePlural(ctx, "files", 5, nil), "many falls back to other")

	assert.Empty(t, en.TranslatePlural(ctx, "folders", 2, nil))
	assert.True(t, logs.Contains(logger.LevelError, "folders.other"))
}
