package i18n

import (
	"context"
	"errors"
	"maps"

	"golang.org/x/text/language"

	"github.com/dmitrymomot/esprit/pkg/logger"
)

// PluralRule maps a count to its CLDR plural category.
type PluralRule func(n int) string

// CLDR plural categories. A language uses only some of them.
const (
	PluralZero  = "zero"
	PluralOne   = "one"
	PluralTwo   = "two"
	PluralFew   = "few"
	PluralMany  = "many"
	PluralOther = "other"
)

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Plural rules by language family.
var (
	DefaultPluralRule PluralRule = func(n int) string {
		switch a := abs(n); {
		case a == 0:
			return PluralZero
		case a == 1:
			return PluralOne
		case a <= 4:
			return PluralFew
		case a < 20:
			return PluralMany
		}
		return PluralOther
	}

	// English: 0 zero, ±1 one, everything else other.
	EnglishPluralRule PluralRule = func(n int) string {
		switch abs(n) {
		case 0:
			return PluralZero
		case 1:
			return PluralOne
		}
		return PluralOther
	}

	// Polish, Czech, Russian, Ukrainian and their neighbours.
	SlavicPluralRule PluralRule = func(n int) string {
		a := abs(n)
		switch {
		case a == 0:
			return PluralZero
		case a == 1:
			return PluralOne
		}
		if mod10, mod100 := a%10, a%100; mod10 >= 2 && mod10 <= 4 && (mod100 < 12 || mod100 > 14) {
			return PluralFew
		}
		return PluralMany
	}

	// French, Italian and Portuguese treat 0 as singular.
	RomancePluralRule PluralRule = func(n int) string {
		switch a := abs(n); {
		case a <= 1:
			return PluralOne
		case a >= 1_000_000:
			return PluralMany
		}
		return PluralOther
	}

	SpanishPluralRule PluralRule = func(n int) string {
		switch a := abs(n); {
		case a == 1:
			return PluralOne
		case a >= 1_000_000:
			return PluralMany
		}
		return PluralOther
	}

	// German, Dutch and the Scandinavian languages.
	GermanicPluralRule PluralRule = func(n int) string {
		if abs(n) == 1 {
			return PluralOne
		}
		return PluralOther
	}

	// Languages without plural forms.
	AsianPluralRule PluralRule = func(int) string { return PluralOther }

	ArabicPluralRule PluralRule = func(n int) string {
		a := abs(n)
		switch a {
		case 0:
			return PluralZero
		case 1:
			return PluralOne
		case 2:
			return PluralTwo
		}
		switch mod100 := a % 100; {
		case mod100 >= 3 && mod100 <= 10:
			return PluralFew
		case mod100 >= 11:
			return PluralMany
		}
		return PluralOther
	}
)

var pluralRules = map[string]PluralRule{
	"en": EnglishPluralRule,
	"pl": SlavicPluralRule, "ru": SlavicPluralRule, "cs": SlavicPluralRule,
	"uk": SlavicPluralRule, "hr": SlavicPluralRule, "sr": SlavicPluralRule,
	"sk": SlavicPluralRule, "sl": SlavicPluralRule, "bg": SlavicPluralRule,
	"fr": RomancePluralRule, "it": RomancePluralRule, "pt": RomancePluralRule,
	"es": SpanishPluralRule,
	"de": GermanicPluralRule, "nl": GermanicPluralRule, "sv": GermanicPluralRule,
	"no": GermanicPluralRule, "nb": GermanicPluralRule, "da": GermanicPluralRule,
	"is": GermanicPluralRule,
	"ja": AsianPluralRule, "zh": AsianPluralRule, "ko": AsianPluralRule,
	"th": AsianPluralRule, "vi": AsianPluralRule, "id": AsianPluralRule,
	"ms": AsianPluralRule,
	"ar": ArabicPluralRule,
}

// baseLanguage returns the ISO 639 base of a BCP 47 identifier ("pt-BR"
// gives "pt"). Unparsable identifiers are returned unchanged.
func baseLanguage(identifier string) string {
	tag, err := language.Parse(identifier)
	if err != nil {
		return identifier
	}
	base, _ := tag.Base()
	return base.String()
}

// PluralRuleFor returns the rule for a language identifier, or
// DefaultPluralRule when its base language is unknown.
func PluralRuleFor(identifier string) PluralRule {
	if rule, ok := pluralRules[baseLanguage(identifier)]; ok {
		return rule
	}
	return DefaultPluralRule
}

// PluralForms lists the categories rule produces, in CLDR order.
func PluralForms(rule PluralRule) []string {
	seen := make(map[string]bool)
	for _, n := range []int{0, 1, 2, 3, 4, 5, 10, 11, 12, 13, 14, 20, 21, 22, 100, 1000, 1_000_000} {
		seen[rule(n)] = true
	}
	var forms []string
	for _, f := range []string{PluralZero, PluralOne, PluralTwo, PluralFew, PluralMany, PluralOther} {
		if seen[f] {
			forms = append(forms, f)
		}
	}
	return forms
}

// pluralFallbacks are tried after the exact category.
func pluralFallbacks(form string) []string {
	switch form {
	case PluralTwo:
		return []string{PluralFew, PluralMany, PluralOther}
	case PluralFew:
		return []string{PluralMany, PluralOther}
	case PluralOther:
		return nil
	}
	return []string{PluralOther}
}

// TranslatePlural translates "<identifier>.<category>" for n, falling
// back through wider categories down to "other". {{count}} is set to n
// unless placeholders override it. A missing identifier is logged and
// rendered as "".
func (t *Translator) TranslatePlural(ctx context.Context, identifier string, n int, placeholders M) string {
	form := PluralRuleFor(t.language)(n)

	var lastErr error
	for _, f := range append([]string{form}, pluralFallbacks(form)...) {
		text, err := t.source.Translation(ctx, identifier+"."+f, t.language)
		if err == nil {
			params := M{"count": n}
			maps.Copy(params, placeholders)
			return ReplacePlaceholders(text, params)
		}
		lastErr = err
		if !errors.Is(err, ErrInvalidTranslationIdentifier) {
			break
		}
	}
	t.log.LogEvent(ctx, logger.EventFromError(lastErr, "TRANSLATOR"))
	return ""
}
