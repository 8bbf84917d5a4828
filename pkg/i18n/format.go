package i18n

import (
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// LocaleFormat renders numbers, money and dates the way a locale writes
// them. It is immutable and safe for concurrent use.
type LocaleFormat struct {
	decimal       string
	thousands     string
	currency      string
	currencyAfter bool
	percent       string
	date          string
	clock         string
	dateTime      string
}

// LocaleFormatOption configures NewLocaleFormat.
type LocaleFormatOption func(*LocaleFormat)

// NewLocaleFormat starts from US English conventions.
func NewLocaleFormat(opts ...LocaleFormatOption) *LocaleFormat {
	f := &LocaleFormat{
		decimal:   ".",
		thousands: ",",
		currency:  "$",
		percent:   "%",
		date:      "01/02/2006",
		clock:     "3:04 PM",
		dateTime:  "01/02/2006 3:04 PM",
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func WithSeparators(decimal, thousands string) LocaleFormatOption {
	return func(f *LocaleFormat) {
		f.decimal, f.thousands = decimal, thousands
	}
}

// WithCurrency sets the symbol and whether it follows the amount.
func WithCurrency(symbol string, after bool) LocaleFormatOption {
	return func(f *LocaleFormat) {
		f.currency, f.currencyAfter = symbol, after
	}
}

func WithPercentSymbol(symbol string) LocaleFormatOption {
	return func(f *LocaleFormat) {
		f.percent = symbol
	}
}

// WithLayouts sets the Go time layouts for dates, times and both.
func WithLayouts(date, clock, dateTime string) LocaleFormatOption {
	return func(f *LocaleFormat) {
		f.date, f.clock, f.dateTime = date, clock, dateTime
	}
}

// Number groups thousands and keeps up to two decimals, dropping
// trailing zeros.
func (f *LocaleFormat) Number(n float64) string {
	return f.signed(n, func(a float64) string { return f.fixed(a, 2, true) })
}

// Currency always shows two decimals next to the currency symbol.
func (f *LocaleFormat) Currency(amount float64) string {
	return f.signed(amount, func(a float64) string {
		num := f.fixed(a, 2, false)
		switch {
		case f.currencyAfter:
			return num + " " + f.currency
		case tightSymbol(f.currency):
			return f.currency + num
		}
		return f.currency + " " + num
	})
}

// Percent renders a ratio (0.25 is "25%") with at most one decimal.
func (f *LocaleFormat) Percent(ratio float64) string {
	return f.signed(ratio*100, func(a float64) string {
		a = math.Round(a*10) / 10
		whole := int64(a)
		out := strconv.FormatInt(whole, 10)
		if d := int64(math.Round((a - float64(whole)) * 10)); d > 0 {
			out += f.decimal + strconv.FormatInt(d, 10)
		}
		return out + f.percent
	})
}

func (f *LocaleFormat) Date(t time.Time) string     { return t.Format(f.date) }
func (f *LocaleFormat) Time(t time.Time) string     { return t.Format(f.clock) }
func (f *LocaleFormat) DateTime(t time.Time) string { return t.Format(f.dateTime) }

func (f *LocaleFormat) signed(n float64, render func(float64) string) string {
	if n < 0 {
		return "-" + render(-n)
	}
	return render(n)
}

// fixed renders a non-negative n with the given decimals, optionally
// trimming trailing zeros.
func (f *LocaleFormat) fixed(n float64, decimals int, trim bool) string {
	scale := math.Pow10(decimals)
	cents := int64(math.Round(n * scale))
	whole, frac := cents/int64(scale), cents%int64(scale)

	out := f.group(whole)
	digits := strconv.FormatInt(frac, 10)
	digits = strings.Repeat("0", decimals-len(digits)) + digits
	if trim {
		digits = strings.TrimRight(digits, "0")
	}
	if digits != "" {
		out += f.decimal + digits
	}
	return out
}

func (f *LocaleFormat) group(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	head := len(s) % 3
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteString(f.thousands)
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// tightSymbol reports whether a leading symbol is written without a space.
func tightSymbol(symbol string) bool {
	return strings.HasSuffix(symbol, "$") || symbol == "£" || symbol == "¥" || symbol == "₩"
}

var (
	dmyDots  = WithLayouts("02.01.2006", "15:04", "02.01.2006 15:04")
	dmySlash = WithLayouts("02/01/2006", "15:04", "02/01/2006 15:04")
)

// localeFormats is keyed by BCP 47 tag; a base language entry serves every
// region without its own.
var localeFormats = map[string]*LocaleFormat{
	"en":    NewLocaleFormat(),
	"en-GB": NewLocaleFormat(WithCurrency("£", false), dmySlash),
	"de":    NewLocaleFormat(WithSeparators(",", "."), WithCurrency("€", true), dmyDots),
	"fr":    NewLocaleFormat(WithSeparators(",", " "), WithCurrency("€", true), dmySlash),
	"es":    NewLocaleFormat(WithSeparators(",", "."), WithCurrency("€", true), dmySlash),
	"pt":    NewLocaleFormat(WithSeparators(",", "."), WithCurrency("R$", false), dmySlash),
	"ja":    NewLocaleFormat(WithCurrency("¥", false), WithLayouts("2006/01/02", "15:04", "2006/01/02 15:04")),
	"zh":    NewLocaleFormat(WithCurrency("¥", false), WithLayouts("2006-01-02", "15:04", "2006-01-02 15:04")),
	"ko":    NewLocaleFormat(WithCurrency("₩", false), WithLayouts("2006.01.02", "15:04", "2006.01.02 15:04")),
	"pl":    NewLocaleFormat(WithSeparators(",", " "), WithCurrency("zł", true), dmyDots),
	"ru":    NewLocaleFormat(WithSeparators(",", " "), WithCurrency("₽", true), dmyDots),
	"ar":    NewLocaleFormat(WithCurrency("SAR", true), WithLayouts("02/01/2006", "3:04 PM", "02/01/2006 3:04 PM")),
}

// FormatFor returns the conventions for a language identifier: the exact
// tag, then its base language, then US English.
func FormatFor(identifier string) *LocaleFormat {
	tag, err := language.Parse(identifier)
	if err == nil {
		if f, ok := localeFormats[tag.String()]; ok {
			return f
		}
		base, _ := tag.Base()
		if f, ok := localeFormats[base.String()]; ok {
			return f
		}
	}
	return localeFormats["en"]
}
