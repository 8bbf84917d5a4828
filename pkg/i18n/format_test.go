package i18n_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/esprit/pkg/i18n"
)

func TestFormatFor(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, time.December, 31, 18, 30, 0, 0, time.UTC)

	tests := []struct {
		lang     string
		number   string
		currency string
		percent  string
		date     string
		clock    string
	}{
		{"en", "1,234,567.5", "$1,234,567.50", "12.5%", "12/31/2024", "6:30 PM"},
		{"en-GB", "1,234,567.5", "£1,234,567.50", "12.5%", "31/12/2024", "18:30"},
		{"en-AU", "1,234,567.5", "$1,234,567.50", "12.5%", "12/31/2024", "6:30 PM"},
		{"de-CH", "1.234.567,5", "1.234.567,50 €", "12,5%", "31.12.2024", "18:30"},
		{"fr", "1 234 567,5", "1 234 567,50 €", "12,5%", "31/12/2024", "18:30"},
		{"pt-BR", "1.234.567,5", "R$1.234.567,50", "12,5%", "31/12/2024", "18:30"},
		{"ja", "1,234,567.5", "¥1,234,567.50", "12.5%", "2024/12/31", "18:30"},
		{"ar", "1,234,567.5", "1,234,567.50 SAR", "12.5%", "31/12/2024", "6:30 PM"},
		{"not a tag", "1,234,567.5", "$1,234,567.50", "12.5%", "12/31/2024", "6:30 PM"},
	}
	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			t.Parallel()
			f := i18n.FormatFor(tt.lang)
			assert.Equal(t, tt.number, f.Number(1234567.5))
			assert.Equal(t, tt.currency, f.Currency(1234567.5))
			assert.Equal(t, tt.percent, f.Percent(0.125))
			assert.Equal(t, tt.date, f.Date(at))
			assert.Equal(t, tt.clock, f.Time(at))
		})
	}
}

func TestLocaleFormat(t *testing.T) {
	t.Parallel()

	f := i18n.NewLocaleFormat()
	assert.Equal(t, "0", f.Number(0))
	assert.Equal(t, "999", f.Number(999))
	assert.Equal(t, "1,000", f.Number(1000))
	assert.Equal(t, "-12,345.67", f.Number(-12345.671))
	assert.Equal(t, "2", f.Number(1.999))
	assert.Equal(t, "-$5.00", f.Currency(-5))
	assert.Equal(t, "-50%", f.Percent(-0.5))

	custom := i18n.NewLocaleFormat(
		i18n.WithSeparators(",", "'"),
		i18n.WithCurrency("CHF", false),
		i18n.WithPercentSymbol(" %"),
	)
	assert.Equal(t, "CHF 1'000,25", custom.Currency(1000.25))
	assert.Equal(t, "33,3 %", custom.Percent(1.0/3))
}
