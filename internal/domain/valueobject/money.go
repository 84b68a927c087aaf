package valueobject

import (
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// MoneyPlaces is the scale of every stored money column.
const MoneyPlaces = 2

// IsMoneyPrecision reports whether amount can be stored without rounding,
// i.e. it has no significant digits past MoneyPlaces. "10.500" qualifies.
func IsMoneyPrecision(amount decimal.Decimal) bool {
	return amount.Equal(amount.Truncate(MoneyPlaces))
}

// Locale controls how money values are printed in human-facing reports.
type Locale struct {
	Code              string
	CurrencyPrefix    string
	ThousandSeparator string
	DecimalSeparator  string
}

var (
	// LocaleID prints Indonesian Rupiah, e.g. "Rp 45.000,00".
	LocaleID = Locale{Code: "id-ID", CurrencyPrefix: "Rp ", ThousandSeparator: ".", DecimalSeparator: ","}

	// LocaleUS prints plain grouped numbers, e.g. "45,000.00".
	LocaleUS = Locale{Code: "en-US", CurrencyPrefix: "", ThousandSeparator: ",", DecimalSeparator: "."}
)

// LocaleFor returns the locale registered for code, falling back to LocaleID.
func LocaleFor(code string) Locale {
	switch strings.ToLower(strings.TrimSpace(code)) {
	case "en-us", "en", "us":
		return LocaleUS
	default:
		return LocaleID
	}
}

// WithCurrencyPrefix returns a copy of the locale using prefix instead of its default.
func (l Locale) WithCurrencyPrefix(prefix string) Locale {
	l.CurrencyPrefix = prefix
	return l
}

// FormatMoney prints amount rounded to two places with grouped thousands.
func (l Locale) FormatMoney(amount decimal.Decimal) string {
	return l.CurrencyPrefix + l.FormatNumber(amount, 2)
}

// FormatNumber prints amount with the given number of fraction digits.
func (l Locale) FormatNumber(amount decimal.Decimal, places int32) string {
	rounded := amount.Round(places)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Abs()
	}

	grouped := humanize.BigComma(rounded.Truncate(0).BigInt())
	if l.ThousandSeparator != "," {
		grouped = strings.ReplaceAll(grouped, ",", l.ThousandSeparator)
	}
	if places <= 0 {
		return sign + grouped
	}

	fixed := rounded.StringFixed(places)
	fraction := fixed[strings.IndexByte(fixed, '.')+1:]
	return sign + grouped + l.DecimalSeparator + fraction
}
