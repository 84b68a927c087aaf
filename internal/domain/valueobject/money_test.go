package valueobject

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestLocale_FormatMoney(t *testing.T) {
	tests := []struct {
		name   string
		locale Locale
		amount string
		want   string
	}{
		{name: "rupiah grouping", locale: LocaleID, amount: "45000", want: "Rp 45.000,00"},
		{name: "rupiah millions", locale: LocaleID, amount: "1234567.891", want: "Rp 1.234.567,89"},
		{name: "us grouping", locale: LocaleUS, amount: "45000", want: "45,000.00"},
		{name: "small value", locale: LocaleUS, amount: "0.5", want: "0.50"},
		{name: "negative", locale: LocaleUS, amount: "-10000.25", want: "-10,000.25"},
		{name: "rounding carries", locale: LocaleUS, amount: "999.999", want: "1,000.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.locale.FormatMoney(decimal.RequireFromString(tt.amount))
			if got != tt.want {
				t.Errorf("FormatMoney(%s) = %q, want %q", tt.amount, got, tt.want)
			}
		})
	}
}

func TestLocaleFor(t *testing.T) {
	if LocaleFor("en-US").Code != "en-US" {
		t.Error("expected en-US locale")
	}
	if LocaleFor("unknown").Code != "id-ID" {
		t.Error("expected id-ID fallback")
	}
}

func TestIsMoneyPrecision(t *testing.T) {
	tests := []struct {
		amount string
		want   bool
	}{
		{amount: "45000", want: true},
		{amount: "1250.50", want: true},
		{amount: "10.500", want: true},
		{amount: "0.01", want: true},
		{amount: "0.005", want: false},
		{amount: "-3.141", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			if got := IsMoneyPrecision(decimal.RequireFromString(tt.amount)); got != tt.want {
				t.Errorf("IsMoneyPrecision(%s) = %v, want %v", tt.amount, got, tt.want)
			}
		})
	}
}
