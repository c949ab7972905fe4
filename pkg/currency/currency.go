// Package currency provides display-oriented currency helpers: symbol lookup,
// locale-aware formatting, parsing, and a static conversion table. Formatting
// and parsing degrade gracefully rather than failing since they sit close to
// display code; strict code validation is available where callers want it.
package currency

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// UnsupportedCurrencyError indicates a currency code outside the lookup
// tables. Only strict validation returns it; formatting falls back instead.
type UnsupportedCurrencyError struct {
	Code string
}

func (e *UnsupportedCurrencyError) Error() string {
	return fmt.Sprintf("unsupported currency code %q", e.Code)
}

// Amount pairs a numeric amount with its ISO currency code. Display-only; it
// carries no storage precision guarantees.
type Amount struct {
	Amount       float64
	CurrencyCode string
}

// symbols maps ISO currency codes to their display symbols.
var symbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"KRW": "₩",
	"CAD": "CA$",
	"AUD": "A$",
	"INR": "₹",
	"CNY": "CN¥",
	"MXN": "MX$",
	"BRL": "R$",
	"CHF": "CHF",
	"SEK": "kr",
	"NOK": "kr",
	"DKK": "kr",
	"RUB": "₽",
}

// zeroDecimalCodes lists currencies conventionally displayed without minor
// units.
var zeroDecimalCodes = map[string]bool{
	"JPY": true,
	"KRW": true,
	"VND": true,
	"CLP": true,
}

// usdPerUnit is a static display-only rate table through a USD pivot. These
// are fixed lookup values, not live exchange rates.
var usdPerUnit = map[string]float64{
	"USD": 1,
	"EUR": 1.08,
	"GBP": 1.27,
	"JPY": 0.0067,
	"KRW": 0.00074,
	"CAD": 0.73,
	"AUD": 0.66,
	"INR": 0.012,
	"CNY": 0.14,
	"MXN": 0.059,
	"BRL": 0.19,
	"CHF": 1.13,
	"SEK": 0.095,
	"NOK": 0.094,
	"DKK": 0.145,
	"RUB": 0.011,
}

// SymbolFor returns the display symbol for a currency code, falling back to
// the code followed by a space when unknown.
func SymbolFor(currencyCode string) string {
	if symbol, ok := symbols[strings.ToUpper(currencyCode)]; ok {
		return symbol
	}
	return currencyCode + " "
}

// Validate reports whether the currency code is in the symbol table.
func Validate(currencyCode string) error {
	if _, ok := symbols[strings.ToUpper(currencyCode)]; !ok {
		return &UnsupportedCurrencyError{Code: currencyCode}
	}
	return nil
}

// DefaultDecimals returns the conventional number of minor-unit decimals for
// a currency code.
func DefaultDecimals(currencyCode string) int {
	if zeroDecimalCodes[strings.ToUpper(currencyCode)] {
		return 0
	}
	return 2
}

// Options adjusts Format behavior. Decimals below zero selects the
// currency-specific default. Locale defaults to "en". Compact switches large
// values to K/M/B notation.
type Options struct {
	Decimals int
	Locale   string
	Compact  bool
}

// DefaultOptions returns Options with the decimal default selected.
func DefaultOptions() Options {
	return Options{Decimals: -1}
}

// Format renders an amount with its currency symbol, locale-aware separators,
// and currency-specific decimals.
func Format(amount float64, currencyCode string, opts Options) string {
	decimals := opts.Decimals
	if decimals < 0 {
		decimals = DefaultDecimals(currencyCode)
	}

	locale := opts.Locale
	if locale == "" {
		locale = "en"
	}

	symbol := SymbolFor(currencyCode)
	sign := ""
	abs := amount
	if amount < 0 {
		sign = "-"
		abs = -amount
	}

	if opts.Compact && abs >= 1000 {
		return sign + symbol + compactNumber(abs)
	}

	printer := message.NewPrinter(language.Make(locale))
	verb := fmt.Sprintf("%%.%df", decimals)
	formatted := printer.Sprintf(verb, abs)
	return sign + symbol + formatted
}

// compactNumber renders a non-negative value in K/M/B notation with one
// decimal, trimming a trailing ".0".
func compactNumber(abs float64) string {
	suffix := "K"
	scaled := abs / 1e3
	switch {
	case abs >= 1e9:
		suffix = "B"
		scaled = abs / 1e9
	case abs >= 1e6:
		suffix = "M"
		scaled = abs / 1e6
	}
	s := fmt.Sprintf("%.1f", scaled)
	s = strings.TrimSuffix(s, ".0")
	return s + suffix
}

// Convert converts an amount between currencies for display. Identity when
// the codes match; an explicit positive rate wins over the static table; an
// unknown code on either side falls back to the unconverted amount.
func Convert(amount float64, fromCode, toCode string, rate float64) float64 {
	from := strings.ToUpper(fromCode)
	to := strings.ToUpper(toCode)
	if from == to {
		return amount
	}
	if rate > 0 {
		return amount * rate
	}
	fromRate, fromOK := usdPerUnit[from]
	toRate, toOK := usdPerUnit[to]
	if !fromOK || !toOK {
		return amount
	}
	return amount * fromRate / toRate
}

// symbolPrefixes holds known symbols longest-first so Parse can strip the
// most specific match. Ambiguous symbols resolve to the canonical code.
var symbolPrefixes = buildSymbolPrefixes()

type symbolPrefix struct {
	symbol string
	code   string
}

func buildSymbolPrefixes() []symbolPrefix {
	canonical := map[string]string{
		"$":   "USD",
		"€":   "EUR",
		"£":   "GBP",
		"¥":   "JPY",
		"₩":   "KRW",
		"CA$": "CAD",
		"A$":  "AUD",
		"₹":   "INR",
		"CN¥": "CNY",
		"MX$": "MXN",
		"R$":  "BRL",
		"CHF": "CHF",
		"kr":  "SEK",
		"₽":   "RUB",
	}
	prefixes := make([]symbolPrefix, 0, len(canonical))
	for symbol, code := range canonical {
		prefixes = append(prefixes, symbolPrefix{symbol: symbol, code: code})
	}
	sort.Slice(prefixes, func(i, j int) bool {
		if len(prefixes[i].symbol) != len(prefixes[j].symbol) {
			return len(prefixes[i].symbol) > len(prefixes[j].symbol)
		}
		return prefixes[i].symbol < prefixes[j].symbol
	})
	return prefixes
}

// Parse recognizes symbol-prefixed ("$12.34"), code-suffixed ("12.34 USD"),
// and plain numeric ("12.34") text. The second return is false when the text
// is unparseable; the UI layer decides how to surface that. Plain numeric
// input yields an empty currency code.
func Parse(text string) (Amount, bool) {
	s := strings.TrimSpace(text)
	if s == "" {
		return Amount{}, false
	}

	negative := false
	if strings.HasPrefix(s, "-") {
		negative = true
		s = strings.TrimSpace(s[1:])
	}

	code := ""
	for _, prefix := range symbolPrefixes {
		if strings.HasPrefix(s, prefix.symbol) {
			code = prefix.code
			s = strings.TrimSpace(strings.TrimPrefix(s, prefix.symbol))
			break
		}
	}

	if code == "" {
		if fields := strings.Fields(s); len(fields) == 2 && isCurrencyCode(fields[1]) {
			code = strings.ToUpper(fields[1])
			s = fields[0]
		}
	}

	// Symbols may also carry a leading sign, e.g. "$-5".
	if strings.HasPrefix(s, "-") {
		negative = !negative
		s = strings.TrimSpace(s[1:])
	}

	s = strings.ReplaceAll(s, ",", "")
	value, ok := parseDecimal(s)
	if !ok {
		return Amount{}, false
	}
	if negative {
		value = -value
	}
	return Amount{Amount: value, CurrencyCode: code}, true
}

func isCurrencyCode(s string) bool {
	if len(s) != 3 {
		return false
	}
	for _, r := range s {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')) {
			return false
		}
	}
	return true
}

// parseDecimal accepts plain decimal notation only; exponents or stray
// characters make the text unparseable as money.
func parseDecimal(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	dots := 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r == '.':
			dots++
			if dots > 1 {
				return 0, false
			}
		default:
			return 0, false
		}
	}
	value, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(value, 0) {
		return 0, false
	}
	return value, true
}
