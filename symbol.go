package idxwatch

import "strings"

// providerSuffix is the market suffix Yahoo Finance expects on IDX stock codes.
const providerSuffix = ".JK"

// IndexSymbol is the JCI composite index, fetched alongside every batch.
const IndexSymbol Symbol = "^JKSE"

// indexAlias is the short name the composite index renders under.
const indexAlias = "IHSG"

// Symbol is an IDX stock code (e.g. "BBCA") or a marked index symbol
// (e.g. "^JKSE"). It never carries the provider suffix: translation to and
// from the provider form happens only in ToProvider and FromProvider.
type Symbol string

// NewSymbol normalizes raw user input into a Symbol: trimmed, uppercased,
// and with any provider suffix removed.
func NewSymbol(raw string) Symbol {
	s := strings.ToUpper(strings.TrimSpace(raw))
	s = strings.TrimSuffix(s, providerSuffix)
	return Symbol(s)
}

// IsIndex reports whether s is a marked index symbol rather than a stock code.
func (s Symbol) IsIndex() bool { return strings.HasPrefix(string(s), "^") }

// ToProvider returns the provider form of s. Stock codes get the market
// suffix; index symbols pass through unchanged.
func (s Symbol) ToProvider() string {
	if s.IsIndex() || strings.HasSuffix(string(s), providerSuffix) {
		return string(s)
	}
	return string(s) + providerSuffix
}

// FromProvider converts a provider symbol back to its canonical form.
// Index symbols pass through unchanged.
func FromProvider(provider string) Symbol {
	if strings.HasPrefix(provider, "^") {
		return Symbol(provider)
	}
	return Symbol(strings.TrimSuffix(provider, providerSuffix))
}

// DisplayName returns the presentation label for s. The composite index
// renders under its common alias; the identity used for lookups is never
// altered.
func (s Symbol) DisplayName() string {
	if s == IndexSymbol {
		return indexAlias
	}
	return string(s)
}
