package order

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold trims and lower-cases s and strips diacritics, so "Crédito" and "credito" compare equal.
func Fold(s string) string {
	s = strings.TrimSpace(s)
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}

	return strings.ToLower(out)
}

// NormalizeBrand maps free text such as "Boticário" to a Brand. Unknown brands pass through folded.
func NormalizeBrand(s string) Brand {
	return Brand(Fold(s))
}

// NormalizePayment maps free text such as "Crédito" to a PaymentMethod. Unknown values pass through folded.
func NormalizePayment(s string) PaymentMethod {
	return PaymentMethod(Fold(s))
}
