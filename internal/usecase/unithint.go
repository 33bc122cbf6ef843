package usecase

import (
	"regexp"
	"strconv"
	"strings"
)

// Canonical base units.
const (
	UnitGrams       = "g"
	UnitMilliliters = "ml"
	UnitCount       = "count"
)

// UnitHint is a parsed size/quantity in canonical base units. Ephemeral:
// computed on demand, never persisted.
type UnitHint struct {
	Value float64
	Unit  string
	Raw   string
}

var (
	// "2x500ml", "3 x 1,5l"
	multipackPattern = regexp.MustCompile(`(?i)(\d+)\s*x\s*(\d+(?:[.,]\d+)?)\s*(kg|g|l|ml|cl)\b`)

	// "500g", "1.5 liter", "6 stuks". Longer unit spellings come first so the
	// alternation never settles for a prefix.
	unitPattern = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*(kg|grams|gram|g|liter|litre|l|ml|cl|stuks|stuk|x)\b`)
)

// parseUnitHint tries each text source in order and returns the first
// parseable hint. Parsing runs on the lowered raw text so decimal separators
// survive; both "1.5l" and "1,5l" yield 1500 ml. No hint in any source is a
// normal outcome, not an error.
func parseUnitHint(texts ...string) *UnitHint {
	for _, text := range texts {
		if text == "" {
			continue
		}
		lowered := stripAccents(strings.ToLower(text))

		if m := multipackPattern.FindStringSubmatch(lowered); m != nil {
			count := parseDecimal(m[1])
			amount, unit := canonicalUnit(parseDecimal(m[2]), m[3])
			return &UnitHint{Value: count * amount, Unit: unit, Raw: m[0]}
		}

		if m := unitPattern.FindStringSubmatch(lowered); m != nil {
			amount, unit := canonicalUnit(parseDecimal(m[1]), m[2])
			return &UnitHint{Value: amount, Unit: unit, Raw: m[0]}
		}
	}
	return nil
}

// parseDecimal accepts both "." and "," as decimal separator.
func parseDecimal(s string) float64 {
	v, _ := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	return v
}

// canonicalUnit converts an amount to base units: weights to grams, volumes
// to milliliters, piece counts to "count".
func canonicalUnit(amount float64, unit string) (float64, string) {
	switch strings.ToLower(unit) {
	case "kg":
		return amount * 1000, UnitGrams
	case "gram", "grams", "g":
		return amount, UnitGrams
	case "l", "liter", "litre":
		return amount * 1000, UnitMilliliters
	case "cl":
		return amount * 10, UnitMilliliters
	case "ml":
		return amount, UnitMilliliters
	case "stuk", "stuks", "x":
		return amount, UnitCount
	default:
		return amount, unit
	}
}
