package services

import (
	"math"
	"strconv"
	"strings"
)

// ProductPayload carries the raw request fields for create and update. Values
// keep whatever JSON type the client sent; validation decides what they mean.
type ProductPayload struct {
	Name     any `json:"name"`
	Category any `json:"category"`
	Price    any `json:"price"`
	Stock    any `json:"stock"`
}

// present reports whether v counts as supplied. Absent, null, false, zero,
// NaN and the empty string all count as missing, so a stock of 0 is rejected.
func present(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case float64:
		return val != 0 && !math.IsNaN(val)
	case int:
		return val != 0
	case string:
		return val != ""
	default:
		return true
	}
}

// toNumber coerces v the way a loose numeric check does: numeric strings,
// booleans and null convert, arrays and objects do not. ok is false when the
// result is not a finite number.
func toNumber(v any) (n float64, ok bool) {
	switch val := v.(type) {
	case nil:
		return 0, true
	case bool:
		if val {
			return 1, true
		}
		return 0, true
	case float64:
		n = val
	case int:
		n = float64(val)
	case string:
		return parseNumber(val)
	default:
		return 0, false
	}
	return n, !math.IsNaN(n) && !math.IsInf(n, 0)
}

func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "0x") || strings.HasPrefix(lower, "0o") || strings.HasPrefix(lower, "0b") {
		if strings.Contains(s, "_") {
			return 0, false
		}
		n, err := strconv.ParseUint(s, 0, 64)
		if err != nil {
			return 0, false
		}
		return float64(n), true
	}
	// ParseFloat also accepts "inf", "nan", hex floats and underscores;
	// only plain decimal notation is a number here.
	for _, r := range lower {
		if !strings.ContainsRune("0123456789+-.e", r) {
			return 0, false
		}
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

func toText(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}
