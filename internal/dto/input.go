package dto

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Request input arrives as strings (path, query, form) or json.Number
// (bodies decoded with UseNumber). These helpers read already-validated values.

func Uint(v any) uint {
	f, ok := number(v)
	if !ok || f < 0 {
		return 0
	}
	if f >= float64(math.MaxUint) {
		return math.MaxUint
	}
	return uint(f)
}

func Int(v any, fallback int) int {
	f, ok := number(v)
	if !ok {
		return fallback
	}
	switch {
	case f >= float64(math.MaxInt):
		return math.MaxInt
	case f <= float64(math.MinInt):
		return math.MinInt
	}
	return int(f)
}

func Float(v any) float64 {
	f, _ := number(v)
	return f
}

func String(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case json.Number:
		return s.String()
	default:
		return fmt.Sprint(s)
	}
}

// number rejects NaN and infinities.
func number(v any) (float64, bool) {
	f, ok := parseNumber(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func parseNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	case float64:
		return n, true
	case int:
		return float64(n), true
	case uint:
		return float64(n), true
	default:
		return 0, false
	}
}
