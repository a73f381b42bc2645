package pricing

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"tripdesk/models"
)

// priceFieldOrder is the field preference used when extracting a price from an
// object-shaped calendar entry.
var priceFieldOrder = []string{"b2b_price", "b2c_price", "price", "sale_price", "original_price"}

// SafeNum coerces an arbitrary upstream value into a number. Strings may carry
// thousands-separator commas. NaN, infinities, and anything non-numeric report
// "no value" rather than zero or an error.
func SafeNum(v interface{}) (float64, bool) {
	var n float64
	switch t := v.(type) {
	case nil:
		return 0, false
	case float64:
		n = t
	case float32:
		n = float64(t)
	case int:
		n = float64(t)
	case int32:
		n = float64(t)
	case int64:
		n = float64(t)
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return 0, false
		}
		n = parsed
	case string:
		s := strings.TrimSpace(strings.ReplaceAll(t, ",", ""))
		if s == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		n = parsed
	default:
		return 0, false
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// appendCandidates flattens one field value into the candidate pool: scalars
// directly, time-keyed maps by their leaf values.
func appendCandidates(pool []float64, v interface{}) []float64 {
	if m, ok := v.(map[string]interface{}); ok {
		for _, leaf := range m {
			if n, ok := SafeNum(leaf); ok {
				pool = append(pool, n)
			}
		}
		return pool
	}
	if n, ok := SafeNum(v); ok {
		pool = append(pool, n)
	}
	return pool
}

func minOf(pool []float64) (float64, bool) {
	if len(pool) == 0 {
		return 0, false
	}
	lowest := pool[0]
	for _, n := range pool[1:] {
		if n < lowest {
			lowest = n
		}
	}
	return lowest, true
}

// LowestPrice returns the lowest plausible price of a raw calendar entry
// value, which may be a bare number, a numeric string, or an object whose
// price fields are scalars or time-keyed maps. Malformed input yields
// (0, false); it never panics.
func LowestPrice(entry interface{}) (float64, bool) {
	if entry == nil {
		return 0, false
	}
	if m, ok := entry.(map[string]interface{}); ok {
		var pool []float64
		for _, field := range priceFieldOrder {
			if raw, present := m[field]; present {
				pool = appendCandidates(pool, raw)
			}
		}
		return minOf(pool)
	}
	return SafeNum(entry)
}

// LowestOfEntry is LowestPrice over an already-normalized entry.
func LowestOfEntry(e *models.CalendarEntry) (float64, bool) {
	if e == nil {
		return 0, false
	}
	var pool []float64
	for _, fv := range []*models.FieldValue{e.B2BPrice, e.B2CPrice, e.Price, e.SalePrice, e.OriginalPrice} {
		if n, ok := fv.Min(); ok {
			pool = append(pool, n)
		}
	}
	return minOf(pool)
}

// normalizeField converts a raw field value into a FieldValue, or nil when
// nothing numeric can be read from it.
func normalizeField(raw interface{}) *models.FieldValue {
	if m, ok := raw.(map[string]interface{}); ok {
		times := make(map[string]float64, len(m))
		for key, leaf := range m {
			if n, ok := SafeNum(leaf); ok {
				times[key] = n
			}
		}
		if len(times) == 0 {
			return nil
		}
		return &models.FieldValue{Times: times}
	}
	if n, ok := SafeNum(raw); ok {
		return &models.FieldValue{Scalar: &n}
	}
	return nil
}

func normalizeSoldOut(raw interface{}) *bool {
	switch t := raw.(type) {
	case bool:
		return &t
	default:
		if n, ok := SafeNum(raw); ok {
			v := n != 0
			return &v
		}
	}
	return nil
}

// NormalizeEntry converts any raw per-date calendar value into the canonical
// entry shape. A bare number or numeric string becomes {price: n}; object
// fields keep their scalar-or-time-map structure.
func NormalizeEntry(raw interface{}) *models.CalendarEntry {
	entry := &models.CalendarEntry{}
	if raw == nil {
		return entry
	}
	m, ok := raw.(map[string]interface{})
	if !ok {
		entry.Price = normalizeField(raw)
		return entry
	}
	entry.B2BPrice = normalizeField(m["b2b_price"])
	entry.B2CPrice = normalizeField(m["b2c_price"])
	entry.Price = normalizeField(m["price"])
	entry.SalePrice = normalizeField(m["sale_price"])
	entry.OriginalPrice = normalizeField(m["original_price"])
	entry.SoldOut = normalizeSoldOut(m["soldOut"])
	if n, ok := SafeNum(m["remain_qty"]); ok {
		entry.RemainQty = &n
	}
	return entry
}
