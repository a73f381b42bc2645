package pricing

import "testing"

func TestSafeNum(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want float64
		ok   bool
	}{
		{"float", 12500.0, 12500, true},
		{"int", 300, 300, true},
		{"string", "15000", 15000, true},
		{"string with commas", "1,250,000", 1250000, true},
		{"string with spaces", " 9900 ", 9900, true},
		{"empty string", "", 0, false},
		{"garbage string", "free", 0, false},
		{"nil", nil, 0, false},
		{"bool", true, 0, false},
		{"object", map[string]interface{}{"x": 1}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SafeNum(tt.in)
			if ok != tt.ok {
				t.Fatalf("SafeNum(%v) ok = %v, want %v", tt.in, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Fatalf("SafeNum(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLowestPriceScalarEntry(t *testing.T) {
	if got, ok := LowestPrice(30000.0); !ok || got != 30000 {
		t.Fatalf("bare number: got (%v, %v)", got, ok)
	}
	if got, ok := LowestPrice("25,000"); !ok || got != 25000 {
		t.Fatalf("numeric string: got (%v, %v)", got, ok)
	}
}

func TestLowestPriceObjectEntry(t *testing.T) {
	entry := map[string]interface{}{
		"b2b_price": 32000.0,
		"b2c_price": map[string]interface{}{
			"09:00": 30000.0,
			"18:00": 25000.0,
		},
		"original_price": 40000.0,
	}
	got, ok := LowestPrice(entry)
	if !ok {
		t.Fatal("expected a price")
	}
	if got != 25000 {
		t.Fatalf("expected min across time map, got %v", got)
	}
}

func TestLowestPriceIgnoresMalformedLeaves(t *testing.T) {
	entry := map[string]interface{}{
		"price": map[string]interface{}{
			"10:00": "oops",
			"14:00": "18,000",
		},
		"sale_price": "also not a number",
	}
	got, ok := LowestPrice(entry)
	if !ok || got != 18000 {
		t.Fatalf("expected 18000, got (%v, %v)", got, ok)
	}
}

func TestLowestPriceEmpty(t *testing.T) {
	if _, ok := LowestPrice(nil); ok {
		t.Fatal("nil entry must have no price")
	}
	if _, ok := LowestPrice(map[string]interface{}{"soldOut": true}); ok {
		t.Fatal("entry without price fields must have no price")
	}
}

// the extracted price never exceeds any numeric leaf of the tracked fields
func TestLowestPriceIsLowerBound(t *testing.T) {
	entry := map[string]interface{}{
		"b2b_price":      map[string]interface{}{"09:00": 31000.0, "12:00": 28000.0},
		"b2c_price":      27000.0,
		"price":          "29,500",
		"original_price": map[string]interface{}{"09:00": 45000.0},
	}
	got, ok := LowestPrice(entry)
	if !ok {
		t.Fatal("expected a price")
	}
	for _, leaf := range []float64{31000, 28000, 27000, 29500, 45000} {
		if got > leaf {
			t.Fatalf("extracted %v exceeds leaf %v", got, leaf)
		}
	}
}

func TestNormalizeEntryScalar(t *testing.T) {
	entry := NormalizeEntry("12,000")
	if entry.Price == nil || entry.Price.Scalar == nil || *entry.Price.Scalar != 12000 {
		t.Fatalf("bare value must normalize to a scalar price, got %+v", entry.Price)
	}
}

func TestNormalizeEntryObject(t *testing.T) {
	entry := NormalizeEntry(map[string]interface{}{
		"b2c_price":  map[string]interface{}{"09:00": 30000.0, "18:00": 25000.0},
		"soldOut":    true,
		"remain_qty": 4,
	})
	if !entry.B2CPrice.IsTimeMap() || len(entry.B2CPrice.Times) != 2 {
		t.Fatalf("expected a 2-key time map, got %+v", entry.B2CPrice)
	}
	if entry.SoldOut == nil || !*entry.SoldOut {
		t.Fatal("soldOut flag lost")
	}
	if entry.RemainQty == nil || *entry.RemainQty != 4 {
		t.Fatalf("remain_qty lost: %+v", entry.RemainQty)
	}
	if n, ok := entry.B2CPrice.Min(); !ok || n != 25000 {
		t.Fatalf("time-map Min = (%v, %v), want 25000", n, ok)
	}
}
