package pricing

import (
	"testing"

	"tripdesk/models"
)

func productWithSkuCalendar(cal map[string]interface{}) *models.Product {
	return &models.Product{
		ID: "P1",
		Items: []models.Item{{
			ItemID: "I1",
			Skus: []models.Sku{{
				SkuID:          "S1",
				CalendarDetail: cal,
			}},
		}},
	}
}

func TestMergeCalendarTimeKeyedEntry(t *testing.T) {
	doc := productWithSkuCalendar(map[string]interface{}{
		"2025-10-18": map[string]interface{}{
			"b2c_price": map[string]interface{}{
				"09:00": 30000.0,
				"18:00": 25000.0,
			},
		},
	})
	fallback := 20000.0
	merged := MergeCalendar(doc, &fallback)

	d := merged["2025-10-18"]
	if d == nil {
		t.Fatal("expected merged entry for 2025-10-18")
	}
	if d.Price == nil || *d.Price != 25000 {
		t.Fatalf("expected date price 25000 (min across times), got %+v", d.Price)
	}
	if d.SoldOut {
		t.Fatal("date must not be sold out")
	}
	if d.FilledPrice {
		t.Fatal("explicit calendar data must not be marked gap-filled")
	}
}

func TestMergeCalendarGapFillFromDisplayPrice(t *testing.T) {
	doc := &models.Product{
		ID: "P1",
		Items: []models.Item{{
			ItemID: "I1",
			Skus: []models.Sku{{
				SkuID:     "S1",
				SaleSDate: "2025-11-01",
				SaleEDate: "2025-11-02",
			}},
		}},
	}
	display := 50000.0
	merged := MergeCalendar(doc, &display)

	if len(merged) != 2 {
		t.Fatalf("expected exactly 2 gap-filled dates, got %d", len(merged))
	}
	for _, date := range []string{"2025-11-01", "2025-11-02"} {
		d := merged[date]
		if d == nil {
			t.Fatalf("missing gap-filled date %s", date)
		}
		if d.Price == nil || *d.Price != 50000 {
			t.Fatalf("%s: expected price 50000, got %+v", date, d.Price)
		}
		if !d.FilledPrice || d.FilledPriceSource != models.FilledFromDisplayPrice {
			t.Fatalf("%s: expected display_price provenance, got %q", date, d.FilledPriceSource)
		}
	}
}

func TestMergeCalendarGapFillFromSkuPrice(t *testing.T) {
	doc := &models.Product{
		Items: []models.Item{{
			Skus: []models.Sku{{
				SkuID:         "S1",
				SaleSDate:     "2025-12-01",
				SaleEDate:     "2025-12-01",
				OfficialPrice: "33,000",
			}},
		}},
	}
	merged := MergeCalendar(doc, nil)
	d := merged["2025-12-01"]
	if d == nil || d.Price == nil || *d.Price != 33000 {
		t.Fatalf("expected sku-priced gap fill at 33000, got %+v", d)
	}
	if d.FilledPriceSource != models.FilledFromSkuPrice {
		t.Fatalf("expected sku_price provenance, got %q", d.FilledPriceSource)
	}
}

func TestMergeCalendarEmptyCalendarEligibleForGapFill(t *testing.T) {
	doc := &models.Product{
		Items: []models.Item{{
			Skus: []models.Sku{{
				SkuID:          "S1",
				CalendarDetail: map[string]interface{}{}, // empty == no calendar
				SaleSDate:      "2025-11-05",
				SaleEDate:      "2025-11-05",
				B2BPrice:       10000.0,
			}},
		}},
	}
	merged := MergeCalendar(doc, nil)
	if d := merged["2025-11-05"]; d == nil || d.Price == nil || *d.Price != 10000 {
		t.Fatalf("empty calendar object must gap-fill like a missing one, got %+v", merged)
	}
}

func TestMergeCalendarInvalidRangeSkipped(t *testing.T) {
	doc := &models.Product{
		Items: []models.Item{{
			Skus: []models.Sku{
				{SkuID: "bad-range", SaleSDate: "2025-11-10", SaleEDate: "2025-11-01", B2BPrice: 1000.0},
				{SkuID: "bad-date", SaleSDate: "not-a-date", SaleEDate: "2025-11-01", B2BPrice: 1000.0},
				{SkuID: "no-base", SaleSDate: "2025-11-01", SaleEDate: "2025-11-02"},
			},
		}},
	}
	merged := MergeCalendar(doc, nil)
	if len(merged) != 0 {
		t.Fatalf("invalid ranges and missing base prices must be skipped, got %d dates", len(merged))
	}
}

func TestMergeCalendarPriceNeverRegresses(t *testing.T) {
	doc := &models.Product{
		Items: []models.Item{
			{
				Skus: []models.Sku{
					{SkuID: "cheap", CalendarDetail: map[string]interface{}{"2025-10-01": 12000.0}},
					{SkuID: "pricey", CalendarDetail: map[string]interface{}{"2025-10-01": 18000.0}},
				},
			},
		},
		CalendarDetail: map[string]interface{}{"2025-10-01": 25000.0},
	}
	merged := MergeCalendar(doc, nil)
	d := merged["2025-10-01"]
	if d == nil || d.Price == nil || *d.Price != 12000 {
		t.Fatalf("summary price must stay at the minimum, got %+v", d)
	}
	if len(d.Skus) != 2 {
		t.Fatalf("both contributing SKUs must be recorded, got %d", len(d.Skus))
	}
}

func TestMergeCalendarSoldOutSticky(t *testing.T) {
	doc := &models.Product{
		Items: []models.Item{{
			Skus: []models.Sku{
				{SkuID: "S1", CalendarDetail: map[string]interface{}{
					"2025-10-02": map[string]interface{}{"price": 9000.0, "soldOut": true},
				}},
				{SkuID: "S2", CalendarDetail: map[string]interface{}{
					"2025-10-02": map[string]interface{}{"price": 11000.0, "soldOut": false},
				}},
			},
		}},
	}
	merged := MergeCalendar(doc, nil)
	d := merged["2025-10-02"]
	if d == nil || !d.SoldOut {
		t.Fatal("soldOut must stay true once any source sets it")
	}
}

func TestMergeCalendarTimeMapMergedPerKeyMinimum(t *testing.T) {
	doc := &models.Product{
		Items: []models.Item{{
			Skus: []models.Sku{
				{SkuID: "S1", CalendarDetail: map[string]interface{}{
					"2025-10-03": map[string]interface{}{
						"b2c_price": map[string]interface{}{"09:00": 30000.0, "12:00": 28000.0},
					},
				}},
				{SkuID: "S2", CalendarDetail: map[string]interface{}{
					"2025-10-03": map[string]interface{}{
						"b2c_price": map[string]interface{}{"09:00": 26000.0, "18:00": 24000.0},
					},
				}},
			},
		}},
	}
	merged := MergeCalendar(doc, nil)
	d := merged["2025-10-03"]
	if d == nil || !d.B2CPrice.IsTimeMap() {
		t.Fatalf("expected merged time map, got %+v", d)
	}
	want := map[string]float64{"09:00": 26000, "12:00": 28000, "18:00": 24000}
	if len(d.B2CPrice.Times) != len(want) {
		t.Fatalf("expected %d time keys, got %v", len(want), d.B2CPrice.Times)
	}
	for key, n := range want {
		if d.B2CPrice.Times[key] != n {
			t.Fatalf("time key %s: got %v, want %v", key, d.B2CPrice.Times[key], n)
		}
	}
}

func TestMergeCalendarGapFillDoesNotOverwriteCheaperDate(t *testing.T) {
	doc := &models.Product{
		Items: []models.Item{{
			Skus: []models.Sku{
				{SkuID: "priced", CalendarDetail: map[string]interface{}{"2025-11-01": 8000.0}},
				{SkuID: "range-only", SaleSDate: "2025-11-01", SaleEDate: "2025-11-01", OfficialPrice: 20000.0},
			},
		}},
	}
	merged := MergeCalendar(doc, nil)
	d := merged["2025-11-01"]
	if d == nil || d.Price == nil || *d.Price != 8000 {
		t.Fatalf("gap-fill must not overwrite a strictly lower explicit price, got %+v", d)
	}
	if d.FilledPrice {
		t.Fatal("cheaper explicit date must not carry gap-fill provenance")
	}
}
