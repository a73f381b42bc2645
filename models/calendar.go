package models

// Provenance markers for gap-filled calendar dates.
const (
	FilledFromDisplayPrice = "display_price"
	FilledFromSkuPrice     = "sku_price"
)

// FieldValue is the canonical form of one price-like calendar field: either a
// single number or a map of time-of-day strings ("09:00") to numbers. Exactly
// one of Scalar/Times is set.
type FieldValue struct {
	Scalar *float64           `bson:"scalar,omitempty" json:"scalar,omitempty"`
	Times  map[string]float64 `bson:"times,omitempty" json:"times,omitempty"`
}

// IsTimeMap reports whether the value is keyed by time of day.
func (v *FieldValue) IsTimeMap() bool {
	return v != nil && len(v.Times) > 0
}

// Min returns the effective date-level value: the scalar itself, or the
// minimum across all time keys.
func (v *FieldValue) Min() (float64, bool) {
	if v == nil {
		return 0, false
	}
	if v.Scalar != nil {
		return *v.Scalar, true
	}
	found := false
	lowest := 0.0
	for _, n := range v.Times {
		if !found || n < lowest {
			lowest = n
			found = true
		}
	}
	return lowest, found
}

// CalendarEntry is a per-date record after normalization. Raw upstream entries
// may be bare numbers, numeric strings, or objects whose fields are themselves
// scalars or time-keyed maps; NormalizeEntry folds all of those into this one
// shape.
type CalendarEntry struct {
	B2BPrice      *FieldValue
	B2CPrice      *FieldValue
	Price         *FieldValue
	SalePrice     *FieldValue
	OriginalPrice *FieldValue
	SoldOut       *bool
	RemainQty     *float64
}

// SkuRef records a SKU that contributed data to a merged date.
type SkuRef struct {
	SkuID     string   `json:"sku_id"`
	SpecToken string   `json:"spec_token,omitempty"`
	RemainQty *float64 `json:"remain_qty,omitempty"`
}

// MergedDate is the per-date summary produced by the calendar merger.
type MergedDate struct {
	Price             *float64    `json:"price,omitempty"` // lowest known price for the date
	B2BPrice          *FieldValue `json:"b2b_price,omitempty"`
	B2CPrice          *FieldValue `json:"b2c_price,omitempty"`
	SalePrice         *FieldValue `json:"sale_price,omitempty"`
	OriginalPrice     *FieldValue `json:"original_price,omitempty"`
	SoldOut           bool        `json:"soldOut"`
	Skus              []SkuRef    `json:"skus,omitempty"`
	FilledPrice       bool        `json:"filled_price,omitempty"`        // true when synthesized from a sale-date range
	FilledPriceSource string      `json:"filled_price_source,omitempty"` // FilledFromDisplayPrice or FilledFromSkuPrice
}

// MergedCalendar maps ISO dates ("YYYY-MM-DD") to merged records. It is built
// fresh from a product snapshot on every request and never persisted.
type MergedCalendar map[string]*MergedDate

// SaleWindow is an inclusive bookable date range.
type SaleWindow struct {
	Start string `json:"sale_s_date,omitempty"` // "YYYY-MM-DD", empty means unbounded
	End   string `json:"sale_e_date,omitempty"`
}

// Contains reports whether the ISO date falls inside the window. ISO date
// strings compare correctly as plain strings.
func (w *SaleWindow) Contains(date string) bool {
	if w == nil {
		return true
	}
	if w.Start != "" && date < w.Start {
		return false
	}
	if w.End != "" && date > w.End {
		return false
	}
	return true
}

// MonthCell is one day cell in the reservation calendar grid.
type MonthCell struct {
	Date    string      `json:"date"` // "YYYY-MM-DD"
	Day     int         `json:"day"`
	Price   *float64    `json:"price,omitempty"`
	SoldOut bool        `json:"soldOut"`
	InRange bool        `json:"inRange"`
	Raw     *MergedDate `json:"rawCal,omitempty"`
}
