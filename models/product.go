package models

import "time"

// Product is an upstream partner product/package document. Upstream data is
// loosely typed: price fields arrive as numbers, numeric strings, or are
// missing entirely, so they are kept as interface{} and coerced downstream.
type Product struct {
	ID             string                 `bson:"id" json:"id"`
	Title          string                 `bson:"title,omitempty" json:"title,omitempty"`
	Currency       string                 `bson:"currency,omitempty" json:"currency,omitempty"`
	Items          []Item                 `bson:"item,omitempty" json:"item,omitempty"`
	CalendarDetail map[string]interface{} `bson:"calendar_detail,omitempty" json:"calendar_detail,omitempty"` // top-level fallback calendar
	SaleSDate      string                 `bson:"sale_s_date,omitempty" json:"sale_s_date,omitempty"`         // "YYYY-MM-DD"
	SaleEDate      string                 `bson:"sale_e_date,omitempty" json:"sale_e_date,omitempty"`
	B2BMinPrice    interface{}            `bson:"b2b_min_price,omitempty" json:"b2b_min_price,omitempty"`
	B2CMinPrice    interface{}            `bson:"b2c_min_price,omitempty" json:"b2c_min_price,omitempty"`
	FetchedAt      time.Time              `bson:"fetched_at,omitempty" json:"fetched_at,omitempty"` // when this snapshot was pulled from upstream
}

// Item groups the SKUs of one purchasable package option.
type Item struct {
	ItemID         string                 `bson:"item_id" json:"item_id"`
	Title          string                 `bson:"title,omitempty" json:"title,omitempty"`
	Skus           []Sku                  `bson:"skus,omitempty" json:"skus,omitempty"`
	CalendarDetail map[string]interface{} `bson:"calendar_detail,omitempty" json:"calendar_detail,omitempty"`
	SaleSDate      string                 `bson:"sale_s_date,omitempty" json:"sale_s_date,omitempty"`
	SaleEDate      string                 `bson:"sale_e_date,omitempty" json:"sale_e_date,omitempty"`
	B2BMinPrice    interface{}            `bson:"b2b_min_price,omitempty" json:"b2b_min_price,omitempty"`
	B2CMinPrice    interface{}            `bson:"b2c_min_price,omitempty" json:"b2c_min_price,omitempty"`
}

// Sku is one ticket/package variant (e.g. adult ticket, child ticket).
type Sku struct {
	SkuID          string                 `bson:"sku_id" json:"sku_id"`
	Title          string                 `bson:"title,omitempty" json:"title,omitempty"`
	Name           string                 `bson:"name,omitempty" json:"name,omitempty"`
	Spec           string                 `bson:"spec,omitempty" json:"spec,omitempty"`
	SpecRef        string                 `bson:"spec_ref,omitempty" json:"spec_ref,omitempty"`
	SpecToken      string                 `bson:"spec_token,omitempty" json:"spec_token,omitempty"`
	CalendarDetail map[string]interface{} `bson:"calendar_detail,omitempty" json:"calendar_detail,omitempty"`
	Calendar       map[string]interface{} `bson:"calendar,omitempty" json:"calendar,omitempty"` // legacy field, same shape as calendar_detail
	SaleSDate      string                 `bson:"sale_s_date,omitempty" json:"sale_s_date,omitempty"`
	SaleEDate      string                 `bson:"sale_e_date,omitempty" json:"sale_e_date,omitempty"`
	B2BPrice       interface{}            `bson:"b2b_price,omitempty" json:"b2b_price,omitempty"`
	B2CPrice       interface{}            `bson:"b2c_price,omitempty" json:"b2c_price,omitempty"`
	Price          interface{}            `bson:"price,omitempty" json:"price,omitempty"`
	OfficialPrice  interface{}            `bson:"official_price,omitempty" json:"official_price,omitempty"`
	RemainQty      interface{}            `bson:"remain_qty,omitempty" json:"remain_qty,omitempty"`
}

// CalendarSource returns the SKU's explicit calendar, preferring calendar_detail
// over the legacy calendar field. An empty map counts as "no calendar".
func (s *Sku) CalendarSource() map[string]interface{} {
	if len(s.CalendarDetail) > 0 {
		return s.CalendarDetail
	}
	if len(s.Calendar) > 0 {
		return s.Calendar
	}
	return nil
}
