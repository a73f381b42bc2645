package models

import "time"

// SkuLineItem is one normalized order line. Price is always the per-unit
// price; line and payload totals are computed as qty * price.
type SkuLineItem struct {
	SkuID string  `json:"sku_id"`
	Qty   int     `json:"qty"`
	Price float64 `json:"price"`
}

// SkuSelection is a caller-supplied, pre-resolved SKU choice. Qty and price
// fields are loosely typed the same way upstream documents are.
type SkuSelection struct {
	SkuID      string      `json:"sku_id"`
	Qty        interface{} `json:"qty,omitempty"`
	Price      interface{} `json:"price,omitempty"`       // unit price when given
	TotalPrice interface{} `json:"total_price,omitempty"` // line total; unit derived as total/qty
	Type       string      `json:"type,omitempty"`
	TicketType string      `json:"ticket_type,omitempty"`
}

// NameValueField carries one custom or traffic form field through to the
// partner order API unmodified.
type NameValueField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// BuyerContext is the buyer information the payload builder needs. It is
// passed explicitly by the caller; the builder reads no ambient state.
type BuyerContext struct {
	Name          string           `json:"name"`
	Email         string           `json:"email,omitempty"`
	Phone         string           `json:"phone,omitempty"`
	GuideLanguage string           `json:"guide_language,omitempty"`
	CustomFields  []NameValueField `json:"custom_fields,omitempty"`
	TrafficFields []NameValueField `json:"traffic_fields,omitempty"`
}

// ReservationPayload is the normalized order document submitted to the
// partner order API. PartnerOrderNo doubles as the idempotency key and is
// generated when the caller does not supply one.
type ReservationPayload struct {
	PartnerOrderNo string           `json:"partner_order_no"`
	ProductID      string           `json:"product_id"`
	Date           string           `json:"date"` // selected "YYYY-MM-DD"
	BuyerName      string           `json:"buyer_name"`
	BuyerEmail     string           `json:"buyer_email,omitempty"`
	BuyerPhone     string           `json:"buyer_phone,omitempty"`
	GuideLanguage  string           `json:"guide_language,omitempty"`
	CustomFields   []NameValueField `json:"custom_fields,omitempty"`
	TrafficFields  []NameValueField `json:"traffic_fields,omitempty"`
	Skus           []SkuLineItem    `json:"skus"`
	TotalPrice     float64          `json:"total_price"`
	CreatedAt      time.Time        `json:"created_at"`
}
