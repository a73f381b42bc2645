package reservation

import (
	"tripdesk/models"
	"tripdesk/services/pricing"
)

// resolveRequest carries everything a unit-price resolver may consult.
type resolveRequest struct {
	Sku      *models.Sku
	Item     *models.Item
	Product  *models.Product
	Date     string
	Fallback *float64 // caller-supplied display price
}

// unitPriceResolver is one strategy in the fallback chain. Resolvers are tried
// in order; the first hit wins.
type unitPriceResolver interface {
	Resolve(req *resolveRequest) (float64, bool)
}

// calendarResolver reads the SKU's own calendar entry for the selected date.
type calendarResolver struct{}

func (calendarResolver) Resolve(req *resolveRequest) (float64, bool) {
	if req.Sku == nil || req.Date == "" {
		return 0, false
	}
	cal := req.Sku.CalendarSource()
	if cal == nil {
		return 0, false
	}
	raw, ok := cal[req.Date]
	if !ok {
		return 0, false
	}
	return pricing.LowestPrice(raw)
}

// skuScalarResolver reads the SKU's scalar price fields.
type skuScalarResolver struct{}

func (skuScalarResolver) Resolve(req *resolveRequest) (float64, bool) {
	if req.Sku == nil {
		return 0, false
	}
	for _, raw := range []interface{}{req.Sku.B2CPrice, req.Sku.Price, req.Sku.B2BPrice, req.Sku.OfficialPrice} {
		if n, ok := pricing.SafeNum(raw); ok {
			return n, true
		}
	}
	return 0, false
}

// itemMinResolver falls back to the item-level minimum price.
type itemMinResolver struct{}

func (itemMinResolver) Resolve(req *resolveRequest) (float64, bool) {
	if req.Item == nil {
		return 0, false
	}
	for _, raw := range []interface{}{req.Item.B2CMinPrice, req.Item.B2BMinPrice} {
		if n, ok := pricing.SafeNum(raw); ok {
			return n, true
		}
	}
	return 0, false
}

// productMinResolver falls back to the document-level minimum price.
type productMinResolver struct{}

func (productMinResolver) Resolve(req *resolveRequest) (float64, bool) {
	if req.Product == nil {
		return 0, false
	}
	for _, raw := range []interface{}{req.Product.B2CMinPrice, req.Product.B2BMinPrice} {
		if n, ok := pricing.SafeNum(raw); ok {
			return n, true
		}
	}
	return 0, false
}

// callerFallbackResolver uses the display price the caller saw on screen.
type callerFallbackResolver struct{}

func (callerFallbackResolver) Resolve(req *resolveRequest) (float64, bool) {
	if req.Fallback == nil {
		return 0, false
	}
	return *req.Fallback, true
}

var defaultResolvers = []unitPriceResolver{
	calendarResolver{},
	skuScalarResolver{},
	itemMinResolver{},
	productMinResolver{},
	callerFallbackResolver{},
}

// resolveUnitPrice runs the chain; an exhausted chain prices the unit at 0 so
// a render never fails on missing data.
func resolveUnitPrice(req *resolveRequest) float64 {
	for _, r := range defaultResolvers {
		if n, ok := r.Resolve(req); ok {
			return n
		}
	}
	return 0
}
