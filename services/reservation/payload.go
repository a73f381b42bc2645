package reservation

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"tripdesk/models"
	"tripdesk/services/pricing"
)

// QuoteInput captures one pricing request: participant counts, the selected
// date, and optionally a pre-resolved SKU selection and an authoritative
// total supplied by the caller.
type QuoteInput struct {
	Adults       int                   `json:"adults"`
	Children     int                   `json:"children"`
	Date         string                `json:"date"` // "YYYY-MM-DD"
	Skus         []models.SkuSelection `json:"skus,omitempty"`
	TotalPrice   interface{}           `json:"total_price,omitempty"`
	DisplayPrice *float64              `json:"display_price,omitempty"`
	Keywords     *KeywordTable         `json:"-"`
}

type candidate struct {
	sku  *models.Sku
	item *models.Item
	cat  category
}

func collectCandidates(doc *models.Product, table KeywordTable) []candidate {
	var cands []candidate
	for ii := range doc.Items {
		item := &doc.Items[ii]
		for si := range item.Skus {
			sku := &item.Skus[si]
			cands = append(cands, candidate{sku: sku, item: item, cat: table.Classify(sku)})
		}
	}
	return cands
}

func findSku(doc *models.Product, skuID string) (*models.Sku, *models.Item) {
	for ii := range doc.Items {
		item := &doc.Items[ii]
		for si := range item.Skus {
			if item.Skus[si].SkuID == skuID {
				return &item.Skus[si], item
			}
		}
	}
	return nil, nil
}

// BuildLineItems produces the normalized order lines and total for a quote.
// Line prices are always per unit. The returned error is ErrNoSkus only when
// the document carries no SKUs at all; every other gap falls through the
// resolver chain instead of failing.
func BuildLineItems(doc *models.Product, in QuoteInput) ([]models.SkuLineItem, float64, error) {
	if doc == nil {
		return nil, 0, ErrNoSkus
	}
	table := DefaultKeywords()
	if in.Keywords != nil {
		table = *in.Keywords
	}

	var lines []models.SkuLineItem
	var err error
	if len(in.Skus) > 0 {
		lines = normalizeExplicitSkus(doc, in, table)
	} else {
		lines, err = deriveLines(doc, in, table)
		if err != nil {
			return nil, 0, err
		}
	}

	if total, ok := pricing.SafeNum(in.TotalPrice); ok {
		return lines, total, nil
	}
	total := 0.0
	for _, ln := range lines {
		total += float64(ln.Qty) * ln.Price
	}
	return lines, total, nil
}

// normalizeExplicitSkus trusts a caller-supplied selection, only coercing
// quantities and filling missing unit prices: line total / qty first, then a
// type-hint category price, then the SKU's own resolver chain.
func normalizeExplicitSkus(doc *models.Product, in QuoteInput, table KeywordTable) []models.SkuLineItem {
	cands := collectCandidates(doc, table)
	lines := make([]models.SkuLineItem, 0, len(in.Skus))
	for _, sel := range in.Skus {
		qty := 1
		if n, ok := pricing.SafeNum(sel.Qty); ok && n > 0 {
			qty = int(n)
		}

		unit, priced := pricing.SafeNum(sel.Price)
		if !priced {
			if total, ok := pricing.SafeNum(sel.TotalPrice); ok {
				unit, priced = total/float64(qty), true
			}
		}
		if !priced {
			hint := strings.ToLower(sel.Type + " " + sel.TicketType)
			cat := categoryAdult
			if strings.Contains(hint, "child") {
				cat = categoryChild
			}
			unit, priced = categoryUnitPrice(cands, doc, in, cat)
		}
		if !priced {
			sku, item := findSku(doc, sel.SkuID)
			unit = resolveUnitPrice(&resolveRequest{Sku: sku, Item: item, Product: doc, Date: in.Date, Fallback: in.DisplayPrice})
		}

		lines = append(lines, models.SkuLineItem{SkuID: sel.SkuID, Qty: qty, Price: unit})
	}
	return lines
}

// deriveLines classifies the document's SKUs into participant categories and
// builds at most one line per category present, with progressively more
// permissive fallbacks when classification comes up short.
func deriveLines(doc *models.Product, in QuoteInput, table KeywordTable) ([]models.SkuLineItem, error) {
	cands := collectCandidates(doc, table)
	if len(cands) == 0 {
		return nil, ErrNoSkus
	}
	totalQty := in.Adults + in.Children
	if totalQty <= 0 {
		return nil, nil
	}

	// a lone unclassifiable SKU is assumed to be the adult ticket
	if len(cands) == 1 && cands[0].cat == categoryOther {
		cands[0].cat = categoryAdult
	}

	var adult, child *candidate
	for i := range cands {
		switch cands[i].cat {
		case categoryAdult:
			if adult == nil {
				adult = &cands[i]
			}
		case categoryChild:
			if child == nil {
				child = &cands[i]
			}
		}
	}

	makeLine := func(c *candidate, qty int) models.SkuLineItem {
		unit := resolveUnitPrice(&resolveRequest{Sku: c.sku, Item: c.item, Product: doc, Date: in.Date, Fallback: in.DisplayPrice})
		return models.SkuLineItem{SkuID: c.sku.SkuID, Qty: qty, Price: unit}
	}

	var lines []models.SkuLineItem
	leftover := 0
	if in.Adults > 0 {
		if adult != nil {
			lines = append(lines, makeLine(adult, in.Adults))
		} else {
			leftover += in.Adults
		}
	}
	if in.Children > 0 {
		if child != nil {
			lines = append(lines, makeLine(child, in.Children))
		} else {
			leftover += in.Children
		}
	}

	if len(lines) == 0 {
		// classification failed entirely: the first SKU absorbs everyone
		return []models.SkuLineItem{makeLine(&cands[0], totalQty)}, nil
	}
	if leftover > 0 {
		// unmatched participants ride on the first matched line so the
		// booked quantity always equals the party size
		lines[0].Qty += leftover
	}
	return lines, nil
}

// categoryUnitPrice resolves the unit price of the first SKU in the given
// category, when one exists.
func categoryUnitPrice(cands []candidate, doc *models.Product, in QuoteInput, cat category) (float64, bool) {
	for i := range cands {
		c := &cands[i]
		if c.cat != cat && !(len(cands) == 1 && c.cat == categoryOther && cat == categoryAdult) {
			continue
		}
		return resolveUnitPrice(&resolveRequest{Sku: c.sku, Item: c.item, Product: doc, Date: in.Date, Fallback: in.DisplayPrice}), true
	}
	return 0, false
}

// BuildPayload assembles the full reservation payload. Buyer details come in
// explicitly; partnerOrderNo is generated when the caller leaves it empty so
// the submission is always idempotent upstream.
func BuildPayload(buyer models.BuyerContext, doc *models.Product, in QuoteInput, partnerOrderNo string) (*models.ReservationPayload, error) {
	lines, total, err := BuildLineItems(doc, in)
	if err != nil {
		return nil, err
	}
	if partnerOrderNo == "" {
		partnerOrderNo = uuid.New().String()
	}
	productID := ""
	if doc != nil {
		productID = doc.ID
	}
	return &models.ReservationPayload{
		PartnerOrderNo: partnerOrderNo,
		ProductID:      productID,
		Date:           in.Date,
		BuyerName:      buyer.Name,
		BuyerEmail:     buyer.Email,
		BuyerPhone:     buyer.Phone,
		GuideLanguage:  buyer.GuideLanguage,
		CustomFields:   buyer.CustomFields,
		TrafficFields:  buyer.TrafficFields,
		Skus:           lines,
		TotalPrice:     total,
		CreatedAt:      time.Now(),
	}, nil
}
