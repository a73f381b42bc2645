package pricing

import (
	"time"

	"tripdesk/models"

	"go.uber.org/zap"
)

const isoDate = "2006-01-02"

// MergeCalendar folds every calendar source of a product document into one
// per-date table. Sources are visited in priority order (SKU calendars, then
// item-level, then the top-level fallback) and only ever refine a date: prices
// merge by minimum, soldOut is sticky once true, contributing SKUs accumulate.
// SKUs without an explicit calendar are gap-filled from their sale date range.
func MergeCalendar(doc *models.Product, fallbackDisplayPrice *float64) models.MergedCalendar {
	merged := models.MergedCalendar{}
	if doc == nil {
		return merged
	}

	for ii := range doc.Items {
		item := &doc.Items[ii]
		for si := range item.Skus {
			sku := &item.Skus[si]
			foldCalendar(merged, sku.CalendarSource(), sku)
		}
	}
	for ii := range doc.Items {
		foldCalendar(merged, doc.Items[ii].CalendarDetail, nil)
	}
	foldCalendar(merged, doc.CalendarDetail, nil)

	for ii := range doc.Items {
		item := &doc.Items[ii]
		for si := range item.Skus {
			sku := &item.Skus[si]
			if sku.CalendarSource() == nil {
				gapFillSku(merged, sku, item, fallbackDisplayPrice)
			}
		}
	}
	return merged
}

// foldCalendar merges one raw date->entry map into the table. sku is non-nil
// only for SKU-level calendars and drives the contributing-SKU list.
func foldCalendar(merged models.MergedCalendar, raw map[string]interface{}, sku *models.Sku) {
	for date, rawEntry := range raw {
		entry := NormalizeEntry(rawEntry)
		d := merged[date]
		if d == nil {
			d = &models.MergedDate{}
			merged[date] = d
		}

		d.B2BPrice = mergeField(d.B2BPrice, entry.B2BPrice)
		d.B2CPrice = mergeField(d.B2CPrice, entry.B2CPrice)
		d.SalePrice = mergeField(d.SalePrice, entry.SalePrice)
		d.OriginalPrice = mergeField(d.OriginalPrice, entry.OriginalPrice)
		if entry.SoldOut != nil && *entry.SoldOut {
			d.SoldOut = true
		}

		if sku != nil {
			ref := models.SkuRef{SkuID: sku.SkuID, SpecToken: sku.SpecToken}
			if entry.RemainQty != nil {
				ref.RemainQty = entry.RemainQty
			} else if n, ok := SafeNum(sku.RemainQty); ok {
				ref.RemainQty = &n
			}
			d.Skus = append(d.Skus, ref)
		}

		if lowest, ok := LowestOfEntry(entry); ok {
			if d.Price == nil || lowest < *d.Price {
				d.Price = &lowest
			}
		}
	}
}

// mergeField combines an existing field value with a newly seen one. Time maps
// merge per key by minimum, with keys missing on either side carried through.
// Scalars keep the minimum. When shapes disagree the time-keyed map wins; a
// late scalar never replaces an existing time map.
func mergeField(existing, next *models.FieldValue) *models.FieldValue {
	if next == nil {
		return existing
	}
	if existing == nil {
		return copyField(next)
	}
	if next.IsTimeMap() {
		if !existing.IsTimeMap() {
			return copyField(next)
		}
		for key, n := range next.Times {
			if cur, ok := existing.Times[key]; !ok || n < cur {
				existing.Times[key] = n
			}
		}
		return existing
	}
	if existing.IsTimeMap() {
		return existing
	}
	if next.Scalar != nil && (existing.Scalar == nil || *next.Scalar < *existing.Scalar) {
		existing.Scalar = next.Scalar
	}
	return existing
}

func copyField(v *models.FieldValue) *models.FieldValue {
	out := &models.FieldValue{}
	if v.Scalar != nil {
		n := *v.Scalar
		out.Scalar = &n
	}
	if len(v.Times) > 0 {
		out.Times = make(map[string]float64, len(v.Times))
		for k, n := range v.Times {
			out.Times[k] = n
		}
	}
	return out
}

// gapFillSku synthesizes dates for a calendar-less SKU from its sale range.
// The base price is the caller's display price when provided, else the SKU's
// own scalar prices. Invalid or inverted ranges skip the SKU silently.
func gapFillSku(merged models.MergedCalendar, sku *models.Sku, item *models.Item, fallbackDisplayPrice *float64) {
	startStr, endStr := sku.SaleSDate, sku.SaleEDate
	if startStr == "" && endStr == "" {
		startStr, endStr = item.SaleSDate, item.SaleEDate
	}
	start, err := time.Parse(isoDate, startStr)
	if err != nil {
		zap.L().Debug("gap-fill: unparseable sale start", zap.String("sku", sku.SkuID), zap.String("sale_s_date", startStr))
		return
	}
	end, err := time.Parse(isoDate, endStr)
	if err != nil {
		zap.L().Debug("gap-fill: unparseable sale end", zap.String("sku", sku.SkuID), zap.String("sale_e_date", endStr))
		return
	}
	if end.Before(start) {
		return
	}

	var base float64
	source := ""
	if fallbackDisplayPrice != nil {
		base = *fallbackDisplayPrice
		source = models.FilledFromDisplayPrice
	} else {
		for _, raw := range []interface{}{sku.OfficialPrice, sku.B2BPrice, sku.B2CPrice} {
			if n, ok := SafeNum(raw); ok {
				base = n
				source = models.FilledFromSkuPrice
				break
			}
		}
	}
	if source == "" {
		return
	}

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		date := day.Format(isoDate)
		d := merged[date]
		if d == nil {
			d = &models.MergedDate{}
			merged[date] = d
			ref := models.SkuRef{SkuID: sku.SkuID, SpecToken: sku.SpecToken}
			if n, ok := SafeNum(sku.RemainQty); ok {
				ref.RemainQty = &n
			}
			d.Skus = append(d.Skus, ref)
		} else if d.Price != nil && *d.Price < base {
			continue
		}
		price := base
		d.Price = &price
		d.FilledPrice = true
		d.FilledPriceSource = source
		if !d.B2BPrice.IsTimeMap() {
			b := base
			d.B2BPrice = &models.FieldValue{Scalar: &b}
		}
	}
}
