package pricing

import (
	"time"

	"tripdesk/models"
)

// BuildMonthMatrix projects a merged calendar onto a week-major grid for the
// given year and 1-based month. Every week has exactly 7 slots, with nil for
// days outside the month; weeks start on Sunday. Days outside the sale window
// are flagged out of range and forced sold out.
func BuildMonthMatrix(year, month int, cal models.MergedCalendar, window *models.SaleWindow) [][]*models.MonthCell {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()
	lead := int(first.Weekday())

	cells := make([]*models.MonthCell, lead, lead+daysInMonth)
	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Format(isoDate)
		cells = append(cells, buildCell(date, day, cal[date], window))
	}
	for len(cells)%7 != 0 {
		cells = append(cells, nil)
	}

	weeks := make([][]*models.MonthCell, 0, len(cells)/7)
	for i := 0; i < len(cells); i += 7 {
		weeks = append(weeks, cells[i:i+7])
	}
	return weeks
}

func buildCell(date string, day int, entry *models.MergedDate, window *models.SaleWindow) *models.MonthCell {
	inRange := window.Contains(date)
	cell := &models.MonthCell{
		Date:    date,
		Day:     day,
		InRange: inRange,
		SoldOut: !inRange,
		Raw:     entry,
	}
	if entry == nil {
		return cell
	}
	if entry.SoldOut {
		cell.SoldOut = true
	}
	cell.Price = cellPrice(entry)
	return cell
}

// cellPrice resolves the display price of a cell: direct scalars in preference
// order first, then the extractor over the whole entry to reach nested time
// maps.
func cellPrice(entry *models.MergedDate) *float64 {
	if entry.Price != nil {
		n := *entry.Price
		return &n
	}
	for _, fv := range []*models.FieldValue{entry.B2CPrice, entry.B2BPrice, entry.SalePrice} {
		if fv != nil && fv.Scalar != nil {
			n := *fv.Scalar
			return &n
		}
	}
	var pool []float64
	for _, fv := range []*models.FieldValue{entry.B2CPrice, entry.B2BPrice, entry.SalePrice, entry.OriginalPrice} {
		if n, ok := fv.Min(); ok {
			pool = append(pool, n)
		}
	}
	if n, ok := minOf(pool); ok {
		return &n
	}
	return nil
}
