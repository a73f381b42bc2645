package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tripdesk/models"
	"tripdesk/services/catalog"
	"tripdesk/services/pricing"
	"tripdesk/utils"
)

// CalendarHandler serves the merged price calendar and the month grid the
// reservation calendar screen renders.
type CalendarHandler struct {
	Catalog catalog.Service
	Logger  *zap.Logger
}

func NewCalendarHandler(svc catalog.Service, logger *zap.Logger) *CalendarHandler {
	return &CalendarHandler{Catalog: svc, Logger: logger}
}

// MonthCalendarHandler handles
// GET /api/products/:id/calendar?year=&month=&display_price=
func (h *CalendarHandler) MonthCalendarHandler(c *gin.Context) {
	id := c.Param("id")

	now := time.Now()
	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid year", c.Query("year"))
		return
	}
	month, err := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	if err != nil || month < 1 || month > 12 {
		utils.JSONError(c, http.StatusBadRequest, "Invalid month", c.Query("month"))
		return
	}

	var displayPrice *float64
	if raw := c.Query("display_price"); raw != "" {
		if n, ok := pricing.SafeNum(raw); ok {
			displayPrice = &n
		}
	}

	doc, err := h.Catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		h.Logger.Warn("failed to load product for calendar", zap.String("productID", id), zap.Error(err))
		utils.JSONError(c, http.StatusNotFound, "Product not found", err.Error())
		return
	}

	merged := pricing.MergeCalendar(doc, displayPrice)

	var window *models.SaleWindow
	if doc.SaleSDate != "" || doc.SaleEDate != "" {
		window = &models.SaleWindow{Start: doc.SaleSDate, End: doc.SaleEDate}
	}
	matrix := pricing.BuildMonthMatrix(year, month, merged, window)

	c.JSON(http.StatusOK, gin.H{
		"productID": id,
		"year":      year,
		"month":     month,
		"calendar":  merged,
		"weeks":     matrix,
	})
}
