package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tripdesk/models"
	"tripdesk/services/order"
	"tripdesk/services/reservation"
	"tripdesk/utils"
)

// ReservationHandler prices bookings and submits reservations.
type ReservationHandler struct {
	Service reservation.Service
	Logger  *zap.Logger
}

func NewReservationHandler(svc reservation.Service, logger *zap.Logger) *ReservationHandler {
	return &ReservationHandler{Service: svc, Logger: logger}
}

type quoteRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	reservation.QuoteInput
}

// QuoteHandler prices a participant/date selection without side effects.
func (h *ReservationHandler) QuoteHandler(c *gin.Context) {
	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid quote request", err.Error())
		return
	}

	result, err := h.Service.Quote(c.Request.Context(), req.ProductID, req.QuoteInput)
	if err != nil {
		var pe *reservation.PricingError
		if errors.As(err, &pe) {
			// no SKUs at all: the app shows "cannot price this booking"
			utils.JSONError(c, http.StatusUnprocessableEntity, "Cannot price this booking", pe.Message)
			return
		}
		h.Logger.Warn("quote failed", zap.String("productID", req.ProductID), zap.Error(err))
		utils.JSONError(c, http.StatusNotFound, "Product not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, result)
}

type createReservationRequest struct {
	ProductID      string              `json:"product_id" binding:"required"`
	PartnerOrderNo string              `json:"partner_order_no,omitempty"`
	Buyer          models.BuyerContext `json:"buyer"`
	reservation.QuoteInput
}

// CreateReservationHandler builds the payload and submits it to the partner
// order API.
func (h *ReservationHandler) CreateReservationHandler(c *gin.Context) {
	var req createReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid reservation request", err.Error())
		return
	}

	result, err := h.Service.Reserve(c.Request.Context(), req.ProductID, req.Buyer, req.QuoteInput, req.PartnerOrderNo)
	if err != nil {
		var pe *reservation.PricingError
		if errors.As(err, &pe) {
			utils.JSONError(c, http.StatusUnprocessableEntity, "Cannot price this booking", pe.Message)
			return
		}
		var se *order.SubmitError
		if errors.As(err, &se) {
			utils.JSONError(c, http.StatusBadGateway, "Order submission rejected", se.Message)
			return
		}
		h.Logger.Error("reservation failed", zap.String("productID", req.ProductID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to create reservation", err.Error())
		return
	}
	c.JSON(http.StatusCreated, result)
}
