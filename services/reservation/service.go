package reservation

import (
	"context"

	"go.uber.org/zap"

	"tripdesk/models"
	"tripdesk/services/catalog"
	"tripdesk/services/order"
	"tripdesk/utils"
)

// QuoteResult is the priced line-item set for a participant/date selection.
type QuoteResult struct {
	Skus       []models.SkuLineItem `json:"skus"`
	TotalPrice float64              `json:"total_price"`
}

// ReserveResult pairs the submitted payload with the partner's acknowledgement.
type ReserveResult struct {
	Payload *models.ReservationPayload `json:"payload"`
	OrderNo string                     `json:"order_no"`
	Status  string                     `json:"status"`
}

// Service prices bookings and submits reservations.
type Service interface {
	Quote(ctx context.Context, productID string, in QuoteInput) (*QuoteResult, error)
	Reserve(ctx context.Context, productID string, buyer models.BuyerContext, in QuoteInput, partnerOrderNo string) (*ReserveResult, error)
}

// DefaultReservationService implements Service on top of the catalog and the
// partner order client.
type DefaultReservationService struct {
	Catalog catalog.Service
	Orders  *order.Client
}

func (s *DefaultReservationService) Quote(ctx context.Context, productID string, in QuoteInput) (*QuoteResult, error) {
	doc, err := s.Catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	lines, total, err := BuildLineItems(doc, in)
	if err != nil {
		return nil, err
	}
	return &QuoteResult{Skus: lines, TotalPrice: total}, nil
}

func (s *DefaultReservationService) Reserve(ctx context.Context, productID string, buyer models.BuyerContext, in QuoteInput, partnerOrderNo string) (*ReserveResult, error) {
	doc, err := s.Catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	payload, err := BuildPayload(buyer, doc, in, partnerOrderNo)
	if err != nil {
		return nil, err
	}

	res, err := s.Orders.Submit(ctx, payload)
	if err != nil {
		utils.GetLogger().Error("reservation: order submission failed",
			zap.String("productID", productID),
			zap.String("partnerOrderNo", payload.PartnerOrderNo),
			zap.Error(err))
		return nil, err
	}
	return &ReserveResult{Payload: payload, OrderNo: res.OrderNo, Status: res.Status}, nil
}
