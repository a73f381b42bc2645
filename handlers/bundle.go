package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle aggregates the endpoint handlers wired in main.
type HandlerBundle struct {
	// Product endpoints.
	GetProductHandler     gin.HandlerFunc
	RefreshProductHandler gin.HandlerFunc
	MonthCalendarHandler  gin.HandlerFunc

	// Reservation endpoints.
	QuoteHandler             gin.HandlerFunc
	CreateReservationHandler gin.HandlerFunc
}
