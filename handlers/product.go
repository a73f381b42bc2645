package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tripdesk/services/catalog"
	"tripdesk/utils"
)

// ProductHandler serves raw product document snapshots.
type ProductHandler struct {
	Catalog catalog.Service
	Logger  *zap.Logger
}

func NewProductHandler(svc catalog.Service, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{Catalog: svc, Logger: logger}
}

// GetProductHandler returns the product document for an ID.
func (h *ProductHandler) GetProductHandler(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing product id", "")
		return
	}

	doc, err := h.Catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		h.Logger.Warn("failed to load product", zap.String("productID", id), zap.Error(err))
		utils.JSONError(c, http.StatusNotFound, "Product not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, doc)
}

// RefreshProductHandler forces a re-fetch of the document from upstream.
func (h *ProductHandler) RefreshProductHandler(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing product id", "")
		return
	}

	doc, err := h.Catalog.RefreshProduct(c.Request.Context(), id)
	if err != nil {
		h.Logger.Error("failed to refresh product", zap.String("productID", id), zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "Failed to refresh product", err.Error())
		return
	}
	c.JSON(http.StatusOK, doc)
}
