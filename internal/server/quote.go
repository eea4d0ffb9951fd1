package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"printquote/internal/pricing"
)

// QuoteRequest is the wire shape of one quote request. Paper defaults
// to the product's base stock and color to single-sided black when
// omitted.
type QuoteRequest struct {
	Product    string `json:"product" binding:"required"`
	Material   string `json:"material"`
	Size       string `json:"size" binding:"required"`
	Paper      string `json:"paper"`
	Color      string `json:"color"`
	Qty        int    `json:"qty"`
	Lamination bool   `json:"lamination"`
}

//
// --------------------------------------------------
// POST /quote/calculate
// --------------------------------------------------
//

func (s *Server) handleQuoteCalculate() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req QuoteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		if req.Color == "" {
			req.Color = "1+0"
		}

		engineReq := pricing.Request{
			Product:    req.Product,
			Material:   req.Material,
			Size:       req.Size,
			Paper:      req.Paper,
			Color:      req.Color,
			Qty:        req.Qty,
			Lamination: req.Lamination,
		}

		// Quantity is rejected before any catalog round-trip.
		if req.Qty < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": pricing.ErrInvalidQuantity.Error()})
			return
		}

		snap, err := s.catalog.Snapshot(c.Request.Context(), engineReq)
		if err != nil {
			s.writeQuoteError(c, err)
			return
		}

		quote, err := pricing.CalculateQuote(engineReq, snap)
		if err != nil {
			s.writeQuoteError(c, err)
			return
		}

		c.JSON(http.StatusOK, quote)
	}
}

func (s *Server) writeQuoteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, pricing.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, pricing.ErrNoPriceData):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, pricing.ErrDoesNotFit):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		s.logger.Error("Quote calculation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
