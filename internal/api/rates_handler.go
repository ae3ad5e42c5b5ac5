package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oniks98/learn-lingo-sub000/internal/core"
)

// RatesHandler serves display-currency exchange rates.
type RatesHandler struct {
	ratesService core.RatesService
}

// NewRatesHandler creates a new RatesHandler.
func NewRatesHandler(rs core.RatesService) *RatesHandler {
	return &RatesHandler{ratesService: rs}
}

// Get handles GET /api/rates?currency=UAH. A zero rate in the response tells
// the client to keep displaying USD.
func (h *RatesHandler) Get(c *gin.Context) {
	currency := strings.ToUpper(c.DefaultQuery("currency", "USD"))

	rate, err := h.ratesService.GetRate(c.Request.Context(), currency)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, RateResponse{Currency: currency, Rate: rate})
}
