package api

import (
	"context"
	"net/http"

	"github.com/fsdevblog/simka/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type SettingsHandler struct {
	pricingSvs PricingServicer
}

func NewSettingsHandler(pricingSvs PricingServicer) *SettingsHandler {
	return &SettingsHandler{
		pricingSvs: pricingSvs,
	}
}

type PricingResponse struct {
	ExchangeRate  string `json:"exchangeRate"`
	MarkupPercent string `json:"markupPercent"`
}

// Show GET AdminRouteGroup + SettingsPricingRoute.
func (h *SettingsHandler) Show(c *gin.Context) {
	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	pricing, err := h.pricingSvs.Get(reqCtx)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err).
			SetType(gin.ErrorTypePrivate)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pricing": PricingResponse{
		ExchangeRate:  pricing.ExchangeRate.String(),
		MarkupPercent: pricing.MarkupPercent.String(),
	}})
}

type PricingUpdateParams struct {
	ExchangeRate  *decimal.Decimal `json:"exchangeRate"`
	MarkupPercent *decimal.Decimal `json:"markupPercent"`
}

// Update PUT AdminRouteGroup + SettingsPricingRoute. Частичное обновление:
// незаданные поля не трогаются.
func (h *SettingsHandler) Update(c *gin.Context) {
	var params PricingUpdateParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).
			SetType(gin.ErrorTypeBind)
		return
	}
	if params.ExchangeRate == nil && params.MarkupPercent == nil {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": "nothing to update"})
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	if err := h.pricingSvs.Set(reqCtx, service.SetPricingArgs{
		ExchangeRate:  params.ExchangeRate,
		MarkupPercent: params.MarkupPercent,
	}); err != nil {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.AbortWithStatus(http.StatusOK)
}

// RefreshRate POST AdminRouteGroup + RateRefreshRoute. Принудительное
// обновление курса из внешнего оракула.
func (h *SettingsHandler) RefreshRate(c *gin.Context) {
	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	rate, err := h.pricingSvs.RefreshRate(reqCtx)
	if err != nil {
		_ = c.AbortWithError(http.StatusBadGateway, err).
			SetType(gin.ErrorTypePrivate)
		return
	}
	c.JSON(http.StatusOK, gin.H{"exchangeRate": rate.String()})
}
