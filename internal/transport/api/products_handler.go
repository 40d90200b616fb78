package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/fsdevblog/simka/internal/domain"
	"github.com/fsdevblog/simka/internal/repository/repoargs"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type ProductsHandler struct {
	catalogSvs CatalogServicer
}

func NewProductsHandler(catalogSvs CatalogServicer) *ProductsHandler {
	return &ProductsHandler{
		catalogSvs: catalogSvs,
	}
}

type ProductResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Location   string `json:"location"`
	Volume     string `json:"volume"`
	Days       int32  `json:"days"`
	Price      int64  `json:"price"`
	Unlimited  bool   `json:"unlimited"`
	Badge      string `json:"badge,omitempty"`
	BadgeColor string `json:"badgeColor,omitempty"`
}

func newProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ID:         p.ID,
		Name:       p.Name,
		Location:   p.Location,
		Volume:     p.Volume,
		Days:       p.Days,
		Price:      p.Price,
		Unlimited:  p.Unlimited,
		Badge:      p.Badge,
		BadgeColor: p.BadgeColor,
	}
}

// Index GET RouteGroup + ProductsRoute. Публичный каталог: только активные
// товары, с фильтрами по локации и типу пакета.
func (h *ProductsHandler) Index(c *gin.Context) {
	page, limit := pageParams(c)
	filter := repoargs.ProductFilter{
		OnlyActive: true,
		Location:   c.Query("location"),
		Page:       page,
		Limit:      limit,
	}
	if raw, ok := c.GetQuery("unlimited"); ok {
		unlimited := raw == "true" || raw == "1"
		filter.Unlimited = &unlimited
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	products, total, err := h.catalogSvs.List(reqCtx, filter)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err).
			SetType(gin.ErrorTypePrivate)
		return
	}

	response := make([]ProductResponse, len(products))
	for i, product := range products {
		response[i] = newProductResponse(&product)
	}
	c.JSON(http.StatusOK, newListResponse(response, total, page, limit))
}

// Show GET RouteGroup + ProductRoute.
func (h *ProductsHandler) Show(c *gin.Context) {
	id := idParam(c, "id")
	if id == 0 {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	product, err := h.catalogSvs.FindByID(reqCtx, id)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": newProductResponse(product)})
}

// Sync POST AdminRouteGroup + ProductsSyncRoute. Ручной запуск синхронизации
// каталога с вендорами.
func (h *ProductsHandler) Sync(c *gin.Context) {
	// Синхронизация ходит к вендорам, стандартного таймаута мало.
	reqCtx, cancel := context.WithTimeout(c, WebhookServiceTimeout)
	defer cancel()

	report, err := h.catalogSvs.Sync(reqCtx)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err).
			SetType(gin.ErrorTypePrivate)
		return
	}
	c.JSON(http.StatusOK, gin.H{"report": report})
}

type ProductsActivateParams struct {
	IDs       []int64 `json:"ids"`
	Unlimited *bool   `json:"unlimited"`
	Active    *bool   `binding:"required" json:"active"`
}

// Activate PATCH AdminRouteGroup + ProductsActivateRoute. Массовое
// включение/выключение: по списку id либо по типу пакета.
func (h *ProductsHandler) Activate(c *gin.Context) {
	var params ProductsActivateParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).
			SetType(gin.ErrorTypeBind)
		return
	}
	if len(params.IDs) == 0 && params.Unlimited == nil {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": "either ids or unlimited is required"})
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	var affected int64
	var err error
	if len(params.IDs) > 0 {
		affected, err = h.catalogSvs.SetActiveByIDs(reqCtx, params.IDs, *params.Active)
	} else {
		affected, err = h.catalogSvs.SetActiveByType(reqCtx, *params.Unlimited, *params.Active)
	}
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err).
			SetType(gin.ErrorTypePrivate)
		return
	}
	c.JSON(http.StatusOK, gin.H{"affected": affected})
}

type ProductsBadgeParams struct {
	IDs        []int64 `binding:"required,min=1" json:"ids"`
	Badge      string  `binding:"max=32"         json:"badge"`
	BadgeColor string  `binding:"max=16"         json:"badgeColor"`
}

// Badge PATCH AdminRouteGroup + ProductsBadgeRoute. Пустой badge снимает метку.
func (h *ProductsHandler) Badge(c *gin.Context) {
	var params ProductsBadgeParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		var valErrs validator.ValidationErrors
		if errors.As(bindErr, &valErrs) {
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": valErrs})
			return
		}
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).
			SetType(gin.ErrorTypeBind)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	affected, err := h.catalogSvs.SetBadgeByIDs(reqCtx, repoargs.ProductBadgeUpdate{
		IDs:        params.IDs,
		Badge:      params.Badge,
		BadgeColor: params.BadgeColor,
	})
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err).
			SetType(gin.ErrorTypePrivate)
		return
	}
	c.JSON(http.StatusOK, gin.H{"affected": affected})
}

type ProductsRepriceParams struct {
	IDs           []int64         `binding:"required,min=1" json:"ids"`
	MarkupPercent decimal.Decimal `binding:"required"       json:"markupPercent"`
}

// Reprice PATCH AdminRouteGroup + ProductsRepriceRoute. Пересчет локальных цен
// выбранных товаров по заданной наценке и текущему курсу.
func (h *ProductsHandler) Reprice(c *gin.Context) {
	var params ProductsRepriceParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).
			SetType(gin.ErrorTypeBind)
		return
	}
	if params.MarkupPercent.IsNegative() {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": "markupPercent must not be negative"})
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	affected, err := h.catalogSvs.RepriceByIDs(reqCtx, params.IDs, params.MarkupPercent)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err).
			SetType(gin.ErrorTypePrivate)
		return
	}
	c.JSON(http.StatusOK, gin.H{"affected": affected})
}
