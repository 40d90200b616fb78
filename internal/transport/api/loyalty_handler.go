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

type LoyaltyHandler struct {
	loyaltySvs LoyaltyServicer
}

func NewLoyaltyHandler(loyaltySvs LoyaltyServicer) *LoyaltyHandler {
	return &LoyaltyHandler{
		loyaltySvs: loyaltySvs,
	}
}

type LoyaltyLevelResponse struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	MinSpent        int64  `json:"minSpent"`
	CashbackPercent string `json:"cashbackPercent"`
	DiscountPercent string `json:"discountPercent"`
}

func newLoyaltyLevelResponse(level *domain.LoyaltyLevel) LoyaltyLevelResponse {
	return LoyaltyLevelResponse{
		ID:              level.ID,
		Name:            level.Name,
		MinSpent:        level.MinSpent,
		CashbackPercent: level.CashbackPercent.String(),
		DiscountPercent: level.DiscountPercent.String(),
	}
}

// Index GET AdminRouteGroup + LoyaltyLevelsRoute.
func (h *LoyaltyHandler) Index(c *gin.Context) {
	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	levels, err := h.loyaltySvs.GetAll(reqCtx)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err).
			SetType(gin.ErrorTypePrivate)
		return
	}

	response := make([]LoyaltyLevelResponse, len(levels))
	for i, level := range levels {
		response[i] = newLoyaltyLevelResponse(&level)
	}
	c.JSON(http.StatusOK, gin.H{"levels": response})
}

type LoyaltyLevelParams struct {
	Name            string          `binding:"required,min=1,max=64" json:"name"`
	MinSpent        int64           `binding:"gte=0"                 json:"minSpent"`
	CashbackPercent decimal.Decimal `json:"cashbackPercent"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
}

func (p *LoyaltyLevelParams) validate() error {
	if p.CashbackPercent.IsNegative() || p.DiscountPercent.IsNegative() {
		return errors.New("percents must not be negative")
	}
	hundred := decimal.NewFromInt(100) //nolint:mnd
	if p.CashbackPercent.GreaterThan(hundred) || p.DiscountPercent.GreaterThan(hundred) {
		return errors.New("percents must not exceed 100")
	}
	return nil
}

// Create POST AdminRouteGroup + LoyaltyLevelsRoute.
func (h *LoyaltyHandler) Create(c *gin.Context) {
	params, ok := h.bindParams(c)
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	level, err := h.loyaltySvs.CreateLevel(reqCtx, repoargs.SaveLoyaltyLevel{
		Name:            params.Name,
		MinSpent:        params.MinSpent,
		CashbackPercent: params.CashbackPercent,
		DiscountPercent: params.DiscountPercent,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			_ = c.AbortWithError(http.StatusConflict, errors.New("level with this min spent already exists")).
				SetType(gin.ErrorTypePublic)
			return
		}
		_ = c.AbortWithError(http.StatusInternalServerError, err).
			SetType(gin.ErrorTypePrivate)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"level": newLoyaltyLevelResponse(level)})
}

// Update PUT AdminRouteGroup + LoyaltyLevelRoute.
func (h *LoyaltyHandler) Update(c *gin.Context) {
	id := idParam(c, "id")
	if id == 0 {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}
	params, ok := h.bindParams(c)
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	level, err := h.loyaltySvs.UpdateLevel(reqCtx, id, repoargs.SaveLoyaltyLevel{
		Name:            params.Name,
		MinSpent:        params.MinSpent,
		CashbackPercent: params.CashbackPercent,
		DiscountPercent: params.DiscountPercent,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			c.AbortWithStatus(http.StatusNotFound)
		case errors.Is(err, domain.ErrDuplicateKey):
			_ = c.AbortWithError(http.StatusConflict, errors.New("level with this min spent already exists")).
				SetType(gin.ErrorTypePublic)
		default:
			_ = c.AbortWithError(http.StatusInternalServerError, err).
				SetType(gin.ErrorTypePrivate)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"level": newLoyaltyLevelResponse(level)})
}

// Delete DELETE AdminRouteGroup + LoyaltyLevelRoute. Юзеры удаленного уровня
// остаются без уровня до следующего пересчета.
func (h *LoyaltyHandler) Delete(c *gin.Context) {
	id := idParam(c, "id")
	if id == 0 {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	if err := h.loyaltySvs.DeleteLevel(reqCtx, id); err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.AbortWithStatus(http.StatusNoContent)
}

func (h *LoyaltyHandler) bindParams(c *gin.Context) (*LoyaltyLevelParams, bool) {
	var params LoyaltyLevelParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		var valErrs validator.ValidationErrors
		if errors.As(bindErr, &valErrs) {
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": valErrs})
			return nil, false
		}
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).
			SetType(gin.ErrorTypeBind)
		return nil, false
	}
	if validateErr := params.validate(); validateErr != nil {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": validateErr.Error()})
		return nil, false
	}
	return &params, true
}
