package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/fsdevblog/simka/internal/domain"
	"github.com/fsdevblog/simka/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type OrdersHandler struct {
	orderSvs OrderServicer
}

func NewOrdersHandler(orderSvs OrderServicer) *OrdersHandler {
	return &OrdersHandler{
		orderSvs: orderSvs,
	}
}

type OrderResponse struct {
	ID             int64                  `json:"id"`
	ProductID      int64                  `json:"productId"`
	Quantity       int32                  `json:"quantity"`
	Price          int64                  `json:"price"`
	Discount       int64                  `json:"discount"`
	BonusUsed      int64                  `json:"bonusUsed"`
	TotalAmount    int64                  `json:"totalAmount"`
	Status         domain.OrderStatusType `json:"status"`
	ICCID          string                 `json:"iccid,omitempty"`
	QRPayload      string                 `json:"qrPayload,omitempty"`
	ActivationCode string                 `json:"activationCode,omitempty"`
	ErrorMessage   string                 `json:"errorMessage,omitempty"`
	CreatedAt      time.Time              `json:"createdAt"`
}

func newOrderResponse(order *domain.Order) OrderResponse {
	return OrderResponse{
		ID:             order.ID,
		ProductID:      order.ProductID,
		Quantity:       order.Quantity,
		Price:          order.Price,
		Discount:       order.Discount,
		BonusUsed:      order.BonusUsed,
		TotalAmount:    order.TotalAmount,
		Status:         order.Status,
		ICCID:          order.ICCID,
		QRPayload:      order.QRPayload,
		ActivationCode: order.ActivationCode,
		ErrorMessage:   order.ErrorMessage,
		CreatedAt:      order.CreatedAt,
	}
}

type OrderCreateParams struct {
	UserID     int64 `binding:"required,gt=0" json:"userId"`
	ProductID  int64 `binding:"required,gt=0" json:"productId"`
	Quantity   int32 `binding:"required,gt=0" json:"quantity"`
	BonusToUse int64 `binding:"gte=0"         json:"bonusToUse"`
}

// Create POST RouteGroup + OrdersRoute.
func (h *OrdersHandler) Create(c *gin.Context) {
	var params OrderCreateParams
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

	order, err := h.orderSvs.Create(reqCtx, service.CreateOrderArgs{
		UserID:     params.UserID,
		ProductID:  params.ProductID,
		Quantity:   params.Quantity,
		BonusToUse: params.BonusToUse,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			c.AbortWithStatus(http.StatusNotFound)
		case errors.Is(err, domain.ErrProductInactive):
			_ = c.AbortWithError(http.StatusUnprocessableEntity, errors.New("product is not available")).
				SetType(gin.ErrorTypePublic)
		case errors.Is(err, domain.ErrNotEnoughBonus):
			_ = c.AbortWithError(http.StatusUnprocessableEntity, errors.New("not enough bonus balance")).
				SetType(gin.ErrorTypePublic)
		default:
			_ = c.AbortWithError(http.StatusInternalServerError, err).
				SetType(gin.ErrorTypePrivate)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"order": newOrderResponse(order)})
}

// Show GET RouteGroup + OrderRoute.
func (h *OrdersHandler) Show(c *gin.Context) {
	id := idParam(c, "id")
	if id == 0 {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	order, err := h.orderSvs.FindByID(reqCtx, id)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": newOrderResponse(order)})
}

// Cancel POST AdminRouteGroup + AdminOrderCancelRoute.
func (h *OrdersHandler) Cancel(c *gin.Context) {
	h.transition(c, h.orderSvs.Cancel)
}

// Refund POST AdminRouteGroup + AdminOrderRefundRoute.
func (h *OrdersHandler) Refund(c *gin.Context) {
	h.transition(c, h.orderSvs.Refund)
}

func (h *OrdersHandler) transition(
	c *gin.Context,
	fn func(ctx context.Context, orderID int64) (*domain.Order, error),
) {
	id := idParam(c, "id")
	if id == 0 {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	order, err := fn(reqCtx, id)
	if err != nil {
		var stateErr *domain.OrderStateError
		switch {
		case errors.As(err, &stateErr):
			_ = c.AbortWithError(http.StatusConflict, err).
				SetType(gin.ErrorTypePublic)
		case errors.Is(err, domain.ErrRecordNotFound):
			c.AbortWithStatus(http.StatusNotFound)
		default:
			_ = c.AbortWithError(http.StatusInternalServerError, err).
				SetType(gin.ErrorTypePrivate)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": newOrderResponse(order)})
}
