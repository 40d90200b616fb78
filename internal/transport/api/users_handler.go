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

type UsersHandler struct {
	userSvs  UserServicer
	orderSvs OrderServicer
}

func NewUsersHandler(userSvs UserServicer, orderSvs OrderServicer) *UsersHandler {
	return &UsersHandler{
		userSvs:  userSvs,
		orderSvs: orderSvs,
	}
}

type UserInitParams struct {
	TelegramID   int64  `binding:"required,gt=0"     json:"telegramId"`
	Username     string `binding:"max=64"            json:"username"`
	ReferralCode string `binding:"omitempty,max=16"  json:"referralCode"`
}

type UserResponse struct {
	ID           int64     `json:"id"`
	TelegramID   int64     `json:"telegramId"`
	Username     string    `json:"username"`
	Balance      string    `json:"balance"`
	BonusBalance int64     `json:"bonusBalance"`
	TotalSpent   int64     `json:"totalSpent"`
	ReferralCode string    `json:"referralCode"`
	CreatedAt    time.Time `json:"createdAt"`
}

func newUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:           user.ID,
		TelegramID:   user.TelegramID,
		Username:     user.Username,
		Balance:      user.Balance.String(),
		BonusBalance: user.BonusBalance,
		TotalSpent:   user.TotalSpent,
		ReferralCode: user.ReferralCode,
		CreatedAt:    user.CreatedAt,
	}
}

// Init POST RouteGroup + UsersInitRoute. Возвращает юзера по telegram ID,
// создавая его при первом обращении.
func (h *UsersHandler) Init(c *gin.Context) {
	var params UserInitParams
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

	user, err := h.userSvs.GetOrCreateByTelegramID(reqCtx, service.InitUserArgs{
		TelegramID:   params.TelegramID,
		Username:     params.Username,
		ReferralCode: params.ReferralCode,
	})
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err).
			SetType(gin.ErrorTypePrivate)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": newUserResponse(user)})
}

// Orders GET RouteGroup + UserOrdersRoute.
func (h *UsersHandler) Orders(c *gin.Context) {
	userID := idParam(c, "telegramID")
	if userID == 0 {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	user, userErr := h.findByTelegramID(reqCtx, userID)
	if userErr != nil {
		abortWithDomainError(c, userErr)
		return
	}

	orders, err := h.orderSvs.GetByUserID(reqCtx, user.ID)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err).
			SetType(gin.ErrorTypePrivate)
		return
	}

	response := make([]OrderResponse, len(orders))
	for i, order := range orders {
		response[i] = newOrderResponse(&order)
	}
	c.JSON(http.StatusOK, gin.H{"orders": response})
}

// Referrals GET RouteGroup + ReferralsRoute. Статистика реферальной программы.
func (h *UsersHandler) Referrals(c *gin.Context) {
	telegramID := idParam(c, "telegramID")
	if telegramID == 0 {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	user, userErr := h.findByTelegramID(reqCtx, telegramID)
	if userErr != nil {
		abortWithDomainError(c, userErr)
		return
	}

	stats, err := h.userSvs.ReferralStatsFor(reqCtx, user.ID)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err).
			SetType(gin.ErrorTypePrivate)
		return
	}
	c.JSON(http.StatusOK, gin.H{"referrals": stats})
}

func (h *UsersHandler) findByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error) {
	return h.userSvs.GetOrCreateByTelegramID(ctx, service.InitUserArgs{TelegramID: telegramID})
}

func abortWithDomainError(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrRecordNotFound) {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}
	_ = c.AbortWithError(http.StatusInternalServerError, err).
		SetType(gin.ErrorTypePrivate)
}
