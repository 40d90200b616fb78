package api

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/fsdevblog/simka/internal/domain"
	"github.com/fsdevblog/simka/internal/payments/robokassa"
	"github.com/fsdevblog/simka/internal/repository/repoargs"
	"github.com/fsdevblog/simka/internal/service"
)

// UserServicer интерфейс исключительно для моков.
type UserServicer interface {
	GetOrCreateByTelegramID(ctx context.Context, args service.InitUserArgs) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	Transactions(ctx context.Context, userID int64) ([]domain.Transaction, error)
	ReferralStatsFor(ctx context.Context, userID int64) (*service.ReferralStats, error)
}

type CatalogServicer interface {
	List(ctx context.Context, filter repoargs.ProductFilter) ([]domain.Product, int64, error)
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	Sync(ctx context.Context) (*service.SyncReport, error)
	SetActiveByIDs(ctx context.Context, ids []int64, active bool) (int64, error)
	SetActiveByType(ctx context.Context, unlimited, active bool) (int64, error)
	SetBadgeByIDs(ctx context.Context, args repoargs.ProductBadgeUpdate) (int64, error)
	RepriceByIDs(ctx context.Context, ids []int64, markupPercent decimal.Decimal) (int64, error)
}

type OrderServicer interface {
	Create(ctx context.Context, args service.CreateOrderArgs) (*domain.Order, error)
	FindByID(ctx context.Context, orderID int64) (*domain.Order, error)
	GetByUserID(ctx context.Context, userID int64) ([]domain.Order, error)
	Cancel(ctx context.Context, orderID int64) (*domain.Order, error)
	Refund(ctx context.Context, orderID int64) (*domain.Order, error)
}

type PaymentServicer interface {
	CreatePayment(ctx context.Context, orderID int64) (*service.PaymentLink, error)
	HandleWebhook(ctx context.Context, params robokassa.ResultParams) (int64, error)
}

type LoyaltyServicer interface {
	GetAll(ctx context.Context) ([]domain.LoyaltyLevel, error)
	CreateLevel(ctx context.Context, args repoargs.SaveLoyaltyLevel) (*domain.LoyaltyLevel, error)
	UpdateLevel(ctx context.Context, id int64, args repoargs.SaveLoyaltyLevel) (*domain.LoyaltyLevel, error)
	DeleteLevel(ctx context.Context, id int64) error
}

type PricingServicer interface {
	Get(ctx context.Context) (*service.Pricing, error)
	Set(ctx context.Context, args service.SetPricingArgs) error
	RefreshRate(ctx context.Context) (decimal.Decimal, error)
}

type AuthServicer interface {
	Login(login, password string) (string, error)
}

// VendorHealther - опрос состояния вендоров для health-эндпоинта.
type VendorHealther interface {
	Health(ctx context.Context) map[string]error
}
