package service

import (
	"context"
	"time"

	"github.com/fsdevblog/simka/internal/domain"
	"github.com/fsdevblog/simka/internal/repository/repoargs"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

type UserRepository interface {
	Create(ctx context.Context, args repoargs.CreateUser) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error)
	FindByReferralCode(ctx context.Context, code string) (*domain.User, error)
	ReserveBonus(ctx context.Context, userID int64, amount int64) error
	AddBonus(ctx context.Context, userID int64, amount int64) error
	CreditBalance(ctx context.Context, userID int64, amount decimal.Decimal) error
	ApplyOrderCompletion(ctx context.Context, args repoargs.CompleteOrderUserUpdate) (*domain.User, error)
	SetLoyaltyLevel(ctx context.Context, userID int64, levelID *int64) error
	CountReferrals(ctx context.Context, userID int64) (int64, error)
}

type ProductRepository interface {
	Upsert(ctx context.Context, args repoargs.ProductUpsert) (*domain.Product, error)
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	List(ctx context.Context, filter repoargs.ProductFilter) ([]domain.Product, int64, error)
	GetByIDs(ctx context.Context, ids []int64) ([]domain.Product, error)
	SetActiveByIDs(ctx context.Context, ids []int64, active bool) (int64, error)
	SetActiveByType(ctx context.Context, unlimited, active bool) (int64, error)
	SetBadgeByIDs(ctx context.Context, args repoargs.ProductBadgeUpdate) (int64, error)
	Reprice(ctx context.Context, updates []repoargs.ProductReprice, fn func(i int, err error))
}

type OrderRepository interface {
	Create(ctx context.Context, args repoargs.CreateOrder) (*domain.Order, error)
	FindByID(ctx context.Context, id int64) (*domain.Order, error)
	GetByUserID(ctx context.Context, userID int64) ([]domain.Order, error)
	TransitionStatus(ctx context.Context, args repoargs.TransitionStatus) (*domain.Order, error)
	Complete(ctx context.Context, args repoargs.FulfillmentArtifacts) (*domain.Order, error)
	Fail(ctx context.Context, orderID int64, message string) (*domain.Order, error)
	CancelExpiredPending(ctx context.Context, deadline time.Time) ([]domain.Order, error)
}

type TransactionRepository interface {
	Create(ctx context.Context, args repoargs.CreateTransaction) (*domain.Transaction, error)
	FindByInvoiceID(ctx context.Context, invoiceID int64) (*domain.Transaction, error)
	UpdateStatus(ctx context.Context, id int64, from, to domain.TransactionStatusType) (*domain.Transaction, error)
	GetByUserID(ctx context.Context, userID int64) ([]domain.Transaction, error)
	SumByType(ctx context.Context, userID int64, transactionType domain.TransactionType) (int64, error)
}

type LoyaltyLevelRepository interface {
	Create(ctx context.Context, args repoargs.SaveLoyaltyLevel) (*domain.LoyaltyLevel, error)
	Update(ctx context.Context, id int64, args repoargs.SaveLoyaltyLevel) (*domain.LoyaltyLevel, error)
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*domain.LoyaltyLevel, error)
	FindForSpent(ctx context.Context, totalSpent int64) (*domain.LoyaltyLevel, error)
	GetAll(ctx context.Context) ([]domain.LoyaltyLevel, error)
}

type SettingRepository interface {
	Get(ctx context.Context, key string) (*domain.Setting, error)
	Set(ctx context.Context, key, value string) error
	GetAll(ctx context.Context) ([]domain.Setting, error)
}

// RateSource - внешний оракул курса валюты.
type RateSource interface {
	Current(ctx context.Context) (decimal.Decimal, error)
}

// FulfillmentNotifier уведомляет юзера об исходе заказа. Реализация обязана
// быть best-effort: ошибки отправки не возвращаются.
type FulfillmentNotifier interface {
	NotifySuccess(ctx context.Context, user domain.User, order domain.Order)
	NotifyFailure(ctx context.Context, user domain.User, order domain.Order)
}
