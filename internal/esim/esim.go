// Package esim реализует шлюз к оптовым eSIM вендорам: подписанный HTTP клиент,
// упорядоченную цепочку вендоров с одним fallback-заходом и стаб для разработки.
// Ответы разных вендоров нормализуются к единому виду до выхода из пакета.
package esim

import (
	"context"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=esim.go -destination=mocks/mocks.go -package=mocks

// PackageType разделяет два типа запросов каталога: часть вендоров отдает
// обычные и безлимитные пакеты только раздельными запросами.
type PackageType string

const (
	PackageTypeStandard  PackageType = "BASE"
	PackageTypeUnlimited PackageType = "UNLIMITED"
)

type OrderState string

const (
	OrderStateProcessing OrderState = "PROCESSING"
	OrderStateCompleted  OrderState = "COMPLETED"
	OrderStateFailed     OrderState = "FAILED"
)

// Package - нормализованный пакет вендора. Объем в килобайтах, цена в
// минорных единицах валюты вендора.
type Package struct {
	VendorCode string
	Name       string
	Location   string
	VolumeKB   int64
	Days       int32
	PriceCents int64
	Currency   string
	Unlimited  bool
}

type PurchaseResult struct {
	OrderRef       string
	ICCID          string
	QRPayload      string
	ActivationCode string
}

type Balance struct {
	Amount   decimal.Decimal
	Currency string
}

type ListFilter struct {
	Location string
	Type     PackageType
}

// Client - контракт одного вендора. Purchase не идемпотентен на стороне
// вендора: вызывающий обязан гарантировать не более одного вызова на заказ.
type Client interface {
	Name() string
	ListPackages(ctx context.Context, filter ListFilter) ([]Package, error)
	Purchase(ctx context.Context, vendorCode string, quantity int32) (*PurchaseResult, error)
	OrderStatus(ctx context.Context, orderRef string) (OrderState, error)
	Balance(ctx context.Context) (*Balance, error)
	Ping(ctx context.Context) error
}
