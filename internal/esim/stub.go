package esim

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Stub - вендор для локальной разработки, выдает детерминированные артефакты
// без сетевых вызовов. Выбирается только конфигурацией, не является
// автоматическим fallback'ом боевых вендоров.
type Stub struct{}

func NewStub() *Stub {
	return &Stub{}
}

func (s *Stub) Name() string {
	return "stub"
}

func (s *Stub) ListPackages(_ context.Context, filter ListFilter) ([]Package, error) {
	location := filter.Location
	if location == "" {
		location = "TR"
	}
	return []Package{
		{
			VendorCode: "STUB-" + location + "-3GB",
			Name:       location + " 3GB / 30 days",
			Location:   location,
			VolumeKB:   3 * 1024 * 1024,
			Days:       30,
			PriceCents: 350,
			Currency:   "USD",
			Unlimited:  filter.Type == PackageTypeUnlimited,
		},
	}, nil
}

func (s *Stub) Purchase(_ context.Context, vendorCode string, _ int32) (*PurchaseResult, error) {
	ref := uuid.NewString()
	return &PurchaseResult{
		OrderRef:       ref,
		ICCID:          "8990000000000000000",
		QRPayload:      fmt.Sprintf("LPA:1$stub.example.com$%s", ref),
		ActivationCode: "STUB-" + vendorCode,
	}, nil
}

func (s *Stub) OrderStatus(_ context.Context, _ string) (OrderState, error) {
	return OrderStateCompleted, nil
}

func (s *Stub) Balance(_ context.Context) (*Balance, error) {
	return &Balance{Amount: decimal.NewFromInt(1000), Currency: "USD"}, nil
}

func (s *Stub) Ping(_ context.Context) error {
	return nil
}
