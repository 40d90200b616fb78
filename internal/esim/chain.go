package esim

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
)

// Chain - упорядоченный список вендоров. Каждая операция идет по списку до
// первого успеха; ошибки всех вендоров собираются в одну агрегированную через
// multierror. Ровно один fallback-проход, без циклов ретраев.
type Chain struct {
	vendors []Client
	l       *logrus.Entry
}

func NewChain(l *logrus.Logger, vendors ...Client) *Chain {
	return &Chain{
		vendors: vendors,
		l:       l.WithField("component", "esim.chain"),
	}
}

func (c *Chain) Name() string {
	return "chain"
}

func (c *Chain) ListPackages(ctx context.Context, filter ListFilter) ([]Package, error) {
	return tryEach(ctx, c, func(ctx context.Context, v Client) ([]Package, error) {
		return v.ListPackages(ctx, filter)
	})
}

func (c *Chain) Purchase(ctx context.Context, vendorCode string, quantity int32) (*PurchaseResult, error) {
	return tryEach(ctx, c, func(ctx context.Context, v Client) (*PurchaseResult, error) {
		return v.Purchase(ctx, vendorCode, quantity)
	})
}

func (c *Chain) OrderStatus(ctx context.Context, orderRef string) (OrderState, error) {
	return tryEach(ctx, c, func(ctx context.Context, v Client) (OrderState, error) {
		return v.OrderStatus(ctx, orderRef)
	})
}

func (c *Chain) Balance(ctx context.Context) (*Balance, error) {
	return tryEach(ctx, c, func(ctx context.Context, v Client) (*Balance, error) {
		return v.Balance(ctx)
	})
}

// Ping в отличие от остальных операций не останавливается на первом успехе:
// отчет о доступности нужен по каждому вендору, падение одного не должно
// маскировать состояние другого. См. Health.
func (c *Chain) Ping(ctx context.Context) error {
	var result *multierror.Error
	for _, err := range c.Health(ctx) {
		if err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil() //nolint:wrapcheck
}

// Health опрашивает каждого вендора независимо и возвращает карту
// имя вендора -> ошибка (nil при успехе).
func (c *Chain) Health(ctx context.Context) map[string]error {
	report := make(map[string]error, len(c.vendors))
	for _, vendor := range c.vendors {
		report[vendor.Name()] = vendor.Ping(ctx)
	}
	return report
}

// tryEach перебирает вендоров по порядку. Возвращает результат первого
// успешного, иначе - агрегированную ошибку всех попыток.
func tryEach[T any](ctx context.Context, c *Chain, fn func(context.Context, Client) (T, error)) (T, error) {
	var zero T
	if len(c.vendors) == 0 {
		return zero, ErrNoVendors
	}

	var result *multierror.Error
	for _, vendor := range c.vendors {
		res, err := fn(ctx, vendor)
		if err == nil {
			return res, nil
		}
		c.l.WithError(err).WithField("vendor", vendor.Name()).Warn("vendor call failed, trying next")
		result = multierror.Append(result, fmt.Errorf("%s: %w", vendor.Name(), err))
	}
	return zero, result.ErrorOrNil() //nolint:wrapcheck
}
