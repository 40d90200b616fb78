package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fsdevblog/simka/internal/domain"
	"github.com/fsdevblog/simka/internal/repository/repoargs"
	"github.com/fsdevblog/simka/pkg/uow"
	"github.com/shopspring/decimal"
)

// Дефолты ценовой политики на случай отсутствия значений в настройках.
var (
	defaultExchangeRate  = decimal.NewFromInt(95) //nolint:mnd
	defaultMarkupPercent = decimal.NewFromInt(30) //nolint:mnd
)

type Pricing struct {
	ExchangeRate  decimal.Decimal
	MarkupPercent decimal.Decimal
}

type SetPricingArgs struct {
	ExchangeRate  *decimal.Decimal
	MarkupPercent *decimal.Decimal
}

// PricingService - единственная точка доступа к курсу и наценке. Остальные
// сервисы получают его инъекцией, глобального состояния нет.
type PricingService struct {
	settingRepo SettingRepository
	rateSource  RateSource
}

func NewPricingService(u uow.UOW, rateSource RateSource) (*PricingService, error) {
	settingRepo, err := uow.GetRepositoryAs[SettingRepository](u, uow.RepositoryName(repoargs.SettingRepoName))
	if err != nil {
		return nil, err
	}
	return &PricingService{
		settingRepo: settingRepo,
		rateSource:  rateSource,
	}, nil
}

func (p *PricingService) Get(ctx context.Context) (*Pricing, error) {
	rate, rateErr := p.decimalSetting(ctx, domain.SettingExchangeRate, defaultExchangeRate)
	if rateErr != nil {
		return nil, fmt.Errorf("getting pricing: %w", rateErr)
	}
	markup, markupErr := p.decimalSetting(ctx, domain.SettingMarkupPercent, defaultMarkupPercent)
	if markupErr != nil {
		return nil, fmt.Errorf("getting pricing: %w", markupErr)
	}
	return &Pricing{ExchangeRate: rate, MarkupPercent: markup}, nil
}

// Set выполняет частичное обновление: nil-поля не трогаются.
func (p *PricingService) Set(ctx context.Context, args SetPricingArgs) error {
	if args.ExchangeRate != nil {
		if args.ExchangeRate.LessThanOrEqual(decimal.Zero) {
			return errors.New("exchange rate must be positive")
		}
		if err := p.settingRepo.Set(ctx, domain.SettingExchangeRate, args.ExchangeRate.String()); err != nil {
			return fmt.Errorf("setting exchange rate: %w", err)
		}
	}
	if args.MarkupPercent != nil {
		if args.MarkupPercent.IsNegative() {
			return errors.New("markup percent must not be negative")
		}
		if err := p.settingRepo.Set(ctx, domain.SettingMarkupPercent, args.MarkupPercent.String()); err != nil {
			return fmt.Errorf("setting markup percent: %w", err)
		}
	}
	return nil
}

// RefreshRate запрашивает курс у оракула. Успех перезаписывает сохраненный
// курс и метку времени; провал оставляет прежнее значение нетронутым и
// возвращает ошибку вызывающему.
func (p *PricingService) RefreshRate(ctx context.Context) (decimal.Decimal, error) {
	rate, err := p.rateSource.Current(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("refreshing exchange rate: %w", err)
	}
	if rate.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("refreshing exchange rate: oracle returned non-positive rate %s", rate)
	}

	if setErr := p.settingRepo.Set(ctx, domain.SettingExchangeRate, rate.String()); setErr != nil {
		return decimal.Zero, fmt.Errorf("refreshing exchange rate: %w", setErr)
	}
	if setErr := p.settingRepo.Set(
		ctx,
		domain.SettingRateUpdatedAt,
		time.Now().UTC().Format(time.RFC3339),
	); setErr != nil {
		return decimal.Zero, fmt.Errorf("refreshing exchange rate: %w", setErr)
	}
	return rate, nil
}

// AutoUpdateEnabled сообщает, включено ли автообновление курса по расписанию.
func (p *PricingService) AutoUpdateEnabled(ctx context.Context) bool {
	setting, err := p.settingRepo.Get(ctx, domain.SettingAutoUpdateRate)
	if err != nil {
		return false
	}
	return setting.Value == "true" || setting.Value == "1"
}

// LocalPrice конвертирует цену вендора (минорные единицы) в локальную валюту:
// округление вверх до целого рубля, чтобы наценка не съедалась округлением.
func LocalPrice(priceCents int64, pricing Pricing) int64 {
	hundred := decimal.NewFromInt(100) //nolint:mnd
	price := decimal.New(priceCents, -2). //nolint:mnd
						Mul(hundred.Add(pricing.MarkupPercent).Div(hundred)).
						Mul(pricing.ExchangeRate)
	return price.Ceil().IntPart()
}

func (p *PricingService) decimalSetting(
	ctx context.Context,
	key string,
	fallback decimal.Decimal,
) (decimal.Decimal, error) {
	setting, err := p.settingRepo.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return fallback, nil
		}
		return decimal.Zero, err //nolint:wrapcheck
	}
	value, parseErr := decimal.NewFromString(setting.Value)
	if parseErr != nil {
		return decimal.Zero, fmt.Errorf("parsing setting `%s`: %s", key, parseErr.Error())
	}
	return value, nil
}
