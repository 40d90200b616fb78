package service

import (
	"context"
	"fmt"

	"github.com/fsdevblog/simka/internal/domain"
	"github.com/fsdevblog/simka/internal/esim"
	"github.com/fsdevblog/simka/internal/repository/repoargs"
	"github.com/fsdevblog/simka/pkg/uow"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const kbPerMB = 1024

type SyncReport struct {
	Synced  int
	Errors  int
	Message string
}

type CatalogService struct {
	productRepo ProductRepository
	vendor      esim.Client
	pricing     *PricingService
	l           *logrus.Entry
}

func NewCatalogService(
	u uow.UOW,
	vendor esim.Client,
	pricing *PricingService,
	l *logrus.Logger,
) (*CatalogService, error) {
	productRepo, err := uow.GetRepositoryAs[ProductRepository](u, uow.RepositoryName(repoargs.ProductRepoName))
	if err != nil {
		return nil, err
	}
	return &CatalogService{
		productRepo: productRepo,
		vendor:      vendor,
		pricing:     pricing,
		l:           l.WithField("component", "catalog"),
	}, nil
}

// Sync подтягивает пакеты вендора и апсертит их в каталог. Обычные и
// безлимитные пакеты запрашиваются раздельно; провал одного запроса не
// фатален - синхронизация продолжается с тем, что удалось получить.
// Пакеты, отсутствующие в текущей выборке, никогда не деактивируются:
// сбой синхронизации не должен молча прятать существующий каталог.
func (c *CatalogService) Sync(ctx context.Context) (*SyncReport, error) {
	pricing, pricingErr := c.pricing.Get(ctx)
	if pricingErr != nil {
		return nil, fmt.Errorf("syncing catalog: %w", pricingErr)
	}

	report := new(SyncReport)
	var packages []esim.Package

	for _, packageType := range []esim.PackageType{esim.PackageTypeStandard, esim.PackageTypeUnlimited} {
		tierPackages, listErr := c.vendor.ListPackages(ctx, esim.ListFilter{Type: packageType})
		if listErr != nil {
			c.l.WithError(listErr).WithField("type", packageType).Warn("tier fetch failed, continuing")
			report.Errors++
			continue
		}
		packages = append(packages, tierPackages...)
	}

	if len(packages) == 0 {
		if report.Errors == 0 {
			report.Errors = 1
		}
		report.Message = "no packages received from vendor"
		return report, nil
	}

	for _, p := range packages {
		_, upsertErr := c.productRepo.Upsert(ctx, repoargs.ProductUpsert{
			Vendor:           c.vendor.Name(),
			VendorCode:       p.VendorCode,
			Name:             p.Name,
			Location:         p.Location,
			Volume:           FormatVolume(p.VolumeKB),
			Days:             p.Days,
			VendorPriceCents: p.PriceCents,
			Price:            LocalPrice(p.PriceCents, *pricing),
			Unlimited:        p.Unlimited,
		})
		if upsertErr != nil {
			c.l.WithError(upsertErr).WithField("vendorCode", p.VendorCode).Error("upsert failed")
			report.Errors++
			continue
		}
		report.Synced++
	}

	report.Message = fmt.Sprintf("synced %d packages, %d errors", report.Synced, report.Errors)
	return report, nil
}

func (c *CatalogService) List(
	ctx context.Context,
	filter repoargs.ProductFilter,
) ([]domain.Product, int64, error) {
	products, total, err := c.productRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err //nolint:wrapcheck
	}
	return products, total, nil
}

func (c *CatalogService) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := c.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return product, nil
}

func (c *CatalogService) SetActiveByIDs(ctx context.Context, ids []int64, active bool) (int64, error) {
	affected, err := c.productRepo.SetActiveByIDs(ctx, ids, active)
	if err != nil {
		return 0, err //nolint:wrapcheck
	}
	return affected, nil
}

func (c *CatalogService) SetActiveByType(ctx context.Context, unlimited, active bool) (int64, error) {
	affected, err := c.productRepo.SetActiveByType(ctx, unlimited, active)
	if err != nil {
		return 0, err //nolint:wrapcheck
	}
	return affected, nil
}

func (c *CatalogService) SetBadgeByIDs(ctx context.Context, args repoargs.ProductBadgeUpdate) (int64, error) {
	affected, err := c.productRepo.SetBadgeByIDs(ctx, args)
	if err != nil {
		return 0, err //nolint:wrapcheck
	}
	return affected, nil
}

// RepriceByIDs пересчитывает локальные цены выбранных товаров по новой наценке
// и текущему курсу, той же формулой конвертации что и синхронизация.
func (c *CatalogService) RepriceByIDs(ctx context.Context, ids []int64, markupPercent decimal.Decimal) (int64, error) {
	pricing, pricingErr := c.pricing.Get(ctx)
	if pricingErr != nil {
		return 0, fmt.Errorf("repricing products: %w", pricingErr)
	}
	pricing.MarkupPercent = markupPercent

	products, getErr := c.productRepo.GetByIDs(ctx, ids)
	if getErr != nil {
		return 0, fmt.Errorf("repricing products: %w", getErr)
	}

	var updates = make([]repoargs.ProductReprice, len(products))
	for i, p := range products {
		updates[i] = repoargs.ProductReprice{
			ID:    p.ID,
			Price: LocalPrice(p.VendorPriceCents, *pricing),
		}
	}

	var repriced int64
	var lastErr error
	c.productRepo.Reprice(ctx, updates, func(i int, err error) {
		if err != nil {
			c.l.WithError(err).WithField("productID", updates[i].ID).Error("reprice failed")
			lastErr = err
			return
		}
		repriced++
	})
	if lastErr != nil {
		return repriced, fmt.Errorf("repricing products: %w", lastErr)
	}
	return repriced, nil
}

// FormatVolume приводит объем в килобайтах к наибольшей "чистой" единице:
// гигабайты начиная с 1024 МБ, иначе мегабайты, с округлением до целого.
func FormatVolume(volumeKB int64) string {
	mb := decimal.NewFromInt(volumeKB).Div(decimal.NewFromInt(kbPerMB))
	if mb.GreaterThanOrEqual(decimal.NewFromInt(kbPerMB)) {
		gb := mb.Div(decimal.NewFromInt(kbPerMB)).Round(0)
		return gb.String() + " GB"
	}
	return mb.Round(0).String() + " MB"
}
