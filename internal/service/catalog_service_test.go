package service

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/fsdevblog/simka/internal/domain"
	"github.com/fsdevblog/simka/internal/esim"
	esimmocks "github.com/fsdevblog/simka/internal/esim/mocks"
	"github.com/fsdevblog/simka/internal/logger"
	"github.com/fsdevblog/simka/internal/repository/repoargs"
	"github.com/fsdevblog/simka/internal/service/mocks"
	"github.com/fsdevblog/simka/pkg/uow"
	uowmocks "github.com/fsdevblog/simka/pkg/uow/mocks"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type CatalogServiceTestSuite struct {
	suite.Suite
	mockCtrl        *gomock.Controller
	mockUOW         *uowmocks.MockUOW
	mockProductRepo *mocks.MockProductRepository
	mockSettingRepo *mocks.MockSettingRepository
	mockVendor      *esimmocks.MockClient
	catalogService  *CatalogService
}

func TestCatalogServiceSuite(t *testing.T) {
	suite.Run(t, new(CatalogServiceTestSuite))
}

func (s *CatalogServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockUOW = uowmocks.NewMockUOW(s.mockCtrl)
	s.mockProductRepo = mocks.NewMockProductRepository(s.mockCtrl)
	s.mockSettingRepo = mocks.NewMockSettingRepository(s.mockCtrl)
	s.mockVendor = esimmocks.NewMockClient(s.mockCtrl)

	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.ProductRepoName)).
		Return(s.mockProductRepo, nil).AnyTimes()
	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.SettingRepoName)).
		Return(s.mockSettingRepo, nil).AnyTimes()

	pricingService, pricingErr := NewPricingService(s.mockUOW, mocks.NewMockRateSource(s.mockCtrl))
	s.Require().NoError(pricingErr)

	catalogService, servErr := NewCatalogService(
		s.mockUOW, s.mockVendor, pricingService, logger.New(io.Discard))
	s.Require().NoError(servErr)
	s.catalogService = catalogService
}

func (s *CatalogServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

// mockPricing настраивает курс и наценку через таблицу настроек.
func (s *CatalogServiceTestSuite) mockPricing(rate, markup string) {
	s.mockSettingRepo.EXPECT().
		Get(gomock.Any(), domain.SettingExchangeRate).
		Return(&domain.Setting{Key: domain.SettingExchangeRate, Value: rate}, nil).
		AnyTimes()
	s.mockSettingRepo.EXPECT().
		Get(gomock.Any(), domain.SettingMarkupPercent).
		Return(&domain.Setting{Key: domain.SettingMarkupPercent, Value: markup}, nil).
		AnyTimes()
}

func (s *CatalogServiceTestSuite) TestSync() {
	s.mockPricing("95", "30")

	packages := []esim.Package{
		{
			VendorCode: "CKH491",
			Name:       "Thailand 1GB 7Days",
			Location:   "TH",
			VolumeKB:   1048576,
			Days:       7,
			PriceCents: 350,
			Currency:   "USD",
		},
	}
	unlimitedPackages := []esim.Package{
		{
			VendorCode: "CKH492-U",
			Name:       "Thailand Unlimited 10Days",
			Location:   "TH",
			VolumeKB:   512000,
			Days:       10,
			PriceCents: 1200,
			Currency:   "USD",
			Unlimited:  true,
		},
	}

	s.mockVendor.EXPECT().Name().Return("esimaccess").AnyTimes()
	s.mockVendor.EXPECT().
		ListPackages(gomock.Any(), esim.ListFilter{Type: esim.PackageTypeStandard}).
		Return(packages, nil)
	s.mockVendor.EXPECT().
		ListPackages(gomock.Any(), esim.ListFilter{Type: esim.PackageTypeUnlimited}).
		Return(unlimitedPackages, nil)

	// 350 центов * 1.3 * 95 = 432.25 -> 433 (округление вверх).
	s.mockProductRepo.EXPECT().
		Upsert(gomock.Any(), gomock.Eq(repoargs.ProductUpsert{
			Vendor:           "esimaccess",
			VendorCode:       "CKH491",
			Name:             "Thailand 1GB 7Days",
			Location:         "TH",
			Volume:           "1 GB",
			Days:             7,
			VendorPriceCents: 350,
			Price:            433,
		})).
		Return(&domain.Product{ID: 1}, nil)
	// 1200 центов * 1.3 * 95 = 1482.
	s.mockProductRepo.EXPECT().
		Upsert(gomock.Any(), gomock.Eq(repoargs.ProductUpsert{
			Vendor:           "esimaccess",
			VendorCode:       "CKH492-U",
			Name:             "Thailand Unlimited 10Days",
			Location:         "TH",
			Volume:           "500 MB",
			Days:             10,
			VendorPriceCents: 1200,
			Price:            1482,
			Unlimited:        true,
		})).
		Return(&domain.Product{ID: 2}, nil)

	report, err := s.catalogService.Sync(s.T().Context())

	s.Require().NoError(err)
	s.Equal(2, report.Synced)
	s.Equal(0, report.Errors)
}

func (s *CatalogServiceTestSuite) TestSyncPartialFailure() {
	s.mockPricing("95", "30")

	packages := []esim.Package{
		{VendorCode: "CKH491", Name: "Thailand 1GB", Location: "TH", VolumeKB: 1048576, Days: 7, PriceCents: 350},
	}

	s.mockVendor.EXPECT().Name().Return("esimaccess").AnyTimes()
	s.mockVendor.EXPECT().
		ListPackages(gomock.Any(), esim.ListFilter{Type: esim.PackageTypeStandard}).
		Return(packages, nil)
	// Провал выборки безлимитных пакетов не фатален.
	s.mockVendor.EXPECT().
		ListPackages(gomock.Any(), esim.ListFilter{Type: esim.PackageTypeUnlimited}).
		Return(nil, errors.New("vendor timeout"))

	s.mockProductRepo.EXPECT().
		Upsert(gomock.Any(), gomock.Any()).
		Return(&domain.Product{ID: 1}, nil)

	report, err := s.catalogService.Sync(s.T().Context())

	s.Require().NoError(err)
	s.Equal(1, report.Synced)
	s.Equal(1, report.Errors)
}

func (s *CatalogServiceTestSuite) TestSyncEmpty() {
	s.mockPricing("95", "30")

	s.mockVendor.EXPECT().
		ListPackages(gomock.Any(), gomock.Any()).
		Return(nil, nil).
		Times(2)
	// Пустая выборка никогда не деактивирует существующий каталог.
	s.mockProductRepo.EXPECT().Upsert(gomock.Any(), gomock.Any()).Times(0)
	s.mockProductRepo.EXPECT().SetActiveByIDs(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	report, err := s.catalogService.Sync(s.T().Context())

	s.Require().NoError(err)
	s.Equal(0, report.Synced)
	s.Equal("no packages received from vendor", report.Message)
}

func (s *CatalogServiceTestSuite) TestRepriceByIDs() {
	s.mockPricing("90", "30")

	products := []domain.Product{
		{ID: 1, VendorPriceCents: 350},
		{ID: 2, VendorPriceCents: 1000},
	}

	s.mockProductRepo.EXPECT().GetByIDs(gomock.Any(), []int64{1, 2}).Return(products, nil)
	s.mockProductRepo.EXPECT().
		Reprice(gomock.Any(), gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, updates []repoargs.ProductReprice, fn func(i int, err error)) {
			// Наценка из аргумента перекрывает сохраненную: 3.5 * 1.5 * 90 = 472.5 -> 473.
			s.Require().Len(updates, 2)
			s.Equal(int64(473), updates[0].Price)
			s.Equal(int64(1350), updates[1].Price)
			for i := range updates {
				fn(i, nil)
			}
		})

	repriced, err := s.catalogService.RepriceByIDs(s.T().Context(), []int64{1, 2}, decimal.NewFromInt(50))

	s.Require().NoError(err)
	s.Equal(int64(2), repriced)
}

func TestFormatVolume(t *testing.T) {
	cases := []struct {
		volumeKB int64
		want     string
	}{
		{volumeKB: 1048576, want: "1 GB"},
		{volumeKB: 2097152, want: "2 GB"},
		{volumeKB: 512000, want: "500 MB"},
		{volumeKB: 1024, want: "1 MB"},
		{volumeKB: 1572864, want: "2 GB"}, // 1.5 GB округляется до целого
	}

	for _, c := range cases {
		if got := FormatVolume(c.volumeKB); got != c.want {
			t.Errorf("FormatVolume(%d) = %q, want %q", c.volumeKB, got, c.want)
		}
	}
}

func TestLocalPrice(t *testing.T) {
	cases := []struct {
		name       string
		priceCents int64
		rate       int64
		markup     int64
		want       int64
	}{
		{name: "rounds up", priceCents: 350, rate: 95, markup: 30, want: 433},
		{name: "exact", priceCents: 1000, rate: 90, markup: 30, want: 1170},
		{name: "zero markup", priceCents: 100, rate: 95, markup: 0, want: 95},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			pricing := Pricing{
				ExchangeRate:  decimal.NewFromInt(c.rate),
				MarkupPercent: decimal.NewFromInt(c.markup),
			}
			if got := LocalPrice(c.priceCents, pricing); got != c.want {
				t.Errorf("LocalPrice(%d) = %d, want %d", c.priceCents, got, c.want)
			}
		})
	}
}
