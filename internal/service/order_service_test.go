package service

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

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

type OrderServiceTestSuite struct {
	suite.Suite
	mockCtrl            *gomock.Controller
	mockUOW             *uowmocks.MockUOW
	mockTX              *uowmocks.MockTX
	mockUserRepo        *mocks.MockUserRepository
	mockProductRepo     *mocks.MockProductRepository
	mockOrderRepo       *mocks.MockOrderRepository
	mockTransactionRepo *mocks.MockTransactionRepository
	mockLoyaltyRepo     *mocks.MockLoyaltyLevelRepository
	mockSettingRepo     *mocks.MockSettingRepository
	mockVendor          *esimmocks.MockClient
	mockNotifier        *mocks.MockFulfillmentNotifier
	orderService        *OrderService
}

func TestOrderServiceSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceTestSuite))
}

func (s *OrderServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockUOW = uowmocks.NewMockUOW(s.mockCtrl)
	s.mockTX = uowmocks.NewMockTX(s.mockCtrl)
	s.mockUserRepo = mocks.NewMockUserRepository(s.mockCtrl)
	s.mockProductRepo = mocks.NewMockProductRepository(s.mockCtrl)
	s.mockOrderRepo = mocks.NewMockOrderRepository(s.mockCtrl)
	s.mockTransactionRepo = mocks.NewMockTransactionRepository(s.mockCtrl)
	s.mockLoyaltyRepo = mocks.NewMockLoyaltyLevelRepository(s.mockCtrl)
	s.mockSettingRepo = mocks.NewMockSettingRepository(s.mockCtrl)
	s.mockVendor = esimmocks.NewMockClient(s.mockCtrl)
	s.mockNotifier = mocks.NewMockFulfillmentNotifier(s.mockCtrl)

	// Мок получения репозиториев из uow. Выполняется в инициализации сервисов.
	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.OrderRepoName)).
		Return(s.mockOrderRepo, nil).AnyTimes()
	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.UserRepoName)).
		Return(s.mockUserRepo, nil).AnyTimes()
	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.ProductRepoName)).
		Return(s.mockProductRepo, nil).AnyTimes()
	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.LoyaltyLevelRepoName)).
		Return(s.mockLoyaltyRepo, nil).AnyTimes()

	// Мок получения репозиториев из транзакции.
	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.OrderRepoName)).
		Return(s.mockOrderRepo, nil).AnyTimes()
	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.UserRepoName)).
		Return(s.mockUserRepo, nil).AnyTimes()
	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.ProductRepoName)).
		Return(s.mockProductRepo, nil).AnyTimes()
	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.LoyaltyLevelRepoName)).
		Return(s.mockLoyaltyRepo, nil).AnyTimes()
	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.TransactionRepoName)).
		Return(s.mockTransactionRepo, nil).AnyTimes()
	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.SettingRepoName)).
		Return(s.mockSettingRepo, nil).AnyTimes()

	// Инициализация сервисов.
	loyaltyService, loyaltyErr := NewLoyaltyService(s.mockUOW)
	s.Require().NoError(loyaltyErr)

	orderService, servErr := NewOrderService(
		s.mockUOW, s.mockVendor, loyaltyService, s.mockNotifier, logger.New(io.Discard))
	s.Require().NoError(servErr)
	s.orderService = orderService
}

func (s *OrderServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *OrderServiceTestSuite) mockTxDo() {
	s.mockUOW.EXPECT().
		Do(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, uow.TX) error) error {
			return fn(ctx, s.mockTX)
		}).AnyTimes()
}

func (s *OrderServiceTestSuite) TestCreate() {
	var levelID int64 = 5

	product := domain.Product{
		ID:     10,
		Price:  1000,
		Active: true,
	}
	user := domain.User{
		ID:             1,
		BonusBalance:   300,
		LoyaltyLevelID: &levelID,
	}
	level := domain.LoyaltyLevel{
		ID:              levelID,
		DiscountPercent: decimal.NewFromInt(10),
	}

	s.mockTxDo()

	s.mockProductRepo.EXPECT().FindByID(gomock.Any(), product.ID).Return(&product, nil)
	s.mockUserRepo.EXPECT().FindByID(gomock.Any(), user.ID).Return(&user, nil)
	s.mockLoyaltyRepo.EXPECT().FindByID(gomock.Any(), levelID).Return(&level, nil)

	// Бонусов списывается min(запрошено, баланс, остаток) - баланс меньше всех.
	s.mockUserRepo.EXPECT().ReserveBonus(gomock.Any(), user.ID, int64(300)).Return(nil)

	// base = 1000*2 = 2000, скидка 10% = 200, бонусы 300 => итог 1500.
	wantArgs := repoargs.CreateOrder{
		UserID:      user.ID,
		ProductID:   product.ID,
		Quantity:    2,
		Price:       1000,
		Discount:    200,
		BonusUsed:   300,
		TotalAmount: 1500,
	}
	createdOrder := domain.Order{
		ID:          7,
		UserID:      user.ID,
		ProductID:   product.ID,
		Quantity:    2,
		Price:       1000,
		Discount:    200,
		BonusUsed:   300,
		TotalAmount: 1500,
		Status:      domain.OrderStatusPending,
	}
	s.mockOrderRepo.EXPECT().
		Create(gomock.Any(), gomock.Eq(wantArgs)).
		Return(&createdOrder, nil)

	order, err := s.orderService.Create(s.T().Context(), CreateOrderArgs{
		UserID:     user.ID,
		ProductID:  product.ID,
		Quantity:   2,
		BonusToUse: 500,
	})

	s.Require().NoError(err)
	s.Equal(&createdOrder, order)
}

func (s *OrderServiceTestSuite) TestCreateInactiveProduct() {
	product := domain.Product{
		ID:     11,
		Price:  1000,
		Active: false,
	}

	s.mockTxDo()
	s.mockProductRepo.EXPECT().FindByID(gomock.Any(), product.ID).Return(&product, nil)
	// До резервирования бонусов и создания заказа дойти не должны.
	s.mockUserRepo.EXPECT().ReserveBonus(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	s.mockOrderRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

	order, err := s.orderService.Create(s.T().Context(), CreateOrderArgs{
		UserID:    1,
		ProductID: product.ID,
		Quantity:  1,
	})

	s.Require().ErrorIs(err, domain.ErrProductInactive)
	s.Nil(order)
}

func (s *OrderServiceTestSuite) TestFulfill() {
	var levelID int64 = 5

	claimed := domain.Order{
		ID:          7,
		UserID:      1,
		ProductID:   10,
		Quantity:    1,
		TotalAmount: 1500,
		Status:      domain.OrderStatusFulfilling,
	}
	product := domain.Product{
		ID:         10,
		VendorCode: "CKH491",
		Active:     true,
	}
	user := domain.User{
		ID:             1,
		LoyaltyLevelID: &levelID,
		TotalSpent:     1500,
	}
	level := domain.LoyaltyLevel{
		ID:              levelID,
		MinSpent:        1000,
		CashbackPercent: decimal.NewFromInt(5),
	}
	result := esim.PurchaseResult{
		OrderRef:       "B2212078",
		ICCID:          "8944500708204567891",
		QRPayload:      "LPA:1$rsp.example.com$ABC",
		ActivationCode: "ABC",
	}
	completed := claimed
	completed.Status = domain.OrderStatusCompleted
	completed.VendorOrderRef = result.OrderRef
	completed.ICCID = result.ICCID

	s.mockTxDo()

	// Захват заказа: ровно один переход PAID -> FULFILLING.
	s.mockOrderRepo.EXPECT().
		TransitionStatus(gomock.Any(), gomock.Eq(repoargs.TransitionStatus{
			OrderID: claimed.ID,
			From:    domain.OrderStatusPaid,
			To:      domain.OrderStatusFulfilling,
		})).
		Return(&claimed, nil)

	s.mockProductRepo.EXPECT().FindByID(gomock.Any(), product.ID).Return(&product, nil)

	// Ключевая гарантия: ровно один вызов вендора на заказ.
	s.mockVendor.EXPECT().
		Purchase(gomock.Any(), product.VendorCode, claimed.Quantity).
		Return(&result, nil).
		Times(1)

	s.mockOrderRepo.EXPECT().
		Complete(gomock.Any(), gomock.Eq(repoargs.FulfillmentArtifacts{
			OrderID:        claimed.ID,
			VendorOrderRef: result.OrderRef,
			ICCID:          result.ICCID,
			QRPayload:      result.QRPayload,
			ActivationCode: result.ActivationCode,
		})).
		Return(&completed, nil)

	// cashbackFor + notifySuccess перечитывают юзера.
	s.mockUserRepo.EXPECT().FindByID(gomock.Any(), user.ID).Return(&user, nil).Times(2)
	s.mockLoyaltyRepo.EXPECT().FindByID(gomock.Any(), levelID).Return(&level, nil)

	// Кэшбэк 5% от 1500 = 75, траты растут на итог заказа.
	s.mockUserRepo.EXPECT().
		ApplyOrderCompletion(gomock.Any(), gomock.Eq(repoargs.CompleteOrderUserUpdate{
			UserID:        user.ID,
			CashbackBonus: 75,
			SpentDelta:    1500,
		})).
		Return(&user, nil)

	s.mockTransactionRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, args repoargs.CreateTransaction) (*domain.Transaction, error) {
			s.Equal(domain.TransactionTypeCashback, args.Type)
			s.Equal(domain.TransactionStatusSucceeded, args.Status)
			s.True(args.Amount.Equal(decimal.NewFromInt(75)))
			return &domain.Transaction{ID: 1}, nil
		})

	// Пересчет уровня после изменения трат.
	s.mockLoyaltyRepo.EXPECT().FindForSpent(gomock.Any(), user.TotalSpent).Return(&level, nil)
	s.mockUserRepo.EXPECT().SetLoyaltyLevel(gomock.Any(), user.ID, gomock.Any()).Return(nil)

	s.mockNotifier.EXPECT().NotifySuccess(gomock.Any(), user, completed)

	order, err := s.orderService.Fulfill(s.T().Context(), claimed.ID)

	s.Require().NoError(err)
	s.Equal(&completed, order)
}

func (s *OrderServiceTestSuite) TestFulfillClaimConflict() {
	var orderID int64 = 7

	// Конкурент уже забрал заказ: CAS не нашел строку в статусе PAID.
	s.mockOrderRepo.EXPECT().
		TransitionStatus(gomock.Any(), gomock.Any()).
		Return(nil, domain.ErrRecordNotFound)
	s.mockOrderRepo.EXPECT().
		FindByID(gomock.Any(), orderID).
		Return(&domain.Order{ID: orderID, Status: domain.OrderStatusCompleted}, nil)

	// Никаких побочных эффектов: вендор не вызывается.
	s.mockVendor.EXPECT().Purchase(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	order, err := s.orderService.Fulfill(s.T().Context(), orderID)

	s.Require().Error(err)
	var stateErr *domain.OrderStateError
	s.Require().ErrorAs(err, &stateErr)
	s.Equal(domain.OrderStatusCompleted, stateErr.Current)
	s.Nil(order)
}

func (s *OrderServiceTestSuite) TestFulfillVendorFailure() {
	claimed := domain.Order{
		ID:        7,
		UserID:    1,
		ProductID: 10,
		Quantity:  1,
		Status:    domain.OrderStatusFulfilling,
	}
	product := domain.Product{ID: 10, VendorCode: "CKH491"}
	user := domain.User{ID: 1}
	failed := claimed
	failed.Status = domain.OrderStatusFailed

	s.mockOrderRepo.EXPECT().
		TransitionStatus(gomock.Any(), gomock.Any()).
		Return(&claimed, nil)
	s.mockProductRepo.EXPECT().FindByID(gomock.Any(), product.ID).Return(&product, nil)
	s.mockVendor.EXPECT().
		Purchase(gomock.Any(), product.VendorCode, claimed.Quantity).
		Return(nil, errors.New("vendor is down"))

	s.mockOrderRepo.EXPECT().
		Fail(gomock.Any(), claimed.ID, gomock.Any()).
		Return(&failed, nil)
	s.mockUserRepo.EXPECT().FindByID(gomock.Any(), user.ID).Return(&user, nil)
	s.mockNotifier.EXPECT().NotifyFailure(gomock.Any(), user, failed)

	order, err := s.orderService.Fulfill(s.T().Context(), claimed.ID)

	s.Require().Error(err)
	s.Nil(order)
}

func (s *OrderServiceTestSuite) TestCancel() {
	pending := domain.Order{
		ID:        3,
		UserID:    1,
		BonusUsed: 200,
		Status:    domain.OrderStatusCancelled,
	}

	s.mockTxDo()
	s.mockOrderRepo.EXPECT().
		TransitionStatus(gomock.Any(), gomock.Eq(repoargs.TransitionStatus{
			OrderID: pending.ID,
			From:    domain.OrderStatusPending,
			To:      domain.OrderStatusCancelled,
		})).
		Return(&pending, nil)
	// Зарезервированные бонусы возвращаются.
	s.mockUserRepo.EXPECT().AddBonus(gomock.Any(), pending.UserID, pending.BonusUsed).Return(nil)

	order, err := s.orderService.Cancel(s.T().Context(), pending.ID)

	s.Require().NoError(err)
	s.Equal(&pending, order)
}

func (s *OrderServiceTestSuite) TestCancelExpired() {
	expired := []domain.Order{
		{ID: 1, UserID: 10, BonusUsed: 100},
		{ID: 2, UserID: 11, BonusUsed: 0},
	}

	s.mockTxDo()
	s.mockOrderRepo.EXPECT().
		CancelExpiredPending(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, deadline time.Time) ([]domain.Order, error) {
			s.True(deadline.Before(time.Now()))
			return expired, nil
		})
	// Бонусы возвращаются только там, где они были зарезервированы.
	s.mockUserRepo.EXPECT().AddBonus(gomock.Any(), int64(10), int64(100)).Return(nil)

	cancelled, err := s.orderService.CancelExpired(s.T().Context(), 2*time.Hour)

	s.Require().NoError(err)
	s.Equal(2, cancelled)
}
