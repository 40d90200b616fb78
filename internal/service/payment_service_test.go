package service

import (
	"context"
	"crypto/md5" //nolint:gosec
	"encoding/hex"
	"io"
	"strconv"
	"strings"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/fsdevblog/simka/internal/domain"
	esimmocks "github.com/fsdevblog/simka/internal/esim/mocks"
	"github.com/fsdevblog/simka/internal/logger"
	"github.com/fsdevblog/simka/internal/payments/robokassa"
	"github.com/fsdevblog/simka/internal/repository/repoargs"
	"github.com/fsdevblog/simka/internal/service/mocks"
	"github.com/fsdevblog/simka/pkg/uow"
	uowmocks "github.com/fsdevblog/simka/pkg/uow/mocks"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

const (
	rkPassword1 = "pass one"
	rkPassword2 = "pass two"
)

type PaymentServiceTestSuite struct {
	suite.Suite
	mockCtrl            *gomock.Controller
	mockUOW             *uowmocks.MockUOW
	mockTX              *uowmocks.MockTX
	mockOrderRepo       *mocks.MockOrderRepository
	mockTransactionRepo *mocks.MockTransactionRepository
	mockUserRepo        *mocks.MockUserRepository
	paymentService      *PaymentService
}

func TestPaymentServiceSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}

func (s *PaymentServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockUOW = uowmocks.NewMockUOW(s.mockCtrl)
	s.mockTX = uowmocks.NewMockTX(s.mockCtrl)
	s.mockOrderRepo = mocks.NewMockOrderRepository(s.mockCtrl)
	s.mockTransactionRepo = mocks.NewMockTransactionRepository(s.mockCtrl)
	s.mockUserRepo = mocks.NewMockUserRepository(s.mockCtrl)

	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.OrderRepoName)).
		Return(s.mockOrderRepo, nil).AnyTimes()
	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.TransactionRepoName)).
		Return(s.mockTransactionRepo, nil).AnyTimes()
	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.UserRepoName)).
		Return(s.mockUserRepo, nil).AnyTimes()
	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.LoyaltyLevelRepoName)).
		Return(mocks.NewMockLoyaltyLevelRepository(s.mockCtrl), nil).AnyTimes()

	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.OrderRepoName)).
		Return(s.mockOrderRepo, nil).AnyTimes()
	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.TransactionRepoName)).
		Return(s.mockTransactionRepo, nil).AnyTimes()

	l := logger.New(io.Discard)
	rk := robokassa.New("merchant", rkPassword1, rkPassword2)
	node, nodeErr := snowflake.NewNode(1)
	s.Require().NoError(nodeErr)

	loyaltyService, loyaltyErr := NewLoyaltyService(s.mockUOW)
	s.Require().NoError(loyaltyErr)
	orderService, orderErr := NewOrderService(
		s.mockUOW, esimmocks.NewMockClient(s.mockCtrl), loyaltyService, NoopNotifier{}, l)
	s.Require().NoError(orderErr)

	paymentService, servErr := NewPaymentService(s.mockUOW, rk, node, orderService, l)
	s.Require().NoError(servErr)
	s.paymentService = paymentService
}

func (s *PaymentServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

// resultSignature считает подпись result-вебхука так, как это делает провайдер.
func resultSignature(outSum string, invID int64) string {
	raw := strings.Join([]string{outSum, strconv.FormatInt(invID, 10), rkPassword2}, ":")
	sum := md5.Sum([]byte(raw)) //nolint:gosec
	return hex.EncodeToString(sum[:])
}

func (s *PaymentServiceTestSuite) TestCreatePayment() {
	order := domain.Order{
		ID:          7,
		UserID:      1,
		TotalAmount: 1500,
		Status:      domain.OrderStatusPending,
	}

	s.mockOrderRepo.EXPECT().FindByID(gomock.Any(), order.ID).Return(&order, nil)

	var savedInvoiceID int64
	s.mockTransactionRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, args repoargs.CreateTransaction) (*domain.Transaction, error) {
			s.Equal(domain.TransactionTypePayment, args.Type)
			s.Equal(domain.TransactionStatusPending, args.Status)
			s.True(args.Amount.Equal(decimal.NewFromInt(order.TotalAmount)))
			s.Require().NotNil(args.InvoiceID)
			savedInvoiceID = *args.InvoiceID
			return &domain.Transaction{ID: 1}, nil
		})

	link, err := s.paymentService.CreatePayment(s.T().Context(), order.ID)

	s.Require().NoError(err)
	s.Equal(savedInvoiceID, link.InvoiceID)
	s.Contains(link.URL, "OutSum=1500.00")
	s.Contains(link.URL, "InvId="+strconv.FormatInt(link.InvoiceID, 10))
}

func (s *PaymentServiceTestSuite) TestCreatePaymentWrongStatus() {
	order := domain.Order{
		ID:     7,
		Status: domain.OrderStatusPaid,
	}

	s.mockOrderRepo.EXPECT().FindByID(gomock.Any(), order.ID).Return(&order, nil)
	s.mockTransactionRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

	link, err := s.paymentService.CreatePayment(s.T().Context(), order.ID)

	var stateErr *domain.OrderStateError
	s.Require().ErrorAs(err, &stateErr)
	s.Nil(link)
}

func (s *PaymentServiceTestSuite) TestHandleWebhookBadSignature() {
	params := robokassa.ResultParams{
		OutSum:         "1500.00",
		InvID:          42,
		SignatureValue: "deadbeef",
	}

	// Подпись не сошлась: до поиска счета дойти не должны.
	s.mockTransactionRepo.EXPECT().FindByInvoiceID(gomock.Any(), gomock.Any()).Times(0)

	_, err := s.paymentService.HandleWebhook(s.T().Context(), params)

	var sigErr *robokassa.SignatureError
	s.Require().ErrorAs(err, &sigErr)
	s.Equal(int64(42), sigErr.InvID)
}

func (s *PaymentServiceTestSuite) TestHandleWebhookAmountMismatch() {
	params := robokassa.ResultParams{
		OutSum:         "100.00",
		InvID:          42,
		SignatureValue: resultSignature("100.00", 42),
	}
	transaction := domain.Transaction{
		ID:     1,
		Status: domain.TransactionStatusPending,
		Amount: decimal.NewFromInt(1500),
	}

	s.mockTransactionRepo.EXPECT().FindByInvoiceID(gomock.Any(), params.InvID).Return(&transaction, nil)
	s.mockUOW.EXPECT().Do(gomock.Any(), gomock.Any()).Times(0)

	_, err := s.paymentService.HandleWebhook(s.T().Context(), params)

	var amountErr *domain.AmountMismatchError
	s.Require().ErrorAs(err, &amountErr)
	s.Equal(params.InvID, amountErr.InvoiceID)
}

func (s *PaymentServiceTestSuite) TestHandleWebhookReplay() {
	params := robokassa.ResultParams{
		OutSum:         "1500.00",
		InvID:          42,
		SignatureValue: resultSignature("1500.00", 42),
	}
	transaction := domain.Transaction{
		ID:     1,
		Status: domain.TransactionStatusSucceeded,
		Amount: decimal.NewFromInt(1500),
	}

	s.mockTransactionRepo.EXPECT().FindByInvoiceID(gomock.Any(), params.InvID).Return(&transaction, nil)
	// Счет уже подтвержден: повтор - успешный no-op без транзакции и выдачи.
	s.mockUOW.EXPECT().Do(gomock.Any(), gomock.Any()).Times(0)

	invoiceID, err := s.paymentService.HandleWebhook(s.T().Context(), params)

	s.Require().NoError(err)
	s.Equal(params.InvID, invoiceID)
}

func (s *PaymentServiceTestSuite) TestHandleWebhookConfirm() {
	var orderID int64 = 7
	params := robokassa.ResultParams{
		OutSum:         "1500.00",
		InvID:          42,
		SignatureValue: resultSignature("1500.00", 42),
	}
	transaction := domain.Transaction{
		ID:      1,
		OrderID: &orderID,
		Status:  domain.TransactionStatusPending,
		Amount:  decimal.NewFromInt(1500),
	}
	confirmed := transaction
	confirmed.Status = domain.TransactionStatusSucceeded

	s.mockTransactionRepo.EXPECT().FindByInvoiceID(gomock.Any(), params.InvID).Return(&transaction, nil)

	s.mockUOW.EXPECT().
		Do(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, uow.TX) error) error {
			return fn(ctx, s.mockTX)
		})
	s.mockTransactionRepo.EXPECT().
		UpdateStatus(gomock.Any(), transaction.ID,
			domain.TransactionStatusPending, domain.TransactionStatusSucceeded).
		Return(&confirmed, nil)
	s.mockOrderRepo.EXPECT().
		TransitionStatus(gomock.Any(), gomock.Eq(repoargs.TransitionStatus{
			OrderID: orderID,
			From:    domain.OrderStatusPending,
			To:      domain.OrderStatusPaid,
		})).
		Return(&domain.Order{ID: orderID, Status: domain.OrderStatusPaid}, nil)

	// Выдача после оплаты: конкурент успевает первым, ошибка выдачи логируется
	// и не отменяет подтверждение вебхука.
	s.mockOrderRepo.EXPECT().
		TransitionStatus(gomock.Any(), gomock.Eq(repoargs.TransitionStatus{
			OrderID: orderID,
			From:    domain.OrderStatusPaid,
			To:      domain.OrderStatusFulfilling,
		})).
		Return(nil, domain.ErrRecordNotFound)
	s.mockOrderRepo.EXPECT().
		FindByID(gomock.Any(), orderID).
		Return(&domain.Order{ID: orderID, Status: domain.OrderStatusCompleted}, nil)

	invoiceID, err := s.paymentService.HandleWebhook(s.T().Context(), params)

	s.Require().NoError(err)
	s.Equal(params.InvID, invoiceID)
}
