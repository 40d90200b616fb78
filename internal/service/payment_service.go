package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/snowflake"
	"github.com/fsdevblog/simka/internal/domain"
	"github.com/fsdevblog/simka/internal/payments/robokassa"
	"github.com/fsdevblog/simka/internal/repository/repoargs"
	"github.com/fsdevblog/simka/pkg/uow"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type PaymentService struct {
	uow             uow.UOW
	orderRepo       OrderRepository
	transactionRepo TransactionRepository
	rk              *robokassa.Adapter
	invoiceNode     *snowflake.Node
	orders          *OrderService
	l               *logrus.Entry
}

func NewPaymentService(
	u uow.UOW,
	rk *robokassa.Adapter,
	invoiceNode *snowflake.Node,
	orders *OrderService,
	l *logrus.Logger,
) (*PaymentService, error) {
	orderRepo, orderErr := uow.GetRepositoryAs[OrderRepository](u, uow.RepositoryName(repoargs.OrderRepoName))
	if orderErr != nil {
		return nil, orderErr
	}
	transactionRepo, transactionErr :=
		uow.GetRepositoryAs[TransactionRepository](u, uow.RepositoryName(repoargs.TransactionRepoName))
	if transactionErr != nil {
		return nil, transactionErr
	}
	return &PaymentService{
		uow:             u,
		orderRepo:       orderRepo,
		transactionRepo: transactionRepo,
		rk:              rk,
		invoiceNode:     invoiceNode,
		orders:          orders,
		l:               l.WithField("component", "payments"),
	}, nil
}

type PaymentLink struct {
	InvoiceID int64
	URL       string
}

// CreatePayment выставляет счет по PENDING заказу: PENDING транзакция типа
// PAYMENT с уникальным InvId и ссылка на платежную форму. Повторный вызов по
// тому же заказу создает новый счет, оплачен может быть только один -
// вебхук переводит заказ из PENDING ровно один раз.
func (p *PaymentService) CreatePayment(ctx context.Context, orderID int64) (*PaymentLink, error) {
	order, orderErr := p.orderRepo.FindByID(ctx, orderID)
	if orderErr != nil {
		return nil, orderErr //nolint:wrapcheck
	}
	if order.Status != domain.OrderStatusPending {
		return nil, domain.NewOrderStateError(order.ID, order.Status, domain.OrderStatusPending)
	}

	invoiceID := p.invoiceNode.Generate().Int64()
	amount := decimal.NewFromInt(order.TotalAmount)

	if _, createErr := p.transactionRepo.Create(ctx, repoargs.CreateTransaction{
		UserID:    order.UserID,
		OrderID:   &order.ID,
		InvoiceID: &invoiceID,
		Type:      domain.TransactionTypePayment,
		Status:    domain.TransactionStatusPending,
		Amount:    amount,
	}); createErr != nil {
		return nil, fmt.Errorf("creating payment for order %d: %w", orderID, createErr)
	}

	return &PaymentLink{
		InvoiceID: invoiceID,
		URL:       p.rk.PaymentURL(invoiceID, amount, fmt.Sprintf("Заказ №%d", order.ID)),
	}, nil
}

// HandleWebhook обрабатывает result-уведомление платежного шлюза.
// Порядок проверок жесткий: подпись -> наличие счета -> совпадение суммы ->
// идемпотентность. Повтор по уже обработанному счету - успешный no-op, шлюз
// ретраит до получения подтверждения.
//
// Выдача eSIM запускается после фиксации оплаты; ее ошибка не отменяет
// подтверждение - деньги приняты, заказ уйдет в FAILED со своей причиной.
func (p *PaymentService) HandleWebhook(ctx context.Context, params robokassa.ResultParams) (int64, error) {
	if verifyErr := p.rk.VerifyResult(params); verifyErr != nil {
		return 0, verifyErr //nolint:wrapcheck
	}

	transaction, findErr := p.transactionRepo.FindByInvoiceID(ctx, params.InvID)
	if findErr != nil {
		return 0, fmt.Errorf("handling webhook for invoice %d: %w", params.InvID, findErr)
	}
	if !transaction.Amount.Equal(params.Amount()) {
		return 0, domain.NewAmountMismatchError(params.InvID, transaction.Amount, params.Amount())
	}
	if transaction.Status == domain.TransactionStatusSucceeded {
		return params.InvID, nil
	}

	var orderID int64
	txErr := p.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		transactionRepo, transactionRepoErr :=
			uow.GetAs[TransactionRepository](tx, uow.RepositoryName(repoargs.TransactionRepoName))
		if transactionRepoErr != nil {
			return transactionRepoErr //nolint:wrapcheck
		}
		orderRepo, orderRepoErr := uow.GetAs[OrderRepository](tx, uow.RepositoryName(repoargs.OrderRepoName))
		if orderRepoErr != nil {
			return orderRepoErr //nolint:wrapcheck
		}

		confirmed, updateErr := transactionRepo.UpdateStatus(
			c, transaction.ID, domain.TransactionStatusPending, domain.TransactionStatusSucceeded)
		if updateErr != nil {
			return updateErr //nolint:wrapcheck
		}
		if confirmed.OrderID == nil {
			return fmt.Errorf("transaction %d has no order", confirmed.ID)
		}
		orderID = *confirmed.OrderID

		_, transitionErr := orderRepo.TransitionStatus(c, repoargs.TransitionStatus{
			OrderID: orderID,
			From:    domain.OrderStatusPending,
			To:      domain.OrderStatusPaid,
		})
		return transitionErr //nolint:wrapcheck
	})
	if txErr != nil {
		// Конкурирующий вебхук успел первым: счет уже SUCCEEDED, отвечаем ОК.
		if errors.Is(txErr, domain.ErrRecordNotFound) {
			return params.InvID, nil
		}
		return 0, fmt.Errorf("handling webhook for invoice %d: %w", params.InvID, txErr)
	}

	if _, fulfillErr := p.orders.Fulfill(ctx, orderID); fulfillErr != nil {
		p.l.WithError(fulfillErr).WithFields(logrus.Fields{
			"invoiceID": params.InvID,
			"orderID":   orderID,
		}).Error("fulfillment after payment failed")
	}
	return params.InvID, nil
}
