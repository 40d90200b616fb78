package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fsdevblog/simka/internal/domain"
	"github.com/fsdevblog/simka/internal/esim"
	"github.com/fsdevblog/simka/internal/repository/repoargs"
	"github.com/fsdevblog/simka/pkg/uow"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const vendorPurchaseTimeout = 15 * time.Second

// Дефолты реферальной программы при отсутствии значений в настройках.
var (
	defaultReferralPercent   = decimal.NewFromInt(10) //nolint:mnd
	defaultReferralMinPayout = int64(0)
)

type OrderService struct {
	uow       uow.UOW
	orderRepo OrderRepository
	userRepo  UserRepository
	vendor    esim.Client
	loyalty   *LoyaltyService
	notifier  FulfillmentNotifier
	l         *logrus.Entry
}

func NewOrderService(
	u uow.UOW,
	vendor esim.Client,
	loyalty *LoyaltyService,
	notifier FulfillmentNotifier,
	l *logrus.Logger,
) (*OrderService, error) {
	orderRepo, orderErr := uow.GetRepositoryAs[OrderRepository](u, uow.RepositoryName(repoargs.OrderRepoName))
	if orderErr != nil {
		return nil, orderErr
	}
	userRepo, userErr := uow.GetRepositoryAs[UserRepository](u, uow.RepositoryName(repoargs.UserRepoName))
	if userErr != nil {
		return nil, userErr
	}
	return &OrderService{
		uow:       u,
		orderRepo: orderRepo,
		userRepo:  userRepo,
		vendor:    vendor,
		loyalty:   loyalty,
		notifier:  notifier,
		l:         l.WithField("component", "orders"),
	}, nil
}

type CreateOrderArgs struct {
	UserID     int64
	ProductID  int64
	Quantity   int32
	BonusToUse int64
}

// Create создает PENDING заказ с неизменяемым снимком цены:
// total = price*quantity - discount - bonusUsed, каждое слагаемое >= 0.
// Бонусы резервируются в момент создания атомарным декрементом с нижней
// границей - конкурирующие заказы одного юзера не могут потратить бонусы дважды.
func (o *OrderService) Create(ctx context.Context, args CreateOrderArgs) (*domain.Order, error) {
	if args.Quantity <= 0 {
		return nil, errors.New("quantity must be positive")
	}
	if args.BonusToUse < 0 {
		return nil, errors.New("bonus amount must not be negative")
	}

	var order *domain.Order
	txErr := o.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		productRepo, productRepoErr :=
			uow.GetAs[ProductRepository](tx, uow.RepositoryName(repoargs.ProductRepoName))
		if productRepoErr != nil {
			return productRepoErr //nolint:wrapcheck
		}
		userRepo, userRepoErr := uow.GetAs[UserRepository](tx, uow.RepositoryName(repoargs.UserRepoName))
		if userRepoErr != nil {
			return userRepoErr //nolint:wrapcheck
		}
		orderRepo, orderRepoErr := uow.GetAs[OrderRepository](tx, uow.RepositoryName(repoargs.OrderRepoName))
		if orderRepoErr != nil {
			return orderRepoErr //nolint:wrapcheck
		}

		product, productErr := productRepo.FindByID(c, args.ProductID)
		if productErr != nil {
			return productErr //nolint:wrapcheck
		}
		if !product.Active {
			return domain.ErrProductInactive
		}

		user, userErr := userRepo.FindByID(c, args.UserID)
		if userErr != nil {
			return userErr //nolint:wrapcheck
		}

		base := product.Price * int64(args.Quantity)
		discount, discountErr := o.discountFor(c, tx, user, base)
		if discountErr != nil {
			return discountErr
		}

		remaining := base - discount
		bonus := min(args.BonusToUse, user.BonusBalance, remaining)
		if bonus > 0 {
			if reserveErr := userRepo.ReserveBonus(c, user.ID, bonus); reserveErr != nil {
				return reserveErr //nolint:wrapcheck
			}
		}

		var createErr error
		order, createErr = orderRepo.Create(c, repoargs.CreateOrder{
			UserID:      user.ID,
			ProductID:   product.ID,
			Quantity:    args.Quantity,
			Price:       product.Price,
			Discount:    discount,
			BonusUsed:   bonus,
			TotalAmount: remaining - bonus,
		})
		return createErr //nolint:wrapcheck
	})

	if txErr != nil {
		return nil, fmt.Errorf("creating order: %w", txErr)
	}
	return order, nil
}

// Fulfill выдает eSIM по оплаченному заказу. Гарантия "не более одного вызова
// вендора на заказ" обеспечивается compare-and-swap захватом PAID -> FULFILLING:
// из конкурирующих ретраев вебхука выигрывает ровно один, остальные получают
// OrderStateError без побочных эффектов.
func (o *OrderService) Fulfill(ctx context.Context, orderID int64) (*domain.Order, error) {
	order, claimErr := o.orderRepo.TransitionStatus(ctx, repoargs.TransitionStatus{
		OrderID: orderID,
		From:    domain.OrderStatusPaid,
		To:      domain.OrderStatusFulfilling,
	})
	if claimErr != nil {
		if errors.Is(claimErr, domain.ErrRecordNotFound) {
			return nil, o.claimConflict(ctx, orderID)
		}
		return nil, fmt.Errorf("fulfilling order %d: %w", orderID, claimErr)
	}

	product, productErr := o.productByID(ctx, order.ProductID)
	if productErr != nil {
		return o.failOrder(ctx, order, fmt.Errorf("fulfilling order %d: %w", orderID, productErr))
	}

	purchaseCtx, cancel := context.WithTimeout(ctx, vendorPurchaseTimeout)
	result, purchaseErr := o.vendor.Purchase(purchaseCtx, product.VendorCode, order.Quantity)
	cancel()
	if purchaseErr != nil {
		return o.failOrder(ctx, order, fmt.Errorf("fulfilling order %d: vendor purchase: %w", orderID, purchaseErr))
	}

	completed, completeErr := o.completeOrder(ctx, order, result)
	if completeErr != nil {
		// Покупка у вендора прошла, а фиксация результата - нет. Терминальная
		// рассинхронизация, требующая ручной сверки: помечаем заказ и логируем.
		o.l.WithError(completeErr).WithFields(logrus.Fields{
			"orderID":  orderID,
			"orderRef": result.OrderRef,
		}).Error("vendor purchase succeeded but completion failed, manual reconciliation required")
		return o.failOrder(ctx, order, fmt.Errorf("fulfilling order %d: %w", orderID, completeErr))
	}

	o.notifySuccess(ctx, completed)
	return completed, nil
}

// GetByUserID возвращает заказы юзера, отсортированные по дате создания по убыванию.
func (o *OrderService) GetByUserID(ctx context.Context, userID int64) ([]domain.Order, error) {
	orders, err := o.orderRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return orders, nil
}

func (o *OrderService) FindByID(ctx context.Context, orderID int64) (*domain.Order, error) {
	order, err := o.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return order, nil
}

// Cancel отменяет неоплаченный заказ и возвращает зарезервированные бонусы.
func (o *OrderService) Cancel(ctx context.Context, orderID int64) (*domain.Order, error) {
	var order *domain.Order
	txErr := o.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		orderRepo, orderRepoErr := uow.GetAs[OrderRepository](tx, uow.RepositoryName(repoargs.OrderRepoName))
		if orderRepoErr != nil {
			return orderRepoErr //nolint:wrapcheck
		}
		userRepo, userRepoErr := uow.GetAs[UserRepository](tx, uow.RepositoryName(repoargs.UserRepoName))
		if userRepoErr != nil {
			return userRepoErr //nolint:wrapcheck
		}

		var transitionErr error
		order, transitionErr = orderRepo.TransitionStatus(c, repoargs.TransitionStatus{
			OrderID: orderID,
			From:    domain.OrderStatusPending,
			To:      domain.OrderStatusCancelled,
		})
		if transitionErr != nil {
			return transitionErr //nolint:wrapcheck
		}

		if order.BonusUsed > 0 {
			return userRepo.AddBonus(c, order.UserID, order.BonusUsed) //nolint:wrapcheck
		}
		return nil
	})
	if txErr != nil {
		if errors.Is(txErr, domain.ErrRecordNotFound) {
			return nil, o.claimConflict(ctx, orderID)
		}
		return nil, fmt.Errorf("cancelling order %d: %w", orderID, txErr)
	}
	return order, nil
}

// Refund - административный возврат по оплаченному заказу: статус REFUNDED,
// REFUND транзакция в журнале, сумма зачисляется на денежный баланс юзера.
func (o *OrderService) Refund(ctx context.Context, orderID int64) (*domain.Order, error) {
	var order *domain.Order
	txErr := o.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		orderRepo, orderRepoErr := uow.GetAs[OrderRepository](tx, uow.RepositoryName(repoargs.OrderRepoName))
		if orderRepoErr != nil {
			return orderRepoErr //nolint:wrapcheck
		}
		userRepo, userRepoErr := uow.GetAs[UserRepository](tx, uow.RepositoryName(repoargs.UserRepoName))
		if userRepoErr != nil {
			return userRepoErr //nolint:wrapcheck
		}
		transactionRepo, transactionRepoErr :=
			uow.GetAs[TransactionRepository](tx, uow.RepositoryName(repoargs.TransactionRepoName))
		if transactionRepoErr != nil {
			return transactionRepoErr //nolint:wrapcheck
		}

		var transitionErr error
		order, transitionErr = orderRepo.TransitionStatus(c, repoargs.TransitionStatus{
			OrderID: orderID,
			From:    domain.OrderStatusPaid,
			To:      domain.OrderStatusRefunded,
		})
		if transitionErr != nil {
			return transitionErr //nolint:wrapcheck
		}

		amount := decimal.NewFromInt(order.TotalAmount)
		if _, createErr := transactionRepo.Create(c, repoargs.CreateTransaction{
			UserID:  order.UserID,
			OrderID: &order.ID,
			Type:    domain.TransactionTypeRefund,
			Status:  domain.TransactionStatusSucceeded,
			Amount:  amount,
		}); createErr != nil {
			return createErr //nolint:wrapcheck
		}
		return userRepo.CreditBalance(c, order.UserID, amount) //nolint:wrapcheck
	})
	if txErr != nil {
		if errors.Is(txErr, domain.ErrRecordNotFound) {
			return nil, o.claimConflict(ctx, orderID)
		}
		return nil, fmt.Errorf("refunding order %d: %w", orderID, txErr)
	}
	return order, nil
}

// CancelExpired отменяет PENDING заказы старше ttl и возвращает каждому юзеру
// зарезервированные бонусы. Забытый PENDING заказ не должен вечно держать
// бонусы под замком.
func (o *OrderService) CancelExpired(ctx context.Context, ttl time.Duration) (int, error) {
	var cancelled int
	txErr := o.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		orderRepo, orderRepoErr := uow.GetAs[OrderRepository](tx, uow.RepositoryName(repoargs.OrderRepoName))
		if orderRepoErr != nil {
			return orderRepoErr //nolint:wrapcheck
		}
		userRepo, userRepoErr := uow.GetAs[UserRepository](tx, uow.RepositoryName(repoargs.UserRepoName))
		if userRepoErr != nil {
			return userRepoErr //nolint:wrapcheck
		}

		orders, cancelErr := orderRepo.CancelExpiredPending(c, time.Now().Add(-ttl))
		if cancelErr != nil {
			return cancelErr //nolint:wrapcheck
		}
		for _, order := range orders {
			if order.BonusUsed == 0 {
				continue
			}
			if addErr := userRepo.AddBonus(c, order.UserID, order.BonusUsed); addErr != nil {
				return addErr //nolint:wrapcheck
			}
		}
		cancelled = len(orders)
		return nil
	})
	if txErr != nil {
		return 0, fmt.Errorf("cancelling expired orders: %w", txErr)
	}
	return cancelled, nil
}

// completeOrder фиксирует успешную выдачу: артефакты + кэшбэк + инкремент трат
// + реферальная выплата + пересчет уровня, все в одной транзакции.
func (o *OrderService) completeOrder(
	ctx context.Context,
	order *domain.Order,
	result *esim.PurchaseResult,
) (*domain.Order, error) {
	var completed *domain.Order
	txErr := o.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		orderRepo, orderRepoErr := uow.GetAs[OrderRepository](tx, uow.RepositoryName(repoargs.OrderRepoName))
		if orderRepoErr != nil {
			return orderRepoErr //nolint:wrapcheck
		}
		userRepo, userRepoErr := uow.GetAs[UserRepository](tx, uow.RepositoryName(repoargs.UserRepoName))
		if userRepoErr != nil {
			return userRepoErr //nolint:wrapcheck
		}
		transactionRepo, transactionRepoErr :=
			uow.GetAs[TransactionRepository](tx, uow.RepositoryName(repoargs.TransactionRepoName))
		if transactionRepoErr != nil {
			return transactionRepoErr //nolint:wrapcheck
		}

		var completeErr error
		completed, completeErr = orderRepo.Complete(c, repoargs.FulfillmentArtifacts{
			OrderID:        order.ID,
			VendorOrderRef: result.OrderRef,
			ICCID:          result.ICCID,
			QRPayload:      result.QRPayload,
			ActivationCode: result.ActivationCode,
		})
		if completeErr != nil {
			return completeErr //nolint:wrapcheck
		}

		cashback, cashbackErr := o.cashbackFor(c, tx, order)
		if cashbackErr != nil {
			return cashbackErr
		}

		user, applyErr := userRepo.ApplyOrderCompletion(c, repoargs.CompleteOrderUserUpdate{
			UserID:        order.UserID,
			CashbackBonus: cashback,
			SpentDelta:    order.TotalAmount,
		})
		if applyErr != nil {
			return applyErr //nolint:wrapcheck
		}

		if cashback > 0 {
			if _, createErr := transactionRepo.Create(c, repoargs.CreateTransaction{
				UserID:  user.ID,
				OrderID: &order.ID,
				Type:    domain.TransactionTypeCashback,
				Status:  domain.TransactionStatusSucceeded,
				Amount:  decimal.NewFromInt(cashback),
			}); createErr != nil {
				return createErr //nolint:wrapcheck
			}
		}

		if referralErr := o.payReferral(c, tx, user, completed); referralErr != nil {
			return referralErr
		}

		return o.loyalty.RecomputeUserLevelTX(c, tx, user.ID, user.TotalSpent) //nolint:wrapcheck
	})
	if txErr != nil {
		return nil, txErr
	}
	return completed, nil
}

// payReferral начисляет процент от суммы заказа пригласившему юзеру, если
// сумма дотягивает до минимального порога выплаты.
func (o *OrderService) payReferral(ctx context.Context, tx uow.TX, user *domain.User, order *domain.Order) error {
	if user.ReferrerID == nil || order.TotalAmount == 0 {
		return nil
	}

	settingRepo, settingErr := uow.GetAs[SettingRepository](tx, uow.RepositoryName(repoargs.SettingRepoName))
	if settingErr != nil {
		return settingErr //nolint:wrapcheck
	}
	userRepo, userRepoErr := uow.GetAs[UserRepository](tx, uow.RepositoryName(repoargs.UserRepoName))
	if userRepoErr != nil {
		return userRepoErr //nolint:wrapcheck
	}
	transactionRepo, transactionRepoErr :=
		uow.GetAs[TransactionRepository](tx, uow.RepositoryName(repoargs.TransactionRepoName))
	if transactionRepoErr != nil {
		return transactionRepoErr //nolint:wrapcheck
	}

	percent := settingDecimal(ctx, settingRepo, domain.SettingReferralPercent, defaultReferralPercent)
	minPayout := settingInt(ctx, settingRepo, domain.SettingReferralMinPayout, defaultReferralMinPayout)

	if order.TotalAmount < minPayout {
		return nil
	}
	payout := percentOf(order.TotalAmount, percent)
	if payout == 0 {
		return nil
	}

	if addErr := userRepo.AddBonus(ctx, *user.ReferrerID, payout); addErr != nil {
		return addErr //nolint:wrapcheck
	}
	_, createErr := transactionRepo.Create(ctx, repoargs.CreateTransaction{
		UserID:  *user.ReferrerID,
		OrderID: &order.ID,
		Type:    domain.TransactionTypeReferral,
		Status:  domain.TransactionStatusSucceeded,
		Amount:  decimal.NewFromInt(payout),
	})
	return createErr //nolint:wrapcheck
}

// discountFor считает скидку уровня лояльности от базовой суммы.
func (o *OrderService) discountFor(ctx context.Context, tx uow.TX, user *domain.User, base int64) (int64, error) {
	if user.LoyaltyLevelID == nil {
		return 0, nil
	}
	loyaltyRepo, loyaltyErr :=
		uow.GetAs[LoyaltyLevelRepository](tx, uow.RepositoryName(repoargs.LoyaltyLevelRepoName))
	if loyaltyErr != nil {
		return 0, loyaltyErr //nolint:wrapcheck
	}
	level, levelErr := loyaltyRepo.FindByID(ctx, *user.LoyaltyLevelID)
	if levelErr != nil {
		// Уровень могли удалить между присвоением и заказом - скидки нет.
		if errors.Is(levelErr, domain.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, levelErr //nolint:wrapcheck
	}
	return percentOf(base, level.DiscountPercent), nil
}

// cashbackFor считает кэшбэк от итоговой суммы по уровню юзера на момент оплаты.
func (o *OrderService) cashbackFor(ctx context.Context, tx uow.TX, order *domain.Order) (int64, error) {
	userRepo, userRepoErr := uow.GetAs[UserRepository](tx, uow.RepositoryName(repoargs.UserRepoName))
	if userRepoErr != nil {
		return 0, userRepoErr //nolint:wrapcheck
	}
	user, userErr := userRepo.FindByID(ctx, order.UserID)
	if userErr != nil {
		return 0, userErr //nolint:wrapcheck
	}
	if user.LoyaltyLevelID == nil || order.TotalAmount == 0 {
		return 0, nil
	}

	loyaltyRepo, loyaltyErr :=
		uow.GetAs[LoyaltyLevelRepository](tx, uow.RepositoryName(repoargs.LoyaltyLevelRepoName))
	if loyaltyErr != nil {
		return 0, loyaltyErr //nolint:wrapcheck
	}
	level, levelErr := loyaltyRepo.FindByID(ctx, *user.LoyaltyLevelID)
	if levelErr != nil {
		if errors.Is(levelErr, domain.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, levelErr //nolint:wrapcheck
	}
	return percentOf(order.TotalAmount, level.CashbackPercent), nil
}

// failOrder помечает заказ проваленным с текстом ошибки и уведомляет юзера.
// Частичное состояние не сохраняется: ни артефактов, ни кэшбэка.
func (o *OrderService) failOrder(ctx context.Context, order *domain.Order, cause error) (*domain.Order, error) {
	failed, failErr := o.orderRepo.Fail(ctx, order.ID, cause.Error())
	if failErr != nil {
		o.l.WithError(failErr).WithField("orderID", order.ID).Error("marking order failed")
		return nil, cause
	}
	o.notifyFailure(ctx, failed)
	return nil, cause
}

// claimConflict строит описательную ошибку по текущему статусу заказа.
func (o *OrderService) claimConflict(ctx context.Context, orderID int64) error {
	current, findErr := o.orderRepo.FindByID(ctx, orderID)
	if findErr != nil {
		return findErr //nolint:wrapcheck
	}
	return domain.NewOrderStateError(orderID, current.Status, domain.OrderStatusFulfilling)
}

func (o *OrderService) productByID(ctx context.Context, productID int64) (*domain.Product, error) {
	productRepo, err := uow.GetRepositoryAs[ProductRepository](o.uow, uow.RepositoryName(repoargs.ProductRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	product, findErr := productRepo.FindByID(ctx, productID)
	if findErr != nil {
		return nil, findErr //nolint:wrapcheck
	}
	return product, nil
}

func (o *OrderService) notifySuccess(ctx context.Context, order *domain.Order) {
	user, err := o.userRepo.FindByID(ctx, order.UserID)
	if err != nil {
		o.l.WithError(err).WithField("orderID", order.ID).Warn("skipping success notification")
		return
	}
	o.notifier.NotifySuccess(ctx, *user, *order)
}

func (o *OrderService) notifyFailure(ctx context.Context, order *domain.Order) {
	user, err := o.userRepo.FindByID(ctx, order.UserID)
	if err != nil {
		o.l.WithError(err).WithField("orderID", order.ID).Warn("skipping failure notification")
		return
	}
	o.notifier.NotifyFailure(ctx, *user, *order)
}

// percentOf возвращает floor(amount * percent / 100): округление вниз, чтобы
// скидки и начисления не превышали заявленный процент.
func percentOf(amount int64, percent decimal.Decimal) int64 {
	return decimal.NewFromInt(amount).
		Mul(percent).
		Div(decimal.NewFromInt(100)). //nolint:mnd
		Floor().
		IntPart()
}
