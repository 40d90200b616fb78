package pgrepo

import (
	"context"
	"time"

	"github.com/fsdevblog/simka/internal/domain"
	"github.com/fsdevblog/simka/internal/repository/repoargs"
	"github.com/fsdevblog/simka/pkg/uow"
	"github.com/jackc/pgx/v5"
)

const orderColumns = `id, created_at, updated_at, user_id, product_id, quantity, price,
discount, bonus_used, total_amount, status, vendor_order_ref, iccid, qr_payload,
activation_code, error_message`

type OrderRepository struct {
	db uow.DBTX
}

func NewOrderRepository(db uow.DBTX) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(ctx context.Context, args repoargs.CreateOrder) (*domain.Order, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO orders (user_id, product_id, quantity, price, discount, bonus_used,
			total_amount, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+orderColumns,
		args.UserID, args.ProductID, args.Quantity, args.Price, args.Discount,
		args.BonusUsed, args.TotalAmount, domain.OrderStatusPending,
	)
	order, err := scanOrder(row)
	if err != nil {
		return nil, convertErr(err, "creating order for user %d", args.UserID)
	}
	return order, nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id int64) (*domain.Order, error) {
	row := r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	order, err := scanOrder(row)
	if err != nil {
		return nil, convertErr(err, "finding order by id %d", id)
	}
	return order, nil
}

// GetByUserID возвращает заказы юзера, отсортированные по дате создания по убыванию.
func (r *OrderRepository) GetByUserID(ctx context.Context, userID int64) ([]domain.Order, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, convertErr(err, "getting orders by user id %d", userID)
	}
	defer rows.Close()

	orders, scanErr := scanOrders(rows)
	if scanErr != nil {
		return nil, convertErr(scanErr, "getting orders by user id %d", userID)
	}
	return orders, nil
}

// TransitionStatus выполняет compare-and-swap переход статуса одним UPDATE
// с проверкой текущего значения. Если заказ не в статусе From, вернется
// domain.ErrRecordNotFound - из конкурирующих вызовов выигрывает ровно один.
func (r *OrderRepository) TransitionStatus(
	ctx context.Context,
	args repoargs.TransitionStatus,
) (*domain.Order, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE orders SET status = $3, updated_at = now()
		WHERE id = $1 AND status = $2
		RETURNING `+orderColumns,
		args.OrderID, args.From, args.To,
	)
	order, err := scanOrder(row)
	if err != nil {
		return nil, convertErr(err, "transitioning order %d %s->%s", args.OrderID, args.From, args.To)
	}
	return order, nil
}

// Complete переводит заказ FULFILLING -> COMPLETED и сохраняет артефакты
// активации. Защищен проверкой текущего статуса так же, как TransitionStatus.
func (r *OrderRepository) Complete(
	ctx context.Context,
	args repoargs.FulfillmentArtifacts,
) (*domain.Order, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE orders SET
			status = $2,
			vendor_order_ref = $3,
			iccid = $4,
			qr_payload = $5,
			activation_code = $6,
			updated_at = now()
		WHERE id = $1 AND status = $7
		RETURNING `+orderColumns,
		args.OrderID, domain.OrderStatusCompleted, args.VendorOrderRef,
		args.ICCID, args.QRPayload, args.ActivationCode, domain.OrderStatusFulfilling,
	)
	order, err := scanOrder(row)
	if err != nil {
		return nil, convertErr(err, "completing order %d", args.OrderID)
	}
	return order, nil
}

// Fail помечает заказ проваленным с текстом ошибки. Допустим только из
// нетерминальных статусов.
func (r *OrderRepository) Fail(ctx context.Context, orderID int64, message string) (*domain.Order, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE orders SET status = $2, error_message = $3, updated_at = now()
		WHERE id = $1 AND status IN ($4, $5, $6)
		RETURNING `+orderColumns,
		orderID, domain.OrderStatusFailed, message,
		domain.OrderStatusPending, domain.OrderStatusPaid, domain.OrderStatusFulfilling,
	)
	order, err := scanOrder(row)
	if err != nil {
		return nil, convertErr(err, "failing order %d", orderID)
	}
	return order, nil
}

// CancelExpiredPending отменяет зависшие PENDING заказы старше deadline и
// возвращает их список - вызывающий обязан вернуть зарезервированные бонусы.
func (r *OrderRepository) CancelExpiredPending(
	ctx context.Context,
	deadline time.Time,
) ([]domain.Order, error) {
	rows, err := r.db.Query(ctx, `
		UPDATE orders SET status = $1, updated_at = now()
		WHERE status = $2 AND created_at < $3
		RETURNING `+orderColumns,
		domain.OrderStatusCancelled, domain.OrderStatusPending, deadline,
	)
	if err != nil {
		return nil, convertErr(err, "cancelling expired pending orders")
	}
	defer rows.Close()

	orders, scanErr := scanOrders(rows)
	if scanErr != nil {
		return nil, convertErr(scanErr, "cancelling expired pending orders")
	}
	return orders, nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	err := row.Scan(
		&o.ID,
		&o.CreatedAt,
		&o.UpdatedAt,
		&o.UserID,
		&o.ProductID,
		&o.Quantity,
		&o.Price,
		&o.Discount,
		&o.BonusUsed,
		&o.TotalAmount,
		&o.Status,
		&o.VendorOrderRef,
		&o.ICCID,
		&o.QRPayload,
		&o.ActivationCode,
		&o.ErrorMessage,
	)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &o, nil
}

func scanOrders(rows pgx.Rows) ([]domain.Order, error) {
	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err() //nolint:wrapcheck
}
