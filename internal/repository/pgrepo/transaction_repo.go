package pgrepo

import (
	"context"

	"github.com/fsdevblog/simka/internal/domain"
	"github.com/fsdevblog/simka/internal/repository/repoargs"
	"github.com/fsdevblog/simka/pkg/uow"
	"github.com/jackc/pgx/v5"
)

const transactionColumns = `id, created_at, updated_at, user_id, order_id, invoice_id,
type, status, amount`

type TransactionRepository struct {
	db uow.DBTX
}

func NewTransactionRepository(db uow.DBTX) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(
	ctx context.Context,
	args repoargs.CreateTransaction,
) (*domain.Transaction, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO transactions (user_id, order_id, invoice_id, type, status, amount)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+transactionColumns,
		args.UserID, args.OrderID, args.InvoiceID, args.Type, args.Status, args.Amount,
	)
	transaction, err := scanTransaction(row)
	if err != nil {
		return nil, convertErr(err, "creating %s transaction for user %d", args.Type, args.UserID)
	}
	return transaction, nil
}

func (r *TransactionRepository) FindByInvoiceID(ctx context.Context, invoiceID int64) (*domain.Transaction, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE invoice_id = $1`,
		invoiceID,
	)
	transaction, err := scanTransaction(row)
	if err != nil {
		return nil, convertErr(err, "finding transaction by invoice id %d", invoiceID)
	}
	return transaction, nil
}

// UpdateStatus меняет статус транзакции compare-and-swap переходом. Журнал
// append-only: кроме статуса ни одно поле после создания не мутирует.
func (r *TransactionRepository) UpdateStatus(
	ctx context.Context,
	id int64,
	from, to domain.TransactionStatusType,
) (*domain.Transaction, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE transactions SET status = $3, updated_at = now()
		WHERE id = $1 AND status = $2
		RETURNING `+transactionColumns,
		id, from, to,
	)
	transaction, err := scanTransaction(row)
	if err != nil {
		return nil, convertErr(err, "updating transaction %d status %s->%s", id, from, to)
	}
	return transaction, nil
}

func (r *TransactionRepository) GetByUserID(ctx context.Context, userID int64) ([]domain.Transaction, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, convertErr(err, "getting transactions by user id %d", userID)
	}
	defer rows.Close()

	var transactions []domain.Transaction
	for rows.Next() {
		t, scanErr := scanTransaction(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, "getting transactions by user id %d", userID)
		}
		transactions = append(transactions, *t)
	}
	return transactions, convertErr(rows.Err(), "getting transactions by user id %d", userID)
}

// SumByType возвращает сумму успешных транзакций юзера данного типа.
// Используется для статистики реферальных выплат.
func (r *TransactionRepository) SumByType(
	ctx context.Context,
	userID int64,
	transactionType domain.TransactionType,
) (int64, error) {
	var sum int64
	err := r.db.QueryRow(ctx, `
		SELECT coalesce(sum(amount), 0)::bigint FROM transactions
		WHERE user_id = $1 AND type = $2 AND status = $3`,
		userID, transactionType, domain.TransactionStatusSucceeded,
	).Scan(&sum)
	if err != nil {
		return 0, convertErr(err, "summing %s transactions of user %d", transactionType, userID)
	}
	return sum, nil
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var t domain.Transaction
	err := row.Scan(
		&t.ID,
		&t.CreatedAt,
		&t.UpdatedAt,
		&t.UserID,
		&t.OrderID,
		&t.InvoiceID,
		&t.Type,
		&t.Status,
		&t.Amount,
	)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &t, nil
}
