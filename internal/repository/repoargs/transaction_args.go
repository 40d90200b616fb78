package repoargs

import (
	"github.com/fsdevblog/simka/internal/domain"
	"github.com/shopspring/decimal"
)

type CreateTransaction struct {
	UserID    int64
	OrderID   *int64
	InvoiceID *int64
	Type      domain.TransactionType
	Status    domain.TransactionStatusType
	Amount    decimal.Decimal
}
