package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID             int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
	TelegramID     int64
	Username       string
	Balance        decimal.Decimal
	BonusBalance   int64
	TotalSpent     int64
	LoyaltyLevelID *int64
	ReferralCode   string
	ReferrerID     *int64
}

// Product является зеркалом пакета вендора. Цена вендора хранится в минорных
// единицах (центах), локальная цена - в рублях.
type Product struct {
	ID               int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
	Vendor           string
	VendorCode       string
	Name             string
	Location         string
	Volume           string
	Days             int32
	VendorPriceCents int64
	Price            int64
	Active           bool
	Unlimited        bool
	Badge            string
	BadgeColor       string
}

// Order хранит неизменяемый снимок цены на момент создания заказа:
// Price - цена за единицу, TotalAmount = Price*Quantity - Discount - BonusUsed.
type Order struct {
	ID             int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
	UserID         int64
	ProductID      int64
	Quantity       int32
	Price          int64
	Discount       int64
	BonusUsed      int64
	TotalAmount    int64
	Status         OrderStatusType
	VendorOrderRef string
	ICCID          string
	QRPayload      string
	ActivationCode string
	ErrorMessage   string
}

// Transaction - запись финансового журнала. Append-only, после создания
// мутирует только поле Status.
type Transaction struct {
	ID        int64
	CreatedAt time.Time
	UpdatedAt time.Time
	UserID    int64
	OrderID   *int64
	InvoiceID *int64
	Type      TransactionType
	Status    TransactionStatusType
	Amount    decimal.Decimal
}

type LoyaltyLevel struct {
	ID              int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Name            string
	MinSpent        int64
	CashbackPercent decimal.Decimal
	DiscountPercent decimal.Decimal
}

type Setting struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}
