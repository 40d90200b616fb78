package repoargs

import "github.com/shopspring/decimal"

type SaveLoyaltyLevel struct {
	Name            string
	MinSpent        int64
	CashbackPercent decimal.Decimal
	DiscountPercent decimal.Decimal
}
