package domain

type OrderStatusType string

const (
	OrderStatusPending    OrderStatusType = "PENDING"
	OrderStatusPaid       OrderStatusType = "PAID"
	OrderStatusFulfilling OrderStatusType = "FULFILLING"
	OrderStatusCompleted  OrderStatusType = "COMPLETED"
	OrderStatusFailed     OrderStatusType = "FAILED"
	OrderStatusCancelled  OrderStatusType = "CANCELLED"
	OrderStatusRefunded   OrderStatusType = "REFUNDED"
)

// Terminal сообщает, допускает ли статус дальнейшие переходы.
func (s OrderStatusType) Terminal() bool {
	switch s {
	case OrderStatusCompleted, OrderStatusFailed, OrderStatusCancelled, OrderStatusRefunded:
		return true
	case OrderStatusPending, OrderStatusPaid, OrderStatusFulfilling:
		return false
	}
	return false
}

type TransactionType string

const (
	TransactionTypePayment  TransactionType = "PAYMENT"
	TransactionTypeCashback TransactionType = "CASHBACK"
	TransactionTypeReferral TransactionType = "REFERRAL"
	TransactionTypeRefund   TransactionType = "REFUND"
)

type TransactionStatusType string

const (
	TransactionStatusPending   TransactionStatusType = "PENDING"
	TransactionStatusSucceeded TransactionStatusType = "SUCCEEDED"
	TransactionStatusFailed    TransactionStatusType = "FAILED"
)

// Ключи таблицы настроек.
const (
	SettingExchangeRate      = "exchange_rate"
	SettingMarkupPercent     = "markup_percent"
	SettingReferralPercent   = "referral_percent"
	SettingReferralMinPayout = "referral_min_payout"
	SettingAutoUpdateRate    = "auto_update_rate"
	SettingRateUpdatedAt     = "rate_updated_at"
)
