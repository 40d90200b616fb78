package domain

import (
	"errors"
	"fmt"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicateKey   = errors.New("duplicate key")
	ErrUnknown        = errors.New("unknown error")

	ErrNotEnoughBonus  = errors.New("not enough bonus balance")
	ErrProductInactive = errors.New("product is inactive")
	ErrOwnerConflict   = errors.New("owner conflict")
)

// OrderStateError возвращается при попытке перевести заказ в статус,
// недопустимый из текущего.
type OrderStateError struct {
	OrderID int64
	Current OrderStatusType
	Wanted  OrderStatusType
}

func NewOrderStateError(orderID int64, current, wanted OrderStatusType) error {
	return &OrderStateError{OrderID: orderID, Current: current, Wanted: wanted}
}

func (e *OrderStateError) Error() string {
	return fmt.Sprintf(
		"order %d is in status %s, transition to %s is not allowed",
		e.OrderID,
		e.Current,
		e.Wanted,
	)
}

// AmountMismatchError возвращается когда сумма вебхука не совпадает с суммой
// транзакции с точностью до копейки.
type AmountMismatchError struct {
	InvoiceID int64
	Expected  string
	Got       string
}

func NewAmountMismatchError(invoiceID int64, expected, got fmt.Stringer) error {
	return &AmountMismatchError{InvoiceID: invoiceID, Expected: expected.String(), Got: got.String()}
}

func (e *AmountMismatchError) Error() string {
	return fmt.Sprintf(
		"invoice %d amount mismatch: expected %s, got %s",
		e.InvoiceID,
		e.Expected,
		e.Got,
	)
}
