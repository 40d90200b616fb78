package esim

import (
	"errors"
	"fmt"
)

var ErrNoVendors = errors.New("no vendors configured")

// StatusCodeError возвращается при ответе вендора со статусом отличным от 200.
type StatusCodeError struct {
	Vendor string
	Code   int
}

func NewStatusCodeError(vendor string, code int) *StatusCodeError {
	return &StatusCodeError{Vendor: vendor, Code: code}
}

func (e *StatusCodeError) Error() string {
	return fmt.Sprintf("vendor %s: unexpected status code %d", e.Vendor, e.Code)
}

// VendorError - ошибка бизнес-уровня, о которой вендор сообщил в теле ответа
// (success=false).
type VendorError struct {
	Vendor  string
	Code    string
	Message string
}

func (e *VendorError) Error() string {
	return fmt.Sprintf("vendor %s: [%s] %s", e.Vendor, e.Code, e.Message)
}
