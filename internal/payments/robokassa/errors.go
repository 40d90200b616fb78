package robokassa

import "fmt"

// SignatureError возвращается при несовпадении подписи вебхука.
type SignatureError struct {
	InvID int64
}

func (e *SignatureError) Error() string {
	return fmt.Sprintf("invalid signature for invoice %d", e.InvID)
}
