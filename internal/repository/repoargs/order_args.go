package repoargs

import "github.com/fsdevblog/simka/internal/domain"

type CreateOrder struct {
	UserID      int64
	ProductID   int64
	Quantity    int32
	Price       int64
	Discount    int64
	BonusUsed   int64
	TotalAmount int64
}

// TransitionStatus описывает атомарный переход статуса заказа, выполняемый
// одним UPDATE с проверкой текущего значения (compare-and-swap).
type TransitionStatus struct {
	OrderID int64
	From    domain.OrderStatusType
	To      domain.OrderStatusType
}

type FulfillmentArtifacts struct {
	OrderID        int64
	VendorOrderRef string
	ICCID          string
	QRPayload      string
	ActivationCode string
}
