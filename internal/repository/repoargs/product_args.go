package repoargs

type ProductUpsert struct {
	Vendor           string
	VendorCode       string
	Name             string
	Location         string
	Volume           string
	Days             int32
	VendorPriceCents int64
	Price            int64
	Unlimited        bool
}

type ProductFilter struct {
	OnlyActive bool
	Unlimited  *bool
	Location   string
	Page       uint
	Limit      uint
}

type ProductBadgeUpdate struct {
	IDs        []int64
	Badge      string
	BadgeColor string
}

// ProductReprice несет новую локальную цену, рассчитанную сервисным слоем по
// формуле конвертации. Репозиторий формулу не знает.
type ProductReprice struct {
	ID    int64
	Price int64
}
