package repoargs

type CreateUser struct {
	TelegramID   int64
	Username     string
	ReferralCode string
	ReferrerID   *int64
}

// CompleteOrderUserUpdate применяется к юзеру при завершении заказа одним
// UPDATE: начисление кэшбэка, инкремент потраченной суммы.
type CompleteOrderUserUpdate struct {
	UserID        int64
	CashbackBonus int64
	SpentDelta    int64
}
