package service

import (
	"context"
	"strconv"

	"github.com/shopspring/decimal"
)

// settingDecimal читает числовую настройку с дефолтом. Отсутствующее или
// битое значение не должно ронять оплату заказа, поэтому ошибки глотаются в
// пользу fallback.
func settingDecimal(ctx context.Context, repo SettingRepository, key string, fallback decimal.Decimal) decimal.Decimal {
	setting, err := repo.Get(ctx, key)
	if err != nil {
		return fallback
	}
	value, parseErr := decimal.NewFromString(setting.Value)
	if parseErr != nil {
		return fallback
	}
	return value
}

func settingInt(ctx context.Context, repo SettingRepository, key string, fallback int64) int64 {
	setting, err := repo.Get(ctx, key)
	if err != nil {
		return fallback
	}
	value, parseErr := strconv.ParseInt(setting.Value, 10, 64)
	if parseErr != nil {
		return fallback
	}
	return value
}
