package robokassa

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// ResultParams - поля result-вебхука провайдера. OutSum сохраняется строкой
// как пришел: подпись считается по оригинальному представлению суммы.
type ResultParams struct {
	OutSum         string
	InvID          int64
	SignatureValue string
}

// ParseResultParams разбирает сырые значения формы вебхука.
func ParseResultParams(outSum, invID, signature string) (ResultParams, error) {
	id, err := strconv.ParseInt(invID, 10, 64)
	if err != nil {
		return ResultParams{}, fmt.Errorf("parsing InvId `%s`: %s", invID, err.Error())
	}
	if _, sumErr := decimal.NewFromString(outSum); sumErr != nil {
		return ResultParams{}, fmt.Errorf("parsing OutSum `%s`: %s", outSum, sumErr.Error())
	}
	return ResultParams{
		OutSum:         outSum,
		InvID:          id,
		SignatureValue: signature,
	}, nil
}

// Amount возвращает OutSum как decimal. Ошибки нет: формат проверен при парсинге.
func (p ResultParams) Amount() decimal.Decimal {
	amount, _ := decimal.NewFromString(p.OutSum)
	return amount
}
