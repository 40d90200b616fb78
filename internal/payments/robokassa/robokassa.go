// Package robokassa реализует протокол платежного провайдера: построение
// подписанной ссылки на оплату и проверку подписи входящего result-вебхука.
// Подпись - MD5 по строке из параметров и секрета, сравнение без учета регистра.
package robokassa

import (
	"crypto/md5" //nolint:gosec // протокол провайдера требует MD5
	"encoding/hex"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const DefaultBaseURL = "https://auth.robokassa.ru/Merchant/Index.aspx"

type Adapter struct {
	merchantLogin string
	password1     string
	password2     string
	baseURL       string
	testMode      bool
}

func New(merchantLogin, password1, password2 string) *Adapter {
	return &Adapter{
		merchantLogin: merchantLogin,
		password1:     password1,
		password2:     password2,
		baseURL:       DefaultBaseURL,
	}
}

// SetBaseURL переопределяет адрес кассы (для тестов).
func (a *Adapter) SetBaseURL(baseURL string) *Adapter {
	a.baseURL = baseURL
	return a
}

func (a *Adapter) SetTestMode(testMode bool) *Adapter {
	a.testMode = testMode
	return a
}

// PaymentURL строит подписанную ссылку на оплату счета. Подпись
// детерминирована: MD5(login:OutSum:InvId:password1).
func (a *Adapter) PaymentURL(invoiceID int64, amount decimal.Decimal, description string) string {
	outSum := amount.StringFixed(2) //nolint:mnd
	invID := strconv.FormatInt(invoiceID, 10)

	signature := md5hex(strings.Join([]string{a.merchantLogin, outSum, invID, a.password1}, ":"))

	query := url.Values{}
	query.Set("MerchantLogin", a.merchantLogin)
	query.Set("OutSum", outSum)
	query.Set("InvId", invID)
	query.Set("Description", description)
	query.Set("SignatureValue", signature)
	if a.testMode {
		query.Set("IsTest", "1")
	}

	return a.baseURL + "?" + query.Encode()
}

// VerifyResult проверяет подпись result-вебхука: MD5(OutSum:InvId:password2).
// При несовпадении возвращает SignatureError; никаких побочных эффектов.
func (a *Adapter) VerifyResult(params ResultParams) error {
	expected := md5hex(strings.Join(
		[]string{params.OutSum, strconv.FormatInt(params.InvID, 10), a.password2},
		":",
	))
	if !strings.EqualFold(expected, params.SignatureValue) {
		return &SignatureError{InvID: params.InvID}
	}
	return nil
}

// SuccessResponse - тело ответа, которое провайдер ожидает при успешной
// обработке result-вебхука.
func SuccessResponse(invoiceID int64) string {
	return fmt.Sprintf("OK%d", invoiceID)
}

func md5hex(s string) string {
	sum := md5.Sum([]byte(s)) //nolint:gosec
	return hex.EncodeToString(sum[:])
}
