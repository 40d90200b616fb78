package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/fsdevblog/simka/internal/domain"
	"github.com/fsdevblog/simka/internal/payments/robokassa"
	"github.com/gin-gonic/gin"
)

type PaymentsHandler struct {
	paymentSvs PaymentServicer
}

func NewPaymentsHandler(paymentSvs PaymentServicer) *PaymentsHandler {
	return &PaymentsHandler{
		paymentSvs: paymentSvs,
	}
}

// Create POST RouteGroup + PaymentRoute. Выставляет счет по заказу и отдает
// ссылку на платежную форму.
func (h *PaymentsHandler) Create(c *gin.Context) {
	orderID := idParam(c, "orderID")
	if orderID == 0 {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	link, err := h.paymentSvs.CreatePayment(reqCtx, orderID)
	if err != nil {
		var stateErr *domain.OrderStateError
		switch {
		case errors.As(err, &stateErr):
			_ = c.AbortWithError(http.StatusConflict, err).
				SetType(gin.ErrorTypePublic)
		case errors.Is(err, domain.ErrRecordNotFound):
			c.AbortWithStatus(http.StatusNotFound)
		default:
			_ = c.AbortWithError(http.StatusInternalServerError, err).
				SetType(gin.ErrorTypePrivate)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"invoiceId":  link.InvoiceID,
		"paymentUrl": link.URL,
	})
}

// Result POST RouteGroup + ResultRoute. Result-вебхук Робокассы
// (form-urlencoded). Шлюз ретраит уведомление пока не получит `OK<InvId>`,
// поэтому подтверждение уходит и при повторной доставке.
func (h *PaymentsHandler) Result(c *gin.Context) {
	params, parseErr := robokassa.ParseResultParams(
		c.PostForm("OutSum"),
		c.PostForm("InvId"),
		c.PostForm("SignatureValue"),
	)
	if parseErr != nil {
		c.String(http.StatusBadRequest, "bad params")
		return
	}

	reqCtx, cancel := context.WithTimeout(c, WebhookServiceTimeout)
	defer cancel()

	invoiceID, err := h.paymentSvs.HandleWebhook(reqCtx, params)
	if err != nil {
		var sigErr *robokassa.SignatureError
		var amountErr *domain.AmountMismatchError
		switch {
		case errors.As(err, &sigErr), errors.As(err, &amountErr):
			_ = c.Error(err).SetType(gin.ErrorTypePrivate)
			c.String(http.StatusBadRequest, "bad sign")
		case errors.Is(err, domain.ErrRecordNotFound):
			c.String(http.StatusBadRequest, "unknown invoice")
		default:
			_ = c.Error(err).SetType(gin.ErrorTypePrivate)
			c.String(http.StatusInternalServerError, "error")
		}
		return
	}

	c.String(http.StatusOK, robokassa.SuccessResponse(invoiceID))
}

// Success GET RouteGroup + SuccessRoute. Страница возврата после успешной
// оплаты: редирект юзера обратно в Telegram.
func (h *PaymentsHandler) Success(c *gin.Context) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(http.StatusOK, resultPage("Оплата прошла", "Заказ оформляется, eSIM придет в Telegram."))
}

// Fail GET RouteGroup + FailRoute.
func (h *PaymentsHandler) Fail(c *gin.Context) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(http.StatusOK, resultPage("Оплата не прошла", "Попробуйте еще раз или выберите другой способ оплаты."))
}

func resultPage(title, text string) string {
	return `<!DOCTYPE html><html lang="ru"><head><meta charset="utf-8"><title>` + title +
		`</title></head><body><h1>` + title + `</h1><p>` + text +
		`</p><p><a href="https://t.me">Вернуться в Telegram</a></p></body></html>`
}
