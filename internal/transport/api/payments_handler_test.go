package api

import (
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/fsdevblog/simka/internal/domain"
	"github.com/fsdevblog/simka/internal/logger"
	"github.com/fsdevblog/simka/internal/payments/robokassa"
	"github.com/fsdevblog/simka/internal/service"
	"github.com/fsdevblog/simka/internal/transport/api/mocks"
	"github.com/fsdevblog/simka/internal/transport/api/testutils"
	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"
)

type PaymentsHandlerTestSuite struct {
	suite.Suite
	mockCtrl           *gomock.Controller
	mockPaymentService *mocks.MockPaymentServicer
	router             *gin.Engine
}

func TestPaymentsHandlerSuite(t *testing.T) {
	suite.Run(t, new(PaymentsHandlerTestSuite))
}

func (s *PaymentsHandlerTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockPaymentService = mocks.NewMockPaymentServicer(s.mockCtrl)

	s.router = New(RouterArgs{
		Logger:         logger.New(io.Discard),
		PaymentService: s.mockPaymentService,
		JWTSecretKey:   []byte("super secret key"),
	})
}

func (s *PaymentsHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *PaymentsHandlerTestSuite) TestCreate() {
	link := service.PaymentLink{
		InvoiceID: 42,
		URL:       "https://auth.robokassa.ru/Merchant/Index.aspx?InvId=42",
	}

	s.mockPaymentService.EXPECT().
		CreatePayment(gomock.Any(), int64(7)).
		Return(&link, nil)
	s.mockPaymentService.EXPECT().
		CreatePayment(gomock.Any(), int64(8)).
		Return(nil, domain.NewOrderStateError(8, domain.OrderStatusPaid, domain.OrderStatusPending))
	s.mockPaymentService.EXPECT().
		CreatePayment(gomock.Any(), int64(9)).
		Return(nil, domain.ErrRecordNotFound)

	cases := []struct {
		name       string
		orderID    string
		wantStatus int
		wantBody   string
	}{
		{name: "ok", orderID: "7", wantStatus: http.StatusCreated, wantBody: link.URL},
		{name: "already paid", orderID: "8", wantStatus: http.StatusConflict},
		{name: "unknown order", orderID: "9", wantStatus: http.StatusNotFound},
		{name: "bad order id", orderID: "abc", wantStatus: http.StatusBadRequest},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			res := testutils.MakeRequest(testutils.RequestArgs{
				Router: s.router,
				Method: http.MethodPost,
				URL:    RouteGroup + "/payments/" + t.orderID,
			})
			defer func() {
				closeErr := res.Body.Close()
				s.Require().NoError(closeErr)
			}()

			s.Equal(t.wantStatus, res.StatusCode)

			if t.wantBody != "" {
				body, readErr := io.ReadAll(res.Body)
				s.Require().NoError(readErr)
				s.Contains(string(body), t.wantBody)
			}
		})
	}
}

func (s *PaymentsHandlerTestSuite) TestResult() {
	okParams := robokassa.ResultParams{
		OutSum:         "1500.00",
		InvID:          42,
		SignatureValue: "cafebabe",
	}
	badSignParams := okParams
	badSignParams.InvID = 43
	unknownParams := okParams
	unknownParams.InvID = 44

	s.mockPaymentService.EXPECT().
		HandleWebhook(gomock.Any(), okParams).
		Return(okParams.InvID, nil)
	s.mockPaymentService.EXPECT().
		HandleWebhook(gomock.Any(), badSignParams).
		Return(int64(0), &robokassa.SignatureError{InvID: badSignParams.InvID})
	s.mockPaymentService.EXPECT().
		HandleWebhook(gomock.Any(), unknownParams).
		Return(int64(0), domain.ErrRecordNotFound)

	cases := []struct {
		name       string
		invID      string
		wantStatus int
		wantBody   string
	}{
		// Шлюз ретраит уведомление пока не увидит OK<InvId>.
		{name: "ok", invID: "42", wantStatus: http.StatusOK, wantBody: "OK42"},
		{name: "bad signature", invID: "43", wantStatus: http.StatusBadRequest, wantBody: "bad sign"},
		{name: "unknown invoice", invID: "44", wantStatus: http.StatusBadRequest, wantBody: "unknown invoice"},
		{name: "malformed params", invID: "abc", wantStatus: http.StatusBadRequest, wantBody: "bad params"},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			form := url.Values{}
			form.Set("OutSum", "1500.00")
			form.Set("InvId", t.invID)
			form.Set("SignatureValue", "cafebabe")

			res := testutils.MakeRequest(testutils.RequestArgs{
				Router: s.router,
				Method: http.MethodPost,
				URL:    RouteGroup + ResultRoute,
				Body:   strings.NewReader(form.Encode()),
			}, testutils.WithHeader("Content-Type", "application/x-www-form-urlencoded"))
			defer func() {
				closeErr := res.Body.Close()
				s.Require().NoError(closeErr)
			}()

			s.Equal(t.wantStatus, res.StatusCode)

			body, readErr := io.ReadAll(res.Body)
			s.Require().NoError(readErr)
			s.Contains(string(body), t.wantBody)
		})
	}
}
