package api

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/fsdevblog/simka/internal/domain"
	"github.com/fsdevblog/simka/internal/logger"
	"github.com/fsdevblog/simka/internal/service"
	"github.com/fsdevblog/simka/internal/service/tokens"
	"github.com/fsdevblog/simka/internal/transport/api/mocks"
	"github.com/fsdevblog/simka/internal/transport/api/testutils"
	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"
)

type OrdersHandlerTestSuite struct {
	suite.Suite
	mockCtrl         *gomock.Controller
	mockOrderService *mocks.MockOrderServicer
	router           *gin.Engine
	jwtSecret        []byte
}

func TestOrdersHandlerSuite(t *testing.T) {
	suite.Run(t, new(OrdersHandlerTestSuite))
}

func (s *OrdersHandlerTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockOrderService = mocks.NewMockOrderServicer(s.mockCtrl)
	s.jwtSecret = []byte("super secret key")

	s.router = New(RouterArgs{
		Logger:       logger.New(io.Discard),
		OrderService: s.mockOrderService,
		JWTSecretKey: s.jwtSecret,
	})
}

func (s *OrdersHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *OrdersHandlerTestSuite) TestCreate() {
	created := domain.Order{
		ID:          7,
		UserID:      1,
		ProductID:   10,
		Quantity:    1,
		Price:       1500,
		TotalAmount: 1500,
		Status:      domain.OrderStatusPending,
	}

	s.mockOrderService.EXPECT().
		Create(gomock.Any(), service.CreateOrderArgs{UserID: 1, ProductID: 10, Quantity: 1}).
		Return(&created, nil)
	s.mockOrderService.EXPECT().
		Create(gomock.Any(), service.CreateOrderArgs{UserID: 1, ProductID: 11, Quantity: 1}).
		Return(nil, domain.ErrProductInactive)
	s.mockOrderService.EXPECT().
		Create(gomock.Any(), service.CreateOrderArgs{UserID: 1, ProductID: 12, Quantity: 1}).
		Return(nil, domain.ErrRecordNotFound)
	s.mockOrderService.EXPECT().
		Create(gomock.Any(), service.CreateOrderArgs{UserID: 1, ProductID: 10, Quantity: 1, BonusToUse: 100500}).
		Return(nil, domain.ErrNotEnoughBonus)

	cases := []struct {
		name       string
		payload    []byte
		wantStatus int
	}{
		{
			name:       "all ok",
			payload:    []byte(`{"userId":1,"productId":10,"quantity":1}`),
			wantStatus: http.StatusCreated,
		}, {
			name:       "inactive product",
			payload:    []byte(`{"userId":1,"productId":11,"quantity":1}`),
			wantStatus: http.StatusUnprocessableEntity,
		}, {
			name:       "unknown product",
			payload:    []byte(`{"userId":1,"productId":12,"quantity":1}`),
			wantStatus: http.StatusNotFound,
		}, {
			name:       "not enough bonus",
			payload:    []byte(`{"userId":1,"productId":10,"quantity":1,"bonusToUse":100500}`),
			wantStatus: http.StatusUnprocessableEntity,
		}, {
			name:       "zero quantity",
			payload:    []byte(`{"userId":1,"productId":10,"quantity":0}`),
			wantStatus: http.StatusUnprocessableEntity,
		}, {
			name:       "malformed json",
			payload:    []byte(`{"userId":`),
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			res := testutils.MakeRequest(testutils.RequestArgs{
				Router: s.router,
				Method: http.MethodPost,
				URL:    RouteGroup + OrdersRoute,
				Body:   bytes.NewReader(t.payload),
			}, testutils.WithHeader("Content-Type", "application/json"))
			defer func() {
				closeErr := res.Body.Close()
				s.Require().NoError(closeErr)
			}()

			s.Equal(t.wantStatus, res.StatusCode)
		})
	}
}

func (s *OrdersHandlerTestSuite) TestShow() {
	order := domain.Order{
		ID:     7,
		Status: domain.OrderStatusCompleted,
		ICCID:  "8944500708204567891",
	}

	s.mockOrderService.EXPECT().FindByID(gomock.Any(), order.ID).Return(&order, nil)
	s.mockOrderService.EXPECT().FindByID(gomock.Any(), int64(8)).Return(nil, domain.ErrRecordNotFound)

	cases := []struct {
		name       string
		orderID    string
		wantStatus int
	}{
		{name: "ok", orderID: "7", wantStatus: http.StatusOK},
		{name: "not found", orderID: "8", wantStatus: http.StatusNotFound},
		{name: "bad id", orderID: "abc", wantStatus: http.StatusBadRequest},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			res := testutils.MakeRequest(testutils.RequestArgs{
				Router: s.router,
				Method: http.MethodGet,
				URL:    RouteGroup + "/orders/" + t.orderID,
			})
			defer func() {
				closeErr := res.Body.Close()
				s.Require().NoError(closeErr)
			}()

			s.Equal(t.wantStatus, res.StatusCode)
		})
	}
}

func (s *OrdersHandlerTestSuite) TestCancel() {
	adminToken, tokenErr := tokens.GenerateAdminJWT("admin", time.Hour, s.jwtSecret)
	s.Require().NoError(tokenErr)

	cancelled := domain.Order{
		ID:     3,
		Status: domain.OrderStatusCancelled,
	}

	s.mockOrderService.EXPECT().
		Cancel(gomock.Any(), cancelled.ID).
		Return(&cancelled, nil)
	s.mockOrderService.EXPECT().
		Cancel(gomock.Any(), int64(4)).
		Return(nil, domain.NewOrderStateError(4, domain.OrderStatusCompleted, domain.OrderStatusCancelled))

	cases := []struct {
		name       string
		orderID    string
		jwtToken   string
		wantStatus int
	}{
		{name: "ok", orderID: "3", jwtToken: adminToken, wantStatus: http.StatusOK},
		{name: "wrong status", orderID: "4", jwtToken: adminToken, wantStatus: http.StatusConflict},
		{name: "not authorized", orderID: "3", wantStatus: http.StatusUnauthorized},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			args := testutils.RequestArgs{
				Router: s.router,
				Method: http.MethodPost,
				URL:    AdminRouteGroup + "/orders/" + t.orderID + "/cancel",
			}
			var reqOpts []func(*testutils.RequestOptions)
			if t.jwtToken != "" {
				reqOpts = append(reqOpts,
					testutils.WithHeader("Authorization", fmt.Sprintf("Bearer %s", t.jwtToken)))
			}

			res := testutils.MakeRequest(args, reqOpts...)
			defer func() {
				closeErr := res.Body.Close()
				s.Require().NoError(closeErr)
			}()

			s.Equal(t.wantStatus, res.StatusCode)
		})
	}
}
