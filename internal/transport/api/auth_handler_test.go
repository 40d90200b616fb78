package api

import (
	"bytes"
	"io"
	"net/http"
	"testing"

	"github.com/fsdevblog/simka/internal/logger"
	"github.com/fsdevblog/simka/internal/service"
	"github.com/fsdevblog/simka/internal/transport/api/mocks"
	"github.com/fsdevblog/simka/internal/transport/api/testutils"
	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"
)

type AuthHandlerTestSuite struct {
	suite.Suite
	mockCtrl        *gomock.Controller
	mockAuthService *mocks.MockAuthServicer
	router          *gin.Engine
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

func (s *AuthHandlerTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockAuthService = mocks.NewMockAuthServicer(s.mockCtrl)

	s.router = New(RouterArgs{
		Logger:       logger.New(io.Discard),
		AuthService:  s.mockAuthService,
		JWTSecretKey: []byte("super secret key"),
	})
}

func (s *AuthHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *AuthHandlerTestSuite) TestLogin() {
	s.mockAuthService.EXPECT().
		Login("admin", "correct horse").
		Return("signed.jwt.token", nil)
	s.mockAuthService.EXPECT().
		Login("admin", "wrong pass").
		Return("", service.ErrInvalidCredentials)

	cases := []struct {
		name       string
		payload    []byte
		wantStatus int
		wantToken  bool
	}{
		{
			name:       "all ok",
			payload:    []byte(`{"login":"admin","password":"correct horse"}`),
			wantStatus: http.StatusOK,
			wantToken:  true,
		}, {
			name:       "wrong password",
			payload:    []byte(`{"login":"admin","password":"wrong pass"}`),
			wantStatus: http.StatusUnauthorized,
		}, {
			// Короткий пароль отсекается валидацией до сервиса.
			name:       "short password",
			payload:    []byte(`{"login":"admin","password":"abc"}`),
			wantStatus: http.StatusBadRequest,
		}, {
			name:       "empty payload",
			payload:    []byte(`{}`),
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			res := testutils.MakeRequest(testutils.RequestArgs{
				Router: s.router,
				Method: http.MethodPost,
				URL:    AdminRouteGroup + LoginRoute,
				Body:   bytes.NewReader(t.payload),
			}, testutils.WithHeader("Content-Type", "application/json"))
			defer func() {
				closeErr := res.Body.Close()
				s.Require().NoError(closeErr)
			}()

			s.Equal(t.wantStatus, res.StatusCode)

			if t.wantToken {
				s.Equal("Bearer signed.jwt.token", res.Header.Get("Authorization"))
			}
		})
	}
}
