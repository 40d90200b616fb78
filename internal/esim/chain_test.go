package esim_test

import (
	"errors"
	"io"
	"testing"

	"github.com/fsdevblog/simka/internal/esim"
	"github.com/fsdevblog/simka/internal/esim/mocks"
	"github.com/fsdevblog/simka/internal/logger"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"
)

type ChainTestSuite struct {
	suite.Suite
	mockCtrl   *gomock.Controller
	mockFirst  *mocks.MockClient
	mockSecond *mocks.MockClient
	chain      *esim.Chain
}

func TestChainSuite(t *testing.T) {
	suite.Run(t, new(ChainTestSuite))
}

func (s *ChainTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockFirst = mocks.NewMockClient(s.mockCtrl)
	s.mockSecond = mocks.NewMockClient(s.mockCtrl)

	s.mockFirst.EXPECT().Name().Return("first").AnyTimes()
	s.mockSecond.EXPECT().Name().Return("second").AnyTimes()

	s.chain = esim.NewChain(logger.New(io.Discard), s.mockFirst, s.mockSecond)
}

func (s *ChainTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *ChainTestSuite) TestPurchaseFirstWins() {
	result := esim.PurchaseResult{OrderRef: "B2212078"}

	s.mockFirst.EXPECT().
		Purchase(gomock.Any(), "CKH491", int32(1)).
		Return(&result, nil)
	// Первый вендор ответил: до второго очередь не доходит.
	s.mockSecond.EXPECT().Purchase(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	got, err := s.chain.Purchase(s.T().Context(), "CKH491", 1)

	s.Require().NoError(err)
	s.Equal(&result, got)
}

func (s *ChainTestSuite) TestPurchaseFallback() {
	result := esim.PurchaseResult{OrderRef: "B2212078"}

	s.mockFirst.EXPECT().
		Purchase(gomock.Any(), "CKH491", int32(1)).
		Return(nil, errors.New("first is down"))
	s.mockSecond.EXPECT().
		Purchase(gomock.Any(), "CKH491", int32(1)).
		Return(&result, nil)

	got, err := s.chain.Purchase(s.T().Context(), "CKH491", 1)

	s.Require().NoError(err)
	s.Equal(&result, got)
}

func (s *ChainTestSuite) TestPurchaseAllFail() {
	firstErr := errors.New("first is down")
	secondErr := errors.New("second is down")

	// Ровно один fallback-проход: каждый вендор вызывается один раз.
	s.mockFirst.EXPECT().
		Purchase(gomock.Any(), "CKH491", int32(1)).
		Return(nil, firstErr).
		Times(1)
	s.mockSecond.EXPECT().
		Purchase(gomock.Any(), "CKH491", int32(1)).
		Return(nil, secondErr).
		Times(1)

	got, err := s.chain.Purchase(s.T().Context(), "CKH491", 1)

	s.Require().Error(err)
	s.Nil(got)
	// Агрегированная ошибка содержит обе причины.
	s.Require().ErrorIs(err, firstErr)
	s.Require().ErrorIs(err, secondErr)
}

func (s *ChainTestSuite) TestHealth() {
	secondErr := errors.New("second is down")

	s.mockFirst.EXPECT().Ping(gomock.Any()).Return(nil)
	s.mockSecond.EXPECT().Ping(gomock.Any()).Return(secondErr)

	report := s.chain.Health(s.T().Context())

	s.Require().Len(report, 2)
	s.NoError(report["first"])
	s.ErrorIs(report["second"], secondErr)
}
