package service

import (
	"testing"

	"github.com/fsdevblog/simka/internal/domain"
	"github.com/fsdevblog/simka/internal/repository/repoargs"
	"github.com/fsdevblog/simka/internal/service/mocks"
	"github.com/fsdevblog/simka/pkg/uow"
	uowmocks "github.com/fsdevblog/simka/pkg/uow/mocks"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type LoyaltyServiceTestSuite struct {
	suite.Suite
	mockCtrl        *gomock.Controller
	mockUOW         *uowmocks.MockUOW
	mockLoyaltyRepo *mocks.MockLoyaltyLevelRepository
	mockUserRepo    *mocks.MockUserRepository
	loyaltyService  *LoyaltyService
}

func TestLoyaltyServiceSuite(t *testing.T) {
	suite.Run(t, new(LoyaltyServiceTestSuite))
}

func (s *LoyaltyServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockUOW = uowmocks.NewMockUOW(s.mockCtrl)
	s.mockLoyaltyRepo = mocks.NewMockLoyaltyLevelRepository(s.mockCtrl)
	s.mockUserRepo = mocks.NewMockUserRepository(s.mockCtrl)

	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.LoyaltyLevelRepoName)).
		Return(s.mockLoyaltyRepo, nil).AnyTimes()
	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.UserRepoName)).
		Return(s.mockUserRepo, nil).AnyTimes()

	loyaltyService, servErr := NewLoyaltyService(s.mockUOW)
	s.Require().NoError(servErr)
	s.loyaltyService = loyaltyService
}

func (s *LoyaltyServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *LoyaltyServiceTestSuite) TestLevelFor() {
	silver := domain.LoyaltyLevel{
		ID:              2,
		Name:            "Silver",
		MinSpent:        15000,
		CashbackPercent: decimal.NewFromInt(3),
		DiscountPercent: decimal.NewFromInt(5),
	}

	// На копейку меньше порога уровень еще не присваивается.
	s.mockLoyaltyRepo.EXPECT().
		FindForSpent(gomock.Any(), int64(14999)).
		Return(nil, domain.ErrRecordNotFound)
	s.mockLoyaltyRepo.EXPECT().
		FindForSpent(gomock.Any(), int64(15000)).
		Return(&silver, nil)

	cases := []struct {
		name       string
		totalSpent int64
		wantLevel  *domain.LoyaltyLevel
	}{
		{name: "below threshold", totalSpent: 14999, wantLevel: nil},
		{name: "at threshold", totalSpent: 15000, wantLevel: &silver},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			level, err := s.loyaltyService.LevelFor(s.T().Context(), t.totalSpent)

			s.Require().NoError(err)
			s.Equal(t.wantLevel, level)
		})
	}
}

func (s *LoyaltyServiceTestSuite) TestRecomputeUserLevel() {
	user := domain.User{
		ID:         1,
		TotalSpent: 20000,
	}
	level := domain.LoyaltyLevel{ID: 2, MinSpent: 15000}

	s.mockUserRepo.EXPECT().FindByID(gomock.Any(), user.ID).Return(&user, nil)
	s.mockLoyaltyRepo.EXPECT().FindForSpent(gomock.Any(), user.TotalSpent).Return(&level, nil)
	s.mockUserRepo.EXPECT().SetLoyaltyLevel(gomock.Any(), user.ID, gomock.Eq(&level.ID)).Return(nil)

	err := s.loyaltyService.RecomputeUserLevel(s.T().Context(), user.ID)

	s.Require().NoError(err)
}

func (s *LoyaltyServiceTestSuite) TestRecomputeUserLevelNoMatch() {
	user := domain.User{
		ID:         1,
		TotalSpent: 100,
	}

	s.mockUserRepo.EXPECT().FindByID(gomock.Any(), user.ID).Return(&user, nil)
	s.mockLoyaltyRepo.EXPECT().
		FindForSpent(gomock.Any(), user.TotalSpent).
		Return(nil, domain.ErrRecordNotFound)
	// Ни один уровень не подошел: ссылка обнуляется.
	s.mockUserRepo.EXPECT().
		SetLoyaltyLevel(gomock.Any(), user.ID, gomock.Nil()).
		Return(nil)

	err := s.loyaltyService.RecomputeUserLevel(s.T().Context(), user.ID)

	s.Require().NoError(err)
}

func (s *LoyaltyServiceTestSuite) TestCreateLevelDuplicateMinSpent() {
	args := repoargs.SaveLoyaltyLevel{
		Name:            "Silver",
		MinSpent:        15000,
		CashbackPercent: decimal.NewFromInt(3),
		DiscountPercent: decimal.NewFromInt(5),
	}

	s.mockLoyaltyRepo.EXPECT().Create(gomock.Any(), args).Return(nil, domain.ErrDuplicateKey)

	level, err := s.loyaltyService.CreateLevel(s.T().Context(), args)

	s.Require().ErrorIs(err, domain.ErrDuplicateKey)
	s.Nil(level)
}
