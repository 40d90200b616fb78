package service

import (
	"context"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/fsdevblog/simka/internal/domain"
	"github.com/fsdevblog/simka/internal/repository/repoargs"
	"github.com/fsdevblog/simka/internal/service/mocks"
	"github.com/fsdevblog/simka/pkg/uow"
	uowmocks "github.com/fsdevblog/simka/pkg/uow/mocks"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockCtrl            *gomock.Controller
	mockUOW             *uowmocks.MockUOW
	mockUserRepo        *mocks.MockUserRepository
	mockTransactionRepo *mocks.MockTransactionRepository
	userService         *UserService
}

func TestUserServiceSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

func (s *UserServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockUOW = uowmocks.NewMockUOW(s.mockCtrl)
	s.mockUserRepo = mocks.NewMockUserRepository(s.mockCtrl)
	s.mockTransactionRepo = mocks.NewMockTransactionRepository(s.mockCtrl)

	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.UserRepoName)).
		Return(s.mockUserRepo, nil).AnyTimes()
	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.TransactionRepoName)).
		Return(s.mockTransactionRepo, nil).AnyTimes()

	userService, servErr := NewUserService(s.mockUOW)
	s.Require().NoError(servErr)
	s.userService = userService
}

func (s *UserServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *UserServiceTestSuite) TestGetOrCreateExisting() {
	existing := domain.User{
		ID:           1,
		TelegramID:   100500,
		ReferralCode: "A1B2C3D4",
	}

	s.mockUserRepo.EXPECT().
		FindByTelegramID(gomock.Any(), existing.TelegramID).
		Return(&existing, nil)
	// Повторный init существующего юзера ничего не создает.
	s.mockUserRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

	user, err := s.userService.GetOrCreateByTelegramID(s.T().Context(), InitUserArgs{
		TelegramID: existing.TelegramID,
		Username:   "someone_else",
	})

	s.Require().NoError(err)
	s.Equal(&existing, user)
}

func (s *UserServiceTestSuite) TestGetOrCreateNew() {
	telegramID := int64(gofakeit.Number(1, 1_000_000))
	username := gofakeit.Username()
	referrer := domain.User{
		ID:           5,
		ReferralCode: "REFCODE1",
	}

	s.mockUserRepo.EXPECT().
		FindByTelegramID(gomock.Any(), telegramID).
		Return(nil, domain.ErrRecordNotFound)
	s.mockUserRepo.EXPECT().
		FindByReferralCode(gomock.Any(), referrer.ReferralCode).
		Return(&referrer, nil)
	s.mockUserRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, args repoargs.CreateUser) (*domain.User, error) {
			s.Equal(telegramID, args.TelegramID)
			s.Equal(username, args.Username)
			s.Len(args.ReferralCode, referralCodeLength)
			s.Equal(strings.ToUpper(args.ReferralCode), args.ReferralCode)
			s.Require().NotNil(args.ReferrerID)
			s.Equal(referrer.ID, *args.ReferrerID)
			return &domain.User{ID: 2, TelegramID: args.TelegramID, ReferralCode: args.ReferralCode}, nil
		})

	user, err := s.userService.GetOrCreateByTelegramID(s.T().Context(), InitUserArgs{
		TelegramID:   telegramID,
		Username:     username,
		ReferralCode: referrer.ReferralCode,
	})

	s.Require().NoError(err)
	s.Equal(int64(2), user.ID)
}

func (s *UserServiceTestSuite) TestGetOrCreateUnknownReferralCode() {
	s.mockUserRepo.EXPECT().
		FindByTelegramID(gomock.Any(), int64(100500)).
		Return(nil, domain.ErrRecordNotFound)
	s.mockUserRepo.EXPECT().
		FindByReferralCode(gomock.Any(), "NOSUCH").
		Return(nil, domain.ErrRecordNotFound)
	// Неизвестный код молча игнорируется, юзер создается без реферера.
	s.mockUserRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, args repoargs.CreateUser) (*domain.User, error) {
			s.Nil(args.ReferrerID)
			return &domain.User{ID: 2, TelegramID: args.TelegramID}, nil
		})

	user, err := s.userService.GetOrCreateByTelegramID(s.T().Context(), InitUserArgs{
		TelegramID:   100500,
		ReferralCode: "NOSUCH",
	})

	s.Require().NoError(err)
	s.NotNil(user)
}

func (s *UserServiceTestSuite) TestGetOrCreateRace() {
	winner := domain.User{
		ID:         3,
		TelegramID: 100500,
	}

	// Гонка двух первых запросов: проигравший ловит duplicate key
	// и перечитывает созданную конкурентом запись.
	first := s.mockUserRepo.EXPECT().
		FindByTelegramID(gomock.Any(), winner.TelegramID).
		Return(nil, domain.ErrRecordNotFound)
	s.mockUserRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(nil, domain.ErrDuplicateKey)
	s.mockUserRepo.EXPECT().
		FindByTelegramID(gomock.Any(), winner.TelegramID).
		Return(&winner, nil).
		After(first)

	user, err := s.userService.GetOrCreateByTelegramID(s.T().Context(), InitUserArgs{
		TelegramID: winner.TelegramID,
	})

	s.Require().NoError(err)
	s.Equal(&winner, user)
}

func (s *UserServiceTestSuite) TestReferralStatsFor() {
	user := domain.User{
		ID:           1,
		ReferralCode: "A1B2C3D4",
	}

	s.mockUserRepo.EXPECT().FindByID(gomock.Any(), user.ID).Return(&user, nil)
	s.mockUserRepo.EXPECT().CountReferrals(gomock.Any(), user.ID).Return(int64(3), nil)
	s.mockTransactionRepo.EXPECT().
		SumByType(gomock.Any(), user.ID, domain.TransactionTypeReferral).
		Return(int64(450), nil)

	stats, err := s.userService.ReferralStatsFor(s.T().Context(), user.ID)

	s.Require().NoError(err)
	s.Equal(&ReferralStats{
		ReferralCode: "A1B2C3D4",
		Invited:      3,
		TotalEarned:  450,
	}, stats)
}
