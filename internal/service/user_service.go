package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fsdevblog/simka/internal/domain"
	"github.com/fsdevblog/simka/internal/repository/repoargs"
	"github.com/fsdevblog/simka/pkg/uow"
	"github.com/google/uuid"
)

const referralCodeLength = 8

type UserService struct {
	userRepo        UserRepository
	transactionRepo TransactionRepository
}

func NewUserService(u uow.UOW) (*UserService, error) {
	userRepo, userErr := uow.GetRepositoryAs[UserRepository](u, uow.RepositoryName(repoargs.UserRepoName))
	if userErr != nil {
		return nil, userErr
	}
	transactionRepo, transactionErr :=
		uow.GetRepositoryAs[TransactionRepository](u, uow.RepositoryName(repoargs.TransactionRepoName))
	if transactionErr != nil {
		return nil, transactionErr
	}
	return &UserService{userRepo: userRepo, transactionRepo: transactionRepo}, nil
}

type InitUserArgs struct {
	TelegramID   int64
	Username     string
	ReferralCode string
}

// GetOrCreateByTelegramID возвращает юзера по telegram ID, создавая его при
// первом обращении. ReferralCode пригласившего учитывается только при
// создании; неизвестный или собственный код молча игнорируется. Гонка двух
// одновременных первых запросов разрешается через unique constraint:
// проигравший перечитывает созданную запись.
func (s *UserService) GetOrCreateByTelegramID(ctx context.Context, args InitUserArgs) (*domain.User, error) {
	user, findErr := s.userRepo.FindByTelegramID(ctx, args.TelegramID)
	if findErr == nil {
		return user, nil
	}
	if !errors.Is(findErr, domain.ErrRecordNotFound) {
		return nil, findErr //nolint:wrapcheck
	}

	created, createErr := s.userRepo.Create(ctx, repoargs.CreateUser{
		TelegramID:   args.TelegramID,
		Username:     args.Username,
		ReferralCode: newReferralCode(),
		ReferrerID:   s.resolveReferrer(ctx, args.ReferralCode),
	})
	if createErr != nil {
		if errors.Is(createErr, domain.ErrDuplicateKey) {
			return s.userRepo.FindByTelegramID(ctx, args.TelegramID) //nolint:wrapcheck
		}
		return nil, fmt.Errorf("creating user: %w", createErr)
	}
	return created, nil
}

func (s *UserService) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return user, nil
}

func (s *UserService) Transactions(ctx context.Context, userID int64) ([]domain.Transaction, error) {
	transactions, err := s.transactionRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return transactions, nil
}

type ReferralStats struct {
	ReferralCode string `json:"referralCode"`
	Invited      int64  `json:"invited"`
	TotalEarned  int64  `json:"totalEarned"`
}

// ReferralStatsFor собирает статистику реферальной программы юзера:
// код, число приглашенных и суммарный бонусный заработок.
func (s *UserService) ReferralStatsFor(ctx context.Context, userID int64) (*ReferralStats, error) {
	user, userErr := s.userRepo.FindByID(ctx, userID)
	if userErr != nil {
		return nil, userErr //nolint:wrapcheck
	}
	invited, countErr := s.userRepo.CountReferrals(ctx, userID)
	if countErr != nil {
		return nil, countErr //nolint:wrapcheck
	}
	earned, sumErr := s.transactionRepo.SumByType(ctx, userID, domain.TransactionTypeReferral)
	if sumErr != nil {
		return nil, sumErr //nolint:wrapcheck
	}
	return &ReferralStats{
		ReferralCode: user.ReferralCode,
		Invited:      invited,
		TotalEarned:  earned,
	}, nil
}

func (s *UserService) resolveReferrer(ctx context.Context, code string) *int64 {
	if code == "" {
		return nil
	}
	referrer, err := s.userRepo.FindByReferralCode(ctx, code)
	if err != nil {
		return nil
	}
	return &referrer.ID
}

func newReferralCode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(raw[:referralCodeLength])
}
