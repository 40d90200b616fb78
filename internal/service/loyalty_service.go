package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/fsdevblog/simka/internal/domain"
	"github.com/fsdevblog/simka/internal/repository/repoargs"
	"github.com/fsdevblog/simka/pkg/uow"
)

type LoyaltyService struct {
	uow         uow.UOW
	loyaltyRepo LoyaltyLevelRepository
	userRepo    UserRepository
}

func NewLoyaltyService(u uow.UOW) (*LoyaltyService, error) {
	loyaltyRepo, loyaltyErr :=
		uow.GetRepositoryAs[LoyaltyLevelRepository](u, uow.RepositoryName(repoargs.LoyaltyLevelRepoName))
	if loyaltyErr != nil {
		return nil, loyaltyErr
	}
	userRepo, userErr := uow.GetRepositoryAs[UserRepository](u, uow.RepositoryName(repoargs.UserRepoName))
	if userErr != nil {
		return nil, userErr
	}
	return &LoyaltyService{
		uow:         u,
		loyaltyRepo: loyaltyRepo,
		userRepo:    userRepo,
	}, nil
}

// LevelFor возвращает уровень с наибольшим minSpent не превышающим totalSpent,
// или nil если ни один уровень не подходит. Значения minSpent уникальны,
// поэтому выбор детерминирован.
func (s *LoyaltyService) LevelFor(ctx context.Context, totalSpent int64) (*domain.LoyaltyLevel, error) {
	level, err := s.loyaltyRepo.FindForSpent(ctx, totalSpent)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, nil //nolint:nilnil
		}
		return nil, err //nolint:wrapcheck
	}
	return level, nil
}

// RecomputeUserLevel пересчитывает уровень юзера как чистую функцию от
// текущего totalSpent. Вызывается после каждого события, меняющего траты;
// фонового опроса нет.
func (s *LoyaltyService) RecomputeUserLevel(ctx context.Context, userID int64) error {
	user, userErr := s.userRepo.FindByID(ctx, userID)
	if userErr != nil {
		return fmt.Errorf("recomputing level for user %d: %w", userID, userErr)
	}
	return s.recompute(ctx, s.loyaltyRepo, s.userRepo, user.ID, user.TotalSpent)
}

// RecomputeUserLevelTX - версия для вызова внутри открытой uow-транзакции,
// когда totalSpent уже известен (завершение заказа).
func (s *LoyaltyService) RecomputeUserLevelTX(ctx context.Context, tx uow.TX, userID, totalSpent int64) error {
	loyaltyRepo, loyaltyErr :=
		uow.GetAs[LoyaltyLevelRepository](tx, uow.RepositoryName(repoargs.LoyaltyLevelRepoName))
	if loyaltyErr != nil {
		return loyaltyErr //nolint:wrapcheck
	}
	userRepo, userErr := uow.GetAs[UserRepository](tx, uow.RepositoryName(repoargs.UserRepoName))
	if userErr != nil {
		return userErr //nolint:wrapcheck
	}
	return s.recompute(ctx, loyaltyRepo, userRepo, userID, totalSpent)
}

func (s *LoyaltyService) recompute(
	ctx context.Context,
	loyaltyRepo LoyaltyLevelRepository,
	userRepo UserRepository,
	userID, totalSpent int64,
) error {
	level, levelErr := s.levelForWith(ctx, loyaltyRepo, totalSpent)
	if levelErr != nil {
		return fmt.Errorf("recomputing level for user %d: %w", userID, levelErr)
	}

	var levelID *int64
	if level != nil {
		levelID = &level.ID
	}
	if setErr := userRepo.SetLoyaltyLevel(ctx, userID, levelID); setErr != nil {
		return fmt.Errorf("recomputing level for user %d: %w", userID, setErr)
	}
	return nil
}

func (s *LoyaltyService) levelForWith(
	ctx context.Context,
	repo LoyaltyLevelRepository,
	totalSpent int64,
) (*domain.LoyaltyLevel, error) {
	level, err := repo.FindForSpent(ctx, totalSpent)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, nil //nolint:nilnil
		}
		return nil, err //nolint:wrapcheck
	}
	return level, nil
}

func (s *LoyaltyService) GetAll(ctx context.Context) ([]domain.LoyaltyLevel, error) {
	levels, err := s.loyaltyRepo.GetAll(ctx)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return levels, nil
}

func (s *LoyaltyService) CreateLevel(ctx context.Context, args repoargs.SaveLoyaltyLevel) (*domain.LoyaltyLevel, error) {
	level, err := s.loyaltyRepo.Create(ctx, args)
	if err != nil {
		return nil, fmt.Errorf("creating loyalty level: %w", err)
	}
	return level, nil
}

func (s *LoyaltyService) UpdateLevel(
	ctx context.Context,
	id int64,
	args repoargs.SaveLoyaltyLevel,
) (*domain.LoyaltyLevel, error) {
	level, err := s.loyaltyRepo.Update(ctx, id, args)
	if err != nil {
		return nil, fmt.Errorf("updating loyalty level %d: %w", id, err)
	}
	return level, nil
}

// DeleteLevel удаляет уровень. Ссылки держателей обнуляются схемой БД
// (ON DELETE SET NULL) - удаление не падает из-за наличия держателей.
func (s *LoyaltyService) DeleteLevel(ctx context.Context, id int64) error {
	if err := s.loyaltyRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting loyalty level %d: %w", id, err)
	}
	return nil
}
