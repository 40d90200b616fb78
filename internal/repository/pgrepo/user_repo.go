package pgrepo

import (
	"context"

	"github.com/fsdevblog/simka/internal/domain"
	"github.com/fsdevblog/simka/internal/repository/repoargs"
	"github.com/fsdevblog/simka/pkg/uow"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const userColumns = `id, created_at, updated_at, telegram_id, username, balance,
bonus_balance, total_spent, loyalty_level_id, referral_code, referrer_id`

type UserRepository struct {
	db uow.DBTX
}

func NewUserRepository(db uow.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, args repoargs.CreateUser) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO users (telegram_id, username, referral_code, referrer_id)
		VALUES ($1, $2, $3, $4)
		RETURNING `+userColumns,
		args.TelegramID, args.Username, args.ReferralCode, args.ReferrerID,
	)
	user, err := scanUser(row)
	if err != nil {
		return nil, convertErr(err, "creating user with telegram id %d", args.TelegramID)
	}
	return user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	user, err := scanUser(row)
	if err != nil {
		return nil, convertErr(err, "finding user by id %d", id)
	}
	return user, nil
}

func (r *UserRepository) FindByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE telegram_id = $1`, telegramID)
	user, err := scanUser(row)
	if err != nil {
		return nil, convertErr(err, "finding user by telegram id %d", telegramID)
	}
	return user, nil
}

func (r *UserRepository) FindByReferralCode(ctx context.Context, code string) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE referral_code = $1`, code)
	user, err := scanUser(row)
	if err != nil {
		return nil, convertErr(err, "finding user by referral code `%s`", code)
	}
	return user, nil
}

// ReserveBonus атомарно списывает amount с бонусного баланса. Декремент с
// нижней границей выполняется одним UPDATE: конкурирующие заказы одного юзера
// не могут зарезервировать бонусов больше, чем есть на балансе.
func (r *UserRepository) ReserveBonus(ctx context.Context, userID int64, amount int64) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users SET bonus_balance = bonus_balance - $2, updated_at = now()
		WHERE id = $1 AND bonus_balance >= $2`,
		userID, amount,
	)
	if err != nil {
		return convertErr(err, "reserving %d bonus for user %d", amount, userID)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotEnoughBonus
	}
	return nil
}

// AddBonus начисляет бонусы на баланс. Используется и для возврата резерва
// отмененного заказа, и для реферальных начислений.
func (r *UserRepository) AddBonus(ctx context.Context, userID int64, amount int64) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users SET bonus_balance = bonus_balance + $2, updated_at = now()
		WHERE id = $1`,
		userID, amount,
	)
	return convertErr(err, "adding %d bonus for user %d", amount, userID)
}

// CreditBalance зачисляет сумму на денежный баланс (возвраты).
func (r *UserRepository) CreditBalance(ctx context.Context, userID int64, amount decimal.Decimal) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users SET balance = balance + $2, updated_at = now()
		WHERE id = $1`,
		userID, amount,
	)
	return convertErr(err, "crediting balance of user %d", userID)
}

// ApplyOrderCompletion одним UPDATE начисляет кэшбэк и увеличивает
// накопленную сумму трат.
func (r *UserRepository) ApplyOrderCompletion(
	ctx context.Context,
	args repoargs.CompleteOrderUserUpdate,
) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE users
		SET bonus_balance = bonus_balance + $2,
			total_spent = total_spent + $3,
			updated_at = now()
		WHERE id = $1
		RETURNING `+userColumns,
		args.UserID, args.CashbackBonus, args.SpentDelta,
	)
	user, err := scanUser(row)
	if err != nil {
		return nil, convertErr(err, "applying order completion for user %d", args.UserID)
	}
	return user, nil
}

func (r *UserRepository) SetLoyaltyLevel(ctx context.Context, userID int64, levelID *int64) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users SET loyalty_level_id = $2, updated_at = now() WHERE id = $1`,
		userID, levelID,
	)
	return convertErr(err, "setting loyalty level for user %d", userID)
}

func (r *UserRepository) CountReferrals(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM users WHERE referrer_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, convertErr(err, "counting referrals of user %d", userID)
	}
	return count, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID,
		&u.CreatedAt,
		&u.UpdatedAt,
		&u.TelegramID,
		&u.Username,
		&u.Balance,
		&u.BonusBalance,
		&u.TotalSpent,
		&u.LoyaltyLevelID,
		&u.ReferralCode,
		&u.ReferrerID,
	)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &u, nil
}
