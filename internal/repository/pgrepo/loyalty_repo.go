package pgrepo

import (
	"context"

	"github.com/fsdevblog/simka/internal/domain"
	"github.com/fsdevblog/simka/internal/repository/repoargs"
	"github.com/fsdevblog/simka/pkg/uow"
	"github.com/jackc/pgx/v5"
)

const loyaltyColumns = `id, created_at, updated_at, name, min_spent, cashback_percent,
discount_percent`

type LoyaltyLevelRepository struct {
	db uow.DBTX
}

func NewLoyaltyLevelRepository(db uow.DBTX) *LoyaltyLevelRepository {
	return &LoyaltyLevelRepository{db: db}
}

func (r *LoyaltyLevelRepository) Create(
	ctx context.Context,
	args repoargs.SaveLoyaltyLevel,
) (*domain.LoyaltyLevel, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO loyalty_levels (name, min_spent, cashback_percent, discount_percent)
		VALUES ($1, $2, $3, $4)
		RETURNING `+loyaltyColumns,
		args.Name, args.MinSpent, args.CashbackPercent, args.DiscountPercent,
	)
	level, err := scanLoyaltyLevel(row)
	if err != nil {
		return nil, convertErr(err, "creating loyalty level `%s`", args.Name)
	}
	return level, nil
}

func (r *LoyaltyLevelRepository) Update(
	ctx context.Context,
	id int64,
	args repoargs.SaveLoyaltyLevel,
) (*domain.LoyaltyLevel, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE loyalty_levels SET
			name = $2,
			min_spent = $3,
			cashback_percent = $4,
			discount_percent = $5,
			updated_at = now()
		WHERE id = $1
		RETURNING `+loyaltyColumns,
		id, args.Name, args.MinSpent, args.CashbackPercent, args.DiscountPercent,
	)
	level, err := scanLoyaltyLevel(row)
	if err != nil {
		return nil, convertErr(err, "updating loyalty level %d", id)
	}
	return level, nil
}

// Delete удаляет уровень. Ссылки юзеров на него обнуляются на уровне схемы
// (ON DELETE SET NULL), история заказов не затрагивается.
func (r *LoyaltyLevelRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM loyalty_levels WHERE id = $1`, id)
	if err != nil {
		return convertErr(err, "deleting loyalty level %d", id)
	}
	if tag.RowsAffected() == 0 {
		return convertErr(pgx.ErrNoRows, "deleting loyalty level %d", id)
	}
	return nil
}

func (r *LoyaltyLevelRepository) FindByID(ctx context.Context, id int64) (*domain.LoyaltyLevel, error) {
	row := r.db.QueryRow(ctx, `SELECT `+loyaltyColumns+` FROM loyalty_levels WHERE id = $1`, id)
	level, err := scanLoyaltyLevel(row)
	if err != nil {
		return nil, convertErr(err, "finding loyalty level by id %d", id)
	}
	return level, nil
}

// FindForSpent возвращает уровень с наибольшим min_spent не превышающим
// totalSpent, или domain.ErrRecordNotFound если подходящего уровня нет.
func (r *LoyaltyLevelRepository) FindForSpent(ctx context.Context, totalSpent int64) (*domain.LoyaltyLevel, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+loyaltyColumns+` FROM loyalty_levels
		WHERE min_spent <= $1
		ORDER BY min_spent DESC
		LIMIT 1`,
		totalSpent,
	)
	level, err := scanLoyaltyLevel(row)
	if err != nil {
		return nil, convertErr(err, "finding loyalty level for spent %d", totalSpent)
	}
	return level, nil
}

func (r *LoyaltyLevelRepository) GetAll(ctx context.Context) ([]domain.LoyaltyLevel, error) {
	rows, err := r.db.Query(ctx, `SELECT `+loyaltyColumns+` FROM loyalty_levels ORDER BY min_spent`)
	if err != nil {
		return nil, convertErr(err, "getting all loyalty levels")
	}
	defer rows.Close()

	var levels []domain.LoyaltyLevel
	for rows.Next() {
		level, scanErr := scanLoyaltyLevel(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, "getting all loyalty levels")
		}
		levels = append(levels, *level)
	}
	return levels, convertErr(rows.Err(), "getting all loyalty levels")
}

func scanLoyaltyLevel(row pgx.Row) (*domain.LoyaltyLevel, error) {
	var l domain.LoyaltyLevel
	err := row.Scan(
		&l.ID,
		&l.CreatedAt,
		&l.UpdatedAt,
		&l.Name,
		&l.MinSpent,
		&l.CashbackPercent,
		&l.DiscountPercent,
	)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &l, nil
}
