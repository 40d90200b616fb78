package pgrepo

import (
	"context"

	"github.com/fsdevblog/simka/internal/domain"
	"github.com/fsdevblog/simka/pkg/uow"
)

type SettingRepository struct {
	db uow.DBTX
}

func NewSettingRepository(db uow.DBTX) *SettingRepository {
	return &SettingRepository{db: db}
}

func (r *SettingRepository) Get(ctx context.Context, key string) (*domain.Setting, error) {
	var s domain.Setting
	err := r.db.QueryRow(ctx,
		`SELECT key, value, updated_at FROM settings WHERE key = $1`,
		key,
	).Scan(&s.Key, &s.Value, &s.UpdatedAt)
	if err != nil {
		return nil, convertErr(err, "getting setting `%s`", key)
	}
	return &s, nil
}

// Set выполняет upsert значения. Конкурирующие писатели безопасны: запись -
// один атомарный стейтмент.
func (r *SettingRepository) Set(ctx context.Context, key, value string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO settings (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		key, value,
	)
	return convertErr(err, "setting `%s`", key)
}

func (r *SettingRepository) GetAll(ctx context.Context) ([]domain.Setting, error) {
	rows, err := r.db.Query(ctx, `SELECT key, value, updated_at FROM settings ORDER BY key`)
	if err != nil {
		return nil, convertErr(err, "getting all settings")
	}
	defer rows.Close()

	var settings []domain.Setting
	for rows.Next() {
		var s domain.Setting
		if scanErr := rows.Scan(&s.Key, &s.Value, &s.UpdatedAt); scanErr != nil {
			return nil, convertErr(scanErr, "getting all settings")
		}
		settings = append(settings, s)
	}
	return settings, convertErr(rows.Err(), "getting all settings")
}
