package pgrepo

import (
	"context"

	"github.com/fsdevblog/simka/internal/domain"
	"github.com/fsdevblog/simka/internal/repository/repoargs"
	"github.com/fsdevblog/simka/pkg/uow"
	"github.com/jackc/pgx/v5"
)

const productColumns = `id, created_at, updated_at, vendor, vendor_code, name, location,
volume, days, vendor_price_cents, price, active, unlimited, badge, badge_color`

type ProductRepository struct {
	db uow.DBTX
}

func NewProductRepository(db uow.DBTX) *ProductRepository {
	return &ProductRepository{db: db}
}

// Upsert обновляет существующую запись по паре (vendor, vendor_code) или
// вставляет новую с active = true. Флаг active существующих записей не
// трогается: деактивация - только явная админская операция.
func (r *ProductRepository) Upsert(ctx context.Context, args repoargs.ProductUpsert) (*domain.Product, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO products (vendor, vendor_code, name, location, volume, days,
			vendor_price_cents, price, unlimited)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (vendor, vendor_code) DO UPDATE SET
			name = EXCLUDED.name,
			location = EXCLUDED.location,
			volume = EXCLUDED.volume,
			days = EXCLUDED.days,
			vendor_price_cents = EXCLUDED.vendor_price_cents,
			price = EXCLUDED.price,
			unlimited = EXCLUDED.unlimited,
			updated_at = now()
		RETURNING `+productColumns,
		args.Vendor, args.VendorCode, args.Name, args.Location, args.Volume,
		args.Days, args.VendorPriceCents, args.Price, args.Unlimited,
	)
	product, err := scanProduct(row)
	if err != nil {
		return nil, convertErr(err, "upserting product `%s/%s`", args.Vendor, args.VendorCode)
	}
	return product, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	row := r.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	product, err := scanProduct(row)
	if err != nil {
		return nil, convertErr(err, "finding product by id %d", id)
	}
	return product, nil
}

// List возвращает страницу каталога и общее количество записей под фильтром.
func (r *ProductRepository) List(
	ctx context.Context,
	filter repoargs.ProductFilter,
) ([]domain.Product, int64, error) {
	where, whereArgs := buildProductFilter(filter)

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM products`+where, whereArgs...).Scan(&total); err != nil {
		return nil, 0, convertErr(err, "counting products")
	}

	limit := filter.Limit
	offset := (filter.Page - 1) * filter.Limit
	query := `SELECT ` + productColumns + ` FROM products` + where +
		` ORDER BY location, price LIMIT ` + placeholder(len(whereArgs)+1) +
		` OFFSET ` + placeholder(len(whereArgs)+2) //nolint:mnd
	rows, err := r.db.Query(ctx, query, append(whereArgs, limit, offset)...)
	if err != nil {
		return nil, 0, convertErr(err, "listing products")
	}
	defer rows.Close()

	products, scanErr := scanProducts(rows)
	if scanErr != nil {
		return nil, 0, convertErr(scanErr, "listing products")
	}
	return products, total, nil
}

func (r *ProductRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.Product, error) {
	rows, err := r.db.Query(ctx, `SELECT `+productColumns+` FROM products WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, convertErr(err, "getting products by ids")
	}
	defer rows.Close()

	products, scanErr := scanProducts(rows)
	if scanErr != nil {
		return nil, convertErr(scanErr, "getting products by ids")
	}
	return products, nil
}

func (r *ProductRepository) SetActiveByIDs(ctx context.Context, ids []int64, active bool) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE products SET active = $2, updated_at = now() WHERE id = ANY($1)`,
		ids, active,
	)
	if err != nil {
		return 0, convertErr(err, "setting active=%t by ids", active)
	}
	return tag.RowsAffected(), nil
}

func (r *ProductRepository) SetActiveByType(ctx context.Context, unlimited, active bool) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE products SET active = $2, updated_at = now() WHERE unlimited = $1`,
		unlimited, active,
	)
	if err != nil {
		return 0, convertErr(err, "setting active=%t for unlimited=%t", active, unlimited)
	}
	return tag.RowsAffected(), nil
}

func (r *ProductRepository) SetBadgeByIDs(ctx context.Context, args repoargs.ProductBadgeUpdate) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE products SET badge = $2, badge_color = $3, updated_at = now()
		WHERE id = ANY($1)`,
		args.IDs, args.Badge, args.BadgeColor,
	)
	if err != nil {
		return 0, convertErr(err, "setting badge `%s` by ids", args.Badge)
	}
	return tag.RowsAffected(), nil
}

// Reprice выполняет батч обновление локальных цен. Результат каждой строки
// передается в fn, по аналогии с батч запросами остальных репозиториев.
func (r *ProductRepository) Reprice(
	ctx context.Context,
	updates []repoargs.ProductReprice,
	fn func(i int, err error),
) {
	batch := new(pgx.Batch)
	for _, update := range updates {
		batch.Queue(
			`UPDATE products SET price = $2, updated_at = now() WHERE id = $1`,
			update.ID, update.Price,
		)
	}
	results := r.db.SendBatch(ctx, batch)
	defer func() { _ = results.Close() }()

	for i := range updates {
		_, err := results.Exec()
		fn(i, convertErr(err, "repricing product %d", updates[i].ID))
	}
}

func buildProductFilter(filter repoargs.ProductFilter) (string, []any) {
	var conditions []string
	var args []any

	if filter.OnlyActive {
		conditions = append(conditions, "active = true")
	}
	if filter.Unlimited != nil {
		args = append(args, *filter.Unlimited)
		conditions = append(conditions, "unlimited = "+placeholder(len(args)))
	}
	if filter.Location != "" {
		args = append(args, filter.Location)
		conditions = append(conditions, "location = "+placeholder(len(args)))
	}

	if len(conditions) == 0 {
		return "", args
	}
	where := " WHERE " + conditions[0]
	for _, c := range conditions[1:] {
		where += " AND " + c
	}
	return where, args
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ID,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.Vendor,
		&p.VendorCode,
		&p.Name,
		&p.Location,
		&p.Volume,
		&p.Days,
		&p.VendorPriceCents,
		&p.Price,
		&p.Active,
		&p.Unlimited,
		&p.Badge,
		&p.BadgeColor,
	)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &p, nil
}

func scanProducts(rows pgx.Rows) ([]domain.Product, error) {
	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err() //nolint:wrapcheck
}
