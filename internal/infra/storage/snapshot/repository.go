package snapshot

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
)

// psql builder с PostgreSQL-плейсхолдерами
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repository репозиторий истории запусков анализа.
// Хранит по строке на пространство × окно за каждый запуск; история питает
// временные ряды дашборда и API последних метрик.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория снапшотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// InsertRun записывает все строки одного запуска анализа
func (r *Repository) InsertRun(ctx context.Context, run Run) error {
	if len(run.Rows) == 0 {
		return nil
	}

	builder := psql.Insert("space_metrics_snapshots").
		Columns(
			"run_id",
			"run_date",
			"space_id",
			"space_name",
			"category_id",
			"category_name",
			"location_id",
			"location_name",
			"period",
			"booking_rate_pct",
			"hours_available",
			"hours_booked",
			"booking_count",
			"next_available",
		)

	for _, row := range run.Rows {
		builder = builder.Values(
			run.ID,
			run.RunDate,
			row.Space.SpaceID,
			row.Space.SpaceName,
			row.Space.CategoryID,
			row.Space.CategoryName,
			row.Space.LocationID,
			row.Space.LocationName,
			row.Period,
			row.Metrics.BookingRatePct,
			row.Metrics.HoursAvailable,
			row.Metrics.HoursBooked,
			row.Metrics.BookingCount,
			row.NextAvailable,
		)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: InsertRun - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: InsertRun - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// LatestForSpace возвращает строки последнего запуска для пространства
// (по одной на окно)
func (r *Repository) LatestForSpace(ctx context.Context, spaceID string) ([]Row, error) {
	query, args, err := psql.Select(
		"space_id",
		"space_name",
		"category_id",
		"category_name",
		"location_id",
		"location_name",
		"period",
		"booking_rate_pct",
		"hours_available",
		"hours_booked",
		"booking_count",
		"next_available",
	).
		From("space_metrics_snapshots").
		Where(squirrel.Eq{"space_id": spaceID}).
		Where(squirrel.Expr(
			"run_id = (SELECT run_id FROM space_metrics_snapshots WHERE space_id = ? ORDER BY run_date DESC, created_at DESC LIMIT 1)",
			spaceID,
		)).
		OrderBy("period").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: LatestForSpace - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: LatestForSpace - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var result []Row
	for rows.Next() {
		var row Row
		var nextAvailable sql.NullTime

		err := rows.Scan(
			&row.Space.SpaceID,
			&row.Space.SpaceName,
			&row.Space.CategoryID,
			&row.Space.CategoryName,
			&row.Space.LocationID,
			&row.Space.LocationName,
			&row.Period,
			&row.Metrics.BookingRatePct,
			&row.Metrics.HoursAvailable,
			&row.Metrics.HoursBooked,
			&row.Metrics.BookingCount,
			&nextAvailable,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: LatestForSpace - scan row: %v", ErrScanRow, err)
		}

		if nextAvailable.Valid {
			t := nextAvailable.Time
			row.NextAvailable = &t
		}

		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: LatestForSpace - iterate rows: %v", ErrExecQuery, err)
	}

	if len(result) == 0 {
		return nil, ErrNotFound
	}

	return result, nil
}

// MondaySeries возвращает временной ряд booking_rate за недельное окно
// по запускам, сделанным в понедельник. Временной ряд дашборда обновляется
// раз в неделю, остальные запуски в него не попадают.
func (r *Repository) MondaySeries(ctx context.Context, period string) ([]SeriesPoint, error) {
	query, args, err := psql.Select(
		"run_date",
		"space_id",
		"space_name",
		"location_name",
		"booking_rate_pct",
	).
		From("space_metrics_snapshots").
		Where(squirrel.Eq{"period": period}).
		Where(squirrel.Expr("extract(isodow from run_date) = 1")).
		OrderBy("run_date", "space_name").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: MondaySeries - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: MondaySeries - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var points []SeriesPoint
	for rows.Next() {
		var p SeriesPoint
		var runDate time.Time

		if err := rows.Scan(&runDate, &p.SpaceID, &p.SpaceName, &p.LocationName, &p.BookingRate); err != nil {
			return nil, fmt.Errorf("%w: MondaySeries - scan row: %v", ErrScanRow, err)
		}

		p.RunDate = runDate
		points = append(points, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: MondaySeries - iterate rows: %v", ErrExecQuery, err)
	}

	return points, nil
}
