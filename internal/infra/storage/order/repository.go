package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-VenueBookingService/pkg/psqlbuilder"
)

const (
	pqExclusionViolation  = "23P01"
	pqForeignKeyViolation = "23503"
)

// Колонки заказа вместе с денормализованной услугой (JOIN services s)
var orderColumns = []string{
	"o.id",
	"o.user_id",
	"o.service_id",
	"o.order_date",
	"o.total_price",
	"o.people_count",
	"o.status",
	"o.extras",
	"o.discount_percent",
	"o.created_at",
	"o.updated_at",
	"s.id",
	"s.name",
	"s.description",
	"s.duration_minutes",
	"s.weekday_price",
	"s.weekend_price",
	"s.start_time",
	"s.end_time",
}

// Repository репозиторий заказов и занятости ресурсов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заказов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает заказ. Связи с ресурсами добавляются отдельно через AddResources
// в той же транзакции.
func (r *Repository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	extras := order.Extras
	if extras == nil {
		extras = []string{}
	}

	query, args, err := psqlbuilder.Insert("orders").
		Columns(
			"user_id",
			"service_id",
			"order_date",
			"total_price",
			"people_count",
			"status",
			"extras",
			"discount_percent",
		).
		Values(
			order.UserID,
			order.ServiceID,
			order.OrderDate.UTC(),
			order.TotalPrice,
			order.PeopleCount,
			order.Status,
			pq.StringArray(extras),
			order.DiscountPercent,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&order.ID,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		if mapped := mapConstraintError(err); mapped != nil {
			return nil, fmt.Errorf("%w: Create: %v", mapped, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return order, nil
}

// AddResources связывает заказ с ресурсами на интервал [start, end).
// Пересечение с активной занятостью ресурса отклоняется ограничением исключения (ErrResourceBusy).
func (r *Repository) AddResources(ctx context.Context, orderID, serviceID int64, start, end time.Time, resourceIDs []int64) error {
	if len(resourceIDs) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Insert("order_resources").
		Columns("order_id", "service_id", "resource_id", "occupied", "active")
	for _, resourceID := range resourceIDs {
		builder = builder.Values(
			orderID,
			serviceID,
			resourceID,
			squirrel.Expr("tstzrange(?, ?, '[)')", start.UTC(), end.UTC()),
			true,
		)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: AddResources - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		if mapped := mapConstraintError(err); mapped != nil {
			return fmt.Errorf("%w: AddResources order=%d: %v", mapped, orderID, err)
		}
		return fmt.Errorf("%w: AddResources - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// GetByID получает заказ с услугой и ресурсами.
// Внутри транзакции строка заказа блокируется (FOR UPDATE) до конца транзакции.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(orderColumns...).
		From("orders o").
		Join("services s ON s.id = o.service_id").
		Where(squirrel.Eq{"o.id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF o")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	order, err := scanOrder(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan order: %w", ErrScanRow, err)
	}

	if err := r.attachResources(ctx, []*domain.Order{order}); err != nil {
		return nil, err
	}

	return order, nil
}

// GetByUserID получает заказы пользователя, новые сверху
func (r *Repository) GetByUserID(ctx context.Context, userID int64) ([]*domain.Order, error) {
	return r.GetByFilter(ctx, domain.OrdersFilter{UserID: &userID})
}

// GetByFilter получает заказы по фильтру, отсортированные по дате начала (новые сверху)
func (r *Repository) GetByFilter(ctx context.Context, filter domain.OrdersFilter) ([]*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(orderColumns...).
		From("orders o").
		Join("services s ON s.id = o.service_id").
		OrderBy("o.order_date DESC", "o.id DESC")

	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"o.order_date": filter.From.UTC()})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"o.order_date": filter.To.UTC()})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"o.status": *filter.Status})
	}
	if filter.UserID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"o.user_id": *filter.UserID})
	}
	if filter.ServiceID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"o.service_id": *filter.ServiceID})
	}
	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(filter.Limit).Offset(filter.Offset)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFilter - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByFilter - scan order: %w", ErrScanRow, err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByFilter - rows error: %w", ErrScanRow, err)
	}

	if err := r.attachResources(ctx, orders); err != nil {
		return nil, err
	}

	return orders, nil
}

// BusyQuery параметры поиска занятости ресурсов
type BusyQuery struct {
	ResourceIDs    []int64
	From           time.Time // начало окна
	To             time.Time // конец окна
	ExcludeOrderID *int64
}

// GetBusyIntervals возвращает занятость ресурсов не отменёнными заказами,
// интервал которых [order_date, order_date + duration) может пересекаться с окном.
// Точная проверка пересечения выполняется вызывающим.
func (r *Repository) GetBusyIntervals(ctx context.Context, q BusyQuery) ([]domain.BusyInterval, error) {
	if len(q.ResourceIDs) == 0 {
		return []domain.BusyInterval{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"o.id",
		"orr.resource_id",
		"o.order_date",
		"s.duration_minutes",
	).
		From("order_resources orr").
		Join("orders o ON o.id = orr.order_id").
		Join("services s ON s.id = o.service_id").
		Where(squirrel.Eq{"orr.resource_id": q.ResourceIDs}).
		Where(squirrel.NotEq{"o.status": string(domain.StatusCancelled)}).
		Where(squirrel.Lt{"o.order_date": q.To.UTC()}).
		Where(squirrel.Expr("o.order_date + make_interval(mins => s.duration_minutes) > ?", q.From.UTC())).
		OrderBy("orr.resource_id ASC", "o.order_date ASC")

	if q.ExcludeOrderID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"o.id": *q.ExcludeOrderID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBusyIntervals - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBusyIntervals - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	intervals := make([]domain.BusyInterval, 0)
	for rows.Next() {
		var (
			interval domain.BusyInterval
			duration int
		)
		if err := rows.Scan(&interval.OrderID, &interval.ResourceID, &interval.Start, &duration); err != nil {
			return nil, fmt.Errorf("%w: GetBusyIntervals - scan row: %w", ErrScanRow, err)
		}
		interval.Start = interval.Start.UTC()
		interval.End = interval.Start.Add(time.Duration(duration) * time.Minute)
		intervals = append(intervals, interval)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBusyIntervals - rows error: %w", ErrScanRow, err)
	}

	return intervals, nil
}

// UpdateStatus обновляет статус заказа и активность его занятости.
// Возврат из cancelled повторно активирует занятость и может нарушить ограничение исключения
// (ErrResourceBusy). Вызывать внутри транзакции.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("orders").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrOrderNotFound
	}

	query, args, err = psqlbuilder.Update("order_resources").
		Set("active", status.OccupiesCalendar()).
		Where(squirrel.Eq{"order_id": id}).
		Where(squirrel.NotEq{"active": status.OccupiesCalendar()}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build occupancy update: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		if mapped := mapConstraintError(err); mapped != nil {
			return fmt.Errorf("%w: UpdateStatus order=%d: %v", mapped, id, err)
		}
		return fmt.Errorf("%w: UpdateStatus - execute occupancy update: %w", ErrExecQuery, err)
	}

	return nil
}

// UpdateSchedule переносит заказ на новое время и сдвигает занятость его ресурсов.
// Вызывать внутри транзакции после блокировки заказа.
func (r *Repository) UpdateSchedule(ctx context.Context, id int64, start, end time.Time, totalPrice decimal.Decimal) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("orders").
		Set("order_date", start.UTC()).
		Set("total_price", totalPrice).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrOrderNotFound
	}

	query, args, err = psqlbuilder.Update("order_resources").
		Set("occupied", squirrel.Expr("tstzrange(?, ?, '[)')", start.UTC(), end.UTC())).
		Where(squirrel.Eq{"order_id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - build occupancy update: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		if mapped := mapConstraintError(err); mapped != nil {
			return fmt.Errorf("%w: UpdateSchedule order=%d: %v", mapped, id, err)
		}
		return fmt.Errorf("%w: UpdateSchedule - execute occupancy update: %w", ErrExecQuery, err)
	}

	return nil
}

// CompleteOverdue переводит в completed все незавершённые заказы, закончившиеся не позже now.
// Один условный UPDATE: повторный вызов ничего не меняет. Возвращает ID завершённых заказов.
func (r *Repository) CompleteOverdue(ctx context.Context, now time.Time) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("orders").
		Set("status", domain.StatusCompleted).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.NotEq{"status": domain.StatusStrings(domain.TerminalStatuses)}).
		Where(squirrel.Expr(
			"order_date + (SELECT make_interval(mins => s.duration_minutes) FROM services s WHERE s.id = orders.service_id) <= ?",
			now.UTC(),
		)).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CompleteOverdue - build update query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CompleteOverdue - execute update: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: CompleteOverdue - scan id: %w", ErrScanRow, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CompleteOverdue - rows error: %w", ErrScanRow, err)
	}

	return ids, nil
}

// attachResources загружает ресурсы для списка заказов одним запросом
func (r *Repository) attachResources(ctx context.Context, orders []*domain.Order) error {
	if len(orders) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	byID := make(map[int64]*domain.Order, len(orders))
	ids := make([]int64, 0, len(orders))
	for _, o := range orders {
		o.Resources = make([]domain.Resource, 0)
		byID[o.ID] = o
		ids = append(ids, o.ID)
	}

	query, args, err := psqlbuilder.Select(
		"orr.order_id",
		"r.id",
		"r.service_id",
		"r.name",
		"r.capacity",
	).
		From("order_resources orr").
		Join("resources r ON r.id = orr.resource_id").
		Where(squirrel.Eq{"orr.order_id": ids}).
		OrderBy("orr.order_id ASC", "r.id ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: attachResources - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: attachResources - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID int64
			res     domain.Resource
		)
		if err := rows.Scan(&orderID, &res.ID, &res.ServiceID, &res.Name, &res.Capacity); err != nil {
			return fmt.Errorf("%w: attachResources - scan resource: %w", ErrScanRow, err)
		}
		if o, ok := byID[orderID]; ok {
			o.Resources = append(o.Resources, res)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: attachResources - rows error: %w", ErrScanRow, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var (
		order       domain.Order
		service     domain.Service
		extras      pq.StringArray
		description sql.NullString
	)

	err := row.Scan(
		&order.ID,
		&order.UserID,
		&order.ServiceID,
		&order.OrderDate,
		&order.TotalPrice,
		&order.PeopleCount,
		&order.Status,
		&extras,
		&order.DiscountPercent,
		&order.CreatedAt,
		&order.UpdatedAt,
		&service.ID,
		&service.Name,
		&description,
		&service.DurationMinutes,
		&service.WeekdayPrice,
		&service.WeekendPrice,
		&service.StartTime,
		&service.EndTime,
	)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		service.Description = &description.String
	}

	order.OrderDate = order.OrderDate.UTC()
	order.Extras = []string(extras)
	if order.Extras == nil {
		order.Extras = []string{}
	}
	order.Service = &service

	return &order, nil
}

// mapConstraintError переводит нарушения ограничений PostgreSQL в ошибки репозитория
func mapConstraintError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return nil
	}
	switch pqErr.Code {
	case pqExclusionViolation:
		return ErrResourceBusy
	case pqForeignKeyViolation:
		return ErrForeignKey
	default:
		return nil
	}
}
