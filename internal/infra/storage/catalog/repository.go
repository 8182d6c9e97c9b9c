package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-VenueBookingService/pkg/psqlbuilder"
)

var serviceColumns = []string{
	"id",
	"name",
	"description",
	"duration_minutes",
	"weekday_price",
	"weekend_price",
	"start_time",
	"end_time",
}

var resourceColumns = []string{
	"id",
	"service_id",
	"name",
	"capacity",
}

// Repository читает каталог услуг и ресурсов.
// Каталог редактируется администратором вне сервиса, здесь только чтение.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetService получает услугу по ID
func (r *Repository) GetService(ctx context.Context, id int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - build select query: %v", ErrBuildQuery, err)
	}

	service, err := scanService(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - scan service: %w", ErrScanRow, err)
	}

	return service, nil
}

// ListServices возвращает все услуги, отсортированные по ID
func (r *Repository) ListServices(ctx context.Context) ([]domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListServices - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	services := make([]domain.Service, 0)
	for rows.Next() {
		service, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListServices - scan service: %w", ErrScanRow, err)
		}
		services = append(services, *service)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListServices - rows error: %w", ErrScanRow, err)
	}

	return services, nil
}

// GetResourcesForService получает ресурсы услуги, отсортированные по ID.
// Для несуществующей услуги возвращает пустой список.
func (r *Repository) GetResourcesForService(ctx context.Context, serviceID int64) ([]domain.Resource, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(resourceColumns...).
		From("resources").
		Where(squirrel.Eq{"service_id": serviceID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetResourcesForService - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetResourcesForService - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	resources := make([]domain.Resource, 0)
	for rows.Next() {
		var res domain.Resource
		if err := rows.Scan(&res.ID, &res.ServiceID, &res.Name, &res.Capacity); err != nil {
			return nil, fmt.Errorf("%w: GetResourcesForService - scan resource: %w", ErrScanRow, err)
		}
		resources = append(resources, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetResourcesForService - rows error: %w", ErrScanRow, err)
	}

	return resources, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanService(row rowScanner) (*domain.Service, error) {
	var service domain.Service
	var description sql.NullString

	err := row.Scan(
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

	return &service, nil
}
