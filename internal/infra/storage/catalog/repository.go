package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-ClinicBooking/pkg/psqlbuilder"
)

// Repository справочник услуг и врачей клиники (только чтение)
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория справочника
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetService получает услугу по ID
func (r *Repository) GetService(ctx context.Context, id int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"category",
		"price",
		"is_treatment",
		"estimated_sessions",
		"is_active",
		"created_at",
		"updated_at",
	).
		From("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetService - build select query: %v", ErrBuildQuery, err)
	}

	var service domain.Service
	var estimatedSessions sql.NullInt32
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&service.ID,
		&service.Name,
		&service.Category,
		&service.Price,
		&service.IsTreatment,
		&estimatedSessions,
		&service.IsActive,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - scan service: %v", ErrScanRow, err)
	}

	if estimatedSessions.Valid {
		n := int(estimatedSessions.Int32)
		service.EstimatedSessions = &n
	}
	service.CreatedAt = createdAt.Time
	service.UpdatedAt = updatedAt.Time

	return &service, nil
}

// GetPractitioner получает врача по ID
func (r *Repository) GetPractitioner(ctx context.Context, id int64) (*domain.Practitioner, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"first_name",
		"last_name",
		"specialty",
		"is_active",
		"created_at",
		"updated_at",
	).
		From("practitioners").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetPractitioner - build select query: %v", ErrBuildQuery, err)
	}

	var practitioner domain.Practitioner
	var specialty sql.NullString
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&practitioner.ID,
		&practitioner.FirstName,
		&practitioner.LastName,
		&specialty,
		&practitioner.IsActive,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrPractitionerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetPractitioner - scan practitioner: %v", ErrScanRow, err)
	}

	if specialty.Valid {
		practitioner.Specialty = &specialty.String
	}
	practitioner.CreatedAt = createdAt.Time
	practitioner.UpdatedAt = updatedAt.Time

	return &practitioner, nil
}
