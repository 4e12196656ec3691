package patient

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-ClinicBooking/pkg/psqlbuilder"
)

// Repository репозиторий пациентов
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория пациентов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет нового пациента
func (r *Repository) Create(ctx context.Context, patient *domain.Patient) (*domain.Patient, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("patients").
		Columns(
			"first_name",
			"paternal_surname",
			"maternal_surname",
			"gender",
			"birth_date",
			"phone",
			"email",
		).
		Values(
			patient.FirstName,
			patient.PaternalSurname,
			patient.MaternalSurname,
			patient.Gender,
			patient.BirthDate,
			patient.Phone,
			patient.Email,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&patient.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	patient.CreatedAt = createdAt.Time
	patient.UpdatedAt = updatedAt.Time

	return patient, nil
}

// GetByID получает пациента по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Patient, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"first_name",
		"paternal_surname",
		"maternal_surname",
		"gender",
		"birth_date",
		"phone",
		"email",
		"created_at",
		"updated_at",
	).
		From("patients").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var patient domain.Patient
	var phone, email sql.NullString
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&patient.ID,
		&patient.FirstName,
		&patient.PaternalSurname,
		&patient.MaternalSurname,
		&patient.Gender,
		&patient.BirthDate,
		&phone,
		&email,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrPatientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan patient: %v", ErrScanRow, err)
	}

	if phone.Valid {
		patient.Phone = &phone.String
	}
	if email.Valid {
		patient.Email = &email.String
	}
	patient.CreatedAt = createdAt.Time
	patient.UpdatedAt = updatedAt.Time

	return &patient, nil
}
