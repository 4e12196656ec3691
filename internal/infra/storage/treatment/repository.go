package treatment

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-ClinicBooking/pkg/psqlbuilder"
	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

// Repository репозиторий планов лечения
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория планов лечения
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет план лечения вместе с датами всех сессий
func (r *Repository) Create(ctx context.Context, plan *domain.TreatmentPlanRecord) (*domain.TreatmentPlanRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("treatment_plans").
		Columns(
			"patient_id",
			"practitioner_id",
			"service_id",
			"start_date",
			"end_date",
			"total_sessions",
			"session_dates",
			"price_per_session",
			"total_cost",
		).
		Values(
			plan.PatientID,
			plan.PractitionerID,
			plan.ServiceID,
			plan.StartDate,
			plan.EndDate,
			plan.TotalSessions,
			pq.Array(datesToStrings(plan.SessionDates)),
			plan.PricePerSession,
			plan.TotalCost,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&plan.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	plan.CreatedAt = createdAt.Time
	plan.UpdatedAt = updatedAt.Time

	return plan, nil
}

// GetByID получает план лечения по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.TreatmentPlanRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"patient_id",
		"practitioner_id",
		"service_id",
		"start_date",
		"end_date",
		"total_sessions",
		"session_dates",
		"price_per_session",
		"total_cost",
		"created_at",
		"updated_at",
	).
		From("treatment_plans").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var plan domain.TreatmentPlanRecord
	var sessionDates []string
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&plan.ID,
		&plan.PatientID,
		&plan.PractitionerID,
		&plan.ServiceID,
		&plan.StartDate,
		&plan.EndDate,
		&plan.TotalSessions,
		pq.Array(&sessionDates),
		&plan.PricePerSession,
		&plan.TotalCost,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrPlanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan plan: %v", ErrScanRow, err)
	}

	plan.SessionDates = make([]types.Date, len(sessionDates))
	for i, s := range sessionDates {
		d, err := types.ParseDate(s)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByID - session date %q: %v", ErrScanRow, s, err)
		}
		plan.SessionDates[i] = d
	}
	plan.CreatedAt = createdAt.Time
	plan.UpdatedAt = updatedAt.Time

	return &plan, nil
}

func datesToStrings(dates []types.Date) []string {
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = d.String()
	}
	return out
}
