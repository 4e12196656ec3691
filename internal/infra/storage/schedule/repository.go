package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-ClinicBooking/pkg/pgerr"
	"github.com/m04kA/SMC-ClinicBooking/pkg/psqlbuilder"
)

// weekdayConstraint уникальный индекс (practitioner_id, weekday)
const weekdayConstraint = "uq_schedule_rules_practitioner_weekday"

var ruleColumns = []string{
	"id",
	"practitioner_id",
	"weekday",
	"start_time",
	"end_time",
	"slot_duration_minutes",
	"created_at",
	"updated_at",
}

// Repository репозиторий недельного расписания врачей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByPractitioner получает все правила врача, упорядоченные по дню недели
func (r *Repository) GetByPractitioner(ctx context.Context, practitionerID int64) ([]*domain.ScheduleRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(ruleColumns...).
		From("schedule_rules").
		Where(squirrel.Eq{"practitioner_id": practitionerID}).
		OrderBy("weekday ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByPractitioner - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPractitioner - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]*domain.ScheduleRule, 0)
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByPractitioner - scan row: %v", ErrScanRow, err)
		}
		rules = append(rules, rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByPractitioner - rows error: %v", ErrScanRow, err)
	}

	return rules, nil
}

// GetByPractitionerAndWeekday получает правило врача на день недели
func (r *Repository) GetByPractitionerAndWeekday(ctx context.Context, practitionerID int64, weekday time.Weekday) (*domain.ScheduleRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(ruleColumns...).
		From("schedule_rules").
		Where(squirrel.Eq{"practitioner_id": practitionerID}).
		Where(squirrel.Eq{"weekday": int(weekday)}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByPractitionerAndWeekday - build select query: %v", ErrBuildQuery, err)
	}

	rule, err := scanRule(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrRuleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPractitionerAndWeekday - scan rule: %v", ErrScanRow, err)
	}

	return rule, nil
}

// ReplaceForPractitioner заменяет всё недельное расписание врача.
// Должен вызываться внутри транзакции, иначе замена не атомарна.
func (r *Repository) ReplaceForPractitioner(ctx context.Context, practitionerID int64, rules []*domain.ScheduleRule) ([]*domain.ScheduleRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	// 1. Удаляем старые правила
	query, args, err := psqlbuilder.Delete("schedule_rules").
		Where(squirrel.Eq{"practitioner_id": practitionerID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ReplaceForPractitioner - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: ReplaceForPractitioner - execute delete: %v", ErrExecQuery, err)
	}

	// 2. Вставляем новые
	created := make([]*domain.ScheduleRule, 0, len(rules))
	for _, rule := range rules {
		rule.PractitionerID = practitionerID

		query, args, err := psqlbuilder.Insert("schedule_rules").
			Columns("practitioner_id", "weekday", "start_time", "end_time", "slot_duration_minutes").
			Values(rule.PractitionerID, int(rule.Weekday), rule.StartTime, rule.EndTime, rule.SlotDurationMinutes).
			Suffix("RETURNING id, created_at, updated_at").
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("%w: ReplaceForPractitioner - build insert query: %v", ErrBuildQuery, err)
		}

		var createdAt, updatedAt sql.NullTime
		err = executor.QueryRowContext(ctx, query, args...).Scan(&rule.ID, &createdAt, &updatedAt)
		if err != nil {
			if pgerr.IsUniqueViolation(err, weekdayConstraint) {
				return nil, fmt.Errorf("%w: %s", ErrDuplicateWeekday, domain.WeekdayName(rule.Weekday))
			}
			return nil, fmt.Errorf("%w: ReplaceForPractitioner - execute insert: %v", ErrExecQuery, err)
		}

		rule.CreatedAt = createdAt.Time
		rule.UpdatedAt = updatedAt.Time
		created = append(created, rule)
	}

	return created, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRule(row rowScanner) (*domain.ScheduleRule, error) {
	var rule domain.ScheduleRule
	var weekday int
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&rule.ID,
		&rule.PractitionerID,
		&weekday,
		&rule.StartTime,
		&rule.EndTime,
		&rule.SlotDurationMinutes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	rule.Weekday = time.Weekday(weekday)
	rule.CreatedAt = createdAt.Time
	rule.UpdatedAt = updatedAt.Time
	return &rule, nil
}
