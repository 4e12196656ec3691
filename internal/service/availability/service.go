package availability

import (
	"context"
	"fmt"
	"sort"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

const (
	resultOK          = "ok"
	resultUnavailable = "unavailable"
)

// Resolver разрешает рабочие дни и слоты практикующего врача через хранилище клиники
type Resolver struct {
	store   StoreClient
	metrics Metrics
	logger  Logger
}

// NewResolver создает резолвер доступности; metrics может быть nil
func NewResolver(store StoreClient, metrics Metrics, logger Logger) *Resolver {
	return &Resolver{
		store:   store,
		metrics: metrics,
		logger:  logger,
	}
}

// WorkDays возвращает дни недели, в которые работает врач
func (r *Resolver) WorkDays(ctx context.Context, practitionerID int64) (domain.WeekdaySet, error) {
	if practitionerID <= 0 {
		return 0, fmt.Errorf("%w: practitionerID must be positive", ErrInvalidRequest)
	}

	days, err := r.store.GetWorkDays(ctx, practitionerID)
	if err != nil {
		r.logger.Warn("WorkDays: failed to get work days for practitioner=%d: %v", practitionerID, err)
		r.observe(resultUnavailable)
		return 0, fmt.Errorf("%w: work days of practitioner %d: %v", ErrAvailabilityUnavailable, practitionerID, err)
	}

	r.observe(resultOK)
	return days, nil
}

// SlotsFor возвращает свежее разбиение сетки слотов врача на дату.
// Метки проверяются на формат HH:MM, дубликаты убираются, оба списка сортируются.
// Метка, попавшая в оба списка, считается занятой.
func (r *Resolver) SlotsFor(ctx context.Context, practitionerID int64, date types.Date) (domain.SlotSets, error) {
	if practitionerID <= 0 {
		return domain.SlotSets{}, fmt.Errorf("%w: practitionerID must be positive", ErrInvalidRequest)
	}
	if date.IsZero() {
		return domain.SlotSets{}, fmt.Errorf("%w: date is required", ErrInvalidRequest)
	}

	raw, err := r.store.GetAvailability(ctx, practitionerID, date)
	if err != nil {
		r.logger.Warn("SlotsFor: failed to get availability practitioner=%d date=%s: %v", practitionerID, date, err)
		r.observe(resultUnavailable)
		return domain.SlotSets{}, fmt.Errorf("%w: practitioner %d on %s: %v", ErrAvailabilityUnavailable, practitionerID, date, err)
	}
	if raw == nil {
		raw = &domain.SlotSets{}
	}

	sets, err := normalize(*raw)
	if err != nil {
		r.logger.Error("SlotsFor: malformed availability practitioner=%d date=%s: %v", practitionerID, date, err)
		r.observe(resultUnavailable)
		return domain.SlotSets{}, fmt.Errorf("%w: %v", ErrAvailabilityUnavailable, err)
	}

	r.observe(resultOK)
	r.logger.Info("SlotsFor: practitioner=%d date=%s available=%d occupied=%d",
		practitionerID, date, len(sets.Available), len(sets.Occupied))
	return sets, nil
}

func (r *Resolver) observe(result string) {
	if r.metrics != nil {
		r.metrics.ObserveAvailabilityQuery(result)
	}
}

// normalize приводит ответ хранилища к непересекающимся отсортированным множествам
func normalize(raw domain.SlotSets) (domain.SlotSets, error) {
	occupied := make(map[types.TimeString]struct{}, len(raw.Occupied))
	for _, label := range raw.Occupied {
		if err := label.Validate(); err != nil {
			return domain.SlotSets{}, err
		}
		occupied[label] = struct{}{}
	}

	available := make(map[types.TimeString]struct{}, len(raw.Available))
	for _, label := range raw.Available {
		if err := label.Validate(); err != nil {
			return domain.SlotSets{}, err
		}
		if _, taken := occupied[label]; taken {
			continue
		}
		available[label] = struct{}{}
	}

	return domain.SlotSets{
		Available: sortedLabels(available),
		Occupied:  sortedLabels(occupied),
	}, nil
}

func sortedLabels(set map[types.TimeString]struct{}) []types.TimeString {
	labels := make([]types.TimeString, 0, len(set))
	for label := range set {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i].IsBefore(labels[j]) })
	return labels
}
