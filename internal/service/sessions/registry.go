package sessions

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ClinicBooking/internal/service/draft"
)

// Registry хранит черновики записи по идентификатору сессии.
// Каждый черновик синхронизируется сам; реестр только сопоставляет id и черновик.
type Registry struct {
	mu     sync.RWMutex
	drafts map[string]*draft.Draft

	factory      DraftFactory
	idleTTL      time.Duration
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewRegistry создает реестр черновиков.
// idleTTL <= 0 отключает истечение; metrics может быть nil.
func NewRegistry(factory DraftFactory, idleTTL time.Duration, metrics Metrics, logger Logger) *Registry {
	return &Registry{
		drafts:       make(map[string]*draft.Draft),
		factory:      factory,
		idleTTL:      idleTTL,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (r *Registry) WithTimeProvider(tp TimeProvider) *Registry {
	r.timeProvider = tp
	return r
}

// Create открывает новый черновик и возвращает его идентификатор
func (r *Registry) Create() (string, *draft.Draft) {
	id := uuid.NewString()
	d := r.factory()

	r.mu.Lock()
	r.drafts[id] = d
	n := len(r.drafts)
	r.mu.Unlock()

	r.report(n)
	r.logger.Info("Sessions: created draft id=%s", id)
	return id, d
}

// Get возвращает черновик по идентификатору
func (r *Registry) Get(id string) (*draft.Draft, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrDraftNotFound
	}

	r.mu.RLock()
	d, ok := r.drafts[id]
	r.mu.RUnlock()

	if !ok || r.expired(d, r.timeProvider.Now()) {
		return nil, ErrDraftNotFound
	}
	return d, nil
}

// Abandon удаляет черновик; черновик без сохраненной записи просто забывается
func (r *Registry) Abandon(id string) error {
	r.mu.Lock()
	_, ok := r.drafts[id]
	delete(r.drafts, id)
	n := len(r.drafts)
	r.mu.Unlock()

	if !ok {
		return ErrDraftNotFound
	}

	r.report(n)
	r.logger.Info("Sessions: abandoned draft id=%s", id)
	return nil
}

// Len возвращает количество черновиков в реестре
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.drafts)
}

// Cleanup удаляет черновики, не изменявшиеся дольше idleTTL.
// Возвращает количество удаленных.
func (r *Registry) Cleanup() int {
	if r.idleTTL <= 0 {
		return 0
	}
	now := r.timeProvider.Now()

	r.mu.Lock()
	removed := 0
	for id, d := range r.drafts {
		if r.expired(d, now) {
			delete(r.drafts, id)
			removed++
		}
	}
	n := len(r.drafts)
	r.mu.Unlock()

	if removed > 0 {
		r.logger.Info("Sessions: expired %d idle drafts, %d active", removed, n)
	}
	r.report(n)
	return removed
}

// Run периодически удаляет истекшие черновики до отмены контекста
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Cleanup()
		}
	}
}

func (r *Registry) expired(d *draft.Draft, now time.Time) bool {
	return r.idleTTL > 0 && now.Sub(d.UpdatedAt()) > r.idleTTL
}

func (r *Registry) report(n int) {
	if r.metrics != nil {
		r.metrics.SetActiveDrafts(n)
	}
}
