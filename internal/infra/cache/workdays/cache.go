// Package workdays кеширует рабочие дни врачей в Redis между черновиками.
// Занятость слотов не кешируется: она всегда запрашивается у хранилища.
package workdays

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

const keyPrefix = "clinic:workdays:"

// Cache декоратор хранилища с кешем рабочих дней
type Cache struct {
	store  Store
	client redis.Cmdable
	ttl    time.Duration
	logger Logger
}

// NewCache создает новый экземпляр кеша
func NewCache(store Store, client redis.Cmdable, ttl time.Duration, logger Logger) *Cache {
	return &Cache{
		store:  store,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func key(practitionerID int64) string {
	return fmt.Sprintf("%s%d", keyPrefix, practitionerID)
}

// GetWorkDays возвращает рабочие дни из кеша или из хранилища.
// Недоступный Redis не ломает запрос: значение берется из хранилища
func (c *Cache) GetWorkDays(ctx context.Context, practitionerID int64) (domain.WeekdaySet, error) {
	// 1. Пробуем кеш
	raw, err := c.client.Get(ctx, key(practitionerID)).Bytes()
	switch {
	case err == nil:
		var days domain.WeekdaySet
		if err := json.Unmarshal(raw, &days); err == nil {
			return days, nil
		}
		c.logger.Warn("WorkDaysCache: corrupted entry for practitioner=%d, refetching", practitionerID)
	case errors.Is(err, redis.Nil):
		// промах
	default:
		c.logger.Warn("WorkDaysCache: redis get failed for practitioner=%d: %v", practitionerID, err)
	}

	// 2. Идем в хранилище
	days, err := c.store.GetWorkDays(ctx, practitionerID)
	if err != nil {
		return 0, err
	}

	// 3. Сохраняем
	data, err := json.Marshal(days)
	if err != nil {
		return days, nil
	}
	if err := c.client.Set(ctx, key(practitionerID), data, c.ttl).Err(); err != nil {
		c.logger.Warn("WorkDaysCache: redis set failed for practitioner=%d: %v", practitionerID, err)
	}

	return days, nil
}

// GetAvailability проксирует запрос в хранилище без кеширования
func (c *Cache) GetAvailability(ctx context.Context, practitionerID int64, date types.Date) (*domain.SlotSets, error) {
	return c.store.GetAvailability(ctx, practitionerID, date)
}

// Invalidate удаляет рабочие дни врача из кеша
func (c *Cache) Invalidate(ctx context.Context, practitionerID int64) error {
	if err := c.client.Del(ctx, key(practitionerID)).Err(); err != nil {
		return fmt.Errorf("workdays cache: invalidate practitioner=%d: %w", practitionerID, err)
	}
	return nil
}
