package workdays

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/pkg/logger"
	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

type fakeStore struct {
	days      domain.WeekdaySet
	err       error
	calls     int
	slotCalls int
}

func (f *fakeStore) GetWorkDays(context.Context, int64) (domain.WeekdaySet, error) {
	f.calls++
	return f.days, f.err
}

func (f *fakeStore) GetAvailability(context.Context, int64, types.Date) (*domain.SlotSets, error) {
	f.slotCalls++
	return &domain.SlotSets{Available: []types.TimeString{"09:00"}}, nil
}

func newCache(t *testing.T, store Store) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCache(store, client, time.Minute, logger.NewNop()), mr
}

func TestCache_GetWorkDaysCachesValue(t *testing.T) {
	store := &fakeStore{days: domain.NewWeekdaySet(time.Monday, time.Thursday)}
	cache, mr := newCache(t, store)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		days, err := cache.GetWorkDays(ctx, 5)
		require.NoError(t, err)
		assert.Equal(t, domain.NewWeekdaySet(time.Monday, time.Thursday), days)
	}
	assert.Equal(t, 1, store.calls)

	raw, err := mr.Get("clinic:workdays:5")
	require.NoError(t, err)
	assert.JSONEq(t, `["monday","thursday"]`, raw)
	assert.Equal(t, time.Minute, mr.TTL("clinic:workdays:5"))
}

func TestCache_ExpiresAfterTTL(t *testing.T) {
	store := &fakeStore{days: domain.NewWeekdaySet(time.Monday)}
	cache, mr := newCache(t, store)
	ctx := context.Background()

	_, err := cache.GetWorkDays(ctx, 5)
	require.NoError(t, err)
	mr.FastForward(2 * time.Minute)

	_, err = cache.GetWorkDays(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, 2, store.calls)
}

func TestCache_Invalidate(t *testing.T) {
	store := &fakeStore{days: domain.NewWeekdaySet(time.Monday)}
	cache, mr := newCache(t, store)
	ctx := context.Background()

	_, err := cache.GetWorkDays(ctx, 5)
	require.NoError(t, err)
	require.NoError(t, cache.Invalidate(ctx, 5))
	assert.False(t, mr.Exists("clinic:workdays:5"))

	store.days = domain.NewWeekdaySet(time.Friday)
	days, err := cache.GetWorkDays(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, domain.NewWeekdaySet(time.Friday), days)
}

func TestCache_StoreErrorIsNotCached(t *testing.T) {
	store := &fakeStore{err: errors.New("store down")}
	cache, mr := newCache(t, store)

	_, err := cache.GetWorkDays(context.Background(), 5)
	require.Error(t, err)
	assert.False(t, mr.Exists("clinic:workdays:5"))
}

func TestCache_CorruptedEntryIsRefetched(t *testing.T) {
	store := &fakeStore{days: domain.NewWeekdaySet(time.Sunday)}
	cache, mr := newCache(t, store)
	require.NoError(t, mr.Set("clinic:workdays:5", "not json"))

	days, err := cache.GetWorkDays(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, domain.NewWeekdaySet(time.Sunday), days)
	assert.Equal(t, 1, store.calls)
}

func TestCache_RedisDownFallsBackToStore(t *testing.T) {
	store := &fakeStore{days: domain.NewWeekdaySet(time.Monday)}
	cache, mr := newCache(t, store)
	mr.Close()

	days, err := cache.GetWorkDays(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, domain.NewWeekdaySet(time.Monday), days)
}

func TestCache_AvailabilityIsNotCached(t *testing.T) {
	store := &fakeStore{}
	cache, _ := newCache(t, store)

	for i := 0; i < 2; i++ {
		_, err := cache.GetAvailability(context.Background(), 5, types.NewDate(2025, time.June, 16))
		require.NoError(t, err)
	}
	assert.Equal(t, 2, store.slotCalls)
}
