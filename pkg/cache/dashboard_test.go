package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jordanlanch/commercedash/pkg/analytics"
	"github.com/jordanlanch/commercedash/pkg/logger"
	"github.com/jordanlanch/commercedash/pkg/period"
)

func testWindow() period.Window {
	return period.Window{
		Start: time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2023, time.June, 30, 0, 0, 0, 0, time.UTC),
	}
}

func testOverview() *analytics.DashboardOverview {
	return &analytics.DashboardOverview{
		Window: testWindow(),
		KPIs: analytics.KPIMetrics{
			TotalRevenue:  150,
			TotalOrders:   2,
			AvgOrderValue: 75,
		},
	}
}

func TestStoreRoundTrip(t *testing.T) {
	client, _ := setupTestRedis(t)
	store := NewStore(client, time.Hour, logger.Default())
	ctx := context.Background()

	_, hit := store.GetOverview(ctx, testWindow())
	assert.False(t, hit)

	store.SetOverview(ctx, testOverview())

	got, hit := store.GetOverview(ctx, testWindow())
	require.True(t, hit)
	assert.Equal(t, 150.0, got.KPIs.TotalRevenue)
	assert.Equal(t, 2, got.KPIs.TotalOrders)
}

func TestStoreKeyedByWindow(t *testing.T) {
	client, _ := setupTestRedis(t)
	store := NewStore(client, time.Hour, logger.Default())
	ctx := context.Background()

	store.SetOverview(ctx, testOverview())

	other := period.Window{
		Start: time.Date(2023, time.July, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2023, time.December, 31, 0, 0, 0, 0, time.UTC),
	}
	_, hit := store.GetOverview(ctx, other)
	assert.False(t, hit)
}

func TestStoreCorruptEntryIsAMiss(t *testing.T) {
	client, mr := setupTestRedis(t)
	store := NewStore(client, time.Hour, logger.Default())
	ctx := context.Background()

	require.NoError(t, mr.Set(dashboardKey(testWindow()), "{not json"))

	_, hit := store.GetOverview(ctx, testWindow())
	assert.False(t, hit)

	// corrupt entry is dropped so the next write wins cleanly
	exists, err := client.Exists(ctx, dashboardKey(testWindow()))
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestStoreRedisDownDegradesToMiss(t *testing.T) {
	client, mr := setupTestRedis(t)
	store := NewStore(client, time.Hour, logger.Default())
	ctx := context.Background()

	mr.Close()

	_, hit := store.GetOverview(ctx, testWindow())
	assert.False(t, hit)

	// writes are swallowed too
	store.SetOverview(ctx, testOverview())
}

func TestStoreNilClientIsDisabled(t *testing.T) {
	var store *Store
	ctx := context.Background()

	_, hit := store.GetOverview(ctx, testWindow())
	assert.False(t, hit)
	store.SetOverview(ctx, testOverview())

	deleted, err := store.Invalidate(ctx)
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestStoreInvalidate(t *testing.T) {
	client, _ := setupTestRedis(t)
	store := NewStore(client, time.Hour, logger.Default())
	ctx := context.Background()

	store.SetOverview(ctx, testOverview())

	deleted, err := store.Invalidate(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	_, hit := store.GetOverview(ctx, testWindow())
	assert.False(t, hit)
}
