package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jordanlanch/commercedash/pkg/analytics"
	"github.com/jordanlanch/commercedash/pkg/logger"
	"github.com/jordanlanch/commercedash/pkg/period"
)

const dashboardKeyPrefix = "dashboard:overview"

// Store memoizes computed dashboard overviews keyed by their window. The
// source tables are immutable, so an entry never goes stale; the TTL only
// bounds memory. Every cache failure degrades to a miss so Redis outages
// never take the dashboard down.
type Store struct {
	client *Client
	ttl    time.Duration
	log    logger.Logger
}

func NewStore(client *Client, ttl time.Duration, log logger.Logger) *Store {
	return &Store{client: client, ttl: ttl, log: log}
}

func dashboardKey(w period.Window) string {
	return fmt.Sprintf("%s:%s:%s", dashboardKeyPrefix,
		w.Start.Format("2006-01-02"), w.End.Format("2006-01-02"))
}

// GetOverview returns the cached overview for the window, or false on a
// miss. Decode failures and Redis errors are logged and reported as
// misses.
func (s *Store) GetOverview(ctx context.Context, w period.Window) (*analytics.DashboardOverview, bool) {
	if s == nil || s.client == nil {
		return nil, false
	}

	raw, err := s.client.Get(ctx, dashboardKey(w))
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.Warn("dashboard cache read failed", "key", dashboardKey(w), "error", err)
		}
		return nil, false
	}

	var overview analytics.DashboardOverview
	if err := json.Unmarshal([]byte(raw), &overview); err != nil {
		s.log.Warn("dashboard cache entry corrupt, dropping", "key", dashboardKey(w), "error", err)
		_ = s.client.Delete(ctx, dashboardKey(w))
		return nil, false
	}
	return &overview, true
}

// SetOverview stores the overview for its window. Failures are logged and
// otherwise ignored.
func (s *Store) SetOverview(ctx context.Context, overview *analytics.DashboardOverview) {
	if s == nil || s.client == nil {
		return
	}

	data, err := json.Marshal(overview)
	if err != nil {
		s.log.Warn("dashboard cache encode failed", "error", err)
		return
	}
	key := dashboardKey(overview.Window)
	if err := s.client.Set(ctx, key, data, s.ttl); err != nil {
		s.log.Warn("dashboard cache write failed", "key", key, "error", err)
	}
}

// Invalidate drops every cached overview. Only useful when the dataset on
// disk is replaced and the process reloaded with a shared Redis.
func (s *Store) Invalidate(ctx context.Context) (int, error) {
	if s == nil || s.client == nil {
		return 0, nil
	}
	return s.client.DeletePattern(ctx, dashboardKeyPrefix+":*")
}
