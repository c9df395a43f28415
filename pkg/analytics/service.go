package analytics

import (
	"context"
	"time"

	"github.com/jordanlanch/commercedash/pkg/dataset"
	"github.com/jordanlanch/commercedash/pkg/logger"
	"github.com/jordanlanch/commercedash/pkg/period"
	"github.com/jordanlanch/commercedash/pkg/salesfact"
)

const topCategories = 10

// DashboardOverview is everything the dashboard needs for one window,
// computed in a single pass so all sections agree on the same facts
type DashboardOverview struct {
	Window        period.Window      `json:"window"`
	Previous      period.Window      `json:"previous_window"`
	KPIs          KPIMetrics         `json:"kpis"`
	Trend         []MonthlyPoint     `json:"trend"`
	PreviousTrend []MonthlyPoint     `json:"previous_trend,omitempty"`
	Categories    []CategoryRevenue  `json:"categories"`
	States        []StateRevenue     `json:"states"`
	Satisfaction  []DeliveryBucket   `json:"satisfaction,omitempty"`
	Delivery      DeliveryMetrics    `json:"delivery"`
	Reviews       ReviewMetrics      `json:"reviews"`
	Fulfillment   FulfillmentMetrics `json:"fulfillment"`
	GeneratedAt   time.Time          `json:"generated_at"`
}

// Service computes dashboard metrics over a loaded dataset. The tables are
// immutable after load, so a single Service is safe for concurrent use.
type Service struct {
	tables *dataset.Tables
	log    logger.Logger
}

func NewService(tables *dataset.Tables, log logger.Logger) *Service {
	return &Service{tables: tables, log: log}
}

// Overview resolves the previous window, builds the fact tables for both
// windows and derives every dashboard section from them
func (s *Service) Overview(ctx context.Context, start, end time.Time) (*DashboardOverview, error) {
	current, previous, err := period.Resolve(start, end)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	currentFacts := salesfact.Build(s.tables, current)
	previousFacts := salesfact.Build(s.tables, previous)

	s.log.Debug("fact tables built",
		"window", current.String(),
		"current_rows", len(currentFacts.Rows),
		"previous_rows", len(previousFacts.Rows),
	)

	overview := &DashboardOverview{
		Window:        current,
		Previous:      previous,
		KPIs:          CalculateKPIs(currentFacts, previousFacts),
		Trend:         MonthlyTrend(currentFacts),
		PreviousTrend: MonthlyTrend(previousFacts),
		Categories:    CategoryBreakdown(currentFacts, topCategories),
		States:        GeographicBreakdown(currentFacts),
		Delivery:      DeliveryTrend(currentFacts),
		Reviews:       ReviewSummary(currentFacts),
		Fulfillment:   Fulfillment(currentFacts),
		GeneratedAt:   time.Now().UTC(),
	}
	if buckets, ok := SatisfactionByDelivery(currentFacts); ok {
		overview.Satisfaction = buckets
	}
	return overview, nil
}

// DefaultWindow is the last full year of data, ending on the most recent
// purchase date. It backs requests that do not pin a window explicitly.
func (s *Service) DefaultWindow() (start, end time.Time, ok bool) {
	min, max, ok := s.tables.DateRange()
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	start = max.AddDate(-1, 0, 1)
	if start.Before(min) {
		start = min
	}
	return start, max, true
}
