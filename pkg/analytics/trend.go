package analytics

import (
	"sort"
	"time"

	"github.com/jordanlanch/commercedash/pkg/salesfact"
)

// MonthlyPoint is one calendar month of aggregated sales
type MonthlyPoint struct {
	Month         time.Time `json:"month"` // first day of the month, UTC
	Revenue       float64   `json:"revenue"`
	Orders        int       `json:"orders"`
	AvgOrderValue float64   `json:"avg_order_value"`
}

// MonthlyTrend buckets fact rows by the calendar month of the purchase
// timestamp and returns the series in chronological order. Months with no
// sales are simply absent from the series.
func MonthlyTrend(ft *salesfact.FactTable) []MonthlyPoint {
	type bucket struct {
		revenue float64
		orders  map[string]struct{}
	}
	buckets := make(map[time.Time]*bucket)
	for _, row := range ft.Rows {
		month := monthOf(row.PurchaseTimestamp)
		b, ok := buckets[month]
		if !ok {
			b = &bucket{orders: make(map[string]struct{})}
			buckets[month] = b
		}
		b.revenue += row.Price
		b.orders[row.OrderID] = struct{}{}
	}

	points := make([]MonthlyPoint, 0, len(buckets))
	for month, b := range buckets {
		points = append(points, MonthlyPoint{
			Month:         month,
			Revenue:       b.revenue,
			Orders:        len(b.orders),
			AvgOrderValue: AvgOrderValue(b.revenue, len(b.orders)),
		})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Month.Before(points[j].Month) })
	return points
}

// MonthOverMonthGrowth compares the last two points of a monthly series.
// Fewer than two months, or a zero baseline, yields 0.
func MonthOverMonthGrowth(points []MonthlyPoint) float64 {
	if len(points) < 2 {
		return 0
	}
	last := points[len(points)-1]
	prior := points[len(points)-2]
	return GrowthRate(last.Revenue, prior.Revenue)
}

func monthOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
