package analytics

import (
	"sort"

	"github.com/jordanlanch/commercedash/pkg/dataset"
	"github.com/jordanlanch/commercedash/pkg/salesfact"
)

// StatusCount is the number of window orders in one fulfillment status
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// FulfillmentMetrics covers every order placed in the window, delivered or
// not, which is why it reads from the window order list rather than the
// fact rows
type FulfillmentMetrics struct {
	TotalOrders      int           `json:"total_orders"`
	DeliveredOrders  int           `json:"delivered_orders"`
	DeliveryRate     float64       `json:"delivery_rate"`     // %
	CancellationRate float64       `json:"cancellation_rate"` // %
	StatusCounts     []StatusCount `json:"status_counts"`
}

// Fulfillment breaks window orders down by status and derives delivery and
// cancellation rates
func Fulfillment(ft *salesfact.FactTable) FulfillmentMetrics {
	counts := make(map[string]int)
	for _, order := range ft.WindowOrders {
		counts[order.Status]++
	}

	total := len(ft.WindowOrders)
	statuses := make([]StatusCount, 0, len(counts))
	for status, count := range counts {
		statuses = append(statuses, StatusCount{Status: status, Count: count})
	}
	sort.Slice(statuses, func(i, j int) bool {
		if statuses[i].Count != statuses[j].Count {
			return statuses[i].Count > statuses[j].Count
		}
		return statuses[i].Status < statuses[j].Status
	})

	m := FulfillmentMetrics{
		TotalOrders:     total,
		DeliveredOrders: counts[dataset.StatusDelivered],
		StatusCounts:    statuses,
	}
	if total > 0 {
		m.DeliveryRate = float64(counts[dataset.StatusDelivered]) / float64(total) * 100
		m.CancellationRate = float64(counts[dataset.StatusCanceled]) / float64(total) * 100
	}
	return m
}
