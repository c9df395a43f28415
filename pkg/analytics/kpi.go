package analytics

import (
	"github.com/jordanlanch/commercedash/pkg/salesfact"
)

// KPIMetrics holds the headline numbers for a window compared against the
// immediately preceding window of equal length
type KPIMetrics struct {
	TotalRevenue   float64 `json:"total_revenue"`
	RevenueGrowth  float64 `json:"revenue_growth"`   // vs previous window, %
	MonthlyGrowth  float64 `json:"monthly_growth"`   // last two months of the current window, %
	AvgOrderValue  float64 `json:"avg_order_value"`  // revenue / distinct orders
	AOVGrowth      float64 `json:"aov_growth"`       // vs previous window, %
	TotalOrders    int     `json:"total_orders"`     // distinct order count
	OrdersGrowth   float64 `json:"orders_growth"`    // vs previous window, %
	TotalItemsSold int     `json:"total_items_sold"` // fact row count
}

// TotalRevenue sums item prices over the fact rows
func TotalRevenue(ft *salesfact.FactTable) float64 {
	total := 0.0
	for _, row := range ft.Rows {
		total += row.Price
	}
	return total
}

// TotalOrders counts distinct order IDs in the fact rows
func TotalOrders(ft *salesfact.FactTable) int {
	seen := make(map[string]struct{})
	for _, row := range ft.Rows {
		seen[row.OrderID] = struct{}{}
	}
	return len(seen)
}

// AvgOrderValue is total revenue over distinct orders, 0 when there are no
// orders. This single definition backs every AOV figure the engine
// produces.
func AvgOrderValue(revenue float64, orders int) float64 {
	if orders == 0 {
		return 0
	}
	return revenue / float64(orders)
}

// GrowthRate is the percentage change from previous to current. A zero or
// negative baseline yields 0: no baseline means no signal, never a division
// error or an infinity.
func GrowthRate(current, previous float64) float64 {
	if previous <= 0 {
		return 0
	}
	return (current - previous) / previous * 100
}

// CalculateKPIs computes the KPI set for the current window with growth
// rates against the previous one. Empty inputs produce zeros throughout.
func CalculateKPIs(current, previous *salesfact.FactTable) KPIMetrics {
	currentRevenue := TotalRevenue(current)
	previousRevenue := TotalRevenue(previous)

	currentOrders := TotalOrders(current)
	previousOrders := TotalOrders(previous)

	currentAOV := AvgOrderValue(currentRevenue, currentOrders)
	previousAOV := AvgOrderValue(previousRevenue, previousOrders)

	trend := MonthlyTrend(current)

	return KPIMetrics{
		TotalRevenue:   currentRevenue,
		RevenueGrowth:  GrowthRate(currentRevenue, previousRevenue),
		MonthlyGrowth:  MonthOverMonthGrowth(trend),
		AvgOrderValue:  currentAOV,
		AOVGrowth:      GrowthRate(currentAOV, previousAOV),
		TotalOrders:    currentOrders,
		OrdersGrowth:   GrowthRate(float64(currentOrders), float64(previousOrders)),
		TotalItemsSold: len(current.Rows),
	}
}
