package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jordanlanch/commercedash/pkg/salesfact"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func factRow(orderID string, price float64, purchased time.Time) salesfact.Row {
	return salesfact.Row{
		OrderID:           orderID,
		ProductID:         "p-" + orderID,
		Price:             price,
		PurchaseTimestamp: purchased,
	}
}

func TestCalculateKPIs(t *testing.T) {
	t.Run("two orders", func(t *testing.T) {
		current := &salesfact.FactTable{Rows: []salesfact.Row{
			factRow("o1", 100, day(2023, time.March, 5)),
			factRow("o2", 50, day(2023, time.March, 20)),
		}}
		kpis := CalculateKPIs(current, &salesfact.FactTable{})

		assert.Equal(t, 150.0, kpis.TotalRevenue)
		assert.Equal(t, 2, kpis.TotalOrders)
		assert.Equal(t, 75.0, kpis.AvgOrderValue)
		assert.Equal(t, 2, kpis.TotalItemsSold)
	})

	t.Run("multi item orders count once", func(t *testing.T) {
		current := &salesfact.FactTable{Rows: []salesfact.Row{
			factRow("o1", 40, day(2023, time.March, 5)),
			factRow("o1", 60, day(2023, time.March, 5)),
		}}
		kpis := CalculateKPIs(current, &salesfact.FactTable{})

		assert.Equal(t, 100.0, kpis.TotalRevenue)
		assert.Equal(t, 1, kpis.TotalOrders)
		assert.Equal(t, 100.0, kpis.AvgOrderValue)
		assert.Equal(t, 2, kpis.TotalItemsSold)
	})

	t.Run("empty previous window yields zero growth", func(t *testing.T) {
		current := &salesfact.FactTable{Rows: []salesfact.Row{
			factRow("o1", 100, day(2023, time.March, 5)),
		}}
		kpis := CalculateKPIs(current, &salesfact.FactTable{})

		assert.Zero(t, kpis.RevenueGrowth)
		assert.Zero(t, kpis.OrdersGrowth)
		assert.Zero(t, kpis.AOVGrowth)
	})

	t.Run("growth against previous window", func(t *testing.T) {
		current := &salesfact.FactTable{Rows: []salesfact.Row{
			factRow("o1", 150, day(2023, time.March, 5)),
		}}
		previous := &salesfact.FactTable{Rows: []salesfact.Row{
			factRow("p1", 100, day(2023, time.February, 5)),
			factRow("p2", 100, day(2023, time.February, 6)),
		}}
		kpis := CalculateKPIs(current, previous)

		assert.InDelta(t, -25.0, kpis.RevenueGrowth, 1e-9)
		assert.InDelta(t, -50.0, kpis.OrdersGrowth, 1e-9)
		assert.InDelta(t, 50.0, kpis.AOVGrowth, 1e-9) // 150 vs 100
	})

	t.Run("empty current window", func(t *testing.T) {
		kpis := CalculateKPIs(&salesfact.FactTable{}, &salesfact.FactTable{})

		assert.Zero(t, kpis.TotalRevenue)
		assert.Zero(t, kpis.TotalOrders)
		assert.Zero(t, kpis.AvgOrderValue)
	})
}

func TestGrowthRate(t *testing.T) {
	assert.Zero(t, GrowthRate(100, 0))
	assert.Zero(t, GrowthRate(0, 0))
	assert.InDelta(t, 100.0, GrowthRate(200, 100), 1e-9)
	assert.InDelta(t, -50.0, GrowthRate(50, 100), 1e-9)
}

func TestAvgOrderValue(t *testing.T) {
	assert.Zero(t, AvgOrderValue(500, 0))
	assert.InDelta(t, 75.0, AvgOrderValue(150, 2), 1e-9)
}

func TestMonthlyTrend(t *testing.T) {
	ft := &salesfact.FactTable{Rows: []salesfact.Row{
		factRow("o3", 30, day(2023, time.March, 1)),
		factRow("o1", 100, day(2023, time.January, 10)),
		factRow("o2", 50, day(2023, time.January, 20)),
		factRow("o1", 25, day(2023, time.January, 10)),
	}}

	points := MonthlyTrend(ft)

	assert.Len(t, points, 2) // february has no sales, so no point
	assert.Equal(t, day(2023, time.January, 1), points[0].Month)
	assert.Equal(t, day(2023, time.March, 1), points[1].Month)
	assert.Equal(t, 175.0, points[0].Revenue)
	assert.Equal(t, 2, points[0].Orders)
	assert.InDelta(t, 87.5, points[0].AvgOrderValue, 1e-9)
	assert.Equal(t, 30.0, points[1].Revenue)
	assert.Equal(t, 1, points[1].Orders)
}

func TestMonthOverMonthGrowth(t *testing.T) {
	t.Run("last two months", func(t *testing.T) {
		points := []MonthlyPoint{
			{Month: day(2023, time.January, 1), Revenue: 100},
			{Month: day(2023, time.February, 1), Revenue: 200},
			{Month: day(2023, time.March, 1), Revenue: 300},
		}
		assert.InDelta(t, 50.0, MonthOverMonthGrowth(points), 1e-9)
	})

	t.Run("single month", func(t *testing.T) {
		points := []MonthlyPoint{{Month: day(2023, time.January, 1), Revenue: 100}}
		assert.Zero(t, MonthOverMonthGrowth(points))
	})

	t.Run("empty series", func(t *testing.T) {
		assert.Zero(t, MonthOverMonthGrowth(nil))
	})
}
