package present

import (
	"fmt"
	"time"

	"github.com/jordanlanch/commercedash/pkg/analytics"
	"github.com/jordanlanch/commercedash/pkg/period"
)

const monthLayout = "2006-01"

const noSatisfactionData = "insufficient data: no reviewed deliveries in this period"

// KPICard is one headline tile on the dashboard
type KPICard struct {
	Title         string  `json:"title"`
	Value         float64 `json:"value"`
	Display       string  `json:"display"`
	GrowthPercent float64 `json:"growth_percent"`
	IsCurrency    bool    `json:"is_currency"`
}

// TrendPoint is one month of the revenue trend chart
type TrendPoint struct {
	Month         string  `json:"month"`
	Revenue       float64 `json:"revenue"`
	Orders        int     `json:"orders"`
	AvgOrderValue float64 `json:"avg_order_value"`
}

// TrendChart overlays the current window's monthly series with the
// previous window's, the latter shifted forward a year so both series
// share an axis
type TrendChart struct {
	Current  []TrendPoint `json:"current"`
	Previous []TrendPoint `json:"previous,omitempty"`
}

// CategorySlice is one bar of the category chart
type CategorySlice struct {
	Label   string  `json:"label"`
	Raw     string  `json:"raw"`
	Revenue float64 `json:"revenue"`
	Display string  `json:"display"`
}

// StateDatum is one region of the map chart
type StateDatum struct {
	State   string  `json:"state"`
	Revenue float64 `json:"revenue"`
	Display string  `json:"display"`
}

// SatisfactionChart carries the delivery-speed satisfaction buckets, or an
// explicit placeholder message when the window has no reviewed deliveries
type SatisfactionChart struct {
	Available bool               `json:"available"`
	Message   string             `json:"message,omitempty"`
	Buckets   []SatisfactionSlot `json:"buckets,omitempty"`
}

type SatisfactionSlot struct {
	Bucket   string  `json:"bucket"`
	AvgScore float64 `json:"avg_score"`
	Count    int     `json:"count"`
}

// DeliveryCard and ReviewCard render independently: either can be in its
// not-available state while the other carries data
type DeliveryCard struct {
	Available       bool    `json:"available"`
	AvgDeliveryDays float64 `json:"avg_delivery_days"`
	TrendPercent    float64 `json:"trend_percent"`
	Display         string  `json:"display"`
}

type ReviewCard struct {
	Available  bool    `json:"available"`
	AvgScore   float64 `json:"avg_score"`
	StarRating int     `json:"star_rating"`
	Stars      string  `json:"stars"`
	Display    string  `json:"display"`
}

// Dashboard is the full chart-ready payload for one window
type Dashboard struct {
	Window       period.Window                `json:"window"`
	Previous     period.Window                `json:"previous_window"`
	KPICards     []KPICard                    `json:"kpi_cards"`
	Trend        TrendChart                   `json:"trend"`
	Categories   []CategorySlice              `json:"categories"`
	States       []StateDatum                 `json:"states"`
	Satisfaction SatisfactionChart            `json:"satisfaction"`
	DeliveryCard DeliveryCard                 `json:"delivery_card"`
	ReviewCard   ReviewCard                   `json:"review_card"`
	Fulfillment  analytics.FulfillmentMetrics `json:"fulfillment"`
	GeneratedAt  time.Time                    `json:"generated_at"`
}

// BuildDashboard adapts the metrics overview into chart-ready payloads
func BuildDashboard(o *analytics.DashboardOverview) *Dashboard {
	return &Dashboard{
		Window:       o.Window,
		Previous:     o.Previous,
		KPICards:     KPICards(o.KPIs),
		Trend:        Trend(o.Trend, o.PreviousTrend),
		Categories:   Categories(o.Categories),
		States:       States(o.States),
		Satisfaction: Satisfaction(o.Satisfaction),
		DeliveryCard: Delivery(o.Delivery),
		ReviewCard:   Review(o.Reviews),
		Fulfillment:  o.Fulfillment,
		GeneratedAt:  o.GeneratedAt,
	}
}

// KPICards builds the headline tiles from the KPI metrics
func KPICards(k analytics.KPIMetrics) []KPICard {
	return []KPICard{
		{
			Title:         "Total Revenue",
			Value:         k.TotalRevenue,
			Display:       Currency(k.TotalRevenue),
			GrowthPercent: k.RevenueGrowth,
			IsCurrency:    true,
		},
		{
			Title:         "Total Orders",
			Value:         float64(k.TotalOrders),
			Display:       Number(float64(k.TotalOrders)),
			GrowthPercent: k.OrdersGrowth,
		},
		{
			Title:         "Average Order Value",
			Value:         k.AvgOrderValue,
			Display:       Currency(k.AvgOrderValue),
			GrowthPercent: k.AOVGrowth,
			IsCurrency:    true,
		},
		{
			Title:         "Items Sold",
			Value:         float64(k.TotalItemsSold),
			Display:       Number(float64(k.TotalItemsSold)),
			GrowthPercent: k.MonthlyGrowth,
		},
	}
}

// Trend assembles the overlay chart. Previous-window months are shifted
// forward by one year so they line up under the current series.
func Trend(current, previous []analytics.MonthlyPoint) TrendChart {
	chart := TrendChart{Current: trendSeries(current, 0)}
	if len(previous) > 0 {
		chart.Previous = trendSeries(previous, 1)
	}
	return chart
}

func trendSeries(points []analytics.MonthlyPoint, yearShift int) []TrendPoint {
	out := make([]TrendPoint, 0, len(points))
	for _, p := range points {
		out = append(out, TrendPoint{
			Month:         p.Month.AddDate(yearShift, 0, 0).Format(monthLayout),
			Revenue:       p.Revenue,
			Orders:        p.Orders,
			AvgOrderValue: p.AvgOrderValue,
		})
	}
	return out
}

// Categories normalizes raw category labels for display
func Categories(in []analytics.CategoryRevenue) []CategorySlice {
	out := make([]CategorySlice, 0, len(in))
	for _, c := range in {
		out = append(out, CategorySlice{
			Label:   CategoryLabel(c.Category),
			Raw:     c.Category,
			Revenue: c.Revenue,
			Display: Currency(c.Revenue),
		})
	}
	return out
}

// States formats the per-state revenue for the map chart
func States(in []analytics.StateRevenue) []StateDatum {
	out := make([]StateDatum, 0, len(in))
	for _, s := range in {
		out = append(out, StateDatum{
			State:   s.State,
			Revenue: s.Revenue,
			Display: Currency(s.Revenue),
		})
	}
	return out
}

// Satisfaction renders the bucket chart, or its placeholder when the
// engine reported no qualifying rows
func Satisfaction(buckets []analytics.DeliveryBucket) SatisfactionChart {
	if len(buckets) == 0 {
		return SatisfactionChart{Message: noSatisfactionData}
	}
	slots := make([]SatisfactionSlot, 0, len(buckets))
	for _, b := range buckets {
		slots = append(slots, SatisfactionSlot{
			Bucket:   b.Label,
			AvgScore: b.AvgScore,
			Count:    b.Count,
		})
	}
	return SatisfactionChart{Available: true, Buckets: slots}
}

// Delivery builds the delivery summary card
func Delivery(m analytics.DeliveryMetrics) DeliveryCard {
	if !m.HasData {
		return DeliveryCard{Display: "N/A"}
	}
	return DeliveryCard{
		Available:       true,
		AvgDeliveryDays: m.AvgDeliveryDays,
		TrendPercent:    m.TrendPercent,
		Display:         fmt.Sprintf("%.1f days", m.AvgDeliveryDays),
	}
}

// Review builds the review summary card
func Review(m analytics.ReviewMetrics) ReviewCard {
	if !m.HasData {
		return ReviewCard{Display: "N/A", Stars: Stars(0)}
	}
	return ReviewCard{
		Available:  true,
		AvgScore:   m.AvgScore,
		StarRating: m.StarRating,
		Stars:      Stars(m.StarRating),
		Display:    fmt.Sprintf("%.2f / 5", m.AvgScore),
	}
}
