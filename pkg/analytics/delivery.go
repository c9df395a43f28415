package analytics

import (
	"math"
	"time"

	"github.com/jordanlanch/commercedash/pkg/salesfact"
)

// DeliveryBucket groups reviewed deliveries by how long delivery took
type DeliveryBucket struct {
	Label    string  `json:"label"`
	AvgScore float64 `json:"avg_score"`
	Count    int     `json:"count"`
}

// DeliveryMetrics summarizes delivery speed for the window
type DeliveryMetrics struct {
	AvgDeliveryDays float64 `json:"avg_delivery_days"`
	TrendPercent    float64 `json:"trend_percent"` // positive when deliveries got faster
	HasData         bool    `json:"has_data"`
}

// ReviewMetrics summarizes review scores for the window
type ReviewMetrics struct {
	AvgScore   float64 `json:"avg_score"`
	StarRating int     `json:"star_rating"` // avg rounded half up to whole stars
	HasData    bool    `json:"has_data"`
}

var deliveryBucketBounds = []struct {
	label string
	max   int // inclusive upper bound in days, 0 means unbounded
}{
	{"1-3 days", 3},
	{"4-7 days", 7},
	{"8-14 days", 14},
	{"15+ days", 0},
}

// SatisfactionByDelivery averages review scores within fixed delivery-speed
// buckets. Only rows carrying both a delivery duration and a review score
// contribute; the second return is false when no row qualifies, so callers
// can render an explicit no-data state instead of an empty chart.
func SatisfactionByDelivery(ft *salesfact.FactTable) ([]DeliveryBucket, bool) {
	sums := make([]float64, len(deliveryBucketBounds))
	counts := make([]int, len(deliveryBucketBounds))

	for _, row := range ft.Rows {
		if !row.HasDelivery || !row.HasReview || row.DeliveryDays < 1 {
			continue
		}
		for i, b := range deliveryBucketBounds {
			if b.max == 0 || row.DeliveryDays <= b.max {
				sums[i] += float64(row.ReviewScore)
				counts[i]++
				break
			}
		}
	}

	total := 0
	buckets := make([]DeliveryBucket, 0, len(deliveryBucketBounds))
	for i, b := range deliveryBucketBounds {
		bucket := DeliveryBucket{Label: b.label, Count: counts[i]}
		if counts[i] > 0 {
			bucket.AvgScore = sums[i] / float64(counts[i])
		}
		total += counts[i]
		buckets = append(buckets, bucket)
	}
	if total == 0 {
		return nil, false
	}
	return buckets, true
}

// DeliveryTrend reports the mean delivery time and how the latest calendar
// month in the window compares to the month before it. The trend is
// positive when delivery got faster. A side with no deliveries falls back
// to the overall mean, which flattens the trend to 0 rather than inventing
// one.
func DeliveryTrend(ft *salesfact.FactTable) DeliveryMetrics {
	var (
		sum   float64
		count int
		last  time.Time
	)
	for _, row := range ft.Rows {
		if !row.HasDelivery {
			continue
		}
		sum += float64(row.DeliveryDays)
		count++
		if m := monthOf(row.PurchaseTimestamp); m.After(last) {
			last = m
		}
	}
	if count == 0 {
		return DeliveryMetrics{}
	}
	avg := sum / float64(count)

	prior := last.AddDate(0, -1, 0)
	currentAvg := monthDeliveryAvg(ft, last, avg)
	priorAvg := monthDeliveryAvg(ft, prior, avg)

	trend := 0.0
	if priorAvg > 0 {
		trend = (priorAvg - currentAvg) / priorAvg * 100
	}
	return DeliveryMetrics{AvgDeliveryDays: avg, TrendPercent: trend, HasData: true}
}

func monthDeliveryAvg(ft *salesfact.FactTable, month time.Time, fallback float64) float64 {
	var (
		sum   float64
		count int
	)
	for _, row := range ft.Rows {
		if !row.HasDelivery || !monthOf(row.PurchaseTimestamp).Equal(month) {
			continue
		}
		sum += float64(row.DeliveryDays)
		count++
	}
	if count == 0 {
		return fallback
	}
	return sum / float64(count)
}

// ReviewSummary averages all review scores in the window and derives a
// whole-star rating, rounding half up
func ReviewSummary(ft *salesfact.FactTable) ReviewMetrics {
	var (
		sum   float64
		count int
	)
	for _, row := range ft.Rows {
		if !row.HasReview {
			continue
		}
		sum += float64(row.ReviewScore)
		count++
	}
	if count == 0 {
		return ReviewMetrics{}
	}
	avg := sum / float64(count)
	return ReviewMetrics{
		AvgScore:   avg,
		StarRating: int(math.Floor(avg + 0.5)),
		HasData:    true,
	}
}
