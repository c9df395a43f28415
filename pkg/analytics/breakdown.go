package analytics

import (
	"sort"

	"github.com/jordanlanch/commercedash/pkg/salesfact"
)

// CategoryRevenue is the revenue attributed to one product category
type CategoryRevenue struct {
	Category string  `json:"category"`
	Revenue  float64 `json:"revenue"`
}

// StateRevenue is the revenue attributed to one customer state
type StateRevenue struct {
	State   string  `json:"state"`
	Revenue float64 `json:"revenue"`
}

// CategoryBreakdown sums revenue per product category and returns the top
// entries by revenue, descending. Rows whose product had no category are
// excluded. A limit <= 0 returns all categories.
func CategoryBreakdown(ft *salesfact.FactTable, limit int) []CategoryRevenue {
	totals := make(map[string]float64)
	for _, row := range ft.Rows {
		if row.Category == "" {
			continue
		}
		totals[row.Category] += row.Price
	}

	out := make([]CategoryRevenue, 0, len(totals))
	for category, revenue := range totals {
		out = append(out, CategoryRevenue{Category: category, Revenue: revenue})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Revenue != out[j].Revenue {
			return out[i].Revenue > out[j].Revenue
		}
		return out[i].Category < out[j].Category
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// GeographicBreakdown sums revenue per customer state, descending. Rows
// with no customer match carry no state and are excluded.
func GeographicBreakdown(ft *salesfact.FactTable) []StateRevenue {
	totals := make(map[string]float64)
	for _, row := range ft.Rows {
		if row.State == "" {
			continue
		}
		totals[row.State] += row.Price
	}

	out := make([]StateRevenue, 0, len(totals))
	for state, revenue := range totals {
		out = append(out, StateRevenue{State: state, Revenue: revenue})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Revenue != out[j].Revenue {
			return out[i].Revenue > out[j].Revenue
		}
		return out[i].State < out[j].State
	})
	return out
}
