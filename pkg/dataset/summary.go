package dataset

import "time"

// Summary describes the loaded dataset: record counts, purchase date range,
// and the coarse distributions the dashboard's overview page shows.
type Summary struct {
	Orders     OrdersSummary     `json:"orders"`
	OrderItems OrderItemsSummary `json:"order_items"`
	Products   ProductsSummary   `json:"products"`
	Customers  CustomersSummary  `json:"customers"`
	Reviews    ReviewsSummary    `json:"reviews"`
}

// OrdersSummary aggregates the orders table
type OrdersSummary struct {
	TotalRecords    int            `json:"total_records"`
	FirstPurchase   *time.Time     `json:"first_purchase,omitempty"`
	LastPurchase    *time.Time     `json:"last_purchase,omitempty"`
	UniqueCustomers int            `json:"unique_customers"`
	StatusCounts    map[string]int `json:"status_counts"`
}

// OrderItemsSummary aggregates the order items table
type OrderItemsSummary struct {
	TotalRecords   int     `json:"total_records"`
	UniqueProducts int     `json:"unique_products"`
	MinPrice       float64 `json:"min_price"`
	MaxPrice       float64 `json:"max_price"`
}

// ProductsSummary aggregates the products table
type ProductsSummary struct {
	TotalRecords     int `json:"total_records"`
	UniqueCategories int `json:"unique_categories"`
}

// CustomersSummary aggregates the customers table
type CustomersSummary struct {
	TotalRecords int `json:"total_records"`
	UniqueStates int `json:"unique_states"`
	UniqueCities int `json:"unique_cities"`
}

// ReviewsSummary aggregates the reviews table
type ReviewsSummary struct {
	TotalRecords      int         `json:"total_records"`
	ScoreDistribution map[int]int `json:"score_distribution"`
	AverageScore      float64     `json:"average_score"`
}

// Summarize walks the loaded tables once per table and builds a Summary.
// It never fails; empty tables produce zero counts.
func (t *Tables) Summarize() Summary {
	s := Summary{}

	s.Orders.TotalRecords = len(t.Orders)
	s.Orders.StatusCounts = make(map[string]int)
	customers := make(map[string]struct{})
	minTS, maxTS, hasRange := t.DateRange()
	if hasRange {
		s.Orders.FirstPurchase = &minTS
		s.Orders.LastPurchase = &maxTS
	}
	for _, o := range t.Orders {
		s.Orders.StatusCounts[o.Status]++
		customers[o.CustomerID] = struct{}{}
	}
	s.Orders.UniqueCustomers = len(customers)

	s.OrderItems.TotalRecords = len(t.OrderItems)
	products := make(map[string]struct{})
	for i, item := range t.OrderItems {
		products[item.ProductID] = struct{}{}
		if i == 0 || item.Price < s.OrderItems.MinPrice {
			s.OrderItems.MinPrice = item.Price
		}
		if item.Price > s.OrderItems.MaxPrice {
			s.OrderItems.MaxPrice = item.Price
		}
	}
	s.OrderItems.UniqueProducts = len(products)

	s.Products.TotalRecords = len(t.Products)
	categories := make(map[string]struct{})
	for _, p := range t.Products {
		if p.CategoryName != "" {
			categories[p.CategoryName] = struct{}{}
		}
	}
	s.Products.UniqueCategories = len(categories)

	s.Customers.TotalRecords = len(t.Customers)
	states := make(map[string]struct{})
	cities := make(map[string]struct{})
	for _, c := range t.Customers {
		states[c.State] = struct{}{}
		cities[c.City] = struct{}{}
	}
	s.Customers.UniqueStates = len(states)
	s.Customers.UniqueCities = len(cities)

	s.Reviews.TotalRecords = len(t.Reviews)
	s.Reviews.ScoreDistribution = make(map[int]int)
	scoreSum := 0
	for _, r := range t.Reviews {
		s.Reviews.ScoreDistribution[r.Score]++
		scoreSum += r.Score
	}
	if len(t.Reviews) > 0 {
		s.Reviews.AverageScore = float64(scoreSum) / float64(len(t.Reviews))
	}

	return s
}
