package salesfact

import (
	"time"

	"github.com/jordanlanch/commercedash/pkg/dataset"
	"github.com/jordanlanch/commercedash/pkg/period"
)

// Row is one denormalized fact row: an order item joined with its order,
// product, customer and review. Rows are built fresh per window and never
// mutated afterwards.
type Row struct {
	OrderID           string
	OrderItemID       int
	ProductID         string
	Price             float64
	FreightValue      float64
	CustomerID        string
	PurchaseTimestamp time.Time

	// From the product join; empty when the product is unknown or uncategorized
	Category string

	// From the customer join; empty when the customer is unknown
	State string
	City  string

	// DeliveryDays is elapsed calendar days from purchase to customer
	// delivery. Valid only when HasDelivery is true.
	DeliveryDays int
	HasDelivery  bool

	// ReviewScore is valid only when HasReview is true
	ReviewScore int
	HasReview   bool
}

// FactTable is the analysis-ready table for one window. It also carries the
// window-filtered order set so order-level metrics (status distribution,
// zero-item orders) can be computed independently of the item join.
type FactTable struct {
	Window period.Window
	Rows   []Row

	// Orders within the window regardless of status or items. An order with
	// zero items contributes no fact rows but still appears here.
	WindowOrders []dataset.Order

	// Capability flags, computed once at build time. Consumers check these
	// instead of re-scanning columns per chart.
	HasDeliveryDays bool
	HasReviewScores bool
}

// Build assembles the fact table for a window:
//
//  1. select orders purchased inside the window (inclusive on both ends),
//  2. restrict the joinable set to delivered orders with a delivery
//     timestamp, computing delivery days for them,
//  3. join order items against that set, then left-join products,
//     customers and reviews.
//
// Rows with an unknown product or customer keep their other fields and
// still count toward revenue. Duplicate reviews for an order are resolved
// by keeping the first seen.
func Build(tables *dataset.Tables, window period.Window) *FactTable {
	ft := &FactTable{Window: window}

	// Pass 1: window filter on purchase timestamp
	delivered := make(map[string]*dataset.Order)
	for i := range tables.Orders {
		o := &tables.Orders[i]
		if o.PurchaseTimestamp.IsZero() || !window.Contains(o.PurchaseTimestamp) {
			continue
		}
		ft.WindowOrders = append(ft.WindowOrders, *o)
		if o.Status == dataset.StatusDelivered && !o.DeliveredCustomerAt.IsZero() {
			delivered[o.OrderID] = o
		}
	}

	if len(delivered) == 0 {
		return ft
	}

	// Join indexes over the full base tables
	productsByID := make(map[string]dataset.Product, len(tables.Products))
	for _, p := range tables.Products {
		productsByID[p.ProductID] = p
	}
	customersByID := make(map[string]dataset.Customer, len(tables.Customers))
	for _, c := range tables.Customers {
		customersByID[c.CustomerID] = c
	}
	reviewsByOrder := make(map[string]dataset.Review, len(tables.Reviews))
	for _, r := range tables.Reviews {
		if _, seen := reviewsByOrder[r.OrderID]; !seen {
			reviewsByOrder[r.OrderID] = r
		}
	}

	// Pass 2: items against the delivered set, then the left joins
	for _, item := range tables.OrderItems {
		order, ok := delivered[item.OrderID]
		if !ok {
			continue
		}

		row := Row{
			OrderID:           item.OrderID,
			OrderItemID:       item.OrderItemID,
			ProductID:         item.ProductID,
			Price:             item.Price,
			FreightValue:      item.FreightValue,
			CustomerID:        order.CustomerID,
			PurchaseTimestamp: order.PurchaseTimestamp,
			DeliveryDays:      deliveryDays(order),
			HasDelivery:       true,
		}

		if p, ok := productsByID[item.ProductID]; ok {
			row.Category = p.CategoryName
		}
		if c, ok := customersByID[order.CustomerID]; ok {
			row.State = c.State
			row.City = c.City
		}
		if r, ok := reviewsByOrder[item.OrderID]; ok {
			row.ReviewScore = r.Score
			row.HasReview = true
		}

		ft.Rows = append(ft.Rows, row)

		if row.HasDelivery {
			ft.HasDeliveryDays = true
		}
		if row.HasReview {
			ft.HasReviewScores = true
		}
	}

	return ft
}

func deliveryDays(o *dataset.Order) int {
	return int(o.DeliveredCustomerAt.Sub(o.PurchaseTimestamp).Hours() / 24)
}
