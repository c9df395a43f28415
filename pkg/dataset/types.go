package dataset

import "time"

// Order statuses as they appear in the orders file
const (
	StatusDelivered  = "delivered"
	StatusShipped    = "shipped"
	StatusCanceled   = "canceled"
	StatusProcessing = "processing"
	StatusPending    = "pending"
	StatusReturned   = "returned"
)

// Order is one row of the orders file. Timestamp fields that failed to
// parse are zero; downstream aggregates skip those rows rather than fail.
type Order struct {
	OrderID             string
	CustomerID          string
	Status              string
	PurchaseTimestamp   time.Time
	ApprovedAt          time.Time
	DeliveredCarrierAt  time.Time
	DeliveredCustomerAt time.Time
	EstimatedDeliveryAt time.Time
	Year                int // derived from PurchaseTimestamp at load
	Month               int // derived from PurchaseTimestamp at load
}

// OrderItem is one line item of an order
type OrderItem struct {
	OrderID      string
	OrderItemID  int
	ProductID    string
	Price        float64
	FreightValue float64
}

// Product maps a product to its category label, which may be empty
type Product struct {
	ProductID    string
	CategoryName string
}

// Customer carries the geographic fields used by the dashboard
type Customer struct {
	CustomerID string
	State      string
	City       string
}

// Review is one row of the reviews file; at most one per order is expected
// but duplicates are tolerated (joins keep the first)
type Review struct {
	OrderID           string
	Score             int
	CreationTimestamp time.Time
	AnswerTimestamp   time.Time
}

// Tables holds the five raw tables for the process lifetime. They are
// loaded once and never mutated afterwards, so concurrent readers need
// no locking.
type Tables struct {
	Orders     []Order
	OrderItems []OrderItem
	Products   []Product
	Customers  []Customer
	Reviews    []Review
}

// DateRange returns the min and max purchase timestamps across all orders
// with a parseable purchase date. ok is false when no order has one.
func (t *Tables) DateRange() (min, max time.Time, ok bool) {
	for _, o := range t.Orders {
		if o.PurchaseTimestamp.IsZero() {
			continue
		}
		if !ok || o.PurchaseTimestamp.Before(min) {
			min = o.PurchaseTimestamp
		}
		if !ok || o.PurchaseTimestamp.After(max) {
			max = o.PurchaseTimestamp
		}
		ok = true
	}
	return min, max, ok
}
