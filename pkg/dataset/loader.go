package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jordanlanch/commercedash/pkg/domain"
	"github.com/jordanlanch/commercedash/pkg/logger"
)

// Required dataset files, one per table
const (
	OrdersFile     = "orders_dataset.csv"
	OrderItemsFile = "order_items_dataset.csv"
	ProductsFile   = "products_dataset.csv"
	CustomersFile  = "customers_dataset.csv"
	ReviewsFile    = "order_reviews_dataset.csv"
)

// RequiredFiles lists every file the loader needs before it will parse anything
var RequiredFiles = []string{
	OrdersFile,
	OrderItemsFile,
	ProductsFile,
	CustomersFile,
	ReviewsFile,
}

// Timestamp layouts tried in order when parsing date-like columns
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02",
}

// Loader reads the five dataset files from a directory. It owns the loaded
// tables for the process lifetime; Load is expected to run once at startup.
type Loader struct {
	dataPath string
	log      logger.Logger
}

// NewLoader creates a loader rooted at dataPath
func NewLoader(dataPath string, log logger.Logger) *Loader {
	return &Loader{
		dataPath: dataPath,
		log:      log,
	}
}

// Load validates that the data path and every required file exist, then
// parses all five tables. Presence is checked for all files up front so a
// single failure reports the complete set of missing files. Individual
// malformed rows or unparseable timestamps are skipped or left absent,
// never fatal.
func (l *Loader) Load(ctx context.Context) (*Tables, error) {
	if err := l.validateDataPath(); err != nil {
		return nil, err
	}

	start := time.Now()
	tables := &Tables{}

	var err error
	if tables.Orders, err = l.loadOrders(); err != nil {
		return nil, err
	}
	if tables.OrderItems, err = l.loadOrderItems(); err != nil {
		return nil, err
	}
	if tables.Products, err = l.loadProducts(); err != nil {
		return nil, err
	}
	if tables.Customers, err = l.loadCustomers(); err != nil {
		return nil, err
	}
	if tables.Reviews, err = l.loadReviews(); err != nil {
		return nil, err
	}

	l.log.Info("datasets loaded",
		"orders", len(tables.Orders),
		"order_items", len(tables.OrderItems),
		"products", len(tables.Products),
		"customers", len(tables.Customers),
		"reviews", len(tables.Reviews),
		"duration", time.Since(start).String(),
	)

	return tables, nil
}

// validateDataPath checks the root directory and all required files before
// any parsing happens
func (l *Loader) validateDataPath() error {
	if _, err := os.Stat(l.dataPath); err != nil {
		return domain.NewInvalidPathError(l.dataPath)
	}

	var missing []string
	for _, file := range RequiredFiles {
		if _, err := os.Stat(filepath.Join(l.dataPath, file)); err != nil {
			missing = append(missing, file)
		}
	}

	if len(missing) > 0 {
		return domain.NewMissingDataError(missing)
	}
	return nil
}

// table wraps a parsed CSV file: a header index and its data rows
type table struct {
	header map[string]int
	rows   [][]string
}

// field returns the named column of row, or "" when the column is absent
func (t *table) field(row []string, name string) string {
	idx, ok := t.header[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// readTable reads an entire CSV file into memory with a lowercased header map
func (l *Loader) readTable(filename string) (*table, error) {
	f, err := os.Open(filepath.Join(l.dataPath, filename))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filename, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s header: %w", filename, err)
	}

	headerMap := make(map[string]int, len(header))
	for i, col := range header {
		headerMap[strings.ToLower(strings.TrimSpace(col))] = i
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed row, skip it
			l.log.Warn("skipping malformed row", "file", filename, "error", err)
			continue
		}
		rows = append(rows, row)
	}

	return &table{header: headerMap, rows: rows}, nil
}

func (l *Loader) loadOrders() ([]Order, error) {
	t, err := l.readTable(OrdersFile)
	if err != nil {
		return nil, err
	}

	orders := make([]Order, 0, len(t.rows))
	for _, row := range t.rows {
		o := Order{
			OrderID:             t.field(row, "order_id"),
			CustomerID:          t.field(row, "customer_id"),
			Status:              strings.ToLower(t.field(row, "order_status")),
			PurchaseTimestamp:   parseTimestamp(t.field(row, "order_purchase_timestamp")),
			ApprovedAt:          parseTimestamp(t.field(row, "order_approved_at")),
			DeliveredCarrierAt:  parseTimestamp(t.field(row, "order_delivered_carrier_date")),
			DeliveredCustomerAt: parseTimestamp(t.field(row, "order_delivered_customer_date")),
			EstimatedDeliveryAt: parseTimestamp(t.field(row, "order_estimated_delivery_date")),
		}
		if o.OrderID == "" {
			continue
		}
		if !o.PurchaseTimestamp.IsZero() {
			o.Year = o.PurchaseTimestamp.Year()
			o.Month = int(o.PurchaseTimestamp.Month())
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (l *Loader) loadOrderItems() ([]OrderItem, error) {
	t, err := l.readTable(OrderItemsFile)
	if err != nil {
		return nil, err
	}

	items := make([]OrderItem, 0, len(t.rows))
	for _, row := range t.rows {
		item := OrderItem{
			OrderID:      t.field(row, "order_id"),
			ProductID:    t.field(row, "product_id"),
			Price:        parseFloat(t.field(row, "price")),
			FreightValue: parseFloat(t.field(row, "freight_value")),
		}
		if item.OrderID == "" {
			continue
		}
		item.OrderItemID, _ = strconv.Atoi(t.field(row, "order_item_id"))
		items = append(items, item)
	}
	return items, nil
}

func (l *Loader) loadProducts() ([]Product, error) {
	t, err := l.readTable(ProductsFile)
	if err != nil {
		return nil, err
	}

	products := make([]Product, 0, len(t.rows))
	for _, row := range t.rows {
		p := Product{
			ProductID:    t.field(row, "product_id"),
			CategoryName: t.field(row, "product_category_name"),
		}
		if p.ProductID == "" {
			continue
		}
		products = append(products, p)
	}
	return products, nil
}

func (l *Loader) loadCustomers() ([]Customer, error) {
	t, err := l.readTable(CustomersFile)
	if err != nil {
		return nil, err
	}

	customers := make([]Customer, 0, len(t.rows))
	for _, row := range t.rows {
		c := Customer{
			CustomerID: t.field(row, "customer_id"),
			State:      strings.ToUpper(t.field(row, "customer_state")),
			City:       t.field(row, "customer_city"),
		}
		if c.CustomerID == "" {
			continue
		}
		customers = append(customers, c)
	}
	return customers, nil
}

func (l *Loader) loadReviews() ([]Review, error) {
	t, err := l.readTable(ReviewsFile)
	if err != nil {
		return nil, err
	}

	reviews := make([]Review, 0, len(t.rows))
	for _, row := range t.rows {
		r := Review{
			OrderID:           t.field(row, "order_id"),
			CreationTimestamp: parseTimestamp(t.field(row, "review_creation_date")),
			AnswerTimestamp:   parseTimestamp(t.field(row, "review_answer_timestamp")),
		}
		if r.OrderID == "" {
			continue
		}
		r.Score, _ = strconv.Atoi(t.field(row, "review_score"))
		reviews = append(reviews, r)
	}
	return reviews, nil
}

// parseTimestamp tries the known layouts and returns the zero time when
// none match. A zero value means "absent" downstream, not an error.
func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts
		}
	}
	return time.Time{}
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	return v
}
