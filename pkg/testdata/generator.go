package testdata

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/brianvoe/gofakeit/v6"
)

// GeneratorConfig configures synthetic dataset generation
type GeneratorConfig struct {
	Orders         int
	MaxItems       int     // max line items per order
	ReviewChance   float64 // 0.0-1.0 probability an order has a review
	DeliveredShare float64 // 0.0-1.0 share of orders with status delivered
	Start          time.Time
	End            time.Time
	Seed           int64
}

// DefaultConfig returns a small but realistic dataset spanning one year
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Orders:         200,
		MaxItems:       4,
		ReviewChance:   0.7,
		DeliveredShare: 0.85,
		Start:          time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		End:            time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC),
		Seed:           1,
	}
}

var categories = []string{
	"electronics", "home_appliances", "sports_leisure", "health_beauty",
	"computers_accessories", "furniture_decor", "toys_games", "watches_gifts",
	"books_technical", "garden_tools", "auto_parts", "pet_shop",
}

var states = []string{"CA", "TX", "NY", "FL", "IL", "WA", "GA", "OH", "PA", "AZ"}

var nonDeliveredStatuses = []string{"shipped", "canceled", "processing", "pending", "returned"}

// WriteDataset generates the five dataset files under dir. It is intended
// for tests and local development; the generated data respects referential
// integrity between orders, items, products, customers and reviews.
func WriteDataset(dir string, cfg GeneratorConfig) error {
	faker := gofakeit.New(cfg.Seed)
	rng := rand.New(rand.NewSource(cfg.Seed))

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create dataset dir: %w", err)
	}

	// Product catalogue shared across orders
	productCount := 50
	products := make([][]string, 0, productCount)
	productIDs := make([]string, 0, productCount)
	for i := 0; i < productCount; i++ {
		id := fmt.Sprintf("prod-%04d", i)
		productIDs = append(productIDs, id)
		category := categories[rng.Intn(len(categories))]
		if rng.Float64() < 0.05 {
			category = "" // some products carry no category label
		}
		products = append(products, []string{id, category})
	}

	var orders, items, customers, reviews [][]string
	spanDays := int(cfg.End.Sub(cfg.Start).Hours() / 24)
	if spanDays < 1 {
		spanDays = 1
	}

	for i := 0; i < cfg.Orders; i++ {
		orderID := fmt.Sprintf("order-%05d", i)
		customerID := fmt.Sprintf("cust-%05d", i)
		purchased := cfg.Start.AddDate(0, 0, rng.Intn(spanDays)).
			Add(time.Duration(rng.Intn(24)) * time.Hour)

		status := "delivered"
		deliveredAt := ""
		if rng.Float64() >= cfg.DeliveredShare {
			status = nonDeliveredStatuses[rng.Intn(len(nonDeliveredStatuses))]
		} else {
			days := 1 + rng.Intn(20)
			deliveredAt = purchased.AddDate(0, 0, days).Format("2006-01-02 15:04:05")
		}
		estimated := purchased.AddDate(0, 0, 14+rng.Intn(14))

		orders = append(orders, []string{
			orderID,
			customerID,
			status,
			purchased.Format("2006-01-02 15:04:05"),
			purchased.Add(time.Hour).Format("2006-01-02 15:04:05"),
			"",
			deliveredAt,
			estimated.Format("2006-01-02"),
		})

		customers = append(customers, []string{
			customerID,
			states[rng.Intn(len(states))],
			faker.City(),
		})

		itemCount := 1 + rng.Intn(cfg.MaxItems)
		for j := 0; j < itemCount; j++ {
			price := 5 + rng.Float64()*495
			freight := rng.Float64() * 30
			items = append(items, []string{
				orderID,
				strconv.Itoa(j + 1),
				productIDs[rng.Intn(len(productIDs))],
				fmt.Sprintf("%.2f", price),
				fmt.Sprintf("%.2f", freight),
			})
		}

		if status == "delivered" && rng.Float64() < cfg.ReviewChance {
			reviews = append(reviews, []string{
				orderID,
				strconv.Itoa(1 + rng.Intn(5)),
				purchased.AddDate(0, 0, 2).Format("2006-01-02 15:04:05"),
				purchased.AddDate(0, 0, 3).Format("2006-01-02 15:04:05"),
			})
		}
	}

	files := []struct {
		name   string
		header []string
		rows   [][]string
	}{
		{
			name: "orders_dataset.csv",
			header: []string{
				"order_id", "customer_id", "order_status",
				"order_purchase_timestamp", "order_approved_at",
				"order_delivered_carrier_date", "order_delivered_customer_date",
				"order_estimated_delivery_date",
			},
			rows: orders,
		},
		{
			name:   "order_items_dataset.csv",
			header: []string{"order_id", "order_item_id", "product_id", "price", "freight_value"},
			rows:   items,
		},
		{
			name:   "products_dataset.csv",
			header: []string{"product_id", "product_category_name"},
			rows:   products,
		},
		{
			name:   "customers_dataset.csv",
			header: []string{"customer_id", "customer_state", "customer_city"},
			rows:   customers,
		},
		{
			name:   "order_reviews_dataset.csv",
			header: []string{"order_id", "review_score", "review_creation_date", "review_answer_timestamp"},
			rows:   reviews,
		},
	}

	for _, f := range files {
		if err := writeCSV(filepath.Join(dir, f.name), f.header, f.rows); err != nil {
			return err
		}
	}
	return nil
}

func writeCSV(path string, header []string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	return nil
}
