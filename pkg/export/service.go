package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jordanlanch/commercedash/pkg/analytics"
	"github.com/jordanlanch/commercedash/pkg/logger"
)

const (
	FormatCSV   = "csv"
	FormatExcel = "excel"
)

// Service writes a window's aggregates to downloadable files
type Service struct {
	dir string
	log logger.Logger
}

// NewService creates the export service, making sure the target directory
// exists
func NewService(dir string, log logger.Logger) (*Service, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}
	return &Service{dir: dir, log: log}, nil
}

// CreateExport writes the overview's aggregates in the requested format and
// returns the path of the generated file
func (s *Service) CreateExport(overview *analytics.DashboardOverview, format string) (string, error) {
	if format != FormatCSV && format != FormatExcel {
		return "", fmt.Errorf("invalid format %q: must be csv or excel", format)
	}

	name := fmt.Sprintf("dashboard_%s_%s_%d",
		overview.Window.Start.Format("20060102"),
		overview.Window.End.Format("20060102"),
		time.Now().UnixNano())

	var path string
	var err error
	if format == FormatCSV {
		path = filepath.Join(s.dir, name+".csv")
		err = s.generateCSV(path, overview)
	} else {
		path = filepath.Join(s.dir, name+".xlsx")
		err = s.generateExcel(path, overview)
	}
	if err != nil {
		return "", err
	}

	s.log.Info("export created", "path", path, "format", format)
	return path, nil
}

func kpiRows(overview *analytics.DashboardOverview) [][]string {
	k := overview.KPIs
	return [][]string{
		{"Metric", "Value", "Growth %"},
		{"Total Revenue", fmt.Sprintf("%.2f", k.TotalRevenue), fmt.Sprintf("%.2f", k.RevenueGrowth)},
		{"Total Orders", strconv.Itoa(k.TotalOrders), fmt.Sprintf("%.2f", k.OrdersGrowth)},
		{"Average Order Value", fmt.Sprintf("%.2f", k.AvgOrderValue), fmt.Sprintf("%.2f", k.AOVGrowth)},
		{"Items Sold", strconv.Itoa(k.TotalItemsSold), ""},
	}
}

// generateCSV writes the aggregates as one CSV with blank-line separated
// sections
func (s *Service) generateCSV(path string, overview *analytics.DashboardOverview) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	write := func(rows [][]string) error {
		for _, row := range rows {
			if err := writer.Write(row); err != nil {
				return fmt.Errorf("failed to write row: %w", err)
			}
		}
		return writer.Write([]string{})
	}

	header := [][]string{
		{"Window", overview.Window.Start.Format("2006-01-02"), overview.Window.End.Format("2006-01-02")},
	}
	if err := write(header); err != nil {
		return err
	}
	if err := write(kpiRows(overview)); err != nil {
		return err
	}

	trend := [][]string{{"Month", "Revenue", "Orders", "Avg Order Value"}}
	for _, p := range overview.Trend {
		trend = append(trend, []string{
			p.Month.Format("2006-01"),
			fmt.Sprintf("%.2f", p.Revenue),
			strconv.Itoa(p.Orders),
			fmt.Sprintf("%.2f", p.AvgOrderValue),
		})
	}
	if err := write(trend); err != nil {
		return err
	}

	categories := [][]string{{"Category", "Revenue"}}
	for _, c := range overview.Categories {
		categories = append(categories, []string{c.Category, fmt.Sprintf("%.2f", c.Revenue)})
	}
	if err := write(categories); err != nil {
		return err
	}

	states := [][]string{{"State", "Revenue"}}
	for _, st := range overview.States {
		states = append(states, []string{st.State, fmt.Sprintf("%.2f", st.Revenue)})
	}
	return write(states)
}

// generateExcel writes the aggregates as a workbook with one sheet per
// section
func (s *Service) generateExcel(path string, overview *analytics.DashboardOverview) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	writeSheet := func(name string, rows [][]string) error {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet: %w", err)
		}
		for i, row := range rows {
			for j, val := range row {
				cell, err := excelize.CoordinatesToCellName(j+1, i+1)
				if err != nil {
					return err
				}
				f.SetCellValue(name, cell, val)
				if i == 0 {
					f.SetCellStyle(name, cell, cell, headerStyle)
				}
			}
		}
		for j := range rows[0] {
			col, err := excelize.ColumnNumberToName(j + 1)
			if err != nil {
				return err
			}
			f.SetColWidth(name, col, col, 20)
		}
		return nil
	}

	if err := writeSheet("KPIs", kpiRows(overview)); err != nil {
		return err
	}

	trend := [][]string{{"Month", "Revenue", "Orders", "Avg Order Value"}}
	for _, p := range overview.Trend {
		trend = append(trend, []string{
			p.Month.Format("2006-01"),
			fmt.Sprintf("%.2f", p.Revenue),
			strconv.Itoa(p.Orders),
			fmt.Sprintf("%.2f", p.AvgOrderValue),
		})
	}
	if err := writeSheet("Monthly Trend", trend); err != nil {
		return err
	}

	categories := [][]string{{"Category", "Revenue"}}
	for _, c := range overview.Categories {
		categories = append(categories, []string{c.Category, fmt.Sprintf("%.2f", c.Revenue)})
	}
	if err := writeSheet("Categories", categories); err != nil {
		return err
	}

	states := [][]string{{"State", "Revenue"}}
	for _, st := range overview.States {
		states = append(states, []string{st.State, fmt.Sprintf("%.2f", st.Revenue)})
	}
	if err := writeSheet("States", states); err != nil {
		return err
	}

	f.DeleteSheet("Sheet1")

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save file: %w", err)
	}
	return nil
}
