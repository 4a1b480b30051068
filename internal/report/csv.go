package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// CSVFormatter renders the items as CSV, one row per product. The header
// row is always written, so an empty report is still a valid CSV file.
type CSVFormatter struct{}

var csvHeader = []string{
	"supplierArticle", "nmId", "barcode", "subject", "brand",
	"category", "ordersCount", "revenue", "revenueShare", "cumulativeShare",
}

// Write implements Formatter.
func (f *CSVFormatter) Write(w io.Writer, r *Report) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, item := range r.Items {
		record := []string{
			item.SupplierArticle,
			strconv.FormatInt(item.ProductID, 10),
			item.Barcode,
			item.Subject,
			item.Brand,
			string(item.Category),
			strconv.Itoa(item.OrdersCount),
			strconv.FormatFloat(item.Revenue, 'f', 2, 64),
			strconv.FormatFloat(item.RevenueShare, 'f', 2, 64),
			strconv.FormatFloat(item.CumulativeShare, 'f', 2, 64),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
