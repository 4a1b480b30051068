package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Kashikuroni/wb-abc/internal/model"
)

// CSVSource reads orders from a CSV export whose header row names columns
// after the statistics API JSON fields (nmId, priceWithDisc, isCancel, ...).
// Column matching is case-insensitive, column order is free, unknown
// columns are ignored and missing ones are zero-valued. Only nmId is
// required.
type CSVSource struct {
	r    io.Reader
	name string
}

// NewCSVSource wraps r, which must yield a header-led CSV of orders.
func NewCSVSource(name string, r io.Reader) *CSVSource {
	return &CSVSource{name: name, r: r}
}

// Name implements Source.
func (s *CSVSource) Name() string { return s.name }

// Fetch parses the export and keeps the orders whose lastChangeDate falls
// inside dr.
func (s *CSVSource) Fetch(ctx context.Context, dr DateRange) ([]model.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader := csv.NewReader(s.r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header of %s: %w", s.name, err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := cols["nmid"]; !ok {
		return nil, fmt.Errorf("%s: header has no nmId column", s.name)
	}

	var orders []model.Order
	row := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", s.name, err)
		}
		row++

		order, err := orderFromRecord(cols, record)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", s.name, row, err)
		}
		if dr.Contains(order.LastChangeDate.Time) {
			orders = append(orders, order)
		}
	}
	return orders, nil
}

func orderFromRecord(cols map[string]int, record []string) (model.Order, error) {
	get := func(col string) string {
		i, ok := cols[col]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var order model.Order
	order.WarehouseName = get("warehousename")
	order.WarehouseType = get("warehousetype")
	order.CountryName = get("countryname")
	order.OblastOkrugName = get("oblastokrugname")
	order.RegionName = get("regionname")
	order.SupplierArticle = get("supplierarticle")
	order.Barcode = get("barcode")
	order.Category = get("category")
	order.Subject = get("subject")
	order.Brand = get("brand")
	order.TechSize = get("techsize")
	order.Sticker = get("sticker")
	order.GNumber = get("gnumber")
	order.SRID = get("srid")

	var err error
	if order.Date, err = parseTimeField(get, "date"); err != nil {
		return order, err
	}
	if order.LastChangeDate, err = parseTimeField(get, "lastchangedate"); err != nil {
		return order, err
	}
	if order.CancelDate, err = parseTimeField(get, "canceldate"); err != nil {
		return order, err
	}
	if order.ProductID, err = parseIntField(get, "nmid"); err != nil {
		return order, err
	}
	if order.IncomeID, err = parseIntField(get, "incomeid"); err != nil {
		return order, err
	}

	discount, err := parseIntField(get, "discountpercent")
	if err != nil {
		return order, err
	}
	order.DiscountPercent = int(discount)

	if order.TotalPrice, err = parseFloatField(get, "totalprice"); err != nil {
		return order, err
	}
	if order.SPP, err = parseFloatField(get, "spp"); err != nil {
		return order, err
	}
	if order.FinishedPrice, err = parseFloatField(get, "finishedprice"); err != nil {
		return order, err
	}
	if order.PriceWithDisc, err = parseFloatField(get, "pricewithdisc"); err != nil {
		return order, err
	}
	if order.IsSupply, err = parseBoolField(get, "issupply"); err != nil {
		return order, err
	}
	if order.IsRealization, err = parseBoolField(get, "isrealization"); err != nil {
		return order, err
	}
	if order.IsCancel, err = parseBoolField(get, "iscancel"); err != nil {
		return order, err
	}

	return order, nil
}

func parseIntField(get func(string) string, col string) (int64, error) {
	v := get(col)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", col, v, err)
	}
	return n, nil
}

func parseFloatField(get func(string) string, col string) (float64, error) {
	v := get(col)
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", col, v, err)
	}
	return f, nil
}

func parseBoolField(get func(string) string, col string) (bool, error) {
	v := get(col)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", col, v, err)
	}
	return b, nil
}

func parseTimeField(get func(string) string, col string) (model.Time, error) {
	v := get(col)
	if v == "" {
		return model.Time{}, nil
	}
	t, err := model.ParseTime(v)
	if err != nil {
		return model.Time{}, fmt.Errorf("invalid %s %q: %w", col, v, err)
	}
	return t, nil
}
