package source

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Kashikuroni/wb-abc/internal/model"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteSource queries an external order database. The database is opened
// read-only; this tool never writes order data.
//
// Expected schema: an `orders` table with snake_case columns mirroring the
// statistics API fields, dates stored as TEXT:
//
//	CREATE TABLE orders (
//	    date TEXT, last_change_date TEXT, warehouse_name TEXT,
//	    warehouse_type TEXT, country_name TEXT, oblast_okrug_name TEXT,
//	    region_name TEXT, supplier_article TEXT, nm_id INTEGER,
//	    barcode TEXT, category TEXT, subject TEXT, brand TEXT,
//	    tech_size TEXT, income_id INTEGER, is_supply INTEGER,
//	    is_realization INTEGER, total_price REAL, discount_percent INTEGER,
//	    spp REAL, finished_price REAL, price_with_disc REAL,
//	    is_cancel INTEGER, cancel_date TEXT, sticker TEXT, g_number TEXT,
//	    srid TEXT
//	);
type SQLiteSource struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens an order database read-only. The caller must Close it.
func OpenSQLite(path string) (*SQLiteSource, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to open order database: %w", err)
	}

	// mode=ro only takes effect on a file: URI; on a bare path the driver
	// strips the query and opens the database read-write.
	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open order database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't benefit from multiple connections
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping order database: %w", err)
	}

	return &SQLiteSource{db: db, path: path}, nil
}

// Name implements Source.
func (s *SQLiteSource) Name() string { return filepath.Base(s.path) }

// Close releases the database connection.
func (s *SQLiteSource) Close() error {
	return s.db.Close()
}

// Fetch selects the orders whose last_change_date falls inside dr. The
// range is applied in SQL; datetime() normalizes both the stored text and
// the bounds, so dates in either '2006-01-02 15:04:05' or RFC 3339 shape
// compare correctly.
func (s *SQLiteSource) Fetch(ctx context.Context, dr DateRange) ([]model.Order, error) {
	query := `
		SELECT date, last_change_date, warehouse_name, warehouse_type,
		       country_name, oblast_okrug_name, region_name,
		       supplier_article, nm_id, barcode, category, subject, brand,
		       tech_size, income_id, is_supply, is_realization, total_price,
		       discount_percent, spp, finished_price, price_with_disc,
		       is_cancel, cancel_date, sticker, g_number, srid
		FROM orders
	`
	args := []any{}

	if !dr.Unbounded() {
		from, to := dr.Bounds()
		query += `
		WHERE datetime(last_change_date) >= datetime(?)
		  AND datetime(last_change_date) <= datetime(?)
		`
		args = append(args, from.Format("2006-01-02 15:04:05"), to.Format("2006-01-02 15:04:05"))
	}

	query += ` ORDER BY datetime(last_change_date), srid`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var orders []model.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

func scanOrder(rows *sql.Rows) (model.Order, error) {
	var (
		order          model.Order
		date           sql.NullString
		lastChangeDate sql.NullString
		cancelDate     sql.NullString
		warehouseName  sql.NullString
		warehouseType  sql.NullString
		countryName    sql.NullString
		oblastOkrug    sql.NullString
		regionName     sql.NullString
		article        sql.NullString
		barcode        sql.NullString
		category       sql.NullString
		subject        sql.NullString
		brand          sql.NullString
		techSize       sql.NullString
		sticker        sql.NullString
		gNumber        sql.NullString
		srid           sql.NullString
		nmID           sql.NullInt64
		incomeID       sql.NullInt64
		discount       sql.NullInt64
		isSupply       sql.NullBool
		isRealization  sql.NullBool
		isCancel       sql.NullBool
		totalPrice     sql.NullFloat64
		spp            sql.NullFloat64
		finishedPrice  sql.NullFloat64
		priceWithDisc  sql.NullFloat64
	)

	err := rows.Scan(
		&date, &lastChangeDate, &warehouseName, &warehouseType,
		&countryName, &oblastOkrug, &regionName,
		&article, &nmID, &barcode, &category, &subject, &brand,
		&techSize, &incomeID, &isSupply, &isRealization, &totalPrice,
		&discount, &spp, &finishedPrice, &priceWithDisc,
		&isCancel, &cancelDate, &sticker, &gNumber, &srid,
	)
	if err != nil {
		return order, err
	}

	if order.Date, err = parseDBTime(date); err != nil {
		return order, fmt.Errorf("invalid date: %w", err)
	}
	if order.LastChangeDate, err = parseDBTime(lastChangeDate); err != nil {
		return order, fmt.Errorf("invalid last_change_date: %w", err)
	}
	if order.CancelDate, err = parseDBTime(cancelDate); err != nil {
		return order, fmt.Errorf("invalid cancel_date: %w", err)
	}

	order.WarehouseName = warehouseName.String
	order.WarehouseType = warehouseType.String
	order.CountryName = countryName.String
	order.OblastOkrugName = oblastOkrug.String
	order.RegionName = regionName.String
	order.SupplierArticle = article.String
	order.Barcode = barcode.String
	order.Category = category.String
	order.Subject = subject.String
	order.Brand = brand.String
	order.TechSize = techSize.String
	order.Sticker = sticker.String
	order.GNumber = gNumber.String
	order.SRID = srid.String
	order.ProductID = nmID.Int64
	order.IncomeID = incomeID.Int64
	order.DiscountPercent = int(discount.Int64)
	order.IsSupply = isSupply.Bool
	order.IsRealization = isRealization.Bool
	order.IsCancel = isCancel.Bool
	order.TotalPrice = totalPrice.Float64
	order.SPP = spp.Float64
	order.FinishedPrice = finishedPrice.Float64
	order.PriceWithDisc = priceWithDisc.Float64

	return order, nil
}

func parseDBTime(v sql.NullString) (model.Time, error) {
	if !v.Valid || v.String == "" {
		return model.Time{}, nil
	}
	return model.ParseTime(v.String)
}
