// Package source loads Wildberries order history from local exports: JSON
// dumps of the Statistics API, CSV exports, and read-only SQLite order
// databases. Every source fetches orders for a date range over
// lastChangeDate, the field the Statistics API itself filters on.
package source

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Kashikuroni/wb-abc/internal/common"
	"github.com/Kashikuroni/wb-abc/internal/model"
)

// maxRangeAgeDays is how far back a report may start. The Statistics API
// keeps 90 days of order history, so anything older cannot be fetched
// consistently.
const maxRangeAgeDays = 90

// DateRange selects orders by lastChangeDate. From is required; a zero To
// means the single calendar day of From. The upper bound is inclusive
// through the end of To's calendar day. The zero DateRange is unbounded
// and matches every order.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Unbounded reports whether the range matches everything. Inspection
// fetches use this; Validate rejects it for reports.
func (dr DateRange) Unbounded() bool {
	return dr.From.IsZero() && dr.To.IsZero()
}

// Validate applies the rules the report layer enforces before any data is
// read: From must be set, must not be in the future, and must not start
// more than 90 calendar days before now; To, when set, must not precede
// From.
func (dr DateRange) Validate(now time.Time) error {
	if dr.From.IsZero() {
		return fmt.Errorf("%w: start date is required", common.ErrInvalidDateRange)
	}
	if startOfDay(dr.From).After(now) {
		return fmt.Errorf("%w: start date %s is in the future", common.ErrInvalidDateRange, dr.From.Format("2006-01-02"))
	}
	if daysBetween(dr.From, now) > maxRangeAgeDays {
		return fmt.Errorf("%w: start date %s is more than %d days ago", common.ErrInvalidDateRange, dr.From.Format("2006-01-02"), maxRangeAgeDays)
	}
	if !dr.To.IsZero() && dr.To.Before(dr.From) {
		return fmt.Errorf("%w: end date %s is before start date %s", common.ErrInvalidDateRange, dr.To.Format("2006-01-02"), dr.From.Format("2006-01-02"))
	}
	return nil
}

// Bounds returns the effective inclusive window: From through the end of
// the last day of the range.
func (dr DateRange) Bounds() (time.Time, time.Time) {
	to := dr.To
	if to.IsZero() {
		to = dr.From
	}
	return dr.From, endOfDay(to)
}

// Contains reports whether t falls inside the range.
func (dr DateRange) Contains(t time.Time) bool {
	if dr.Unbounded() {
		return true
	}
	from, to := dr.Bounds()
	return !t.Before(from) && !t.After(to)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// endOfDay is the last representable second of t's calendar day, mirroring
// the upstream "+1 day -1 second" upper bound.
func endOfDay(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, 1).Add(-time.Second)
}

// daysBetween counts whole calendar days from a's date to b's date. Both
// dates are re-anchored at UTC midnight so a DST transition inside the span
// cannot shorten the count.
func daysBetween(a, b time.Time) int {
	ad := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bd := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bd.Sub(ad) / (24 * time.Hour))
}

// Source is a collection of orders that can be fetched for a date range.
type Source interface {
	// Name identifies the source in logs and report metadata.
	Name() string
	// Fetch returns the orders whose lastChangeDate falls inside dr.
	Fetch(ctx context.Context, dr DateRange) ([]model.Order, error)
}

// Kind is a supported order-source format.
type Kind string

// Supported source kinds.
const (
	KindJSON   Kind = "json"
	KindCSV    Kind = "csv"
	KindSQLite Kind = "sqlite"
)

// KindForPath picks the source format from a file extension.
func KindForPath(path string) (Kind, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return KindJSON, nil
	case ".csv":
		return KindCSV, nil
	case ".db", ".sqlite", ".sqlite3":
		return KindSQLite, nil
	default:
		return "", fmt.Errorf("%w: cannot determine source format of %q", common.ErrUnsupportedFormat, path)
	}
}

// Merge combines order batches from several sources into one slice,
// dropping duplicates by srid. The first occurrence wins; orders without
// an srid are never treated as duplicates.
func Merge(batches ...[]model.Order) []model.Order {
	seen := make(map[string]bool)
	var merged []model.Order
	for _, batch := range batches {
		for _, order := range batch {
			if order.SRID != "" {
				if seen[order.SRID] {
					continue
				}
				seen[order.SRID] = true
			}
			merged = append(merged, order)
		}
	}
	return merged
}
