// Package report renders a finished ABC analysis for people and machines:
// a styled terminal table, CSV for spreadsheets, and JSON for pipelines.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/Kashikuroni/wb-abc/internal/abc"
	"github.com/Kashikuroni/wb-abc/internal/common"
	"github.com/Kashikuroni/wb-abc/internal/model"
	"github.com/Kashikuroni/wb-abc/internal/source"
)

// Report is one ABC analysis run: the ranked items plus the metadata
// needed to tell where and when the numbers came from.
type Report struct {
	GeneratedAt model.Time     `json:"generatedAt"`
	PeriodFrom  model.Time     `json:"periodFrom"`
	PeriodTo    model.Time     `json:"periodTo"`
	Sources     []string       `json:"sources"`
	ThresholdA  float64        `json:"thresholdA"`
	ThresholdB  float64        `json:"thresholdB"`
	Summary     Summary        `json:"summary"`
	Items       model.ABCItems `json:"items"`
}

// Summary holds the headline numbers of a report.
type Summary struct {
	Products     int              `json:"products"`
	Orders       int              `json:"orders"`
	TotalRevenue float64          `json:"totalRevenue"`
	Tiers        []model.TierStat `json:"tiers"`
}

// New assembles a report from classified items and run metadata.
func New(items model.ABCItems, dr source.DateRange, sources []string, opts abc.Options) *Report {
	from, to := dr.Bounds()
	return &Report{
		GeneratedAt: model.NewTime(time.Now()),
		PeriodFrom:  model.NewTime(from),
		PeriodTo:    model.NewTime(to),
		Sources:     sources,
		ThresholdA:  opts.ThresholdA,
		ThresholdB:  opts.ThresholdB,
		Summary: Summary{
			Products:     len(items),
			Orders:       items.TotalOrders(),
			TotalRevenue: items.TotalRevenue(),
			Tiers:        items.TierBreakdown(),
		},
		Items: items,
	}
}

// Empty reports whether the run classified nothing. An empty report is a
// valid outcome, not an error; formatters render it as a "no data" notice.
func (r *Report) Empty() bool {
	return len(r.Items) == 0
}

// Formatter renders a report to a writer.
type Formatter interface {
	Write(w io.Writer, r *Report) error
}

// Formats accepted by ByName.
const (
	FormatTable = "table"
	FormatCSV   = "csv"
	FormatJSON  = "json"
)

// ByName returns the formatter for a format name.
func ByName(name string) (Formatter, error) {
	switch name {
	case FormatTable:
		return NewTableFormatter(), nil
	case FormatCSV:
		return &CSVFormatter{}, nil
	case FormatJSON:
		return &JSONFormatter{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown report format %q", common.ErrUnsupportedFormat, name)
	}
}
