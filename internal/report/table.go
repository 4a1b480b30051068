package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/Kashikuroni/wb-abc/internal/cli"
	"github.com/Kashikuroni/wb-abc/internal/model"
)

// TableFormatter renders a report as a styled terminal table with a
// summary box.
type TableFormatter struct{}

// NewTableFormatter creates a terminal table formatter.
func NewTableFormatter() *TableFormatter {
	return &TableFormatter{}
}

// Write implements Formatter.
func (f *TableFormatter) Write(w io.Writer, r *Report) error {
	var sections []string

	sections = append(sections, cli.FormatTitle("ABC Revenue Analysis"))
	sections = append(sections, f.formatHeader(r))

	if r.Empty() {
		notice := cli.FormatWarning("No orders in the selected period; nothing to classify.")
		sections = append(sections, notice)
		_, err := fmt.Fprintln(w, strings.Join(sections, "\n"))
		return err
	}

	sections = append(sections, f.formatItems(r.Items))
	sections = append(sections, f.formatSummary(r.Summary))

	_, err := fmt.Fprintln(w, strings.Join(sections, "\n\n"))
	return err
}

func (f *TableFormatter) formatHeader(r *Report) string {
	period := fmt.Sprintf("%s Period: %s to %s",
		cli.CalendarIcon,
		r.PeriodFrom.Format("2006-01-02"),
		r.PeriodTo.Format("2006-01-02"))

	lines := []string{cli.SubtitleStyle.UnsetMargins().Render(period)}
	if len(r.Sources) > 0 {
		lines = append(lines, cli.SubtleStyle.Render("Sources: "+strings.Join(r.Sources, ", ")))
	}
	lines = append(lines, cli.SubtleStyle.Render(
		fmt.Sprintf("Thresholds: A up to %.0f%%, B up to %.0f%%", r.ThresholdA, r.ThresholdB)))

	return strings.Join(lines, "\n")
}

// Column widths of the items table.
const (
	rankWidth    = 4
	catWidth     = 3
	articleWidth = 20
	idWidth      = 10
	subjectWidth = 14
	brandWidth   = 14
	ordersWidth  = 7
	revenueWidth = 13
	shareWidth   = 8
	cumWidth     = 8
)

func (f *TableFormatter) formatItems(items model.ABCItems) string {
	header := strings.Join([]string{
		padRight("#", rankWidth),
		padRight("CAT", catWidth),
		padRight("ARTICLE", articleWidth),
		padRight("NM ID", idWidth),
		padRight("SUBJECT", subjectWidth),
		padRight("BRAND", brandWidth),
		padLeft("ORDERS", ordersWidth),
		padLeft("REVENUE", revenueWidth),
		padLeft("SHARE%", shareWidth),
		padLeft("CUM%", cumWidth),
	}, " ")

	rows := []string{
		cli.TableHeaderStyle.Render(header),
		cli.SubtleStyle.Render(strings.Repeat("─", runewidth.StringWidth(header))),
	}

	for i, item := range items {
		row := strings.Join([]string{
			padRight(fmt.Sprintf("%d", i+1), rankWidth),
			padRight(string(item.Category), catWidth),
			padRight(item.SupplierArticle, articleWidth),
			padRight(fmt.Sprintf("%d", item.ProductID), idWidth),
			padRight(item.Subject, subjectWidth),
			padRight(item.Brand, brandWidth),
			padLeft(fmt.Sprintf("%d", item.OrdersCount), ordersWidth),
			padLeft(fmt.Sprintf("%.2f", item.Revenue), revenueWidth),
			padLeft(fmt.Sprintf("%.2f", item.RevenueShare), shareWidth),
			padLeft(fmt.Sprintf("%.2f", item.CumulativeShare), cumWidth),
		}, " ")
		rows = append(rows, cli.CategoryStyle(item.Category).Render(row))
	}

	return strings.Join(rows, "\n")
}

func (f *TableFormatter) formatSummary(s Summary) string {
	head := fmt.Sprintf("%s Products: %d   Orders: %d   %s Revenue: %.2f",
		cli.BoxIcon, s.Products, s.Orders, cli.MoneyIcon, s.TotalRevenue)

	lines := []string{head, ""}
	for _, tier := range s.Tiers {
		line := fmt.Sprintf("%s  %3d products  %5d orders  %14.2f revenue  %6.2f%%",
			cli.FormatCategory(tier.Category),
			tier.Products, tier.Orders, tier.Revenue, tier.RevenueShare)
		lines = append(lines, line)
	}

	return cli.RenderBox("Summary", strings.Join(lines, "\n"))
}

// padRight truncates to the column width and left-aligns. Widths are
// display cells, not bytes, so Cyrillic article names line up.
func padRight(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, "…"), width)
}

func padLeft(s string, width int) string {
	return runewidth.FillLeft(runewidth.Truncate(s, width, "…"), width)
}
