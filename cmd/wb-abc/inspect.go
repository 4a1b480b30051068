package main

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Kashikuroni/wb-abc/internal/cli"
	"github.com/Kashikuroni/wb-abc/internal/common"
	"github.com/Kashikuroni/wb-abc/internal/model"
)

func inspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [files...]",
		Short: "Summarize order sources without classifying",
		Long: `Summarize what an order source contains before building a report.

Shows order counts, the covered date span, cancellation share, total
revenue and the busiest products. Useful for checking an export before
feeding it to wb-abc report.

Unlike report, inspect does not require a date range: with no --from it
looks at everything the sources hold.

Examples:
  # Look inside a statistics API dump
  wb-abc inspect ~/Downloads/orders.json

  # Every export in a directory plus the order database
  wb-abc inspect ~/exports/*.csv --db orders.db

  # Only June 2024, with per-order detail
  wb-abc inspect orders.json --from 2024-06-01 --to 2024-06-30 -v`,
		Args: cobra.ArbitraryArgs,
		RunE: runInspect,
	}

	cmd.Flags().String("from", "", "start date, YYYY-MM-DD (omit to read everything)")
	cmd.Flags().String("to", "", "end date, YYYY-MM-DD (default: same day as --from)")
	cmd.Flags().String("db", "", "SQLite order database path")
	cmd.Flags().BoolP("verbose", "v", false, "show sample orders in full")
	cmd.Flags().Bool("progress", false, "show a progress bar while reading exports")

	return cmd
}

func runInspect(cmd *cobra.Command, args []string) error {
	fromStr, _ := cmd.Flags().GetString("from")
	toStr, _ := cmd.Flags().GetString("to")
	dbPath, _ := cmd.Flags().GetString("db")
	verbose, _ := cmd.Flags().GetBool("verbose")
	progress, _ := cmd.Flags().GetBool("progress")

	dr, err := parseDateRange(fromStr, toStr)
	if err != nil {
		return err
	}
	// inspect reads local files only, so the upstream age limit does not
	// apply; just reject a backwards range.
	if !dr.From.IsZero() && !dr.To.IsZero() && dr.To.Before(dr.From) {
		return fmt.Errorf("%w: end date %s is before start date %s",
			common.ErrInvalidDateRange, dr.To.Format(dateLayout), dr.From.Format(dateLayout))
	}

	paths, err := collectSourcePaths(args, dbPath)
	if err != nil {
		return err
	}

	slog.Info("Inspecting order sources", "sources", len(paths))

	orders, names, err := fetchOrders(cmd.Context(), paths, dr, progress)
	if err != nil {
		return err
	}

	if len(orders) == 0 {
		slog.Warn("No orders found in any source")
		return nil
	}

	fmt.Println("\n" + cli.BoldStyle.Render("📁 Sources:"))
	for _, name := range names {
		fmt.Printf("  - %s\n", name)
	}

	summarizeOrders(orders, verbose)
	return nil
}

// summarizeOrders prints counts, the date span, cancellation share and the
// busiest products of a merged order set.
func summarizeOrders(orders []model.Order, verbose bool) {
	var oldest, newest time.Time
	productOrders := make(map[int64]int)
	productArticle := make(map[int64]string)
	brands := make(map[string]int)
	cancelled := 0
	revenue := 0.0

	for i, order := range orders {
		changed := order.LastChangeDate.Time
		if i == 0 || changed.Before(oldest) {
			oldest = changed
		}
		if i == 0 || changed.After(newest) {
			newest = changed
		}

		productOrders[order.ProductID]++
		if productArticle[order.ProductID] == "" && order.SupplierArticle != "" {
			productArticle[order.ProductID] = order.SupplierArticle
		}
		if order.Brand != "" {
			brands[order.Brand]++
		}

		if order.IsCancel {
			cancelled++
			continue
		}
		revenue += order.PriceWithDisc
	}

	slog.Info("✅ Parsed order sources",
		"orders", len(orders),
		"products", len(productOrders),
		"brands", len(brands))

	fmt.Printf("\n📅 Last change dates: %s to %s (%d days)\n",
		oldest.Format(dateLayout),
		newest.Format(dateLayout),
		int(newest.Sub(oldest).Hours()/24)+1)

	fmt.Printf("💰 Revenue without cancellations: %.2f ₽\n", revenue)
	fmt.Printf("🚫 Cancelled: %d of %d orders (%.1f%%)\n",
		cancelled, len(orders), float64(cancelled)/float64(len(orders))*100)

	fmt.Println("\n" + cli.BoldStyle.Render("📝 Sample orders (first 5):"))
	separator := strings.Repeat("─", 54)
	fmt.Println(separator)
	for i, order := range orders {
		if i >= 5 {
			break
		}
		fmt.Printf("Changed: %s | Amount: %.2f ₽ | Article: %s\n",
			order.LastChangeDate.Format(dateLayout),
			order.PriceWithDisc,
			order.SupplierArticle)
		if verbose {
			fmt.Printf("  Product: %d (%s / %s)\n", order.ProductID, order.Brand, order.Subject)
			fmt.Printf("  Warehouse: %s | Region: %s\n", order.WarehouseName, order.RegionName)
			fmt.Printf("  srid: %s | Cancelled: %v\n", order.SRID, order.IsCancel)
		}
		fmt.Println(separator)
	}

	fmt.Println("\n" + cli.BoldStyle.Render("📦 Top products by order count:"))
	type productCount struct {
		id    int64
		count int
	}
	counts := make([]productCount, 0, len(productOrders))
	for id, count := range productOrders {
		counts = append(counts, productCount{id, count})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].count != counts[j].count {
			return counts[i].count > counts[j].count
		}
		return counts[i].id < counts[j].id
	})
	for i, pc := range counts {
		if i >= 10 {
			break
		}
		article := productArticle[pc.id]
		if article == "" {
			article = "(no article)"
		}
		fmt.Printf("  %2d. %s [%d] (%d orders)\n", i+1, article, pc.id, pc.count)
	}

	if !oldest.IsZero() {
		fmt.Println()
		fmt.Println(cli.FormatInfo(fmt.Sprintf("To classify these products, run: wb-abc report --from %s --to %s",
			oldest.Format(dateLayout), newest.Format(dateLayout))))
	}
}
