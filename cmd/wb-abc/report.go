package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Kashikuroni/wb-abc/internal/abc"
	"github.com/Kashikuroni/wb-abc/internal/cli"
	"github.com/Kashikuroni/wb-abc/internal/config"
	"github.com/Kashikuroni/wb-abc/internal/model"
	"github.com/Kashikuroni/wb-abc/internal/report"
	"github.com/Kashikuroni/wb-abc/internal/source"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report [files...]",
		Short: "Build an ABC revenue report",
		Long: `Build an ABC revenue report over a date range of order history.

Orders are read from the given export files (.json or .csv) and/or a
SQLite order database, grouped by product, ranked by revenue and split
into A/B/C tiers by cumulative share. Duplicate orders across sources
are dropped by srid.

An empty period is not an error: the report simply says there was no
data.

Examples:
  # Single-day report from a statistics API dump
  wb-abc report --from 2024-06-01 orders.json

  # Date range over several exports, CSV to a file
  wb-abc report --from 2024-06-01 --to 2024-06-10 --format csv --output abc.csv june-*.json

  # Read from an order database, custom tier boundaries
  wb-abc report --from 2024-06-01 --db orders.db --threshold-a 70 --threshold-b 90`,
		Args: cobra.ArbitraryArgs,
		RunE: runReport,
	}

	// Flags
	cmd.Flags().String("from", "", "start date, YYYY-MM-DD (required)")
	cmd.Flags().String("to", "", "end date, YYYY-MM-DD (default: same day as --from)")
	cmd.Flags().String("db", "", "SQLite order database path")
	cmd.Flags().StringP("format", "f", report.FormatTable, "report format (table, csv, json)")
	cmd.Flags().StringP("output", "o", "", "write the report to a file instead of stdout")
	cmd.Flags().Float64("threshold-a", 80.0, "cumulative share boundary of tier A, percent")
	cmd.Flags().Float64("threshold-b", 95.0, "cumulative share boundary of tier B, percent")
	cmd.Flags().Bool("include-cancelled", false, "keep cancelled orders in the analysis")
	cmd.Flags().Bool("progress", false, "show a progress bar while reading exports")

	// Bind to viper (errors are rare and can be ignored in practice)
	_ = viper.BindPFlag("report.format", cmd.Flags().Lookup("format"))
	_ = viper.BindPFlag("report.progress", cmd.Flags().Lookup("progress"))
	_ = viper.BindPFlag("abc.threshold_a", cmd.Flags().Lookup("threshold-a"))
	_ = viper.BindPFlag("abc.threshold_b", cmd.Flags().Lookup("threshold-b"))
	_ = viper.BindPFlag("abc.include_cancelled", cmd.Flags().Lookup("include-cancelled"))

	return cmd
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	fromStr, _ := cmd.Flags().GetString("from")
	toStr, _ := cmd.Flags().GetString("to")
	dbPath, _ := cmd.Flags().GetString("db")
	outputPath, _ := cmd.Flags().GetString("output")

	dr, err := parseDateRange(fromStr, toStr)
	if err != nil {
		return err
	}
	if err := dr.Validate(time.Now()); err != nil {
		return err
	}

	opts := abc.Options{
		ThresholdA:       viper.GetFloat64("abc.threshold_a"),
		ThresholdB:       viper.GetFloat64("abc.threshold_b"),
		ExcludeCancelled: !viper.GetBool("abc.include_cancelled"),
	}
	if err := opts.Validate(); err != nil {
		return err
	}

	paths, err := collectSourcePaths(args, dbPath)
	if err != nil {
		return err
	}

	orders, names, err := fetchOrders(ctx, paths, dr, viper.GetBool("report.progress"))
	if err != nil {
		return err
	}

	items, err := abc.Classify(orders, opts)
	if err != nil {
		return err
	}

	rep := report.New(items, dr, names, opts)
	if rep.Empty() {
		slog.Warn("No orders matched the period",
			"from", dr.From.Format("2006-01-02"),
			"sources", names)
	}

	formatter, err := report.ByName(viper.GetString("report.format"))
	if err != nil {
		return err
	}

	out := os.Stdout
	if outputPath != "" {
		outputPath = config.ExpandPath(outputPath)
		f, createErr := os.Create(outputPath)
		if createErr != nil {
			return fmt.Errorf("failed to create output file: %w", createErr)
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil {
				slog.Error("Failed to close output file", "path", outputPath, "error", closeErr)
			}
		}()
		out = f
	}

	if err := formatter.Write(out, rep); err != nil {
		return err
	}

	if outputPath != "" {
		fmt.Println(cli.FormatSuccess(fmt.Sprintf("Report written to %s (%d products)",
			outputPath, rep.Summary.Products)))
	}

	return nil
}

// fetchOrders reads every source, merges the batches and dedupes by srid.
// It returns the merged orders and the source names for report metadata.
func fetchOrders(ctx context.Context, paths []string, dr source.DateRange, progress bool) ([]model.Order, []string, error) {
	batches := make([][]model.Order, 0, len(paths))
	names := make([]string, 0, len(paths))
	fetched := 0

	for _, path := range paths {
		src, cleanup, err := openSource(path, progress)
		if err != nil {
			return nil, nil, err
		}

		orders, err := src.Fetch(ctx, dr)
		cleanup()
		if err != nil {
			return nil, nil, err
		}

		slog.Info("Fetched orders", "source", src.Name(), "orders", len(orders))
		batches = append(batches, orders)
		names = append(names, src.Name())
		fetched += len(orders)
	}

	merged := source.Merge(batches...)
	if dup := fetched - len(merged); dup > 0 {
		slog.Info("Dropped duplicate orders", "duplicates", dup, "orders", len(merged))
	}
	return merged, names, nil
}
