package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/viper"

	"github.com/Kashikuroni/wb-abc/internal/common"
	"github.com/Kashikuroni/wb-abc/internal/config"
	"github.com/Kashikuroni/wb-abc/internal/source"
)

const dateLayout = "2006-01-02"

// parseDateRange builds a DateRange from --from/--to values. Dates are
// calendar days in the local timezone; an empty to means the single day
// of from.
func parseDateRange(fromStr, toStr string) (source.DateRange, error) {
	var dr source.DateRange

	if fromStr != "" {
		from, err := time.ParseInLocation(dateLayout, fromStr, time.Local)
		if err != nil {
			return dr, fmt.Errorf("%w: invalid --from date %q (use YYYY-MM-DD)", common.ErrInvalidDateRange, fromStr)
		}
		dr.From = from
	}
	if toStr != "" {
		to, err := time.ParseInLocation(dateLayout, toStr, time.Local)
		if err != nil {
			return dr, fmt.Errorf("%w: invalid --to date %q (use YYYY-MM-DD)", common.ErrInvalidDateRange, toStr)
		}
		dr.To = to
	}

	return dr, nil
}

// collectSourcePaths expands glob patterns in args, appends the --db path
// if given, and expands ~ and environment variables in everything.
func collectSourcePaths(args []string, dbPath string) ([]string, error) {
	var paths []string

	for _, pattern := range args {
		pattern = config.ExpandPath(pattern)
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			// If no glob matches, check if it's a direct file
			if _, statErr := os.Stat(pattern); statErr == nil {
				paths = append(paths, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
		} else {
			paths = append(paths, matches...)
		}
	}

	if dbPath == "" {
		dbPath = viper.GetString("database.path")
	}
	if dbPath != "" {
		paths = append(paths, config.ExpandPath(dbPath))
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: give export files as arguments or an order database with --db", common.ErrNoSource)
	}
	return paths, nil
}

// openSource opens one order source by file extension. The returned
// cleanup must be called once fetching is done.
func openSource(path string, progress bool) (source.Source, func(), error) {
	kind, err := source.KindForPath(path)
	if err != nil {
		return nil, nil, err
	}

	if kind == source.KindSQLite {
		db, err := source.OpenSQLite(path)
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() {
			if closeErr := db.Close(); closeErr != nil {
				slog.Error("Failed to close order database", "path", path, "error", closeErr)
			}
		}
		return db, cleanup, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open export file: %w", err)
	}

	var r io.Reader = f
	var bar *progressbar.ProgressBar
	if progress {
		if info, statErr := f.Stat(); statErr == nil {
			bar = newByteProgress(info.Size(), filepath.Base(path))
			r = io.TeeReader(f, bar)
		}
	}

	cleanup := func() {
		if bar != nil {
			_ = bar.Finish()
		}
		if closeErr := f.Close(); closeErr != nil {
			slog.Error("Failed to close export file", "path", path, "error", closeErr)
		}
	}

	name := filepath.Base(path)
	if kind == source.KindCSV {
		return source.NewCSVSource(name, r), cleanup, nil
	}
	return source.NewJSONSource(name, r), cleanup, nil
}

// newByteProgress builds a byte-count progress bar for reading an export.
func newByteProgress(size int64, name string) *progressbar.ProgressBar {
	return progressbar.NewOptions64(size,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription(fmt.Sprintf("[cyan]Reading %s...[reset]", name)),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(os.Stderr); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
}
