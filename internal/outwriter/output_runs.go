package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/periscan/periscan/internal/contract"
	"github.com/periscan/periscan/schema"
)

// DateTimeFormat is the timestamp layout used in run listings.
const DateTimeFormat = "2006-01-02 15:04:05"

// WriteRunResults outputs recorded search runs, dispatching based on the output format configured.
func WriteRunResults(runs []schema.RunRecord, cfg *contract.Config) error {
	fmtFloat := floatFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, runs)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeRunCSVResults(runs, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRunTable(runs, cfg, fmtFloat, w)
		}, "Wrote table")
	}
	return nil
}

// writeRunCSVResults writes the run records as CSV rows.
func writeRunCSVResults(runs []schema.RunRecord, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		header := []string{
			"run_id",
			"start_time",
			"duration_ms",
			"input_file",
			"objective",
			"method",
			"total_periods",
			"best_period",
			"best_power",
		}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for _, r := range runs {
				rec := []string{
					strconv.FormatInt(r.RunID, 10),
					r.StartTime.Format(time.RFC3339),
					formatDurationMs(r.RunDurationMs),
					r.InputFile,
					r.Objective,
					r.Method,
					strconv.Itoa(r.TotalPeriods),
					fmtFloat(r.BestPeriod),
					fmtFloat(r.BestPower),
				}
				if err := csvWriter.Write(rec); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// writeRunTable generates and writes the human-readable run listing.
func writeRunTable(runs []schema.RunRecord, cfg *contract.Config, fmtFloat func(float64) string, w io.Writer) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"ID", "Start", "Ms", "File", "Objective", "Method", "Periods", "Best Period", "Best Power"})
	table.Configure(func(tableCfg *tablewriter.Config) {
		tableCfg.Row.Alignment.Global = tw.AlignRight
	})

	maxFileWidth := getMaxTableFileWidth(cfg)
	var data [][]string
	for _, r := range runs {
		data = append(data, []string{
			strconv.FormatInt(r.RunID, 10),
			r.StartTime.Format(DateTimeFormat),
			formatDurationMs(r.RunDurationMs),
			contract.TruncatePath(r.InputFile, maxFileWidth),
			r.Objective,
			r.Method,
			strconv.Itoa(r.TotalPeriods),
			fmtFloat(r.BestPeriod),
			fmtFloat(r.BestPower),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "Showing %d runs. Store backend: %s\n", len(runs), cfg.StoreBackend); err != nil {
		return err
	}
	return nil
}

// WriteStatusResults prints the search store status.
func WriteStatusResults(status schema.StoreStatus, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, status)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
		return nil
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			lines := []string{
				fmt.Sprintf("Backend:     %s", status.Backend),
				fmt.Sprintf("Connected:   %t", status.Connected),
				fmt.Sprintf("Total runs:  %d", status.TotalRuns),
				fmt.Sprintf("Total peaks: %d", status.TotalPeaks),
			}
			if status.TotalRuns > 0 {
				lines = append(lines,
					fmt.Sprintf("Last run:    #%d at %s", status.LastRunID, status.LastRunTime.Format(DateTimeFormat)),
					fmt.Sprintf("Oldest run:  %s", status.OldestRunTime.Format(DateTimeFormat)),
				)
			}
			for _, line := range lines {
				if _, err := fmt.Fprintln(w, line); err != nil {
					return err
				}
			}
			return nil
		}, "Wrote status")
	}
}

// formatDurationMs renders a nullable duration column.
func formatDurationMs(ms *int64) string {
	if ms == nil {
		return "-"
	}
	return strconv.FormatInt(*ms, 10)
}
