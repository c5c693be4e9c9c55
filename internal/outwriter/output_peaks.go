package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/periscan/periscan/internal/contract"
	pqwriter "github.com/periscan/periscan/internal/parquet"
	"github.com/periscan/periscan/schema"
)

// WritePeakResults outputs ranked periodogram peaks, dispatching based on the output format configured.
func WritePeakResults(peaks []schema.Peak, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat := floatFormatter(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writePeakJSONResults(peaks, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writePeakCSVResults(peaks, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writePeakParquetResults(peaks, cfg); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writePeakTable(peaks, cfg, fmtFloat, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writePeakJSONResults handles opening the file and calling the JSON writer.
func writePeakJSONResults(peaks []schema.Peak, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONResultsForPeaks(w, peaks)
	}, "Wrote JSON")
}

// writePeakCSVResults handles opening the file and calling the CSV writer.
func writePeakCSVResults(peaks []schema.Peak, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		header := []string{
			"rank",
			"period",
			"power",
			"duration",
			"transit_time",
			"depth",
			"depth_err",
			"depth_snr",
			"log_likelihood",
			"label",
		}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for i, p := range peaks {
				rec := []string{
					strconv.Itoa(i + 1),
					fmtFloat(p.Period),
					fmtFloat(p.Power),
					fmtFloat(p.Duration),
					fmtFloat(p.TransitTime),
					fmtFloat(p.Depth),
					fmtFloat(p.DepthErr),
					fmtFloat(p.DepthSNR),
					fmtFloat(p.LogLikelihood),
					contract.GetPlainLabel(p.DepthSNR),
				}
				if err := csvWriter.Write(rec); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// writePeakParquetResults writes the ranked peaks as a Parquet file.
// Parquet is a binary format, so an explicit output file is required.
func writePeakParquetResults(peaks []schema.Peak, cfg *contract.Config) error {
	if cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}

	rows := make([]pqwriter.SearchPeak, len(peaks))
	for i, p := range peaks {
		rows[i] = pqwriter.SearchPeak{
			Rank:          int32(i + 1),
			Period:        p.Period,
			Power:         p.Power,
			Duration:      p.Duration,
			TransitTime:   p.TransitTime,
			Depth:         p.Depth,
			DepthErr:      p.DepthErr,
			DepthSNR:      p.DepthSNR,
			LogLikelihood: p.LogLikelihood,
			Label:         contract.GetPlainLabel(p.DepthSNR),
		}
	}

	if err := pqwriter.WriteSearchPeaks(rows, cfg.OutputFile); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", cfg.OutputFile)
	return nil
}

// writePeakTable generates and writes the human-readable table.
func writePeakTable(peaks []schema.Peak, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	headers := []string{"Rank", "Period", "Power", "Duration", "T0", "Depth", "SNR", "Label"}
	table.Header(headers)

	// 2. Configure Separators/Borders to match a minimal look
	table.Configure(func(tableCfg *tablewriter.Config) {
		tableCfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	var data [][]string
	for i, p := range peaks {
		row := []string{
			strconv.Itoa(i + 1),                // Rank
			fmtFloat(p.Period),                 // Period
			fmtFloat(p.Power),                  // Power
			fmtFloat(p.Duration),               // Duration
			fmtFloat(p.TransitTime),            // Transit epoch
			fmtFloat(p.Depth),                  // Depth
			fmtFloat(p.DepthSNR),               // Depth SNR
			contract.GetColorLabel(p.DepthSNR), // Label
		}
		data = append(data, row)
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Showing top %d peaks\n", len(peaks)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Search completed in %v with %d workers. Store backend: %s\n", duration, cfg.Workers, cfg.StoreBackend); err != nil {
		return err
	}
	return nil
}

// writeJSONResultsForPeaks writes ranked peaks in JSON format.
func writeJSONResultsForPeaks(w io.Writer, peaks []schema.Peak) error {
	// 1. Prepare the data structure for JSON with rank and label added
	type JSONPeak struct {
		Rank  int    `json:"rank"`
		Label string `json:"label"`
		schema.Peak
	}

	output := make([]JSONPeak, len(peaks))
	for i, p := range peaks {
		output[i] = JSONPeak{
			Rank:  i + 1,
			Label: contract.GetPlainLabel(p.DepthSNR),
			Peak:  p,
		}
	}

	// 2. Use the generic JSON writer
	return writeJSON(w, output)
}
