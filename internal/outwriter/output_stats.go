package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/periscan/periscan/internal/contract"
	"github.com/periscan/periscan/schema"
)

// depthRow is one named depth estimate for stats output.
type depthRow struct {
	Name     string  `json:"name"`
	Value    float64 `json:"value"`
	Err      float64 `json:"err"`
	DepthSNR float64 `json:"depth_snr"`
}

// StatsView flattens TransitStats into an output-friendly shape shared by
// the JSON and CSV writers and the MCP compute_stats tool.
type StatsView struct {
	TransitTimes            []float64  `json:"transit_times"`
	PerTransitCount         []int      `json:"per_transit_count"`
	PerTransitLogLikelihood []float64  `json:"per_transit_log_likelihood"`
	Depths                  []depthRow `json:"depths"`
	HarmonicAmplitude       float64    `json:"harmonic_amplitude"`
	HarmonicDeltaLogLike    float64    `json:"harmonic_delta_log_likelihood"`
	FluxUnit                string     `json:"flux_unit,omitempty"`
}

// NewStatsView builds the flattened view, deriving a depth SNR for every
// depth estimate that carries an uncertainty.
func NewStatsView(stats *schema.TransitStats) StatsView {
	toRow := func(name string, d schema.DepthEstimate) depthRow {
		snr := 0.0
		if d.Err > 0 {
			snr = d.Value / d.Err
		}
		return depthRow{Name: name, Value: d.Value, Err: d.Err, DepthSNR: snr}
	}

	view := StatsView{
		TransitTimes:            stats.TransitTimes.Values,
		PerTransitCount:         stats.PerTransitCount,
		PerTransitLogLikelihood: stats.PerTransitLogLikelihood,
		Depths: []depthRow{
			toRow("depth", stats.Depth),
			toRow("depth_odd", stats.DepthOdd),
			toRow("depth_even", stats.DepthEven),
			toRow("depth_phased", stats.DepthPhased),
			toRow("depth_half", stats.DepthHalf),
		},
		HarmonicAmplitude:    stats.HarmonicAmplitude,
		HarmonicDeltaLogLike: stats.HarmonicDeltaLogLike,
	}
	if stats.FluxUnit != nil {
		view.FluxUnit = stats.FluxUnit.String()
	}
	return view
}

// WriteStatsResults outputs transit diagnostics, dispatching based on the output format configured.
func WriteStatsResults(stats *schema.TransitStats, cfg *contract.Config) error {
	fmtFloat := floatFormatter(cfg.Precision)
	view := NewStatsView(stats)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, view)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeStatsCSVResults(view, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeStatsTable(view, fmtFloat, w)
		}, "Wrote table")
	}
	return nil
}

// writeStatsCSVResults writes the named depth estimates as CSV rows.
func writeStatsCSVResults(view StatsView, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		header := []string{"name", "value", "err", "depth_snr"}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for _, d := range view.Depths {
				rec := []string{d.Name, fmtFloat(d.Value), fmtFloat(d.Err), fmtFloat(d.DepthSNR)}
				if err := csvWriter.Write(rec); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// writeStatsTable prints the human-readable stats report: a depth table, a
// per-transit table and the harmonic diagnostics.
func writeStatsTable(view StatsView, fmtFloat func(float64) string, w io.Writer) error {
	depthTable := tablewriter.NewWriter(w)
	depthTable.Header([]string{"Depth", "Value", "Err", "SNR", "Label"})
	depthTable.Configure(func(tableCfg *tablewriter.Config) {
		tableCfg.Row.Alignment.Global = tw.AlignRight
	})

	var depthData [][]string
	for _, d := range view.Depths {
		depthData = append(depthData, []string{
			d.Name,
			fmtFloat(d.Value),
			fmtFloat(d.Err),
			fmtFloat(d.DepthSNR),
			contract.GetColorLabel(d.DepthSNR),
		})
	}
	if err := depthTable.Bulk(depthData); err != nil {
		return err
	}
	if err := depthTable.Render(); err != nil {
		return err
	}

	transitTable := tablewriter.NewWriter(w)
	transitTable.Header([]string{"Transit", "Center", "Points", "LogLike"})
	transitTable.Configure(func(tableCfg *tablewriter.Config) {
		tableCfg.Row.Alignment.Global = tw.AlignRight
	})

	var transitData [][]string
	for i, center := range view.TransitTimes {
		transitData = append(transitData, []string{
			strconv.Itoa(i + 1),
			fmtFloat(center),
			strconv.Itoa(view.PerTransitCount[i]),
			fmtFloat(view.PerTransitLogLikelihood[i]),
		})
	}
	if err := transitTable.Bulk(transitData); err != nil {
		return err
	}
	if err := transitTable.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "Harmonic amplitude: %s, delta log-likelihood vs box: %s\n",
		fmtFloat(view.HarmonicAmplitude), fmtFloat(view.HarmonicDeltaLogLike)); err != nil {
		return err
	}
	if view.FluxUnit != "" {
		if _, err := fmt.Fprintf(w, "Flux unit: %s\n", view.FluxUnit); err != nil {
			return err
		}
	}
	return nil
}
