// Package core has the periodogram model, grid heuristics and command executors.
package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/periscan/periscan/core/algo"
	"github.com/periscan/periscan/internal/contract"
	"github.com/periscan/periscan/internal/lightcurve"
	"github.com/periscan/periscan/internal/outwriter"
	"github.com/periscan/periscan/internal/quantity"
	"github.com/periscan/periscan/internal/runstore"
	"github.com/periscan/periscan/schema"
)

// ExecutorFunc defines the function signature for executing different search commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config) error

// errNoStore is returned by run tracking commands when no store is configured.
var errNoStore = errors.New("search run store is not initialized")

// ExecuteSearch runs the full periodogram search and prints the ranked peaks.
// It serves as the main entry point for the 'search' command.
func ExecuteSearch(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	peaks, err := GetSearchResults(ctx, cfg, runstore.Manager)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.NewOutWriter().WritePeaks(peaks, cfg, duration)
}

// ExecuteGrid prints the trial period grid a search with this config would use.
// It serves as the main entry point for the 'grid' command.
func ExecuteGrid(ctx context.Context, cfg *contract.Config) error {
	grid, err := GetGridResults(ctx, cfg)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteGrid(grid, cfg)
}

// ExecuteStats computes and prints the transit diagnostics for a fixed ephemeris.
// It serves as the main entry point for the 'stats' command.
func ExecuteStats(ctx context.Context, cfg *contract.Config) error {
	stats, err := GetStatsResults(ctx, cfg)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteStats(stats, cfg)
}

// ExecuteModel evaluates and prints the box model at the observed times.
// It serves as the main entry point for the 'model' command.
func ExecuteModel(ctx context.Context, cfg *contract.Config) error {
	series, err := GetModelResults(ctx, cfg)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteModel(series, cfg)
}

// ExecuteMask computes and prints the boolean in-transit mask at the observed times.
// It serves as the main entry point for the 'mask' command.
func ExecuteMask(ctx context.Context, cfg *contract.Config) error {
	series, err := GetMaskResults(ctx, cfg)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteMask(series, cfg)
}

// ExecuteRunList prints the most recently recorded search runs.
func ExecuteRunList(_ context.Context, cfg *contract.Config) error {
	store := runstore.Manager.GetSearchStore()
	if store == nil {
		return errNoStore
	}
	runs, err := store.ListRuns(cfg.ResultLimit)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteRuns(runs, cfg)
}

// ExecuteRunStatus prints the health and row counts of the run store.
func ExecuteRunStatus(_ context.Context, cfg *contract.Config) error {
	store := runstore.Manager.GetSearchStore()
	if store == nil {
		return errNoStore
	}
	status, err := store.GetStatus()
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteStatus(status, cfg)
}

// ExecuteRunClear removes all recorded search runs and peaks from the store.
func ExecuteRunClear(_ context.Context, _ *contract.Config) error {
	store := runstore.Manager.GetSearchStore()
	if store == nil {
		return errNoStore
	}
	if err := store.Clear(); err != nil {
		return err
	}
	fmt.Println("Cleared all recorded search runs.")
	return nil
}

// GetSearchResults runs the periodogram search described by cfg and returns
// the ranked peaks. The run is recorded through mgr when a store is
// configured; store failures are reported as warnings and never fail the
// search itself.
func GetSearchResults(_ context.Context, cfg *contract.Config, mgr contract.StoreManager) ([]schema.Peak, error) {
	startTime := time.Now()

	p, _, err := loadPeriodogram(cfg)
	if err != nil {
		return nil, err
	}

	res, err := p.Autopower(durationsFor(cfg, p.TimeUnit()), gridOptionsFor(cfg, p.TimeUnit()), PowerOptions{
		Objective:  cfg.Objective,
		Method:     cfg.Method,
		Oversample: cfg.Oversample,
		Workers:    cfg.Workers,
	})
	if err != nil {
		return nil, err
	}

	peaks := rankPeaks(res, cfg.ResultLimit)
	recordSearchRun(mgr, startTime, cfg, res, peaks)
	return peaks, nil
}

// GetGridResults builds the trial period grid for cfg and summarizes it.
func GetGridResults(_ context.Context, cfg *contract.Config) (schema.GridSummary, error) {
	p, _, err := loadPeriodogram(cfg)
	if err != nil {
		return schema.GridSummary{}, err
	}

	periods, err := p.Autoperiod(durationsFor(cfg, p.TimeUnit()), gridOptionsFor(cfg, p.TimeUnit()))
	if err != nil {
		return schema.GridSummary{}, err
	}

	values := periods.Strip()
	minDur, _ := minMax(cfg.Durations)
	ff := cfg.FrequencyFactor
	if ff == 0 {
		ff = DefaultFrequencyFactor
	}
	baseline := p.Baseline().Value
	return schema.GridSummary{
		Count:         len(values),
		MinPeriod:     values[0],
		MaxPeriod:     values[len(values)-1],
		FrequencyStep: gridFrequencyStep(ff, minDur, baseline),
		TimeUnit:      unitName(p.TimeUnit()),
		Periods:       values,
	}, nil
}

// GetStatsResults computes the transit diagnostics for the fixed ephemeris in cfg.
func GetStatsResults(_ context.Context, cfg *contract.Config) (*schema.TransitStats, error) {
	p, _, err := loadPeriodogram(cfg)
	if err != nil {
		return nil, err
	}
	period, duration, transitTime := ephemerisFor(cfg, p.TimeUnit())
	return p.ComputeStats(period, duration, transitTime)
}

// GetModelResults evaluates the box model at the observed times.
func GetModelResults(_ context.Context, cfg *contract.Config) (schema.ModelSeries, error) {
	p, lc, err := loadPeriodogram(cfg)
	if err != nil {
		return schema.ModelSeries{}, err
	}
	period, duration, transitTime := ephemerisFor(cfg, p.TimeUnit())
	model, err := p.Model(lc.Time, period, duration, transitTime)
	if err != nil {
		return schema.ModelSeries{}, err
	}
	return schema.ModelSeries{
		Time:     lc.Time.Strip(),
		Flux:     model.Strip(),
		TimeUnit: unitName(lc.Time.Unit),
		FluxUnit: unitName(model.Unit),
	}, nil
}

// GetMaskResults computes the boolean in-transit mask at the observed times.
func GetMaskResults(_ context.Context, cfg *contract.Config) (schema.MaskSeries, error) {
	p, lc, err := loadPeriodogram(cfg)
	if err != nil {
		return schema.MaskSeries{}, err
	}
	period, duration, transitTime := ephemerisFor(cfg, p.TimeUnit())
	mask, err := p.TransitMask(lc.Time, period, duration, transitTime)
	if err != nil {
		return schema.MaskSeries{}, err
	}
	return schema.MaskSeries{
		Time:      lc.Time.Strip(),
		InTransit: mask,
		TimeUnit:  unitName(lc.Time.Unit),
	}, nil
}

// loadPeriodogram reads the configured light curve and binds a Periodogram to it.
func loadPeriodogram(cfg *contract.Config) (*Periodogram, *lightcurve.LightCurve, error) {
	lc, err := lightcurve.Load(cfg.InputFile, unitName(cfg.TimeUnit), unitName(cfg.FluxUnit))
	if err != nil {
		return nil, nil, err
	}
	p, err := New(lc.Time, lc.Flux, lc.FluxErr)
	if err != nil {
		return nil, nil, err
	}
	return p, lc, nil
}

// durationsFor tags the configured trial durations with the curve's time unit.
func durationsFor(cfg *contract.Config, timeUnit *quantity.Unit) quantity.Array {
	return quantity.WithUnit(cfg.Durations, timeUnit)
}

// gridOptionsFor maps the configured grid knobs onto GridOptions.
func gridOptionsFor(cfg *contract.Config, timeUnit *quantity.Unit) GridOptions {
	opts := GridOptions{
		MinimumNTransit: cfg.MinimumNTransit,
		FrequencyFactor: cfg.FrequencyFactor,
	}
	if cfg.MinimumPeriod != nil {
		opts.MinimumPeriod = &quantity.Scalar{Value: *cfg.MinimumPeriod, Unit: timeUnit}
	}
	if cfg.MaximumPeriod != nil {
		opts.MaximumPeriod = &quantity.Scalar{Value: *cfg.MaximumPeriod, Unit: timeUnit}
	}
	return opts
}

// ephemerisFor tags the configured fixed ephemeris with the curve's time unit.
func ephemerisFor(cfg *contract.Config, timeUnit *quantity.Unit) (period, duration, transitTime quantity.Scalar) {
	period = quantity.Scalar{Value: cfg.Period, Unit: timeUnit}
	duration = quantity.Scalar{Value: cfg.Duration, Unit: timeUnit}
	transitTime = quantity.Scalar{Value: cfg.TransitTime, Unit: timeUnit}
	return period, duration, transitTime
}

func unitName(u *quantity.Unit) string {
	if u == nil {
		return ""
	}
	return u.Name
}

// rankPeaks flattens a search result and orders it by descending power.
func rankPeaks(res *schema.SearchResult, limit int) []schema.Peak {
	return algo.RankPeaks(res.Rows(), limit)
}

// recordSearchRun persists one completed search through the store manager.
// A nil manager or store means tracking is disabled.
func recordSearchRun(mgr contract.StoreManager, startTime time.Time, cfg *contract.Config, res *schema.SearchResult, peaks []schema.Peak) {
	if mgr == nil {
		return
	}
	store := mgr.GetSearchStore()
	if store == nil {
		return
	}

	runID, err := store.BeginRun(startTime, cfg.InputFile, cfg.Objective, cfg.Method, searchConfigParams(cfg))
	if err != nil {
		contract.LogWarn("recording search run", err)
		return
	}
	if err := store.RecordPeaks(runID, peaks); err != nil {
		contract.LogWarn("recording search peaks", err)
	}

	var bestPeriod, bestPower float64
	if best := res.BestIndex(); best >= 0 {
		bestPeriod = res.Period.Values[best]
		bestPower = res.Power.Values[best]
	}
	if err := store.EndRun(runID, time.Now(), res.Len(), bestPeriod, bestPower); err != nil {
		contract.LogWarn("finalizing search run", err)
	}
}

// searchConfigParams collects the search knobs worth replaying from a run record.
func searchConfigParams(cfg *contract.Config) map[string]any {
	params := map[string]any{
		"durations":        cfg.Durations,
		"objective":        string(cfg.Objective),
		"method":           string(cfg.Method),
		"oversample":       cfg.Oversample,
		"workers":          cfg.Workers,
		"n_transit":        cfg.MinimumNTransit,
		"frequency_factor": cfg.FrequencyFactor,
	}
	if cfg.MinimumPeriod != nil {
		params["min_period"] = *cfg.MinimumPeriod
	}
	if cfg.MaximumPeriod != nil {
		params["max_period"] = *cfg.MaximumPeriod
	}
	return params
}
