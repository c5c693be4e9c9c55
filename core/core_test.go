package core

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/periscan/periscan/internal/contract"
	"github.com/periscan/periscan/internal/quantity"
	"github.com/periscan/periscan/internal/runstore"
	"github.com/periscan/periscan/schema"
)

// writeFixtureCSV writes the synthetic transit fixture to a CSV file.
func writeFixtureCSV(t *testing.T) string {
	t.Helper()
	tt, y, dy := makeLightCurve(42, 400)
	var b strings.Builder
	b.WriteString("time,flux,flux_err\n")
	for i := range tt {
		fmt.Fprintf(&b, "%.8f,%.8f,%.8f\n", tt[i], y[i], dy[i])
	}
	path := filepath.Join(t.TempDir(), "fixture.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}

// executorConfig returns a validated config pointing at the CSV fixture.
// Tight period bounds keep the trial grid small.
func executorConfig(t *testing.T) *contract.Config {
	t.Helper()
	minPeriod, maxPeriod := 1.5, 2.5
	return &contract.Config{
		InputFile:       writeFixtureCSV(t),
		TimeUnit:        quantity.Day,
		Durations:       []float64{0.16},
		Objective:       schema.LikelihoodObjective,
		Method:          schema.AutoMethod,
		Oversample:      10,
		Workers:         2,
		MinimumPeriod:   &minPeriod,
		MaximumPeriod:   &maxPeriod,
		MinimumNTransit: 3,
		FrequencyFactor: 1.0,
		Period:          fixtureParams.period,
		Duration:        fixtureParams.duration,
		TransitTime:     fixtureParams.transitTime,
		ResultLimit:     5,
		Precision:       4,
		Output:          schema.TextOut,
		StoreBackend:    schema.NoneBackend,
	}
}

func TestGetSearchResultsRecoversTransit(t *testing.T) {
	cfg := executorConfig(t)

	peaks, err := GetSearchResults(context.Background(), cfg, nil)
	require.NoError(t, err)
	require.NotEmpty(t, peaks)
	assert.LessOrEqual(t, len(peaks), cfg.ResultLimit)

	assert.InDelta(t, fixtureParams.period, peaks[0].Period, 0.05)
	for i := 1; i < len(peaks); i++ {
		assert.GreaterOrEqual(t, peaks[i-1].Power, peaks[i].Power)
	}
}

func TestGetSearchResultsRecordsRun(t *testing.T) {
	cfg := executorConfig(t)

	store := &runstore.MockSearchStore{}
	store.On("BeginRun", mock.Anything, cfg.InputFile, schema.LikelihoodObjective, schema.AutoMethod, mock.Anything).
		Return(int64(7), nil)
	store.On("RecordPeaks", int64(7), mock.Anything).Return(nil)
	store.On("EndRun", int64(7), mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	mgr := &runstore.MockStoreManager{}
	mgr.On("GetSearchStore").Return(store)

	_, err := GetSearchResults(context.Background(), cfg, mgr)
	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestGetSearchResultsStoreFailureIsNonFatal(t *testing.T) {
	cfg := executorConfig(t)

	store := &runstore.MockSearchStore{}
	store.On("BeginRun", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(int64(0), fmt.Errorf("database is locked"))
	mgr := &runstore.MockStoreManager{}
	mgr.On("GetSearchStore").Return(store)

	peaks, err := GetSearchResults(context.Background(), cfg, mgr)
	require.NoError(t, err)
	assert.NotEmpty(t, peaks)
	store.AssertNotCalled(t, "EndRun", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetSearchResultsMissingFile(t *testing.T) {
	cfg := executorConfig(t)
	cfg.InputFile = filepath.Join(t.TempDir(), "nope.csv")

	_, err := GetSearchResults(context.Background(), cfg, nil)
	assert.Error(t, err)
}

func TestGetGridResults(t *testing.T) {
	cfg := executorConfig(t)

	grid, err := GetGridResults(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, len(grid.Periods), grid.Count)
	assert.Positive(t, grid.Count)
	assert.InDelta(t, 1.5, grid.MinPeriod, 1e-9)
	assert.LessOrEqual(t, grid.MaxPeriod, 2.5*1.01)
	assert.Positive(t, grid.FrequencyStep)
	assert.Equal(t, "day", grid.TimeUnit)
	for i := 1; i < len(grid.Periods); i++ {
		assert.Greater(t, grid.Periods[i], grid.Periods[i-1])
	}

	// The reported step is the actual frequency spacing of the grid.
	require.Greater(t, grid.Count, 1)
	assert.InDelta(t, grid.FrequencyStep, 1.0/grid.Periods[0]-1.0/grid.Periods[1], 1e-12)
}

func TestGetStatsResults(t *testing.T) {
	cfg := executorConfig(t)

	stats, err := GetStatsResults(context.Background(), cfg)
	require.NoError(t, err)
	assert.InDelta(t, fixtureParams.depth, stats.Depth.Value, 3*stats.Depth.Err)
	assert.Positive(t, stats.TransitTimes.Len())
}

func TestGetModelResults(t *testing.T) {
	cfg := executorConfig(t)

	series, err := GetModelResults(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, series.Flux, len(series.Time))
	assert.Equal(t, "day", series.TimeUnit)

	lo, hi := minMax(series.Flux)
	assert.Less(t, lo, hi)
	assert.InDelta(t, fixtureParams.depth, hi-lo, 0.02)
}

func TestGetMaskResults(t *testing.T) {
	cfg := executorConfig(t)

	series, err := GetMaskResults(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, series.InTransit, len(series.Time))

	inTransit := 0
	for _, in := range series.InTransit {
		if in {
			inTransit++
		}
	}
	assert.Positive(t, inTransit)
	assert.Less(t, inTransit, len(series.InTransit))
}

func TestRankPeaksOrdersAndLimits(t *testing.T) {
	values := func(vs ...float64) quantity.Array { return quantity.Plain(vs) }
	res := &schema.SearchResult{
		Objective:     schema.LikelihoodObjective,
		Method:        schema.SlowMethod,
		Period:        values(1.0, 2.0, 3.0, 4.0),
		Power:         quantity.Plain([]float64{5.0, math.NaN(), 9.0, 7.0}),
		Duration:      values(0.1, 0.1, 0.1, 0.1),
		TransitTime:   values(0.5, 0.5, 0.5, 0.5),
		Depth:         values(0.2, 0.2, 0.2, 0.2),
		DepthErr:      values(0.01, 0.01, 0.01, 0.01),
		DepthSNR:      values(20, 20, 20, 20),
		LogLikelihood: values(5.0, 0.0, 9.0, 7.0),
	}

	ranked := rankPeaks(res, 3)
	require.Len(t, ranked, 3)
	assert.Equal(t, 3.0, ranked[0].Period)
	assert.Equal(t, 4.0, ranked[1].Period)
	assert.Equal(t, 1.0, ranked[2].Period)

	all := rankPeaks(res, 0)
	require.Len(t, all, 4)
	assert.True(t, math.IsNaN(all[3].Power))
}

func TestSearchConfigParams(t *testing.T) {
	cfg := executorConfig(t)

	params := searchConfigParams(cfg)
	assert.Equal(t, "likelihood", params["objective"])
	assert.Equal(t, 1.5, params["min_period"])
	assert.Equal(t, 2.5, params["max_period"])

	cfg.MinimumPeriod = nil
	params = searchConfigParams(cfg)
	assert.NotContains(t, params, "min_period")
}
