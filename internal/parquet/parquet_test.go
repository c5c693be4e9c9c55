package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePeaks() []SearchPeak {
	return []SearchPeak{
		{
			RunID:         1,
			Rank:          1,
			Period:        2.0034,
			Power:         812.5,
			Duration:      0.16,
			TransitTime:   0.5012,
			Depth:         0.201,
			DepthErr:      0.0012,
			DepthSNR:      167.5,
			LogLikelihood: 406.2,
			Label:         "Strong",
		},
		{
			RunID:         1,
			Rank:          2,
			Period:        1.0017,
			Power:         240.1,
			Duration:      0.12,
			TransitTime:   0.4921,
			Depth:         0.094,
			DepthErr:      0.0018,
			DepthSNR:      52.2,
			LogLikelihood: 120.0,
			Label:         "Strong",
		},
	}
}

func sampleRuns() []SearchRun {
	start := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
	end := start.Add(3 * time.Second)
	durationMs := int64(3000)
	config := `{"objective":"likelihood","oversample":10}`

	return []SearchRun{
		{
			RunID:         1,
			StartTime:     start,
			EndTime:       &end,
			RunDurationMs: &durationMs,
			InputFile:     "kepler10.csv",
			Objective:     "likelihood",
			Method:        "fast",
			TotalPeriods:  5000,
			BestPeriod:    2.0034,
			BestPower:     812.5,
			ConfigParams:  &config,
		},
		// In-flight run with nil nullable fields
		{
			RunID:        2,
			StartTime:    start.Add(time.Minute),
			InputFile:    "kepler10.parquet",
			Objective:    "snr",
			Method:       "slow",
			TotalPeriods: 0,
		},
	}
}

func TestSearchPeakStructTags(t *testing.T) {
	schema := parquet.SchemaOf(new(SearchPeak))
	require.NotNil(t, schema)

	expectedColumns := []string{
		"run_id",
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

	for _, colName := range expectedColumns {
		col, ok := schema.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestSearchRunStructTags(t *testing.T) {
	schema := parquet.SchemaOf(new(SearchRun))
	require.NotNil(t, schema)

	expectedColumns := []string{
		"run_id",
		"start_time",
		"end_time",
		"run_duration_ms",
		"input_file",
		"objective",
		"method",
		"total_periods",
		"best_period",
		"best_power",
		"config_params",
	}

	for _, colName := range expectedColumns {
		col, ok := schema.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestWriteSearchPeaks(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "search_peaks.parquet")

	data := samplePeaks()
	err := WriteSearchPeaks(data, outputPath)
	require.NoError(t, err, "Writing Parquet file should not produce error")

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should not be empty")

	file, err := os.Open(outputPath)
	require.NoError(t, err, "Should be able to open output file")
	defer file.Close()

	reader := parquet.NewGenericReader[SearchPeak](file)
	defer reader.Close()

	readData := make([]SearchPeak, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err, "Should be able to read data")
	}
	assert.Equal(t, len(data), n, "Should read all records")

	for i := 0; i < len(data); i++ {
		assert.Equal(t, data[i].RunID, readData[i].RunID, "RunID should match")
		assert.Equal(t, data[i].Rank, readData[i].Rank, "Rank should match")
		assert.Equal(t, data[i].Period, readData[i].Period, "Period should match")
		assert.Equal(t, data[i].Power, readData[i].Power, "Power should match")
		assert.Equal(t, data[i].Duration, readData[i].Duration, "Duration should match")
		assert.Equal(t, data[i].TransitTime, readData[i].TransitTime, "TransitTime should match")
		assert.Equal(t, data[i].Depth, readData[i].Depth, "Depth should match")
		assert.Equal(t, data[i].DepthErr, readData[i].DepthErr, "DepthErr should match")
		assert.Equal(t, data[i].DepthSNR, readData[i].DepthSNR, "DepthSNR should match")
		assert.Equal(t, data[i].LogLikelihood, readData[i].LogLikelihood, "LogLikelihood should match")
		assert.Equal(t, data[i].Label, readData[i].Label, "Label should match")
	}
}

func TestWriteSearchRuns(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "search_runs.parquet")

	data := sampleRuns()
	err := WriteSearchRuns(data, outputPath)
	require.NoError(t, err, "Writing Parquet file should not produce error")

	file, err := os.Open(outputPath)
	require.NoError(t, err, "Should be able to open output file")
	defer file.Close()

	reader := parquet.NewGenericReader[SearchRun](file)
	defer reader.Close()

	readData := make([]SearchRun, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err, "Should be able to read data")
	}
	assert.Equal(t, len(data), n, "Should read all records")

	for i := 0; i < len(data); i++ {
		assert.Equal(t, data[i].RunID, readData[i].RunID, "RunID should match")
		assert.WithinDuration(t, data[i].StartTime, readData[i].StartTime, time.Nanosecond, "StartTime should match")
		assert.Equal(t, data[i].InputFile, readData[i].InputFile, "InputFile should match")
		assert.Equal(t, data[i].Objective, readData[i].Objective, "Objective should match")
		assert.Equal(t, data[i].Method, readData[i].Method, "Method should match")
		assert.Equal(t, data[i].TotalPeriods, readData[i].TotalPeriods, "TotalPeriods should match")
		assert.Equal(t, data[i].BestPeriod, readData[i].BestPeriod, "BestPeriod should match")
		assert.Equal(t, data[i].BestPower, readData[i].BestPower, "BestPower should match")

		if data[i].EndTime == nil {
			assert.Nil(t, readData[i].EndTime, "EndTime should be nil")
		} else {
			require.NotNil(t, readData[i].EndTime, "EndTime should not be nil")
			assert.WithinDuration(t, *data[i].EndTime, *readData[i].EndTime, time.Nanosecond, "EndTime should match")
		}

		if data[i].RunDurationMs == nil {
			assert.Nil(t, readData[i].RunDurationMs, "RunDurationMs should be nil")
		} else {
			require.NotNil(t, readData[i].RunDurationMs, "RunDurationMs should not be nil")
			assert.Equal(t, *data[i].RunDurationMs, *readData[i].RunDurationMs, "RunDurationMs should match")
		}

		if data[i].ConfigParams == nil {
			assert.Nil(t, readData[i].ConfigParams, "ConfigParams should be nil")
		} else {
			require.NotNil(t, readData[i].ConfigParams, "ConfigParams should not be nil")
			assert.Equal(t, *data[i].ConfigParams, *readData[i].ConfigParams, "ConfigParams should match")
		}
	}
}

func TestWriteSearchPeaks_EmptyData(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "empty_peaks.parquet")

	err := WriteSearchPeaks([]SearchPeak{}, outputPath)
	require.NoError(t, err, "Writing empty data should not produce error")

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should contain schema even if empty")
}

func TestWriteSearchPeaks_InvalidPath(t *testing.T) {
	err := WriteSearchPeaks(samplePeaks(), "/nonexistent/directory/output.parquet")
	require.Error(t, err, "Writing to invalid path should produce error")
}

func TestReadLightCurve(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "lightcurve.parquet")

	fluxErr := 0.01
	rows := []LightCurveRow{
		{Time: 0.0, Flux: 1.0, FluxErr: &fluxErr},
		{Time: 0.5, Flux: 0.8, FluxErr: &fluxErr},
		{Time: 1.0, Flux: 1.01, FluxErr: nil},
	}

	file, err := os.Create(path)
	require.NoError(t, err)
	writer := parquet.NewGenericWriter[LightCurveRow](file)
	_, err = writer.Write(rows)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	require.NoError(t, file.Close())

	readRows, err := ReadLightCurve(path)
	require.NoError(t, err)
	require.Len(t, readRows, len(rows))

	for i := range rows {
		assert.Equal(t, rows[i].Time, readRows[i].Time, "Time should match")
		assert.Equal(t, rows[i].Flux, readRows[i].Flux, "Flux should match")
		if rows[i].FluxErr == nil {
			assert.Nil(t, readRows[i].FluxErr, "FluxErr should be nil")
		} else {
			require.NotNil(t, readRows[i].FluxErr, "FluxErr should not be nil")
			assert.Equal(t, *rows[i].FluxErr, *readRows[i].FluxErr, "FluxErr should match")
		}
	}
}

func TestReadLightCurve_MissingFile(t *testing.T) {
	_, err := ReadLightCurve("/nonexistent/lightcurve.parquet")
	require.Error(t, err, "Reading a missing file should produce error")
}
