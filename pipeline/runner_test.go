package pipeline

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/sartorproj/econseries/chart"
	"github.com/sartorproj/econseries/resample"
)

// writeData writes twelve quarters of GDP growth and three years of
// weekday DJIA closes into dir.
func writeData(t *testing.T, dir string) {
	t.Helper()

	var gdp strings.Builder
	gdp.WriteString("date,gdp_growth\n")
	q := time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 12; i++ {
		value := fmt.Sprintf("%.1f", 2+3*math.Sin(float64(i)))
		if i == 5 {
			value = ""
		}
		fmt.Fprintf(&gdp, "%s,%s\n", q.AddDate(0, 3*i, 0).Format("2006-01-02"), value)
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gdp_growth.csv"), []byte(gdp.String()), 0o644))

	var djia strings.Builder
	djia.WriteString("date,djia\n")
	day := time.Date(2019, 1, 2, 0, 0, 0, 0, time.UTC)
	for i := 0; day.Year() < 2022; day = day.AddDate(0, 0, 1) {
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			continue
		}
		fmt.Fprintf(&djia, "%s,%.2f\n", day.Format("2006-01-02"), 23000+float64(i)*10+200*math.Sin(float64(i)/15))
		i++
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "djia.csv"), []byte(djia.String()), 0o644))
}

func TestRunDefaultPlan(t *testing.T) {
	dataDir, outDir := t.TempDir(), filepath.Join(t.TempDir(), "charts")
	writeData(t, dataDir)

	core, logs := observer.New(zap.InfoLevel)
	runner := NewRunner(Settings{
		DataDir:   dataDir,
		OutputDir: outDir,
		Width:     400,
		Height:    300,
		ACFLags:   5,
	}, zap.New(core).Sugar())

	artifacts, err := runner.Run(DefaultPlan(5))
	require.NoError(t, err)
	require.Len(t, artifacts, 10)

	for _, a := range artifacts {
		info, err := os.Stat(a.Path)
		require.NoError(t, err, a.Title)
		assert.Equal(t, info.Size(), a.Size)
		assert.Equal(t, outDir, filepath.Dir(a.Path))
	}

	assert.FileExists(t, filepath.Join(outDir, "GDP Growth (Daily).png"))
	assert.FileExists(t, filepath.Join(outDir, "Dow Jones Industrial Average (DJIA) Daily.png"))
	assert.FileExists(t, filepath.Join(outDir, "DJIA Quarterly Returns and GDP Growth.png"))
	assert.FileExists(t, filepath.Join(outDir, "Autocorrelation of GDP Growth (lags=5).jpg"))

	derived, ok := runner.Series("djia_quarterly_return")
	require.True(t, ok)
	assert.Equal(t, 12, derived.Len())
	assert.False(t, derived.Columns[0].Values[0].Valid)
	assert.True(t, derived.Columns[0].Values[1].Valid)

	assert.Equal(t, 2, logs.FilterMessage("loaded dataset").Len())
	assert.Equal(t, 10, logs.FilterMessage("file saved").Len())
	acf := logs.FilterMessage("autocorrelation").All()
	require.Len(t, acf, 1)
	assert.EqualValues(t, 1, acf[0].ContextMap()["dropped"])
	assert.Contains(t, acf[0].ContextMap(), "significant_white_noise")
}

func TestRunIsRepeatable(t *testing.T) {
	dataDir, outDir := t.TempDir(), t.TempDir()
	writeData(t, dataDir)
	settings := Settings{DataDir: dataDir, OutputDir: outDir, Width: 300, Height: 200, ACFLags: 4}

	first, err := NewRunner(settings, nil).Run(DefaultPlan(4))
	require.NoError(t, err)
	second, err := NewRunner(settings, nil).Run(DefaultPlan(4))
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].Path, second[i].Path)
	}
	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Len(t, entries, len(first))
}

func TestRunMissingFile(t *testing.T) {
	runner := NewRunner(Settings{DataDir: t.TempDir(), OutputDir: t.TempDir()}, nil)

	artifacts, err := runner.Run(DefaultPlan(20))
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.ErrorContains(t, err, "load gdp_growth")
	assert.Empty(t, artifacts)
}

func TestRunStopsAtFailingStep(t *testing.T) {
	dataDir := t.TempDir()
	writeData(t, dataDir)

	plan := &Plan{
		Datasets: []Dataset{{Name: "gdp", File: "gdp_growth.csv"}},
		Steps: []Step{
			{Kind: StepPlot, Input: "gdp", Title: "GDP"},
			{Kind: StepACF, Input: "gdp", Column: "inflation", Title: "ACF"},
			{Kind: StepPlot, Input: "gdp", Title: "never"},
		},
	}

	artifacts, err := NewRunner(Settings{DataDir: dataDir, OutputDir: t.TempDir()}, nil).Run(plan)
	require.Error(t, err)
	assert.ErrorContains(t, err, "step 2")
	assert.Len(t, artifacts, 1)
}

func TestRunSelectsColumns(t *testing.T) {
	dataDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "prices.csv"),
		[]byte("DATE,open,close\n2020-01-02,1,2\n2020-01-03,3,4\n"), 0o644))

	plan := &Plan{
		Datasets: []Dataset{{Name: "prices", File: "prices.csv", DateColumn: "DATE", Columns: []string{"close"}}},
		Steps:    []Step{{Kind: StepSummary, Input: "prices", Rows: 2}},
	}

	runner := NewRunner(Settings{DataDir: dataDir, OutputDir: t.TempDir()}, nil)
	artifacts, err := runner.Run(plan)
	require.NoError(t, err)
	assert.Empty(t, artifacts)

	s, ok := runner.Series("prices")
	require.True(t, ok)
	assert.Equal(t, []string{"close"}, s.ColumnNames())
}

func TestRunExportsDerivedAndAligned(t *testing.T) {
	dataDir, outDir := t.TempDir(), t.TempDir()
	writeData(t, dataDir)

	plan := &Plan{
		Datasets: []Dataset{
			{Name: "gdp_growth", File: "gdp_growth.csv"},
			{Name: "djia", File: "djia.csv"},
		},
		Steps: []Step{
			{
				Kind:   StepDerive,
				Input:  "djia",
				Output: "djia_q",
				Rule:   &resample.Rule{Frequency: resample.QuarterStart, Aggregation: resample.PctChange},
				Export: "DJIA Quarterly Returns",
			},
			{
				Kind:   StepAlign,
				Inputs: []string{"gdp_growth", "djia_q"},
				Labels: []string{"GDP Growth", "DJIA Quarterly Returns"},
				Title:  "Quarterly",
				Output: "quarterly",
				Export: "quarterly/data",
			},
		},
	}

	artifacts, err := NewRunner(Settings{DataDir: dataDir, OutputDir: outDir, Width: 300, Height: 200}, nil).Run(plan)
	require.NoError(t, err)
	require.Len(t, artifacts, 3)

	assert.Equal(t, filepath.Join(outDir, "DJIA Quarterly Returns.csv"), artifacts[0].Path)
	assert.Equal(t, filepath.Join(outDir, "Quarterly.png"), artifacts[1].Path)
	assert.Equal(t, filepath.Join(outDir, "quarterly_data.csv"), artifacts[2].Path)

	data, err := os.ReadFile(artifacts[2].Path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Equal(t, "date,GDP Growth,DJIA Quarterly Returns", lines[0])
	assert.Len(t, lines, 13)
	// first quarter has no return baseline
	assert.True(t, strings.HasPrefix(lines[1], "2019-01-01,"))
	assert.True(t, strings.HasSuffix(lines[1], ","))
}

func TestCorrelogramUsesLagLabels(t *testing.T) {
	r := NewRunner(Settings{Width: 400, Height: 300}, nil)

	opts := r.sized(chart.CorrelogramOptions("ACF"))
	assert.Equal(t, "Lag", opts.XLabel)
	assert.Equal(t, "Autocorrelation", opts.YLabel)
	assert.Equal(t, 400, opts.Width)
	assert.Equal(t, 300, opts.Height)

	lines := r.sized(chart.DefaultOptions("GDP"))
	assert.Equal(t, "Date", lines.XLabel)
}
