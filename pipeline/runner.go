package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/sartorproj/econseries/chart"
	"github.com/sartorproj/econseries/resample"
	"github.com/sartorproj/econseries/stats"
	"github.com/sartorproj/econseries/timeseries"
)

// Settings holds the run-wide knobs of a Runner.
type Settings struct {
	DataDir    string
	OutputDir  string
	DateColumn string
	Width      int
	Height     int
	ACFLags    int // used when an acf step leaves Lags at zero
}

// Artifact is a file written by a step.
type Artifact struct {
	Title string
	Path  string
	Size  int64
}

// Runner executes plans. It keeps every loaded or derived series by name for
// the duration of a run.
type Runner struct {
	settings Settings
	log      *zap.SugaredLogger
	series   map[string]*timeseries.Series
}

// NewRunner creates a runner. A nil logger discards output.
func NewRunner(settings Settings, log *zap.SugaredLogger) *Runner {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Runner{
		settings: settings,
		log:      log,
	}
}

// Run loads the plan's datasets and executes its steps in order, stopping at
// the first error. It returns the files written so far.
func (r *Runner) Run(plan *Plan) ([]Artifact, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	r.series = make(map[string]*timeseries.Series, len(plan.Datasets))

	for _, ds := range plan.Datasets {
		s, err := r.load(ds)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", ds.Name, err)
		}
		r.series[ds.Name] = s
	}

	var artifacts []Artifact
	for i, st := range plan.Steps {
		a, err := r.step(st)
		if err != nil {
			return artifacts, fmt.Errorf("step %d (%s %s): %w", i+1, st.Kind, st.Title, err)
		}
		if a != nil {
			artifacts = append(artifacts, *a)
		}
		if st.Export != "" {
			a, err := r.export(st)
			if err != nil {
				return artifacts, fmt.Errorf("step %d (%s %s): export: %w", i+1, st.Kind, st.Title, err)
			}
			artifacts = append(artifacts, *a)
		}
	}
	return artifacts, nil
}

// Series returns a series loaded or derived by the last run.
func (r *Runner) Series(name string) (*timeseries.Series, bool) {
	s, ok := r.series[name]
	return s, ok
}

func (r *Runner) load(ds Dataset) (*timeseries.Series, error) {
	opts := timeseries.DefaultCSVOptions()
	opts.Name = ds.Name
	opts.Columns = ds.Columns
	if r.settings.DateColumn != "" {
		opts.DateColumn = r.settings.DateColumn
	}
	if ds.DateColumn != "" {
		opts.DateColumn = ds.DateColumn
	}

	path := ds.File
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.settings.DataDir, path)
	}

	s, err := timeseries.LoadCSV(path, opts)
	if err != nil {
		return nil, err
	}
	r.log.Infow("loaded dataset",
		"dataset", ds.Name,
		"file", path,
		"rows", humanize.Comma(int64(s.Len())),
		"columns", s.ColumnNames(),
		"start", s.Start().Format("2006-01-02"),
		"end", s.End().Format("2006-01-02"),
	)
	return s, nil
}

func (r *Runner) step(st Step) (*Artifact, error) {
	switch st.Kind {
	case StepSummary:
		return nil, r.summary(st)
	case StepPlot:
		return r.plot(st)
	case StepDerive:
		return nil, r.derive(st)
	case StepAlign:
		return r.align(st)
	case StepACF:
		return r.acf(st)
	}
	return nil, fmt.Errorf("unknown step kind %q", st.Kind)
}

func (r *Runner) summary(st Step) error {
	s := r.series[st.Input]
	r.log.Infof("dataset summary\n%s", s.Describe())
	if st.Rows > 0 {
		r.log.Infof("first %d rows of %s\n%s", st.Rows, st.Input, s.Head(st.Rows).Table())
	}
	return nil
}

func (r *Runner) plot(st Step) (*Artifact, error) {
	s := r.series[st.Input]
	if st.Rule != nil {
		var err error
		s, err = resample.Resample(s, *st.Rule)
		if err != nil {
			return nil, err
		}
		r.log.Debugw("resampled", "dataset", st.Input, "rule", st.Rule.String(), "rows", s.Len())
	}
	return r.saveLines(st.Title, s)
}

func (r *Runner) derive(st Step) error {
	s, err := resample.Resample(r.series[st.Input], *st.Rule)
	if err != nil {
		return err
	}
	s.Name = st.Output
	r.series[st.Output] = s
	r.log.Infow("derived series",
		"input", st.Input,
		"output", st.Output,
		"rule", st.Rule.String(),
		"rows", s.Len(),
	)
	return nil
}

func (r *Runner) align(st Step) (*Artifact, error) {
	inputs := make([]*timeseries.Series, len(st.Inputs))
	for i, name := range st.Inputs {
		inputs[i] = r.series[name]
	}
	name := st.Output
	if name == "" {
		name = st.Title
	}
	aligned, err := timeseries.Align(name, st.Labels, inputs...)
	if err != nil {
		return nil, err
	}
	if st.Output != "" {
		r.series[st.Output] = aligned
	}
	r.log.Infow("aligned series", "inputs", st.Inputs, "columns", aligned.ColumnNames(), "rows", aligned.Len())
	return r.saveLines(st.Title, aligned)
}

func (r *Runner) acf(st Step) (*Artifact, error) {
	s := r.series[st.Input]
	column := st.Column
	if column == "" {
		column = s.Columns[0].Name
	}
	lags := st.Lags
	if lags == 0 {
		lags = r.settings.ACFLags
	}

	result, err := stats.Correlogram(s, column, lags)
	if err != nil {
		return nil, err
	}
	fields := []interface{}{
		"dataset", st.Input,
		"column", column,
		"n", result.N,
		"dropped", result.Dropped,
		"lags", len(result.Values) - 1,
		"significant", result.Significant(),
		"significant_white_noise", stats.SignificantLags(result.Values, result.ConfBounds),
	}
	if result.LjungBox != nil {
		fields = append(fields, "ljung_box_q", result.LjungBox.Statistic, "ljung_box_p", result.LjungBox.PValue)
	}
	if result.DW != nil {
		fields = append(fields, "durbin_watson", result.DW.Statistic)
	}
	if result.ADF != nil {
		fields = append(fields, "adf_stat", result.ADF.Statistic, "adf_p", result.ADF.PValue)
	}
	if result.KPSS != nil {
		fields = append(fields, "kpss_stat", result.KPSS.Statistic, "kpss_p", result.KPSS.PValue)
	}
	r.log.Infow("autocorrelation", fields...)

	path, err := chart.SaveCorrelogram(r.settings.OutputDir, result, r.sized(chart.CorrelogramOptions(st.Title)))
	if err != nil {
		return nil, err
	}
	return r.artifact(st.Title, path)
}

func (r *Runner) saveLines(title string, s *timeseries.Series) (*Artifact, error) {
	path, err := chart.SaveLines(r.settings.OutputDir, s, r.sized(chart.DefaultOptions(title)))
	if err != nil {
		return nil, err
	}
	return r.artifact(title, path)
}

// export writes the series registered under st.Output as CSV.
func (r *Runner) export(st Step) (*Artifact, error) {
	dir := r.settings.OutputDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	path := filepath.Join(dir, chart.FileName(st.Export, "csv"))
	if err := timeseries.SaveCSV(r.series[st.Output], path); err != nil {
		return nil, err
	}
	return r.artifact(st.Export, path)
}

// sized applies the configured chart size to opts.
func (r *Runner) sized(opts chart.Options) chart.Options {
	if r.settings.Width > 0 {
		opts.Width = r.settings.Width
	}
	if r.settings.Height > 0 {
		opts.Height = r.settings.Height
	}
	return opts
}

func (r *Runner) artifact(title, path string) (*Artifact, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	r.log.Infow("file saved", "title", title, "file", path, "size", humanize.Bytes(uint64(info.Size())))
	return &Artifact{Title: title, Path: path, Size: info.Size()}, nil
}
