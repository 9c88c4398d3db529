// Package pipeline runs a plan of load, resample, derive, align and chart steps.
package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sartorproj/econseries/resample"
)

// StepKind names what a step does.
type StepKind string

const (
	// StepSummary logs the dataset summary and its first rows.
	StepSummary StepKind = "summary"
	// StepPlot optionally resamples the input and saves a line chart.
	StepPlot StepKind = "plot"
	// StepDerive resamples the input and registers the result under Output.
	StepDerive StepKind = "derive"
	// StepAlign outer-joins the inputs, relabels columns and saves a line chart.
	StepAlign StepKind = "align"
	// StepACF computes the autocorrelation of one column and saves a correlogram.
	StepACF StepKind = "acf"
)

// Dataset is a CSV file loaded into the registry under Name.
type Dataset struct {
	Name       string   `yaml:"name"`
	File       string   `yaml:"file"`
	DateColumn string   `yaml:"date_column,omitempty"`
	Columns    []string `yaml:"columns,omitempty"`
}

// Step is one stage of a plan. Fields not used by a kind are ignored.
type Step struct {
	Kind   StepKind       `yaml:"kind"`
	Title  string         `yaml:"title,omitempty"`
	Input  string         `yaml:"input,omitempty"`
	Inputs []string       `yaml:"inputs,omitempty"`
	Output string         `yaml:"output,omitempty"`
	Rule   *resample.Rule `yaml:"rule,omitempty"`
	Labels []string       `yaml:"labels,omitempty"`
	Column string         `yaml:"column,omitempty"`
	Lags   int            `yaml:"lags,omitempty"`
	Rows   int            `yaml:"rows,omitempty"`
	// Export names a CSV file, written to the output directory, holding the
	// series a derive or align step registers under Output.
	Export string `yaml:"export,omitempty"`
}

// Plan lists the datasets to load and the steps to run over them, in order.
type Plan struct {
	Datasets []Dataset `yaml:"datasets"`
	Steps    []Step    `yaml:"steps"`
}

// ErrEmptyPlan is returned for a plan without datasets or steps.
var ErrEmptyPlan = errors.New("plan has no datasets or no steps")

func rule(f resample.Frequency, a resample.Aggregation) *resample.Rule {
	return &resample.Rule{Frequency: f, Aggregation: a}
}

// DefaultPlan charts GDP growth and the DJIA at daily, weekly, monthly and
// annual frequency, derives quarterly DJIA returns, charts them against GDP
// growth and draws the GDP growth correlogram with acfLags lags.
func DefaultPlan(acfLags int) *Plan {
	return &Plan{
		Datasets: []Dataset{
			{Name: "gdp_growth", File: "gdp_growth.csv"},
			{Name: "djia", File: "djia.csv"},
		},
		Steps: []Step{
			{Kind: StepSummary, Input: "gdp_growth", Rows: 10},
			{Kind: StepPlot, Input: "gdp_growth", Title: "GDP Growth (Daily)", Rule: rule(resample.Daily, resample.First)},
			{Kind: StepPlot, Input: "gdp_growth", Title: "GDP Growth (Weekly)", Rule: rule(resample.Weekly, resample.First)},
			{Kind: StepPlot, Input: "gdp_growth", Title: "GDP Growth (Monthly)", Rule: rule(resample.Monthly, resample.First)},
			{Kind: StepPlot, Input: "gdp_growth", Title: "GDP Growth (Annual)", Rule: rule(resample.Annual, resample.First)},

			{Kind: StepSummary, Input: "djia"},
			{Kind: StepPlot, Input: "djia", Title: "Dow Jones Industrial Average (DJIA) Daily"},
			{Kind: StepPlot, Input: "djia", Title: "Dow Jones Industrial Average (Weekly)", Rule: rule(resample.Weekly, resample.First)},
			{Kind: StepPlot, Input: "djia", Title: "Dow Jones Industrial Average (Monthly)", Rule: rule(resample.Monthly, resample.First)},
			{Kind: StepPlot, Input: "djia", Title: "Dow Jones Industrial Average (Annual)", Rule: rule(resample.Annual, resample.First)},

			{Kind: StepDerive, Input: "djia", Output: "djia_quarterly_return", Rule: rule(resample.QuarterStart, resample.PctChange)},
			{
				Kind:   StepAlign,
				Inputs: []string{"gdp_growth", "djia_quarterly_return"},
				Labels: []string{"GDP Growth", "DJIA Quarterly Returns"},
				Title:  "DJIA Quarterly Returns and GDP Growth",
			},

			{Kind: StepACF, Input: "gdp_growth", Lags: acfLags, Title: fmt.Sprintf("Autocorrelation of GDP Growth (lags=%d)", acfLags)},
		},
	}
}

// LoadPlan reads a YAML plan from a file.
func LoadPlan(filename string) (*Plan, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	plan, err := DecodePlan(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("plan %s: %w", filename, err)
	}
	return plan, nil
}

// DecodePlan reads and validates a YAML plan. Unknown fields are rejected.
func DecodePlan(r io.Reader) (*Plan, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var plan Plan
	if err := dec.Decode(&plan); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	return &plan, nil
}

// Validate checks that every step is complete and only refers to datasets
// loaded or produced before it.
func (p *Plan) Validate() error {
	if len(p.Datasets) == 0 || len(p.Steps) == 0 {
		return ErrEmptyPlan
	}

	known := make(map[string]bool)
	for _, ds := range p.Datasets {
		if ds.Name == "" || ds.File == "" {
			return fmt.Errorf("dataset needs a name and a file: %+v", ds)
		}
		if known[ds.Name] {
			return fmt.Errorf("duplicate dataset %q", ds.Name)
		}
		known[ds.Name] = true
	}

	ref := func(i int, name string) error {
		if !known[name] {
			return fmt.Errorf("step %d: unknown input %q", i+1, name)
		}
		return nil
	}

	for i, st := range p.Steps {
		if st.Rule != nil {
			if err := st.Rule.Validate(); err != nil {
				return fmt.Errorf("step %d: %w", i+1, err)
			}
		}
		switch st.Kind {
		case StepSummary:
			if err := ref(i, st.Input); err != nil {
				return err
			}
		case StepPlot:
			if err := ref(i, st.Input); err != nil {
				return err
			}
			if st.Title == "" {
				return fmt.Errorf("step %d: plot needs a title", i+1)
			}
		case StepDerive:
			if err := ref(i, st.Input); err != nil {
				return err
			}
			if st.Rule == nil || st.Output == "" {
				return fmt.Errorf("step %d: derive needs a rule and an output", i+1)
			}
			if known[st.Output] {
				return fmt.Errorf("step %d: output %q already exists", i+1, st.Output)
			}
			known[st.Output] = true
		case StepAlign:
			if len(st.Inputs) < 2 {
				return fmt.Errorf("step %d: align needs at least two inputs", i+1)
			}
			for _, in := range st.Inputs {
				if err := ref(i, in); err != nil {
					return err
				}
			}
			if st.Title == "" {
				return fmt.Errorf("step %d: align needs a title", i+1)
			}
			if st.Output != "" {
				if known[st.Output] {
					return fmt.Errorf("step %d: output %q already exists", i+1, st.Output)
				}
				known[st.Output] = true
			}
		case StepACF:
			if err := ref(i, st.Input); err != nil {
				return err
			}
			if st.Title == "" {
				return fmt.Errorf("step %d: acf needs a title", i+1)
			}
			if st.Lags < 0 {
				return fmt.Errorf("step %d: lags must not be negative", i+1)
			}
		default:
			return fmt.Errorf("step %d: unknown kind %q", i+1, st.Kind)
		}
		if st.Export != "" && ((st.Kind != StepDerive && st.Kind != StepAlign) || st.Output == "") {
			return fmt.Errorf("step %d: export needs a derive or align step with an output", i+1)
		}
	}
	return nil
}
