// Package chart renders series and correlograms to image files.
package chart

import (
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/guregu/null/v6"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/sartorproj/econseries/timeseries"
)

// ErrNothingToPlot is returned when a series has no present value in any column.
var ErrNothingToPlot = errors.New("series has no values to plot")

// Options controls chart size and labels.
type Options struct {
	Title  string
	Width  int
	Height int
	XLabel string
	YLabel string
}

// DefaultOptions returns a 1000x600 chart with date/value axis labels.
func DefaultOptions(title string) Options {
	return Options{
		Title:  title,
		Width:  1000,
		Height: 600,
		XLabel: "Date",
		YLabel: "Value",
	}
}

// CorrelogramOptions returns a 1000x600 chart with lag/autocorrelation axis labels.
func CorrelogramOptions(title string) Options {
	opts := DefaultOptions(title)
	opts.XLabel = "Lag"
	opts.YLabel = "Autocorrelation"
	return opts
}

var gridStyle = gochart.Style{
	StrokeColor: drawing.ColorFromHex("e5e5e5"),
	StrokeWidth: 1,
}

// RenderLines draws every column of series as a line and writes a PNG to w.
// Missing cells break the line; a present value with missing neighbours is
// drawn as a dot. The legend lists each column once.
func RenderLines(w io.Writer, series *timeseries.Series, opts Options) error {
	font, err := gochart.GetDefaultFont()
	if err != nil {
		return fmt.Errorf("load chart font: %w", err)
	}

	var (
		plotted []gochart.Series
		legend  []gochart.Series
		xs      []time.Time
		ys      []float64
	)
	for i, c := range series.Columns {
		color := gochart.GetDefaultColor(i)
		line := gochart.Style{
			StrokeColor: color,
			StrokeWidth: 2.5,
		}

		runs := segments(series.Timestamps, c.Values)
		if len(runs) == 0 {
			continue
		}
		for _, r := range runs {
			style := line
			if len(r.x) == 1 {
				style.DotColor = color
				style.DotWidth = 3
			}
			plotted = append(plotted, gochart.TimeSeries{
				Name:    c.Name,
				Style:   style,
				XValues: r.x,
				YValues: r.y,
			})
			xs = append(xs, r.x...)
			ys = append(ys, r.y...)
		}
		legend = append(legend, gochart.TimeSeries{Name: c.Name, Style: line})
	}
	if len(plotted) == 0 {
		return ErrNothingToPlot
	}

	ch := gochart.Chart{
		Title:  opts.Title,
		Width:  opts.Width,
		Height: opts.Height,
		Font:   font,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: gochart.XAxis{
			Name:           opts.XLabel,
			ValueFormatter: gochart.TimeValueFormatterWithFormat("2006-01-02"),
			Range:          timeRange(xs),
			GridMajorStyle: gridStyle,
		},
		YAxis: gochart.YAxis{
			Name:           opts.YLabel,
			Range:          valueRange(ys),
			GridMajorStyle: gridStyle,
		},
		Series: plotted,
	}

	// The legend reads its entries from a chart holding one series per column,
	// so split lines do not repeat a name.
	legendChart := gochart.Chart{Font: font, Series: legend}
	ch.Elements = []gochart.Renderable{gochart.Legend(&legendChart)}

	if err := ch.Render(gochart.PNG, w); err != nil {
		return fmt.Errorf("render %q: %w", opts.Title, err)
	}
	return nil
}

type run struct {
	x []time.Time
	y []float64
}

// segments splits a column into maximal runs of present values.
func segments(ts []time.Time, values []null.Float) []run {
	var (
		runs []run
		cur  run
	)
	for i, v := range values {
		if !v.Valid {
			if len(cur.x) > 0 {
				runs = append(runs, cur)
				cur = run{}
			}
			continue
		}
		cur.x = append(cur.x, ts[i])
		cur.y = append(cur.y, v.Float64)
	}
	if len(cur.x) > 0 {
		runs = append(runs, cur)
	}
	return runs
}

// timeRange returns nil (auto range) unless every point shares one timestamp,
// in which case it pads a day either side.
func timeRange(xs []time.Time) gochart.Range {
	first := xs[0]
	for _, x := range xs[1:] {
		if !x.Equal(first) {
			return nil
		}
	}
	return &gochart.ContinuousRange{
		Min: gochart.TimeToFloat64(first.AddDate(0, 0, -1)),
		Max: gochart.TimeToFloat64(first.AddDate(0, 0, 1)),
	}
}

// valueRange returns nil (auto range) unless all values are equal.
func valueRange(ys []float64) gochart.Range {
	first := ys[0]
	for _, y := range ys[1:] {
		if y != first {
			return nil
		}
	}
	pad := 1.0
	if first != 0 {
		pad = math.Abs(first) * 0.1
	}
	return &gochart.ContinuousRange{Min: first - pad, Max: first + pad}
}
