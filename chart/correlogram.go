package chart

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/sartorproj/econseries/stats"
)

var (
	stemColor = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	bandColor = color.RGBA{R: 31, G: 119, B: 180, A: 48}
	axisColor = color.RGBA{R: 60, G: 60, B: 60, A: 255}
	gridColor = color.RGBA{R: 229, G: 229, B: 229, A: 255}
)

const (
	marginLeft   = 70.0
	marginRight  = 30.0
	marginTop    = 50.0
	marginBottom = 60.0
)

// DrawCorrelogram draws a stem plot of the autocorrelations in result with a
// shaded Bartlett confidence band, lag 0 included.
func DrawCorrelogram(result *stats.ACFResult, opts Options) image.Image {
	width, height := opts.Width, opts.Height
	if width <= 0 {
		width = 1000
	}
	if height <= 0 {
		height = 600
	}

	dc := gg.NewContext(width, height)
	dc.SetColor(color.White)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	plotW := float64(width) - marginLeft - marginRight
	plotH := float64(height) - marginTop - marginBottom
	maxLag := float64(len(result.Values) - 1)
	if maxLag < 1 {
		maxLag = 1
	}

	// Lags map to [-0.5, maxLag+0.5], correlations to [-1, 1].
	x := func(lag float64) float64 {
		return marginLeft + (lag+0.5)/(maxLag+1)*plotW
	}
	y := func(v float64) float64 {
		return marginTop + (1-v)/2*plotH
	}

	// grid and y ticks
	dc.SetLineWidth(1)
	for _, v := range []float64{-1, -0.5, 0, 0.5, 1} {
		dc.SetColor(gridColor)
		dc.DrawLine(marginLeft, y(v), marginLeft+plotW, y(v))
		dc.Stroke()
		dc.SetColor(axisColor)
		dc.DrawStringAnchored(fmt.Sprintf("%.1f", v), marginLeft-8, y(v), 1, 0.5)
	}

	// confidence band, drawn from lag 1 onwards
	if len(result.Bands) > 1 {
		dc.SetColor(bandColor)
		dc.MoveTo(x(0.5), y(result.Bands[1]))
		for k := 1; k < len(result.Bands); k++ {
			dc.LineTo(x(float64(k)), y(result.Bands[k]))
		}
		dc.LineTo(x(maxLag+0.5), y(result.Bands[len(result.Bands)-1]))
		dc.LineTo(x(maxLag+0.5), y(-result.Bands[len(result.Bands)-1]))
		for k := len(result.Bands) - 1; k >= 1; k-- {
			dc.LineTo(x(float64(k)), y(-result.Bands[k]))
		}
		dc.LineTo(x(0.5), y(-result.Bands[1]))
		dc.ClosePath()
		dc.Fill()
	}

	// zero line
	dc.SetColor(axisColor)
	dc.SetLineWidth(1)
	dc.DrawLine(marginLeft, y(0), marginLeft+plotW, y(0))
	dc.Stroke()

	// stems and markers
	tickEvery := int(math.Ceil(maxLag / 20))
	for k, v := range result.Values {
		lag := float64(k)
		dc.SetColor(stemColor)
		dc.SetLineWidth(1.5)
		dc.DrawLine(x(lag), y(0), x(lag), y(v))
		dc.Stroke()
		dc.DrawCircle(x(lag), y(v), 4)
		dc.Fill()

		if k%tickEvery == 0 {
			dc.SetColor(axisColor)
			dc.DrawStringAnchored(fmt.Sprintf("%d", k), x(lag), marginTop+plotH+14, 0.5, 0.5)
		}
	}

	// frame
	dc.SetColor(axisColor)
	dc.SetLineWidth(1)
	dc.DrawRectangle(marginLeft, marginTop, plotW, plotH)
	dc.Stroke()

	// labels
	dc.DrawStringAnchored(opts.Title, float64(width)/2, marginTop/2, 0.5, 0.5)
	xLabel := opts.XLabel
	if xLabel == "" {
		xLabel = "Lag"
	}
	dc.DrawStringAnchored(xLabel, marginLeft+plotW/2, float64(height)-marginBottom/3, 0.5, 0.5)
	yLabel := opts.YLabel
	if yLabel == "" {
		yLabel = "Autocorrelation"
	}
	dc.Push()
	dc.RotateAbout(gg.Radians(-90), marginLeft/4, marginTop+plotH/2)
	dc.DrawStringAnchored(yLabel, marginLeft/4, marginTop+plotH/2, 0.5, 0.5)
	dc.Pop()

	return dc.Image()
}

// RenderCorrelogram draws the correlogram and encodes it to w in format.
func RenderCorrelogram(w io.Writer, result *stats.ACFResult, opts Options, format Format) error {
	return format.encode(w, DrawCorrelogram(result, opts))
}
