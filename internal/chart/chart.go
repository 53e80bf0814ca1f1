package chart

import (
	"errors"
	"fmt"
	"image/color"
	"io"

	"github.com/guregu/null/v6"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"trendforge/internal/ta"
)

var ErrNoData = errors.New("nothing to plot")

var (
	priceColor  = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	rsiColor    = color.RGBA{R: 148, G: 103, B: 189, A: 255}
	macdColor   = color.RGBA{R: 44, G: 160, B: 44, A: 255}
	signalColor = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	guideColor  = color.RGBA{R: 128, G: 128, B: 128, A: 255}
)

// Options controls the output image size
type Options struct {
	Width  vg.Length
	Height vg.Length
}

func DefaultOptions() Options {
	return Options{Width: 10 * vg.Inch, Height: 8 * vg.Inch}
}

// Render writes a PNG with three stacked panels: price, RSI with 70/30
// guides, and MACD with its signal line around zero.
func Render(f ta.Frame, label string, w io.Writer, opts Options) error {
	if f.Series.Empty() {
		return ErrNoData
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		opts = DefaultOptions()
	}

	xs := timestamps(f)
	start, end := xs[0], xs[len(xs)-1]

	price, err := pricePanel(f, xs, label)
	if err != nil {
		return err
	}
	rsi, err := rsiPanel(f, xs, start, end)
	if err != nil {
		return err
	}
	macd, err := macdPanel(f, xs, start, end)
	if err != nil {
		return err
	}

	img := vgimg.New(opts.Width, opts.Height)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows:      3,
		Cols:      1,
		PadTop:    vg.Points(4),
		PadBottom: vg.Points(4),
		PadLeft:   vg.Points(4),
		PadRight:  vg.Points(8),
		PadY:      vg.Points(12),
	}
	plots := [][]*plot.Plot{{price}, {rsi}, {macd}}
	canvases := plot.Align(plots, tiles, dc)
	for i := range plots {
		plots[i][0].Draw(canvases[i][0])
	}

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return fmt.Errorf("failed to encode chart: %w", err)
	}
	return nil
}

func timestamps(f ta.Frame) []float64 {
	xs := make([]float64, f.Series.Len())
	for i := range xs {
		xs[i] = float64(f.Series.At(i).Time.Unix())
	}
	return xs
}

func newPanel(title, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = ylabel
	p.X.Tick.Marker = plot.TimeTicks{Format: "Jan 02"}
	p.Add(plotter.NewGrid())
	p.Legend.Top = true
	return p
}

func pricePanel(f ta.Frame, xs []float64, label string) (*plot.Plot, error) {
	p := newPanel(label+" Price (30 Days)", "USD")

	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i] = plotter.XY{X: xs[i], Y: f.Series.At(i).Price}
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, fmt.Errorf("price line: %w", err)
	}
	line.Color = priceColor
	p.Add(line)
	p.Legend.Add("Price", line)
	return p, nil
}

func rsiPanel(f ta.Frame, xs []float64, start, end float64) (*plot.Plot, error) {
	p := newPanel(fmt.Sprintf("RSI (%d)", f.Params.RSIPeriod), "RSI")
	p.Y.Min, p.Y.Max = 0, 100

	for _, level := range []float64{ta.Overbought, ta.Oversold} {
		guide, err := horizontal(level, start, end)
		if err != nil {
			return nil, err
		}
		p.Add(guide)
	}

	if pts := validXYs(xs, f.RSI); len(pts) > 0 {
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("rsi line: %w", err)
		}
		line.Color = rsiColor
		p.Add(line)
		p.Legend.Add("RSI", line)
	}
	return p, nil
}

func macdPanel(f ta.Frame, xs []float64, start, end float64) (*plot.Plot, error) {
	p := newPanel(fmt.Sprintf("MACD (%d, %d, %d)", f.Params.MACDFast, f.Params.MACDSlow, f.Params.MACDSignal), "MACD")

	zero, err := horizontal(0, start, end)
	if err != nil {
		return nil, err
	}
	p.Add(zero)

	for _, s := range []struct {
		name  string
		col   []null.Float
		color color.Color
	}{
		{"MACD", f.MACD, macdColor},
		{"Signal", f.Signal, signalColor},
	} {
		pts := validXYs(xs, s.col)
		if len(pts) == 0 {
			continue
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("%s line: %w", s.name, err)
		}
		line.Color = s.color
		p.Add(line)
		p.Legend.Add(s.name, line)
	}
	return p, nil
}

func horizontal(y, start, end float64) (*plotter.Line, error) {
	l, err := plotter.NewLine(plotter.XYs{{X: start, Y: y}, {X: end, Y: y}})
	if err != nil {
		return nil, err
	}
	l.Color = guideColor
	l.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	return l, nil
}

// validXYs drops absent values so lines start where the indicator is defined
func validXYs(xs []float64, col []null.Float) plotter.XYs {
	pts := make(plotter.XYs, 0, len(col))
	for i, v := range col {
		if i < len(xs) && v.Valid {
			pts = append(pts, plotter.XY{X: xs[i], Y: v.Float64})
		}
	}
	return pts
}
