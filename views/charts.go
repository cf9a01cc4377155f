package views

import (
	"bytes"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/ezoic/caloriedash/dataset"
	kcalErrors "github.com/ezoic/caloriedash/pkg/errors"
)

// Chart names, as served under /charts/.
const (
	ChartDurationCalories = "duration-calories"
	ChartCaloriesHist     = "calories-distribution"
	ChartCaloriesByType   = "calories-by-workout"
	ChartBMIHist          = "bmi-distribution"
	ChartBPMCalories      = "bpm-calories"
	ChartCorrelation      = "correlation"
)

const (
	histBins   = 30
	kdePoints  = 200
	chartWidth = 6 * vg.Inch
)

// Chart is one rendered EDA figure.
type Chart struct {
	Name    string
	Title   string
	Caption string
	SVG     []byte
}

type chartSpec struct {
	name    string
	title   string
	caption string
	height  vg.Length
	width   vg.Length
	build   func(d *dataset.Dataset) (*plot.Plot, error)
}

var chartSpecs = []chartSpec{
	{
		name:    ChartDurationCalories,
		title:   "Calories Burned vs Session Duration",
		caption: "Longer sessions burn more calories, with HIIT and Cardio sitting highest.",
		build: func(d *dataset.Dataset) (*plot.Plot, error) {
			return hueScatter(d, dataset.ColSessionDuration, dataset.ColCaloriesBurned, "Calories Burned vs Session Duration")
		},
	},
	{
		name:    ChartCaloriesHist,
		title:   "Distribution of Calories Burned",
		caption: "Calories burned per session with a kernel density estimate.",
		build: func(d *dataset.Dataset) (*plot.Plot, error) {
			return histogramKDE(d, dataset.ColCaloriesBurned, "Distribution of Calories Burned")
		},
	},
	{
		name:    ChartCaloriesByType,
		title:   "Calories Burned by Workout Type",
		caption: "Spread of calories burned for each workout type.",
		build:   caloriesBoxPlot,
	},
	{
		name:    ChartBMIHist,
		title:   "BMI Distribution",
		caption: "Body mass index of the members with a kernel density estimate.",
		build: func(d *dataset.Dataset) (*plot.Plot, error) {
			return histogramKDE(d, dataset.ColBMI, "BMI Distribution")
		},
	},
	{
		name:    ChartBPMCalories,
		title:   "Avg BPM vs Calories Burned",
		caption: "Higher average heart rate goes with more calories burned.",
		build: func(d *dataset.Dataset) (*plot.Plot, error) {
			return hueScatter(d, dataset.ColAvgBPM, dataset.ColCaloriesBurned, "Avg BPM vs Calories Burned")
		},
	},
	{
		name:    ChartCorrelation,
		title:   "Correlation Heatmap",
		caption: "Pearson correlation between the numeric columns, from -1 (blue) to 1 (red).",
		width:   8 * vg.Inch,
		height:  8 * vg.Inch,
		build:   correlationHeatmap,
	},
}

// RenderCharts draws every EDA chart for d as SVG, in display order.
func RenderCharts(d *dataset.Dataset) (charts []Chart, err error) {
	defer kcalErrors.Recover(&err, "views.RenderCharts")

	charts = make([]Chart, 0, len(chartSpecs))
	for _, spec := range chartSpecs {
		p, err := spec.build(d)
		if err != nil {
			return nil, kcalErrors.Wrapf(err, "build chart %s", spec.name)
		}

		w, h := spec.width, spec.height
		if w == 0 {
			w = chartWidth
		}
		if h == 0 {
			h = 4 * vg.Inch
		}
		svg, err := encodeSVG(p, w, h)
		if err != nil {
			return nil, kcalErrors.Wrapf(err, "render chart %s", spec.name)
		}
		charts = append(charts, Chart{Name: spec.name, Title: spec.title, Caption: spec.caption, SVG: svg})
	}
	return charts, nil
}

func encodeSVG(p *plot.Plot, w, h vg.Length) ([]byte, error) {
	wt, err := p.WriterTo(w, h, "svg")
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// hueScatter plots y against x with one colour per workout type.
func hueScatter(d *dataset.Dataset, x, y, title string) (*plot.Plot, error) {
	xs, err := d.GroupFloats(x, dataset.ColWorkoutType)
	if err != nil {
		return nil, err
	}
	ys, err := d.GroupFloats(y, dataset.ColWorkoutType)
	if err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = x
	p.Y.Label.Text = y
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	for i, g := range xs {
		pts := make(plotter.XYs, len(g.Values))
		for k := range pts {
			pts[k].X = g.Values[k]
			pts[k].Y = ys[i].Values[k]
		}
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, err
		}
		s.GlyphStyle.Color = plotutil.Color(i)
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		s.GlyphStyle.Radius = vg.Points(2.5)
		p.Add(s)
		p.Legend.Add(g.Name, s)
	}
	return p, nil
}

// histogramKDE plots a density-normalized histogram of column with a
// Gaussian kernel density estimate on top.
func histogramKDE(d *dataset.Dataset, column, title string) (*plot.Plot, error) {
	values, err := d.Floats(column)
	if err != nil {
		return nil, err
	}

	h, err := plotter.NewHist(plotter.Values(values), histBins)
	if err != nil {
		return nil, err
	}
	h.Normalize(1)
	h.FillColor = plotutil.Color(0)

	kde, err := plotter.NewLine(density(values, kdePoints))
	if err != nil {
		return nil, err
	}
	kde.LineStyle.Width = vg.Points(1.5)
	kde.LineStyle.Color = plotutil.Color(1)

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = column
	p.Y.Label.Text = "Density"
	p.Add(h, kde)
	return p, nil
}

// density evaluates a Gaussian KDE of values at n points spanning three
// bandwidths past either end of the data. The bandwidth follows Scott's rule.
func density(values []float64, n int) plotter.XYs {
	bw := stat.StdDev(values, nil) * math.Pow(float64(len(values)), -0.2)
	if bw == 0 || math.IsNaN(bw) {
		bw = 1
	}
	lo := floats.Min(values) - 3*bw
	hi := floats.Max(values) + 3*bw

	kernels := make([]distuv.Normal, len(values))
	for i, v := range values {
		kernels[i] = distuv.Normal{Mu: v, Sigma: bw}
	}

	pts := make(plotter.XYs, n)
	step := (hi - lo) / float64(n-1)
	for i := range pts {
		x := lo + step*float64(i)
		var sum float64
		for _, k := range kernels {
			sum += k.Prob(x)
		}
		pts[i] = plotter.XY{X: x, Y: sum / float64(len(values))}
	}
	return pts
}

func caloriesBoxPlot(d *dataset.Dataset) (*plot.Plot, error) {
	groups, err := d.GroupFloats(dataset.ColCaloriesBurned, dataset.ColWorkoutType)
	if err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = "Calories Burned by Workout Type"
	p.X.Label.Text = dataset.ColWorkoutType
	p.Y.Label.Text = dataset.ColCaloriesBurned

	names := make([]string, len(groups))
	for i, g := range groups {
		b, err := plotter.NewBoxPlot(vg.Points(40), float64(i), plotter.Values(g.Values))
		if err != nil {
			return nil, err
		}
		b.FillColor = plotutil.Color(i)
		p.Add(b)
		names[i] = g.Name
	}
	p.NominalX(names...)
	return p, nil
}

// correlationGrid lays a correlation matrix out for plotter.HeatMap with the
// first column at the top left.
type correlationGrid struct {
	corr *mat.SymDense
	n    int
}

func (g correlationGrid) Dims() (c, r int)   { return g.n, g.n }
func (g correlationGrid) Z(c, r int) float64 { return g.corr.At(g.n-1-r, c) }
func (g correlationGrid) X(c int) float64    { return float64(c) }
func (g correlationGrid) Y(r int) float64    { return float64(r) }

func correlationHeatmap(d *dataset.Dataset) (*plot.Plot, error) {
	corr, err := d.Correlation(dataset.NumericColumns)
	if err != nil {
		return nil, err
	}
	grid := correlationGrid{corr: corr, n: len(dataset.NumericColumns)}

	cm := moreland.SmoothBlueRed()
	cm.SetMin(-1)
	cm.SetMax(1)
	hm := plotter.NewHeatMap(grid, cm.Palette(255))
	hm.Min, hm.Max = -1, 1

	annot := plotter.XYLabels{}
	for c := 0; c < grid.n; c++ {
		for r := 0; r < grid.n; r++ {
			annot.XYs = append(annot.XYs, plotter.XY{X: grid.X(c), Y: grid.Y(r)})
			annot.Labels = append(annot.Labels, fmt.Sprintf("%.2f", grid.Z(c, r)))
		}
	}
	labels, err := plotter.NewLabels(annot)
	if err != nil {
		return nil, err
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = draw.XCenter
		labels.TextStyle[i].YAlign = draw.YCenter
		labels.TextStyle[i].Font.Size = vg.Points(7)
	}

	p := plot.New()
	p.Title.Text = "Correlation Heatmap"
	p.Add(hm, labels)

	xNames := append([]string(nil), dataset.NumericColumns...)
	yNames := make([]string, grid.n)
	for i, name := range dataset.NumericColumns {
		yNames[grid.n-1-i] = name
	}
	p.NominalX(xNames...)
	p.NominalY(yNames...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	return p, nil
}
