package main

import (
	"fmt"
	"image/color"
	"math"
	"sort"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// tailFraction is the share of samples averaged into each error bar end.
const tailFraction = 0.05

// seriesSpread is the width of the band, in category units, that the
// implementations of one burst size are fanned out over.
const seriesSpread = 0.4

// burstStats summarizes the samples of one implementation at one burst size.
type burstStats struct {
	x      float64 // category position including the series offset
	burst  int
	low    float64 // mean of the fastest tailFraction
	median float64
	high   float64 // mean of the slowest tailFraction
}

// statsPoints plots burstStats as a line with error bars.
type statsPoints []burstStats

func (s statsPoints) Len() int                { return len(s) }
func (s statsPoints) XY(i int) (x, y float64) { return s[i].x, s[i].median }
func (s statsPoints) YError(i int) (low, high float64) {
	return s[i].median - s[i].low, s[i].high - s[i].median
}

// categoryTicks labels the category positions 0,1,2,... with burst sizes.
type categoryTicks []int

func (ct categoryTicks) Ticks(min, max float64) []plot.Tick {
	var ticks []plot.Tick
	for i, burst := range ct {
		if pos := float64(i); pos >= min && pos <= max {
			ticks = append(ticks, plot.Tick{Value: pos, Label: strconv.Itoa(burst)})
		}
	}
	return ticks
}

type series struct {
	name   string
	points statsPoints
}

// summarize reduces vals to its tail means and median. vals is sorted in
// place.
func summarize(vals []float64) (low, med, high float64) {
	sort.Float64s(vals)
	n := len(vals)
	k := int(float64(n) * tailFraction)
	if k == 0 {
		k = 1
	}
	return mean(vals[:k]), median(vals), mean(vals[n-k:])
}

// layout assigns every burst size a category slot and every implementation
// a fixed offset inside it. Series come back sorted by name, their points
// by burst size.
func layout(s samples) ([]int, []series) {
	seen := make(map[int]bool)
	names := make([]string, 0, len(s))
	for name, byBurst := range s {
		names = append(names, name)
		for burst := range byBurst {
			seen[burst] = true
		}
	}
	sort.Strings(names)

	bursts := make([]int, 0, len(seen))
	for burst := range seen {
		bursts = append(bursts, burst)
	}
	sort.Ints(bursts)

	step := seriesSpread / float64(len(names))
	out := make([]series, 0, len(names))
	for i, name := range names {
		offset := -seriesSpread/2 + step/2 + float64(i)*step
		var pts statsPoints
		for slot, burst := range bursts {
			vals := s[name][burst]
			if len(vals) == 0 {
				continue
			}
			low, med, high := summarize(vals)
			pts = append(pts, burstStats{
				x:      float64(slot) + offset,
				burst:  burst,
				low:    low,
				median: med,
				high:   high,
			})
		}
		out = append(out, series{name: name, points: pts})
	}
	return bursts, out
}

// newPlot returns a dark themed, log scaled plot for one initial capacity.
func newPlot(capacity uint64, bursts []int) *plot.Plot {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Time per op (tail means / median) vs. burst size, initial capacity %d", capacity)
	p.X.Label.Text = "Burst size (push n, pop n)"
	p.Y.Label.Text = "Time per Op (ns) [log scale]"
	p.X.Tick.Marker = categoryTicks(bursts)
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.TickerFunc(logTicks)

	p.BackgroundColor = color.RGBA{R: 30, G: 30, B: 30, A: 255}
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	p.Title.TextStyle.Color = white
	p.X.Label.TextStyle.Color = white
	p.Y.Label.TextStyle.Color = white
	p.X.Color = white
	p.Y.Color = white
	p.X.Tick.Label.Color = white
	p.Y.Tick.Label.Color = white
	p.Legend.Top = true
	p.Legend.Left = true
	p.Legend.TextStyle.Color = white

	p.Add(plotter.NewGrid())
	return p
}

var shapes = []draw.GlyphDrawer{
	draw.CircleGlyph{},
	draw.SquareGlyph{},
	draw.TriangleGlyph{},
	draw.CrossGlyph{},
	draw.PlusGlyph{},
}

// addSeries draws s as line, markers and error bars in the i-th style.
func addSeries(p *plot.Plot, i int, s series) error {
	c := plotutil.SoftColors[i%len(plotutil.SoftColors)]

	line, err := plotter.NewLine(s.points)
	if err != nil {
		return fmt.Errorf("line for %s: %w", s.name, err)
	}
	line.Color = c

	points, err := plotter.NewScatter(s.points)
	if err != nil {
		return fmt.Errorf("scatter for %s: %w", s.name, err)
	}
	points.Radius = vg.Points(5)
	points.Color = c
	points.Shape = shapes[i%len(shapes)]

	bars, err := plotter.NewYErrorBars(s.points)
	if err != nil {
		return fmt.Errorf("error bars for %s: %w", s.name, err)
	}
	bars.Color = c

	p.Add(line, points, bars)
	p.Legend.Add(s.name, line, points)
	return nil
}

// renderCapacity plots every implementation measured at one initial
// capacity and saves the graph as filename.
func renderCapacity(capacity uint64, s samples, filename string) error {
	bursts, all := layout(s)
	p := newPlot(capacity, bursts)
	for i, sr := range all {
		if len(sr.points) == 0 {
			continue
		}
		if err := addSeries(p, i, sr); err != nil {
			return err
		}
	}
	return p.Save(12*vg.Inch, 9*vg.Inch, filename)
}

// logTicks spreads roughly one labelled tick per 30px over a 9 inch plot,
// evenly in log space.
func logTicks(min, max float64) []plot.Tick {
	const pxHeight = 648.0
	const pxSpacing = 30.0
	nTicks := pxHeight / pxSpacing

	// log10(0) is invalid.
	if min <= 0 {
		min = 1e-9
	}
	start := math.Log10(min)
	end := math.Log10(max)
	step := (end - start) / nTicks

	var ticks []plot.Tick
	for i := 0.0; i <= nTicks; i++ {
		y := math.Pow(10, start+i*step)
		ticks = append(ticks, plot.Tick{Value: y, Label: formatNs(y)})
	}
	return ticks
}

func mean(vals []float64) float64 {
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

func median(sorted []float64) float64 {
	n := len(sorted)
	mid := n / 2
	if n%2 == 1 {
		return sorted[mid]
	}
	return 0.5 * (sorted[mid-1] + sorted[mid])
}

var nsUnits = []struct {
	below, div float64
	format     string
}{
	{1e3, 1, "%.0fns"},
	{1e6, 1e3, "%.1fµs"},
	{1e9, 1e6, "%.1fms"},
}

// formatNs renders a nanosecond count in the largest unit below it.
func formatNs(ns float64) string {
	for _, u := range nsUnits {
		if ns < u.below {
			return fmt.Sprintf(u.format, ns/u.div)
		}
	}
	return fmt.Sprintf("%.2fs", ns/1e9)
}
