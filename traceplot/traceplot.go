package traceplot

import (
	"fmt"
	"image/color"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/notargets/boxcut/annealer"
)

var (
	currentColor   = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	candidateColor = color.RGBA{R: 180, G: 180, B: 180, A: 255}
	bestColor      = color.RGBA{R: 214, G: 39, B: 40, A: 255}
)

// FitnessPlot draws current, candidate and best fitness against the evaluation count.
func FitnessPlot(tr annealer.Trace, title string) (p *plot.Plot, err error) {
	return series(tr, title, "Fitness", func(rec annealer.TurnRecord) (cur, cand, best float64) {
		return rec.CurrentFitness, rec.CandidateFitness, rec.BestFitness
	})
}

// BoxCountPlot draws the number of boxes in the current, candidate and best partitions.
func BoxCountPlot(tr annealer.Trace, title string) (p *plot.Plot, err error) {
	return series(tr, title, "Boxes", func(rec annealer.TurnRecord) (cur, cand, best float64) {
		return float64(rec.CurrentLen), float64(rec.CandidateLen), float64(rec.BestLen)
	})
}

// SaveTrace writes the fitness plot to filename and the box count plot next to it, with
// "_boxes" appended to the base name.
func SaveTrace(tr annealer.Trace, title, filename string) (files []string, err error) {
	var fp, bp *plot.Plot
	if fp, err = FitnessPlot(tr, title); err != nil {
		return
	}
	if bp, err = BoxCountPlot(tr, title); err != nil {
		return
	}
	ext := filepath.Ext(filename)
	boxFile := strings.TrimSuffix(filename, ext) + "_boxes" + ext
	if err = fp.Save(14*vg.Inch, 6*vg.Inch, filename); err != nil {
		return nil, fmt.Errorf("save fitness plot: %w", err)
	}
	if err = bp.Save(14*vg.Inch, 6*vg.Inch, boxFile); err != nil {
		return nil, fmt.Errorf("save box count plot: %w", err)
	}
	return []string{filename, boxFile}, nil
}

func series(tr annealer.Trace, title, ylabel string,
	get func(rec annealer.TurnRecord) (cur, cand, best float64)) (p *plot.Plot, err error) {
	if len(tr) == 0 {
		return nil, fmt.Errorf("traceplot: empty trace")
	}
	var (
		curPts  = make(plotter.XYs, len(tr))
		candPts = make(plotter.XYs, len(tr))
		bestPts = make(plotter.XYs, len(tr))
	)
	for i, rec := range tr {
		x := float64(rec.Evals)
		cur, cand, best := get(rec)
		curPts[i] = plotter.XY{X: x, Y: cur}
		candPts[i] = plotter.XY{X: x, Y: cand}
		bestPts[i] = plotter.XY{X: x, Y: best}
	}
	p = plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Evaluations"
	p.Y.Label.Text = ylabel

	candidates, err := plotter.NewScatter(candPts)
	if err != nil {
		return nil, err
	}
	candidates.Color = candidateColor
	candidates.Radius = vg.Points(1)
	p.Add(candidates)
	p.Legend.Add("candidate", candidates)

	current, err := plotter.NewLine(curPts)
	if err != nil {
		return nil, err
	}
	current.Color = currentColor
	current.Width = vg.Points(1)
	p.Add(current)
	p.Legend.Add("current", current)

	best, err := plotter.NewLine(bestPts)
	if err != nil {
		return nil, err
	}
	best.Color = bestColor
	best.Width = vg.Points(1.5)
	p.Add(best)
	p.Legend.Add("best", best)

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10
	return
}
