// Package viz renders simulation results as terminal charts. It consumes the
// (times, grids, metrics, title) contract of a finished run and produces
// text; it never touches the model.
package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/forcesim/forcesim/internal/metrics"
	"github.com/forcesim/forcesim/internal/workforce"
)

const (
	chartWidth  = 72
	chartHeight = 10
)

// Dashboard renders the six standard panels for a run: total force,
// personnel by specialty, junior/senior ratio, senior headcount, force
// structure by rank, and specialty shares.
func Dashboard(times []float64, grids []workforce.Grid, series metrics.Series, title string) string {
	var sb strings.Builder

	sb.WriteString(TitleStyle.Render(title))
	sb.WriteString("\n\n")

	sb.WriteString(panel("Total Force Size", asciigraph.Plot(series.TotalForce,
		asciigraph.Height(chartHeight),
		asciigraph.Width(chartWidth),
		asciigraph.Caption(yearsCaption(times)),
	)))

	sb.WriteString(panel("Personnel by Specialty "+legend(specialtyNames(grids)),
		asciigraph.PlotMany(specialtySeries(grids),
			asciigraph.Height(chartHeight),
			asciigraph.Width(chartWidth),
			asciigraph.Caption(yearsCaption(times)),
		)))

	sb.WriteString(panel("Junior to Senior Ratio", asciigraph.Plot(series.JuniorSeniorRatio,
		asciigraph.Height(chartHeight),
		asciigraph.Width(chartWidth),
		asciigraph.Caption(yearsCaption(times)),
	)))

	sb.WriteString(panel("Experienced Personnel (senior ranks)", asciigraph.Plot(series.SeniorCount,
		asciigraph.Height(chartHeight),
		asciigraph.Width(chartWidth),
		asciigraph.Caption(yearsCaption(times)),
	)))

	sb.WriteString(panel("Force Structure by Rank "+legend(rankNames(grids)),
		asciigraph.PlotMany(rankSeries(grids),
			asciigraph.Height(chartHeight),
			asciigraph.Width(chartWidth),
			asciigraph.Caption(yearsCaption(times)),
		)))

	sb.WriteString(panel("Specialty Distribution "+legend(specialtyNames(grids)),
		asciigraph.PlotMany(series.SpecialtyShare,
			asciigraph.Height(chartHeight),
			asciigraph.Width(chartWidth),
			asciigraph.Caption(yearsCaption(times)),
		)))

	return sb.String()
}

// Compare renders two total-force series on one chart. A nil alternative
// plots the baseline alone.
func Compare(baseline, alternative []float64, baseLabel, altLabel string) string {
	if alternative == nil {
		graph := asciigraph.Plot(baseline,
			asciigraph.Height(15),
			asciigraph.Width(chartWidth),
			asciigraph.Caption(baseLabel),
		)
		return panel("Total Force Size", graph)
	}
	graph := asciigraph.PlotMany([][]float64{baseline, alternative},
		asciigraph.Height(15),
		asciigraph.Width(chartWidth),
		asciigraph.Caption(fmt.Sprintf("%s vs %s", baseLabel, altLabel)),
	)
	return panel("Total Force Size", graph)
}

func panel(title, graph string) string {
	return TitleStyle.Render(title) + "\n" + PanelStyle.Render(graph) + "\n\n"
}

func legend(names []string) string {
	return Subtle.Render("(" + strings.Join(names, " / ") + ")")
}

func yearsCaption(times []float64) string {
	if len(times) == 0 {
		return "years"
	}
	return fmt.Sprintf("years 0 .. %.1f", times[len(times)-1])
}

func specialtySeries(grids []workforce.Grid) [][]float64 {
	if len(grids) == 0 {
		return nil
	}
	specs := grids[0].Specialties()
	out := make([][]float64, specs)
	for s := 0; s < specs; s++ {
		out[s] = make([]float64, len(grids))
		for i, g := range grids {
			out[s][i] = g.SpecialtyTotal(s)
		}
	}
	return out
}

func rankSeries(grids []workforce.Grid) [][]float64 {
	if len(grids) == 0 {
		return nil
	}
	ranks := grids[0].Ranks()
	out := make([][]float64, ranks)
	for r := 0; r < ranks; r++ {
		out[r] = make([]float64, len(grids))
		for i, g := range grids {
			out[r][i] = g.RankTotal(r)
		}
	}
	return out
}

func specialtyNames(grids []workforce.Grid) []string {
	n := 0
	if len(grids) > 0 {
		n = grids[0].Specialties()
	}
	if n == len(workforce.DefaultSpecialtyNames) {
		return workforce.DefaultSpecialtyNames
	}
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("S%d", i+1)
	}
	return names
}

func rankNames(grids []workforce.Grid) []string {
	n := 0
	if len(grids) > 0 {
		n = grids[0].Ranks()
	}
	if n == len(workforce.DefaultRankNames) {
		return workforce.DefaultRankNames
	}
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("R%d", i+1)
	}
	return names
}
