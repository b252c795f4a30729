// Package tui provides a live terminal view of a simulation run, replaying
// the sampled series frame by frame.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/forcesim/forcesim/internal/viz"
	"github.com/forcesim/forcesim/internal/workforce"
)

const sparkWidth = 60

type tickMsg time.Time

type liveModel struct {
	title     string
	result    *workforce.Result
	frame     int
	paused    bool
	done      bool
	frameRate int
}

// Run replays a finished simulation in the terminal at the given frame rate.
func Run(title string, result *workforce.Result, frameRate int) error {
	if frameRate <= 0 {
		frameRate = 30
	}
	m := liveModel{
		title:     title,
		result:    result,
		frameRate: frameRate,
	}
	_, err := tea.NewProgram(m).Run()
	return err
}

func (m liveModel) Init() tea.Cmd {
	return m.tick()
}

func (m liveModel) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.frameRate), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m liveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		}
	case tickMsg:
		if !m.paused && !m.done {
			m.frame++
			if m.frame >= len(m.result.Times) {
				m.frame = len(m.result.Times) - 1
				m.done = true
			}
		}
		return m, m.tick()
	}
	return m, nil
}

func (m liveModel) View() string {
	if len(m.result.Times) == 0 {
		return "no data\n"
	}

	i := m.frame
	grid := m.result.Grids[i]
	var sb strings.Builder

	sb.WriteString(viz.TitleStyle.Render(m.title))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("%s %s\n",
		viz.MetricLabel.Render("year"),
		viz.MetricValue.Render(fmt.Sprintf("%6.2f", m.result.Times[i]))))
	sb.WriteString(fmt.Sprintf("%s %s\n\n",
		viz.MetricLabel.Render("total force"),
		viz.MetricValue.Render(fmt.Sprintf("%8.0f", m.result.Metrics.TotalForce[i]))))

	sb.WriteString(viz.MetricLabel.Render("total force trend"))
	sb.WriteString("\n")
	sb.WriteString(viz.Sparkline(m.result.Metrics.TotalForce[:i+1], sparkWidth))
	sb.WriteString("\n\n")

	for r := 0; r < grid.Ranks(); r++ {
		name := fmt.Sprintf("R%d", r+1)
		if r < len(workforce.DefaultRankNames) && grid.Ranks() == len(workforce.DefaultRankNames) {
			name = workforce.DefaultRankNames[r]
		}
		sb.WriteString(fmt.Sprintf("%s %8.0f  %s\n",
			viz.MetricLabel.Render(name),
			grid.RankTotal(r),
			viz.Sparkline(rankHistory(m.result.Grids[:i+1], r), sparkWidth/2)))
	}

	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("%s %.3f   %s %.0f\n",
		viz.MetricLabel.Render("junior/senior"),
		m.result.Metrics.JuniorSeniorRatio[i],
		viz.MetricLabel.Render("senior"),
		m.result.Metrics.SeniorCount[i]))

	sb.WriteString("\n")
	if m.done {
		sb.WriteString(viz.Subtle.Render("finished · q to quit"))
	} else if m.paused {
		sb.WriteString(viz.Subtle.Render("paused · space to resume · q to quit"))
	} else {
		sb.WriteString(viz.Subtle.Render("space to pause · q to quit"))
	}
	sb.WriteString("\n")

	return sb.String()
}

func rankHistory(grids []workforce.Grid, rank int) []float64 {
	out := make([]float64, len(grids))
	for i, g := range grids {
		out[i] = g.RankTotal(rank)
	}
	return out
}
