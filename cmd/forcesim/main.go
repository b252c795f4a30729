package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/forcesim/forcesim/internal/config"
	"github.com/forcesim/forcesim/internal/export"
	"github.com/forcesim/forcesim/internal/integrators"
	"github.com/forcesim/forcesim/internal/scenario"
	"github.com/forcesim/forcesim/internal/tui"
	"github.com/forcesim/forcesim/internal/viz"
	"github.com/forcesim/forcesim/internal/workforce"
)

var (
	years          float64
	dt             float64
	integratorName string
	configFile     string
	preset         string
	setPairs       []string
	exportFormat   string
	outPath        string
	frameRate      int
	showChart      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "forcesim",
		Short: "military workforce flow simulator",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the baseline simulation",
		RunE:  runBaseline,
	}
	addHorizonFlags(runCmd)
	runCmd.Flags().BoolVar(&showChart, "chart", false, "plot total force after the run")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [preset]",
		Short: "run a what-if scenario",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScenario,
	}
	addRunFlags(scenarioCmd)
	scenarioCmd.Flags().StringArrayVar(&setPairs, "set", nil, "override, e.g. --set recruitment_rates=150,180,120")
	scenarioCmd.Flags().BoolVar(&showChart, "chart", false, "plot total force after the run")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list scenario presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tLABEL\tYEARS")
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%s\t%.0f\n", name, cfg.Label, cfg.Years)
			}
			return w.Flush()
		},
	}

	plotCmd := &cobra.Command{
		Use:   "plot [preset]",
		Short: "run and render the full dashboard",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotScenario,
	}
	addRunFlags(plotCmd)
	plotCmd.Flags().StringArrayVar(&setPairs, "set", nil, "override, e.g. --set attrition_rates=0.2,0.16,0.14,0.11,0.08,0.18")

	exportCmd := &cobra.Command{
		Use:   "export [preset]",
		Short: "run and export the series",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportScenario,
	}
	addRunFlags(exportCmd)
	exportCmd.Flags().StringArrayVar(&setPairs, "set", nil, "override")
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "json or csv")
	exportCmd.Flags().StringVar(&outPath, "out", "", "output file (default stdout for json)")

	compareCmd := &cobra.Command{
		Use:   "compare [preset]",
		Short: "compare a scenario against the baseline",
		Args:  cobra.ExactArgs(1),
		RunE:  compareScenario,
	}
	addRunFlags(compareCmd)

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "run with a live terminal view",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addRunFlags(liveCmd)
	liveCmd.Flags().StringArrayVar(&setPairs, "set", nil, "override")
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	rootCmd.AddCommand(runCmd, scenarioCmd, presetsCmd, plotCmd, exportCmd, compareCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func addHorizonFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&years, "years", config.DefaultYears, "simulation horizon in years")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "sample step in years")
	cmd.Flags().StringVar(&integratorName, "integrator", config.DefaultIntegrator,
		fmt.Sprintf("integrator (%s)", strings.Join(integrators.Names(), ", ")))
}

func addRunFlags(cmd *cobra.Command) {
	addHorizonFlags(cmd)
	cmd.Flags().StringVar(&configFile, "config", "", "scenario config file (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "named preset (see `forcesim presets`)")
}

// buildScenario merges preset, config file and --set flags into one scenario,
// in that order of precedence (later sources win).
func buildScenario(cmd *cobra.Command, args []string) (scenario.Scenario, error) {
	cfg := config.DefaultConfig()

	name := preset
	if len(args) > 0 {
		name = args[0]
	}
	if name != "" {
		p := config.GetPreset(name)
		if p == nil {
			return scenario.Scenario{}, fmt.Errorf("unknown preset: %s (see `forcesim presets`)", name)
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return scenario.Scenario{}, err
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("years") {
		cfg.Years = years
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("integrator") {
		cfg.Integrator = integratorName
	}

	sc, unknown, err := cfg.Scenario()
	if err != nil {
		return scenario.Scenario{}, err
	}
	warnUnknown(unknown)

	if len(setPairs) > 0 {
		overrides, err := parseSetPairs(setPairs)
		if err != nil {
			return scenario.Scenario{}, err
		}
		o, unknown, err := scenario.FromMap(overrides)
		if err != nil {
			return scenario.Scenario{}, err
		}
		warnUnknown(unknown)
		mergeOverrides(&sc.Overrides, o)
	}

	integratorName = cfg.Integrator
	return sc, nil
}

func warnUnknown(names []string) {
	for _, name := range names {
		fmt.Fprintln(os.Stderr, viz.WarnStyle.Render(
			fmt.Sprintf("warning: parameter %q not recognized, ignoring", name)))
	}
}

func mergeOverrides(dst *scenario.Overrides, src scenario.Overrides) {
	if src.Recruitment != nil {
		dst.Recruitment = src.Recruitment
	}
	if src.Promotion != nil {
		dst.Promotion = src.Promotion
	}
	if src.Attrition != nil {
		dst.Attrition = src.Attrition
	}
	if src.CrossTraining != nil {
		dst.CrossTraining = src.CrossTraining
	}
	if src.TrainingTimes != nil {
		dst.TrainingTimes = src.TrainingTimes
	}
	if src.MaxServiceYears != nil {
		dst.MaxServiceYears = src.MaxServiceYears
	}
}

// parseSetPairs turns "name=1,2,3" flags into named override values.
func parseSetPairs(pairs []string) (map[string]any, error) {
	out := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --set %q, want name=value", pair)
		}
		parts := strings.Split(value, ",")
		floats := make([]float64, len(parts))
		for i, part := range parts {
			f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
			if err != nil {
				return nil, fmt.Errorf("invalid --set %q: %w", pair, err)
			}
			floats[i] = f
		}
		if len(floats) == 1 {
			out[name] = floats[0]
		} else {
			out[name] = floats
		}
	}
	return out, nil
}

func simulate(sc scenario.Scenario) (*workforce.Result, error) {
	model := workforce.New()
	integ, err := integrators.ByName(integratorName)
	if err != nil {
		return nil, err
	}
	p := sc.Overrides.Apply(model.Params())
	result, err := model.SimulateWith(p, sc.Years, sc.Dt, integ)
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", sc.Label, err)
	}
	return result, nil
}

func runBaseline(cmd *cobra.Command, args []string) error {
	sc := scenario.Scenario{Label: "Baseline", Years: years, Dt: dt}
	return runAndReport(sc)
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := buildScenario(cmd, args)
	if err != nil {
		return err
	}
	return runAndReport(sc)
}

func runAndReport(sc scenario.Scenario) error {
	fmt.Printf("running %q for %.1f years (dt=%.2f, %s)...\n", sc.Label, sc.Years, sc.Dt, integratorName)
	start := time.Now()

	result, err := simulate(sc)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v (%d integration steps)\n\n", time.Since(start), result.StepsTaken)
	printSummary(result)

	if showChart {
		fmt.Println()
		fmt.Println(viz.Compare(result.Metrics.TotalForce, nil, sc.Label, ""))
	}
	return nil
}

func printSummary(result *workforce.Result) {
	last := len(result.Times) - 1
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tINITIAL\tFINAL")
	fmt.Fprintf(w, "total force\t%.0f\t%.0f\n",
		result.Metrics.TotalForce[0], result.Metrics.TotalForce[last])
	fmt.Fprintf(w, "junior/senior ratio\t%.3f\t%.3f\n",
		result.Metrics.JuniorSeniorRatio[0], result.Metrics.JuniorSeniorRatio[last])
	fmt.Fprintf(w, "senior personnel\t%.0f\t%.0f\n",
		result.Metrics.SeniorCount[0], result.Metrics.SeniorCount[last])
	for s, shares := range result.Metrics.SpecialtyShare {
		name := fmt.Sprintf("specialty %d", s)
		if s < len(workforce.DefaultSpecialtyNames) && len(result.Metrics.SpecialtyShare) == len(workforce.DefaultSpecialtyNames) {
			name = strings.ToLower(workforce.DefaultSpecialtyNames[s])
		}
		fmt.Fprintf(w, "%s share\t%.3f\t%.3f\n", name, shares[0], shares[last])
	}
	w.Flush()

	if result.MinPopulation < 0 {
		fmt.Println(viz.WarnStyle.Render(
			fmt.Sprintf("warning: population dipped to %.2f; rates exceed what the force can sustain", result.MinPopulation)))
	}
}

func plotScenario(cmd *cobra.Command, args []string) error {
	sc, err := buildScenario(cmd, args)
	if err != nil {
		return err
	}
	result, err := simulate(sc)
	if err != nil {
		return err
	}
	fmt.Println(viz.Dashboard(result.Times, result.Grids, result.Metrics, sc.Label))
	return nil
}

func exportScenario(cmd *cobra.Command, args []string) error {
	sc, err := buildScenario(cmd, args)
	if err != nil {
		return err
	}
	result, err := simulate(sc)
	if err != nil {
		return err
	}

	switch exportFormat {
	case "json":
		if outPath == "" {
			return export.WriteJSON(os.Stdout, sc.Label, integratorName, sc.Years, sc.Dt, result)
		}
		return export.JSONFile(outPath, sc.Label, integratorName, sc.Years, sc.Dt, result)
	case "csv":
		if outPath == "" {
			return export.WriteCSV(os.Stdout, result)
		}
		return export.CSVFile(outPath, result)
	}
	return fmt.Errorf("unknown format: %s (want json or csv)", exportFormat)
}

func compareScenario(cmd *cobra.Command, args []string) error {
	sc, err := buildScenario(cmd, args)
	if err != nil {
		return err
	}

	base := scenario.Scenario{Label: "Baseline", Years: sc.Years, Dt: sc.Dt}
	baseline, err := simulate(base)
	if err != nil {
		return err
	}
	alternative, err := simulate(sc)
	if err != nil {
		return err
	}

	fmt.Println(viz.Compare(baseline.Metrics.TotalForce, alternative.Metrics.TotalForce, "baseline", sc.Label))

	last := len(baseline.Metrics.TotalForce) - 1
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCENARIO\tFINAL FORCE\tJUNIOR/SENIOR")
	fmt.Fprintf(w, "baseline\t%.0f\t%.3f\n",
		baseline.Metrics.TotalForce[last], baseline.Metrics.JuniorSeniorRatio[last])
	fmt.Fprintf(w, "%s\t%.0f\t%.3f\n", sc.Label,
		alternative.Metrics.TotalForce[last], alternative.Metrics.JuniorSeniorRatio[last])
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	sc, err := buildScenario(cmd, args)
	if err != nil {
		return err
	}
	result, err := simulate(sc)
	if err != nil {
		return err
	}
	return tui.Run(sc.Label, result, frameRate)
}
