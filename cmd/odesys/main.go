package main

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/slayoo/odesys/internal/analysis"
	"github.com/slayoo/odesys/internal/config"
	"github.com/slayoo/odesys/internal/ode"
	"github.com/slayoo/odesys/internal/problems"
	"github.com/slayoo/odesys/internal/steppers"
	"github.com/slayoo/odesys/internal/store"
	"github.com/slayoo/odesys/internal/tui"
)

var (
	method     string
	problem    string
	x0         float64
	xend       float64
	dx0        float64
	gridSpec   string
	y0Spec     string
	tolIter    float64
	iterMax    int
	outPath    string
	outFormat  string
	noPlot     bool
	configFile string
	preset     string
	steps0     int
	levels     int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "odesys",
		Short: "fixed-step ODE integration toolkit",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "integrate a problem and report the trajectory",
		RunE:  runIntegration,
	}
	runCmd.Flags().StringVar(&method, "method", "rk4", "integration method")
	runCmd.Flags().StringVar(&problem, "problem", "decay", "built-in problem")
	runCmd.Flags().Float64Var(&x0, "x0", 0.0, "start of the span")
	runCmd.Flags().Float64Var(&xend, "xend", 10.0, "end of the span")
	runCmd.Flags().Float64Var(&dx0, "dx0", 0.01, "step size")
	runCmd.Flags().StringVar(&gridSpec, "grid", "", "comma-separated output grid (overrides the span)")
	runCmd.Flags().StringVar(&y0Spec, "y0", "", "comma-separated initial condition override")
	runCmd.Flags().Float64Var(&tolIter, "tol-iter", config.DefaultTolIter, "newton tolerance (bdf2)")
	runCmd.Flags().IntVar(&iterMax, "iter-max", config.DefaultIterMax, "newton iteration cap (bdf2)")
	runCmd.Flags().StringVar(&outPath, "out", "", "export path")
	runCmd.Flags().StringVar(&outFormat, "format", "json", "export format (json or csv)")
	runCmd.Flags().BoolVar(&noPlot, "no-plot", false, "skip the terminal plot")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration (problem/name)")

	methodsCmd := &cobra.Command{
		Use:   "methods",
		Short: "list integration methods",
		RunE:  listMethods,
	}

	problemsCmd := &cobra.Command{
		Use:   "problems",
		Short: "list built-in problems",
		RunE:  listProblems,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [problem]",
		Short: "list preset configurations",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	orderCmd := &cobra.Command{
		Use:   "order",
		Short: "estimate empirical convergence order",
		RunE:  estimateOrder,
	}
	orderCmd.Flags().StringVar(&method, "method", "rk4", "integration method")
	orderCmd.Flags().StringVar(&problem, "problem", "decay", "built-in problem (needs analytic solution)")
	orderCmd.Flags().Float64Var(&x0, "x0", 0.0, "start of the span")
	orderCmd.Flags().Float64Var(&xend, "xend", 1.0, "end of the span")
	orderCmd.Flags().IntVar(&steps0, "steps", 16, "coarsest step count")
	orderCmd.Flags().IntVar(&levels, "levels", 4, "number of halvings")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "integrate and replay the trajectory in the terminal",
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&method, "method", "rk4", "integration method")
	liveCmd.Flags().StringVar(&problem, "problem", "oscillator", "built-in problem")
	liveCmd.Flags().Float64Var(&x0, "x0", 0.0, "start of the span")
	liveCmd.Flags().Float64Var(&xend, "xend", 10.0, "end of the span")
	liveCmd.Flags().Float64Var(&dx0, "dx0", 0.01, "step size")

	rootCmd.AddCommand(runCmd, methodsCmd, problemsCmd, presetsCmd, orderCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func buildConfig() (*config.Config, error) {
	if preset != "" {
		parts := strings.SplitN(preset, "/", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("preset must be problem/name, got %q", preset)
		}
		cfg := config.GetPreset(parts[0], parts[1])
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %q", preset)
		}
		return cfg, nil
	}
	if configFile != "" {
		return config.Load(configFile)
	}

	cfg := config.DefaultConfig()
	cfg.Method = method
	cfg.Problem = problem
	cfg.X0 = x0
	cfg.Xend = xend
	cfg.Dx0 = dx0
	cfg.TolIter = tolIter
	cfg.IterMax = iterMax
	cfg.Output = config.OutputConfig{Path: outPath, Format: outFormat, Plot: !noPlot}
	if gridSpec != "" {
		grid, err := parseFloats(gridSpec)
		if err != nil {
			return nil, fmt.Errorf("bad grid: %w", err)
		}
		cfg.Grid = grid
	}
	if y0Spec != "" {
		y0, err := parseFloats(y0Spec)
		if err != nil {
			return nil, fmt.Errorf("bad y0: %w", err)
		}
		cfg.Y0 = y0
	}
	return cfg, nil
}

func parseFloats(spec string) ([]float64, error) {
	parts := strings.Split(spec, ",")
	out := make([]float64, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// integrate runs the configured problem and method, choosing predefined
// mode when a grid is given and adaptive mode (RK4 only) otherwise.
func integrate(cfg *config.Config) (*ode.Result, steppers.Descriptor, string, error) {
	var desc steppers.Descriptor
	if err := cfg.Validate(); err != nil {
		return nil, desc, "", err
	}
	s, err := steppers.New(cfg.Method)
	if err != nil {
		return nil, desc, "", err
	}
	desc = s.Info()

	p, err := problems.New(cfg.Problem)
	if err != nil {
		return nil, desc, "", err
	}
	y0 := p.Initial()
	if len(cfg.Y0) > 0 {
		if len(cfg.Y0) != p.Dim() {
			return nil, desc, "", fmt.Errorf("y0 has %d components, problem %q needs %d: %w",
				len(cfg.Y0), p.Name(), p.Dim(), ode.ErrDimensionMismatch)
		}
		y0 = ode.State(cfg.Y0).Clone()
	}
	if desc.NeedsJacobian && p.Jacobian() == nil {
		return nil, desc, "", fmt.Errorf("method %q needs a jacobian, problem %q has none: %w",
			desc.Name, p.Name(), ode.ErrNotSupported)
	}

	opts := cfg.StepperOptions(desc.Name == "bdf2")
	result := &ode.Result{}
	if len(cfg.Grid) > 0 {
		result.X = cfg.Grid
		result.Y, result.Stats, err = s.IntegratePredefined(p.RHS(), p.Jacobian(), y0, cfg.Grid, opts)
	} else if desc.SupportsAdaptive {
		result.X, result.Y, result.Stats, err = steppers.IntegrateAdaptive(
			s, p.RHS(), p.Jacobian(), y0, cfg.X0, cfg.Xend, cfg.Dx0, opts)
	} else {
		// Methods without adaptive mode get a uniform grid over the span.
		steps := int(math.Ceil((cfg.Xend - cfg.X0) / cfg.Dx0))
		result.X = analysis.UniformGrid(cfg.X0, cfg.Xend, steps)
		result.Y, result.Stats, err = s.IntegratePredefined(p.RHS(), p.Jacobian(), y0, result.X, opts)
	}
	if err != nil {
		return nil, desc, "", err
	}
	return result, desc, p.Name(), nil
}

func runIntegration(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	result, desc, problemName, err := integrate(cfg)
	if err != nil {
		return err
	}

	xLast, yLast := result.Last()
	fmt.Printf("%s on %s: %d points, nfev=%d\n", desc.Name, problemName, result.Len(), result.Stats.NFev)
	fmt.Printf("final state at x=%.6g:", xLast)
	for _, v := range yLast {
		fmt.Printf(" %.10g", v)
	}
	fmt.Println()
	if !result.Stats.Converged {
		fmt.Println("warning: one or more newton corrections hit the iteration cap")
	}

	if cfg.Output.Plot {
		plotTrajectory(result)
	}
	if cfg.Output.Path != "" {
		switch cfg.Output.Format {
		case "csv":
			err = store.ExportCSV(cfg.Output.Path, result)
		case "json":
			err = store.ExportJSON(cfg.Output.Path, desc.Name, problemName, result)
		default:
			return fmt.Errorf("unknown export format %q", cfg.Output.Format)
		}
		if err != nil {
			return err
		}
		fmt.Printf("exported to %s\n", cfg.Output.Path)
	}
	return nil
}

func plotTrajectory(result *ode.Result) {
	if result.Len() < 2 {
		return
	}
	ny := len(result.Y[0])
	for c := 0; c < ny; c++ {
		data := make([]float64, result.Len())
		for i := range data {
			data[i] = result.Y[i][c]
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("y%d over [%g, %g]", c, result.X[0], result.X[result.Len()-1])),
		)
		fmt.Println(graph)
		fmt.Println()
	}
}

func listMethods(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tKIND\tORDER\tJACOBIAN\tADAPTIVE")
	for _, name := range steppers.Names() {
		s, err := steppers.New(name)
		if err != nil {
			return err
		}
		d := s.Info()
		fmt.Fprintf(w, "%s\t%s\t%d\t%v\t%v\n", d.Name, d.Kind, d.Order, d.NeedsJacobian, d.SupportsAdaptive)
	}
	return w.Flush()
}

func listProblems(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDIM\tJACOBIAN\tANALYTIC")
	for _, name := range problems.Names() {
		p, err := problems.New(name)
		if err != nil {
			return err
		}
		_, analytic := p.(problems.Analytic)
		fmt.Fprintf(w, "%s\t%d\t%v\t%v\n", p.Name(), p.Dim(), p.Jacobian() != nil, analytic)
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	names := problems.Names()
	if len(args) == 1 {
		names = []string{args[0]}
	}
	for _, name := range names {
		for _, presetName := range config.ListPresets(name) {
			fmt.Printf("%s/%s\n", name, presetName)
		}
	}
	return nil
}

func estimateOrder(cmd *cobra.Command, args []string) error {
	s, err := steppers.New(method)
	if err != nil {
		return err
	}
	p, err := problems.New(problem)
	if err != nil {
		return err
	}
	est, err := analysis.ConvergenceOrder(s, p, x0, xend, steps0, levels, nil)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "STEPS\tGLOBAL ERROR\tORDER")
	for i := range est.Steps {
		order := "-"
		if i > 0 {
			order = fmt.Sprintf("%.3f", est.Orders[i-1])
		}
		fmt.Fprintf(w, "%d\t%.6e\t%s\n", est.Steps[i], est.Errors[i], order)
	}
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	cfg.Method = method
	cfg.Problem = problem
	cfg.X0 = x0
	cfg.Xend = xend
	cfg.Dx0 = dx0

	result, desc, problemName, err := integrate(cfg)
	if err != nil {
		return err
	}
	return tui.Run(desc.Name, problemName, result)
}
