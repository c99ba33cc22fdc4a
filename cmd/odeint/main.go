// Command odeint is the CLI front end for the library: solving,
// sampling, and analyzing registered ode.Systems from the command line.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/odeint/internal/analysis"
	"github.com/san-kum/odeint/internal/automation"
	"github.com/san-kum/odeint/internal/chart"
	"github.com/san-kum/odeint/internal/config"
	"github.com/san-kum/odeint/internal/ode"
	"github.com/san-kum/odeint/internal/sampler"
	"github.com/san-kum/odeint/internal/storage"
	"github.com/san-kum/odeint/internal/systems"
	"github.com/san-kum/odeint/internal/tui"
)

var (
	dataDir      string
	stepperName  string
	mode         string
	tolerance    float64
	stepSize     float64
	maxSteps     int
	minStepsize  float64
	t0, t1, t2   float64
	timeStep     float64
	maxChange    float64
	minStep      float64
	maxPoints    int
	configFile   string
	preset       string
	watchComp    int
	paramFlags   []string
	initialState []float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "odeint",
		Short: "explicit Runge-Kutta ODE solving and sampling lab",
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".odeint", "data directory")

	listCmd := &cobra.Command{
		Use:   "list-systems",
		Short: "list registered systems",
		RunE:  listSystems,
	}

	solveCmd := &cobra.Command{
		Use:   "solve [system]",
		Short: "march a system to t2 and print the final state",
		Args:  cobra.ExactArgs(1),
		RunE:  runSolve,
	}
	registerRunFlags(solveCmd)

	sampleCmd := &cobra.Command{
		Use:   "sample [system]",
		Short: "sample a trajectory over [t1, t2] and save it",
		Args:  cobra.ExactArgs(1),
		RunE:  runSample,
	}
	registerRunFlags(sampleCmd)
	sampleCmd.Flags().Float64Var(&maxChange, "max-change", 0, "maximum per-sample sup-norm displacement (0 = unbounded)")
	sampleCmd.Flags().Float64Var(&minStep, "min-step", 0, "minimum bisective refinement step (0 = spec default)")
	sampleCmd.Flags().IntVar(&maxPoints, "max-points", 0, "maximum sample count (0 = unbounded)")
	sampleCmd.Flags().BoolVar(&liveFlag, "live", false, "show a live bubbletea progress display while sampling")
	sampleCmd.Flags().IntVar(&watchComp, "watch", 0, "state component to chart in live mode")

	listRunsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list saved sampling runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run's trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [system]",
		Short: "list available presets for a system",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets(args[0])
			if len(names) == 0 {
				fmt.Printf("no presets for system: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, n := range names {
				fmt.Printf("  %s\n", n)
			}
			return nil
		},
	}

	lyapunovCmd := &cobra.Command{
		Use:   "lyapunov [system]",
		Short: "estimate the largest Lyapunov exponent from t0 over a duration",
		Args:  cobra.ExactArgs(1),
		RunE:  runLyapunov,
	}
	registerRunFlags(lyapunovCmd)
	lyapunovCmd.Flags().Float64Var(&perturbation, "perturbation", 1e-6, "initial separation between the two trajectories")

	bifurcationCmd := &cobra.Command{
		Use:   "bifurcation [system]",
		Short: "sweep a parameter and render a bifurcation diagram",
		Args:  cobra.ExactArgs(1),
		RunE:  runBifurcation,
	}
	registerRunFlags(bifurcationCmd)
	bifurcationCmd.Flags().StringVar(&bifParam, "sweep-param", "", "parameter name to sweep (required)")
	bifurcationCmd.Flags().Float64Var(&bifMin, "sweep-min", 0, "sweep range minimum")
	bifurcationCmd.Flags().Float64Var(&bifMax, "sweep-max", 1, "sweep range maximum")
	bifurcationCmd.Flags().IntVar(&bifSteps, "sweep-steps", 50, "number of parameter values to sample")
	bifurcationCmd.Flags().IntVar(&bifState, "sweep-state", 0, "state component to record")
	bifurcationCmd.Flags().Float64Var(&bifTransient, "sweep-transient", 50, "settling duration discarded before recording")
	bifurcationCmd.Flags().Float64Var(&bifRecord, "sweep-record", 50, "recording duration after the transient")

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo [system]",
		Short: "run perturbed-initial-condition trials and report boundedness",
		Args:  cobra.ExactArgs(1),
		RunE:  runMonteCarlo,
	}
	registerRunFlags(monteCarloCmd)
	monteCarloCmd.Flags().Float64Var(&perturbation, "perturbation", 0.01, "per-component perturbation half-width")
	monteCarloCmd.Flags().IntVar(&trials, "trials", 20, "number of trials")
	monteCarloCmd.Flags().Int64Var(&seed, "seed", 1, "random seed")
	monteCarloCmd.Flags().Float64SliceVar(&xminFlag, "xmin", nil, "lower bound per state component")
	monteCarloCmd.Flags().Float64SliceVar(&xmaxFlag, "xmax", nil, "upper bound per state component")

	rootCmd.AddCommand(listCmd, solveCmd, sampleCmd, listRunsCmd, plotCmd, presetsCmd, lyapunovCmd, bifurcationCmd, monteCarloCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var liveFlag bool

var (
	perturbation float64
	bifParam     string
	bifMin       float64
	bifMax       float64
	bifSteps     int
	bifState     int
	bifTransient float64
	bifRecord    float64
	trials       int
	seed         int64
	xminFlag     []float64
	xmaxFlag     []float64
)

func registerRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&stepperName, "stepper", "rk4", "stepper: euler|rk4|verlet|leapfrog|fehlberg45|cashkarp45|dormandprince45")
	cmd.Flags().StringVar(&mode, "mode", "fixed", "marching mode: fixed|adaptive")
	cmd.Flags().Float64Var(&tolerance, "tolerance", config.DefaultTolerance, "adaptive error tolerance")
	cmd.Flags().Float64Var(&stepSize, "step-size", config.DefaultStepSize, "persistent step size")
	cmd.Flags().IntVar(&maxSteps, "max-steps", config.DefaultMaxSteps, "adaptive outer loop bound")
	cmd.Flags().Float64Var(&minStepsize, "min-stepsize", config.DefaultMinStepsize, "minimum accepted adaptive step")
	cmd.Flags().Float64Var(&t0, "t0", 0, "seed time")
	cmd.Flags().Float64Var(&t1, "t1", 0, "sampling window start")
	cmd.Flags().Float64Var(&t2, "t2", 10, "sampling window end / solve target")
	cmd.Flags().Float64Var(&timeStep, "time-step", config.DefaultTimeStep, "nominal sample spacing")
	cmd.Flags().StringArrayVar(&paramFlags, "param", nil, "system parameter override, name=value (repeatable)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().Float64SliceVar(&initialState, "x0", nil, "initial state vector (overrides config/preset)")
}

func buildStepper(name string) (ode.Stepper, error) {
	switch name {
	case "euler":
		return ode.NewEuler(), nil
	case "rk4":
		return ode.NewRK4(), nil
	case "fehlberg45":
		return ode.NewFehlberg45(), nil
	case "cashkarp45":
		return ode.NewCashKarp45(), nil
	case "dormandprince45":
		return ode.NewDormandPrince45(), nil
	case "verlet":
		return ode.NewVerlet(), nil
	case "leapfrog":
		return ode.NewLeapfrog(), nil
	default:
		return nil, fmt.Errorf("unknown stepper: %s", name)
	}
}

func parseParamFlags(flags []string) (map[string]float64, error) {
	params := map[string]float64{}
	for _, f := range flags {
		parts := strings.SplitN(f, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid --param %q, expected name=value", f)
		}
		v, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid --param %q: %w", f, err)
		}
		params[parts[0]] = v
	}
	return params, nil
}

// loadRunConfig resolves a preset/config file into the package-level
// flag variables, letting explicitly-set CLI flags win over either.
func loadRunConfig(cmd *cobra.Command, systemName string) (map[string]float64, error) {
	var cfg *config.Config
	if preset != "" {
		cfg = config.GetPreset(systemName, preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(systemName))
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if cfg == nil {
		return parseParamFlags(paramFlags)
	}

	if !cmd.Flags().Changed("stepper") {
		stepperName = cfg.Stepper
	}
	if !cmd.Flags().Changed("mode") {
		mode = cfg.Mode
	}
	if !cmd.Flags().Changed("tolerance") {
		tolerance = cfg.Tuning.Tolerance
	}
	if !cmd.Flags().Changed("step-size") {
		stepSize = cfg.Tuning.StepSize
	}
	if !cmd.Flags().Changed("max-steps") {
		maxSteps = cfg.Tuning.MaxSteps
	}
	if !cmd.Flags().Changed("min-stepsize") {
		minStepsize = cfg.Tuning.MinStepsize
	}
	if !cmd.Flags().Changed("t0") {
		t0 = cfg.T0
	}
	if !cmd.Flags().Changed("t1") {
		t1 = cfg.T1
	}
	if !cmd.Flags().Changed("t2") {
		t2 = cfg.T2
	}
	if !cmd.Flags().Changed("time-step") {
		timeStep = cfg.TimeStep
	}
	if !cmd.Flags().Changed("x0") {
		initialState = cfg.InitialState
	}
	if !cmd.Flags().Changed("max-change") {
		maxChange = cfg.Sampler.MaxChange
	}
	if !cmd.Flags().Changed("min-step") {
		minStep = cfg.Sampler.MinStep
	}
	if !cmd.Flags().Changed("max-points") {
		maxPoints = cfg.Sampler.MaxPoints
	}

	overrides, err := parseParamFlags(paramFlags)
	if err != nil {
		return nil, err
	}
	params := map[string]float64{}
	for k, v := range cfg.Parameters {
		params[k] = v
	}
	for k, v := range overrides {
		params[k] = v
	}
	return params, nil
}

func buildDriver(systemName string, params map[string]float64) (*ode.Driver, error) {
	sys, ok, err := systems.Get(systemName, params)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("unknown system: %s (see list-systems)", systemName)
	}
	stepper, err := buildStepper(stepperName)
	if err != nil {
		return nil, err
	}
	if len(initialState) == 0 {
		initialState = make([]float64, sys.Dimension())
		initialState[0] = 1.0
	}
	drv, err := ode.NewDriver(sys, stepper, initialState, t0)
	if err != nil {
		return nil, err
	}
	if err := drv.SetTolerance(tolerance); err != nil {
		return nil, err
	}
	if err := drv.SetStepSize(stepSize); err != nil {
		return nil, err
	}
	if err := drv.SetMaxSteps(maxSteps); err != nil {
		return nil, err
	}
	if err := drv.SetMinStepsize(minStepsize); err != nil {
		return nil, err
	}
	return drv, nil
}

func listSystems(cmd *cobra.Command, args []string) error {
	names := systems.Names()
	for _, n := range names {
		fmt.Println(n)
	}
	return nil
}

func runSolve(cmd *cobra.Command, args []string) error {
	systemName := args[0]
	params, err := loadRunConfig(cmd, systemName)
	if err != nil {
		return err
	}
	drv, err := buildDriver(systemName, params)
	if err != nil {
		return err
	}

	var x []float64
	if mode == "adaptive" {
		x, err = drv.SolveAdaptive(t2)
	} else {
		x, err = drv.SolveFixed(t2)
	}
	if err != nil {
		return err
	}

	fmt.Printf("t=%.6f x=%v evaluations=%d\n", drv.CurrentT(), x, drv.Evaluations())
	return nil
}

func runSample(cmd *cobra.Command, args []string) error {
	systemName := args[0]
	params, err := loadRunConfig(cmd, systemName)
	if err != nil {
		return err
	}
	drv, err := buildDriver(systemName, params)
	if err != nil {
		return err
	}
	s := sampler.New(drv)

	opts := sampler.Options{
		MaxChange: maxChange,
		MinStep:   minStep,
		MaxPoints: maxPoints,
		Adaptive:  mode == "adaptive",
	}

	var traj *sampler.Trajectory
	if liveFlag {
		traj, err = runSampleLive(s, opts)
	} else {
		traj, err = s.GetSolutionAtPoints(initialState, t0, t1, t2, timeStep, opts)
	}
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(systemName, stepperName, mode, tolerance, stepSize, nil, traj)
	if err != nil {
		return err
	}
	fmt.Printf("saved run %s (%d samples)\n", runID, traj.Len())
	return nil
}

func runSampleLive(s *sampler.Sampler, opts sampler.Options) (*sampler.Trajectory, error) {
	samples := make(chan tui.SampleMsg)
	done := make(chan tui.DoneMsg, 1)
	opts.OnSample = func(t float64, x []float64) {
		samples <- tui.SampleMsg{T: t, X: append([]float64(nil), x...)}
	}

	var traj *sampler.Trajectory
	var runErr error
	go func() {
		traj, runErr = s.GetSolutionAtPoints(initialState, t0, t1, t2, timeStep, opts)
		close(samples)
		done <- tui.DoneMsg{Err: runErr}
	}()

	m := tui.NewModel(stepperName, watchComp, samples, done)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return nil, err
	}
	return traj, runErr
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSYSTEM\tSTEPPER\tMODE\tTIME")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			run.ID, run.System, run.Stepper, run.Mode,
			run.Timestamp.Format(time.RFC3339))
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	traj, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	if traj.Len() == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("system: %s  stepper: %s  mode: %s\n", meta.System, meta.Stepper, meta.Mode)
	fmt.Printf("samples: %d\n\n", traj.Len())

	out, err := chart.RenderAll(traj, 80, 10)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

func buildSystemAndStepper(cmd *cobra.Command, systemName string) (*ode.System, ode.Stepper, error) {
	params, err := loadRunConfig(cmd, systemName)
	if err != nil {
		return nil, nil, err
	}
	sys, ok, err := systems.Get(systemName, params)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, fmt.Errorf("unknown system: %s (see list-systems)", systemName)
	}
	stepper, err := buildStepper(stepperName)
	if err != nil {
		return nil, nil, err
	}
	if len(initialState) == 0 {
		initialState = make([]float64, sys.Dimension())
		initialState[0] = 1.0
	}
	return sys, stepper, nil
}

func runLyapunov(cmd *cobra.Command, args []string) error {
	sys, stepper, err := buildSystemAndStepper(cmd, args[0])
	if err != nil {
		return err
	}
	lam, err := analysis.LyapunovExponent(sys, stepper, initialState, t0, stepSize, t2-t0, perturbation)
	if err != nil {
		return err
	}
	fmt.Printf("largest Lyapunov exponent over [%.4f, %.4f]: %.6f\n", t0, t2, lam)
	if lam > 0 {
		fmt.Println("positive exponent: trajectories diverge, consistent with chaos")
	}
	return nil
}

func runBifurcation(cmd *cobra.Command, args []string) error {
	if bifParam == "" {
		return fmt.Errorf("--sweep-param is required")
	}
	sys, stepper, err := buildSystemAndStepper(cmd, args[0])
	if err != nil {
		return err
	}
	diagram, err := analysis.BifurcationDiagram(sys, stepper, bifParam, bifMin, bifMax, bifSteps, bifState, initialState, t0, stepSize, bifTransient, bifRecord)
	if err != nil {
		return err
	}
	fmt.Println(analysis.BifurcationToASCII(diagram, 80, 20))
	return nil
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	sys, stepper, err := buildSystemAndStepper(cmd, args[0])
	if err != nil {
		return err
	}
	results, err := automation.RunMonteCarlo(sys, stepper, automation.MonteCarloConfig{
		BaseState:    initialState,
		Perturbation: perturbation,
		NumTrials:    trials,
		Seed:         seed,
		T0:           t0,
		T1:           t2,
		TimeStep:     timeStep,
		XMin:         xminFlag,
		XMax:         xmaxFlag,
	})
	if err != nil {
		return err
	}
	bounded, unbounded := automation.Summarize(results)
	fmt.Printf("%d trials: %d bounded, %d unbounded\n", len(results), bounded, unbounded)
	return nil
}
