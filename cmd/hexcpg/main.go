package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/hexcpg/internal/analysis"
	"github.com/san-kum/hexcpg/internal/config"
	"github.com/san-kum/hexcpg/internal/cpg"
	"github.com/san-kum/hexcpg/internal/dynamo"
	"github.com/san-kum/hexcpg/internal/integrators"
	"github.com/san-kum/hexcpg/internal/legs"
	"github.com/san-kum/hexcpg/internal/metrics"
	"github.com/san-kum/hexcpg/internal/teleop"
)

var (
	oscillators int
	amplitude   float64
	frequency   float64
	mu          float64
	coupling    float64
	backward    bool
	turnDir     string
	turnFactor  float64
	integrator  string
	dt          float64
	duration    float64
	threshold   float64
	// Config file
	configFile string
	// Preset name
	preset string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "hexcpg",
		Short: "hexapod central pattern generator lab",
	}

	runCmd := &cobra.Command{
		Use:   "run [gait]",
		Short: "run the network and print the leg command stream",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runNetwork,
	}
	addNetworkFlags(runCmd)
	runCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration in seconds")

	walkCmd := &cobra.Command{
		Use:   "walk",
		Short: "scripted walking demo: gait switch, steering, reset",
		RunE:  runWalk,
	}
	addNetworkFlags(walkCmd)

	teleopCmd := &cobra.Command{
		Use:   "teleop",
		Short: "drive the network interactively",
		RunE:  runTeleop,
	}
	addNetworkFlags(teleopCmd)

	gaitsCmd := &cobra.Command{
		Use:   "gaits",
		Short: "list gaits and presets",
		RunE:  listGaits,
	}

	rootCmd.AddCommand(runCmd, walkCmd, teleopCmd, gaitsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addNetworkFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&oscillators, "oscillators", config.DefaultOscillators, "number of oscillators")
	cmd.Flags().Float64Var(&amplitude, "amplitude", config.DefaultAmplitude, "base amplitude")
	cmd.Flags().Float64Var(&frequency, "frequency", config.DefaultFrequency, "base frequency (hz)")
	cmd.Flags().Float64Var(&mu, "mu", config.DefaultMu, "convergence rate")
	cmd.Flags().Float64Var(&coupling, "coupling", config.DefaultCoupling, "coupling strength")
	cmd.Flags().BoolVar(&backward, "backward", false, "walk backward")
	cmd.Flags().StringVar(&turnDir, "turn", "", "turn direction (left or right)")
	cmd.Flags().Float64Var(&turnFactor, "turn-factor", config.DefaultTurnFactor, "turn sharpness in [0,1]")
	cmd.Flags().StringVar(&integrator, "integrator", "rk4", "integrator (euler, rk4, rk45)")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&threshold, "threshold", config.DefaultThreshold, "leg activation threshold")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// resolveConfig layers preset, config file, then changed CLI flags.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		*cfg = *p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		*cfg = *loaded
	}

	flags := cmd.Flags()
	if flags.Changed("oscillators") {
		cfg.Oscillators = oscillators
	}
	if flags.Changed("amplitude") {
		cfg.Amplitude = amplitude
	}
	if flags.Changed("frequency") {
		cfg.Frequency = frequency
	}
	if flags.Changed("mu") {
		cfg.Mu = mu
	}
	if flags.Changed("coupling") {
		cfg.Coupling = coupling
	}
	if flags.Changed("backward") {
		cfg.Backward = backward
	}
	if flags.Changed("turn") {
		cfg.Turn.Direction = turnDir
	}
	if flags.Changed("turn-factor") {
		cfg.Turn.Factor = turnFactor
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("threshold") {
		cfg.Threshold = threshold
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getIntegrator(name string) (dynamo.Integrator, error) {
	switch name {
	case "euler":
		return integrators.NewEuler(), nil
	case "rk4":
		return integrators.NewRK4(), nil
	case "rk45":
		return integrators.NewRK45(), nil
	default:
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
}

func buildNetwork(cfg *config.Config) (*cpg.Network, error) {
	integ, err := getIntegrator(cfg.Integrator)
	if err != nil {
		return nil, err
	}

	net, err := cpg.New(cfg.Oscillators, cfg.Amplitude, cfg.Frequency, cfg.Mu,
		cpg.WithIntegrator(integ))
	if err != nil {
		return nil, err
	}

	gait, err := cpg.ParseGait(cfg.Gait)
	if err != nil {
		return nil, err
	}
	if err := net.SetGait(gait, cfg.Coupling, false); err != nil {
		return nil, err
	}
	if err := net.SetDirection(cfg.Backward); err != nil {
		return nil, err
	}
	if cfg.Turn.Direction != "" {
		dir, err := cpg.ParseTurnDirection(cfg.Turn.Direction)
		if err != nil {
			return nil, err
		}
		if err := net.Turn(dir, cfg.Turn.Factor); err != nil {
			return nil, err
		}
	}
	return net, nil
}

func runNetwork(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if len(args) > 0 {
		cfg.Gait = args[0]
	}

	net, err := buildNetwork(cfg)
	if err != nil {
		return err
	}

	phaseLock := metrics.NewPhaseLock(net.PhaseBias())
	ampErr := metrics.NewAmplitudeError(net.Amplitudes())

	steps := int(cfg.Duration / cfg.Dt)
	samples := make([][]float64, net.N())
	var tracker legs.Tracker

	fmt.Printf("running %s gait for %.1fs (dt=%.4f)...\n\n", cfg.Gait, cfg.Duration, cfg.Dt)

	for step := 0; step < steps; step++ {
		t := float64(step) * cfg.Dt
		out, err := net.Tick(cfg.Dt)
		if err != nil {
			return err
		}

		if cmd, changed := tracker.Update(out, cfg.Threshold); changed {
			fmt.Printf("t=%6.2fs  %s\n", t, cmd)
		}

		// Let transients die out before scoring lock and amplitude.
		if t >= cfg.Duration/2 {
			phaseLock.Observe(net.State(), t)
			ampErr.Observe(net.State(), t)
		}
		for i, v := range out {
			samples[i] = append(samples[i], v)
		}
	}

	fmt.Println("\nmetrics:")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  %s\t%.4f rad\n", phaseLock.Name(), phaseLock.Value())
	fmt.Fprintf(w, "  %s\t%.4f\n", ampErr.Name(), ampErr.Value())
	for i := range samples {
		fmt.Fprintf(w, "  freq %s\t%.3f hz\n", legs.Name(i), analysis.DominantFrequency(samples[i], cfg.Dt))
	}
	return w.Flush()
}

// runWalk replays a fixed maneuver sequence so every control surface
// gets exercised in one go.
func runWalk(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	cfg.Duration = 10.0

	net, err := buildNetwork(cfg)
	if err != nil {
		return err
	}

	type event struct {
		at    float64
		label string
		apply func() error
	}
	script := []event{
		{2.0, "switch to wave gait", func() error {
			return net.SetGait(cpg.Wave, cfg.Coupling, true)
		}},
		{4.0, "turn left", func() error {
			return net.Turn(cpg.TurnLeft, 0.5)
		}},
		{6.0, "turn right", func() error {
			return net.Turn(cpg.TurnRight, 0.5)
		}},
		{8.0, "reset", func() error {
			net.Reset()
			return nil
		}},
	}

	steps := int(cfg.Duration / cfg.Dt)
	var tracker legs.Tracker
	next := 0

	fmt.Printf("walking demo: tripod start, %d scripted maneuvers over %.0fs\n\n", len(script), cfg.Duration)

	for step := 0; step < steps; step++ {
		t := float64(step) * cfg.Dt

		for next < len(script) && t >= script[next].at {
			fmt.Printf("t=%6.2fs  -- %s\n", t, script[next].label)
			if err := script[next].apply(); err != nil {
				return err
			}
			next++
		}

		out, err := net.Tick(cfg.Dt)
		if err != nil {
			return err
		}
		if cmd, changed := tracker.Update(out, cfg.Threshold); changed {
			fmt.Printf("t=%6.2fs  %s\n", t, cmd)
		}
	}
	return nil
}

func runTeleop(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	net, err := buildNetwork(cfg)
	if err != nil {
		return err
	}
	return teleop.Run(net, cfg.Threshold, cfg.Turn.Factor)
}

func listGaits(cmd *cobra.Command, args []string) error {
	fmt.Println("gaits:")
	for _, g := range cpg.Gaits() {
		fmt.Printf("  %s\n", g)
	}

	fmt.Println("\npresets:")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  NAME\tGAIT\tFREQ\tCOUPLING\tBACKWARD\tTURN")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		turn := "-"
		if p.Turn.Direction != "" {
			turn = fmt.Sprintf("%s %.1f", p.Turn.Direction, p.Turn.Factor)
		}
		fmt.Fprintf(w, "  %s\t%s\t%.2fhz\t%.2f\t%v\t%s\n",
			name, p.Gait, p.Frequency, p.Coupling, p.Backward, turn)
	}
	return w.Flush()
}
