package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ed-sim/ed-sim/sim"
	"github.com/ed-sim/ed-sim/sim/trace"
	"github.com/ed-sim/ed-sim/sim/workload"
)

var (
	// Scenario source and overrides
	scenarioPath   string  // Scenario YAML file; built-in defaults when empty
	rooms          int     // Number of treatment rooms
	seed           int64   // Seed for arrivals and triage
	patients       int     // Number of patients to generate
	horizon        int64   // Last admissible arrival time
	arrivalProcess string  // Arrival process: constant, poisson, gamma, cron
	interval       int64   // Inter-arrival time (constant) or mean inter-arrival time
	rate           float64 // Arrivals per time unit (poisson, gamma)
	cronSchedule   string  // Cron expression for scheduled arrivals
	severityPolicy string  // Triage policy: uniform, weighted, white, yellow, red

	// Output
	logLevel   string // Log verbosity level
	traceLevel string // Event trace level: none, events, outcomes
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "ed-sim",
	Short: "Discrete-event simulator for an emergency department",
}

// runCmd executes a single simulation using the scenario file and CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the emergency department simulation",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel()
		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Invalid trace level: %s", traceLevel)
		}

		sc := loadScenario(cmd)
		logrus.Infof("Starting simulation with %d rooms, %d patients (%s arrivals), severity=%s",
			sc.Department.Rooms, sc.Workload.Patients, sc.Workload.Arrival.Process, sc.Severity.Policy)

		startTime := time.Now()
		st := trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevel(traceLevel)})
		s, err := simulate(sc, st)
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		s.Metrics().Print(os.Stdout)
		if st.Enabled() {
			printTraceSummary(os.Stdout, trace.Summarize(st))
		}

		logrus.Infof("Simulation complete in %s.", time.Since(startTime))
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setLogLevel() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// loadScenario reads --config (or the defaults), applies the flag overrides
// and validates the result. Any failure is fatal.
func loadScenario(cmd *cobra.Command) *Scenario {
	sc := DefaultScenario()
	if scenarioPath != "" {
		var err error
		sc, err = LoadScenario(scenarioPath)
		if err != nil {
			logrus.Fatalf("Failed to load scenario: %v", err)
		}
	}
	applyOverrides(cmd, sc)
	if err := sc.Validate(); err != nil {
		logrus.Fatalf("Invalid scenario: %v", err)
	}
	return sc
}

// applyOverrides copies every flag set on the command line into sc.
// Flags left at their defaults do not touch the scenario file's values.
func applyOverrides(cmd *cobra.Command, sc *Scenario) {
	flags := cmd.Flags()
	if flags.Changed("rooms") {
		sc.Department.Rooms = rooms
	}
	if flags.Changed("seed") {
		sc.Workload.Seed = seed
		sc.Severity.Seed = seed
	}
	if flags.Changed("patients") {
		sc.Workload.Patients = patients
	}
	if flags.Changed("horizon") {
		sc.Workload.Horizon = horizon
	}
	if flags.Changed("arrival") {
		sc.Workload.Arrival.Process = arrivalProcess
	}
	if flags.Changed("interval") {
		sc.Workload.Arrival.Interval = interval
	}
	if flags.Changed("rate") {
		sc.Workload.Arrival.Rate = rate
	}
	if flags.Changed("cron") {
		sc.Workload.Arrival.Schedule = cronSchedule
		if !flags.Changed("arrival") {
			sc.Workload.Arrival.Process = "cron"
		}
	}
	if flags.Changed("severity") {
		sc.Severity.Policy = severityPolicy
	}
}

// simulate runs one scenario to completion. st may be nil.
func simulate(sc *Scenario, st *trace.SimulationTrace) (*sim.Simulator, error) {
	cfg, err := sc.Config()
	if err != nil {
		return nil, err
	}
	policy, err := sc.Policy()
	if err != nil {
		return nil, err
	}
	arrivals, err := workload.GenerateArrivals(&sc.Workload)
	if err != nil {
		return nil, err
	}
	s, err := sim.NewSimulator(cfg, sim.WithSeverityPolicy(policy), sim.WithObserver(newObserver(st)))
	if err != nil {
		return nil, err
	}
	if err := workload.Inject(s, arrivals); err != nil {
		return nil, err
	}
	if err := s.Run(); err != nil {
		return nil, err
	}
	return s, nil
}

func printTraceSummary(w io.Writer, ts *trace.TraceSummary) {
	_, _ = fmt.Fprintln(w, "=== Trace Summary ===")
	_, _ = fmt.Fprintf(w, "Traced Events        : %d\n", ts.TotalEvents)
	_, _ = fmt.Fprintf(w, "Stale Events         : %d\n", ts.StaleEvents)
	_, _ = fmt.Fprintf(w, "Unique Patients      : %d\n", ts.UniquePatients)
	_, _ = fmt.Fprintf(w, "Peak Waiting         : %d\n", ts.PeakWaiting)
	for _, k := range sortedKeys(ts.TypeDistribution) {
		_, _ = fmt.Fprintf(w, "  %-18s : %d\n", k, ts.TypeDistribution[k])
	}
	for _, k := range sortedKeys(ts.Transitions) {
		_, _ = fmt.Fprintf(w, "  %-18s : %d\n", k, ts.Transitions[k])
	}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// registerScenarioFlags binds the scenario override flags shared by run and sweep.
func registerScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&scenarioPath, "config", "", "Path to a scenario YAML file")
	cmd.Flags().IntVar(&rooms, "rooms", 3, "Number of treatment rooms")
	cmd.Flags().Int64Var(&seed, "seed", sim.DefaultSeed, "Seed for patient arrivals and triage")
	cmd.Flags().IntVar(&patients, "patients", 50, "Number of patients to generate (0 = until horizon)")
	cmd.Flags().Int64Var(&horizon, "horizon", 0, "Last admissible arrival time (0 = none)")
	cmd.Flags().StringVar(&arrivalProcess, "arrival", "constant", "Arrival process (constant, poisson, gamma, cron)")
	cmd.Flags().Int64Var(&interval, "interval", 600, "Inter-arrival time, or mean inter-arrival time for poisson/gamma")
	cmd.Flags().Float64Var(&rate, "rate", 0, "Arrivals per time unit for poisson/gamma (overrides interval)")
	cmd.Flags().StringVar(&cronSchedule, "cron", "", "Cron expression for scheduled arrivals (one time unit = one second)")
	cmd.Flags().StringVar(&severityPolicy, "severity", "uniform", "Triage policy (uniform, weighted, white, yellow, red)")
	cmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
}

// init sets up CLI flags and subcommands
func init() {
	registerScenarioFlags(runCmd)
	runCmd.Flags().StringVar(&traceLevel, "trace", "none", "Event trace level (none, events, outcomes)")

	registerScenarioFlags(sweepCmd)
	registerSweepFlags(sweepCmd)

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(sweepCmd)
}
