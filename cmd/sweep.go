package cmd

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ed-sim/ed-sim/sim"
)

var (
	minRooms     int // First room count of the sweep
	maxRooms     int // Last room count of the sweep (inclusive)
	sweepWorkers int // Concurrent simulations; 0 = number of CPUs
)

// SweepResult holds the outcome of one run of a room-count sweep.
type SweepResult struct {
	Rooms   int
	Metrics *sim.Metrics
}

// sweepCmd runs the same scenario once per room count and prints a comparison table
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run the scenario over a range of room counts",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel()
		sc := loadScenario(cmd)
		results, err := sweepRooms(sc, minRooms, maxRooms, sweepWorkers)
		if err != nil {
			logrus.Fatalf("Sweep failed: %v", err)
		}
		printSweep(os.Stdout, results)
	},
}

// sweepRooms runs sc once for every room count in [from, to], each run on its
// own Simulator with freshly generated arrivals. Results are ordered by room count.
func sweepRooms(sc *Scenario, from, to, workers int) ([]SweepResult, error) {
	if from < 0 || to < from {
		return nil, fmt.Errorf("invalid room range [%d, %d]", from, to)
	}
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	results := make([]SweepResult, to-from+1)
	g := new(errgroup.Group)
	g.SetLimit(workers)
	for i := range results {
		i := i
		n := from + i
		g.Go(func() error {
			run := *sc
			run.Department.Rooms = n
			s, err := simulate(&run, nil)
			if err != nil {
				return fmt.Errorf("rooms=%d: %w", n, err)
			}
			results[i] = SweepResult{Rooms: n, Metrics: s.Metrics()}
			logrus.Infof("Sweep: %d rooms done (%d treated, %d dead, %d abandoned)",
				n, s.TreatedCount(), s.DeadCount(), s.AbandonedCount())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func printSweep(w io.Writer, results []SweepResult) {
	_, _ = fmt.Fprintln(w, "=== Room Sweep ===")
	_, _ = fmt.Fprintf(w, "%6s %8s %6s %10s %12s %10s\n", "rooms", "treated", "dead", "abandoned", "escalations", "max_wait")
	for _, r := range results {
		m := r.Metrics
		_, _ = fmt.Fprintf(w, "%6d %8d %6d %10d %12d %10d\n", r.Rooms, m.Treated, m.Dead, m.Abandoned, m.Escalations, m.MaxWait)
	}
}

func registerSweepFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&minRooms, "min-rooms", 1, "First room count of the sweep")
	cmd.Flags().IntVar(&maxRooms, "max-rooms", 10, "Last room count of the sweep (inclusive)")
	cmd.Flags().IntVar(&sweepWorkers, "workers", 0, "Concurrent simulations (0 = number of CPUs)")
}
