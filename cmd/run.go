package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sarchlab/vmsim/mem"
	"github.com/sarchlab/vmsim/monitoring"
	"github.com/sarchlab/vmsim/simulation"
	"github.com/sarchlab/vmsim/vm"
	"github.com/sarchlab/vmsim/vm/mmu"
)

var (
	backingStorePath string
	numFrames        int
	tlbEntries       int
	traceEnabled     bool
	traceDBPath      string
	monitorEnabled   bool
	monitorPort      int
	openBrowser      bool
)

func init() {
	rootCmd.Flags().StringVarP(&backingStorePath, "backing-store", "b",
		"BACKING_STORE.bin", "path of the 65536-byte page image")
	rootCmd.Flags().IntVarP(&numFrames, "frames", "f",
		128, "number of physical frames")
	rootCmd.Flags().IntVarP(&tlbEntries, "tlb-entries", "t",
		16, "capacity of the translation cache")
	rootCmd.Flags().BoolVar(&traceEnabled, "trace",
		false, "record every translation into a SQLite database")
	rootCmd.Flags().StringVar(&traceDBPath, "trace-db",
		"", "trace database name, without the .sqlite3 suffix")
	rootCmd.Flags().BoolVar(&monitorEnabled, "monitor",
		false, "serve live run statistics over HTTP")
	rootCmd.Flags().IntVar(&monitorPort, "port",
		0, "monitoring server port, 0 for a random port")
	rootCmd.Flags().BoolVar(&openBrowser, "open-browser",
		false, "open the statistics page in a browser")
}

func runSimulation(cmd *cobra.Command, args []string) error {
	applyEnvDefaults(cmd)

	backing, err := mem.NewBackingStore(
		backingStorePath, vm.NumPages, vm.PageSize)
	if err != nil {
		return err
	}

	translator := mmu.MakeBuilder().
		WithNumFrames(numFrames).
		WithTLBCapacity(tlbEntries).
		WithPageReader(backing).
		Build()

	builder := simulation.MakeBuilder().
		WithMMU(translator).
		WithOutput(os.Stdout)
	if traceEnabled || traceDBPath != "" {
		builder = builder.WithTracing(traceDBPath)
	}

	sim := builder.Build()
	defer sim.Terminate()

	if monitorEnabled {
		monitor := monitoring.NewMonitor().WithPortNumber(monitorPort)
		monitor.RegisterMMU(translator)

		err := monitor.StartServer()
		if err != nil {
			return err
		}

		if openBrowser {
			monitor.OpenBrowser()
		}
	}

	input, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("address file: %w", err)
	}
	defer input.Close()

	return sim.Run(input)
}

// applyEnvDefaults overrides flag defaults with VMSIM_* environment
// variables, optionally loaded from a .env file. Flags set on the command
// line still win.
func applyEnvDefaults(cmd *cobra.Command) {
	_ = godotenv.Load()

	if v := os.Getenv("VMSIM_BACKING_STORE"); v != "" &&
		!cmd.Flags().Changed("backing-store") {
		backingStorePath = v
	}

	if v := os.Getenv("VMSIM_FRAMES"); v != "" &&
		!cmd.Flags().Changed("frames") {
		if n, err := strconv.Atoi(v); err == nil {
			numFrames = n
		}
	}

	if v := os.Getenv("VMSIM_TLB_ENTRIES"); v != "" &&
		!cmd.Flags().Changed("tlb-entries") {
		if n, err := strconv.Atoi(v); err == nil {
			tlbEntries = n
		}
	}
}
