// Package cmd provides the command-line interface for vmsim.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "vmsim [flags] address-file",
	Short: "vmsim simulates the address-translation path of a paged " +
		"virtual memory manager.",
	Long: `vmsim resolves a stream of 16-bit virtual addresses to physical ` +
		`byte values through a FIFO translation cache and a page table, ` +
		`paging on demand from a fixed backing store and evicting resident ` +
		`pages first-in-first-out when physical memory is full. It prints ` +
		`one line per address followed by the run statistics.`,
	Args: cobra.ExactArgs(1),
	RunE: runSimulation,
}

// Execute runs the root command.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
