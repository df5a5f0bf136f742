package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "flashbench",
	Short: "throughput and latency benchmark for flashmap",
	Long: fmt.Sprintf(`flashbench (v%s)

Drives a flashmap instance with one writer and many concurrent readers
and reports throughput and latency percentiles per operation kind.`, version),
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of flashbench",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("flashbench v%s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)

	cobra.OnInitialize(InitConfig)
}

// Execute adds all child commands to the root command and sets flags
// appropriately. Called once by main.main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}
