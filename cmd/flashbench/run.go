package main

import (
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:     "run",
	Short:   "Run a throughput/latency benchmark against flashmap",
	Long:    "",
	RunE:    runBenchmark,
	PreRunE: bindRunFlags,
}

func init() {
	key := "workers"
	runCmd.Flags().Int(key, 8, WrapString("Number of concurrent reader goroutines"))
	key = "duration"
	runCmd.Flags().String(key, "5s", WrapString("How long to run the benchmark for (a Go duration string)"))
	key = "keyspace"
	runCmd.Flags().Int(key, 10_000, WrapString("Number of distinct keys the writer cycles through"))
	key = "value-size"
	runCmd.Flags().Int(key, 64, WrapString("Size in bytes of each value the writer inserts"))
	key = "value-strategy"
	runCmd.Flags().String(key, "clone", WrapString("Value storage strategy to use: clone or alias"))
	key = "write-batch"
	runCmd.Flags().Int(key, 32, WrapString("Number of mutations the writer applies per guard before publishing"))
	key = "metrics-addr"
	runCmd.Flags().String(key, "", WrapString("If set, serve Prometheus-format metrics on this address (e.g. :9090) for the run's duration"))
	key = "log-level"
	runCmd.Flags().String(key, "info", WrapString("Log level: debug, info, warn, or error"))
	key = "csv"
	runCmd.Flags().String(key, "", WrapString("Optional path to save per-operation latency percentiles as CSV"))
}

func bindRunFlags(cmd *cobra.Command, _ []string) error {
	return BindCommandFlags(cmd)
}
