// Command flashbench is a throughput and latency benchmark driver for the
// flashmap library. It is a separate binary, not part of the library's
// API surface - flashmap itself has no notion of workers, latency
// percentiles, or CLI flags.
//
// The command tree has two entries:
//
//   - run: spins up a single writer and a configurable number of reader
//     goroutines against one flashmap instance, drives them for a fixed
//     duration, and reports latency/throughput
//     percentiles per operation kind.
//   - version: prints the tool's version.
//
// Run flashbench -help for the full flag list.
package main
