package main

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Wrap is the number of characters to wrap flag help text at.
const Wrap int = 60

// WrapString wraps text at Wrap characters, for flag descriptions.
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := len(word)

		if lineWidth > 0 && lineWidth+1+wordWidth > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}
		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}
		currentLine.WriteString(word)
		lineWidth += wordWidth
	}
	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}
	return strings.Join(wrappedLines, "\n")
}

// InitConfig loads .env/.env.local (if present) and configures viper to
// pick up FLASHBENCH_* environment variables as overrides for any bound
// flag.
func InitConfig() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	viper.SetEnvPrefix("flashbench")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// BindCommandFlags binds a command's flags to viper so FLASHBENCH_* env
// vars and any future config file can override them.
func BindCommandFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}

// runConfig is the resolved configuration for one benchmark run, read
// from viper after flags are bound.
type runConfig struct {
	workers     int
	duration    string
	keyspace    int
	valueSize   int
	strategy    string
	metricsAddr string
	logLevel    string
	csvPath     string
	writeBatch  int
}

func loadRunConfig() (runConfig, error) {
	strategy := viper.GetString("value-strategy")
	if strategy != "clone" && strategy != "alias" {
		return runConfig{}, fmt.Errorf("invalid --value-strategy %q, must be clone or alias", strategy)
	}

	return runConfig{
		workers:     viper.GetInt("workers"),
		duration:    viper.GetString("duration"),
		keyspace:    viper.GetInt("keyspace"),
		valueSize:   viper.GetInt("value-size"),
		strategy:    strategy,
		metricsAddr: viper.GetString("metrics-addr"),
		logLevel:    viper.GetString("log-level"),
		csvPath:     viper.GetString("csv"),
		writeBatch:  viper.GetInt("write-batch"),
	}, nil
}
