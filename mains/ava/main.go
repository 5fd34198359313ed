package main

import (
	"os"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/SerhiiStets/AVA-chess-engine/engine"
	"github.com/SerhiiStets/AVA-chess-engine/logx"
)

var VersionString = "1.1 " + runtime.GOOS + "-" + runtime.GOARCH

var (
	configPath string
	presetName string
	logLevel   string

	cfg    engine.Config
	logger zerolog.Logger

	rootCmd = &cobra.Command{
		Use:   "ava",
		Short: "AVA, a small alpha-beta chess engine",
		Long: `AVA searches a fixed number of plies with alpha-beta pruning, picking the
depth from the clock. Run "ava uci" under a chess GUI or bot runner.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file (its preset fills in anything it leaves out)")
	rootCmd.PersistentFlags().StringVar(&presetName, "preset", "", "preset to use without a config file: dual or classic")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "trace, debug, info, warn or error")

	rootCmd.AddCommand(uciCmd, benchCmd)
}

// Logs go to stderr; stdout belongs to UCI.
func setup(cmd *cobra.Command, args []string) error {
	level, err := logx.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	logger = logx.NewLogger(os.Stderr, level)

	switch {
	case configPath != "":
		cfg, err = engine.LoadConfig(configPath)
	case presetName != "":
		cfg, err = engine.Preset(presetName)
	default:
		cfg = engine.DefaultConfig()
	}
	if err != nil {
		logger.Fatal().Err(err).Str("config", configPath).Str("preset", presetName).Msg("bad configuration")
	}

	logger.Debug().Str("preset", cfg.Preset).Str("algorithm", string(cfg.Search.Algorithm)).Int("max-depth", cfg.Time.MaxDepth).Msg("configured")
	return nil
}
