// Command chess-analyzer finds critical moves in PGN games with a UCI
// engine and writes JSON, HTML and prompt reports.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/jacokyle01/critical-moves/config"
	"github.com/jacokyle01/critical-moves/logging"
)

var (
	cfgFile string
	v       = config.New()
	cfg     *config.Config

	// Logger
	logger   *zap.Logger
	closeLog = func() {}
)

// flagKeys maps command line flags to configuration keys.
var flagKeys = map[string]string{
	"engine":     "engine.path",
	"depth":      "analysis.depth",
	"threshold":  "analysis.threshold",
	"output-dir": "output.dir",
	"log-file":   "log.file",
	"log-level":  "log.level",
	"cache-dir":  "cache.dir",
	"addr":       "server.addr",
}

var rootCmd = &cobra.Command{
	Use:   "chess-analyzer [input_dir]",
	Short: "Find critical moves in PGN games with a UCI engine",
	Long: `chess-analyzer replays every game in the PGN files of a directory,
evaluates each position with an external UCI engine (Stockfish by default)
and reports the moves whose evaluation swing reaches the threshold.

Reports are written to the output directory:
  chess_analysis.json          always
  chess_analysis_report.html   unless --no-html
  chess_analysis_prompts.txt   unless --no-prompts`,
	Args:              cobra.ExactArgs(1),
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		closeLog()
	},
	RunE:         runAnalyze,
	SilenceUsage: true,
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [input_dir]",
	Short: "Analyze all PGN files in a directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the report in the output directory over HTTP",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml, json or toml)")
	rootCmd.PersistentFlags().String("output-dir", "./output", "output directory")
	rootCmd.PersistentFlags().String("log-file", "chess_analyzer.log", "log file, empty to log to stderr only")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")

	addAnalyzeFlags(rootCmd)
	addAnalyzeFlags(analyzeCmd)
	serveCmd.Flags().String("addr", ":8080", "listen address")

	rootCmd.AddCommand(analyzeCmd, serveCmd)
}

func addAnalyzeFlags(cmd *cobra.Command) {
	cmd.Flags().String("engine", "stockfish", "path to the UCI engine executable")
	cmd.Flags().Int("depth", 15, "search depth in plies")
	cmd.Flags().Float64("threshold", 2.0, "evaluation swing that makes a move critical")
	cmd.Flags().Bool("no-html", false, "do not write the HTML report")
	cmd.Flags().Bool("no-prompts", false, "do not write the prompts file")
	cmd.Flags().String("cache-dir", "", "directory for the evaluation cache, empty to disable")
}

// setup loads configuration and builds the logger.
func setup(cmd *cobra.Command, args []string) error {
	if err := bindFlags(v, cmd); err != nil {
		return err
	}

	var err error
	cfg, err = config.Load(v, cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	l, closeFn, err := logging.New(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return err
	}
	logger, closeLog = l, closeFn
	return nil
}

func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}
	for name, key := range map[string]string{"no-html": "output.html", "no-prompts": "output.prompts"} {
		if !cmd.Flags().Changed(name) {
			continue
		}
		off, err := cmd.Flags().GetBool(name)
		if err != nil {
			return err
		}
		v.Set(key, !off)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
