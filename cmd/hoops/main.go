// Command hoops runs the fantasy draft server and its maintenance tasks.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aatrey56/hoops-draft/internal/config"
	"github.com/aatrey56/hoops-draft/internal/logging"
)

var (
	cfg    config.Config
	logger *zap.Logger

	logLevel string
	dbPath   string
	dataRoot string
)

var rootCmd = &cobra.Command{
	Use:   "hoops",
	Short: "Fantasy basketball draft server",
	Long: `hoops runs a turn-based fantasy basketball draft.

Participants take turns drafting players for five rounds; the finished
rosters are scored attribute by attribute against a league dataset.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") {
			loaded.LogLevel = logLevel
		}
		if cmd.Flags().Changed("db") {
			loaded.DBPath = dbPath
		}
		if cmd.Flags().Changed("data-root") {
			loaded.DataRoot = dataRoot
		}
		cfg = loaded

		logger, err = logging.New(cfg.LogLevel, cfg.LogDevelopment)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database path (overrides HOOPS_DB_PATH)")
	rootCmd.PersistentFlags().StringVar(&dataRoot, "data-root", "", "root directory for cached JSON (overrides HOOPS_DATA_ROOT)")

	rootCmd.AddCommand(serveCmd, seedCmd, fetchLeagueCmd, leagueSchemaCmd, migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
