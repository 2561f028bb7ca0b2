// Package cmd implements the fundradar command tree.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/fundradar/fundradar/internal/config"
	"github.com/fundradar/fundradar/pkg/logging"
)

var (
	configFile string
	verbose    bool
	quiet      bool

	// Version information set by main.
	Version = "dev"
	// Commit is the git commit hash.
	Commit = "unknown"
	// Date is the build date.
	Date = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "fundradar",
	Short: "Startup funding news tracker",
	Long: `Fundradar watches configured news feeds for startup funding
announcements, extracts structured funding records from the articles,
and keeps a synced sheet of rounds seen in the retention window.`,
	PersistentPreRun: setupLogging,
}

// Execute runs the root command with signal-aware context.
func Execute(version, commit, date string) {
	Version = version
	Commit = commit
	Date = date
	rootCmd.Version = fmt.Sprintf("%s (commit %s, built %s)", version, commit, date)

	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logging.Err(err).Msg("Command failed")
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadEnvFile)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (optional)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "errors only")
}

// loadEnvFile loads a local .env file into the environment if present.
// Real environment variables win over file values.
func loadEnvFile() {
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load(".env")
	}
}

// setupLogging applies the verbosity flags. The default logger carries
// its own level, so it is rebuilt at the selected one; the global level
// moves with it.
func setupLogging(cmd *cobra.Command, _ []string) {
	switch {
	case quiet:
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
		logging.SetDefault(logging.Default().Level(zerolog.ErrorLevel))
	case verbose:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		logging.SetDefault(logging.Default().Level(zerolog.DebugLevel))
	}
	cmd.SetContext(logging.WithLogger(cmd.Context(), logging.Default()))
}

// loadConfig resolves configuration for a subcommand run.
func loadConfig() (*config.Config, error) {
	return config.Load(configFile)
}
