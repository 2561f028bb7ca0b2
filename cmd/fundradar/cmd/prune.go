package cmd

import (
	"github.com/spf13/cobra"

	"github.com/fundradar/fundradar/internal/pipeline"
)

// pruneCmd trims history past the retention window without running a
// batch.
var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Drop history records past the retention window",
	RunE:  runPrune,
}

func init() {
	rootCmd.AddCommand(pruneCmd)
}

func runPrune(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	p, err := pipeline.New(ctx, cfg)
	if err != nil {
		return err
	}

	removed, err := p.Prune(ctx)
	if err != nil {
		return err
	}

	cmd.Printf("Pruned %d record(s) older than %d days\n", removed, cfg.RetentionDays)
	return nil
}
