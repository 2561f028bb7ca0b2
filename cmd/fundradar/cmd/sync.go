package cmd

import (
	"github.com/spf13/cobra"

	"github.com/fundradar/fundradar/internal/pipeline"
	"github.com/fundradar/fundradar/pkg/logging"
)

// syncCmd runs one full batch: fetch, extract, reconcile, sync.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run one ingestion batch and sync the sheet",
	Long: `Fetches all configured feeds, extracts funding records from the
funding-related articles, reconciles them against the stored history,
and applies the resulting changes to the sheet.

History is persisted before the sheet is touched, so a sheet failure
never loses extraction work. The command exits non-zero when the sheet
cannot be updated.`,
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	p, err := pipeline.New(ctx, cfg)
	if err != nil {
		return err
	}

	result, err := p.Run(ctx)
	if err != nil {
		logging.FromContext(ctx).Error().Err(err).Msg("Sync failed")
		return err
	}

	cmd.Println(result.Summary())
	return nil
}
