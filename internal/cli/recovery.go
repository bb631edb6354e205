// filepath: internal/cli/recovery.go
package cli

import (
	"context"
	"flexnas/internal/logging"
	"flexnas/internal/repository"
	"fmt"

	"github.com/spf13/cobra"
)

var resetProtocols bool

var recoveryCmd = &cobra.Command{
	Use:   "recovery",
	Short: "Restore the seeded file-sharing protocol rows",
	Long: `Re-creates any of the smb, nfs, ftp and webdav service rows that have gone missing.
With --reset, existing rows are also returned to their default port and config and disabled.
This does not start the HTTP server.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRecovery(cmd.Context(), resetProtocols)
	},
}

func init() {
	recoveryCmd.Flags().BoolVar(&resetProtocols, "reset", false, "Also reset existing protocol rows to their defaults.")
	RootCmd.AddCommand(recoveryCmd)
}

func runRecovery(ctx context.Context, reset bool) error {
	if ctx == nil {
		ctx = context.Background()
	}

	repo, err := repository.NewRepository(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer repo.Close()

	if err := repo.ValidateSchema(); err != nil {
		return fmt.Errorf("cannot run recovery on outdated database: %w", err)
	}

	logging.Log.Info("Starting recovery process...")

	totalFixed, err := repo.RestoreDefaultProtocols(ctx, reset)
	if err != nil {
		return err
	}

	logging.Log.Infof("Recovery complete. Total protocol rows fixed: %d", totalFixed)
	return nil
}
