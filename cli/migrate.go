package cli

import (
	"fmt"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"

	"github.com/goto/oaflow/internal/store/postgres"
)

func MigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Example: heredoc.Doc(`
			$ oaflow migrate
			$ oaflow migrate --rollback
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			rollback, err := cmd.Flags().GetBool("rollback")
			if err != nil {
				return err
			}

			store, err := postgres.NewStore(config.DB)
			if err != nil {
				return fmt.Errorf("initializing store: %w", err)
			}
			defer store.Close()

			if rollback {
				if err := store.Rollback(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "last migration reverted")
				return nil
			}
			if err := store.Migrate(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}

	cmd.Flags().Bool("rollback", false, "Revert the last applied migration")

	return cmd
}
