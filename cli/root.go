package cli

import (
	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"
)

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "oaflow <command> <subcommand> [flags]",
		Short:         "Multi-level application approvals",
		Long:          "Submit applications and route them through factory, director, manager and ceo approvals.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: heredoc.Doc(`
			$ oaflow migrate
			$ oaflow application create --title forklift --submitter alice@example.com --factory-approvers f1@example.com,f2@example.com
			$ oaflow application decide 6a1a7a5c-25e9-4c5f-a0d3-a5ac2bd8ad0d --actor f1@example.com --action approve
			$ oaflow job run pending_approvals_reminder
		`),
	}

	cmd.AddCommand(
		MigrateCmd(),
		ApplicationCmd(),
		JobCmd(),
	)

	cmd.PersistentFlags().StringP("config", "c", "./config.yaml", "Config file path")
	cmd.MarkPersistentFlagFilename("config")

	return cmd
}
