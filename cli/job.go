package cli

import (
	"fmt"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"

	"github.com/goto/oaflow/jobs"
)

func JobCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "job",
		Aliases: []string{"jobs"},
		Short:   "Manage jobs",
		Example: heredoc.Doc(`
			$ oaflow job run pending_approvals_reminder
		`),
	}

	cmd.AddCommand(
		runJobCmd(),
	)

	return cmd
}

func runJobCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Fire a specific job",
		Example: heredoc.Doc(`
			$ oaflow job run pending_approvals_reminder
			$ oaflow job run archive_completed_applications
		`),
		Args: cobra.ExactValidArgs(1),
		ValidArgs: []string{
			string(jobs.TypePendingApprovalsReminder),
			string(jobs.TypeArchiveCompletedApplications),
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			handler := jobs.NewHandler(
				rt.logger,
				rt.services.ReportService,
				rt.services.ApplicationService,
				rt.notifier,
			)

			jobType := jobs.Type(args[0])
			jobConfig := rt.config.Jobs[jobType]
			if err := handler.Run(cmd.Context(), jobType, jobConfig.Config); err != nil {
				return fmt.Errorf(`failed to run job "%s": %w`, jobType, err)
			}

			return nil
		},
	}

	return cmd
}
