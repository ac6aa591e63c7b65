package cli

import (
	"fmt"
	"os"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goto/oaflow/core/report"
	"github.com/goto/oaflow/domain"
)

func ApplicationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "application",
		Aliases: []string{"applications", "app"},
		Short:   "Manage applications and their approvals",
		Example: heredoc.Doc(`
			$ oaflow application create --file application.yaml
			$ oaflow application submit <id> --actor alice@example.com
			$ oaflow application decide <id> --actor director@example.com --action approve --routing to_manager
			$ oaflow application history <id> --viewer alice@example.com
		`),
	}

	cmd.AddCommand(
		createApplicationCmd(),
		getApplicationCmd(),
		listApplicationsCmd(),
		updateApplicationCmd(),
		deleteApplicationCmd(),
		submitApplicationCmd(),
		decideApplicationCmd(),
		cancelApplicationCmd(),
		archiveApplicationCmd(),
		historyApplicationCmd(),
		eventsApplicationCmd(),
		pendingApprovalsCmd(),
	)

	return cmd
}

func createApplicationCmd() *cobra.Command {
	var (
		filePath string
		app      domain.Application
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a draft application",
		Example: heredoc.Doc(`
			$ oaflow application create --title forklift --submitter alice@example.com --department plant-a --amount 1200 --factory-approvers f1@example.com,f2@example.com
			$ oaflow application create --file application.yaml
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if filePath != "" {
				content, err := os.ReadFile(filePath)
				if err != nil {
					return fmt.Errorf("reading application file: %w", err)
				}
				if err := yaml.Unmarshal(content, &app); err != nil {
					return fmt.Errorf("parsing application file: %w", err)
				}
			}

			rt, err := newRuntime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			if err := rt.services.ApplicationService.Create(cmd.Context(), &app); err != nil {
				return err
			}
			return printYAML(cmd, app)
		},
	}

	cmd.Flags().StringVarP(&filePath, "file", "f", "", "Path to an application yaml, flags are ignored when set")
	cmd.Flags().StringVar(&app.Title, "title", "", "Application title")
	cmd.Flags().StringVar(&app.SubmitterID, "submitter", "", "Submitter id")
	cmd.Flags().StringVar(&app.Department, "department", "", "Department used to route director lookups")
	cmd.Flags().Float64Var(&app.Amount, "amount", 0, "Requested amount")
	cmd.Flags().StringSliceVar(&app.FactoryApproverIDs, "factory-approvers", nil, "Factory approver ids")
	cmd.Flags().StringSliceVar(&app.ManagerApproverIDs, "manager-approvers", nil, "Manager approver ids")
	cmd.Flags().BoolVar(&app.SkipManager, "skip-manager", false, "Go straight from director to ceo")

	return cmd
}

func getApplicationCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show an application",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			app, err := rt.services.ApplicationService.GetByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printYAML(cmd, app)
		},
	}
}

func listApplicationsCmd() *cobra.Command {
	filter := domain.ListApplicationsFilter{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List applications",
		Example: heredoc.Doc(`
			$ oaflow application list --approver f1@example.com
			$ oaflow application list --status pending_director,pending_manager --order-by created_at:asc
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			apps, err := rt.services.ApplicationService.Find(cmd.Context(), &filter)
			if err != nil {
				return err
			}
			return printYAML(cmd, apps)
		},
	}

	cmd.Flags().StringSliceVar(&filter.Statuses, "status", nil, "Filter by status")
	cmd.Flags().StringVar(&filter.SubmitterID, "submitter", "", "Filter by submitter")
	cmd.Flags().StringVar(&filter.ApproverID, "approver", "", "Only applications waiting on this approver")
	cmd.Flags().StringVar(&filter.Department, "department", "", "Filter by department")
	cmd.Flags().StringSliceVar(&filter.OrderBy, "order-by", nil, "Order by column, optionally suffixed with :asc or :desc")
	cmd.Flags().IntVar(&filter.Size, "size", 50, "Maximum number of applications")
	cmd.Flags().IntVar(&filter.Offset, "offset", 0, "Number of applications to skip")

	return cmd
}

func updateApplicationCmd() *cobra.Command {
	var (
		actor            string
		title            string
		department       string
		amount           float64
		factoryApprovers []string
		managerApprovers []string
		skipManager      bool
	)
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit a draft application",
		Example: heredoc.Doc(`
			$ oaflow application update <id> --actor alice@example.com --amount 1500
			$ oaflow application update <id> --actor admin@example.com --factory-approvers f1@example.com,f3@example.com
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch domain.ApplicationPatch
			flags := cmd.Flags()
			if flags.Changed("title") {
				patch.Title = &title
			}
			if flags.Changed("department") {
				patch.Department = &department
			}
			if flags.Changed("amount") {
				patch.Amount = &amount
			}
			if flags.Changed("factory-approvers") {
				patch.FactoryApproverIDs = append([]string{}, factoryApprovers...)
			}
			if flags.Changed("manager-approvers") {
				patch.ManagerApproverIDs = append([]string{}, managerApprovers...)
			}
			if flags.Changed("skip-manager") {
				patch.SkipManager = &skipManager
			}

			rt, err := newRuntime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			app, err := rt.services.ApplicationService.Update(cmd.Context(), args[0], actor, patch)
			if err != nil {
				return err
			}
			return printYAML(cmd, app)
		},
	}
	cmd.Flags().StringVar(&actor, "actor", "", "Submitter or admin making the change")
	cmd.Flags().StringVar(&title, "title", "", "Application title")
	cmd.Flags().StringVar(&department, "department", "", "Department used to route director lookups")
	cmd.Flags().Float64Var(&amount, "amount", 0, "Requested amount")
	cmd.Flags().StringSliceVar(&factoryApprovers, "factory-approvers", nil, "Factory approver ids")
	cmd.Flags().StringSliceVar(&managerApprovers, "manager-approvers", nil, "Manager approver ids")
	cmd.Flags().BoolVar(&skipManager, "skip-manager", false, "Go straight from director to ceo")
	cmd.MarkFlagRequired("actor")
	return cmd
}

func deleteApplicationCmd() *cobra.Command {
	var actor string
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a draft or rejected application",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			if err := rt.services.ApplicationService.Delete(cmd.Context(), args[0], actor); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "application %s deleted\n", args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&actor, "actor", "", "Submitter or admin deleting the application")
	cmd.MarkFlagRequired("actor")
	return cmd
}

func submitApplicationCmd() *cobra.Command {
	var actor string
	cmd := &cobra.Command{
		Use:   "submit <id>",
		Short: "Submit a draft for factory approval",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			app, err := rt.services.ApplicationService.Submit(cmd.Context(), args[0], actor)
			if err != nil {
				return err
			}
			return printYAML(cmd, app)
		},
	}
	cmd.Flags().StringVar(&actor, "actor", "", "Submitting user")
	cmd.MarkFlagRequired("actor")
	return cmd
}

func decideApplicationCmd() *cobra.Command {
	var d domain.Decision
	cmd := &cobra.Command{
		Use:   "decide <id>",
		Short: "Approve or reject at the current stage",
		Example: heredoc.Doc(`
			$ oaflow application decide <id> --actor f1@example.com --action approve
			$ oaflow application decide <id> --actor director@example.com --action approve --routing to_manager --managers m1@example.com
			$ oaflow application decide <id> --actor ceo@example.com --action reject --comment "over budget"
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			d.ApplicationID = args[0]
			app, err := rt.services.ApplicationService.Decide(cmd.Context(), d)
			if err != nil {
				if domain.IsRetryable(err) {
					return fmt.Errorf("%w (reload the application and try again)", err)
				}
				return err
			}
			return printYAML(cmd, app)
		},
	}
	cmd.Flags().StringVar(&d.ActorID, "actor", "", "Deciding user")
	cmd.Flags().StringVar(&d.Action, "action", "", "approve or reject")
	cmd.Flags().StringVar(&d.Comment, "comment", "", "Comment, required when rejecting")
	cmd.Flags().StringVar(&d.RoutingChoice, "routing", "", "Director routing: to_manager, to_ceo or complete")
	cmd.Flags().StringSliceVar(&d.SelectedManagerIDs, "managers", nil, "Managers picked by the director when routing to_manager")
	cmd.MarkFlagRequired("actor")
	cmd.MarkFlagRequired("action")
	return cmd
}

func cancelApplicationCmd() *cobra.Command {
	var actor string
	cmd := &cobra.Command{
		Use:   "cancel <id>",
		Short: "Withdraw an application before any approver acted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			app, err := rt.services.ApplicationService.Cancel(cmd.Context(), args[0], actor)
			if err != nil {
				return err
			}
			return printYAML(cmd, app)
		},
	}
	cmd.Flags().StringVar(&actor, "actor", "", "Cancelling user, must be the submitter")
	cmd.MarkFlagRequired("actor")
	return cmd
}

func archiveApplicationCmd() *cobra.Command {
	var actor string
	cmd := &cobra.Command{
		Use:   "archive <id>",
		Short: "Snapshot and archive a finished application",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			app, err := rt.services.ApplicationService.Archive(cmd.Context(), args[0], actor)
			if err != nil {
				return err
			}
			return printYAML(cmd, app)
		},
	}
	cmd.Flags().StringVar(&actor, "actor", "", "Archiving admin")
	cmd.MarkFlagRequired("actor")
	return cmd
}

func historyApplicationCmd() *cobra.Command {
	var viewer string
	cmd := &cobra.Command{
		Use:   "history <id>",
		Short: "Show every recorded decision in order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			ledger, err := rt.services.LedgerService.History(cmd.Context(), args[0], viewer)
			if err != nil {
				return err
			}
			return printYAML(cmd, ledger)
		},
	}
	cmd.Flags().StringVar(&viewer, "viewer", "", "User asking for the history")
	cmd.MarkFlagRequired("viewer")
	return cmd
}

func eventsApplicationCmd() *cobra.Command {
	var types []string
	var actor string
	cmd := &cobra.Command{
		Use:   "events <id>",
		Short: "Show the audit trail of an application",
		Example: heredoc.Doc(`
			$ oaflow application events 2a0d6f6c-3f1c-4c53-9d7e-9f1b55b3e6a1
			$ oaflow application events 2a0d6f6c-3f1c-4c53-9d7e-9f1b55b3e6a1 --type application.decide --actor f1@example.com
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			events, err := rt.services.EventService.List(cmd.Context(), &domain.ListEventsFilter{
				ApplicationID: args[0],
				Types:         types,
				Actor:         actor,
			})
			if err != nil {
				return err
			}
			return printYAML(cmd, events)
		},
	}
	cmd.Flags().StringSliceVar(&types, "type", nil, "only show these event types")
	cmd.Flags().StringVar(&actor, "actor", "", "only show events caused by this user")
	return cmd
}

func pendingApprovalsCmd() *cobra.Command {
	filter := report.PendingApprovalsFilter{}
	cmd := &cobra.Command{
		Use:   "pending",
		Short: "List applications waiting on approvers",
		Example: heredoc.Doc(`
			$ oaflow application pending --approver f1@example.com
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			pending, err := rt.services.ReportService.GetPendingApprovalsList(cmd.Context(), &filter)
			if err != nil {
				return err
			}
			return printYAML(cmd, pending)
		},
	}
	cmd.Flags().StringSliceVar(&filter.Approvers, "approver", nil, "Only these approvers")
	cmd.Flags().StringSliceVar(&filter.Statuses, "status", nil, "Only these pending statuses")
	return cmd
}
