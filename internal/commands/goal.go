package commands

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/moneymap-dev/moneymap/internal/id"
	"github.com/moneymap-dev/moneymap/internal/metrics"
	"github.com/moneymap-dev/moneymap/internal/model"
	"github.com/moneymap-dev/moneymap/internal/state"
)

func newGoalCommand(open func() (*app, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Manage savings goals",
	}
	cmd.AddCommand(newGoalAddCommand(open))
	cmd.AddCommand(newGoalListCommand(open))
	cmd.AddCommand(newGoalRemoveCommand(open))
	return cmd
}

func newGoalAddCommand(open func() (*app, error)) *cobra.Command {
	var name, target, deadline, accounts, note string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a savings goal",
		RunE: func(cmd *cobra.Command, args []string) error {
			due, err := model.ParseDate(deadline)
			if err != nil {
				return err
			}

			var accountIDs []string
			if accounts != "" {
				accountIDs = strings.Split(accounts, ",")
			}

			a, err := open()
			if err != nil {
				return err
			}

			goal := model.Goal{
				ID:           id.New(),
				Name:         name,
				TargetAmount: model.ParseAmount(target),
				Deadline:     due,
				AccountIDs:   accountIDs,
				Note:         note,
			}
			if err := a.apply("goal add: "+name, func(doc model.Document) (model.Document, error) {
				return state.AddGoal(doc, goal), nil
			}); err != nil {
				return err
			}
			fmt.Printf("Added goal %s (%s)\n", name, goal.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "goal name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&target, "target", "0", "target amount in the base currency")
	cmd.Flags().StringVar(&deadline, "deadline", "", "deadline (YYYY-MM-DD, required)")
	_ = cmd.MarkFlagRequired("deadline")
	cmd.Flags().StringVar(&accounts, "accounts", "", "comma-separated linked account IDs")
	cmd.Flags().StringVar(&note, "note", "", "free-text note")

	return cmd
}

func newGoalListCommand(open func() (*app, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List goals with progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := open()
			if err != nil {
				return err
			}
			doc := a.container.Snapshot()
			summary := metrics.Compute(doc)
			base := doc.Settings.BaseCurrency

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tTARGET\tCURRENT\tPROGRESS\tDEADLINE")
			for _, g := range summary.Goals {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					g.GoalID, g.Name,
					formatMoney(g.Target, base),
					formatMoney(g.Current, base),
					g.Percent, g.Deadline)
			}
			return w.Flush()
		},
	}
}

func newGoalRemoveCommand(open func() (*app, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <goal-id>",
		Short: "Remove a goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := open()
			if err != nil {
				return err
			}
			if err := a.apply("goal rm: "+args[0], func(doc model.Document) (model.Document, error) {
				return state.DeleteGoal(doc, args[0]), nil
			}); err != nil {
				return err
			}
			fmt.Println("Removed goal", args[0])
			return nil
		},
	}
}
