package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/moneymap-dev/moneymap/internal/metrics"
	"github.com/moneymap-dev/moneymap/internal/model"
)

func newReportCommand(open func() (*app, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Derived reports",
	}
	cmd.AddCommand(newReportDashboardCommand(open))
	cmd.AddCommand(newReportAllocationCommand(open))
	cmd.AddCommand(newReportDriftCommand(open))
	cmd.AddCommand(newReportNetWorthCommand(open))
	cmd.AddCommand(newReportCashflowCommand(open))
	cmd.AddCommand(newReportGoalsCommand(open))
	return cmd
}

func reportSummary(open func() (*app, error)) (metrics.Summary, error) {
	a, err := open()
	if err != nil {
		return metrics.Summary{}, err
	}
	return metrics.Compute(a.container.Snapshot()), nil
}

func newReportDashboardCommand(open func() (*app, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Overview: total assets, latest net worth, drift alerts",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := reportSummary(open)
			if err != nil {
				return err
			}

			fmt.Printf("Total assets: %s\n", formatMoney(s.TotalAssets, s.BaseCurrency))
			if n := len(s.NetWorth); n > 0 {
				last := s.NetWorth[n-1]
				fmt.Printf("Net worth (%s): %s\n", last.Month, formatMoney(last.Value, s.BaseCurrency))
			}

			alerting := 0
			for _, d := range s.Drift {
				if d.Alerting {
					alerting++
				}
			}
			fmt.Printf("Drift alerts: %d\n", alerting)
			if s.Rebalance != nil {
				fmt.Printf("Suggestion: move %s of assets from %s to %s\n",
					s.Rebalance.Percent, s.Rebalance.From, s.Rebalance.To)
			}
			return nil
		},
	}
}

func newReportAllocationCommand(open func() (*app, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "allocation",
		Short: "Actual allocation per asset type",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := reportSummary(open)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TYPE\tTOTAL\tACTUAL")
			for _, at := range model.AssetTypes() {
				fmt.Fprintf(w, "%s\t%s\t%s\n",
					at, formatMoney(s.TypeTotals[at], s.BaseCurrency), s.Allocation[at])
			}
			fmt.Fprintf(w, "TOTAL\t%s\t\n", formatMoney(s.TotalAssets, s.BaseCurrency))
			return w.Flush()
		},
	}
}

func newReportDriftCommand(open func() (*app, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "drift",
		Short: "Allocation drift against targets, largest deviation first",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := reportSummary(open)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TYPE\tTARGET\tACTUAL\tDIFF\tALERT")
			for _, d := range s.Drift {
				alert := ""
				if d.Alerting {
					alert = "!"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					d.Type, d.Target, d.Actual, d.Diff.SignedString(), alert)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			if s.Rebalance != nil {
				fmt.Printf("\nSuggestion: move %s of assets from %s to %s\n",
					s.Rebalance.Percent, s.Rebalance.From, s.Rebalance.To)
			}
			return nil
		},
	}
}

func newReportNetWorthCommand(open func() (*app, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "networth",
		Short: "Monthly net-worth series",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := reportSummary(open)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "MONTH\tNET WORTH")
			for _, p := range s.NetWorth {
				fmt.Fprintf(w, "%s\t%s\n", p.Month, formatMoney(p.Value, s.BaseCurrency))
			}
			return w.Flush()
		},
	}
}

func newReportGoalsCommand(open func() (*app, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "goals",
		Short: "Savings goal progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := reportSummary(open)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tTARGET\tCURRENT\tPROGRESS\tDEADLINE")
			for _, g := range s.Goals {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					g.Name,
					formatMoney(g.Target, s.BaseCurrency),
					formatMoney(g.Current, s.BaseCurrency),
					g.Percent, g.Deadline)
			}
			return w.Flush()
		},
	}
}

func newReportCashflowCommand(open func() (*app, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "cashflow",
		Short: "Monthly gross income and expense",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := reportSummary(open)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "MONTH\tINCOME\tEXPENSE")
			for _, f := range s.Cashflow {
				fmt.Fprintf(w, "%s\t%s\t%s\n",
					f.Month,
					formatMoney(f.Income, s.BaseCurrency),
					formatMoney(f.Expense, s.BaseCurrency))
			}
			return w.Flush()
		},
	}
}
