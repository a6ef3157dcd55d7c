package commands

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/moneymap-dev/moneymap/internal/model"
	"github.com/moneymap-dev/moneymap/internal/state"
)

func newTargetsCommand(open func() (*app, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "targets",
		Short: "Manage target allocation",
	}
	cmd.AddCommand(newTargetsSetCommand(open))
	cmd.AddCommand(newTargetsShowCommand(open))
	return cmd
}

func newTargetsSetCommand(open func() (*app, error)) *cobra.Command {
	var threshold float64

	cmd := &cobra.Command{
		Use:   "set [Type=Percent ...]",
		Short: "Set target allocation percentages and the drift threshold",
		Long: `Set target allocation percentages per asset type, e.g.:

  moneymap targets set Stock=45 Bond=20 Cash=15 --threshold 5

Types not mentioned keep their current target. Targets are expected, but
not required, to sum to 100.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			updates := make(map[model.AssetType]model.Percent, len(args))
			for _, arg := range args {
				name, value, ok := strings.Cut(arg, "=")
				if !ok {
					return fmt.Errorf("expected Type=Percent, got %q", arg)
				}
				at, err := model.ParseAssetType(name)
				if err != nil {
					return err
				}
				pct, err := strconv.ParseFloat(value, 64)
				if err != nil {
					return fmt.Errorf("invalid percentage %q: %w", value, err)
				}
				updates[at] = model.Percent(pct)
			}

			a, err := open()
			if err != nil {
				return err
			}
			if err := a.apply("targets set", func(doc model.Document) (model.Document, error) {
				targets := doc.Targets
				for at, pct := range updates {
					targets.Allocation[at] = pct
				}
				if cmd.Flags().Changed("threshold") {
					targets.DriftThreshold = model.Percent(threshold)
				}
				return state.UpdateTargets(doc, targets), nil
			}); err != nil {
				return err
			}
			fmt.Println("Updated targets")
			return nil
		},
	}

	cmd.Flags().Float64Var(&threshold, "threshold", 5, "drift alert threshold in percent")

	return cmd
}

func newTargetsShowCommand(open func() (*app, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show target allocation",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := open()
			if err != nil {
				return err
			}
			doc := a.container.Snapshot()

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TYPE\tTARGET")
			var sum model.Percent
			for _, at := range model.AssetTypes() {
				pct := doc.Targets.Allocation[at]
				sum += pct
				fmt.Fprintf(w, "%s\t%s\n", at, pct)
			}
			fmt.Fprintf(w, "TOTAL\t%s\n", sum)
			fmt.Fprintf(w, "THRESHOLD\t%s\n", doc.Targets.DriftThreshold)
			return w.Flush()
		},
	}
}
