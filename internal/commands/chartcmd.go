package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/moneymap-dev/moneymap/internal/chart"
	"github.com/moneymap-dev/moneymap/internal/metrics"
)

func newChartCommand(open func() (*app, error)) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "chart <networth|allocation>",
		Short: "Render a metric as a PNG chart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := open()
			if err != nil {
				return err
			}
			s := metrics.Compute(a.container.Snapshot())

			var png []byte
			switch args[0] {
			case "networth":
				png, err = chart.RenderNetWorth(s.NetWorth, s.BaseCurrency)
			case "allocation":
				png, err = chart.RenderAllocation(s.Allocation)
			default:
				return fmt.Errorf("unknown chart: %s", args[0])
			}
			if err != nil {
				return err
			}

			if err := os.WriteFile(out, png, 0o644); err != nil {
				return fmt.Errorf("writing chart: %w", err)
			}
			fmt.Printf("Wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "chart.png", "output file")

	return cmd
}
