package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/moneymap-dev/moneymap/internal/model"
	"github.com/moneymap-dev/moneymap/internal/state"
)

func newSettingsCommand(open func() (*app, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Manage settings",
	}
	cmd.AddCommand(newSettingsSetCommand(open))
	cmd.AddCommand(newSettingsShowCommand(open))
	return cmd
}

func newSettingsSetCommand(open func() (*app, error)) *cobra.Command {
	var baseCurrency, rate, riskProfile string
	var advanced bool

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update settings; only flags you pass are changed",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := open()
			if err != nil {
				return err
			}
			if err := a.apply("settings set", func(doc model.Document) (model.Document, error) {
				s := doc.Settings
				if cmd.Flags().Changed("base-currency") {
					cur, err := model.ParseCurrency(baseCurrency)
					if err != nil {
						return doc, err
					}
					s.BaseCurrency = cur
				}
				if cmd.Flags().Changed("usd-krw-rate") {
					s.USDKRWRate = model.ParseAmount(rate)
				}
				if cmd.Flags().Changed("risk-profile") {
					s.RiskProfile = riskProfile
				}
				if cmd.Flags().Changed("advanced") {
					s.Advanced = advanced
				}
				return state.UpdateSettings(doc, s), nil
			}); err != nil {
				return err
			}
			fmt.Println("Updated settings")
			return nil
		},
	}

	cmd.Flags().StringVar(&baseCurrency, "base-currency", "", "base currency (KRW|USD)")
	cmd.Flags().StringVar(&rate, "usd-krw-rate", "", "manual USD to KRW exchange rate")
	cmd.Flags().StringVar(&riskProfile, "risk-profile", "", "risk profile tag")
	cmd.Flags().BoolVar(&advanced, "advanced", false, "advanced mode")

	return cmd
}

func newSettingsShowCommand(open func() (*app, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := open()
			if err != nil {
				return err
			}
			s := a.container.Snapshot().Settings

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "Base currency\t%s\n", s.BaseCurrency)
			fmt.Fprintf(w, "USD/KRW rate\t%s\n", s.USDKRWRate)
			fmt.Fprintf(w, "Risk profile\t%s\n", s.RiskProfile)
			fmt.Fprintf(w, "Advanced\t%t\n", s.Advanced)
			return w.Flush()
		},
	}
}
