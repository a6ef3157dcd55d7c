package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/moneymap-dev/moneymap/internal/id"
	"github.com/moneymap-dev/moneymap/internal/metrics"
	"github.com/moneymap-dev/moneymap/internal/model"
	"github.com/moneymap-dev/moneymap/internal/state"
)

func newPositionCommand(open func() (*app, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "position",
		Short: "Manage investment positions",
	}
	cmd.AddCommand(newPositionAddCommand(open))
	cmd.AddCommand(newPositionListCommand(open))
	cmd.AddCommand(newPositionPriceCommand(open))
	cmd.AddCommand(newPositionRemoveCommand(open))
	return cmd
}

func newPositionAddCommand(open func() (*app, error)) *cobra.Command {
	var accountID, symbol, name, assetType, currency string
	var qty, avgPrice, lastPrice string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a position",
		RunE: func(cmd *cobra.Command, args []string) error {
			at, err := model.ParseAssetType(assetType)
			if err != nil {
				return err
			}
			cur, err := model.ParseCurrency(currency)
			if err != nil {
				return err
			}

			a, err := open()
			if err != nil {
				return err
			}

			pos := model.Position{
				ID:        id.New(),
				AccountID: accountID,
				Symbol:    symbol,
				Name:      name,
				AssetType: at,
				Quantity:  model.ParseAmount(qty),
				AvgPrice:  model.ParseAmount(avgPrice),
				Currency:  cur,
				LastPrice: model.ParseAmount(lastPrice),
			}
			if err := a.apply("position add: "+symbol, func(doc model.Document) (model.Document, error) {
				if _, ok := state.AccountByID(doc, accountID); !ok {
					return doc, fmt.Errorf("account not found: %s", accountID)
				}
				return state.AddPosition(doc, pos), nil
			}); err != nil {
				return err
			}
			fmt.Printf("Added position %s (%s)\n", symbol, pos.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "account ID (required)")
	_ = cmd.MarkFlagRequired("account")
	cmd.Flags().StringVar(&symbol, "symbol", "", "ticker symbol (required)")
	_ = cmd.MarkFlagRequired("symbol")
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&assetType, "asset-type", string(model.AssetStock), "asset type")
	cmd.Flags().StringVar(&qty, "qty", "0", "quantity held")
	cmd.Flags().StringVar(&avgPrice, "avg-price", "0", "average cost basis per unit")
	cmd.Flags().StringVar(&currency, "currency", string(model.KRW), "currency (KRW|USD)")
	cmd.Flags().StringVar(&lastPrice, "last-price", "0", "last mark-to-market price")

	return cmd
}

func newPositionListCommand(open func() (*app, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List positions with valuations",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := open()
			if err != nil {
				return err
			}
			doc := a.container.Snapshot()
			valuations := metrics.ComputePositionValuations(doc.Positions, doc.Settings)

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSYMBOL\tACCOUNT\tTYPE\tQTY\tVALUE\tP/L\tP/L%")
			for _, v := range valuations {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%.2f%%\n",
					v.PositionID, v.Symbol, state.AccountLabel(doc, v.AccountID), v.AssetType,
					quantityOf(doc, v.PositionID),
					formatMoney(v.MarketValue, v.Currency),
					formatMoney(v.GainLoss, v.Currency),
					v.GainLossPct)
			}
			return w.Flush()
		},
	}
}

func quantityOf(doc model.Document, positionID string) model.Amount {
	for _, p := range doc.Positions {
		if p.ID == positionID {
			return p.Quantity
		}
	}
	return model.Amount{}
}

func newPositionPriceCommand(open func() (*app, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "price <position-id> <price>",
		Short: "Update a position's last mark-to-market price",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := open()
			if err != nil {
				return err
			}
			if err := a.apply("position price: "+args[0], func(doc model.Document) (model.Document, error) {
				return state.UpdatePositionPrice(doc, args[0], model.ParseAmount(args[1]))
			}); err != nil {
				return err
			}
			fmt.Printf("Updated price of %s to %s\n", args[0], args[1])
			return nil
		},
	}
}

func newPositionRemoveCommand(open func() (*app, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <position-id>",
		Short: "Remove a position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := open()
			if err != nil {
				return err
			}
			if err := a.apply("position rm: "+args[0], func(doc model.Document) (model.Document, error) {
				return state.DeletePosition(doc, args[0]), nil
			}); err != nil {
				return err
			}
			fmt.Println("Removed position", args[0])
			return nil
		},
	}
}
