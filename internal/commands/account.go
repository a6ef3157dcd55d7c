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

func newAccountCommand(open func() (*app, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage accounts",
	}
	cmd.AddCommand(newAccountAddCommand(open))
	cmd.AddCommand(newAccountListCommand(open))
	cmd.AddCommand(newAccountRemoveCommand(open))
	return cmd
}

func newAccountAddCommand(open func() (*app, error)) *cobra.Command {
	var name, accountType, currency, opening string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			at, err := model.ParseAssetType(accountType)
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

			account := model.Account{
				ID:             id.New(),
				Name:           name,
				Type:           at,
				Currency:       cur,
				OpeningBalance: model.ParseAmount(opening),
			}
			if err := a.apply("account add: "+name, func(doc model.Document) (model.Document, error) {
				return state.AddAccount(doc, account), nil
			}); err != nil {
				return err
			}
			fmt.Printf("Added account %s (%s)\n", name, account.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "account name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&accountType, "type", string(model.AssetCash), "asset type")
	cmd.Flags().StringVar(&currency, "currency", string(model.KRW), "currency (KRW|USD)")
	cmd.Flags().StringVar(&opening, "opening", "0", "opening balance")

	return cmd
}

func newAccountListCommand(open func() (*app, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List accounts with balances",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := open()
			if err != nil {
				return err
			}
			doc := a.container.Snapshot()
			summary := metrics.Compute(doc)

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tTYPE\tCURRENCY\tBALANCE\tBASE")
			for _, acct := range doc.Accounts {
				b := summary.Balances[acct.ID]
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					acct.ID, acct.Name, acct.Type, acct.Currency,
					formatMoney(b.Balance, acct.Currency),
					formatMoney(b.BaseBalance, doc.Settings.BaseCurrency))
			}
			return w.Flush()
		},
	}
}

func newAccountRemoveCommand(open func() (*app, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <account-id>",
		Short: "Remove an account and everything referencing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			accountID := args[0]
			a, err := open()
			if err != nil {
				return err
			}
			var name string
			if err := a.apply("account rm: "+accountID, func(doc model.Document) (model.Document, error) {
				acct, ok := state.AccountByID(doc, accountID)
				if !ok {
					return doc, fmt.Errorf("account not found: %s", accountID)
				}
				name = acct.Name
				return state.DeleteAccount(doc, accountID), nil
			}); err != nil {
				return err
			}
			fmt.Printf("Removed account %s and its transactions and positions\n", name)
			return nil
		},
	}
}
