package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/moneymap-dev/moneymap/internal/id"
	"github.com/moneymap-dev/moneymap/internal/importer"
	"github.com/moneymap-dev/moneymap/internal/model"
	"github.com/moneymap-dev/moneymap/internal/state"
)

func newTxCommand(open func() (*app, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Manage transactions",
	}
	cmd.AddCommand(newTxAddCommand(open))
	cmd.AddCommand(newTxListCommand(open))
	cmd.AddCommand(newTxRemoveCommand(open))
	cmd.AddCommand(newTxImportCommand(open))
	return cmd
}

func newTxAddCommand(open func() (*app, error)) *cobra.Command {
	var accountID, dateStr, kindStr, amount, fee, tax, note string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a transaction",
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := model.ParseDate(dateStr)
			if err != nil {
				return err
			}
			kind, err := model.ParseTxKind(kindStr)
			if err != nil {
				return err
			}

			a, err := open()
			if err != nil {
				return err
			}

			tx := model.Transaction{
				ID:        id.New(),
				Date:      date,
				AccountID: accountID,
				Kind:      kind,
				Amount:    model.ParseAmount(amount),
				Fee:       model.ParseAmount(fee),
				Tax:       model.ParseAmount(tax),
				Note:      note,
			}
			if err := a.apply("tx add", func(doc model.Document) (model.Document, error) {
				if _, ok := state.AccountByID(doc, accountID); !ok {
					return doc, fmt.Errorf("account not found: %s", accountID)
				}
				return state.AddTransaction(doc, tx), nil
			}); err != nil {
				return err
			}
			fmt.Printf("Added %s of %s (%s)\n", kind, amount, tx.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "account ID (required)")
	_ = cmd.MarkFlagRequired("account")
	cmd.Flags().StringVar(&dateStr, "date", model.Today().String(), "date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&kindStr, "kind", "", "kind: Deposit|Withdraw|Buy|Sell|Income|Expense (required)")
	_ = cmd.MarkFlagRequired("kind")
	cmd.Flags().StringVar(&amount, "amount", "0", "amount in the account's currency")
	cmd.Flags().StringVar(&fee, "fee", "0", "fee")
	cmd.Flags().StringVar(&tax, "tax", "0", "tax")
	cmd.Flags().StringVar(&note, "note", "", "free-text note")

	return cmd
}

func newTxListCommand(open func() (*app, error)) *cobra.Command {
	var accountID string

	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List transactions",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := open()
			if err != nil {
				return err
			}
			doc := a.container.Snapshot()

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDATE\tACCOUNT\tKIND\tAMOUNT\tFEE\tTAX\tNOTE")
			for _, t := range doc.Transactions {
				if accountID != "" && t.AccountID != accountID {
					continue
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					t.ID, t.Date, state.AccountLabel(doc, t.AccountID), t.Kind,
					t.Amount, t.Fee, t.Tax, t.Note)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "only this account")

	return cmd
}

func newTxRemoveCommand(open func() (*app, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <tx-id>",
		Short: "Remove a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := open()
			if err != nil {
				return err
			}
			if err := a.apply("tx rm: "+args[0], func(doc model.Document) (model.Document, error) {
				return state.DeleteTransaction(doc, args[0]), nil
			}); err != nil {
				return err
			}
			fmt.Println("Removed transaction", args[0])
			return nil
		},
	}
}

func newTxImportCommand(open func() (*app, error)) *cobra.Command {
	var accountID, format string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import transactions from a CSV file into an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := importer.DefaultRegistry().Get(format)
			if parser == nil {
				return fmt.Errorf("unknown import format: %s", format)
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening import file: %w", err)
			}
			defer f.Close()

			rows, err := parser.Parse(f)
			if err != nil {
				return err
			}

			a, err := open()
			if err != nil {
				return err
			}
			if err := a.apply("tx import: "+args[0], func(doc model.Document) (model.Document, error) {
				if _, ok := state.AccountByID(doc, accountID); !ok {
					return doc, fmt.Errorf("account not found: %s", accountID)
				}
				next := doc
				for _, row := range rows {
					next = state.AddTransaction(next, model.Transaction{
						ID:        id.New(),
						Date:      row.Date,
						AccountID: accountID,
						Kind:      row.Kind,
						Amount:    row.Amount,
						Fee:       row.Fee,
						Tax:       row.Tax,
						Note:      row.Note,
					})
				}
				return next, nil
			}); err != nil {
				return err
			}
			fmt.Printf("Imported %d transactions\n", len(rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "target account ID (required)")
	_ = cmd.MarkFlagRequired("account")
	cmd.Flags().StringVar(&format, "format", "csv", "import format")

	return cmd
}
