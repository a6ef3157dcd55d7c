package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/moneymap-dev/moneymap/internal/model"
	"github.com/moneymap-dev/moneymap/internal/state"
	"github.com/moneymap-dev/moneymap/internal/store"
)

func newExportCommand(open func() (*app, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Export the whole record set as JSON (stdout by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := open()
			if err != nil {
				return err
			}
			doc := a.container.Snapshot()

			if len(args) == 0 {
				return store.Export(os.Stdout, doc)
			}
			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("creating export file: %w", err)
			}
			defer f.Close()
			if err := store.Export(f, doc); err != nil {
				return err
			}
			fmt.Printf("Exported to %s\n", args[0])
			return nil
		},
	}
}

func newImportCommand(open func() (*app, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the whole record set with an exported JSON document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening import file: %w", err)
			}
			defer f.Close()

			imported, err := store.Import(f)
			if err != nil {
				return err
			}

			a, err := open()
			if err != nil {
				return err
			}
			if err := a.apply("import: "+args[0], func(doc model.Document) (model.Document, error) {
				return state.Replace(doc, imported), nil
			}); err != nil {
				return err
			}
			fmt.Printf("Imported %s: %d accounts, %d transactions, %d positions, %d goals\n",
				args[0], len(imported.Accounts), len(imported.Transactions),
				len(imported.Positions), len(imported.Goals))
			return nil
		},
	}
}
