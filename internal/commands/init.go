package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/moneymap-dev/moneymap/internal/config"
	"github.com/moneymap-dev/moneymap/internal/gitops"
	"github.com/moneymap-dev/moneymap/internal/model"
	"github.com/moneymap-dev/moneymap/internal/store"
)

func newInitCommand(dataDir *string) *cobra.Command {
	var useGit bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new moneymap data directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := *dataDir
			if len(args) > 0 {
				dir = args[0]
			}
			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return runInit(absDir, useGit)
		},
	}

	cmd.Flags().BoolVar(&useGit, "git", false, "version the data directory with git and auto-commit changes")

	return cmd
}

func runInit(dir string, useGit bool) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	st := store.New(dir)
	if _, err := os.Stat(st.Path()); err == nil {
		return fmt.Errorf("%s already exists", st.Path())
	}

	cfg := config.Default()
	cfg.Git.AutoCommit = useGit
	if err := config.Save(filepath.Join(dir, config.FileName), cfg); err != nil {
		return err
	}

	if err := st.Save(model.DefaultDocument()); err != nil {
		return err
	}

	if useGit {
		if err := gitops.Init(dir); err != nil {
			return err
		}
		if _, err := gitops.CommitData(dir, "init", cfg.Git.AuthorName, cfg.Git.AuthorEmail); err != nil {
			return fmt.Errorf("initial commit: %w", err)
		}
	}

	fmt.Printf("Initialized moneymap data directory at %s\n", dir)
	return nil
}
