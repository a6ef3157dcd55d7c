// Package commands implements the moneymap CLI.
package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/moneymap-dev/moneymap/internal/buildinfo"
	"github.com/moneymap-dev/moneymap/internal/config"
	"github.com/moneymap-dev/moneymap/internal/gitops"
	"github.com/moneymap-dev/moneymap/internal/model"
	"github.com/moneymap-dev/moneymap/internal/state"
	"github.com/moneymap-dev/moneymap/internal/store"
)

// NewRootCommand creates the root CLI command with all subcommands
// registered.
func NewRootCommand() *cobra.Command {
	var dataDir string
	var logLevel string

	rootCmd := &cobra.Command{
		Use:     "moneymap",
		Short:   "Personal portfolio ledger and dashboard",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug|info|warn|error)")

	open := func() (*app, error) { return openApp(dataDir, logLevel) }

	rootCmd.AddCommand(newInitCommand(&dataDir))
	rootCmd.AddCommand(newAccountCommand(open))
	rootCmd.AddCommand(newTxCommand(open))
	rootCmd.AddCommand(newPositionCommand(open))
	rootCmd.AddCommand(newGoalCommand(open))
	rootCmd.AddCommand(newTargetsCommand(open))
	rootCmd.AddCommand(newSettingsCommand(open))
	rootCmd.AddCommand(newReportCommand(open))
	rootCmd.AddCommand(newChartCommand(open))
	rootCmd.AddCommand(newExportCommand(open))
	rootCmd.AddCommand(newImportCommand(open))
	rootCmd.AddCommand(newServeCommand(open))

	return rootCmd
}

// app wires the config, store, and state container for one data directory.
type app struct {
	dir       string
	cfg       *config.Config
	store     *store.Store
	container *state.Container
	log       zerolog.Logger

	// Serializes git commits; concurrent HTTP mutations would otherwise
	// race on the repository's index.lock.
	gitMu sync.Mutex
}

func openApp(dir, logLevel string) (*app, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving data dir: %w", err)
	}

	cfg, err := config.Load(filepath.Join(absDir, config.FileName))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		cfg = config.Default()
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	st := store.New(absDir)
	doc, err := st.Load()
	if err != nil {
		return nil, err
	}
	if doc == nil {
		empty := model.DefaultDocument()
		doc = &empty
	}

	return &app{
		dir:       absDir,
		cfg:       cfg,
		store:     st,
		container: state.NewContainer(*doc, st),
		log:       newLogger(cfg.LogLevel),
	}, nil
}

// apply runs a patch through the container, then auto-commits the data
// directory when configured.
func (a *app) apply(action string, patch func(model.Document) (model.Document, error)) error {
	if err := a.container.Apply(patch); err != nil {
		return err
	}
	a.log.Debug().Str("action", action).Msg("applied")
	a.autoCommit(action)
	return nil
}

func (a *app) autoCommit(action string) {
	if !a.cfg.Git.AutoCommit || !gitops.IsRepo(a.dir) {
		return
	}
	a.gitMu.Lock()
	defer a.gitMu.Unlock()
	hash, err := gitops.CommitData(a.dir, action, a.cfg.Git.AuthorName, a.cfg.Git.AuthorEmail)
	if err != nil {
		a.log.Warn().Err(err).Msg("auto-commit failed")
		return
	}
	if hash != "" {
		a.log.Debug().Str("commit", hash).Msg("auto-committed")
	}
}

func newLogger(level string) zerolog.Logger {
	var lvl zerolog.Level
	switch level {
	case "debug":
		lvl = zerolog.DebugLevel
	case "warn":
		lvl = zerolog.WarnLevel
	case "error":
		lvl = zerolog.ErrorLevel
	default:
		lvl = zerolog.InfoLevel
	}
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(output).Level(lvl).With().Timestamp().Logger()
}
