package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/todoit/todoit/internal/manager"
	"github.com/todoit/todoit/internal/types"
)

var dbPath string

var rootCmd = &cobra.Command{
	Use:           "todoit",
	Short:         "Hierarchical todo lists with dependencies and tags",
	Long:          "todoit manages hierarchical todo lists backed by a local database: items, subitems, cross-list dependencies, tags, and arbitrary properties, with derived parent status and dependency-aware next-item queries.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database file path (overrides TODOIT_DB_PATH)")
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(itemCmd)
	rootCmd.AddCommand(depCmd)
	rootCmd.AddCommand(tagCmd)
	rootCmd.AddCommand(propertyCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(nextCmd)
}

// Execute runs the command tree and exits with the taxonomy-mapped code:
// 0 success, 1 application (domain) error, 2 usage error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error: ")+err.Error())
		os.Exit(exitCodeFor(err))
	}
}

// exitCodeFor maps a returned error to a process exit code: the domain
// members of the engine's error taxonomy listed below are an application
// error (1); everything else, including storage failures, ErrAccessDenied
// and cobra's own argument validation, is a usage/unexpected error (2).
func exitCodeFor(err error) int {
	switch {
	case errors.Is(err, types.ErrNotFound),
		errors.Is(err, types.ErrNotFoundUnderParent),
		errors.Is(err, types.ErrAlreadyExists),
		errors.Is(err, types.ErrInvalidArgument),
		errors.Is(err, types.ErrHasSubitems),
		errors.Is(err, types.ErrIncompletePrecondition),
		errors.Is(err, types.ErrWouldCycle):
		return 1
	default:
		return 2
	}
}

// withManager opens a Manager for the duration of fn and closes it on
// return, so every command gets a fresh connection rather than holding one
// open for the process lifetime.
func withManager(fn func(ctx context.Context, m *manager.Manager) error) error {
	ctx := context.Background()
	m, err := manager.Open(ctx, dbPath)
	if err != nil {
		return err
	}
	defer m.Close()
	return fn(ctx, m)
}
