package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/todoit/todoit/internal/manager"
	"github.com/todoit/todoit/internal/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View the append-only mutation history",
}

var historyItemParent string

var historyItemCmd = &cobra.Command{
	Use:   "item <list> <key>",
	Short: "Show an item's history, newest first",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withManager(func(ctx context.Context, m *manager.Manager) error {
			entries, err := m.GetItemHistory(ctx, args[0], args[1], historyItemParent)
			if err != nil {
				return err
			}
			printHistory(entries)
			return nil
		})
	},
}

var historyListCmd = &cobra.Command{
	Use:   "list <list>",
	Short: "Show a list's history, newest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withManager(func(ctx context.Context, m *manager.Manager) error {
			entries, err := m.GetListHistory(ctx, args[0])
			if err != nil {
				return err
			}
			printHistory(entries)
			return nil
		})
	},
}

func printHistory(entries []*types.HistoryEntry) {
	for _, e := range entries {
		fmt.Printf("%s  %s  %s -> %s\n", e.Timestamp.Format("2006-01-02T15:04:05Z"), accentStyle.Render(string(e.Action)), e.OldValue, e.NewValue)
	}
}

func init() {
	historyItemCmd.Flags().StringVar(&historyItemParent, "parent", "", "parent item key")
	historyCmd.AddCommand(historyItemCmd, historyListCmd)
}
