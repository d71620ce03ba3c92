package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/todoit/todoit/internal/manager"
)

var depCmd = &cobra.Command{
	Use:   "dep",
	Short: "Manage cross-item dependencies",
}

var depAddCmd = &cobra.Command{
	Use:   "add <dep-list> <dep-key> <req-list> <req-key>",
	Short: "Record that dep-key requires req-key to complete first",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withManager(func(ctx context.Context, m *manager.Manager) error {
			return m.AddItemDependency(ctx, args[0], args[1], args[2], args[3])
		})
	},
}

var depRemoveCmd = &cobra.Command{
	Use:   "remove <dep-list> <dep-key> <req-list> <req-key>",
	Short: "Remove a previously-added dependency edge",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withManager(func(ctx context.Context, m *manager.Manager) error {
			return m.RemoveItemDependency(ctx, args[0], args[1], args[2], args[3])
		})
	},
}

var depBlockersCmd = &cobra.Command{
	Use:   "blockers <list> <key>",
	Short: "Show this item's incomplete direct blockers",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withManager(func(ctx context.Context, m *manager.Manager) error {
			blockers, err := m.GetItemBlockers(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			if len(blockers) == 0 {
				fmt.Println(mutedStyle.Render("no incomplete blockers"))
				return nil
			}
			for _, b := range blockers {
				fmt.Printf("%s  %s\n", b.ItemKey, renderStatus(b.Status))
			}
			return nil
		})
	},
}

var depBlockedByCmd = &cobra.Command{
	Use:   "blocked-by <list> <key>",
	Short: "Show items that directly depend on this item",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withManager(func(ctx context.Context, m *manager.Manager) error {
			items, err := m.GetItemsBlockedBy(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			for _, it := range items {
				fmt.Printf("%s  %s\n", it.ItemKey, renderStatus(it.Status))
			}
			return nil
		})
	},
}

var depCanStartCmd = &cobra.Command{
	Use:   "can-start <list> <key>",
	Short: "Report whether this item is pending and not blocked",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withManager(func(ctx context.Context, m *manager.Manager) error {
			ok, err := m.CanStartItem(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Println(ok)
			return nil
		})
	},
}

var depCanCompleteCmd = &cobra.Command{
	Use:   "can-complete <list> <key>",
	Short: "Report whether this item has no open children or blockers",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withManager(func(ctx context.Context, m *manager.Manager) error {
			ok, err := m.CanCompleteItem(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Println(ok)
			return nil
		})
	},
}

func init() {
	depCmd.AddCommand(depAddCmd, depRemoveCmd, depBlockersCmd, depBlockedByCmd, depCanStartCmd, depCanCompleteCmd)
}
