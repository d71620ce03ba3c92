package main

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/todoit/todoit/internal/manager"
	"github.com/todoit/todoit/internal/types"
)

var itemCmd = &cobra.Command{
	Use:   "item",
	Short: "Manage items within a list",
}

var itemAddParent string

var itemAddCmd = &cobra.Command{
	Use:   "add <list> <key> <content>",
	Short: "Add a root item, or a subitem with --parent",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withManager(func(ctx context.Context, m *manager.Manager) error {
			var (
				it  *types.Item
				err error
			)
			if itemAddParent == "" {
				it, err = m.AddItem(ctx, args[0], args[1], args[2], nil, nil)
			} else {
				it, err = m.AddSubitem(ctx, args[0], itemAddParent, args[1], args[2], nil, nil)
			}
			if err != nil {
				return err
			}
			fmt.Printf("%s added %s (%s)\n", accentStyle.Render("✓"), it.ItemKey, renderStatus(it.Status))
			return nil
		})
	},
}

var itemStatusParent string

var itemStatusCmd = &cobra.Command{
	Use:   "status <list> <key> <pending|in_progress|completed|failed>",
	Short: "Set a leaf item's status",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withManager(func(ctx context.Context, m *manager.Manager) error {
			return m.UpdateItemStatus(ctx, args[0], args[1], types.ItemStatus(args[2]), nil, itemStatusParent)
		})
	},
}

var itemContentParent string

var itemContentCmd = &cobra.Command{
	Use:   "content <list> <key> <content>",
	Short: "Replace an item's content",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withManager(func(ctx context.Context, m *manager.Manager) error {
			return m.UpdateItemContent(ctx, args[0], args[1], itemContentParent, args[2])
		})
	},
}

var itemRenameParent string

var itemRenameCmd = &cobra.Command{
	Use:   "rename <list> <key> <new-key>",
	Short: "Rename an item, preserving sibling uniqueness",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withManager(func(ctx context.Context, m *manager.Manager) error {
			return m.RenameItem(ctx, args[0], args[1], itemRenameParent, args[2])
		})
	},
}

var (
	itemDeleteParent string
	itemDeleteForce  bool
)

var itemDeleteCmd = &cobra.Command{
	Use:   "delete <list> <key>",
	Short: "Delete an item and its subtree",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !itemDeleteForce {
			var confirmed bool
			err := huh.NewConfirm().
				Title(fmt.Sprintf("Delete item %q and its subitems?", args[1])).
				Affirmative("Delete").
				Negative("Cancel").
				Value(&confirmed).
				Run()
			if err != nil || !confirmed {
				return fmt.Errorf("aborted")
			}
		}
		return withManager(func(ctx context.Context, m *manager.Manager) error {
			return m.DeleteItem(ctx, args[0], args[1], itemDeleteParent)
		})
	},
}

var itemMoveCmd = &cobra.Command{
	Use:   "move <list> <key> <new-parent>",
	Short: "Move a root item under a new parent",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withManager(func(ctx context.Context, m *manager.Manager) error {
			return m.MoveToSubitem(ctx, args[0], args[1], args[2])
		})
	},
}

var itemSubitemsCmd = &cobra.Command{
	Use:   "subitems <list> <parent>",
	Short: "List a parent's direct children",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withManager(func(ctx context.Context, m *manager.Manager) error {
			children, err := m.GetSubitems(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			for _, c := range children {
				fmt.Printf("%d. %s  %s\n", c.Position, c.ItemKey, renderStatus(c.Status))
			}
			return nil
		})
	},
}

var itemListStatus string

var itemListCmd = &cobra.Command{
	Use:   "ls <list>",
	Short: "List every item in hierarchical order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withManager(func(ctx context.Context, m *manager.Manager) error {
			var status *types.ItemStatus
			if itemListStatus != "" {
				s := types.ItemStatus(itemListStatus)
				status = &s
			}
			items, err := m.GetListItems(ctx, args[0], status, nil)
			if err != nil {
				return err
			}
			for _, it := range items {
				indent := ""
				if it.ParentItemID != nil {
					indent = "  "
				}
				fmt.Printf("%s%d. %s  %s\n", indent, it.Position, it.ItemKey, renderStatus(it.Status))
			}
			return nil
		})
	},
}

func init() {
	itemAddCmd.Flags().StringVar(&itemAddParent, "parent", "", "parent item key (omit for a root item)")
	itemStatusCmd.Flags().StringVar(&itemStatusParent, "parent", "", "parent item key")
	itemContentCmd.Flags().StringVar(&itemContentParent, "parent", "", "parent item key")
	itemRenameCmd.Flags().StringVar(&itemRenameParent, "parent", "", "parent item key")
	itemDeleteCmd.Flags().StringVar(&itemDeleteParent, "parent", "", "parent item key")
	itemDeleteCmd.Flags().BoolVar(&itemDeleteForce, "force", false, "skip the confirmation prompt")
	itemListCmd.Flags().StringVar(&itemListStatus, "status", "", "filter to one status")

	itemCmd.AddCommand(itemAddCmd, itemStatusCmd, itemContentCmd, itemRenameCmd, itemDeleteCmd, itemMoveCmd, itemSubitemsCmd, itemListCmd)
}
