package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/todoit/todoit/internal/manager"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Manage todo lists",
}

var (
	listCreateTitle string
	listCreateTags  string
)

var listCreateCmd = &cobra.Command{
	Use:   "create <key>",
	Short: "Create a new list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withManager(func(ctx context.Context, m *manager.Manager) error {
			l, err := m.CreateList(ctx, args[0], listCreateTitle, nil, nil, splitTags(listCreateTags))
			if err != nil {
				return err
			}
			fmt.Printf("%s created list %s\n", accentStyle.Render("✓"), l.ListKey)
			return nil
		})
	},
}

var listShowCmd = &cobra.Command{
	Use:   "show <key>",
	Short: "Show a single list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withManager(func(ctx context.Context, m *manager.Manager) error {
			l, err := m.GetList(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s  %s  %s\n", accentStyle.Render(l.ListKey), l.Title, mutedStyle.Render(string(l.Status)))
			return nil
		})
	},
}

var (
	listAllTags     string
	listAllArchived bool
)

var listAllCmd = &cobra.Command{
	Use:   "all",
	Short: "List every visible list",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withManager(func(ctx context.Context, m *manager.Manager) error {
			all, err := m.ListAll(ctx, splitTags(listAllTags), listAllArchived)
			if err != nil {
				return err
			}
			for _, l := range all {
				fmt.Printf("%s  %s  %s\n", accentStyle.Render(l.ListKey), l.Title, mutedStyle.Render(string(l.Status)))
			}
			return nil
		})
	},
}

var listRenameCmd = &cobra.Command{
	Use:   "rename <key> <title>",
	Short: "Rename a list",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withManager(func(ctx context.Context, m *manager.Manager) error {
			return m.RenameList(ctx, args[0], args[1])
		})
	},
}

var listArchiveForce bool

var listArchiveCmd = &cobra.Command{
	Use:   "archive <key>",
	Short: "Archive a list (all items must be completed unless --force)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withManager(func(ctx context.Context, m *manager.Manager) error {
			return m.ArchiveList(ctx, args[0], listArchiveForce)
		})
	},
}

var listUnarchiveCmd = &cobra.Command{
	Use:   "unarchive <key>",
	Short: "Restore an archived list to active",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withManager(func(ctx context.Context, m *manager.Manager) error {
			return m.UnarchiveList(ctx, args[0])
		})
	},
}

var listDeleteForce bool

var listDeleteCmd = &cobra.Command{
	Use:   "delete <key>",
	Short: "Delete a list and everything it owns",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !listDeleteForce {
			var confirmed bool
			err := huh.NewConfirm().
				Title(fmt.Sprintf("Delete list %q and all its items?", args[0])).
				Affirmative("Delete").
				Negative("Cancel").
				Value(&confirmed).
				Run()
			if err != nil || !confirmed {
				return fmt.Errorf("aborted")
			}
		}
		return withManager(func(ctx context.Context, m *manager.Manager) error {
			return m.DeleteList(ctx, args[0])
		})
	},
}

func splitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func init() {
	listCreateCmd.Flags().StringVar(&listCreateTitle, "title", "", "list title")
	listCreateCmd.Flags().StringVar(&listCreateTags, "tags", "", "comma-separated tags to assign")
	listAllCmd.Flags().StringVar(&listAllTags, "tags", "", "filter to lists carrying any of these tags")
	listAllCmd.Flags().BoolVar(&listAllArchived, "archived", false, "include archived lists")
	listArchiveCmd.Flags().BoolVar(&listArchiveForce, "force", false, "archive even with incomplete items")
	listDeleteCmd.Flags().BoolVar(&listDeleteForce, "force", false, "skip the confirmation prompt")

	listCmd.AddCommand(listCreateCmd, listShowCmd, listAllCmd, listRenameCmd, listArchiveCmd, listUnarchiveCmd, listDeleteCmd)
}
