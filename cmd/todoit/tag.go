package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/todoit/todoit/internal/manager"
)

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Manage tags and list↔tag assignments",
}

var tagCreateColor string

var tagCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Register a new tag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withManager(func(ctx context.Context, m *manager.Manager) error {
			t, err := m.CreateTag(ctx, args[0], tagCreateColor)
			if err != nil {
				return err
			}
			fmt.Printf("%s  %s\n", t.Name, mutedStyle.Render(t.Color))
			return nil
		})
	},
}

var tagAddCmd = &cobra.Command{
	Use:   "add <list> <tag>",
	Short: "Assign a tag to a list, creating it if needed",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withManager(func(ctx context.Context, m *manager.Manager) error {
			return m.AddTagToList(ctx, args[0], args[1])
		})
	},
}

var tagRemoveCmd = &cobra.Command{
	Use:   "remove <list> <tag>",
	Short: "Unassign a tag from a list",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withManager(func(ctx context.Context, m *manager.Manager) error {
			return m.RemoveTagFromList(ctx, args[0], args[1])
		})
	},
}

var tagShowCmd = &cobra.Command{
	Use:   "show <list>",
	Short: "Show a list's assigned tags",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withManager(func(ctx context.Context, m *manager.Manager) error {
			tags, err := m.GetTagsForList(ctx, args[0])
			if err != nil {
				return err
			}
			for _, t := range tags {
				fmt.Printf("%s  %s\n", t.Name, mutedStyle.Render(t.Color))
			}
			return nil
		})
	},
}

var tagAllCmd = &cobra.Command{
	Use:   "all",
	Short: "List every known tag",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withManager(func(ctx context.Context, m *manager.Manager) error {
			tags, err := m.ListTags(ctx)
			if err != nil {
				return err
			}
			for _, t := range tags {
				fmt.Printf("%s  %s\n", t.Name, mutedStyle.Render(t.Color))
			}
			return nil
		})
	},
}

func init() {
	tagCreateCmd.Flags().StringVar(&tagCreateColor, "color", "", "display color (defaults to the engine's default)")
	tagCmd.AddCommand(tagCreateCmd, tagAddCmd, tagRemoveCmd, tagShowCmd, tagAllCmd)
}
